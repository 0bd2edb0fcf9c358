package main

import (
	"os"

	"github.com/rotostampa/piscanner/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}

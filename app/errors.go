package app

import (
	"errors"
)

var (
	// errUnknownLight is returned for a --light value outside green/red/yellow.
	errUnknownLight = errors.New("unknown light, expected green, red or yellow")
)

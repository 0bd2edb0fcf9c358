package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACSFatalLogMsg is used if app or cfg or store var pointer is nil.
	ErrNilACSFatalLogMsg = "app, cfg or store is nil"
)

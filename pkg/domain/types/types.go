package types

import "github.com/m-mizutani/goerr/v2"

// Version is the application version, overwritten at build time via ldflags
var Version = "dev"

// Error tags classify failures so the HTTP layer can map them to status codes
var (
	// TagBadRequest marks user-correctable input errors (HTTP 400)
	TagBadRequest = goerr.NewTag("bad_request")

	// TagUpstream marks failures of the generative model call (HTTP 500, not retried)
	TagUpstream = goerr.NewTag("upstream")
)

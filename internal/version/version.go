package version

// Build metadata. Overridden via -ldflags at release time.
var (
	AppName    = "mood-relay"
	AppVersion = "dev"
)

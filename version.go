package monk

// Version is the interpreter release version, printed by the CLI.
var Version = "0.2.0"

// BuildDate may be overridden at link time (-ldflags "-X ...BuildDate=...").
var BuildDate = "unknown"

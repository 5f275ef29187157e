package espalier

// Version is the library release, surfaced by the CLI and the banner.
const Version = "0.2.0"

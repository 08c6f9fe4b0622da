package cmd

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/xkilldash9x/dilemma-arena/cmd.Version=...".
var Version = "0.1.0"

// countrydata is a CLI tool that resolves country flags and currencies by code or name.
package main

import (
	"github.com/hightemp/countrydata/internal/cli"
)

// Build information (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildTime = buildTime
	cli.Execute()
}

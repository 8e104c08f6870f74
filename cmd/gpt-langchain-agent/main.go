// Command gpt-langchain-agent serves the template-finding agent over HTTP and
// exposes its tools on the command line and over MCP.
package main

import (
	"github.com/DJSquale/gpt-langchain-agent/internal/cmd"
	"github.com/DJSquale/gpt-langchain-agent/internal/config"
)

// Build vars.
var (
	//nolint: gochecknoglobals
	Version = ""
	//nolint: gochecknoglobals
	CommitSHA = ""
)

func main() {
	cfg, cfgErr := config.Load()
	cmd.Execute(cmd.BuildInfo{Version: Version, CommitSHA: CommitSHA}, cfg, cfgErr)
}

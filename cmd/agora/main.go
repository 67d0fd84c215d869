// Command agora is the Agora community platform search CLI.
package main

import (
	"os"

	"github.com/agora-labs/agora-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

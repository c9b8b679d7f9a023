// Command cryptobro generates secrets and packs single files under one-time keys.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/cryptobro/internal/commands"
	"github.com/idelchi/cryptobro/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		if errors.Is(err, cobraext.ErrExitGracefully) {
			return
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

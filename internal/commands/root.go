package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/cryptobro/internal/config"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version, preRun(cfg))

	root.Use = "cryptobro [flags] [command]"
	root.Short = "Secret generator and single-file vault"
	root.Long = `Generates keys, UUIDs, API keys, passwords and usernames, and packs or
unpacks one file at a time with AES-256-CBC under a freshly generated key.

Without a command an interactive menu is shown. Every flag can also be set
through a CRYPTOBRO_<FLAG> environment variable, e.g. CRYPTOBRO_LOG_LEVEL=debug.`
	root.Args = cobra.NoArgs
	root.RunE = func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd, cfg)
		if err != nil {
			return err
		}

		return s.Run()
	}

	flags := root.PersistentFlags()

	flags.BoolP("show", "s", false, "Show the configuration and exit")

	flags.String("data", "data", "Directory holding files to pack")
	flags.String("encrypted-dir", "data/encrypted", "Directory receiving packed files")
	flags.String("decrypted-dir", "data/decrypted", "Directory receiving unpacked files")

	flags.StringSlice("include", nil, "Only offer files matching these patterns for packing")
	flags.StringSlice("exclude", nil, "Never offer files matching these patterns for packing")
	flags.String("include-from", "", "JSONC file with an array of include patterns")
	flags.String("exclude-from", "", "JSONC file with an array of exclude patterns")

	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.BoolP("quiet", "q", false, "Only log errors")
	flags.Bool("no-color", false, "Disable coloured output")

	root.Flags().IntP("kind", "k", 0, "Open the generator for this menu number (1-7) instead of the main menu")

	root.AddCommand(
		NewGenerateCommand(cfg),
		NewPackCommand(cfg),
		NewUnpackCommand(cfg),
		NewCheckCommand(cfg),
	)

	return root
}

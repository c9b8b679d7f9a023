package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/cryptobro/internal/config"
)

// NewPackCommand creates a new cobra command for the pack subcommand.
func NewPackCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "pack [flags]",
		Aliases: []string{"lock"},
		Short:   "Encrypt one file from the data directory under a new key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, cfg)
			if err != nil {
				return err
			}

			return s.Pack()
		},
	}
}

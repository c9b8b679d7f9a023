package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/cryptobro/internal/config"
)

// NewUnpackCommand creates a new cobra command for the unpack subcommand.
func NewUnpackCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "unpack [flags]",
		Aliases: []string{"unlock"},
		Short:   "Decrypt one packed file with its key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, cfg)
			if err != nil {
				return err
			}

			return s.Unpack()
		},
	}
}

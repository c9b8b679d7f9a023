package commands

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/idelchi/cryptobro/internal/config"
	"github.com/idelchi/cryptobro/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags]",
		Short: "Validate that include/exclude patterns match files in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.Check(afero.NewOsFs(), cfg, cmd.ErrOrStderr())
		},
	}
}

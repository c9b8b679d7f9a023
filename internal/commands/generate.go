package commands

import (
	"crypto/rand"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/idelchi/cryptobro/internal/config"
	"github.com/idelchi/cryptobro/internal/secrets"
)

// NewGenerateCommand creates a new cobra command for the generate subcommand.
// It prints a single secret without any prompts, for use in scripts.
func NewGenerateCommand(_ *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [flags] kind",
		Aliases: []string{"gen"},
		Short:   "Print one secret of the given kind (1-7)",
		Long:    "Print one secret of the given kind and exit.\n\n" + kindTable(),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("kind must be a number: %w", err)
			}

			kind, err := secrets.ParseKind(n)
			if err != nil {
				return err
			}

			value, err := secrets.New(rand.Reader).Generate(kind)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)

			return nil
		},
	}

	return cmd
}

func kindTable() string {
	var table string

	for _, kind := range secrets.Kinds {
		table += fmt.Sprintf("  %d  %-26s %s\n", kind, kind.Title(), kind.Description())
	}

	return table
}

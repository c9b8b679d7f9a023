package commands

import (
	"crypto/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/idelchi/cryptobro/internal/config"
	"github.com/idelchi/cryptobro/internal/logic"
	"github.com/idelchi/cryptobro/internal/ui"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// preRun returns the handler run after cobraext has bound flags and
// CRYPTOBRO_* variables. It fills cfg and validates it.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		if err := cobraext.Validate(cfg, cfg); err != nil {
			return err //nolint:wrapcheck
		}

		if cfg.NoColor {
			ui.DisableColor()
		}

		return nil
	}
}

// newLogger writes text logs to stderr at the configured level.
func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	log.SetOutput(os.Stderr)
	log.SetLevel(cfg.Level())
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    cfg.NoColor,
		DisableTimestamp: true,
	})

	return log
}

// newSession wires a session to the real filesystem and the command's streams.
func newSession(cmd *cobra.Command, cfg *config.Config) (*logic.Session, error) {
	return logic.New(cfg, logic.Options{
		Fs:     afero.NewOsFs(),
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Random: rand.Reader,
		Log:    newLogger(cfg),
	})
}

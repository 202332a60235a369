package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seatbelt/seatbelt/internal/application"
)

var (
	version = "dev"
	commit  = "none"
)

// ErrBlocked is returned by check when the verdict is blocked, so the
// process exits non-zero.
var ErrBlocked = errors.New("environment check blocked")

// ProbeWiring builds the probe factory once the logger is known.
type ProbeWiring func(logger *zap.Logger) application.ProbeFactory

type rootOptions struct {
	verbose bool
	logger  *zap.Logger
	wiring  ProbeWiring
}

func (o *rootOptions) probes() application.ProbeFactory {
	return o.wiring(o.logger)
}

func newRootCmd(wiring ProbeWiring) *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop(), wiring: wiring}

	cmd := &cobra.Command{
		Use:           "seatbelt",
		Short:         "Buckle up before you build",
		Long:          "Seatbelt checks your development machine and project for auth, secrets, MCP and structure problems, and tells you whether it is safe to start building.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				return nil
			}
			config := zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	cmd.AddCommand(newHookCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd(DefaultProbes)
}

// NewRootCmdWithProbes returns the root command with substituted probes.
func NewRootCmdWithProbes(factory application.ProbeFactory) *cobra.Command {
	return newRootCmd(func(*zap.Logger) application.ProbeFactory { return factory })
}

func Execute() error {
	err := newRootCmd(DefaultProbes).Execute()
	if err != nil && !errors.Is(err, ErrBlocked) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

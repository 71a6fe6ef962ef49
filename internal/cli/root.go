package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Logger is built in PersistentPreRunE: debug level under --verbose,
	// no-op otherwise.
	Logger *zap.Logger

	// RunID correlates the JSON response of one invocation.
	RunID string
}

// logger returns the configured logger, or a no-op logger when the
// command runs without the root's PersistentPreRunE.
func (o *RootOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the iterstruct CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "iterstruct",
		Short: "iterstruct - field introspection for Go structs",
		Long: `Generate read-only introspection methods for Go structs.

Types opt in with a directive in their doc comment:

  //iterstruct:derive names
  //iterstruct:derive dump names=DumpFieldNames
  type Point struct {
      x, y int
  }

iterstruct writes the methods to iterstruct_gen.go next to the source, so
the field list and value dump cost no reflection at run time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.RunID = uuid.NewString()
			if !opts.Verbose {
				return nil
			}

			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.Logger = logger.With(zap.String("run_id", opts.RunID))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger().Sync()
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

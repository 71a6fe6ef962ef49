package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/iterstruct/internal/ir"
)

// VersionInfo is the payload of the version command.
type VersionInfo struct {
	Name               string `json:"name"`
	Version            string `json:"version"`
	FingerprintVersion string `json:"fingerprint_version"`
}

func (v VersionInfo) String() string {
	return v.Name + " " + v.Version
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the iterstruct version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return formatter.Success(VersionInfo{
				Name:               ir.GeneratorName,
				Version:            ir.GeneratorVersion,
				FingerprintVersion: ir.FingerprintVersion,
			})
		},
	}
}

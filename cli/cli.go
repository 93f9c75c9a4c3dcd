// Package cli implements the geomc command line: geometry validation,
// volume queries and primary particle sampling.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaptide/geomc/config"
)

var log = config.NamedLogger("cli")

var loggingLevel string

var rootCmd = &cobra.Command{
	Use:           "geomc",
	Short:         "Monte Carlo geometry modeling and primary particle sampling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := config.ParseLoggingLevel(loggingLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&loggingLevel, "logging-level", "info",
		"logging level, one of: "+config.AvailableLoggingLevels,
	)
	rootCmd.AddCommand(checkCmd, volumeCmd, sampleCmd, meshesCmd)
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		return err
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var meshesCmd = &cobra.Command{
	Use:   "meshes <geometry-file>",
	Short: "List cached mesh assets and their reference counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		geo, err := LoadGeometry(args[0])
		if err != nil {
			return err
		}
		stats := geo.Meshes().Stats()
		if len(stats) == 0 {
			log.Info("no mesh assets")
			return nil
		}
		for _, stat := range stats {
			fmt.Printf("%5d  %s\n", stat.Refs, stat.Path)
		}
		return nil
	},
}

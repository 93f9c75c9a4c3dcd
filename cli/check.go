package cli

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <geometry-file>",
	Short: "Build a geometry definition and validate containment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		geo, err := LoadGeometry(args[0])
		if err != nil {
			return err
		}
		if err := geo.Check(); err != nil {
			return err
		}
		log.Infof("geometry ok (%d volumes)", len(geo.Paths()))
		return nil
	},
}

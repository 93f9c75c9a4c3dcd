package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaptide/geomc/format"
)

var volumeIncludeDaughters bool

var volumeCmd = &cobra.Command{
	Use:   "volume <geometry-file> [path...]",
	Short: "Print volume paths, bounding boxes and cubic volumes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		geo, err := LoadGeometry(args[0])
		if err != nil {
			return err
		}

		paths := args[1:]
		if len(paths) == 0 {
			paths = geo.Paths()
		}
		for _, path := range paths {
			v, err := geo.Find(path)
			if err != nil {
				return err
			}
			cubic, err := geo.CubicVolume(path, volumeIncludeDaughters)
			if err != nil {
				return err
			}
			box := v.GlobalAABB()
			fmt.Printf("%-30s %12s cm3  min %s  max %s\n",
				v.Path(),
				format.FloatToFixedWidthString(cubic, 12),
				format.VectorToFixedWidthString([3]float64{box.Min.X, box.Min.Y, box.Min.Z}, 10),
				format.VectorToFixedWidthString([3]float64{box.Max.X, box.Max.Y, box.Max.Z}, 10),
			)
		}
		return nil
	},
}

func init() {
	volumeCmd.Flags().BoolVar(
		&volumeIncludeDaughters, "include-daughters", false,
		"do not subtract daughter volumes",
	)
}

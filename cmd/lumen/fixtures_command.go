package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lumen/internal/artnet"
)

func newFixturesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "Show the rig and its DMX patch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			reg, err := newRegistryFromConfig(cfg)
			if err != nil {
				return err
			}

			var patch *artnet.Patch
			if cfg.ArtNet.PatchFile != "" {
				patch, err = artnet.LoadPatch(cfg.ArtNet.PatchFile)
				if err != nil {
					return err
				}
			} else {
				patch = artnet.DefaultPatch(reg)
			}

			rows := make([][]string, 0, reg.Count())
			for i, f := range reg.All() {
				base := ""
				id := fmt.Sprintf("%s-%d", f.Category, i)
				if i < len(patch.Fixtures) {
					base = strconv.Itoa(patch.Fixtures[i].Base)
					id = patch.Fixtures[i].ID
				}
				aim := "-"
				if f.Category.SpotLike() {
					aim = "yes"
				}
				rows = append(rows, []string{
					strconv.Itoa(i),
					id,
					f.Category.String(),
					formatVec(f.Position),
					aim,
					fmt.Sprintf("%.1f", f.Ceiling),
					base,
				})
			}

			fmt.Println(renderTable(
				[]string{"#", "ID", "Category", "Position", "Aims", "Ceiling", "DMX"},
				rows,
				0, 5, 6,
			))
			fmt.Printf("%d fixtures (%d spot-like, %d point-like)\n",
				reg.Count(), len(reg.SpotLike()), len(reg.PointLike()))
			return nil
		},
	}
}

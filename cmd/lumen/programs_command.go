package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lumen/internal/audio"
	"lumen/internal/director"
	"lumen/internal/program"
)

var programSummaries = map[program.ID]string{
	program.Aggressive:  "red/white, beat-synced strobes, fast sweeps",
	program.ColdAmbient: "blue/cyan drift, slow synchronized sweep",
	program.Balanced:    "rotating brand palette, gold strobe on beat",
	program.Building:    "near-dark, white snap flash + relocation on beat",
	program.WarmAmbient: "amber/gold breathing with candle flicker",
	program.Chaos:       "hot palette cycling, continuous strobe",
	program.LowEnergy:   "near-blackout, single key + accent fixture",
	program.BassHeavy:   "bass-gated traveling wave across the rig",
	program.Euphoric:    "per-fixture hue rotation, white strobe on beat",
	program.Silence:     "all off, single flash on beat",
	program.Ritualistic: "slow circular sweep, gold/violet/crimson",
	program.Glitch:      "hash-noise blackout/flicker, rapid color swaps",
}

func newProgramsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List the lighting programs and their moods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			moodByProgram := map[program.ID]audio.Mood{}
			for _, mood := range audio.Moods() {
				if id, ok := director.ProgramFor(mood); ok {
					moodByProgram[id] = mood
				}
			}

			rows := make([][]string, 0, program.Count)
			for _, id := range program.IDs() {
				mood := "(internal)"
				if m, ok := moodByProgram[id]; ok {
					mood = string(m)
				}
				rows = append(rows, []string{
					strconv.Itoa(int(id)),
					id.String(),
					mood,
					programSummaries[id],
				})
			}
			fmt.Println(renderTable(
				[]string{"#", "Program", "Mood", "Behavior"},
				rows,
				0,
			))
			return nil
		},
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lumen/internal/artnet"
)

func newPollCommand(ctx *commandContext) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Discover Art-Net nodes on the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fmt.Printf("Polling %s for Art-Net nodes (%s)...\n", cfg.ArtNet.Broadcast, timeout)
			nodes, err := artnet.Poll(cfg.ArtNet.Broadcast, timeout)
			if err != nil {
				return err
			}
			if len(nodes) == 0 {
				fmt.Println("No Art-Net nodes replied.")
				return nil
			}
			for _, node := range nodes {
				fmt.Printf("Node: %-16s  IP: %s\n", node.Name, node.Addr)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "How long to wait for replies")
	return cmd
}

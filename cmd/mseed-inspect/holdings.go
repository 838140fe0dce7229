package main

import (
	"fmt"
	"os"
	"time"

	"github.com/GeoNet/miniseed/internal/holdings"
	"github.com/GeoNet/miniseed/internal/mseed"
	"github.com/spf13/cobra"
)

func newHoldingsCommand(opts *mseed.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "holdings FILE...",
		Short: "Summarise single stream files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				h, err := fileHolding(name, *opts)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s.%s.%s.%s %s %s %d samples in %d records\n", name,
					h.Network, h.Station, h.Location, h.Channel,
					h.Start.Format(time.RFC3339Nano), h.End.Format(time.RFC3339Nano), h.NumSamples, h.Records)
			}

			return nil
		},
	}
}

func fileHolding(name string, opts mseed.Options) (holdings.Holding, error) {
	f, err := os.Open(name)
	if err != nil {
		return holdings.Holding{}, err
	}
	defer f.Close()

	return holdings.SingleStream(f, opts)
}

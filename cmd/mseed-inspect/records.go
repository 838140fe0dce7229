package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/GeoNet/miniseed/internal/mseed"
	"github.com/spf13/cobra"
)

func newRecordsCommand(opts *mseed.Options) *cobra.Command {
	var samples int
	var detail bool

	cmd := &cobra.Command{
		Use:   "records FILE...",
		Short: "Print a summary line for each record",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := *opts
			o.UnpackData = samples > 0

			for _, name := range args {
				err := eachRecord(name, o, func(off int64, r *mseed.Record) error {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d: %s\n", name, off, r)

					if detail {
						if err := printDetail(cmd.OutOrStdout(), r); err != nil {
							return err
						}
					}

					if samples > 0 {
						printSamples(cmd.OutOrStdout(), r.Samples(), samples)
					}

					return nil
				})
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}

			return nil
		},
	}
	cmd.Flags().IntVar(&samples, samplesOptionName, 0, "Decode and print up to this many samples per record")
	cmd.Flags().BoolVar(&detail, "detail", false, "Print all header fields")

	return cmd
}

func printDetail(w io.Writer, r *mseed.Record) error {
	start, err := r.StartTime().ISO()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "  format version: %d\n", r.FormatVersion())
	fmt.Fprintf(w, "  start time: %s\n", start)
	fmt.Fprintf(w, "  end time: %s\n", r.EndTime())
	fmt.Fprintf(w, "  encoding: %s (%d)\n", r.Encoding(), int8(r.Encoding()))
	fmt.Fprintf(w, "  flags: 0x%02X\n", r.Flags())
	fmt.Fprintf(w, "  CRC: 0x%08X\n", r.CRC())
	fmt.Fprintf(w, "  data length: %d\n", r.DataLength())

	x, err := r.ExtraHeaders()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(x))
	for k := range x {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "  extra %s: %v\n", k, x[k])
	}

	return nil
}

func printSamples(w io.Writer, s mseed.Samples, n int) {
	if s.Len() < n {
		n = s.Len()
	}

	var v []string

	switch s.Type() {
	case mseed.SampleASCII:
		fmt.Fprintf(w, "  %q\n", s.ASCII()[:n])
		return
	case mseed.SampleInt32:
		for _, x := range s.Int32s()[:n] {
			v = append(v, fmt.Sprint(x))
		}
	case mseed.SampleFloat32:
		for _, x := range s.Float32s()[:n] {
			v = append(v, fmt.Sprint(x))
		}
	case mseed.SampleFloat64:
		for _, x := range s.Float64s()[:n] {
			v = append(v, fmt.Sprint(x))
		}
	}

	fmt.Fprintf(w, "  %s\n", strings.Join(v, " "))
}

// mseed-inspect prints the contents of miniSEED files.
package main

import (
	"io"
	"log"
	"os"

	"github.com/GeoNet/miniseed/internal/mseed"
	"github.com/spf13/cobra"
)

const (
	crcOptionName     = "crc"
	samplesOptionName = "samples"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("mseed-inspect ")

	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var opts mseed.Options

	cmd := &cobra.Command{
		Use:           "mseed-inspect",
		Short:         "Inspect miniSEED 2 and 3 files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.AddCommand(newRecordsCommand(&opts))
	cmd.AddCommand(newHoldingsCommand(&opts))
	cmd.PersistentFlags().BoolVar(&opts.ValidateCRC, crcOptionName, false, "Validate miniSEED 3 record CRCs")

	return cmd
}

// eachRecord calls fn for every record in the named file.
func eachRecord(name string, opts mseed.Options, fn func(off int64, r *mseed.Record) error) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	rd := mseed.NewReader(f, opts)

	for {
		off := rd.Offset()

		r, err := rd.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := fn(off, r); err != nil {
			return err
		}
	}
}

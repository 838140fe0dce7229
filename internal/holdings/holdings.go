// holdings is for retrieving data holding information from miniSEED files.
package holdings

import (
	"io"
	"time"

	"github.com/GeoNet/miniseed/internal/mseed"
	"github.com/pkg/errors"
)

type Holding struct {
	Network, Station, Channel, Location string
	Start, End                          time.Time
	NumSamples                          int
	Records                             int
}

// SingleStream reads miniSEED records from r and returns a summary.
// Expects a single stream (not multiplexed miniSEED) in r.  Records may be
// miniSEED 2 or 3 and need not share a record length.
func SingleStream(r io.Reader, opts mseed.Options) (Holding, error) {
	opts.UnpackData = true

	rd := mseed.NewReader(r, opts)

	// read the first record and use it to set up h.
	rec, err := rd.Next()
	switch {
	case err == io.EOF:
		return Holding{}, nil
	case err != nil:
		return Holding{}, err
	}

	sid := rec.SIDLossy()

	id, err := rec.Identifier()
	if err != nil {
		return Holding{}, errors.Wrap(err, "first record")
	}

	h := Holding{
		Network:    id.Network,
		Station:    id.Station,
		Channel:    id.Channel,
		Location:   id.Location,
		Start:      rec.StartTime().Time(),
		End:        rec.EndTime().Time(),
		NumSamples: int(rec.NumSamples()),
		Records:    1,
	}

	for {
		rec, err = rd.Next()
		switch {
		case err == io.EOF:
			return h, nil
		case err != nil:
			return Holding{}, err
		}

		if rec.SIDLossy() != sid {
			return Holding{}, errors.Errorf("record at offset %d is for %s not %s", rd.Offset()-int64(rec.RecordLength()), rec.SIDLossy(), sid)
		}

		h.NumSamples += int(rec.NumSamples())
		h.Records++

		if e := rec.EndTime().Time(); e.After(h.End) {
			h.End = e
		}
	}
}

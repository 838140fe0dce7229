//go:build fuzz
// +build fuzz

package mseed_test

import (
	"testing"

	"github.com/GeoNet/miniseed/internal/mseed"
)

// FuzzParse checks that arbitrary input never panics and that records which
// parse keep their own length.
func FuzzParse(f *testing.F) {
	f.Add(basic().build())
	f.Add(steady().build())
	f.Add([]byte("MS"))

	s := basic()
	s.encoding = 11
	s.count = 28
	s.payload = steim2Frame(5)
	f.Add(s.build())

	f.Fuzz(func(t *testing.T, buf []byte) {
		if len(buf) > 1<<16 {
			t.Skip("input too large")
		}

		r, err := mseed.Parse(buf, mseed.Options{UnpackData: true, ValidateCRC: true})
		if err != nil {
			return
		}

		if r.RecordLength() > len(buf) {
			t.Fatalf("record length %d is greater than the %d bytes parsed", r.RecordLength(), len(buf))
		}

		if n, err := mseed.DetectLength(buf); err != nil || n != r.RecordLength() {
			t.Errorf("expected detected length %d got %d (%v)", r.RecordLength(), n, err)
		}

		_ = r.String()
	})
}

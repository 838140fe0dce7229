package main

import (
	"encoding/json"
	"testing"

	wt "github.com/GeoNet/kit/weft/wefttest"
)

func TestRecordSummary(t *testing.T) {
	r := wt.Request{ID: wt.L(), URL: "/record?samples=5", Method: "POST", PostBody: day, Content: "application/json"}

	b, err := r.Do(testServer.URL)
	if err != nil {
		t.Fatal(err)
	}

	var s []recordSummary

	if err := json.Unmarshal(b, &s); err != nil {
		t.Fatal(err)
	}

	if len(s) != 10 {
		t.Fatalf("expected 10 records got %d", len(s))
	}

	for i, v := range s {
		if v.Offset != int64(i*512) {
			t.Errorf("record %d: expected offset %d got %d", i, i*512, v.Offset)
		}

		if v.SID != "FDSN:NZ_ABAZ_10_E_H_E" {
			t.Errorf("record %d: expected FDSN:NZ_ABAZ_10_E_H_E got %s", i, v.SID)
		}

		if v.Station != "ABAZ" || v.Channel != "EHE" {
			t.Errorf("record %d: expected ABAZ EHE got %s %s", i, v.Station, v.Channel)
		}

		if v.FormatVersion != 2 {
			t.Errorf("record %d: expected format version 2 got %d", i, v.FormatVersion)
		}

		if v.SampleCount != 100 || v.SampleRate != 100 {
			t.Errorf("record %d: expected 100 samples at 100 Hz got %d at %g", i, v.SampleCount, v.SampleRate)
		}

		if v.Start.Time().Sub(start).Seconds() != float64(i) {
			t.Errorf("record %d: unexpected start %s", i, v.Start)
		}

		if len(v.Samples) != 5 {
			t.Errorf("record %d: expected 5 samples got %d", i, len(v.Samples))
		}
	}

	if s[0].Samples[4] != 4 {
		t.Errorf("expected sample value 4 got %g", s[0].Samples[4])
	}
}

func TestRecordHeadersOnly(t *testing.T) {
	r := wt.Request{ID: wt.L(), URL: "/record", Method: "POST", PostBody: day[:512], Content: "application/json"}

	b, err := r.Do(testServer.URL)
	if err != nil {
		t.Fatal(err)
	}

	var s []recordSummary

	if err := json.Unmarshal(b, &s); err != nil {
		t.Fatal(err)
	}

	if len(s) != 1 {
		t.Fatalf("expected 1 record got %d", len(s))
	}

	if s[0].Samples != nil {
		t.Errorf("expected no samples got %d", len(s[0].Samples))
	}

	if s[0].End.Time().Sub(s[0].Start.Time()).Seconds() != 0.99 {
		t.Errorf("expected a 0.99 s record got %s to %s", s[0].Start, s[0].End)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/GeoNet/kit/weft"
	"github.com/GeoNet/miniseed/internal/mseed"
)

type recordQuery struct {
	Samples int  `schema:"samples"` // number of samples to include per record, -1 for all.
	CRC     bool `schema:"crc"`
}

// recordSummary is the JSON description of a decoded record.
type recordSummary struct {
	Offset        int64           `json:"offset"`
	SID           string          `json:"sid"`
	Network       string          `json:"network,omitempty"`
	Station       string          `json:"station,omitempty"`
	Location      string          `json:"location,omitempty"`
	Channel       string          `json:"channel,omitempty"`
	FormatVersion uint8           `json:"formatVersion"`
	PubVersion    uint8           `json:"pubVersion"`
	RecordLength  int             `json:"recordLength"`
	Start         mseed.NSTime    `json:"start"`
	End           mseed.NSTime    `json:"end"`
	SampleRate    float64         `json:"sampleRate"`
	SampleCount   int64           `json:"sampleCount"`
	Encoding      string          `json:"encoding"`
	Flags         uint8           `json:"flags"`
	CRC           uint32          `json:"crc"`
	Extra         json.RawMessage `json:"extra,omitempty"`
	Samples       []float64       `json:"samples,omitempty"`
	Text          string          `json:"text,omitempty"`
}

// recordHandler decodes the miniSEED records in a POST body and describes them as JSON.
func recordHandler(r *http.Request, h http.Header, b *bytes.Buffer) error {
	err := weft.CheckQuery(r, []string{"POST"}, []string{}, []string{"samples", "crc"})
	if err != nil {
		return err
	}

	q := recordQuery{CRC: opts.ValidateCRC}

	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		return weft.StatusError{Code: http.StatusBadRequest, Err: err}
	}

	defer r.Body.Close()

	rd := mseed.NewReader(r.Body, mseed.Options{UnpackData: q.Samples != 0, ValidateCRC: q.CRC})

	var out []recordSummary

	for {
		off := rd.Offset()

		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var e *mseed.Error
			if errors.As(err, &e) || errors.Is(err, io.ErrUnexpectedEOF) {
				return weft.StatusError{Code: http.StatusBadRequest, Err: err}
			}
			return err
		}

		s, err := summarise(off, rec, q.Samples)
		if err != nil {
			return weft.StatusError{Code: http.StatusBadRequest, Err: err}
		}

		out = append(out, s)
	}

	if len(out) == 0 {
		return weft.StatusError{Code: http.StatusBadRequest, Err: errors.New("no miniSEED records in the request body")}
	}

	h.Set("Content-Type", "application/json")

	return json.NewEncoder(b).Encode(out)
}

func summarise(off int64, rec *mseed.Record, n int) (recordSummary, error) {
	s := recordSummary{
		Offset:        off,
		SID:           rec.SIDLossy(),
		Network:       rec.Network(),
		Station:       rec.Station(),
		Location:      rec.Location(),
		Channel:       rec.Channel(),
		FormatVersion: rec.FormatVersion(),
		PubVersion:    rec.PubVersion(),
		RecordLength:  rec.RecordLength(),
		Start:         rec.StartTime(),
		End:           rec.EndTime(),
		SampleRate:    rec.SampleRateHz(),
		SampleCount:   rec.SampleCount(),
		Encoding:      rec.Encoding().String(),
		Flags:         rec.Flags(),
		CRC:           rec.CRC(),
	}

	if rec.ExtraLength() > 0 {
		if _, err := rec.ExtraHeaders(); err != nil {
			return recordSummary{}, err
		}
		s.Extra = rec.Extra()
	}

	if n == 0 {
		return s, nil
	}

	v := rec.Samples()

	switch {
	case v.Len() == 0:
		return s, nil
	case v.Type() == mseed.SampleASCII:
		s.Text = string(v.ASCII())
		return s, nil
	}

	f, err := v.Convert(mseed.SampleFloat64, false)
	if err != nil {
		return recordSummary{}, err
	}

	s.Samples = f.Float64s()
	if n > 0 && n < len(s.Samples) {
		s.Samples = s.Samples[:n]
	}

	return s, nil
}

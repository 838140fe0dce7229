package mseed_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/GeoNet/miniseed/internal/mseed"
)

func TestDetectLength(t *testing.T) {
	v3 := basic().build()
	v2 := steady().build()

	in := []struct {
		id       string
		buf      []byte
		expected int
		err      *mseed.Error
	}{
		{id: "miniSEED 3", buf: v3, expected: len(v3)},
		{id: "miniSEED 3 header only", buf: v3[:40], expected: len(v3)},
		{id: "miniSEED 2", buf: v2, expected: 512},
		{id: "miniSEED 2 first blockette", buf: v2[:64], expected: 512},
		{id: "short", buf: v3[:20], err: mseed.ErrWrongLength},
		{id: "miniSEED 2 fixed header only", buf: v2[:44], err: mseed.ErrWrongLength},
		{id: "miniSEED 2 blockette cut", buf: v2[:50], err: mseed.ErrWrongLength},
		{id: "not seed", buf: bytes.Repeat([]byte("x"), 64), err: mseed.ErrNotSEED},
	}

	for _, v := range in {
		n, err := mseed.DetectLength(v.buf)
		if v.err != nil {
			if !errors.Is(err, v.err) {
				t.Errorf("%s: expected error %v got %v", v.id, v.err, err)
			}
			continue
		}

		if err != nil {
			t.Errorf("%s: %s", v.id, err)
			continue
		}

		if n != v.expected {
			t.Errorf("%s: expected length %d got %d", v.id, v.expected, n)
		}
	}
}

func TestReader(t *testing.T) {
	small := basic()

	large := basic()
	large.sid = "FDSN:NZ_WEL__H_H_Z"
	large.count = 500
	large.payload = make([]byte, 2000)

	var buf bytes.Buffer
	buf.Write(small.build())
	buf.Write(steady().build())
	buf.Write(large.build())

	r := mseed.NewReader(&buf, mseed.Options{UnpackData: true, ValidateCRC: true})

	expected := []struct {
		sid     string
		samples int64
	}{
		{sid: "FDSN:XX_STA01_00_B_H_Z", samples: 3},
		{sid: "FDSN:NZ_ABAZ_10_E_H_E", samples: 3},
		{sid: "FDSN:NZ_WEL__H_H_Z", samples: 500},
	}

	for _, e := range expected {
		rec, err := r.Next()
		if err != nil {
			t.Fatal(err)
		}

		if rec.SIDLossy() != e.sid {
			t.Errorf("expected %s got %s", e.sid, rec.SIDLossy())
		}

		if rec.NumSamples() != e.samples {
			t.Errorf("%s: expected %d samples got %d", e.sid, e.samples, rec.NumSamples())
		}
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF got %v", err)
	}

	if r.Offset() != int64(len(small.build())+512+len(large.build())) {
		t.Errorf("unexpected offset %d", r.Offset())
	}
}

func TestReaderTruncated(t *testing.T) {
	b := basic().build()

	r := mseed.NewReader(bytes.NewReader(append(b, b[:len(b)-5]...)), mseed.Options{})

	if _, err := r.Next(); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Next(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF got %v", err)
	}

	// a partial fixed header.
	r = mseed.NewReader(bytes.NewReader(b[:30]), mseed.Options{})

	if _, err := r.Next(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF got %v", err)
	}
}

func TestReaderNotSEED(t *testing.T) {
	r := mseed.NewReader(bytes.NewReader(bytes.Repeat([]byte("x"), 600)), mseed.Options{})

	if _, err := r.Next(); !errors.Is(err, mseed.ErrNotSEED) {
		t.Errorf("expected NotSEED got %v", err)
	}
}

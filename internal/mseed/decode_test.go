package mseed_test

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/GeoNet/miniseed/internal/mseed"
)

func TestDecode(t *testing.T) {
	le := binary.LittleEndian
	be := binary.BigEndian

	f32 := make([]byte, 8)
	le.PutUint32(f32, math.Float32bits(1.5))
	le.PutUint32(f32[4:], math.Float32bits(-2.25))

	f64 := make([]byte, 8)
	be.PutUint64(f64, math.Float64bits(math.Pi))

	in := []struct {
		id       string
		enc      mseed.Encoding
		payload  []byte
		count    int64
		order    binary.ByteOrder
		expected interface{}
	}{
		{id: "ascii", enc: mseed.EncodingASCII, payload: []byte("hello world"), count: 5, order: le, expected: []byte("hello")},
		{id: "int16", enc: mseed.EncodingInt16, payload: uint16s(le, 1, 0xFFFE, 300), count: 3, order: le, expected: []int32{1, -2, 300}},
		{id: "int32", enc: mseed.EncodingInt32, payload: int32s(le, 1, -2, 3), count: 3, order: le, expected: []int32{1, -2, 3}},
		{id: "int32 big endian", enc: mseed.EncodingInt32, payload: int32s(be, 1, -2, 3), count: 3, order: be, expected: []int32{1, -2, 3}},
		{id: "int32 padding", enc: mseed.EncodingInt32, payload: int32s(le, 7, 8, 0, 0), count: 2, order: le, expected: []int32{7, 8}},
		{id: "float32", enc: mseed.EncodingFloat32, payload: f32, count: 2, order: le, expected: []float32{1.5, -2.25}},
		{id: "float64", enc: mseed.EncodingFloat64, payload: f64, count: 1, order: be, expected: []float64{math.Pi}},
		{id: "geoscope24", enc: mseed.EncodingGeoScope24, payload: []byte{0xFF, 0xFF, 0xFE, 0x00, 0x00, 0x05}, count: 2, order: be, expected: []float32{-2, 5}},
		{id: "geoscope24 little endian", enc: mseed.EncodingGeoScope24, payload: []byte{0xFE, 0xFF, 0xFF}, count: 1, order: le, expected: []float32{-2}},
		{id: "geoscope163", enc: mseed.EncodingGeoScope163, payload: uint16s(be, 0x1800, 0x2A00, 0x0000, 0x9C00), count: 4, order: be, expected: []float32{0, 128, -2048, 512}},
		{id: "geoscope164", enc: mseed.EncodingGeoScope164, payload: uint16s(be, 0xF800, 0x9C00), count: 2, order: be, expected: []float32{0, 2}},
		{id: "cdsn", enc: mseed.EncodingCDSN, payload: uint16s(be, 0x1FFF, 0x6000, 0xC000), count: 3, order: be, expected: []int32{0, 4, -1048448}},
		{id: "sro", enc: mseed.EncodingSRO, payload: uint16s(be, 0x0001, 0xAFFF), count: 2, order: be, expected: []int32{1024, -1}},
		{id: "dwwssn", enc: mseed.EncodingDWWSSN, payload: uint16s(be, 0xFFFE, 12), count: 2, order: be, expected: []int32{-2, 12}},
	}

	for _, v := range in {
		s, err := mseed.Decode(v.enc, v.payload, v.count, v.order)
		if err != nil {
			t.Errorf("%s: %s", v.id, err)
			continue
		}

		if s.Type() != v.enc.SampleType() {
			t.Errorf("%s: expected sample type %s got %s", v.id, v.enc.SampleType(), s.Type())
		}

		var got interface{}
		switch s.Type() {
		case mseed.SampleASCII:
			got = s.ASCII()
		case mseed.SampleInt32:
			got = s.Int32s()
		case mseed.SampleFloat32:
			got = s.Float32s()
		case mseed.SampleFloat64:
			got = s.Float64s()
		}

		if !reflect.DeepEqual(v.expected, got) {
			t.Errorf("%s: expected %v got %v", v.id, v.expected, got)
		}

		if s.Len() != int(v.count) {
			t.Errorf("%s: expected %d samples got %d", v.id, v.count, s.Len())
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	in := []struct {
		id      string
		enc     mseed.Encoding
		payload []byte
		count   int64
		err     *mseed.Error
	}{
		{id: "misaligned", enc: mseed.EncodingInt32, payload: make([]byte, 13), count: 3, err: mseed.ErrOutOfRange},
		{id: "misaligned float64", enc: mseed.EncodingFloat64, payload: make([]byte, 12), count: 1, err: mseed.ErrOutOfRange},
		{id: "short int32", enc: mseed.EncodingInt32, payload: make([]byte, 12), count: 4, err: mseed.ErrWrongLength},
		{id: "short ascii", enc: mseed.EncodingASCII, payload: []byte("abc"), count: 4, err: mseed.ErrWrongLength},
		{id: "negative count", enc: mseed.EncodingInt16, payload: make([]byte, 4), count: -1, err: mseed.ErrOutOfRange},
		{id: "sro exponent", enc: mseed.EncodingSRO, payload: uint16s(binary.BigEndian, 0xB001), count: 1, err: mseed.ErrOutOfRange},
		{id: "unknown encoding", enc: mseed.Encoding(2), payload: make([]byte, 4), count: 1, err: mseed.ErrUnknownFormat},
	}

	for _, v := range in {
		_, err := mseed.Decode(v.enc, v.payload, v.count, binary.LittleEndian)
		if !errors.Is(err, v.err) {
			t.Errorf("%s: expected error %v got %v", v.id, v.err, err)
		}
	}
}

func TestParseEncoding(t *testing.T) {
	for _, b := range []int8{0, 1, 3, 4, 5, 10, 11, 12, 13, 14, 16, 30, 32} {
		e, err := mseed.ParseEncoding(b)
		if err != nil {
			t.Errorf("%d: %s", b, err)
		}
		if int8(e) != b {
			t.Errorf("expected encoding %d got %d", b, int8(e))
		}
	}

	for _, b := range []int8{-1, 2, 6, 15, 19, 127} {
		if _, err := mseed.ParseEncoding(b); mseed.KindOf(err) != mseed.UnknownFormat {
			t.Errorf("%d: expected UnknownFormat got %v", b, err)
		}
	}

	if s := mseed.EncodingSteim2.String(); s != "Steim2" {
		t.Errorf("expected Steim2 got %s", s)
	}
	if s := mseed.Encoding(99).String(); s != "Encoding(99)" {
		t.Errorf("expected Encoding(99) got %s", s)
	}
}

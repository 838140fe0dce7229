package mseed_test

import (
	"testing"

	"github.com/GeoNet/miniseed/internal/mseed"
)

func TestParseSID(t *testing.T) {
	in := []struct {
		sid      string
		expected mseed.Identifier
	}{
		{sid: "XX_STA01_00_BHZ", expected: mseed.Identifier{Network: "XX", Station: "STA01", Location: "00", Channel: "BHZ"}},
		{sid: "FDSN:XX_STA01_00_B_H_Z", expected: mseed.Identifier{Network: "XX", Station: "STA01", Location: "00", Channel: "BHZ"}},
		{sid: "FDSN:NZ_WEL__L_H_Z\x00\x00", expected: mseed.Identifier{Network: "NZ", Station: "WEL", Location: "", Channel: "LHZ"}},
		{sid: "FDSN:XX_TEST__VM_AB_X", expected: mseed.Identifier{Network: "XX", Station: "TEST", Location: "", Channel: "VM_AB_X"}},
	}

	for _, v := range in {
		id, err := mseed.ParseSID(v.sid)
		if err != nil {
			t.Errorf("%q: %s", v.sid, err)
			continue
		}

		if id != v.expected {
			t.Errorf("%q: expected %+v got %+v", v.sid, v.expected, id)
		}
	}

	for _, s := range []string{"", "XX", "XX_STA01", "FDSN:XX_STA01_00"} {
		_, err := mseed.ParseSID(s)
		if err == nil || mseed.KindOf(err) != mseed.GenericError {
			t.Errorf("%q: expected GenericError got %v", s, err)
		}
	}
}

func TestFormatSID(t *testing.T) {
	if s := mseed.FormatSID("NZ", "ABAZ", "10", "EHE"); s != "FDSN:NZ_ABAZ_10_E_H_E" {
		t.Errorf("expected FDSN:NZ_ABAZ_10_E_H_E got %s", s)
	}

	id := mseed.Identifier{Network: "XX", Station: "STA01", Location: "00", Channel: "BHZ"}

	if s := id.String(); s != "XX_STA01_00_BHZ" {
		t.Errorf("expected XX_STA01_00_BHZ got %s", s)
	}

	back, err := mseed.ParseSID(id.SID())
	if err != nil {
		t.Fatal(err)
	}

	if back != id {
		t.Errorf("expected %+v got %+v", id, back)
	}
}

func TestLossySID(t *testing.T) {
	in := []struct {
		raw      []byte
		expected string
	}{
		{raw: []byte("FDSN:XX_STA01_00_B_H_Z\x00\x00\x00"), expected: "FDSN:XX_STA01_00_B_H_Z"},
		{raw: []byte{'X', 0xff, 'Y'}, expected: "X�Y"},
		{raw: nil, expected: ""},
	}

	for _, v := range in {
		if s := mseed.LossySID(v.raw); s != v.expected {
			t.Errorf("expected %q got %q", v.expected, s)
		}
	}
}

package cfg_test

import (
	"os"
	"strings"
	"testing"

	"github.com/GeoNet/miniseed/internal/platform/cfg"
)

func TestDecoderEnv(t *testing.T) {
	os.Setenv("MSEED_VALIDATE_CRC", "")
	os.Setenv("MSEED_UNPACK_DATA", "")

	d, err := cfg.DecoderEnv()
	if err != nil {
		t.Errorf("unexpected error %s", err)
	}

	if d.ValidateCRC || d.UnpackData {
		t.Errorf("expected false for unset env vars got %+v", d)
	}

	os.Setenv("MSEED_VALIDATE_CRC", "yes please")

	_, err = cfg.DecoderEnv()
	if err == nil {
		t.Error("expected error")
	}
	if !strings.HasPrefix(err.Error(), "MSEED_VALIDATE_CRC") {
		t.Errorf("expected error starting with MSEED_VALIDATE_CRC... got: %s", err.Error())
	}

	os.Setenv("MSEED_VALIDATE_CRC", "true")
	os.Setenv("MSEED_UNPACK_DATA", "2")

	_, err = cfg.DecoderEnv()
	if err == nil {
		t.Error("expected error")
	}
	if !strings.HasPrefix(err.Error(), "MSEED_UNPACK_DATA") {
		t.Errorf("expected error starting with MSEED_UNPACK_DATA... got: %s", err.Error())
	}

	os.Setenv("MSEED_UNPACK_DATA", "1")

	d, err = cfg.DecoderEnv()
	if err != nil {
		t.Errorf("unexpected error %s", err)
	}

	o := d.Options()
	if !o.ValidateCRC {
		t.Error("expected ValidateCRC true")
	}
	if !o.UnpackData {
		t.Error("expected UnpackData true")
	}
}

func TestSourceEnv(t *testing.T) {
	os.Setenv("MSEED_DIR", "")
	os.Setenv("S3_BUCKET", "")
	os.Setenv("S3_PREFIX", "")

	_, err := cfg.SourceEnv()
	if err == nil {
		t.Error("expected error")
	}
	if !strings.HasPrefix(err.Error(), "MSEED_DIR or S3_BUCKET") {
		t.Errorf("expected error starting with MSEED_DIR or S3_BUCKET... got: %s", err.Error())
	}

	os.Setenv("MSEED_DIR", "/work/mseed")
	os.Setenv("S3_BUCKET", "seis-archive")

	if _, err = cfg.SourceEnv(); err == nil {
		t.Error("expected error when both sources are set")
	}

	os.Setenv("MSEED_DIR", "")
	os.Setenv("S3_PREFIX", "miniseed/2024")

	s, err := cfg.SourceEnv()
	if err != nil {
		t.Errorf("unexpected error %s", err)
	}

	if !s.S3() {
		t.Error("expected an S3 source")
	}

	if s.Prefix != "miniseed/2024" {
		t.Errorf("expected miniseed/2024 got %s", s.Prefix)
	}
}

// Package cfg is for reading decoder and data source config from environment variables.
package cfg

import (
	"os"
	"strconv"

	"github.com/GeoNet/miniseed/internal/mseed"
	"github.com/pkg/errors"
)

type Decoder struct {
	ValidateCRC bool // Check miniSEED 3 record CRCs [MSEED_VALIDATE_CRC].
	UnpackData  bool // Decode samples while parsing [MSEED_UNPACK_DATA].
}

// DecoderEnv returns a Decoder with configuration from the environment variables.
// Unset variables are false.  Returns an error for values that do not parse as a bool.
func DecoderEnv() (Decoder, error) {
	var d Decoder
	var err error

	d.ValidateCRC, err = envBool("MSEED_VALIDATE_CRC")
	if err != nil {
		return Decoder{}, err
	}

	d.UnpackData, err = envBool("MSEED_UNPACK_DATA")
	if err != nil {
		return Decoder{}, err
	}

	return d, nil
}

// Options returns the record parsing options for d.
func (d Decoder) Options() mseed.Options {
	return mseed.Options{
		ValidateCRC: d.ValidateCRC,
		UnpackData:  d.UnpackData,
	}
}

type Source struct {
	Dir    string // Directory of miniSEED files [MSEED_DIR].
	Bucket string // S3 bucket of miniSEED files [S3_BUCKET].
	Prefix string // Key prefix in Bucket [S3_PREFIX].
}

// SourceEnv returns a Source with configuration from the environment variables.
// Exactly one of MSEED_DIR or S3_BUCKET must be set.
func SourceEnv() (Source, error) {
	s := Source{
		Dir:    os.Getenv("MSEED_DIR"),
		Bucket: os.Getenv("S3_BUCKET"),
		Prefix: os.Getenv("S3_PREFIX"),
	}

	switch {
	case s.Dir == "" && s.Bucket == "":
		return Source{}, errors.New("MSEED_DIR or S3_BUCKET env var must be set.")
	case s.Dir != "" && s.Bucket != "":
		return Source{}, errors.New("MSEED_DIR and S3_BUCKET env vars are both set.")
	}

	return s, nil
}

// S3 reports whether the source is an S3 bucket.
func (s Source) S3() bool {
	return s.Bucket != ""
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrap(err, key+" invalid")
	}

	return b, nil
}

package valid

import (
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/GeoNet/miniseed/internal/mseed"
)

var (
	// query codes allow the ? and * wildcards.
	network  = regexp.MustCompile(`^[A-Z0-9?*]{1,8}$`)
	station  = regexp.MustCompile(`^[A-Z0-9?*]{1,8}$`)
	location = regexp.MustCompile(`^([A-Z0-9?*]{1,8}|--)$`)
	channel  = regexp.MustCompile(`^([A-Z0-9?*]{1,3}|[A-Z0-9?*]+_[A-Z0-9?*]+_[A-Z0-9?*]+)$`)
)

type Validator func(string) error

// implements weft.Error
type Error struct {
	Code int
	Err  error
}

func (s Error) Error() string {
	if s.Err == nil {
		return "<nil>"
	}
	return s.Err.Error()
}

func (s Error) Status() int {
	return s.Code
}

func Network(s string) error {
	return match(network, "network", s)
}

func Station(s string) error {
	return match(station, "station", s)
}

// Location codes may be empty.  "--" is accepted as the empty location.
func Location(s string) error {
	if s == "" {
		return nil
	}
	return match(location, "location", s)
}

// Channel accepts SEED channel codes and FDSN band_source_subsource codes.
func Channel(s string) error {
	return match(channel, "channel", s)
}

// SID for validating FDSN source identifiers.
func SID(s string) error {
	if _, err := mseed.ParseSID(s); err != nil {
		return Error{Code: http.StatusBadRequest, Err: fmt.Errorf("invalid source identifier: %s", s)}
	}

	return nil
}

// Key for validating source file keys.  Keys are relative slash separated paths
// that stay inside the source.
func Key(s string) error {
	if s == "" || strings.HasPrefix(s, "/") || strings.Contains(s, "\\") || path.Clean(s) != s || strings.HasPrefix(s, "..") {
		return Error{Code: http.StatusBadRequest, Err: fmt.Errorf("invalid key: %s", s)}
	}

	return nil
}

func match(re *regexp.Regexp, name, s string) error {
	if re.MatchString(s) {
		return nil
	}

	return Error{Code: http.StatusBadRequest, Err: fmt.Errorf("invalid %s: %s", name, s)}
}

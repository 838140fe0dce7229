package mseed

import (
	"bytes"
	"strings"
)

// MaxSIDLength is the size of the raw source identifier buffer.
const MaxSIDLength = 64

const sidPrefix = "FDSN:"

// Identifier is the network, station, location and channel codes
// of a source identifier.
type Identifier struct {
	Network, Station, Location, Channel string
}

// ParseSID splits a source identifier of the form NET_STA_LOC_CHA into its codes.
// An optional FDSN: prefix is removed and a channel given as band, source and
// subsource (B_S_SS) with single character parts is collapsed to BSS.
func ParseSID(sid string) (Identifier, error) {
	s := strings.TrimPrefix(strings.TrimRight(sid, "\x00 "), sidPrefix)

	p := strings.SplitN(s, "_", 4)
	if len(p) != 4 {
		return Identifier{}, newError(GenericError, "incorrect number of identifier delimiters (%d): %s", len(p)-1, sid)
	}

	id := Identifier{
		Network:  strings.TrimSpace(p[0]),
		Station:  strings.TrimSpace(p[1]),
		Location: strings.TrimSpace(p[2]),
		Channel:  strings.TrimSpace(p[3]),
	}

	if c := id.Channel; len(c) == 5 && c[1] == '_' && c[3] == '_' {
		id.Channel = string([]byte{c[0], c[2], c[4]})
	}

	return id, nil
}

// String returns NET_STA_LOC_CHA.
func (i Identifier) String() string {
	return strings.Join([]string{i.Network, i.Station, i.Location, i.Channel}, "_")
}

// SID returns the FDSN source identifier for i.
func (i Identifier) SID() string {
	return FormatSID(i.Network, i.Station, i.Location, i.Channel)
}

// FormatSID builds an FDSN source identifier.  A three character channel
// is expanded to band, source and subsource.
func FormatSID(network, station, location, channel string) string {
	if len(channel) == 3 {
		channel = strings.Join([]string{channel[0:1], channel[1:2], channel[2:3]}, "_")
	}

	return sidPrefix + strings.Join([]string{network, station, location, channel}, "_")
}

// LossySID returns raw as a string with NUL padding removed.  Invalid
// UTF-8 is replaced.  It never fails.
func LossySID(raw []byte) string {
	return strings.ToValidUTF8(string(bytes.ReplaceAll(raw, []byte{0}, nil)), "�")
}

// Package mseed is for decoding miniSEED records.
//
// Both miniSEED 3 and miniSEED 2 (with blockette 1000) records are parsed into a
// Record that owns copies of its identifier, extra headers and data payload.  Sample
// data is decoded on request with Unpack, or at parse time with Options.UnpackData.
package mseed

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const (
	// FixedHeaderSize is the length of the miniSEED 3 fixed header.
	FixedHeaderSize = 40
	// MaxRecordLength is the largest record length accepted.
	MaxRecordLength = 10485760
)

// Options control record parsing.
type Options struct {
	// UnpackData decodes the samples while parsing.
	UnpackData bool
	// ValidateCRC checks the CRC of miniSEED 3 records.
	ValidateCRC bool
}

// Record is a parsed miniSEED record.
type Record struct {
	sid    [MaxSIDLength]byte
	sidLen int

	format     uint8
	flags      uint8
	reclen     int
	pubVersion uint8

	start       NSTime
	sampleRate  float64
	sampleCount int64
	crc         uint32

	encoding Encoding
	order    binary.ByteOrder

	extra   []byte
	payload []byte

	samples  Samples
	unpacked bool
}

// Parse parses the record at the start of buf.  Bytes in buf after the record are ignored.
func Parse(buf []byte, opts Options) (*Record, error) {
	if len(buf) < FixedHeaderSize {
		return nil, newError(WrongLength, "buffer length %d is less than the fixed header length %d", len(buf), FixedHeaderSize)
	}

	var r *Record
	var err error

	switch {
	case isMS3(buf):
		r, err = parseMS3(buf, opts.ValidateCRC)
	case len(buf) >= ms2HeaderSize:
		r, err = parseMS2(buf)
	default:
		err = newError(NotSEED, "buffer does not contain a miniSEED record header")
	}
	if err != nil {
		return nil, err
	}

	if opts.UnpackData {
		if _, err := r.Unpack(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Unpack decodes the sample data and returns the number of samples.  Calling Unpack
// on a decoded record returns the existing count.  On error the record is unchanged.
func (r *Record) Unpack() (int64, error) {
	if r.unpacked {
		return int64(r.samples.Len()), nil
	}

	payload := r.payload
	if r.format == 2 {
		payload = trimPadding(r.encoding, payload)
	}

	s, err := Decode(r.encoding, payload, r.sampleCount, r.order)
	if err != nil {
		return 0, err
	}

	r.samples = s
	r.unpacked = true

	return int64(s.Len()), nil
}

func (r *Record) setSID(sid string) error {
	if len(sid) > MaxSIDLength {
		return newError(OutOfRange, "identifier length %d is greater than %d", len(sid), MaxSIDLength)
	}

	r.sidLen = copy(r.sid[:], sid)

	return nil
}

// SIDLossy returns the source identifier with invalid UTF-8 replaced.
func (r *Record) SIDLossy() string {
	return LossySID(r.sid[:r.sidLen])
}

// Identifier returns the network, station, location and channel codes.
func (r *Record) Identifier() (Identifier, error) {
	return ParseSID(string(r.sid[:r.sidLen]))
}

// Network is the network code, empty if the identifier does not parse.
func (r *Record) Network() string {
	id, _ := r.Identifier()
	return id.Network
}

// Station is the station code, empty if the identifier does not parse.
func (r *Record) Station() string {
	id, _ := r.Identifier()
	return id.Station
}

// Location is the location code, empty if the identifier does not parse.
func (r *Record) Location() string {
	id, _ := r.Identifier()
	return id.Location
}

// Channel is the channel code, empty if the identifier does not parse.
func (r *Record) Channel() string {
	id, _ := r.Identifier()
	return id.Channel
}

// StartTime is the time of the first sample.
func (r *Record) StartTime() NSTime {
	return r.start
}

// Calendar returns the start time as calendar fields.
func (r *Record) Calendar() (Calendar, error) {
	return r.start.Calendar()
}

// EndTime is the time of the last sample, the start time when there is no sample rate
// or no samples.
func (r *Record) EndTime() NSTime {
	rate := r.SampleRateHz()
	if rate <= 0 || r.sampleCount < 1 {
		return r.start
	}

	span := math.Round(float64(r.sampleCount-1) * float64(NSTModulus) / rate)

	return r.start + NSTime(span)
}

func (r *Record) Encoding() Encoding {
	return r.encoding
}

func (r *Record) PubVersion() uint8 {
	return r.pubVersion
}

// FormatVersion is the miniSEED major version, 2 or 3.
func (r *Record) FormatVersion() uint8 {
	return r.format
}

// Flags are the miniSEED 3 record flags.  For miniSEED 2 the equivalent
// activity, I/O and quality flags are mapped.
func (r *Record) Flags() uint8 {
	return r.flags
}

// SampleCount is the number of samples declared in the header.
func (r *Record) SampleCount() int64 {
	return r.sampleCount
}

// SampleRate is the header sample rate, negative values are a sample period in seconds.
func (r *Record) SampleRate() float64 {
	return r.sampleRate
}

// SampleRateHz is the sample rate in samples per second.
func (r *Record) SampleRateHz() float64 {
	if r.sampleRate < 0 {
		return -1.0 / r.sampleRate
	}
	return r.sampleRate
}

// CRC is the header CRC, zero for miniSEED 2.
func (r *Record) CRC() uint32 {
	return r.crc
}

func (r *Record) RecordLength() int {
	return r.reclen
}

func (r *Record) ExtraLength() int {
	return len(r.extra)
}

// Extra returns a copy of the raw extra headers.
func (r *Record) Extra() []byte {
	return append([]byte(nil), r.extra...)
}

// ExtraHeaders decodes the extra headers JSON object.  A record without extra
// headers returns an empty map.
func (r *Record) ExtraHeaders() (map[string]interface{}, error) {
	m := make(map[string]interface{})

	if len(r.extra) == 0 {
		return m, nil
	}

	if err := json.Unmarshal(r.extra, &m); err != nil {
		return nil, newError(GenericError, "invalid extra headers: %s", err.Error())
	}

	return m, nil
}

func (r *Record) DataLength() int {
	return len(r.payload)
}

// Payload returns a copy of the encoded data payload.
func (r *Record) Payload() []byte {
	return append([]byte(nil), r.payload...)
}

// ByteOrder is the byte order of the data payload.
func (r *Record) ByteOrder() binary.ByteOrder {
	return r.order
}

// SampleType is the type the data payload decodes to.
func (r *Record) SampleType() SampleType {
	return r.encoding.SampleType()
}

// NumSamples is the number of decoded samples, zero before Unpack.
func (r *Record) NumSamples() int64 {
	return int64(r.samples.Len())
}

// DataSize is the size in bytes of the decoded samples.
func (r *Record) DataSize() int {
	return r.samples.Size()
}

// Samples returns the decoded samples, the zero Samples before Unpack.
func (r *Record) Samples() Samples {
	return r.samples
}

// ASCII unpacks the record if needed and returns ASCII samples.  It returns nil if
// decoding fails or the samples are another type.
func (r *Record) ASCII() []byte {
	if _, err := r.Unpack(); err != nil {
		return nil
	}
	return r.samples.ASCII()
}

// Int32s unpacks the record if needed and returns integer samples.  It returns nil if
// decoding fails or the samples are another type.
func (r *Record) Int32s() []int32 {
	if _, err := r.Unpack(); err != nil {
		return nil
	}
	return r.samples.Int32s()
}

// Float32s unpacks the record if needed and returns float samples.  It returns nil if
// decoding fails or the samples are another type.
func (r *Record) Float32s() []float32 {
	if _, err := r.Unpack(); err != nil {
		return nil
	}
	return r.samples.Float32s()
}

// Float64s unpacks the record if needed and returns double samples.  It returns nil if
// decoding fails or the samples are another type.
func (r *Record) Float64s() []float64 {
	if _, err := r.Unpack(); err != nil {
		return nil
	}
	return r.samples.Float64s()
}

func (r *Record) String() string {
	return fmt.Sprintf("%s, %d, %d, %d samples, %s Hz, %s",
		r.SIDLossy(), r.pubVersion, r.reclen, r.sampleCount,
		strconv.FormatFloat(r.SampleRateHz(), 'g', 10, 64), r.start)
}

package mseed

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/GeoNet/kit/seis/ms"
)

const ms2HeaderSize = ms.RecordHeaderSize

// blockette types used when parsing.
const (
	blocketteSampleRate = 100
	blocketteDataOnly   = 1000
	blocketteExtension  = 1001
)

// ms2Header decodes and checks a miniSEED 2 fixed header.
func ms2Header(buf []byte) (ms.RecordHeader, error) {
	h := ms.DecodeRecordHeader(buf[:ms2HeaderSize])

	if !h.IsValid() {
		return ms.RecordHeader{}, newError(NotSEED, "buffer does not contain a miniSEED record header")
	}

	t := h.RecordStartTime
	if validTime(int(t.Year), int(t.Doy), t.Hour, t.Minute, t.Second) {
		return h, nil
	}

	// little endian headers are only recognised, not decoded.
	year := binary.LittleEndian.Uint16(buf[20:22])
	yday := binary.LittleEndian.Uint16(buf[22:24])
	if validTime(int(year), int(yday), t.Hour, t.Minute, t.Second) {
		return ms.RecordHeader{}, newError(UnknownFormat, "little endian miniSEED 2 headers are not supported")
	}

	return ms.RecordHeader{}, newError(NotSEED, "buffer does not contain a miniSEED record header")
}

// ms2Blockettes is what is used from the blockette chain.
type ms2Blockettes struct {
	b1000    *ms.Blockette1000
	b1001    *ms.Blockette1001
	rate     float32
	haveRate bool
	end      int // offset past the last blockette
}

// walkBlockettes follows the blockette chain of a miniSEED 2 record held in buf.
// The chain must move forward through the record, a chain running past the end
// of buf is a WrongLength error.
func walkBlockettes(buf []byte, h ms.RecordHeader) (ms2Blockettes, error) {
	var b ms2Blockettes

	off := int(h.FirstBlockette)
	for off != 0 {
		if off < ms2HeaderSize {
			return b, newError(OutOfRange, "blockette offset %d is inside the fixed header", off)
		}

		if off+ms.BlocketteHeaderSize > len(buf) {
			return b, newError(WrongLength, "blockette at offset %d is beyond the %d bytes available", off, len(buf))
		}

		bh := ms.DecodeBlocketteHeader(buf[off:])

		var size int
		switch bh.BlocketteType {
		case blocketteSampleRate:
			size = 12
		case blocketteDataOnly:
			size = ms.BlocketteHeaderSize + ms.Blockette1000Size
		case blocketteExtension:
			size = ms.BlocketteHeaderSize + ms.Blockette1001Size
		default:
			size = ms.BlocketteHeaderSize
		}

		if off+size > len(buf) {
			return b, newError(WrongLength, "blockette %d at offset %d is beyond the %d bytes available", bh.BlocketteType, off, len(buf))
		}

		body := buf[off+ms.BlocketteHeaderSize : off+size]

		switch bh.BlocketteType {
		case blocketteSampleRate:
			b.rate = math.Float32frombits(binary.BigEndian.Uint32(body[0:4]))
			b.haveRate = true
		case blocketteDataOnly:
			v := ms.DecodeBlockette1000(body)
			b.b1000 = &v
		case blocketteExtension:
			v := ms.DecodeBlockette1001(body)
			b.b1001 = &v
		}

		if off+size > b.end {
			b.end = off + size
		}

		next := int(bh.NextBlockette)
		if next != 0 && next <= off {
			return b, newError(OutOfRange, "blockette chain loops back from offset %d to %d", off, next)
		}

		off = next
	}

	return b, nil
}

// ms2Length returns the record length from the blockette 1000 exponent.
func ms2Length(b ms2Blockettes) (int, error) {
	if b.b1000 == nil {
		return 0, newError(UnknownFormat, "no blockette 1000, record length and encoding are unknown")
	}

	exp := b.b1000.RecordLength
	if exp > 30 || 1<<exp < ms2HeaderSize || 1<<exp > MaxRecordLength {
		return 0, newError(OutOfRange, "record length 2^%d is out of range", exp)
	}

	return 1 << exp, nil
}

func parseMS2(buf []byte) (*Record, error) {
	h, err := ms2Header(buf)
	if err != nil {
		return nil, err
	}

	b, err := walkBlockettes(buf, h)
	if err != nil {
		return nil, err
	}

	reclen, err := ms2Length(b)
	if err != nil {
		return nil, err
	}

	if len(buf) < reclen {
		return nil, newError(WrongLength, "buffer length %d is less than the record length %d", len(buf), reclen)
	}

	if b.end > reclen {
		return nil, newError(OutOfRange, "blockettes end at %d, beyond the record length %d", b.end, reclen)
	}

	enc, err := ParseEncoding(int8(b.b1000.Encoding)) //nolint:gosec
	if err != nil {
		return nil, err
	}

	r := Record{
		format:      2,
		flags:       ms2Flags(h),
		reclen:      reclen,
		pubVersion:  ms2PubVersion(h.DataQualityIndicator),
		sampleRate:  h.SampleRate(),
		sampleCount: int64(h.NumberOfSamples),
		encoding:    enc,
		order:       binary.ByteOrder(binary.BigEndian),
	}

	if b.b1000.WordOrder == 0 {
		r.order = binary.LittleEndian
	}

	if b.haveRate {
		r.sampleRate = float64(b.rate)
	}

	start := h.StartTime()
	if b.b1001 != nil {
		start = start.Add(time.Duration(b.b1001.MicroSec) * time.Microsecond)
	}
	r.start = FromTime(start)

	if err := r.setSID(FormatSID(h.Network(), h.Station(), h.Location(), h.Channel())); err != nil {
		return nil, err
	}

	switch bod := int(h.BeginningOfData); {
	case bod == 0:
		r.payload = []byte{}
	case bod < ms2HeaderSize || bod > reclen:
		return nil, newError(OutOfRange, "data offset %d is outside the record length %d", bod, reclen)
	default:
		r.payload = append([]byte{}, buf[bod:reclen]...)
	}

	r.extra = []byte{}

	return &r, nil
}

// ms2Flags maps the calibration, time tag questionable and clock locked bits
// onto the miniSEED 3 flags.
func ms2Flags(h ms.RecordHeader) uint8 {
	var f uint8

	if h.ActivityFlags&0x01 != 0 {
		f |= 0x01
	}
	if h.DataQualityFlags&0x80 != 0 {
		f |= 0x02
	}
	if h.IOAndClockFlags&0x20 != 0 {
		f |= 0x04
	}

	return f
}

// ms2PubVersion maps a data quality indicator onto a publication version.
func ms2PubVersion(q byte) uint8 {
	switch q {
	case 'R':
		return 1
	case 'D':
		return 2
	case 'Q':
		return 3
	case 'M':
		return 4
	default:
		return 0
	}
}

package mseed

import (
	"encoding/binary"
	"math"
)

// miniSEED 3 fixed header field offsets.
const (
	ms3Flags      = 3
	ms3Nanosecond = 4
	ms3Year       = 8
	ms3YDay       = 10
	ms3Hour       = 12
	ms3Minute     = 13
	ms3Second     = 14
	ms3Encoding   = 15
	ms3SampleRate = 16
	ms3SampleCnt  = 24
	ms3CRC        = 28
	ms3PubVersion = 32
	ms3SIDLength  = 33
	ms3ExtraLen   = 34
	ms3DataLen    = 36
)

// isMS3 reports whether buf starts with a plausible miniSEED 3 fixed header.
func isMS3(buf []byte) bool {
	if len(buf) < FixedHeaderSize || buf[0] != 'M' || buf[1] != 'S' || buf[2] != 3 {
		return false
	}

	year := binary.LittleEndian.Uint16(buf[ms3Year:])
	yday := binary.LittleEndian.Uint16(buf[ms3YDay:])

	return validTime(int(year), int(yday), buf[ms3Hour], buf[ms3Minute], buf[ms3Second])
}

// validTime is the header time sanity check shared by both format versions.
func validTime(year, yday int, hour, minute, second uint8) bool {
	return year >= 1900 && year <= 2100 && yday >= 1 && yday <= 366 && hour <= 23 && minute <= 59 && second <= 60
}

// ms3Length returns the record length declared by a miniSEED 3 fixed header.
func ms3Length(buf []byte) (int, error) {
	sidLen := int64(buf[ms3SIDLength])
	extraLen := int64(binary.LittleEndian.Uint16(buf[ms3ExtraLen:]))
	dataLen := int64(binary.LittleEndian.Uint32(buf[ms3DataLen:]))

	reclen := FixedHeaderSize + sidLen + extraLen + dataLen
	if reclen > MaxRecordLength {
		return 0, newError(OutOfRange, "record length %d is greater than %d", reclen, MaxRecordLength)
	}

	return int(reclen), nil
}

func parseMS3(buf []byte, validateCRC bool) (*Record, error) {
	reclen, err := ms3Length(buf)
	if err != nil {
		return nil, err
	}

	sidLen := int(buf[ms3SIDLength])
	if sidLen > MaxSIDLength {
		return nil, newError(OutOfRange, "identifier length %d is greater than %d", sidLen, MaxSIDLength)
	}

	if len(buf) < reclen {
		return nil, newError(WrongLength, "buffer length %d is less than the record length %d", len(buf), reclen)
	}

	rec := buf[:reclen]

	crc := binary.LittleEndian.Uint32(rec[ms3CRC:])
	if validateCRC {
		if c := recordCRC(rec); c != crc {
			return nil, newError(InvalidCRC, "CRC mismatch, header 0x%08X calculated 0x%08X", crc, c)
		}
	}

	enc, err := ParseEncoding(int8(rec[ms3Encoding])) //nolint:gosec
	if err != nil {
		return nil, err
	}

	start, err := FromCalendar(
		int(binary.LittleEndian.Uint16(rec[ms3Year:])),
		int(binary.LittleEndian.Uint16(rec[ms3YDay:])),
		int(rec[ms3Hour]),
		int(rec[ms3Minute]),
		int(rec[ms3Second]),
		int(binary.LittleEndian.Uint32(rec[ms3Nanosecond:])),
	)
	if err != nil {
		return nil, err
	}

	r := Record{
		format:      3,
		flags:       rec[ms3Flags],
		reclen:      reclen,
		pubVersion:  rec[ms3PubVersion],
		start:       start,
		sampleRate:  math.Float64frombits(binary.LittleEndian.Uint64(rec[ms3SampleRate:])),
		sampleCount: int64(binary.LittleEndian.Uint32(rec[ms3SampleCnt:])),
		crc:         crc,
		encoding:    enc,
		order:       ms3Order(enc),
	}

	r.sidLen = copy(r.sid[:], rec[FixedHeaderSize:FixedHeaderSize+sidLen])

	extraLen := int(binary.LittleEndian.Uint16(rec[ms3ExtraLen:]))
	off := FixedHeaderSize + sidLen

	r.extra = append([]byte{}, rec[off:off+extraLen]...)
	r.payload = append([]byte{}, rec[off+extraLen:]...)

	return &r, nil
}

// ms3Order is the payload byte order for an encoding.  Steim frames and the
// legacy encodings are big endian, everything else little endian.
func ms3Order(enc Encoding) binary.ByteOrder {
	switch enc {
	case EncodingASCII, EncodingInt16, EncodingInt32, EncodingFloat32, EncodingFloat64:
		return binary.LittleEndian
	default:
		return binary.BigEndian
	}
}

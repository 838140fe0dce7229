package mseed

import (
	"encoding/binary"
	"math"
)

// Decode decodes count samples from a data payload with encoding enc.  order is the
// byte order of the payload words.
func Decode(enc Encoding, payload []byte, count int64, order binary.ByteOrder) (Samples, error) {
	if count < 0 {
		return Samples{}, newError(OutOfRange, "negative sample count %d", count)
	}

	switch enc {
	case EncodingASCII:
		if int64(len(payload)) < count {
			return Samples{}, newError(WrongLength, "ascii: %d bytes of data for %d samples", len(payload), count)
		}
		v := make([]byte, count)
		copy(v, payload)
		return ASCIISamples(v), nil
	case EncodingInt16, EncodingDWWSSN:
		v, err := decodeInt16(enc, payload, count, order)
		if err != nil {
			return Samples{}, err
		}
		return Int32Samples(v), nil
	case EncodingInt32:
		v, err := decodeInt32(payload, count, order)
		if err != nil {
			return Samples{}, err
		}
		return Int32Samples(v), nil
	case EncodingFloat32:
		v, err := decodeFloat32(payload, count, order)
		if err != nil {
			return Samples{}, err
		}
		return Float32Samples(v), nil
	case EncodingFloat64:
		v, err := decodeFloat64(payload, count, order)
		if err != nil {
			return Samples{}, err
		}
		return Float64Samples(v), nil
	case EncodingSteim1:
		v, err := DecodeSteim1(payload, count, order)
		if err != nil {
			return Samples{}, err
		}
		return Int32Samples(v), nil
	case EncodingSteim2:
		v, err := DecodeSteim2(payload, count, order)
		if err != nil {
			return Samples{}, err
		}
		return Int32Samples(v), nil
	case EncodingGeoScope24:
		v, err := decodeGeoScope24(payload, count, order)
		if err != nil {
			return Samples{}, err
		}
		return Float32Samples(v), nil
	case EncodingGeoScope163, EncodingGeoScope164:
		v, err := decodeGeoScope16(enc, payload, count, order)
		if err != nil {
			return Samples{}, err
		}
		return Float32Samples(v), nil
	case EncodingCDSN:
		v, err := decodeCDSN(payload, count, order)
		if err != nil {
			return Samples{}, err
		}
		return Int32Samples(v), nil
	case EncodingSRO:
		v, err := decodeSRO(payload, count, order)
		if err != nil {
			return Samples{}, err
		}
		return Int32Samples(v), nil
	default:
		return Samples{}, newError(UnknownFormat, "unknown data encoding format: %d", int8(enc))
	}
}

// width is the byte width of one encoded sample, zero for ASCII and Steim.
func (e Encoding) width() int {
	switch e {
	case EncodingInt16, EncodingDWWSSN, EncodingGeoScope163, EncodingGeoScope164, EncodingCDSN, EncodingSRO:
		return 2
	case EncodingGeoScope24:
		return 3
	case EncodingInt32, EncodingFloat32:
		return 4
	case EncodingFloat64:
		return 8
	default:
		return 0
	}
}

// trimPadding drops the bytes after the last whole sample.  miniSEED 2 data is
// padded out to the record length.
func trimPadding(enc Encoding, payload []byte) []byte {
	w := enc.width()
	if w == 0 {
		return payload
	}
	return payload[:len(payload)-len(payload)%w]
}

// checkWidth makes sure payload holds whole elements of width bytes and at least count of them.
func checkWidth(enc Encoding, payload []byte, count int64, width int) error {
	if len(payload)%width != 0 {
		return newError(OutOfRange, "%s: data length %d is not a multiple of %d", enc, len(payload), width)
	}
	if n := int64(len(payload) / width); n < count {
		return newError(WrongLength, "%s: data holds %d samples, expected %d", enc, n, count)
	}
	return nil
}

func decodeInt16(enc Encoding, data []byte, count int64, order binary.ByteOrder) ([]int32, error) {
	if err := checkWidth(enc, data, count, 2); err != nil {
		return nil, err
	}

	values := make([]int32, count)
	for i := range values {
		values[i] = int32(int16(order.Uint16(data[i*2:]))) //nolint:gosec
	}

	return values, nil
}

func decodeInt32(data []byte, count int64, order binary.ByteOrder) ([]int32, error) {
	if err := checkWidth(EncodingInt32, data, count, 4); err != nil {
		return nil, err
	}

	values := make([]int32, count)
	for i := range values {
		values[i] = int32(order.Uint32(data[i*4:])) //nolint:gosec
	}

	return values, nil
}

func decodeFloat32(data []byte, count int64, order binary.ByteOrder) ([]float32, error) {
	if err := checkWidth(EncodingFloat32, data, count, 4); err != nil {
		return nil, err
	}

	values := make([]float32, count)
	for i := range values {
		values[i] = math.Float32frombits(order.Uint32(data[i*4:]))
	}

	return values, nil
}

func decodeFloat64(data []byte, count int64, order binary.ByteOrder) ([]float64, error) {
	if err := checkWidth(EncodingFloat64, data, count, 8); err != nil {
		return nil, err
	}

	values := make([]float64, count)
	for i := range values {
		values[i] = math.Float64frombits(order.Uint64(data[i*8:]))
	}

	return values, nil
}

// decodeGeoScope24 decodes 24 bit integers.
func decodeGeoScope24(data []byte, count int64, order binary.ByteOrder) ([]float32, error) {
	if err := checkWidth(EncodingGeoScope24, data, count, 3); err != nil {
		return nil, err
	}

	values := make([]float32, count)
	for i := range values {
		b := data[i*3 : i*3+3]

		var m int32
		if order == binary.LittleEndian {
			m = int32(b[2])<<16 | int32(b[1])<<8 | int32(b[0])
		} else {
			m = int32(b[0])<<16 | int32(b[1])<<8 | int32(b[2])
		}

		if m&0x800000 != 0 {
			m -= 0x1000000
		}

		values[i] = float32(m)
	}

	return values, nil
}

// decodeGeoScope16 decodes 16 bit gain ranged samples: a 12 bit offset
// mantissa divided by 2^gain with a 3 or 4 bit gain.
func decodeGeoScope16(enc Encoding, data []byte, count int64, order binary.ByteOrder) ([]float32, error) {
	if err := checkWidth(enc, data, count, 2); err != nil {
		return nil, err
	}

	gainMask := uint16(0xf000)
	if enc == EncodingGeoScope163 {
		gainMask = 0x7000
	}

	values := make([]float32, count)
	for i := range values {
		w := order.Uint16(data[i*2:])
		mantissa := int(w & 0x0fff)
		gain := int((w & gainMask) >> 12)

		values[i] = float32(math.Ldexp(float64(mantissa-2048), -gain))
	}

	return values, nil
}

// decodeCDSN decodes CDSN 16 bit gain ranged samples: a 14 bit offset
// mantissa and a 2 bit gain selecting a multiplier of 1, 4, 16 or 128.
func decodeCDSN(data []byte, count int64, order binary.ByteOrder) ([]int32, error) {
	if err := checkWidth(EncodingCDSN, data, count, 2); err != nil {
		return nil, err
	}

	shift := [4]uint{0, 2, 4, 7}

	values := make([]int32, count)
	for i := range values {
		w := order.Uint16(data[i*2:])
		mantissa := int32(w&0x3fff) - 0x1fff
		values[i] = mantissa * (1 << shift[(w&0xc000)>>14])
	}

	return values, nil
}

// decodeSRO decodes SRO gain ranged samples: a 12 bit two's complement
// mantissa scaled by 2^(10-gain).
func decodeSRO(data []byte, count int64, order binary.ByteOrder) ([]int32, error) {
	if err := checkWidth(EncodingSRO, data, count, 2); err != nil {
		return nil, err
	}

	values := make([]int32, count)
	for i := range values {
		w := order.Uint16(data[i*2:])

		mantissa := int32(w & 0x0fff)
		if mantissa > 0x7ff {
			mantissa -= 0x1000
		}

		exponent := 10 - int((w&0xf000)>>12)
		if exponent < 0 {
			return nil, newError(OutOfRange, "SRO: gain ranging exponent out of range: %d", exponent)
		}

		values[i] = mantissa * (1 << uint(exponent))
	}

	return values, nil
}

package mseed

import "strconv"

// Encoding is the data payload encoding format.
type Encoding int8

const (
	EncodingASCII       Encoding = 0
	EncodingInt16       Encoding = 1
	EncodingInt32       Encoding = 3
	EncodingFloat32     Encoding = 4
	EncodingFloat64     Encoding = 5
	EncodingSteim1      Encoding = 10
	EncodingSteim2      Encoding = 11
	EncodingGeoScope24  Encoding = 12
	EncodingGeoScope163 Encoding = 13 // 16 bit gain ranged, 3 bit exponent
	EncodingGeoScope164 Encoding = 14 // 16 bit gain ranged, 4 bit exponent
	EncodingCDSN        Encoding = 16
	EncodingSRO         Encoding = 30
	EncodingDWWSSN      Encoding = 32
)

// ParseEncoding validates an encoding tag.
func ParseEncoding(b int8) (Encoding, error) {
	switch e := Encoding(b); e {
	case EncodingASCII, EncodingInt16, EncodingInt32, EncodingFloat32, EncodingFloat64,
		EncodingSteim1, EncodingSteim2, EncodingGeoScope24, EncodingGeoScope163, EncodingGeoScope164,
		EncodingCDSN, EncodingSRO, EncodingDWWSSN:
		return e, nil
	default:
		return e, newError(UnknownFormat, "invalid data encoding type: %d", b)
	}
}

func (e Encoding) String() string {
	switch e {
	case EncodingASCII:
		return "ASCII"
	case EncodingInt16:
		return "Integer16"
	case EncodingInt32:
		return "Integer32"
	case EncodingFloat32:
		return "Float32"
	case EncodingFloat64:
		return "Float64"
	case EncodingSteim1:
		return "Steim1"
	case EncodingSteim2:
		return "Steim2"
	case EncodingGeoScope24:
		return "GeoScope24"
	case EncodingGeoScope163:
		return "GeoScope163"
	case EncodingGeoScope164:
		return "GeoScope164"
	case EncodingCDSN:
		return "CDSN"
	case EncodingSRO:
		return "SRO"
	case EncodingDWWSSN:
		return "DWWSSN"
	default:
		return "Encoding(" + strconv.Itoa(int(e)) + ")"
	}
}

// SampleType returns the type that samples decode to.
func (e Encoding) SampleType() SampleType {
	switch e {
	case EncodingASCII:
		return SampleASCII
	case EncodingInt16, EncodingInt32, EncodingSteim1, EncodingSteim2,
		EncodingCDSN, EncodingSRO, EncodingDWWSSN:
		return SampleInt32
	case EncodingFloat32, EncodingGeoScope24, EncodingGeoScope163, EncodingGeoScope164:
		return SampleFloat32
	case EncodingFloat64:
		return SampleFloat64
	default:
		return SampleUnknown
	}
}

// SampleType is the type of decoded samples.
type SampleType int8

const (
	SampleUnknown SampleType = 0
	SampleASCII   SampleType = 'a'
	SampleInt32   SampleType = 'i'
	SampleFloat32 SampleType = 'f'
	SampleFloat64 SampleType = 'd'
)

// ParseSampleType validates a sample type character.
func ParseSampleType(c int8) (SampleType, error) {
	switch t := SampleType(c); t {
	case SampleASCII, SampleInt32, SampleFloat32, SampleFloat64:
		return t, nil
	default:
		return SampleUnknown, newError(GenericError, "invalid sample type: %d", c)
	}
}

// Size is the width in bytes of one sample, zero for SampleUnknown.
func (t SampleType) Size() int {
	switch t {
	case SampleASCII:
		return 1
	case SampleInt32, SampleFloat32:
		return 4
	case SampleFloat64:
		return 8
	default:
		return 0
	}
}

func (t SampleType) String() string {
	switch t {
	case SampleASCII:
		return "ASCII"
	case SampleInt32:
		return "Integer32"
	case SampleFloat32:
		return "Float32"
	case SampleFloat64:
		return "Float64"
	default:
		return "Unknown"
	}
}

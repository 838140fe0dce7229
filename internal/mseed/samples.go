package mseed

import "math"

// Samples is a decoded, homogeneous sequence of samples.  The slices returned by
// the accessors are shared with Samples and must not be modified.
type Samples struct {
	t       SampleType
	ascii   []byte
	ints    []int32
	floats  []float32
	doubles []float64
}

// ASCIISamples wraps v as SampleASCII samples.
func ASCIISamples(v []byte) Samples {
	return Samples{t: SampleASCII, ascii: v}
}

// Int32Samples wraps v as SampleInt32 samples.
func Int32Samples(v []int32) Samples {
	return Samples{t: SampleInt32, ints: v}
}

// Float32Samples wraps v as SampleFloat32 samples.
func Float32Samples(v []float32) Samples {
	return Samples{t: SampleFloat32, floats: v}
}

// Float64Samples wraps v as SampleFloat64 samples.
func Float64Samples(v []float64) Samples {
	return Samples{t: SampleFloat64, doubles: v}
}

// Type is the sample type, SampleUnknown for the zero Samples.
func (s Samples) Type() SampleType {
	return s.t
}

// Len is the number of samples.
func (s Samples) Len() int {
	switch s.t {
	case SampleASCII:
		return len(s.ascii)
	case SampleInt32:
		return len(s.ints)
	case SampleFloat32:
		return len(s.floats)
	case SampleFloat64:
		return len(s.doubles)
	default:
		return 0
	}
}

// Size is the number of bytes taken by the samples.
func (s Samples) Size() int {
	return s.Len() * s.t.Size()
}

// ASCII returns the samples if they are of type SampleASCII, otherwise nil.
func (s Samples) ASCII() []byte {
	return s.ascii
}

// Int32s returns the samples if they are of type SampleInt32, otherwise nil.
func (s Samples) Int32s() []int32 {
	return s.ints
}

// Float32s returns the samples if they are of type SampleFloat32, otherwise nil.
func (s Samples) Float32s() []float32 {
	return s.floats
}

// Float64s returns the samples if they are of type SampleFloat64, otherwise nil.
func (s Samples) Float64s() []float64 {
	return s.doubles
}

// Convert returns a copy of the samples as type t.  Converting floating point values
// with a fractional part to SampleInt32 fails unless truncate is set, in which case
// they are truncated toward zero.  ASCII samples do not convert.
func (s Samples) Convert(t SampleType, truncate bool) (Samples, error) {
	if s.t == t {
		return s, nil
	}

	if s.t == SampleASCII || t == SampleASCII || s.t == SampleUnknown || t == SampleUnknown {
		return Samples{}, newError(GenericError, "cannot convert %s samples to %s", s.t, t)
	}

	switch t {
	case SampleInt32:
		out := make([]int32, s.Len())
		for i := range out {
			var v float64
			if s.t == SampleFloat32 {
				v = float64(s.floats[i])
			} else {
				v = s.doubles[i]
			}

			if math.IsNaN(v) || v < math.MinInt32 || v > math.MaxInt32 {
				return Samples{}, newError(OutOfRange, "sample %d (%g) cannot be represented as an Integer32", i, v)
			}

			if !truncate && v != math.Trunc(v) {
				return Samples{}, newError(GenericError, "loss of precision converting sample %d (%g) to Integer32", i, v)
			}

			out[i] = int32(v)
		}
		return Int32Samples(out), nil
	case SampleFloat32:
		out := make([]float32, s.Len())
		for i := range out {
			var v float64
			if s.t == SampleInt32 {
				v = float64(s.ints[i])
			} else {
				v = s.doubles[i]
			}

			if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) > math.MaxFloat32 {
				return Samples{}, newError(OutOfRange, "sample %d (%g) cannot be represented as a Float32", i, v)
			}

			out[i] = float32(v)
		}
		return Float32Samples(out), nil
	default:
		out := make([]float64, s.Len())
		for i := range out {
			if s.t == SampleInt32 {
				out[i] = float64(s.ints[i])
			} else {
				out[i] = float64(s.floats[i])
			}
		}
		return Float64Samples(out), nil
	}
}

package mseed

import "encoding/binary"

const (
	steimFrameSize = 64
	steimWords     = 16
)

// DecodeSteim1 decodes count samples from Steim1 compressed frames.
func DecodeSteim1(raw []byte, count int64, order binary.ByteOrder) ([]int32, error) {
	return decodeSteim(1, raw, count, order)
}

// DecodeSteim2 decodes count samples from Steim2 compressed frames.
func DecodeSteim2(raw []byte, count int64, order binary.ByteOrder) ([]int32, error) {
	return decodeSteim(2, raw, count, order)
}

// nib returns the 2 bit compression code for word w from control word c.
func nib(c uint32, w int) uint32 {
	return (c >> uint(30-2*w)) & 0x3
}

// signExtend treats the low bits of v as a two's complement number.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift //nolint:gosec
}

// unpackDiffs appends n differences of bits width, most significant first, from the low
// n*bits bits of v.
func unpackDiffs(d []int32, v uint32, n int, bits uint) []int32 {
	for i := n - 1; i >= 0; i-- {
		d = append(d, signExtend(v>>(uint(i)*bits), bits))
	}
	return d
}

func decodeSteim(version int, raw []byte, count int64, order binary.ByteOrder) ([]int32, error) {
	if count < 0 {
		return nil, newError(OutOfRange, "steim%d: negative sample count %d", version, count)
	}

	if count == 0 {
		return []int32{}, nil
	}

	frames := len(raw) / steimFrameSize
	if frames == 0 {
		return nil, newError(WrongLength, "steim%d: %d bytes is less than one frame, expected %d samples", version, len(raw), count)
	}

	// cap allocation by what the frames can possibly hold.
	max := int64(frames) * (steimWords - 1) * 7
	if count < max {
		max = count
	}

	out := make([]int32, 0, max)
	diffs := make([]int32, 0, 7)

	var x0 int32
	var last int32

	for f := 0; f < frames && int64(len(out)) < count; f++ {
		frame := raw[f*steimFrameSize : (f+1)*steimFrameSize]
		ctrl := order.Uint32(frame[0:4])

		for w := 1; w < steimWords && int64(len(out)) < count; w++ {
			word := order.Uint32(frame[w*4 : (w+1)*4])

			diffs = diffs[:0]

			switch c := nib(ctrl, w); c {
			case 0:
				// frame 0 words 1 and 2 are the forward and reverse integration constants.
				if f == 0 && w == 1 {
					x0 = int32(word) //nolint:gosec
				}
				continue
			case 1:
				diffs = unpackDiffs(diffs, word, 4, 8)
			case 2:
				if version == 1 {
					diffs = unpackDiffs(diffs, word, 2, 16)
					break
				}

				switch dnib := word >> 30; dnib {
				case 1:
					diffs = unpackDiffs(diffs, word, 1, 30)
				case 2:
					diffs = unpackDiffs(diffs, word, 2, 15)
				case 3:
					diffs = unpackDiffs(diffs, word, 3, 10)
				default:
					return nil, newError(SteimBadCompressionFlag, "steim%d: nib 10 dnib %02b is an illegal configuration @ frame %d word %d", version, dnib, f, w)
				}
			case 3:
				if version == 1 {
					diffs = append(diffs, int32(word)) //nolint:gosec
					break
				}

				switch dnib := word >> 30; dnib {
				case 0:
					diffs = unpackDiffs(diffs, word, 5, 6)
				case 1:
					diffs = unpackDiffs(diffs, word, 6, 5)
				case 2:
					diffs = unpackDiffs(diffs, word, 7, 4)
				default:
					return nil, newError(SteimBadCompressionFlag, "steim%d: nib 11 dnib %02b is an illegal configuration @ frame %d word %d", version, dnib, f, w)
				}
			}

			for _, d := range diffs {
				if int64(len(out)) == count {
					break
				}

				// the first difference is relative to the previous record, x0 replaces it.
				if len(out) == 0 {
					last = x0
				} else {
					last += d
				}

				out = append(out, last)
			}
		}
	}

	if int64(len(out)) < count {
		return nil, newError(WrongLength, "steim%d: decoded %d samples from %d frames, expected %d", version, len(out), frames, count)
	}

	return out, nil
}

// SteimXn returns the reverse integration constant (the expected last sample)
// stored in the first Steim frame.
func SteimXn(raw []byte, order binary.ByteOrder) (int32, error) {
	if len(raw) < steimFrameSize {
		return 0, newError(WrongLength, "steim: %d bytes is less than one frame", len(raw))
	}
	return int32(order.Uint32(raw[8:12])), nil //nolint:gosec
}

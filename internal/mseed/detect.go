package mseed

// DetectLength returns the length of the record at the start of buf without parsing it.
// A WrongLength error means more bytes are needed to tell, NotSEED that buf does not
// start with a miniSEED record.
func DetectLength(buf []byte) (int, error) {
	if len(buf) < FixedHeaderSize {
		return 0, newError(WrongLength, "need at least %d bytes, have %d", FixedHeaderSize, len(buf))
	}

	if isMS3(buf) {
		return ms3Length(buf)
	}

	if len(buf) < ms2HeaderSize {
		return 0, newError(WrongLength, "need at least %d bytes, have %d", ms2HeaderSize, len(buf))
	}

	h, err := ms2Header(buf)
	if err != nil {
		return 0, err
	}

	b, err := walkBlockettes(buf, h)
	if err != nil {
		return 0, err
	}

	return ms2Length(b)
}

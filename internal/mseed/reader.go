package mseed

import (
	"bufio"
	"fmt"
	"io"
)

const (
	// readerBufferSize bounds how far ahead Next looks for a record length.
	readerBufferSize = 4096
	peekStep         = 64
)

// Reader reads consecutive miniSEED records from an io.Reader.
type Reader struct {
	r      *bufio.Reader
	opts   Options
	offset int64
}

// NewReader returns a Reader that parses records from r with opts.
func NewReader(r io.Reader, opts Options) *Reader {
	return &Reader{
		r:    bufio.NewReaderSize(r, readerBufferSize),
		opts: opts,
	}
}

// Offset is the position in the input of the next record.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Next reads and parses the next record.  It returns io.EOF when the input ends
// cleanly between records and an error wrapping io.ErrUnexpectedEOF when it ends
// part way through one.
func (r *Reader) Next() (*Record, error) {
	n := FixedHeaderSize

	var reclen int

	for {
		hdr, err := r.r.Peek(n)
		if len(hdr) == 0 && err == io.EOF {
			return nil, io.EOF
		}

		l, derr := DetectLength(hdr)
		if derr == nil {
			reclen = l
			break
		}

		if KindOf(derr) != WrongLength {
			return nil, fmt.Errorf("record at offset %d: %w", r.offset, derr)
		}

		if err != nil || n >= readerBufferSize {
			if err == io.EOF {
				return nil, fmt.Errorf("record at offset %d: %w", r.offset, io.ErrUnexpectedEOF)
			}
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("record at offset %d: %w", r.offset, derr)
		}

		n += peekStep
		if n > readerBufferSize {
			n = readerBufferSize
		}
	}

	buf := make([]byte, reclen)

	if _, err := io.ReadFull(r.r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("record at offset %d: %w", r.offset, err)
	}

	off := r.offset
	r.offset += int64(reclen)

	rec, err := Parse(buf, r.opts)
	if err != nil {
		return nil, fmt.Errorf("record at offset %d: %w", off, err)
	}

	return rec, nil
}

package mseed

import (
	"errors"
	"fmt"
)

// Numeric error codes, these match the libmseed return values.
const (
	CodeGenericError            = -1
	CodeNotSEED                 = -2
	CodeWrongLength             = -3
	CodeOutOfRange              = -4
	CodeUnknownFormat           = -5
	CodeSteimBadCompressionFlag = -6
	CodeInvalidCRC              = -7
)

// Kind is the closed set of decoding error kinds.
type Kind int

const (
	// GenericError is an unspecified error, also used for any unmapped code.
	GenericError Kind = iota
	// NotSEED is for data that does not start with a miniSEED header.
	NotSEED
	// WrongLength is for data that is shorter than declared or required.
	WrongLength
	// OutOfRange is for lengths and values outside the format limits.
	OutOfRange
	// UnknownFormat is for an unknown or unsupported data encoding.
	UnknownFormat
	// SteimBadCompressionFlag is for a reserved Steim compression code.
	SteimBadCompressionFlag
	// InvalidCRC is for a checksum mismatch.
	InvalidCRC
)

func (k Kind) String() string {
	switch k {
	case NotSEED:
		return "NotSEED"
	case WrongLength:
		return "WrongLength"
	case OutOfRange:
		return "OutOfRange"
	case UnknownFormat:
		return "UnknownFormat"
	case SteimBadCompressionFlag:
		return "SteimBadCompressionFlag"
	case InvalidCRC:
		return "InvalidCRC"
	default:
		return "GenericError"
	}
}

// Code returns the numeric code for the kind.
func (k Kind) Code() int {
	switch k {
	case NotSEED:
		return CodeNotSEED
	case WrongLength:
		return CodeWrongLength
	case OutOfRange:
		return CodeOutOfRange
	case UnknownFormat:
		return CodeUnknownFormat
	case SteimBadCompressionFlag:
		return CodeSteimBadCompressionFlag
	case InvalidCRC:
		return CodeInvalidCRC
	default:
		return CodeGenericError
	}
}

// Error is returned by all fallible operations in this package.
type Error struct {
	// Code is the raw numeric code.  It is kept as given even when it
	// has no Kind of its own.
	Code    int
	Message string
}

// Sentinel values for use with errors.Is.  Matching is by Kind only.
var (
	ErrGeneric                 = &Error{Code: CodeGenericError, Message: "generic unspecified error"}
	ErrNotSEED                 = &Error{Code: CodeNotSEED, Message: "data not SEED"}
	ErrWrongLength             = &Error{Code: CodeWrongLength, Message: "length of data read was incorrect"}
	ErrOutOfRange              = &Error{Code: CodeOutOfRange, Message: "SEED record length out of range"}
	ErrUnknownFormat           = &Error{Code: CodeUnknownFormat, Message: "unknown data encoding format"}
	ErrSteimBadCompressionFlag = &Error{Code: CodeSteimBadCompressionFlag, Message: "Steim, invalid compression flag(s)"}
	ErrInvalidCRC              = &Error{Code: CodeInvalidCRC, Message: "invalid CRC"}
)

// NewError returns an *Error for a raw code.
func NewError(code int, format string, a ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func newError(k Kind, format string, a ...interface{}) *Error {
	return NewError(k.Code(), format, a...)
}

// Kind maps the raw code onto a Kind, GenericError for anything unknown.
func (e *Error) Kind() Kind {
	switch e.Code {
	case CodeNotSEED:
		return NotSEED
	case CodeWrongLength:
		return WrongLength
	case CodeOutOfRange:
		return OutOfRange
	case CodeUnknownFormat:
		return UnknownFormat
	case CodeSteimBadCompressionFlag:
		return SteimBadCompressionFlag
	case CodeInvalidCRC:
		return InvalidCRC
	default:
		return GenericError
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s; code=%s (%d)", e.Message, e.Kind(), e.Code)
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind() == e.Kind()
}

// KindOf returns the Kind of the first *Error in err's chain.  Errors that
// did not come from this package are GenericError.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return GenericError
}

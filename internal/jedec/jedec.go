// Package jedec extracts marker delimited fuse bit regions from JEDEC programming files.
package jedec

import (
	"errors"
	"fmt"
	"strings"
)

// Terminator ends every field of a JEDEC file.
const Terminator = '*'

const bitsPerByte = 8

var (
	ErrMissingMarker = errors.New("missing marker")
	ErrUnterminated  = errors.New("unterminated region")
	ErrInvalidBit    = errors.New("invalid bit value")
	ErrBitLength     = errors.New("bit count is not a multiple of 8")
)

// FormatError describes malformed content of the region that follows a marker.
type FormatError struct {
	Marker string
	Offset int // offset inside the region, -1 if not applicable
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Err.Error()
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at bit %d", msg, e.Offset)
	}
	if e.Marker == "" {
		return msg
	}
	return fmt.Sprintf("region %s: %s", e.Marker, msg)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Clean removes all line breaks, the file format wraps lines for readability only.
func Clean(text string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(text)
}

// Decode converts a string of '0' and '1' characters into bytes,
// 8 characters per byte with the most significant bit first.
func Decode(bits string) ([]byte, error) {
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return nil, &FormatError{Offset: i, Err: ErrInvalidBit}
		}
	}
	if len(bits)%bitsPerByte != 0 {
		return nil, fmt.Errorf("%w: got %d bits", ErrBitLength, len(bits))
	}

	data := make([]byte, 0, len(bits)/bitsPerByte)
	for i := 0; i < len(bits); i += bitsPerByte {
		var b byte
		for j := 0; j < bitsPerByte; j++ {
			b = b<<1 | bits[i+j] - '0'
		}
		data = append(data, b)
	}
	return data, nil
}

// Encode converts bytes into the bit string representation that Decode reads.
func Encode(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * bitsPerByte)
	for _, b := range data {
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			if b&mask != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

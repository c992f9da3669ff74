package jedec

import (
	"errors"
	"strings"
)

// Scanner locates marker delimited regions in cleaned JEDEC text.
type Scanner struct {
	text string
	pos  int
}

// NewScanner returns a scanner for the given text. Line breaks have to be
// removed before, see Clean.
func NewScanner(text string) *Scanner {
	return &Scanner{text: text}
}

// Region returns the raw content between the first occurrence of the marker
// and the next terminator.
func (s *Scanner) Region(marker string) (string, error) {
	s.pos = 0
	if !s.seek(marker) {
		return "", &FormatError{Marker: marker, Offset: -1, Err: ErrMissingMarker}
	}

	start := s.pos
	if !s.consumeUntil(Terminator) {
		return "", &FormatError{Marker: marker, Offset: -1, Err: ErrUnterminated}
	}
	return s.text[start:s.pos], nil
}

// Bytes decodes the region that follows the marker.
func (s *Scanner) Bytes(marker string) ([]byte, error) {
	bits, err := s.Region(marker)
	if err != nil {
		return nil, err
	}

	data, err := Decode(bits)
	if err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			formatErr.Marker = marker
			return nil, formatErr
		}
		return nil, &FormatError{Marker: marker, Offset: -1, Err: err}
	}
	return data, nil
}

// seek advances the cursor past the next occurrence of token.
func (s *Scanner) seek(token string) bool {
	idx := strings.Index(s.text[s.pos:], token)
	if idx < 0 {
		return false
	}
	s.pos += idx + len(token)
	return true
}

// consumeUntil advances the cursor to the next occurrence of c, leaving it
// positioned on c.
func (s *Scanner) consumeUntil(c byte) bool {
	idx := strings.IndexByte(s.text[s.pos:], c)
	if idx < 0 {
		return false
	}
	s.pos += idx
	return true
}

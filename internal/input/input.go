// Package input loads and validates the integer sequences fed to the
// reduction strategies. Sequences come from three sources: a generated
// range (-n), an inline list (--data), or a file (--input).
package input

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/agbru/parsum/internal/errors"
)

// ErrEmptyInput reports that a sequence source contained no tokens at all.
// Deliberately distinct from an empty-but-valid sequence: "--data ''" is a
// user mistake, while an empty file of zero integers is not expressible.
var ErrEmptyInput = apperrors.ConfigError{Message: "input was empty"}

// NotANumberError reports a token that could not be parsed as a signed
// 64-bit integer.
type NotANumberError struct {
	// Token is the offending input fragment.
	Token string
}

// Error returns a message quoting the invalid token.
func (e NotANumberError) Error() string {
	return fmt.Sprintf("%q is not a valid number", e.Token)
}

// ParseInt64 parses a single signed 64-bit integer, trimming surrounding
// whitespace. An all-whitespace input yields ErrEmptyInput; any other
// unparseable input yields a NotANumberError.
//
// Parameters:
//   - s: The raw input fragment.
//
// Returns:
//   - int64: The parsed value.
//   - error: ErrEmptyInput or NotANumberError on failure.
func ParseInt64(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, ErrEmptyInput
	}
	v, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, NotANumberError{Token: trimmed}
	}
	return v, nil
}

// ParseSequence parses a comma- or whitespace-separated list of signed
// integers. The whole parse fails on the first invalid token; there is no
// partial result.
//
// Parameters:
//   - s: The raw list, e.g. "1, 2, 3" or "1 2 3".
//
// Returns:
//   - []int64: The parsed sequence, in input order.
//   - error: ErrEmptyInput if no tokens were present, or the first
//     NotANumberError encountered.
func ParseSequence(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, ErrEmptyInput
	}

	seq := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := ParseInt64(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, v)
	}
	return seq, nil
}

// ReadSequence reads and parses a sequence from r (same format as
// ParseSequence).
func ReadSequence(r io.Reader) ([]int64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.WrapError(err, "reading input sequence")
	}
	return ParseSequence(string(raw))
}

// ReadSequenceFile reads and parses a sequence from the file at path.
func ReadSequenceFile(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "opening input file %q", path)
	}
	defer f.Close()
	return ReadSequence(f)
}

// GenerateRange returns the sequence 1..n. A zero n yields an empty,
// non-nil slice.
func GenerateRange(n uint64) []int64 {
	seq := make([]int64, n)
	for i := range seq {
		seq[i] = int64(i) + 1
	}
	return seq
}

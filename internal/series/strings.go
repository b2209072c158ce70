package series

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jeregrine/explorer/internal/dtype"
	"github.com/jeregrine/explorer/internal/errors"
)

// Contains returns a boolean mask marking elements that contain the literal
// substring.
func Contains(s *Series, substr string) (*Series, error) {
	return stringMask("contains", s, func(v string) bool {
		return strings.Contains(v, substr)
	})
}

// ContainsPattern returns a boolean mask marking elements matched by the
// regular expression.
func ContainsPattern(s *Series, pattern string) (*Series, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.NewInvalidOperandsError("contains", "invalid regular expression: "+err.Error())
	}
	return stringMask("contains", s, re.MatchString)
}

// Upcase maps every element to upper case.
func Upcase(s *Series) (*Series, error) {
	return stringMap("upcase", s, strings.ToUpper)
}

// Downcase maps every element to lower case.
func Downcase(s *Series) (*Series, error) {
	return stringMap("downcase", s, strings.ToLower)
}

// Trim strips Unicode whitespace from both ends of every element.
func Trim(s *Series) (*Series, error) {
	return stringMap("trim", s, strings.TrimSpace)
}

// TrimLeading strips Unicode whitespace from the start of every element.
func TrimLeading(s *Series) (*Series, error) {
	return stringMap("trim_leading", s, func(v string) string {
		return strings.TrimLeftFunc(v, unicode.IsSpace)
	})
}

// TrimTrailing strips Unicode whitespace from the end of every element.
func TrimTrailing(s *Series) (*Series, error) {
	return stringMap("trim_trailing", s, func(v string) string {
		return strings.TrimRightFunc(v, unicode.IsSpace)
	})
}

func requireString(op string, s *Series) error {
	if s.dtype != dtype.String {
		return errors.NewUnsupportedDtypeError(op, s.dtype, "string")
	}
	return nil
}

func stringMask(op string, s *Series, fn func(string) bool) (*Series, error) {
	if err := requireString(op, s); err != nil {
		return nil, err
	}
	vals, valid := s.stringView()
	out := make([]bool, len(vals))
	for i, v := range vals {
		if valid[i] {
			out[i] = fn(v)
		}
	}
	return fromBools(s.name, out, valid), nil
}

func stringMap(op string, s *Series, fn func(string) string) (*Series, error) {
	if err := requireString(op, s); err != nil {
		return nil, err
	}
	vals, valid := s.stringView()
	out := make([]string, len(vals))
	mapChunked(len(vals), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if valid[i] {
				out[i] = fn(vals[i])
			}
		}
	})
	return fromStrings(s.name, out, valid), nil
}

package pointer

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse accepts either notation: an empty string or a leading '/' selects
// pointer syntax, anything else is read as a dot path.
func Parse(s string) (Path, error) {
	if s == "" || strings.HasPrefix(s, "/") {
		return ParsePointer(s)
	}
	return ParseDot(s)
}

// ParsePointer reads a slash-delimited pointer. A trailing slash is allowed
// and empty segments are skipped, so "/" and "" both denote the root.
// Every token is returned as a key segment; resolving against a sequence
// reinterprets it as an index.
func ParsePointer(s string) (Path, error) {
	s = strings.TrimRight(s, "/")
	if s == "" {
		return Path{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("%w: path must start with '/': %q", ErrInvalidPath, s)
	}

	tokens := strings.Split(s[1:], "/")
	path := make(Path, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if err := checkEscapes(token); err != nil {
			return nil, err
		}
		path = append(path, Key(unescaper.Replace(token)))
	}

	return path, nil
}

func checkEscapes(token string) error {
	for i := 0; i < len(token); i++ {
		if token[i] != '~' {
			continue
		}
		if i+1 == len(token) || (token[i+1] != '0' && token[i+1] != '1') {
			return fmt.Errorf("%w: invalid escape in %q ('~' must be followed by 0 or 1)", ErrInvalidPath, token)
		}
	}
	return nil
}

// ParseDot reads a dot path such as "spec.containers[0].image". "." is the
// root. Brackets that do not hold a decimal index are kept as key text.
func ParseDot(s string) (Path, error) {
	if s == "" || s == "." {
		return Path{}, nil
	}
	s = strings.TrimPrefix(s, ".")

	var (
		path Path
		key  strings.Builder
		open = true
	)

	for i := 0; i < len(s); {
		switch s[i] {
		case '.':
			if open {
				path = append(path, Key(key.String()))
			}
			key.Reset()
			open = true
			i++
		case '[':
			end, index, ok, err := scanIndex(s, i)
			if err != nil {
				return nil, err
			}
			if !ok {
				key.WriteByte('[')
				open = true
				i++
				continue
			}
			if open && key.Len() > 0 {
				path = append(path, Key(key.String()))
			}
			key.Reset()
			open = false
			path = append(path, Index(index))
			i = end
		default:
			key.WriteByte(s[i])
			open = true
			i++
		}
	}

	if open {
		path = append(path, Key(key.String()))
	}

	return path, nil
}

// scanIndex reads "[digits]" at s[start]. It returns the offset just past the
// closing bracket.
func scanIndex(s string, start int) (end int, index int, ok bool, err error) {
	closing := strings.IndexByte(s[start:], ']')
	if closing < 2 {
		return 0, 0, false, nil
	}

	digits := s[start+1 : start+closing]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0, false, nil
		}
	}

	index, err = strconv.Atoi(digits)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: index %s out of range", ErrInvalidPath, digits)
	}

	return start + closing + 1, index, true, nil
}

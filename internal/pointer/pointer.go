// Package pointer models locations inside a document tree and renders them
// as slash-delimited pointers (RFC 6901 escaping) or dot paths.
package pointer

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned when a user supplied path cannot be parsed.
var ErrInvalidPath = errors.New("invalid path")

// Format selects the notation used by Render.
type Format int

const (
	FormatPointer Format = iota
	FormatDot
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "pointer":
		return FormatPointer, nil
	case "dot":
		return FormatDot, nil
	default:
		return FormatPointer, fmt.Errorf("unknown path format %q (want pointer or dot)", name)
	}
}

func (f Format) String() string {
	if f == FormatDot {
		return "dot"
	}
	return "pointer"
}

// Segment is a mapping key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a mapping key segment.
func Key(key string) Segment {
	return Segment{Key: key}
}

// Index returns a sequence index segment.
func Index(index int) Segment {
	return Segment{Index: index, IsIndex: true}
}

// String returns the unescaped token: the key, or the index in decimal.
func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path is an ordered list of segments. The empty path is the document root.
type Path []Segment

// Clone returns a copy that does not share storage with p.
func (p Path) Clone() Path {
	return slices.Clone(p)
}

// Last returns the final segment of a non-root path.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

func (p Path) String() string {
	return Render(p, FormatPointer)
}

var (
	escaper   = strings.NewReplacer("~", "~0", "/", "~1")
	unescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Render formats a path in the requested notation. It is total over any path.
//
// Dot paths are best-effort: keys containing '.' or '[' are written as-is and
// cannot be told apart from nested segments.
func Render(p Path, format Format) string {
	if format == FormatDot {
		return renderDot(p)
	}
	return renderPointer(p)
}

func renderPointer(p Path) string {
	if len(p) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		if seg.IsIndex {
			b.WriteString(strconv.Itoa(seg.Index))
			continue
		}
		b.WriteString(escaper.Replace(seg.Key))
	}
	return b.String()
}

func renderDot(p Path) string {
	if len(p) == 0 {
		return "."
	}

	var b strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Key)
	}
	if b.Len() == 0 {
		// a lone empty key
		return "."
	}
	return b.String()
}

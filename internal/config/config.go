// Package config holds the validated settings of the grep and show commands.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/jacoelho/yamlgrep/internal/document"
	"github.com/jacoelho/yamlgrep/internal/pattern"
	"github.com/jacoelho/yamlgrep/internal/pointer"
	"github.com/jacoelho/yamlgrep/internal/report"
)

// ErrUsage is wrapped by every command-line usage error.
var ErrUsage = errors.New("usage")

var (
	ErrNoFile             = fmt.Errorf("%w: you must provide a FILE (or '-') and at least one PATTERN or -e", ErrUsage)
	ErrMissingFile        = fmt.Errorf("%w: missing FILE after '--'", ErrUsage)
	ErrExtraArguments     = fmt.Errorf("%w: only one FILE may follow '--'", ErrUsage)
	ErrNoPatterns         = fmt.Errorf("%w: no patterns provided", ErrUsage)
	ErrTargetConflict     = fmt.Errorf("%w: --keys-only and --values-only are mutually exclusive", ErrUsage)
	ErrNegativeMaxMatches = fmt.Errorf("%w: --max-matches must not be negative", ErrUsage)
)

// ColorMode is the --color setting before terminal detection.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode maps a flag value to a ColorMode.
func ParseColorMode(name string) (ColorMode, error) {
	switch name {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("%w: unknown color mode %q (want auto, always or never)", ErrUsage, name)
	}
}

// ResolveColor turns the mode into a yes/no answer for w. Auto enables color
// only on a terminal, honoring NO_COLOR and TERM=dumb.
func ResolveColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	if termenv.EnvNoColor() || os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// Grep is the configuration of one search run.
type Grep struct {
	Patterns        []string
	File            string
	CaseInsensitive bool
	KeysOnly        bool
	ValuesOnly      bool
	PathFormat      pointer.Format
	Color           ColorMode
	MaxMatches      int // 0 = unlimited
	Output          report.OutputFormat
	Debug           bool
}

// Validate validates the configuration and returns an error if invalid.
func (g *Grep) Validate() error {
	if g.File == "" {
		return ErrNoFile
	}
	if len(g.Patterns) == 0 {
		return ErrNoPatterns
	}
	if g.KeysOnly && g.ValuesOnly {
		return ErrTargetConflict
	}
	if g.MaxMatches < 0 {
		return ErrNegativeMaxMatches
	}
	return nil
}

// Target derives the pattern target from the keys/values flags.
func (g *Grep) Target() pattern.Target {
	switch {
	case g.KeysOnly:
		return pattern.TargetKeys
	case g.ValuesOnly:
		return pattern.TargetValues
	default:
		return pattern.TargetBoth
	}
}

// PatternOptions returns the options to compile Patterns with.
func (g *Grep) PatternOptions() pattern.Options {
	return pattern.Options{
		CaseInsensitive: g.CaseInsensitive,
		Target:          g.Target(),
	}
}

// SplitPatternsAndFile separates positional patterns from the FILE argument.
// It accepts "PATTERN... -- FILE", "PATTERN... FILE" and, when patterns came
// from -e, a lone "FILE". dashAt is the index of "--" in args, or -1.
func SplitPatternsAndFile(args []string, dashAt int, flagPatterns []string) ([]string, string, error) {
	patterns := append([]string(nil), flagPatterns...)

	if dashAt >= 0 {
		after := args[dashAt:]
		switch {
		case len(after) == 0:
			return nil, "", ErrMissingFile
		case len(after) > 1:
			return nil, "", ErrExtraArguments
		}
		return append(patterns, args[:dashAt]...), after[0], nil
	}

	switch {
	case len(args) == 0:
		return nil, "", ErrNoFile
	case len(args) == 1 && len(flagPatterns) == 0:
		return nil, "", ErrNoFile
	}

	last := len(args) - 1
	return append(patterns, args[:last]...), args[last], nil
}

// Show is the configuration of the show command.
type Show struct {
	Path   string
	File   string
	Format document.Format // FormatAuto writes YAML
	Debug  bool
}

// ParseShowFormat maps --format to a document format.
func ParseShowFormat(name string) (document.Format, error) {
	switch name {
	case "auto":
		return document.FormatAuto, nil
	case "yaml":
		return document.FormatYAML, nil
	case "json":
		return document.FormatJSON, nil
	default:
		return document.FormatAuto, fmt.Errorf("%w: unknown format %q (want auto, yaml or json)", ErrUsage, name)
	}
}

// Validate validates the configuration and returns an error if invalid.
// An empty Path selects the document root.
func (s *Show) Validate() error {
	if s.File == "" {
		return ErrNoFile
	}
	return nil
}

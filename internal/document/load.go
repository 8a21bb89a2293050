package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrLoad wraps every failure to read or parse an input document.
var ErrLoad = errors.New("cannot load document")

// Format is the serialization of an input document.
type Format int

const (
	// FormatAuto tries JSON first and falls back to YAML.
	FormatAuto Format = iota
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectFormat guesses the format from a file name. Stdin ("-") and names
// without an extension are read as YAML, which also accepts JSON.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", "":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatAuto
	}
}

// ReadFile reads a named file, or stdin when name is "-".
func ReadFile(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: read stdin: %v", ErrLoad, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return data, nil
}

// Parse decodes data into a tree. With FormatAuto the returned Format
// reports which decoder succeeded.
func Parse(data []byte, format Format) (*Node, Format, error) {
	switch format {
	case FormatJSON:
		root, err := parseJSON(data)
		return root, FormatJSON, err
	case FormatYAML:
		root, err := parseYAML(data)
		return root, FormatYAML, err
	default:
		if root, err := parseJSON(data); err == nil {
			return root, FormatJSON, nil
		}
		root, err := parseYAML(data)
		return root, FormatYAML, err
	}
}

// Load reads name (or stdin for "-") and parses it using the format implied
// by its extension.
func Load(name string, stdin io.Reader) (*Node, Format, error) {
	data, err := ReadFile(name, stdin)
	if err != nil {
		return nil, FormatAuto, err
	}
	return Parse(data, DetectFormat(name))
}

// parseYAML decodes the first document of a YAML stream. Mapping order is
// preserved through yaml.MapSlice; aliases and merge keys are resolved by
// the decoder. Duplicate keys are allowed and the last value wins. An empty
// stream is a null document.
func parseYAML(data []byte) (*Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey())

	var value any
	if err := dec.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return NewNull(), nil
		}
		return nil, fmt.Errorf("%w: invalid YAML: %v", ErrLoad, err)
	}

	return FromValue(value)
}

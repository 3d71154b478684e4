package routesfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/waypoint/pkg/router"
)

// Registry maps manifest handler names to handlers.
type Registry map[string]router.Handler

// Manifest is the decoded routes file.
type Manifest struct {
	Routes []Entry `yaml:"routes"`
}

// Entry is one route declaration.
type Entry struct {
	Path    string  `yaml:"path"`
	Methods Methods `yaml:"methods"`
	Handler string  `yaml:"handler"`
}

// Methods accepts either a single scalar or a sequence in YAML.
type Methods []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Methods) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*m = Methods{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*m = list
		return nil
	default:
		return fmt.Errorf("%w: line %d: methods must be a string or a list", ErrInvalidManifest, node.Line)
	}
}

// Parse decodes a manifest. Unknown fields are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	for i, e := range m.Routes {
		if strings.TrimSpace(e.Path) == "" {
			return nil, fmt.Errorf("%w: route #%d: empty path", ErrInvalidManifest, i)
		}
		if strings.TrimSpace(e.Handler) == "" {
			return nil, fmt.Errorf("%w: route #%d (%s): empty handler", ErrInvalidManifest, i, e.Path)
		}
		if len(e.Methods) == 0 {
			m.Routes[i].Methods = Methods{router.Methods[0]}
		}
	}
	return &m, nil
}

// Load parses data and registers every entry on r in order. The first
// failing entry aborts the load; entries before it stay registered.
func Load(r *router.Router, data []byte, registry Registry) error {
	m, err := Parse(data)
	if err != nil {
		return err
	}
	return Register(r, m, registry)
}

// LoadFile reads the manifest at path and loads it into r.
func LoadFile(r *router.Router, path string, registry Registry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("routesfile: read %s: %w", path, err)
	}
	return Load(r, data, registry)
}

// Register registers the entries of an already parsed manifest.
func Register(r *router.Router, m *Manifest, registry Registry) error {
	for i, e := range m.Routes {
		h, ok := registry[e.Handler]
		if !ok {
			return fmt.Errorf("%w: route #%d (%s): %q", ErrUnknownHandler, i, e.Path, e.Handler)
		}
		if err := r.Register(e.Path, e.Methods, h); err != nil {
			return fmt.Errorf("route #%d (%s): %w", i, e.Path, err)
		}
	}
	return nil
}

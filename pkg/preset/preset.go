package preset

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config points at an optional presets file.
type Config struct {
	File string `env:"TOAST_PRESETS_FILE"`
}

// Preset is a named bundle of scheduling and style settings.
type Preset struct {
	Priority   toast.Priority  `yaml:"priority"`
	Display    time.Duration   `yaml:"display"`
	Transition time.Duration   `yaml:"transition"`
	Animated   bool            `yaml:"animated"`
	Placement  toast.Placement `yaml:"placement"`
	Height     int             `yaml:"height"`
}

func (p Preset) validate() error {
	r := toast.Request{Priority: p.Priority, Display: p.Display, Transition: p.Transition}
	if err := r.Validate(); err != nil {
		return err
	}
	switch p.Placement {
	case "", toast.PlacementTop, toast.PlacementBottom, toast.PlacementCenter:
	default:
		return fmt.Errorf("placement %q must be top, bottom or center", p.Placement)
	}
	if p.Height < 0 {
		return fmt.Errorf("height must not be negative")
	}
	return nil
}

// Applier copies a named preset onto a request. *Set and *Registry
// satisfy it.
type Applier interface {
	Apply(name string, req *toast.Request) error
}

// Set is an immutable collection of presets with a default.
type Set struct {
	def     string
	presets map[string]Preset
}

type document struct {
	Default string            `yaml:"default"`
	Presets map[string]Preset `yaml:"presets"`
}

// Parse decodes a presets document.
func Parse(data []byte) (*Set, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}
	if len(doc.Presets) == 0 {
		return nil, ErrNoPresets
	}

	for _, name := range slices.Sorted(maps.Keys(doc.Presets)) {
		if err := doc.Presets[name].validate(); err != nil {
			return nil, errors.Join(ErrInvalidPreset, fmt.Errorf("preset %q: %w", name, err))
		}
	}
	if doc.Default == "" {
		doc.Default = slices.Sorted(maps.Keys(doc.Presets))[0]
	}
	if _, ok := doc.Presets[doc.Default]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefault, doc.Default)
	}

	return &Set{def: doc.Default, presets: doc.Presets}, nil
}

// Load reads and parses a presets file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}
	return Parse(data)
}

// FromConfig loads cfg.File, or the built-in presets when it is empty.
func FromConfig(cfg Config) (*Set, error) {
	if cfg.File == "" {
		return Defaults(), nil
	}
	return Load(cfg.File)
}

// Defaults returns the built-in presets: info, success, warning, error and flash.
func Defaults() *Set {
	s, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in presets are invalid: %v", err))
	}
	return s
}

// Default returns the name of the default preset.
func (s *Set) Default() string { return s.def }

// Names returns the preset names in sorted order.
func (s *Set) Names() []string {
	return slices.Sorted(maps.Keys(s.presets))
}

// Get returns the named preset. An empty name selects the default.
func (s *Set) Get(name string) (Preset, error) {
	if name == "" {
		name = s.def
	}
	p, ok := s.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Apply copies the named preset's settings onto req.
func (s *Set) Apply(name string, req *toast.Request) error {
	p, err := s.Get(name)
	if err != nil {
		return err
	}
	req.Priority = p.Priority
	req.Display = p.Display
	req.Transition = p.Transition
	req.Animated = p.Animated
	req.Style = toast.Style{Placement: p.Placement, Height: p.Height}
	return nil
}

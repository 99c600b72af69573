package canopy

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// TieBreak selects how the static collision normal is chosen when the X and
// Y overlaps are exactly equal.
type TieBreak uint8

const (
	TieBreakPreferX TieBreak = iota // use the X axis as the contact normal
	TieBreakSkip                    // log a warning and skip the pair this tick
)

func (t TieBreak) String() string {
	switch t {
	case TieBreakPreferX:
		return "preferX"
	case TieBreakSkip:
		return "skip"
	}
	return fmt.Sprintf("TieBreak(%d)", uint8(t))
}

// UnmarshalYAML accepts "preferX" or "skip".
func (t *TieBreak) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "preferX", "prefer_x":
		*t = TieBreakPreferX
	case "skip":
		*t = TieBreakSkip
	default:
		return fmt.Errorf("invalid tie_break %q (valid: preferX, skip)", value.Value)
	}
	return nil
}

// MarshalYAML writes the tie-break by name.
func (t TieBreak) MarshalYAML() (any, error) {
	return t.String(), nil
}

const (
	defaultRestDamping     = 0.97
	defaultMaxLayoutPasses = 64
)

// Config holds World construction parameters. Zero fields in a Config passed
// to NewWorld are replaced with the DefaultConfig value, except Gravity and
// Drag which are legitimately zero.
type Config struct {
	// Width and Height are the viewport extents that top-level objects and
	// Absolute-mode objects anchor against.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Gravity is subtracted from every dynamic body's vertical acceleration.
	Gravity float64 `yaml:"gravity"`
	// Drag is the linear velocity damping coefficient (a = -Drag*v).
	Drag float64 `yaml:"drag"`
	// RestDamping multiplies the vertical velocity after a static reflection
	// to suppress resting jitter.
	RestDamping float64 `yaml:"rest_damping"`
	// TieBreak resolves equal X/Y overlap against a static body.
	TieBreak TieBreak `yaml:"tie_break"`

	// MaxLayoutPasses bounds the number of ResolveLayout sweeps per call.
	MaxLayoutPasses int `yaml:"max_layout_passes"`

	// Debug enables destroyed-handle panics with descriptive messages and
	// tree depth / child count warnings.
	Debug bool `yaml:"debug"`

	// Logger receives warnings. Nil uses a text handler on stderr.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the configuration used by the demos.
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          600,
		Gravity:         98,
		Drag:            0.1,
		RestDamping:     defaultRestDamping,
		TieBreak:        TieBreakPreferX,
		MaxLayoutPasses: defaultMaxLayoutPasses,
	}
}

// ParseConfig decodes YAML over DefaultConfig, so omitted keys keep their
// defaults, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	return DefaultConfig().Merge(data)
}

// LoadConfigFile reads a YAML config file and merges it over DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	return DefaultConfig().MergeFile(path)
}

// Merge decodes YAML over c, so omitted keys keep c's values, and validates
// the result. c itself is not modified.
func (c Config) Merge(data []byte) (Config, error) {
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// MergeFile reads path and merges it over c; see Merge.
func (c Config) MergeFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return c.Merge(data)
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("viewport must be non-negative, got %vx%v", c.Width, c.Height)
	}
	if c.Drag < 0 {
		return fmt.Errorf("drag must be non-negative, got %v", c.Drag)
	}
	if c.RestDamping < 0 || c.RestDamping > 1 {
		return fmt.Errorf("rest_damping must be between 0 and 1, got %v", c.RestDamping)
	}
	if c.MaxLayoutPasses < 0 {
		return fmt.Errorf("max_layout_passes must be non-negative, got %d", c.MaxLayoutPasses)
	}
	if c.TieBreak > TieBreakSkip {
		return fmt.Errorf("invalid tie_break %v", c.TieBreak)
	}
	return nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Width == 0 {
		c.Width = def.Width
	}
	if c.Height == 0 {
		c.Height = def.Height
	}
	if c.RestDamping == 0 {
		c.RestDamping = def.RestDamping
	}
	if c.MaxLayoutPasses <= 0 {
		c.MaxLayoutPasses = def.MaxLayoutPasses
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	c.Logger = c.Logger.With("component", "canopy")
	return c
}

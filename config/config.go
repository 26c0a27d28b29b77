package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/milk9111/mapstitch/common"
	"gopkg.in/yaml.v3"
)

// Config holds the per-layer options of one stitch run. The zero value
// stitches everything with no mirroring or centering.
type Config struct {
	Background Layer `yaml:"background"`
	Terrain    Layer `yaml:"terrain"`
	Foreground Layer `yaml:"foreground"`
}

// Layer options. In YAML a layer is a single mapping that mixes the
// vcenter flag with integer sublayer keys.
type Layer struct {
	VCenter   bool
	Sublayers map[int]Sublayer
}

type Sublayer struct {
	Hidden        bool `yaml:"hidden"`
	Mirror        bool `yaml:"mirror"`
	MirrorHOffset int  `yaml:"mirror_hoffset"`
}

// UnmarshalYAML decodes a sublayer block, rejecting keys it does not know
// so that a misspelt option is not silently ignored.
func (s *Sublayer) UnmarshalYAML(value *yaml.Node) error {
	*s = Sublayer{}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sublayer must be a mapping", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var dst any
		switch key.Value {
		case "hidden":
			dst = &s.Hidden
		case "mirror":
			dst = &s.Mirror
		case "mirror_hoffset":
			dst = &s.MirrorHOffset
		default:
			return fmt.Errorf("line %d: unknown sublayer key %q (want hidden, mirror or mirror_hoffset)", key.Line, key.Value)
		}
		if err := val.Decode(dst); err != nil {
			return fmt.Errorf("line %d: %s: %w", val.Line, key.Value, err)
		}
	}
	return nil
}

// Sublayer returns the options for id, or the zero value.
func (l Layer) Sublayer(id int) Sublayer {
	return l.Sublayers[id]
}

// Hidden reports whether sublayer id is hidden.
func (l Layer) Hidden(id int) bool {
	return l.Sublayers[id].Hidden
}

func (l *Layer) UnmarshalYAML(value *yaml.Node) error {
	*l = Layer{}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: layer must be a mapping", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Value == "vcenter" {
			if err := val.Decode(&l.VCenter); err != nil {
				return fmt.Errorf("line %d: vcenter: %w", val.Line, err)
			}
			continue
		}

		id, err := strconv.Atoi(key.Value)
		if err != nil {
			return fmt.Errorf("line %d: unknown layer key %q (want vcenter or a sublayer id)", key.Line, key.Value)
		}
		var s Sublayer
		if err := val.Decode(&s); err != nil {
			return fmt.Errorf("line %d: sublayer %d: %w", val.Line, id, err)
		}
		if l.Sublayers == nil {
			l.Sublayers = make(map[int]Sublayer)
		}
		l.Sublayers[id] = s
	}
	return nil
}

// Layer returns the options for a named layer (see common.Layer*).
func (c *Config) Layer(name string) Layer {
	if c == nil {
		return Layer{}
	}
	switch name {
	case common.LayerBackground:
		return c.Background
	case common.LayerTerrain:
		return c.Terrain
	case common.LayerForeground:
		return c.Foreground
	default:
		return Layer{}
	}
}

// Parse decodes a YAML document. Empty documents yield the defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load for an optional flag: an empty path or a file that
// does not exist yields the defaults and found=false.
func LoadOptional(path string) (cfg *Config, found bool, err error) {
	if path == "" {
		return &Config{}, false, nil
	}
	cfg, err = Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

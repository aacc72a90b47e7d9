// Run configuration: defaults, optional TOML file, then flags
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"dft-image-filtering/internal/filter"
	"dft-image-filtering/internal/gui"
	"dft-image-filtering/internal/spectrum"
)

// Config controls one run of the filtering demo.
type Config struct {
	Radius    int    `toml:"radius"`
	Backend   string `toml:"backend"`
	Viewer    string `toml:"viewer"`
	OutputDir string `toml:"output_dir"`
	Debug     bool   `toml:"debug"`
	Quality   bool   `toml:"quality"`
}

func Default() Config {
	return Config{
		Radius:  filter.DefaultRadius,
		Backend: spectrum.DefaultBackend,
		Viewer:  gui.ViewerOpenCV,
		Quality: true,
	}
}

// LoadFile overlays the keys present in a TOML file on top of base.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return base, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.FilterParams().Validate(); err != nil {
		return err
	}
	if _, ok := spectrum.Get(c.Backend); !ok {
		return fmt.Errorf("%w: %q (available: %v)", spectrum.ErrUnknownBackend, c.Backend, spectrum.Names())
	}
	switch c.Viewer {
	case gui.ViewerOpenCV, gui.ViewerFyne, gui.ViewerNone:
	default:
		return fmt.Errorf("%w: %q", gui.ErrUnknownViewer, c.Viewer)
	}
	return nil
}

func (c Config) FilterParams() filter.Params {
	return filter.Params{Radius: c.Radius}
}

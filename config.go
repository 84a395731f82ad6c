package deskscene

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type AssetsConfig struct {
	Dir     string               `toml:"dir"`
	Missing MissingTexturePolicy `toml:"missing"`
}

type CameraConfig struct {
	// ResetAngles makes F restore yaw and pitch too.
	ResetAngles bool `toml:"reset_angles"`
}

// Config is the runtime configuration. Zero-valued fields in a TOML file keep
// their defaults because LoadConfig decodes on top of DefaultConfig.
type Config struct {
	Renderer RendererName `toml:"renderer"`
	Debug    bool         `toml:"debug"`

	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Camera CameraConfig `toml:"camera"`
}

func DefaultConfig() Config {
	return Config{
		Renderer: RendererWGPU,
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  DefaultWindowTitle,
		},
		Assets: AssetsConfig{
			Dir:     ".",
			Missing: MissingTextureFail,
		},
		Camera: CameraConfig{
			ResetAngles: true,
		},
	}
}

// LoadConfig reads a TOML file over the defaults. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, fmt.Errorf("parse config %s:%d:%d: %w", path, row, col, err)
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Overrides are command-line values; zero values leave the config alone.
type Overrides struct {
	Width     int
	Height    int
	Renderer  string
	AssetsDir string
	Missing   string
	Debug     bool
}

func (c *Config) Resolve(o Overrides) {
	if o.Width > 0 {
		c.Window.Width = o.Width
	}
	if o.Height > 0 {
		c.Window.Height = o.Height
	}
	if o.Renderer != "" {
		c.Renderer = RendererName(o.Renderer)
	}
	if o.AssetsDir != "" {
		c.Assets.Dir = o.AssetsDir
	}
	if o.Missing != "" {
		c.Assets.Missing = MissingTexturePolicy(o.Missing)
	}
	if o.Debug {
		c.Debug = true
	}
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseRendererName(string(c.Renderer)); err != nil {
		return err
	}
	if _, err := ParseMissingTexturePolicy(string(c.Assets.Missing)); err != nil {
		return err
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Carmen-Shannon/timmy/common"
	"github.com/Carmen-Shannon/timmy/engine/animation"
	"github.com/Carmen-Shannon/timmy/engine/chat"
	"gopkg.in/yaml.v3"
)

// DefaultAPIKeyEnv is the environment variable the chat API key is read from.
const DefaultAPIKeyEnv = "TIMMY_CHAT_API_KEY"

// Run modes.
const (
	ModeDesktop = "desktop"
	ModeBridge  = "bridge"
)

// Modes lists the accepted run modes.
var Modes = []string{ModeDesktop, ModeBridge}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Mode    string        `yaml:"mode"`
	Model   ModelConfig   `yaml:"model"`
	Engine  EngineConfig  `yaml:"engine"`
	Window  WindowConfig  `yaml:"window"`
	Stage   StageConfig   `yaml:"stage"`
	Catalog CatalogConfig `yaml:"catalog"`
	Chat    ChatConfig    `yaml:"chat"`
	Bridge  BridgeConfig  `yaml:"bridge"`
}

// ModelConfig locates the character model.
type ModelConfig struct {
	Path string `yaml:"path"`
}

// EngineConfig controls the tick and render loops.
type EngineConfig struct {
	TickRate         float64 `yaml:"tickRate"`
	TimeScale        float32 `yaml:"timeScale"`
	RenderFrameLimit float64 `yaml:"renderFrameLimit"`
	SoftwareRenderer bool    `yaml:"softwareRenderer"`
	Profiling        bool    `yaml:"profiling"`
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// StageConfig overrides the colors the desktop stage is tinted with.
type StageConfig struct {
	Background *common.Color          `yaml:"background"`
	Clips      map[string]common.Color `yaml:"clips"`
}

// CatalogConfig selects the animation catalog. Path wins over Inline; with neither the built-in catalog is used.
type CatalogConfig struct {
	Path   string                 `yaml:"path"`
	Inline *animation.CatalogFile `yaml:"inline"`
}

// ChatConfig configures the chat client and how the character reacts to it.
type ChatConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	APIKeyEnv      string        `yaml:"apiKeyEnv"`
	APIKey         string        `yaml:"-"`
	Timeout        time.Duration `yaml:"timeout"`
	Workers        int           `yaml:"workers"`
	WaitAnimation  string        `yaml:"waitAnimation"`
	ClickSequence  []string      `yaml:"clickSequence"`
	TranscriptSize int           `yaml:"transcriptSize"`
	Reactions      string        `yaml:"reactions"`
	AppName        string        `yaml:"appName"`
}

// BridgeConfig configures the browser bridge server.
type BridgeConfig struct {
	Listen    string `yaml:"listen"`
	StaticDir string `yaml:"staticDir"`
}

// Default returns the configuration the application runs with when no file is given.
//
// Returns:
//   - *Config: a new default configuration
func Default() *Config {
	return &Config{
		Mode: ModeDesktop,
		Model: ModelConfig{
			Path: "assets/timmy.glb",
		},
		Engine: EngineConfig{
			TickRate:  60,
			TimeScale: 0.75,
		},
		Window: WindowConfig{
			Title:  "Timmy",
			Width:  800,
			Height: 600,
		},
		Chat: ChatConfig{
			APIKeyEnv:      DefaultAPIKeyEnv,
			Timeout:        chat.DefaultTimeout,
			Workers:        2,
			WaitAnimation:  "focus",
			ClickSequence:  []string{"greeting", "ask"},
			TranscriptSize: chat.DefaultTranscriptSize,
			AppName:        "timmy",
		},
		Bridge: BridgeConfig{
			Listen: "127.0.0.1:8080",
		},
	}
}

// Parse decodes a YAML document over the defaults and validates the result.
// Relative paths in the document are resolved against baseDir.
//
// Parameters:
//   - data: the YAML bytes
//   - baseDir: the directory relative paths are resolved against
//
// Returns:
//   - *Config: the decoded configuration
//   - error: a decode error or an error wrapping ErrInvalidConfig
func Parse(data []byte, baseDir string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.resolvePaths(baseDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the YAML file at path over the defaults and validates the result.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Config: the decoded configuration
//   - error: a read, decode or validation error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	switch {
	case !common.Contains(Modes, c.Mode):
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	case c.Engine.TickRate < 0:
		return fmt.Errorf("%w: negative tick rate", ErrInvalidConfig)
	case c.Engine.TimeScale <= 0:
		return fmt.Errorf("%w: time scale must be positive", ErrInvalidConfig)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Chat.Timeout < 0:
		return fmt.Errorf("%w: negative chat timeout", ErrInvalidConfig)
	case c.Chat.TranscriptSize < 1:
		return fmt.Errorf("%w: transcript size must be at least 1", ErrInvalidConfig)
	case c.Mode == ModeBridge && c.Bridge.Listen == "":
		return fmt.Errorf("%w: bridge mode needs a listen address", ErrInvalidConfig)
	case c.Mode == ModeDesktop && c.Model.Path == "":
		return fmt.Errorf("%w: desktop mode needs a model path", ErrInvalidConfig)
	}
	if c.Catalog.Path == "" && c.Catalog.Inline != nil {
		if _, err := c.Catalog.Inline.Build(); err != nil {
			return fmt.Errorf("%w: inline catalog: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ApplyEnv reads secrets from the environment. The chat API key is never stored in the file.
func (c *Config) ApplyEnv() {
	env := common.Coalesce(c.Chat.APIKeyEnv, DefaultAPIKeyEnv)
	if key, ok := os.LookupEnv(env); ok {
		c.Chat.APIKey = key
	}
}

// BuildCatalog returns the animation catalog the configuration selects.
//
// Returns:
//   - animation.Catalog: the loaded, inline or built-in catalog
//   - error: a load or validation error
func (c *Config) BuildCatalog() (animation.Catalog, error) {
	switch {
	case c.Catalog.Path != "":
		return animation.LoadCatalog(c.Catalog.Path)
	case c.Catalog.Inline != nil:
		return c.Catalog.Inline.Build()
	default:
		return animation.DefaultCatalog(), nil
	}
}

// WatchedFiles returns the files whose changes can be applied while running.
func (c *Config) WatchedFiles() []string {
	var files []string
	if c.Catalog.Path != "" {
		files = append(files, c.Catalog.Path)
	}
	if c.Chat.Reactions != "" {
		files = append(files, c.Chat.Reactions)
	}
	return files
}

func (c *Config) resolvePaths(baseDir string) {
	if baseDir == "" {
		return
	}
	for _, p := range []*string{&c.Model.Path, &c.Catalog.Path, &c.Chat.Reactions, &c.Bridge.StaticDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/richedit/internal/input/key"
	"github.com/dshills/richedit/internal/logging"
)

// Toolbar group names accepted in ToolbarConfig.Groups.
var ToolbarGroups = []string{
	"history", "paragraph", "align", "color", "link", "image", "video", "table", "code",
}

// Config is the complete editor configuration.
type Config struct {
	History HistoryConfig `toml:"history" yaml:"history"`
	Media   MediaConfig   `toml:"media" yaml:"media"`
	Table   TableConfig   `toml:"table" yaml:"table"`
	Toolbar ToolbarConfig `toml:"toolbar" yaml:"toolbar"`
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Keys    KeysConfig    `toml:"keys" yaml:"keys"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// HistoryConfig configures undo/redo snapshots.
type HistoryConfig struct {
	// Debounce is the quiet period after the last edit before a snapshot
	// is taken.
	Debounce Duration `toml:"debounce" yaml:"debounce" validate:"min=0"`

	// MaxEntries caps the snapshot stack; the oldest entries are evicted.
	MaxEntries int `toml:"max_entries" yaml:"max_entries" validate:"min=1,max=10000"`
}

// MediaConfig configures image and video editing.
type MediaConfig struct {
	// MinSize is the smallest width or height a resize may produce, in px.
	MinSize float64 `toml:"min_size" yaml:"min_size" validate:"gt=0"`

	// VideoWidth is the width of newly inserted video embeds, in px.
	VideoWidth float64 `toml:"video_width" yaml:"video_width" validate:"gtefield=MinSize"`
}

// TableConfig configures table editing.
type TableConfig struct {
	// FinishWindow is how long after a drag ends the following click is
	// ignored.
	FinishWindow Duration `toml:"finish_window" yaml:"finish_window" validate:"min=0"`

	// CellStyle is the inline style given to new cells.
	CellStyle string `toml:"cell_style" yaml:"cell_style"`
}

// ToolbarConfig selects the visible toolbar groups and their order.
type ToolbarConfig struct {
	Groups []string `toml:"groups" yaml:"groups" validate:"unique,dive,oneof=history paragraph align color link image video table code"`
}

// EditorConfig configures the editable surface.
type EditorConfig struct {
	// Height is the surface height in px; zero lets the host decide.
	Height int `toml:"height" yaml:"height" validate:"min=0"`

	// Resizable allows the host to offer a vertical resize grip.
	Resizable bool `toml:"resizable" yaml:"resizable"`

	// CheckURLs probes link and image URLs before inserting them.
	CheckURLs bool `toml:"check_urls" yaml:"check_urls"`

	// URLTimeout bounds one reachability probe.
	URLTimeout Duration `toml:"url_timeout" yaml:"url_timeout" validate:"min=0"`

	// URLCacheTTL is how long a probe result is reused.
	URLCacheTTL Duration `toml:"url_cache_ttl" yaml:"url_cache_ttl" validate:"min=0"`
}

// KeysConfig binds the editor shortcuts. Each entry is a key
// specification such as "Ctrl+Z" or "Meta+Shift+Z". Modifiers match
// exactly, so Ctrl and Meta variants are listed separately.
type KeysConfig struct {
	Undo []string `toml:"undo" yaml:"undo" validate:"dive,keyspec"`
	Redo []string `toml:"redo" yaml:"redo" validate:"dive,keyspec"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON  bool   `toml:"json" yaml:"json"`
	File  string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Debounce:   Duration(500 * time.Millisecond),
			MaxEntries: 200,
		},
		Media: MediaConfig{
			MinSize:    50,
			VideoWidth: 560,
		},
		Table: TableConfig{
			FinishWindow: Duration(100 * time.Millisecond),
			CellStyle:    "border: 1px solid #ccc; padding: 8px;",
		},
		Toolbar: ToolbarConfig{
			Groups: append([]string(nil), ToolbarGroups...),
		},
		Editor: EditorConfig{
			URLTimeout:  Duration(5 * time.Second),
			URLCacheTTL: Duration(10 * time.Minute),
		},
		Keys: KeysConfig{
			Undo: []string{"Ctrl+Z", "Meta+Z"},
			Redo: []string{"Ctrl+Y", "Meta+Y", "Ctrl+Shift+Z", "Meta+Shift+Z"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over the defaults
// and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := cfg.Decode(path, data); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode decodes data over c. The format is chosen from name's extension.
func (c *Config) Decode(name string, data []byte) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return decodeTOML(c, name, data)
	case ".yaml", ".yml":
		return decodeYAML(c, name, data)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

func decodeTOML(c *Config, name string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		pe := &ParseError{Source: name, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return pe
	}
	return nil
}

func decodeYAML(c *Config, name string, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return &ParseError{Source: name, Message: err.Error(), Err: err}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("keyspec", func(fl validator.FieldLevel) bool {
		_, err := key.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks every section. Each failing field is reported as a
// *ValidationError; several failures are joined.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, toValidationError(fe))
	}
	return errors.Join(out...)
}

func toValidationError(fe validator.FieldError) *ValidationError {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	ve := &ValidationError{Field: path, Value: fe.Value()}
	switch fe.Tag() {
	case "min", "max", "gt", "gte", "lt", "lte", "gtefield":
		ve.Rule = RuleRange
		ve.Message = fmt.Sprintf("must satisfy %s %s", fe.Tag(), fe.Param())
	case "oneof":
		ve.Rule = RuleEnum
		ve.Message = "must be one of: " + fe.Param()
	case "required":
		ve.Rule = RuleRequired
		ve.Message = "is required"
	case "keyspec":
		ve.Rule = RuleOther
		ve.Message = `must be a key specification such as "Ctrl+Z"`
	default:
		ve.Rule = RuleOther
		ve.Message = "failed " + fe.Tag()
	}
	return ve
}

// Logging converts the log section into a logger configuration.
func (c Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.Log.Level)
	lc.JSON = c.Log.JSON
	lc.File = c.Log.File
	return lc
}

// Duration is a time.Duration written as a Go duration string.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String implements fmt.Stringer.
func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	return d.UnmarshalText([]byte(n.Value))
}

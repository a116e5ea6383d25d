package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the default prefix for environment overrides.
const EnvPrefix = "RICHEDIT_"

// envSetting binds one environment variable suffix to a Config field.
type envSetting struct {
	name string
	set  func(c *Config, val string) error
}

func durationSetter(field func(c *Config) *Duration) func(*Config, string) error {
	return func(c *Config, val string) error {
		return field(c).UnmarshalText([]byte(val))
	}
}

func intSetter(field func(c *Config) *int) func(*Config, string) error {
	return func(c *Config, val string) error {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func floatSetter(field func(c *Config) *float64) func(*Config, string) error {
	return func(c *Config, val string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func boolSetter(field func(c *Config) *bool) func(*Config, string) error {
	return func(c *Config, val string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// listSetter splits a comma-separated value, dropping empty items.
func listSetter(field func(c *Config) *[]string) func(*Config, string) error {
	return func(c *Config, val string) error {
		var items []string
		for _, item := range strings.Split(val, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*field(c) = items
		return nil
	}
}

func stringSetter(field func(c *Config) *string) func(*Config, string) error {
	return func(c *Config, val string) error {
		*field(c) = val
		return nil
	}
}

var envSettings = []envSetting{
	{"HISTORY_DEBOUNCE", durationSetter(func(c *Config) *Duration { return &c.History.Debounce })},
	{"HISTORY_MAX_ENTRIES", intSetter(func(c *Config) *int { return &c.History.MaxEntries })},
	{"MEDIA_MIN_SIZE", floatSetter(func(c *Config) *float64 { return &c.Media.MinSize })},
	{"MEDIA_VIDEO_WIDTH", floatSetter(func(c *Config) *float64 { return &c.Media.VideoWidth })},
	{"TABLE_FINISH_WINDOW", durationSetter(func(c *Config) *Duration { return &c.Table.FinishWindow })},
	{"TABLE_CELL_STYLE", stringSetter(func(c *Config) *string { return &c.Table.CellStyle })},
	{"TOOLBAR", func(c *Config, val string) error {
		var groups []string
		for _, g := range strings.Split(val, ",") {
			if g = strings.TrimSpace(g); g != "" {
				groups = append(groups, strings.ToLower(g))
			}
		}
		c.Toolbar.Groups = groups
		return nil
	}},
	{"EDITOR_HEIGHT", intSetter(func(c *Config) *int { return &c.Editor.Height })},
	{"EDITOR_RESIZABLE", boolSetter(func(c *Config) *bool { return &c.Editor.Resizable })},
	{"EDITOR_CHECK_URLS", boolSetter(func(c *Config) *bool { return &c.Editor.CheckURLs })},
	{"EDITOR_URL_TIMEOUT", durationSetter(func(c *Config) *Duration { return &c.Editor.URLTimeout })},
	{"EDITOR_URL_CACHE_TTL", durationSetter(func(c *Config) *Duration { return &c.Editor.URLCacheTTL })},
	{"KEYS_UNDO", listSetter(func(c *Config) *[]string { return &c.Keys.Undo })},
	{"KEYS_REDO", listSetter(func(c *Config) *[]string { return &c.Keys.Redo })},
	{"LOG_LEVEL", stringSetter(func(c *Config) *string { return &c.Log.Level })},
	{"LOG_JSON", boolSetter(func(c *Config) *bool { return &c.Log.JSON })},
	{"LOG_FILE", stringSetter(func(c *Config) *string { return &c.Log.File })},
}

// ApplyEnv overrides fields from environment variables named prefix plus
// the setting, e.g. RICHEDIT_HISTORY_DEBOUNCE=250ms. Empty values are
// treated as set. The result is validated.
func (c *Config) ApplyEnv(prefix string) error {
	for _, s := range envSettings {
		name := prefix + s.name
		val, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := s.set(c, val); err != nil {
			return &ParseError{Source: name, Message: err.Error(), Err: err}
		}
	}
	return c.Validate()
}

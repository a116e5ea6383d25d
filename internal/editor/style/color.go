package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for a color that cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"navy":    "#000080",
	"teal":    "#008080",
	"maroon":  "#800000",
	"olive":   "#808000",
	"lime":    "#00ff00",
	"aqua":    "#00ffff",
	"fuchsia": "#ff00ff",
}

// NormalizeColor converts #rgb, #rrggbb, rgb(r, g, b) and basic color
// names to lower-case #rrggbb. An empty string stays empty and means "no
// color".
func NormalizeColor(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	if hex, ok := namedColors[s]; ok {
		return hex, nil
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		c, err := parseRGB(s[4 : len(s)-1])
		if err != nil {
			return "", err
		}
		return c.Hex(), nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

func parseRGB(args string) (colorful.Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return colorful.Color{}, fmt.Errorf("%w: rgb(%s)", ErrInvalidColor, args)
	}
	var ch [3]float64
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return colorful.Color{}, fmt.Errorf("%w: rgb(%s)", ErrInvalidColor, args)
		}
		ch[i] = float64(v) / 255
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

package media

import (
	"math"
	"strconv"
	"strings"
)

// Kind distinguishes the media types.
type Kind uint8

const (
	Image Kind = iota + 1
	Video
)

// String returns a readable kind name.
func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

// Handle is a resize handle position.
type Handle string

// Resize handles, clockwise from the top.
const (
	HandleN  Handle = "n"
	HandleNE Handle = "ne"
	HandleE  Handle = "e"
	HandleSE Handle = "se"
	HandleS  Handle = "s"
	HandleSW Handle = "sw"
	HandleW  Handle = "w"
	HandleNW Handle = "nw"
)

// Handles lists every handle in rendering order.
var Handles = []Handle{HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW, HandleNW}

// Valid reports whether h is a known handle.
func (h Handle) Valid() bool {
	for _, v := range Handles {
		if v == h {
			return true
		}
	}
	return false
}

// Corner reports whether h moves two edges.
func (h Handle) Corner() bool { return len(h) == 2 }

// Size is a width and height in CSS pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rounded returns s with both dimensions rounded to whole pixels.
func (s Size) Rounded() Size {
	return Size{Width: math.Round(s.Width), Height: math.Round(s.Height)}
}

// Geometry defaults.
const (
	DefaultMinSize    = 50
	DefaultImageWidth = 300
	DefaultVideoWidth = 560

	// VideoAspect is the locked width:height ratio of video embeds.
	VideoAspect = 16.0 / 9.0
)

// DefaultImageSize is assumed for images without any known geometry.
var DefaultImageSize = Size{Width: DefaultImageWidth, Height: 200}

// VideoSize returns the 16:9 size of width.
func VideoSize(width float64) Size {
	return Size{Width: width, Height: width / VideoAspect}
}

// ComputeResize returns the size after dragging handle by (dx, dy) from a
// starting size. dx grows to the right and dy downwards; handles on the
// west or north edge grow in the opposite direction. Neither dimension
// goes below minSize.
func ComputeResize(kind Kind, handle Handle, start Size, dx, dy, minSize float64) Size {
	var dw, dh float64
	if strings.ContainsRune(string(handle), 'e') {
		dw = dx
	} else if strings.ContainsRune(string(handle), 'w') {
		dw = -dx
	}
	if strings.ContainsRune(string(handle), 's') {
		dh = dy
	} else if strings.ContainsRune(string(handle), 'n') {
		dh = -dy
	}

	if kind == Video {
		return resizeLocked(handle, start, dw, dh, VideoAspect, minSize)
	}
	if handle.Corner() && start.Height > 0 {
		return resizeLocked(handle, start, dw, dh, start.Width/start.Height, minSize)
	}
	out := Size{
		Width:  math.Max(start.Width+dw, minSize),
		Height: math.Max(start.Height+dh, minSize),
	}
	if dw == 0 {
		out.Width = start.Width
	}
	if dh == 0 {
		out.Height = start.Height
	}
	return out
}

// resizeLocked resizes keeping width/height == ratio. On corners the axis
// that moved more drives; on edges the moved axis drives.
func resizeLocked(handle Handle, start Size, dw, dh, ratio, minSize float64) Size {
	widthDrives := dh == 0 || (handle.Corner() && math.Abs(dw) >= math.Abs(dh))
	if handle == HandleN || handle == HandleS {
		widthDrives = false
	}

	var out Size
	if widthDrives {
		out.Width = start.Width + dw
		out.Height = out.Width / ratio
	} else {
		out.Height = start.Height + dh
		out.Width = out.Height * ratio
	}

	if out.Width < minSize || out.Height < minSize {
		scale := math.Max(minSize/out.Width, minSize/out.Height)
		if out.Width <= 0 || out.Height <= 0 {
			if ratio >= 1 {
				out = Size{Width: minSize * ratio, Height: minSize}
			} else {
				out = Size{Width: minSize, Height: minSize / ratio}
			}
			return out
		}
		out.Width *= scale
		out.Height *= scale
	}
	return out
}

// parsePx reads a CSS pixel length such as "300px" or "300".
func parsePx(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func formatPx(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', -1, 64) + "px"
}

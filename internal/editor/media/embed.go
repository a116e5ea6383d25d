package media

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	youtubeID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
	vimeoID   = regexp.MustCompile(`^[0-9]+$`)
)

// EmbedURL returns the player URL for a video page URL. YouTube and Vimeo
// page URLs become their embed URLs; other http(s) URLs are returned as
// they are.
func EmbedURL(raw string) (string, error) {
	u, err := parseHTTP(raw)
	if err != nil {
		return "", err
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch host {
	case "youtube.com", "youtube-nocookie.com":
		var id string
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case len(segs) == 2 && (segs[0] == "embed" || segs[0] == "shorts" || segs[0] == "live"):
			id = segs[1]
		}
		if youtubeID.MatchString(id) {
			return "https://www.youtube.com/embed/" + id, nil
		}
	case "youtu.be":
		if len(segs) == 1 && youtubeID.MatchString(segs[0]) {
			return "https://www.youtube.com/embed/" + segs[0], nil
		}
	case "vimeo.com":
		if len(segs) >= 1 && vimeoID.MatchString(segs[len(segs)-1]) {
			return "https://player.vimeo.com/video/" + segs[len(segs)-1], nil
		}
	case "player.vimeo.com":
		if len(segs) == 2 && segs[0] == "video" && vimeoID.MatchString(segs[1]) {
			return "https://player.vimeo.com/video/" + segs[1], nil
		}
	}
	return u.String(), nil
}

func parseHTTP(raw string) (*url.URL, error) {
	s := strings.TrimSpace(raw)
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u, nil
}

// ImageSource validates an image src: an http(s) URL or an image data URI.
func ImageSource(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "data:") {
		if !strings.HasPrefix(s, "data:image/") || !strings.Contains(s, ",") {
			return "", fmt.Errorf("%w: not an image data uri", ErrInvalidURL)
		}
		return s, nil
	}
	u, err := parseHTTP(s)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// DataURI detects the content type of data and encodes it as a base64 data
// URI. Non-image content is rejected.
func DataURI(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	mime := mt.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

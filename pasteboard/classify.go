package pasteboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultMaxFileSize caps how much of a referenced file is read into memory
// when classifying its content.
const DefaultMaxFileSize = 1 << 20

// ErrEmptyPayload is returned when a clipboard read carries neither text nor
// a decodable image.
var ErrEmptyPayload = errors.New("empty clipboard payload")

// Payload is one raw clipboard read: the text and image representations the
// backend found. Either may be nil.
type Payload struct {
	Text  []byte
	Image []byte
}

// Empty reports whether the payload carries nothing.
func (p Payload) Empty() bool {
	return len(p.Text) == 0 && len(p.Image) == 0
}

// Equal reports whether two payloads carry identical bytes.
func (p Payload) Equal(o Payload) bool {
	return bytes.Equal(p.Text, o.Text) && bytes.Equal(p.Image, o.Image)
}

// Classifier turns raw clipboard payloads into Items.
type Classifier struct {
	// MaxFileSize bounds file reads for LocalFile content. Zero means
	// DefaultMaxFileSize.
	MaxFileSize int64
}

// Classify maps a payload to one of the four item shapes. Images win over
// text when both decode, matching what a paste would produce.
func (c *Classifier) Classify(p Payload) (Item, error) {
	if p.Empty() {
		return nil, ErrEmptyPayload
	}
	if len(p.Image) > 0 {
		if img, ok := decodeImage(p.Image); ok {
			return img, nil
		}
	}
	if len(p.Text) == 0 {
		return nil, ErrEmptyPayload
	}

	text := string(p.Text)
	trimmed := strings.TrimSpace(text)

	if path, ok := filePath(trimmed); ok {
		return LocalFile{Path: path, Content: c.classifyFile(path)}, nil
	}
	if u, ok := parseURL(trimmed); ok {
		return URL{Value: u}, nil
	}
	return Text{Value: text}, nil
}

// Payload is the inverse of Classify: the clipboard representation that
// re-activating item writes back.
func (c *Classifier) Payload(item Item) Payload {
	switch v := item.(type) {
	case Text:
		return Payload{Text: []byte(v.Value)}
	case URL:
		return Payload{Text: []byte(urlString(v))}
	case Image:
		return Payload{Image: v.Data}
	case LocalFile:
		u := url.URL{Scheme: "file", Path: v.Path}
		return Payload{Text: []byte(u.String())}
	default:
		return Payload{}
	}
}

// classifyFile reads the ground content of the file at path. It never
// returns a LocalFile, keeping file references one level deep.
func (c *Classifier) classifyFile(path string) Item {
	limit := c.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > limit {
		return Text{Value: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return Text{Value: path}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return Text{Value: path}
	}
	if img, ok := decodeImage(data); ok {
		return img
	}
	if utf8.Valid(data) && !bytes.ContainsRune(data, 0) {
		return Text{Value: string(data)}
	}
	return Text{Value: path}
}

// decodeImage reads only the image header to learn its dimensions.
func decodeImage(data []byte) (Image, bool) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return Image{}, false
	}
	return Image{Width: cfg.Width, Height: cfg.Height, Format: format, Data: data}, true
}

// filePath recognises file:// URLs and absolute paths naming an existing
// file or directory.
func filePath(s string) (string, bool) {
	if s == "" || strings.ContainsAny(s, "\n\r") {
		return "", false
	}
	if strings.HasPrefix(s, "file://") {
		u, err := url.Parse(s)
		if err != nil || u.Path == "" {
			return "", false
		}
		return filepath.Clean(u.Path), true
	}
	if !filepath.IsAbs(s) {
		return "", false
	}
	if _, err := os.Stat(s); err != nil {
		return "", false
	}
	return filepath.Clean(s), true
}

// parseURL accepts a single token with a scheme and host, or a mailto link.
func parseURL(s string) (*url.URL, bool) {
	if s == "" || strings.ContainsAny(s, " \t\n\r") {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	if u.Host == "" && !(u.Scheme == "mailto" && u.Opaque != "") {
		return nil, false
	}
	return u, true
}

// Describe is a one-line summary of an item for logs and the footer.
func Describe(item Item) string {
	switch v := item.(type) {
	case Text:
		return fmt.Sprintf("text, %d bytes", len(v.Value))
	case URL:
		return "url " + urlString(v)
	case Image:
		return fmt.Sprintf("image %s %dx%d", v.Format, v.Width, v.Height)
	case LocalFile:
		return "file " + v.Path + " (" + Describe(Ground(v)) + ")"
	default:
		return "unknown"
	}
}

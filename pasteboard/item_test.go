package pasteboard_test

import (
	"strings"
	"testing"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

func TestGround(t *testing.T) {
	text := pasteboard.Text{Value: "hello"}
	img := pasteboard.Image{Width: 2, Height: 3}

	tests := []struct {
		name string
		item pasteboard.Item
		want pasteboard.Item
	}{
		{"text is already ground", text, text},
		{"image is already ground", img, img},
		{"file unwraps to content", pasteboard.LocalFile{Path: "/tmp/a.txt", Content: text}, text},
		{"file unwraps to image", pasteboard.LocalFile{Path: "/tmp/a.png", Content: img}, img},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pasteboard.Ground(tt.item)
			if !sameItem(got, tt.want) {
				t.Errorf("Ground = %#v, want %#v", got, tt.want)
			}
			if pasteboard.KindOf(got) == pasteboard.KindFile {
				t.Error("Ground returned a file reference")
			}
		})
	}
}

func TestGround_PanicsOnMalformedFiles(t *testing.T) {
	tests := []struct {
		name string
		item pasteboard.Item
	}{
		{"nested file reference", pasteboard.LocalFile{
			Path:    "/outer",
			Content: pasteboard.LocalFile{Path: "/inner", Content: pasteboard.Text{Value: "x"}},
		}},
		{"file without content", pasteboard.LocalFile{Path: "/empty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if !strings.HasPrefix(r.(string), "pasteboard:") {
					t.Errorf("panic = %v, want pasteboard-prefixed message", r)
				}
			}()
			pasteboard.Ground(tt.item)
		})
	}
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		name string
		item pasteboard.Item
		want string
	}{
		{"text", pasteboard.Text{Value: "hello"}, "hello"},
		{"url", mustURL(t, "http://example.com"), "http://example.com"},
		{"image has no text", pasteboard.Image{Width: 1, Height: 1}, ""},
		{"file shows its content", pasteboard.LocalFile{Path: "/a", Content: pasteboard.Text{Value: "body"}}, "body"},
		{"nil url", pasteboard.URL{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pasteboard.DisplayText(tt.item); got != tt.want {
				t.Errorf("DisplayText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	t.Run("equal content shares a key", func(t *testing.T) {
		a := pasteboard.Text{Value: "same"}
		b := pasteboard.Text{Value: "same"}
		if pasteboard.Key(a) != pasteboard.Key(b) {
			t.Error("identical text produced different keys")
		}
	})

	t.Run("text and url with same string differ", func(t *testing.T) {
		a := pasteboard.Text{Value: "http://example.com"}
		b := mustURL(t, "http://example.com")
		if pasteboard.Key(a) == pasteboard.Key(b) {
			t.Error("text and url collided")
		}
	})

	t.Run("file key tracks content", func(t *testing.T) {
		a := pasteboard.LocalFile{Path: "/a", Content: pasteboard.Text{Value: "v1"}}
		b := pasteboard.LocalFile{Path: "/a", Content: pasteboard.Text{Value: "v2"}}
		if pasteboard.Key(a) == pasteboard.Key(b) {
			t.Error("file key ignored content change")
		}
		if pasteboard.Identity(a) != pasteboard.Identity(b) {
			t.Error("file identity should depend on path only")
		}
	})
}

func TestKind_String(t *testing.T) {
	tests := map[pasteboard.Kind]string{
		pasteboard.KindText:  "text",
		pasteboard.KindURL:   "url",
		pasteboard.KindImage: "image",
		pasteboard.KindFile:  "file",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

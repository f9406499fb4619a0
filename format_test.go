package main

import (
	"testing"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0k"},
		{1234, "1.2k"},
		{123456, "123.5k"},
		{1234567, "1.2M"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.n); got != tt.want {
			t.Errorf("formatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "line"); got != "1 line" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(2, "line"); got != "2 lines" {
		t.Errorf("plural(2) = %q", got)
	}
	if got := plural(1500, "char"); got != "1.5k chars" {
		t.Errorf("plural(1500) = %q", got)
	}
}

func TestShortPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"/Users/kyle/notes.txt", "notes.txt"},
		{"relative/dir/", "dir"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := shortPath(tt.path); got != tt.want {
			t.Errorf("shortPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestItemMeta(t *testing.T) {
	img := pasteboard.Image{Width: 640, Height: 480, Format: "png", Data: make([]byte, 2048)}
	tests := []struct {
		name string
		item pasteboard.Item
		want string
	}{
		{"text", text("ab\ncd"), "2 lines · 5 chars"},
		{"single char", text("x"), "1 line · 1 char"},
		{"image", img, "640×480 · 2.0 KB"},
		{"image without data", pasteboard.Image{Width: 1, Height: 2}, "1×2"},
		{"file", pasteboard.LocalFile{Path: "/tmp/a.txt", Content: text("hi")}, "a.txt · 1 line · 2 chars"},
		{"url", mustURL(t, "https://example.com"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := itemMeta(tt.item); got != tt.want {
				t.Errorf("itemMeta = %q, want %q", got, tt.want)
			}
		})
	}
}

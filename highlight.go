package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
)

// codeHL syntax-highlights clipboard text for terminal display. JSON is
// detected exactly and pretty-printed; other languages go through chroma's
// content analysis. Chroma objects are safe for reuse.
type codeHL struct {
	json      chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// newCodeHL creates a highlighter for the given background, formatting for
// the color profile detected on stderr.
func newCodeHL(hasDarkBg bool) *codeHL {
	styleName := "github"
	if hasDarkBg {
		styleName = "dracula"
	}
	profile := colorprofile.Detect(os.Stderr, os.Environ())

	return &codeHL{
		json:      chroma.Coalesce(lexers.Get("json")),
		formatter: formatters.Get(chromaFormatter(profile)),
		style:     styles.Get(styleName),
	}
}

// highlightJSON pretty-prints and highlights s. Returns ("", false) for
// non-JSON input so the caller can fall back to plain rendering.
func (h *codeHL) highlightJSON(s string) (string, bool) {
	raw := []byte(strings.TrimSpace(s))
	if len(raw) == 0 || (raw[0] != '{' && raw[0] != '[') || !json.Valid(raw) {
		return "", false
	}

	// Normalize formatting (idempotent on already-indented input).
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", false
	}
	return h.format(h.json, buf.String())
}

// highlightCode highlights s when chroma recognises a language in it.
// Returns the highlighted text and the language name.
func (h *codeHL) highlightCode(s string) (string, string, bool) {
	lexer := lexers.Analyse(s)
	if lexer == nil {
		return "", "", false
	}
	name := lexer.Config().Name
	if name == "plaintext" || name == "Text only" {
		return "", "", false
	}
	out, ok := h.format(chroma.Coalesce(lexer), s)
	return out, name, ok
}

func (h *codeHL) format(lexer chroma.Lexer, s string) (string, bool) {
	iterator, err := lexer.Tokenise(nil, s)
	if err != nil {
		return "", false
	}
	var out bytes.Buffer
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return "", false
	}
	return strings.TrimRight(out.String(), "\n"), true
}

// chromaFormatter maps colorprofile profiles to chroma terminal formatter names.
func chromaFormatter(profile colorprofile.Profile) string {
	switch profile {
	case colorprofile.TrueColor:
		return "terminal16m"
	case colorprofile.ANSI256:
		return "terminal256"
	case colorprofile.ANSI:
		return "terminal16"
	default:
		return "terminal"
	}
}

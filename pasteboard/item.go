package pasteboard

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"strconv"
)

// maxFileDepth bounds LocalFile nesting. Producers wrap ground content in at
// most one LocalFile; anything deeper is a classifier bug.
const maxFileDepth = 1

// Item is a sealed interface over the four shapes a captured clipboard entry
// can take: URL, Text, Image and LocalFile.
type Item interface {
	pasteboardItem()
	kind() Kind
}

// Kind names an item shape for display and keying.
type Kind int

const (
	KindText Kind = iota
	KindURL
	KindImage
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindURL:
		return "url"
	case KindImage:
		return "image"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// URL is a parsed URI copied as text.
type URL struct {
	Value *url.URL
}

func (URL) pasteboardItem() {}
func (URL) kind() Kind      { return KindURL }

// Text is a plain string.
type Text struct {
	Value string
}

func (Text) pasteboardItem() {}
func (Text) kind() Kind      { return KindText }

// Image is an encoded bitmap with known pixel dimensions.
type Image struct {
	Width  int
	Height int
	Format string // "png", "jpeg", "gif"
	Data   []byte
}

func (Image) pasteboardItem() {}
func (Image) kind() Kind      { return KindImage }

// LocalFile is a file-system path paired with the classified content of the
// file it names.
type LocalFile struct {
	Path    string
	Content Item
}

func (LocalFile) pasteboardItem() {}
func (LocalFile) kind() Kind      { return KindFile }

// KindOf returns the shape of item without unwrapping file references.
func KindOf(item Item) Kind {
	return item.kind()
}

// Ground unwraps LocalFile references until a non-file item is reached.
// Panics when the chain is nil-terminated or nested deeper than maxFileDepth:
// both mean a producer built an item it never should have.
func Ground(item Item) Item {
	for depth := 0; ; depth++ {
		f, ok := item.(LocalFile)
		if !ok {
			if item == nil {
				panic("pasteboard: file reference without content")
			}
			return item
		}
		if depth >= maxFileDepth {
			panic(fmt.Sprintf("pasteboard: file reference %q nested deeper than %d level(s)", f.Path, maxFileDepth))
		}
		item = f.Content
	}
}

// DisplayText returns the string a text-like card shows. Images have none.
func DisplayText(item Item) string {
	switch v := Ground(item).(type) {
	case Text:
		return v.Value
	case URL:
		return urlString(v)
	default:
		return ""
	}
}

func urlString(u URL) string {
	if u.Value == nil {
		return ""
	}
	return u.Value.String()
}

// Key returns a content key: two items with the same key are the same entry
// in the history regardless of when they were captured.
func Key(item Item) string {
	switch v := item.(type) {
	case Text:
		return "text:" + hashString(v.Value)
	case URL:
		return "url:" + hashString(urlString(v))
	case Image:
		return "image:" + strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height) + ":" + hashBytes(v.Data)
	case LocalFile:
		if v.Content == nil {
			return "file:" + hashString(v.Path)
		}
		return "file:" + hashString(v.Path) + ":" + Key(v.Content)
	default:
		return "unknown"
	}
}

func hashString(s string) string {
	h := fnv.New64a()
	h.Write([]byte(s))
	return strconv.FormatUint(h.Sum64(), 16)
}

func hashBytes(b []byte) string {
	h := fnv.New64a()
	h.Write(b)
	return strconv.FormatUint(h.Sum64(), 16)
}

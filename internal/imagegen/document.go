package imagegen

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Element is an <img> tag of a Document. Only its attributes can change.
type Element struct {
	attrs       []html.Attribute
	selfClosing bool
	dirty       bool
}

// segment is one token of the source: raw bytes, or an <img> tag that is
// re-serialized only after it was modified.
type segment struct {
	raw string
	img *Element
}

// Document is tokenized markup. Rendering copies every token through
// unchanged except modified <img> tags, so nesting and formatting survive
// exactly as the model wrote them.
type Document struct {
	segments []segment
}

// ParseDocument tokenizes generated markup into a Document.
func ParseDocument(code string) (*Document, error) {
	z := html.NewTokenizer(strings.NewReader(code))
	doc := &Document{}
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
			}
			return doc, nil
		}
		raw := string(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			doc.segments = append(doc.segments, segment{raw: raw})
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "img" {
			doc.segments = append(doc.segments, segment{raw: raw})
			continue
		}
		el := &Element{selfClosing: tt == html.SelfClosingTagToken}
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			el.attrs = append(el.attrs, html.Attribute{Key: string(key), Val: string(val)})
		}
		doc.segments = append(doc.segments, segment{raw: raw, img: el})
	}
}

// Render serializes the Document back to markup.
func (d *Document) Render() (string, error) {
	var sb strings.Builder
	for _, s := range d.segments {
		if s.img == nil || !s.img.dirty {
			sb.WriteString(s.raw)
			continue
		}
		tt := html.StartTagToken
		if s.img.selfClosing {
			tt = html.SelfClosingTagToken
		}
		sb.WriteString(html.Token{Type: tt, Data: "img", Attr: s.img.attrs}.String())
	}
	return sb.String(), nil
}

// images returns every <img> element in document order.
func (d *Document) images() []*Element {
	var out []*Element
	for _, s := range d.segments {
		if s.img != nil {
			out = append(out, s.img)
		}
	}
	return out
}

// getAttr returns the first occurrence of key, as browsers do.
func getAttr(el *Element, key string) (string, bool) {
	for _, a := range el.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(el *Element, key, val string) {
	el.dirty = true
	for i, a := range el.attrs {
		if a.Key == key {
			el.attrs[i].Val = val
			return
		}
	}
	el.attrs = append(el.attrs, html.Attribute{Key: key, Val: val})
}

package imagegen

import (
	"fmt"
	"strings"
)

// DefaultPlaceholderPrefix is the stand-in image host the prompts ask
// the model to use.
const DefaultPlaceholderPrefix = "https://placehold.co"

// Placeholder is an <img> element whose src points at the placeholder host.
type Placeholder struct {
	Elem   *Element
	Src    string
	Alt    string
	HasAlt bool
}

// Scan returns the placeholder images of doc in document order.
func Scan(doc *Document, prefix string) ([]Placeholder, error) {
	var out []Placeholder
	for _, img := range doc.images() {
		src, ok := getAttr(img, "src")
		if !ok {
			return nil, fmt.Errorf("%w: img element without src", ErrMalformedInput)
		}
		if !strings.HasPrefix(src, prefix) {
			continue
		}
		alt, hasAlt := getAttr(img, "alt")
		if strings.TrimSpace(alt) == "" {
			alt, hasAlt = "", false
		}
		out = append(out, Placeholder{Elem: img, Src: src, Alt: alt, HasAlt: hasAlt})
	}
	return out, nil
}

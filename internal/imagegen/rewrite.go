package imagegen

import (
	"log"
	"strconv"
)

// Rewrite points each resolved placeholder at its generated image and
// sets width/height from the placeholder URL. It returns the labels that
// were left as placeholders, one entry per element.
func Rewrite(placeholders []Placeholder, res Resolution) []string {
	var unresolved []string
	for _, p := range placeholders {
		if !p.HasAlt {
			continue
		}
		url, ok := res[p.Alt]
		if !ok {
			log.Printf("no resolution for image alt=%q", p.Alt)
			unresolved = append(unresolved, p.Alt)
			continue
		}
		if url == "" {
			log.Printf("image generation failed for alt=%q, keeping placeholder", p.Alt)
			unresolved = append(unresolved, p.Alt)
			continue
		}
		w, h := ExtractDimensions(p.Src)
		setAttr(p.Elem, "width", strconv.Itoa(w))
		setAttr(p.Elem, "height", strconv.Itoa(h))
		setAttr(p.Elem, "src", url)
	}
	return unresolved
}

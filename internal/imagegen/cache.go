package imagegen

import (
	"fmt"
	"strings"
)

// Cache maps a label to an image URL resolved in an earlier revision.
// An empty value is treated as absent.
type Cache map[string]string

// BuildCache collects alt -> src for every already-resolved image of a
// prior document, so unchanged placeholders are not regenerated.
func BuildCache(code, prefix string) (Cache, error) {
	doc, err := ParseDocument(code)
	if err != nil {
		return nil, err
	}
	cache := Cache{}
	for _, img := range doc.images() {
		src, ok := getAttr(img, "src")
		if !ok {
			return nil, fmt.Errorf("%w: img element without src", ErrMalformedInput)
		}
		if strings.HasPrefix(src, prefix) {
			continue
		}
		alt, _ := getAttr(img, "alt")
		if strings.TrimSpace(alt) == "" {
			continue
		}
		cache[alt] = src
	}
	return cache, nil
}

// Lookup reports the usable URL cached for label.
func (c Cache) Lookup(label string) (string, bool) {
	url := c[label]
	return url, url != ""
}

// Resolution maps a label to the URL the rewriter should use. A present
// label with an empty URL marks a failed generation.
type Resolution map[string]string

// Merge combines fresh results with the cache. Fresh successes win; a
// fresh failure falls back to a usable cache entry for the same label.
func Merge(results map[string]Result, cache Cache) Resolution {
	res := make(Resolution, len(results)+len(cache))
	for label, url := range cache {
		if url != "" {
			res[label] = url
		}
	}
	for label, r := range results {
		if r.Err == nil && r.URL != "" {
			res[label] = r.URL
			continue
		}
		if _, ok := cache.Lookup(label); ok {
			continue
		}
		res[label] = ""
	}
	return res
}

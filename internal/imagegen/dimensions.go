package imagegen

import (
	"regexp"
	"strconv"
)

const (
	defaultWidth  = 100
	defaultHeight = 100
)

var dimensionPattern = regexp.MustCompile(`(\d+)x(\d+)`)

// ExtractDimensions returns the first WIDTHxHEIGHT pair found in url,
// or 100x100 when there is none.
func ExtractDimensions(url string) (int, int) {
	m := dimensionPattern.FindStringSubmatch(url)
	if m == nil {
		return defaultWidth, defaultHeight
	}
	w, errW := strconv.Atoi(m[1])
	h, errH := strconv.Atoi(m[2])
	if errW != nil || errH != nil {
		return defaultWidth, defaultHeight
	}
	return w, h
}

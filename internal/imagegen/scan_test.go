package imagegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	doc, err := ParseDocument(`<div><img src="https://placehold.co/1x1" alt="one"><img src="/local.png" alt="two"><img src="https://placehold.co/2x2"></div>`)
	require.NoError(t, err)

	got, err := Scan(doc, DefaultPlaceholderPrefix)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Alt)
	assert.True(t, got[0].HasAlt)
	assert.Equal(t, "https://placehold.co/2x2", got[1].Src)
	assert.False(t, got[1].HasAlt)
}

func TestScanReadsTagsCaseInsensitively(t *testing.T) {
	doc, err := ParseDocument(`<IMG SRC="https://placehold.co/3x4" ALT="Team &amp; office"/>`)
	require.NoError(t, err)

	got, err := Scan(doc, DefaultPlaceholderPrefix)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Team & office", got[0].Alt)
	assert.Equal(t, "https://placehold.co/3x4", got[0].Src)
}

func TestScanIgnoresScriptsAndComments(t *testing.T) {
	doc, err := ParseDocument(`<script>document.write('<img src="https://placehold.co/1x1" alt="a">')</script>` +
		`<!-- <img src="https://placehold.co/1x1" alt="b"> -->`)
	require.NoError(t, err)

	got, err := Scan(doc, DefaultPlaceholderPrefix)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScanMissingSrc(t *testing.T) {
	doc, err := ParseDocument(`<p><img alt="orphan"></p>`)
	require.NoError(t, err)
	_, err = Scan(doc, DefaultPlaceholderPrefix)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestRenderUntouchedIsVerbatim(t *testing.T) {
	code := "<P>\n  <img  src='https://placehold.co/1x1'  alt=x>\n<li>open\n"
	doc, err := ParseDocument(code)
	require.NoError(t, err)
	out, err := doc.Render()
	require.NoError(t, err)
	assert.Equal(t, code, out)
}

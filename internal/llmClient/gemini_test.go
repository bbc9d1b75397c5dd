package llmclient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGeminiContents(t *testing.T) {
	system, contents, err := toGeminiContents([]Message{
		TextMessage(RoleSystem, "you write html"),
		{Role: RoleUser, Parts: []Part{ImagePart(DataURL("image/png", []byte{9})), TextPart("build")}},
		TextMessage(RoleAssistant, "<html></html>"),
		TextMessage(RoleUser, "make it blue"),
	})
	require.NoError(t, err)

	require.NotNil(t, system)
	assert.Equal(t, "you write html", system.Parts[0].Text)
	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "image/png", contents[0].Parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte{9}, contents[0].Parts[0].InlineData.Data)
	assert.Equal(t, "build", contents[0].Parts[1].Text)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "make it blue", contents[2].Parts[0].Text)
}

func TestToGeminiContentsRejectsRemoteImages(t *testing.T) {
	_, _, err := toGeminiContents([]Message{
		{Role: RoleUser, Parts: []Part{ImagePart("https://example.com/shot.png")}},
	})
	var pErr *PermanentError
	assert.True(t, errors.As(err, &pErr))
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), " ", "")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

package embedurl

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayURL(t *testing.T) {
	raw := Display("folder-1", "https://shop.example.com/SalePage/12345", false)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "https://embed.tagnology.co", u.Scheme+"://"+u.Host)
	assert.Equal(t, "/display", u.Path)
	assert.Equal(t, "folder-1", u.Query().Get("folderId"))
	assert.Equal(t, "https://shop.example.com/SalePage/12345", u.Query().Get("page"))
	assert.Empty(t, u.Query().Get("fullScreen"))
}

func TestDisplayURLFloatingMedia(t *testing.T) {
	raw := Display("folder-1", "https://shop.example.com/SalePage/12345", true)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "true", u.Query().Get("fullScreen"))
}

func TestLightboxURL(t *testing.T) {
	raw := Lightbox("https://shop.example.com/SalePage/12345")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/lightBox", u.Path)
	assert.Equal(t, "https://shop.example.com/SalePage/12345", u.Query().Get("page"))
}

package photostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionRoundTrip(t *testing.T) {
	for _, mime := range []string{"image/jpeg", "image/png", "image/gif", "image/webp"} {
		ext, ok := Extension(mime)
		assert.True(t, ok, mime)

		back, ok := MimeType(ext)
		assert.True(t, ok, ext)
		assert.Equal(t, mime, back)
	}
}

func TestExtensionUnsupported(t *testing.T) {
	_, ok := Extension("image/bmp")
	assert.False(t, ok)

	_, ok = MimeType(".exe")
	assert.False(t, ok)
}

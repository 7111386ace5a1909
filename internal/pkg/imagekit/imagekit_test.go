package imagekit

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		payload string
		want    string
	}{
		{"/9j/4AAQSkZJRg", "jpg"},
		{"iVBORw0KGgo", "png"},
		{"R0lGODlh", "gif"},
		{"UklGRh4AAABXRUJQ", "webp"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := Extension(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtensionUnknown(t *testing.T) {
	_, err := Extension("QUJD")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Extension("")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewKey(t *testing.T) {
	key, err := NewKey("iVBORw0KGgo")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Greater(t, len(key), len(".png"))

	other, err := NewKey("iVBORw0KGgo")
	require.NoError(t, err)
	assert.NotEqual(t, key, other, "keys are unique per upload")
}

func TestDecode(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("hello"))

	data, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = Decode("not base64!!!")
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", ContentType("abc.jpg"))
	assert.Equal(t, "image/webp", ContentType("abc.webp"))
	assert.Equal(t, "application/octet-stream", ContentType("abc.bin"))
}

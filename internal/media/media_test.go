package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345/venues/venue_1_image_9.jpg", "venues/venue_1_image_9"},
		{"https://res.cloudinary.com/demo/image/upload/venues/cafe.png", "venues/cafe"},
		{"https://res.cloudinary.com/demo/image/upload/sample", "sample"},
	}
	for _, tt := range tests {
		got, err := PublicIDFromURL(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"https://example.com/pic.jpg", "https://res.cloudinary.com/demo/image/upload/", "::nope"} {
		_, err := PublicIDFromURL(bad)
		assert.Error(t, err, bad)
	}
}

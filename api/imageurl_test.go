package api

import (
	"testing"

	"getpetback/config"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeImageURL(t *testing.T) {
	client := New(config.APIConfig{
		BaseURL:          "https://pets.example",
		PlaceholderImage: "https://placebear.com/400/300",
		TimeoutSeconds:   5,
	}, nil)

	tests := []struct {
		photo string
		want  string
	}{
		{"/storage/images/x.png", "https://pets.example/storage/images/x.png"},
		{"http://elsewhere/x.png", "http://elsewhere/x.png"},
		{"https://elsewhere/x.png", "https://elsewhere/x.png"},
		{"x.png", "https://pets.example/storage/images/x.png"},
		{"/uploads/y.png", "https://pets.example/uploads/y.png"},
		{"", "https://placebear.com/400/300"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, client.NormalizeImageURL(tt.photo), "photo %q", tt.photo)
	}
}

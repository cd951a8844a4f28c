package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"index.html", "text/html"},
		{"assets/app.js", "text/javascript"},
		{"assets/app.css", "text/css"},
		{"data/report.json", "application/json"},
		{"logo.png", "image/png"},
		{"photo.jpg", "image/jpg"},
		{"icon.svg", "image/svg+xml"},
		{"favicon.ico", "image/x-icon"},
		{"INDEX.HTML", "text/html"},
		{"App.Js", "text/javascript"},
		{"photo.jpeg", DefaultContentType},
		{"font.woff2", DefaultContentType},
		{"LICENSE", DefaultContentType},
		{"archive.tar.gz", DefaultContentType},
		{".hidden", DefaultContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentTypeFor(tt.name))
		})
	}
}

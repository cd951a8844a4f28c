package api

import (
	"path/filepath"
	"strings"
)

// DefaultContentType is sent for files whose extension is not in contentTypes
const DefaultContentType = "application/octet-stream"

// contentTypes is read-only after init; handlers share it without locking.
var contentTypes = map[string]string{
	".html": "text/html",
	".js":   "text/javascript",
	".css":  "text/css",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpg",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// ContentTypeFor derives the response content type from a file name's extension
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return DefaultContentType
}

package s3client

import (
	"mime"
	"path/filepath"
	"strings"
)

// commonMimeTypes covers the artifact and source types this tool touches.
var commonMimeTypes = map[string]string{
	".csv":  "text/csv",
	".txt":  "text/plain",
	".srt":  "text/plain",
	".json": "application/json",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// DetectContentType determines the content type of a file based on its extension
func DetectContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	if mimeType, ok := commonMimeTypes[ext]; ok {
		return mimeType
	}

	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return mimeType
	}

	return "application/octet-stream"
}

package conversions

import (
	"context"
	"mime"
	"strings"
)

// FormatLabel describes the output format in result metadata.
const FormatLabel = "TIFF (CMYK)"

// Source is an uploaded image awaiting conversion.
type Source struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Metadata describes the converted image. Width and Height are the
// source dimensions; Size is the TIFF length in bytes.
type Metadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int    `json:"size"`
}

// Result is the outcome of a successful conversion.
type Result struct {
	Success      bool     `json:"success"`
	PreviewURL   string   `json:"previewUrl"`
	DownloadData string   `json:"downloadData"`
	Filename     string   `json:"filename"`
	Metadata     Metadata `json:"metadata"`
}

// System converts a single source image.
type System interface {
	Convert(ctx context.Context, src Source) (*Result, error)
}

// NormalizeType lower-cases a declared content type and strips parameters.
func NormalizeType(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	ct, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

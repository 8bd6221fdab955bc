// Package conversions turns uploaded RGB JPEG and PNG images into
// LZW-compressed CMYK TIFF files with a JPEG preview.
package conversions

import (
	"errors"
	"net/http"
)

// Domain errors for conversion operations. Messages are client-facing.
var (
	ErrNoFile           = errors.New("No file provided")
	ErrInvalidType      = errors.New("Invalid file type. Only JPEG and PNG are allowed.")
	ErrFileTooLarge     = errors.New("File exceeds maximum upload size")
	ErrConversionFailed = errors.New("Failed to convert image")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidType):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

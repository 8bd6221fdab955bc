package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

const (
	EnvConvertMaxUploadSize       = "CONVERT_MAX_UPLOAD_SIZE"
	EnvConvertPreviewQuality      = "CONVERT_PREVIEW_QUALITY"
	EnvConvertPreviewMaxDimension = "CONVERT_PREVIEW_MAX_DIMENSION"
	EnvConvertMaxPixels           = "CONVERT_MAX_PIXELS"
	EnvConvertAllowedTypes        = "CONVERT_ALLOWED_TYPES"
)

// DefaultMaxPixels matches the decompression-bomb limit libvips applies
// (0x3FFF * 0x3FFF).
const DefaultMaxPixels int64 = 268402689

// ConvertConfig controls the conversion endpoint and its pipeline.
type ConvertConfig struct {
	// MaxUploadSize is a human-readable size such as "50MB".
	MaxUploadSize string `toml:"max_upload_size"`
	// PreviewQuality is the JPEG quality of the preview, 1-100.
	PreviewQuality int `toml:"preview_quality"`
	// PreviewMaxDimension bounds the preview's longest side. Zero keeps full size.
	PreviewMaxDimension int      `toml:"preview_max_dimension"`
	MaxPixels           int64    `toml:"max_pixels"`
	AllowedTypes        []string `toml:"allowed_types"`

	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed upload limit.
func (c *ConvertConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the conversion configuration.
func (c *ConvertConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ConvertConfig) Merge(overlay *ConvertConfig) {
	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
	if overlay.PreviewQuality > 0 {
		c.PreviewQuality = overlay.PreviewQuality
	}
	if overlay.PreviewMaxDimension > 0 {
		c.PreviewMaxDimension = overlay.PreviewMaxDimension
	}
	if overlay.MaxPixels > 0 {
		c.MaxPixels = overlay.MaxPixels
	}
	if overlay.AllowedTypes != nil {
		c.AllowedTypes = overlay.AllowedTypes
	}
}

func (c *ConvertConfig) loadDefaults() {
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
	if c.PreviewQuality == 0 {
		c.PreviewQuality = 90
	}
	if c.MaxPixels == 0 {
		c.MaxPixels = DefaultMaxPixels
	}
	if len(c.AllowedTypes) == 0 {
		c.AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png"}
	}
}

func (c *ConvertConfig) loadEnv() {
	if v := os.Getenv(EnvConvertMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvConvertPreviewQuality); v != "" {
		if q, err := strconv.Atoi(v); err == nil {
			c.PreviewQuality = q
		}
	}
	if v := os.Getenv(EnvConvertPreviewMaxDimension); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			c.PreviewMaxDimension = d
		}
	}
	if v := os.Getenv(EnvConvertMaxPixels); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxPixels = n
		}
	}
	if v := os.Getenv(EnvConvertAllowedTypes); v != "" {
		types := strings.Split(v, ",")
		c.AllowedTypes = make([]string, 0, len(types))
		for _, t := range types {
			if trimmed := strings.ToLower(strings.TrimSpace(t)); trimmed != "" {
				c.AllowedTypes = append(c.AllowedTypes, trimmed)
			}
		}
	}
}

func (c *ConvertConfig) validate() error {
	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	if c.PreviewQuality < 1 || c.PreviewQuality > 100 {
		return fmt.Errorf("preview_quality must be between 1 and 100: %d", c.PreviewQuality)
	}
	if c.PreviewMaxDimension < 0 {
		return fmt.Errorf("preview_max_dimension cannot be negative")
	}
	if c.MaxPixels <= 0 {
		return fmt.Errorf("max_pixels must be positive")
	}
	if len(c.AllowedTypes) == 0 {
		return fmt.Errorf("allowed_types cannot be empty")
	}
	return nil
}

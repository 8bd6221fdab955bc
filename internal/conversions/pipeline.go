package conversions

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	"github.com/hhrutter/tiff"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/image/draw"

	"github.com/JaimeStill/cmyk-lab/internal/config"
)

// maxTIFFDimension is the largest width or height the encoder can record;
// dimensions are stored as SHORT.
const maxTIFFDimension = 65535

type pipeline struct {
	logger              *slog.Logger
	previewQuality      int
	previewMaxDimension int
	maxPixels           int64
}

// New creates the conversion system from cfg.
func New(cfg *config.ConvertConfig, logger *slog.Logger) System {
	return &pipeline{
		logger:              logger.With("system", "conversions"),
		previewQuality:      cfg.PreviewQuality,
		previewMaxDimension: cfg.PreviewMaxDimension,
		maxPixels:           cfg.MaxPixels,
	}
}

// Convert decodes src, renders a JPEG preview, and encodes a CMYK TIFF.
// Every failure wraps ErrConversionFailed.
func (p *pipeline) Convert(ctx context.Context, src Source) (*Result, error) {
	start := time.Now()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: read metadata: %v", ErrConversionFailed, err)
	}
	if err := p.checkBounds(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	img, err := imaging.Decode(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrConversionFailed, format, err)
	}
	img = flatten(img)

	preview, err := p.preview(img)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	cmyk := toCMYK(img)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	var out bytes.Buffer
	if err := tiff.Encode(&out, cmyk, &tiff.Options{Compression: tiff.LZW, Predictor: true}); err != nil {
		return nil, fmt.Errorf("%w: encode tiff: %v", ErrConversionFailed, err)
	}

	result := &Result{
		Success:      true,
		PreviewURL:   preview,
		DownloadData: dataurl.New(out.Bytes(), "image/tiff").String(),
		Filename:     OutputFilename(src.Filename),
		Metadata: Metadata{
			Width:  cfg.Width,
			Height: cfg.Height,
			Format: FormatLabel,
			Size:   out.Len(),
		},
	}

	p.logger.Info(
		"image converted",
		"filename", result.Filename,
		"source_format", format,
		"width", cfg.Width,
		"height", cfg.Height,
		"size", out.Len(),
		"duration", time.Since(start),
	)

	return result, nil
}

func (p *pipeline) checkBounds(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: empty image %dx%d", ErrConversionFailed, width, height)
	}
	if width > maxTIFFDimension || height > maxTIFFDimension {
		return fmt.Errorf("%w: %dx%d exceeds tiff dimension limit %d", ErrConversionFailed, width, height, maxTIFFDimension)
	}
	if int64(width)*int64(height) > p.maxPixels {
		return fmt.Errorf("%w: %dx%d exceeds pixel limit %d", ErrConversionFailed, width, height, p.maxPixels)
	}
	return nil
}

func (p *pipeline) preview(img image.Image) (string, error) {
	if d := p.previewMaxDimension; d > 0 {
		b := img.Bounds()
		if b.Dx() > d || b.Dy() > d {
			img = imaging.Fit(img, d, d, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.previewQuality)); err != nil {
		return "", fmt.Errorf("%w: encode preview: %v", ErrConversionFailed, err)
	}
	return dataurl.New(buf.Bytes(), "image/jpeg").String(), nil
}

// flatten composites images with transparency over opaque white.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// toCMYK applies color.CMYKModel to every pixel.
func toCMYK(img image.Image) *image.CMYK {
	b := img.Bounds()
	dst := image.NewCMYK(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

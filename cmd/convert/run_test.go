package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hhrutter/tiff"

	"github.com/JaimeStill/cmyk-lab/internal/config"
	"github.com/JaimeStill/cmyk-lab/internal/conversions"
	"github.com/JaimeStill/cmyk-lab/pkg/logging"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.ConvertConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}

	logger := logging.Discard()
	h := conversions.NewHandler(conversions.New(cfg, logger), logger, cfg.MaxUploadSizeBytes(), cfg.AllowedTypes)

	mux := http.NewServeMux()
	for _, r := range h.Routes().Routes {
		mux.HandleFunc(r.Method+" /api/convert"+r.Pattern, r.Handler)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{G: 200, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	srv := newAPI(t)
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "tiffs")

	good := writePNG(t, in, "photo.png", 5, 3)
	noExt := writePNG(t, in, "scan", 2, 2)

	gif := filepath.Join(in, "anim.gif")
	if err := os.WriteFile(gif, []byte("GIF89a"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-server", srv.URL + "/api", "-out", out, good, noExt, gif}, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, want 0: %s", code, stderr.String())
	}

	f, err := os.Open(filepath.Join(out, "photo_cmyk.tiff"))
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if _, ok := img.(*image.CMYK); !ok || img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
		t.Errorf("output = %T %v, want 5x3 CMYK", img, img.Bounds())
	}

	if _, err := os.Stat(filepath.Join(out, "scan_cmyk.tiff")); err != nil {
		t.Errorf("sniffed file not converted: %v", err)
	}
	if !strings.Contains(stderr.String(), "skipped") {
		t.Error("rejected gif was not logged")
	}
}

func TestRun_Failures(t *testing.T) {
	srv := newAPI(t)
	in := t.TempDir()
	out := t.TempDir()

	good := writePNG(t, in, "ok.png", 2, 2)
	bad := filepath.Join(in, "bad.png")
	if err := os.WriteFile(bad, []byte("not really a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-server", srv.URL + "/api", "-out", out, bad, good}, &stderr)
	if code != exitFailure {
		t.Fatalf("exit code = %d, want 1", code)
	}

	if _, err := os.Stat(filepath.Join(out, "ok_cmyk.tiff")); err != nil {
		t.Errorf("batch stopped after failure: %v", err)
	}
	if !strings.Contains(stderr.String(), "Failed to convert image") {
		t.Errorf("failure message not logged: %s", stderr.String())
	}
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no files", nil},
		{"bad level", []string{"-log-level", "loud", "a.png"}},
		{"unknown flag", []string{"-nope", "a.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if code := run(context.Background(), tt.args, &stderr); code != exitUsage {
				t.Errorf("exit code = %d, want 2", code)
			}
		})
	}
}

func TestDetectType(t *testing.T) {
	pngMagic := []byte("\x89PNG\r\n\x1a\n")

	tests := []struct {
		path string
		data []byte
		want string
	}{
		{"a.png", nil, "image/png"},
		{"a.jpg", nil, "image/jpeg"},
		{"scan", pngMagic, "image/png"},
		{"photo", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), "image/jpeg"},
		{"notes", []byte("hello"), "text/plain; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := detectType(tt.path, tt.data); got != tt.want {
				t.Errorf("detectType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFlags_LogLevel(t *testing.T) {
	opts, err := parseFlags([]string{"-log-level", "DEBUG", "a.png"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if opts.logging.Level != logging.LevelDebug || opts.logging.Format != logging.FormatText {
		t.Errorf("logging = %+v, want debug/text", opts.logging)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/JaimeStill/cmyk-lab/internal/client"
	"github.com/JaimeStill/cmyk-lab/internal/uploads"
	"github.com/JaimeStill/cmyk-lab/pkg/logging"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type options struct {
	server   string
	out      string
	timeout  time.Duration
	logLevel string
	logging  logging.Config
	files    []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: convert [-server URL] [-out DIR] [-timeout 60s] [-log-level info] FILE...")
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.StringVar(&opts.server, "server", "http://localhost:8080/api", "API base URL of the conversion server")
	fs.StringVar(&opts.out, "out", ".", "Directory for converted TIFF files")
	fs.DurationVar(&opts.timeout, "timeout", 60*time.Second, "Per-file request timeout")
	fs.StringVar(&opts.logLevel, "log-level", string(logging.LevelInfo), "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.files = fs.Args()
	if len(opts.files) == 0 {
		fs.Usage()
		return nil, errors.New("no input files")
	}

	opts.logging = logging.Config{Level: logging.Level(opts.logLevel), Format: logging.FormatText}
	if err := opts.logging.Finalize(nil); err != nil {
		return nil, err
	}

	return opts, nil
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "convert:", err)
		}
		return exitUsage
	}

	logger := logging.NewWithWriter(&opts.logging, stderr)

	conv := client.New(opts.server, &http.Client{Timeout: opts.timeout})
	session := uploads.NewSession(conv, logger)

	failed := false
	for _, path := range opts.files {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read failed", "file", path, "error", err)
			failed = true
			continue
		}

		if _, err := session.Add(filepath.Base(path), detectType(path, data), data); err != nil {
			logger.Warn("skipped", "file", path, "error", err)
		}
	}

	summary, err := session.ConvertAll(ctx)
	if err != nil {
		logger.Error("batch interrupted", "error", err)
		failed = true
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		logger.Error("create output directory", "dir", opts.out, "error", err)
		return exitFailure
	}

	written := make(map[string]string)
	for _, item := range session.Items() {
		switch item.Status {
		case uploads.StatusCompleted:
			path, err := save(session, item, opts.out)
			if err != nil {
				logger.Error("download failed", "file", item.Name, "error", err)
				failed = true
				continue
			}
			if prev, ok := written[path]; ok {
				logger.Warn("output overwritten", "output", path, "previous", prev, "file", item.Name)
			}
			written[path] = item.Name
			logger.Info("converted", "file", item.Name, "output", path, "size", item.Result.Metadata.Size)
		case uploads.StatusError:
			logger.Error("conversion failed", "file", item.Name, "message", item.Error)
			failed = true
		}
	}

	logger.Info(
		"done",
		"completed", summary.Completed,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)

	if failed {
		return exitFailure
	}
	return exitOK
}

func save(session *uploads.Session, item uploads.Item, dir string) (string, error) {
	path := filepath.Join(dir, item.Result.Filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := session.Download(item.ID, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}

	return path, f.Close()
}

// detectType uses the file extension, falling back to the content signature.
func detectType(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return mimetype.Detect(data).String()
}

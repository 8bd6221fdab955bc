// Command convert sends JPEG and PNG files to a CMYK Lab server and writes
// the returned CMYK TIFFs to a directory.
//
//	convert [-server URL] [-out DIR] [-timeout 60s] [-log-level info] FILE...
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

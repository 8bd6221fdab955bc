// Package uploads tracks a batch of images through conversion: add,
// convert one or all serially, download results, and clear.
package uploads

import "errors"

// Domain errors for upload session operations.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNotFound        = errors.New("upload not found")
	ErrNotConvertible  = errors.New("upload is not pending or failed")
	ErrNotCompleted    = errors.New("upload has not completed")
	ErrBatchInProgress = errors.New("batch conversion already in progress")
	ErrInvalidPayload  = errors.New("download data is not a tiff data uri")
	ErrCleared         = errors.New("upload cleared during conversion")
)

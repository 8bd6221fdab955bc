package uploads

import "github.com/JaimeStill/cmyk-lab/internal/conversions"

// Status is the lifecycle state of an upload.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Convertible reports whether an upload in this state may be sent.
func (s Status) Convertible() bool {
	return s == StatusPending || s == StatusError
}

// Item is a single upload. Result is set once Status is completed;
// Error is set once Status is error.
type Item struct {
	ID          string
	Name        string
	ContentType string
	Data        []byte
	Status      Status
	Result      *conversions.Result
	Error       string
}

// BatchSummary counts the outcomes of a ConvertAll run.
type BatchSummary struct {
	Completed int
	Failed    int
	Skipped   int
}

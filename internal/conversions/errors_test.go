package conversions_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/JaimeStill/cmyk-lab/internal/conversions"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no file", conversions.ErrNoFile, http.StatusBadRequest},
		{"invalid type", conversions.ErrInvalidType, http.StatusBadRequest},
		{"too large", conversions.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"wrapped failure", fmt.Errorf("%w: decode", conversions.ErrConversionFailed), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := conversions.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

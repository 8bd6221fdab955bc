package conversions

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/JaimeStill/cmyk-lab/pkg/handlers"
	"github.com/JaimeStill/cmyk-lab/pkg/routes"
)

// FormField is the multipart field carrying the upload.
const FormField = "image"

const multipartMemory = 32 << 20

// Handler provides the HTTP endpoint for image conversion.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
	allowedTypes  []string
}

// NewHandler creates a conversion handler. Requests larger than
// maxUploadSize are rejected before parsing completes.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64, allowedTypes []string) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "conversions"),
		maxUploadSize: maxUploadSize,
		allowedTypes:  allowedTypes,
	}
}

// Routes returns the conversion endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/convert",
		Tags:        []string{"Conversion"},
		Description: "RGB to CMYK TIFF conversion",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Convert, OpenAPI: Spec.Convert},
			{Method: "OPTIONS", Pattern: "", Handler: h.Preflight, OpenAPI: Spec.Preflight},
		},
		Schemas: Spec.Schemas,
	}
}

// Convert validates the upload and returns the conversion result.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	allowAnyOrigin(w)
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}

	file, header, err := r.FormFile(FormField)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}
	defer file.Close()

	contentType := NormalizeType(header.Header.Get("Content-Type"))
	if !slices.Contains(h.allowedTypes, contentType) {
		h.logger.Warn("rejected upload", "filename", header.Filename, "content_type", contentType)
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidType)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}

	result, err := h.sys.Convert(r.Context(), Source{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		handlers.RespondOpaque(w, h.logger, MapHTTPStatus(err), ErrConversionFailed, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Preflight answers CORS preflight requests for the endpoint.
func (h *Handler) Preflight(w http.ResponseWriter, r *http.Request) {
	allowAnyOrigin(w)
	w.WriteHeader(http.StatusOK)
}

func allowAnyOrigin(w http.ResponseWriter) {
	hdr := w.Header()
	hdr.Set("Access-Control-Allow-Origin", "*")
	hdr.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	hdr.Set("Access-Control-Allow-Headers", "Content-Type")
}

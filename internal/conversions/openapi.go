package conversions

import "github.com/JaimeStill/cmyk-lab/pkg/openapi"

type spec struct {
	Convert   *openapi.Operation
	Preflight *openapi.Operation
	Schemas   map[string]*openapi.Schema
}

var Spec = spec{
	Convert: &openapi.Operation{
		OperationID: "convertImage",
		Summary:     "Convert image to CMYK TIFF",
		Description: "Upload an RGB JPEG or PNG image. The response carries a JPEG preview and an LZW-compressed CMYK TIFF, both as base64 data URIs.",
		RequestBody: openapi.RequestBodyMultipart(FormField, "JPEG or PNG image", "image/jpeg", "image/png"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Conversion result", "ConvertResult"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Preflight: &openapi.Operation{
		OperationID: "convertPreflight",
		Summary:     "CORS preflight",
		Description: "Returns the allowed origin, methods, and headers for browser uploads.",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Preflight accepted",
				Headers: map[string]*openapi.Header{
					"Access-Control-Allow-Origin":  {Schema: &openapi.Schema{Type: "string", Example: "*"}},
					"Access-Control-Allow-Methods": {Schema: &openapi.Schema{Type: "string", Example: "POST, OPTIONS"}},
					"Access-Control-Allow-Headers": {Schema: &openapi.Schema{Type: "string", Example: "Content-Type"}},
				},
			},
		},
	},
	Schemas: map[string]*openapi.Schema{
		"ConvertMetadata": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"width":  {Type: "integer", Description: "Source width in pixels"},
				"height": {Type: "integer", Description: "Source height in pixels"},
				"format": {Type: "string", Enum: []any{FormatLabel}},
				"size":   {Type: "integer", Description: "TIFF size in bytes"},
			},
			Required: []string{"width", "height", "format", "size"},
		},
		"ConvertResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success":      {Type: "boolean"},
				"previewUrl":   {Type: "string", Description: "JPEG preview as a data URI", Example: "data:image/jpeg;base64,/9j/..."},
				"downloadData": {Type: "string", Description: "CMYK TIFF as a data URI", Example: "data:image/tiff;base64,SUkqAA..."},
				"filename":     {Type: "string", Example: "photo_cmyk.tiff"},
				"metadata":     openapi.SchemaRef("ConvertMetadata"),
			},
			Required: []string{"success", "previewUrl", "downloadData", "filename", "metadata"},
		},
	},
}

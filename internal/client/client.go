// Package client calls the conversion endpoint over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/JaimeStill/cmyk-lab/internal/conversions"
)

const fallbackMessage = "Conversion failed"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Error is a non-2xx response from the endpoint.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client sends images to a conversion endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL, such as
// "http://localhost:8080/api". A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Convert uploads src and returns the conversion result.
func (c *Client) Convert(ctx context.Context, src conversions.Source) (*conversions.Result, error) {
	body, contentType, err := encodeSource(src)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/convert", body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", src.Filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	var result conversions.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode result for %s: %w", src.Filename, err)
	}
	return &result, nil
}

func encodeSource(src conversions.Source) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", multipart.FileContentDisposition(conversions.FormField, src.Filename))
	h.Set("Content-Type", src.ContentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create part: %w", err)
	}
	if _, err := part.Write(src.Data); err != nil {
		return nil, "", fmt.Errorf("write part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}

func decodeError(resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return &Error{Status: resp.StatusCode, Message: body.Error}
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return &Error{Status: resp.StatusCode, Message: text}
	}

	return &Error{Status: resp.StatusCode, Message: fallbackMessage}
}

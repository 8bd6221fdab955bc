package conversions_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"testing"
)

// pngFixture returns a w x h PNG: opaque red on the left half,
// fully transparent on the right.
func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if x < w/2 {
				img.Set(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func jpegFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// multipartBody builds a form with one file part under field.
func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)

	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(data)

	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

// tiffTags reads the SHORT values of the first IFD of a little-endian TIFF.
func tiffTags(t *testing.T, data []byte) map[uint16]uint32 {
	t.Helper()
	if len(data) < 8 || string(data[:4]) != "II*\x00" {
		t.Fatalf("not a little-endian tiff: % x", data[:min(8, len(data))])
	}

	le := binary.LittleEndian
	off := le.Uint32(data[4:8])
	n := int(le.Uint16(data[off : off+2]))

	tags := make(map[uint16]uint32, n)
	for i := range n {
		e := data[int(off)+2+i*12:]
		tag := le.Uint16(e[0:2])
		typ := le.Uint16(e[2:4])
		count := le.Uint32(e[4:8])
		switch {
		case typ == 3 && count == 1:
			tags[tag] = uint32(le.Uint16(e[8:10]))
		case typ == 4 && count == 1:
			tags[tag] = le.Uint32(e[8:12])
		}
	}
	return tags
}

package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

const (
	barcodeWidth  = 240
	barcodeHeight = 60
)

// BarcodeDataURI renders value as a Code 128 PNG data URI. Empty value yields "".
func BarcodeDataURI(value string) (template.URL, error) {
	if value == "" {
		return "", nil
	}

	code, err := code128.Encode(value)
	if err != nil {
		return "", fmt.Errorf("encode barcode: %w", err)
	}

	width := barcodeWidth
	if w := code.Bounds().Dx(); w > width {
		width = w
	}
	scaled, err := barcode.Scale(code, width, barcodeHeight)
	if err != nil {
		return "", fmt.Errorf("scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

package services

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

type QRService struct{}

// MakeBase64 renders text as a PNG QR code and returns it as a data URI.
func (s QRService) MakeBase64(text string, size int) (string, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

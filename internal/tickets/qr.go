package tickets

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// qrPayloadPrefix marks the token as a ticket reference so scanner
	// apps can reject unrelated QR codes.
	qrPayloadPrefix = "TICKET:"

	// qrImageSize is the rendered PNG edge length in pixels.
	qrImageSize = 220
)

// QRPayload builds the scanner payload for a ticket token.
func QRPayload(token string) string {
	return qrPayloadPrefix + token
}

// RenderQRPNG encodes the ticket token as a PNG image. The output is
// deterministic for a given token.
func RenderQRPNG(token string) ([]byte, error) {
	png, err := qrcode.Encode(QRPayload(token), qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

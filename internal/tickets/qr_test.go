package tickets

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestQRPayload(t *testing.T) {
	token := uuid.New().String()
	payload := QRPayload(token)
	if payload != "TICKET:"+token {
		t.Fatalf("payload = %q, want TICKET: prefix followed by token", payload)
	}
}

func TestRenderQRPNG(t *testing.T) {
	token := uuid.New().String()

	png, err := RenderQRPNG(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}

	// Same token must produce byte-identical output
	again, err := RenderQRPNG(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(png, again) {
		t.Error("rendering is not deterministic")
	}

	// Different tokens must differ
	other, err := RenderQRPNG(uuid.New().String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Equal(png, other) {
		t.Error("distinct tokens produced identical PNGs")
	}
}

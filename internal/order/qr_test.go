package order

import (
	"bytes"
	"testing"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestPNGGeneratorProducesPNG(t *testing.T) {
	payload, err := Encode(filledBasket(t), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gen := NewPNGGenerator(256)
	img, err := gen.Generate(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(img, pngSignature) {
		t.Fatal("expected png output")
	}
}

func TestNewPNGGeneratorDefaultsSize(t *testing.T) {
	gen := NewPNGGenerator(0)
	if gen.SizePixels != 512 {
		t.Fatalf("expected default size 512, got %d", gen.SizePixels)
	}
}

package order

import (
	"github.com/skip2/go-qrcode"
	pkgerrors "github.com/yessgo/coin-terminal/pkg/errors"
)

// Generator renders an encoded order payload as a scannable image.
type Generator interface {
	Generate(payload Payload) ([]byte, error)
}

// PNGGenerator renders payloads as PNG QR codes. Medium error
// correction and the default quiet zone keep the code readable by a
// phone camera at close range.
type PNGGenerator struct {
	SizePixels int
}

// NewPNGGenerator builds a generator with the given edge length.
func NewPNGGenerator(sizePixels int) *PNGGenerator {
	if sizePixels <= 0 {
		sizePixels = 512
	}
	return &PNGGenerator{SizePixels: sizePixels}
}

func (g *PNGGenerator) Generate(payload Payload) ([]byte, error) {
	data, err := payload.MarshalCanonical()
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, g.SizePixels)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render qr code")
	}
	return png, nil
}

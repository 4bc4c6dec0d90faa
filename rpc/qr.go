package rpc

import (
	"bytes"

	"github.com/mdp/qrterminal/v3"
)

// GenerateQRCode renders data as a terminal QR code using half blocks
// to keep it compact.
func GenerateQRCode(data string) string {
	var buf bytes.Buffer
	qrterminal.GenerateWithConfig(data, qrterminal.Config{
		Level:      qrterminal.L,
		Writer:     &buf,
		HalfBlocks: true,
		QuietZone:  1,
	})
	return buf.String()
}

package helpers

import (
	"math/big"
	"testing"
)

func TestShortenAddr(t *testing.T) {
	got := ShortenAddr("0xAbCd000000000000000000000000000000001234")
	if got != "0xAbCd…1234" {
		t.Errorf("ShortenAddr = %q", got)
	}
	if got := ShortenAddr("0xAb"); got != "0xAb" {
		t.Errorf("short input must pass through, got %q", got)
	}
}

func TestIsValidEthAddress(t *testing.T) {
	valid := []string{
		"0x0000000000000000000000000000000000000000",
		"0xAbCd000000000000000000000000000000001234",
	}
	for _, s := range valid {
		if !IsValidEthAddress(s) {
			t.Errorf("%q should be valid", s)
		}
	}

	invalid := []string{
		"",
		"0x",
		"0x123",                                      // too short
		"AbCd000000000000000000000000000000001234",   // missing 0x
		"0xZZZZ000000000000000000000000000000001234", // non-hex
		"0x00000000000000000000000000000000000000001", // too long
	}
	for _, s := range invalid {
		if IsValidEthAddress(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestFormatToken(t *testing.T) {
	one := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	if got := FormatToken(one, 18, "KPGT"); got != "1.0000 KPGT" {
		t.Errorf("FormatToken = %q", got)
	}
	if got := FormatToken(nil, 18, "KPGT"); got != "0 KPGT" {
		t.Errorf("nil balance: %q", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(0); got != "Unknown" {
		t.Errorf("zero timestamp: %q", got)
	}
	if got := FormatTimestamp(1735689600); got == "Unknown" || got == "" {
		t.Errorf("real timestamp must render, got %q", got)
	}
}

package g9

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDecodeTextUTF8(t *testing.T) {
	in := "Project Name: Absolute Gravity µGal test\n"
	if got := DecodeText([]byte(in)); got != in {
		t.Errorf("UTF-8 input changed by decode: %q", got)
	}
}

func TestDecodeTextUTF16LEWithBOM(t *testing.T) {
	// "Set: 1" as UTF-16LE with BOM
	raw := []byte{0xFF, 0xFE, 'S', 0, 'e', 0, 't', 0, ':', 0, ' ', 0, '1', 0}
	got := DecodeText(raw)
	if got != "Set: 1" {
		t.Errorf("expected %q, got %q", "Set: 1", got)
	}
}

func TestDecodeTextWindows1252(t *testing.T) {
	// 0xB5 is µ in Windows-1252 (and Latin-1); invalid as a lone UTF-8 byte.
	// Odd byte count keeps the UTF-16 candidates from matching.
	raw := []byte("Gradient (\xb5Gal/cm): -3.00")
	got := DecodeText(raw)
	if !strings.Contains(got, "µGal") {
		t.Errorf("expected µ decoded from 0xB5, got %q", got)
	}
}

func TestDecodeTextNeverFails(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0x00},
		{0xFF, 0xFE, 0xFD},
		{0xC0, 0xAF},             // overlong UTF-8
		{0xED, 0xA0, 0x80},       // UTF-8 surrogate
		{0xF0, 0x9F, 0x92, 0xA9}, // valid 4-byte rune
	}
	for _, in := range inputs {
		got := DecodeText(in)
		if !utf8.ValidString(got) {
			t.Errorf("DecodeText(% x) returned invalid UTF-8", in)
		}
	}
}

package extract

import "testing"

func TestDecodeTextUTF8(t *testing.T) {
	in := "héllo wörld"
	if got := DecodeText([]byte(in)); got != in {
		t.Fatalf("got %q, want %q", got, in)
	}
}

func TestDecodeTextLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 but invalid as a standalone UTF-8 byte
	got := DecodeText([]byte{'c', 'a', 'f', 0xE9})
	if got != "café" {
		t.Fatalf("got %q, want %q", got, "café")
	}
}

func TestDecodeTextEmpty(t *testing.T) {
	if got := DecodeText(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}

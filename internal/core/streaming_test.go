package core

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips BOM", "\xEF\xBB\xBFname,price", "name,price"},
		{"no BOM unchanged", "name,price", "name,price"},
		{"empty input", "", ""},
		{"shorter than BOM", "ab", "ab"},
		{"partial BOM bytes kept", "\xEF\xBBx", "\xEF\xBBx"},
		{"BOM only", "\xEF\xBB\xBF", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewBOMSkippingReader(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ascii unchanged", "hello,world", "hello,world"},
		{"valid multibyte unchanged", "caf\xc3\xa9", "caf\xc3\xa9"},
		{"invalid byte replaced", "caf\xe9 table", "caf? table"},
		{"bare continuation replaced", "ab\xbfcd", "ab?cd"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewUTF8Sanitizer(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestUTF8Sanitizer_SplitMultibyte feeds a valid multi-byte rune across two
// reads; the sanitizer must reassemble it rather than mangle the boundary.
func TestUTF8Sanitizer_SplitMultibyte(t *testing.T) {
	input := []byte("abc\xc3\xa9def") // é split if buffer lands mid-rune
	s := NewUTF8Sanitizer(&chunkReader{data: input, chunk: 4})

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, input) {
		t.Errorf("got %q, want %q", got, input)
	}
}

// chunkReader yields at most chunk bytes per Read to exercise boundary handling.
type chunkReader struct {
	data  []byte
	chunk int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.chunk
	if n > len(r.data) {
		n = len(r.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

package ingest

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPreview(t *testing.T) {
	short := "Dinero y poder"
	if got := Preview(short); got != short {
		t.Errorf("Preview(short) = %q", got)
	}

	exact := strings.Repeat("a", PREVIEW_LIMIT)
	if got := Preview(exact); got != exact {
		t.Error("content at the limit should not be truncated")
	}

	long := strings.Repeat("ñ", PREVIEW_LIMIT+5)
	got := Preview(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis, got suffix %q", got[len(got)-5:])
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "...")); n != PREVIEW_LIMIT {
		t.Errorf("preview kept %d characters, want %d", n, PREVIEW_LIMIT)
	}
}

func TestDecodeUpload(t *testing.T) {
	tests := []struct {
		desc     string
		filename string
		data     []byte
		want     string
		wantErr  error
	}{
		{"txt", "letra.txt", []byte("Sola, pero con mil cadenas"), "Sola, pero con mil cadenas", nil},
		{"csv is raw", "versos.CSV", []byte("linea,uno\nlinea,dos"), "linea,uno\nlinea,dos", nil},
		{"bom stripped", "bom.txt", []byte("\ufeffhola"), "hola", nil},
		{"markdown", "song.md", []byte("# Real hasta la muerte\n\n**Dinero** y [poder](https://example.com)."), "Real hasta la muerte\nDinero y poder.", nil},
		{"unsupported", "song.pdf", []byte("x"), "", ErrUnsupportedFileType},
		{"invalid utf8", "bad.txt", []byte{0xff, 0xfe, 0xfd}, "", ErrInvalidEncoding},
		{"too large", "big.txt", make([]byte, MAX_UPLOAD_BYTES+1), "", ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := DecodeUpload(tt.filename, tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeUpload = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertMarkdownToText(t *testing.T) {
	in := "Verso uno\n\nVerso *dos* con www.example.com link\n\n- item y más"
	got := ConvertMarkdownToText(in)
	want := "Verso uno\nVerso dos con  link\nitem y más"
	if got != want {
		t.Errorf("ConvertMarkdownToText = %q, want %q", got, want)
	}
}

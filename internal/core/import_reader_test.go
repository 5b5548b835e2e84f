package core

import (
	"bytes"
	"io"
	"testing"
)

func TestImportReader(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "file with BOM",
			input: append([]byte{0xEF, 0xBB, 0xBF}, "Ani,E1"...),
			want:  "Ani,E1",
		},
		{
			name:  "file without BOM",
			input: []byte("Ani,E1"),
			want:  "Ani,E1",
		},
		{
			name:  "empty file",
			input: []byte{},
			want:  "",
		},
		{
			name:  "multi-byte text passes through",
			input: []byte("Dédé,Süß"),
			want:  "Dédé,Süß",
		},
		{
			name:  "invalid byte is replaced",
			input: []byte{'a', 0xFF, 'b'},
			want:  "a�b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewImportReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

package files

import "testing"

func TestDetectMimeType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	cases := []struct {
		name     string
		declared string
		data     []byte
		want     string
	}{
		{"declared wins", "text/csv", []byte("a,b"), "text/csv"},
		{"sniff when missing", "", png, "image/png"},
		{"sniff when generic", "application/octet-stream", png, "image/png"},
		{"empty payload", "", nil, "application/octet-stream"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectMimeType(tc.declared, tc.data); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

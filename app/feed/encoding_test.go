package feed

import (
	"strings"
	"testing"
)

func TestNormalizeEncodingStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<?xml version="1.0"?><rss/>`)...)

	out, corrected, err := NormalizeEncoding(data)
	if err != nil {
		t.Fatal(err)
	}
	if corrected {
		t.Error("Expected no transcoding for valid UTF-8")
	}
	if string(out) != `<?xml version="1.0"?><rss/>` {
		t.Errorf("Expected BOM to be stripped, got %q", out)
	}
}

func TestNormalizeEncodingTranscodesWindows1252(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"no declaration", []byte("<rss><title>Caf\xe9 \x93news\x94</title></rss>")},
		{"declared utf-8", []byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?><rss><title>Caf\xe9 \x93news\x94</title></rss>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, corrected, err := NormalizeEncoding(tt.data)
			if err != nil {
				t.Fatal(err)
			}
			if !corrected {
				t.Error("Expected transcoding to be reported")
			}
			want := "Café “news”"
			if got := string(out); !strings.Contains(got, want) {
				t.Errorf("Expected %q in output, got %q", want, got)
			}
		})
	}
}

func TestNormalizeEncodingLeavesDeclaredCharset(t *testing.T) {
	data := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><rss><title>Caf\xe9</title></rss>")

	out, corrected, err := NormalizeEncoding(data)
	if err != nil {
		t.Fatal(err)
	}
	if corrected {
		t.Error("Expected declared charsets to be left to the parser")
	}
	if string(out) != string(data) {
		t.Error("Expected data to be unchanged")
	}
}


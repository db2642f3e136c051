package feed

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	utf8BOM             = []byte{0xEF, 0xBB, 0xBF}
	declaredEncodingRe  = regexp.MustCompile(`(?i)^\s*<\?xml[^>]*encoding\s*=\s*["']([^"']+)["']`)
	declaredPrologLimit = 256
)

// NormalizeEncoding strips a UTF-8 byte order mark and repairs bodies that are
// not valid UTF-8 yet declare no other encoding, which in practice are
// Windows-1252. It reports whether a transcoding took place.
func NormalizeEncoding(data []byte) ([]byte, bool, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return data, false, nil
	}

	declared := declaredEncoding(data)
	if declared != "" && !isUTF8Label(declared) {
		// The parser decodes declared charsets itself.
		return data, false, nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to transcode feed: %w", err)
	}

	return decoded, true, nil
}

func declaredEncoding(data []byte) string {
	prolog := data
	if len(prolog) > declaredPrologLimit {
		prolog = prolog[:declaredPrologLimit]
	}

	match := declaredEncodingRe.FindSubmatch(prolog)
	if match == nil {
		return ""
	}
	return string(match[1])
}

func isUTF8Label(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

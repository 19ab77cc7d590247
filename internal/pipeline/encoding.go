package pipeline

import (
	"fmt"

	"golang.org/x/net/html/charset"
)

// DecodeHTML returns raw as UTF-8 text.
// The encoding comes from a byte order mark, a <meta charset> declaration in
// the first kilobyte, or content sniffing, in that order. Help archives often
// carry legacy code pages (windows-1252, gb2312, shift_jis).
func DecodeHTML(raw []byte) (string, error) {
	enc, name, _ := charset.DetermineEncoding(raw, "")
	if name == "utf-8" {
		return string(raw), nil
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return string(decoded), nil
}

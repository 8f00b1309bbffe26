package format

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when the caller does not name one.
const DefaultEncoding = "utf-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LookupEncoding resolves a WHATWG encoding label such as "utf-8",
// "windows-1252" or "iso-8859-1".
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return enc, nil
}

// Decode converts raw file content in the named encoding to a string.
func Decode(raw []byte, encodingName string) (string, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return "", err
	}
	if enc == unicode.UTF8 {
		return string(bytes.TrimPrefix(raw, utf8BOM)), nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", encodingName, err)
	}
	return string(bytes.TrimPrefix(out, utf8BOM)), nil
}

// Encode converts text to the named encoding.
func Encode(text string, encodingName string) ([]byte, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return []byte(text), nil
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s text: %w", encodingName, err)
	}
	return out, nil
}

package fetch

import (
	"bytes"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// decodeToUTF8 converts body to a UTF-8 string using, in order: an explicit
// charset from the Content-Type header, chardet's best-guess detection over
// the body, or a UTF-8 passthrough if neither yields a usable charset.
func decodeToUTF8(body []byte, contentType string) (string, error) {
	if charset := charsetFromContentType(contentType); charset != "" {
		if s, err := decodeWithCharset(body, charset); err == nil {
			return s, nil
		}
	}

	detector := chardet.NewTextDetector()
	if result, err := detector.DetectBest(body); err == nil && result != nil {
		if s, err := decodeWithCharset(body, result.Charset); err == nil {
			return s, nil
		}
	}

	return string(body), nil
}

func charsetFromContentType(contentType string) string {
	idx := strings.Index(strings.ToLower(contentType), "charset=")
	if idx < 0 {
		return ""
	}
	cs := contentType[idx+len("charset="):]
	if semi := strings.IndexByte(cs, ';'); semi >= 0 {
		cs = cs[:semi]
	}
	return strings.Trim(strings.TrimSpace(cs), `"'`)
}

func decodeWithCharset(body []byte, charset string) (string, error) {
	if charset == "" {
		return "", errNoCharset
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", err
	}
	reader := enc.NewDecoder().Reader(bytes.NewReader(body))
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

var errNoCharset = noCharsetErr{}

type noCharsetErr struct{}

func (noCharsetErr) Error() string { return "fetch: no charset given" }

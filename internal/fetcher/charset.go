package fetcher

import (
	"bytes"
	"io"
	"mime"
	"regexp"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var (
	metaCharsetRe      = regexp.MustCompile(`(?i)<meta[^>]+charset=["']?([^"'\s>]+)`)
	metaContentTypeRe  = regexp.MustCompile(`(?i)<meta[^>]+http-equiv=["']?Content-Type["']?[^>]+content=["']?[^"']*charset=([^"'\s;>]+)`)
	metaContentTypeRe2 = regexp.MustCompile(`(?i)<meta[^>]+content=["']?[^"']*charset=([^"'\s;>]+)[^>]+http-equiv=["']?Content-Type["']?`)
)

// decodeHTML converts body to a UTF-8 string. The charset is taken from the
// Content-Type header first, then from a <meta> tag. Unknown or missing
// charsets are treated as UTF-8.
func decodeHTML(body []byte, contentType string) string {
	enc := encodingFromHeader(contentType)
	if enc == nil {
		enc = encodingFromMeta(body)
	}
	if enc != nil {
		if decoded, err := decodeWithEncoding(body, enc); err == nil {
			return decoded
		}
	}
	return string(body)
}

func encodingFromHeader(contentType string) encoding.Encoding {
	if contentType == "" {
		return nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}
	return lookupEncoding(params["charset"])
}

// encodingFromMeta scans the raw bytes so the document is not parsed with
// the wrong encoding first. Only ASCII-compatible charsets can be found this way.
func encodingFromMeta(body []byte) encoding.Encoding {
	// UTF-8 BOM
	if len(body) >= 3 && body[0] == 0xEF && body[1] == 0xBB && body[2] == 0xBF {
		return nil
	}

	for _, re := range []*regexp.Regexp{metaCharsetRe, metaContentTypeRe, metaContentTypeRe2} {
		if submatches := re.FindSubmatch(body); len(submatches) > 1 {
			if enc := lookupEncoding(string(submatches[1])); enc != nil {
				return enc
			}
		}
	}
	return nil
}

func lookupEncoding(charset string) encoding.Encoding {
	if charset == "" {
		return nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil
	}
	return enc
}

func decodeWithEncoding(body []byte, enc encoding.Encoding) (string, error) {
	reader := transform.NewReader(bytes.NewReader(body), enc.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// Package query extracts the launch-time search text from a URL.
package query

import (
	"net/url"
	"strings"
)

// Params are the accepted parameter names, highest priority first.
var Params = []string{"q", "query", "search"}

// FromValues returns the first non-empty q, query or search value, percent-decoded.
//
// Values from url.Values are already form-decoded; they are unescaped once more so links
// that double-encode titles still work. If that second pass fails the value is used as is.
func FromValues(v url.Values) (string, bool) {
	for _, name := range Params {
		raw := v.Get(name)
		if raw == "" {
			continue
		}
		if decoded, err := url.PathUnescape(raw); err == nil {
			return decoded, true
		}
		return raw, true
	}
	return "", false
}

// FromURL parses rawURL (a full URL or just a "?q=..." query string) and applies FromValues.
func FromURL(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}
	var rawQuery string
	if strings.HasPrefix(rawURL, "?") {
		rawQuery = rawURL[1:]
	} else {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", false
		}
		rawQuery = u.RawQuery
	}
	return FromValues(ParseQuery(rawQuery))
}

// FromRawQuery applies FromValues to an undecoded query string such as URL.RawQuery.
func FromRawQuery(rawQuery string) (string, bool) {
	return FromValues(ParseQuery(rawQuery))
}

// ParseQuery splits rawQuery on '&' only and form-decodes each pair. Unlike
// url.ParseQuery it keeps pairs containing ';' and leaves malformed escapes as
// literal text instead of dropping the pair.
func ParseQuery(rawQuery string) url.Values {
	values := url.Values{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = formDecode(key)
		values[key] = append(values[key], formDecode(value))
	}
	return values
}

func formDecode(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

package mdns

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	quotedTxtPattern   = regexp.MustCompile(`"([^"]+)"`)
	unquotedTxtPattern = regexp.MustCompile(`(?:^|[^"\w])(\w+)=([^\s"]+)`)
)

// ParseTxtRecords parses a trailing TXT blob into key=value pairs.
// Tokens are quoted or bare; a quoted token without '=' is a boolean
// flag. Quoted tokens win over bare duplicates.
func ParseTxtRecords(txt string) map[string]string {
	records := map[string]string{}

	for _, match := range quotedTxtPattern.FindAllStringSubmatch(txt, -1) {
		token := match[1]

		if key, value, found := strings.Cut(token, "="); found {
			records[strings.TrimSpace(key)] = strings.TrimSpace(value)
		} else {
			records[strings.TrimSpace(token)] = "true"
		}
	}

	for _, match := range unquotedTxtPattern.FindAllStringSubmatch(txt, -1) {
		if _, exists := records[match[1]]; !exists {
			records[match[1]] = match[2]
		}
	}

	return records
}

func isThreeDigits(s string) bool {
	if len(s) != 3 {
		return false
	}

	for i := 0; i < 3; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// DecodeServiceString decodes avahi's escaping scheme: a backslash
// followed by three decimal digits encodes one raw byte. Consecutive
// encoded bytes buffer and decode as UTF-8, falling back to a
// permissive single byte decoding when invalid; literal characters
// pass through and control characters are stripped.
func DecodeServiceString(s string) string {
	var out bytes.Buffer

	pending := []byte{}

	flush := func() {
		if len(pending) == 0 {
			return
		}

		if utf8.Valid(pending) {
			out.Write(pending)
		} else {
			for _, b := range pending {
				out.WriteRune(rune(b))
			}
		}

		pending = pending[:0]
	}

	for i := 0; i < len(s); {
		if s[i] == '\\' && i+3 < len(s) && isThreeDigits(s[i+1:i+4]) {
			val, err := strconv.Atoi(s[i+1 : i+4])

			if err == nil && val < 256 {
				pending = append(pending, byte(val))
				i += 4
				continue
			}
		}

		flush()
		out.WriteByte(s[i])
		i++
	}

	flush()

	cleaned := strings.Map(func(r rune) rune {
		if r >= 32 || r == '\t' || r == '\n' {
			return r
		}
		return -1
	}, out.String())

	return strings.TrimSpace(cleaned)
}

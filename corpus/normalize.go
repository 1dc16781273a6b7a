package corpus

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalizer converts the raw bytes of an input line into a normalized UTF-8
// string. Implementations must treat the input as read-only.
type Normalizer func(raw []byte) (string, error)

// DecodeEscapes is the default Normalizer. The collected posts were scraped
// through a tool that wrote backslash escape sequences (\n, \xE9, é, ...)
// literally into the files, so the raw bytes have to be decoded back into the
// characters they stand for before tokenization.
//
// Recognized forms are the single-character escapes \\ \' \" \a \b \f \n \r
// \t \v, octal escapes of one to three digits, \xHH, \uHHHH and \UHHHHHHHH.
// An unrecognized escape such as \q is kept verbatim, backslash included.
// A truncated \x, \u or \U sequence is an error.
func DecodeEscapes(raw []byte) (string, error) {
	s := string(raw)
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			i++
			continue
		}
		switch e := s[i+1]; e {
		case '\\', '\'', '"':
			sb.WriteByte(e)
			i += 2
		case 'a':
			sb.WriteByte('\a')
			i += 2
		case 'b':
			sb.WriteByte('\b')
			i += 2
		case 'f':
			sb.WriteByte('\f')
			i += 2
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		case 't':
			sb.WriteByte('\t')
			i += 2
		case 'v':
			sb.WriteByte('\v')
			i += 2
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i + 1
			for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, err := strconv.ParseUint(s[i+1:j], 8, 32)
			if err != nil {
				return "", fmt.Errorf("corpus: bad octal escape %q: %w", s[i:j], err)
			}
			sb.WriteRune(rune(v))
			i = j
		case 'x':
			r, n, err := hexEscape(s[i:], 2)
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			i += n
		case 'u':
			r, n, err := hexEscape(s[i:], 4)
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			i += n
		case 'U':
			r, n, err := hexEscape(s[i:], 8)
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			i += n
		default:
			// Unknown escape, keep it as-is.
			sb.WriteByte('\\')
			sb.WriteByte(e)
			i += 2
		}
	}
	return sb.String(), nil
}

// hexEscape decodes a \xHH style escape at the start of s with exactly digits
// hex digits. It returns the decoded rune and the total number of bytes
// consumed, including the leading backslash and marker character.
func hexEscape(s string, digits int) (rune, int, error) {
	if len(s) < 2+digits {
		return 0, 0, fmt.Errorf("corpus: truncated escape %q", s)
	}
	v, err := strconv.ParseUint(s[2:2+digits], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("corpus: bad escape %q: %w", s[:2+digits], err)
	}
	return rune(v), 2 + digits, nil
}

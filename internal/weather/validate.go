package weather

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

const (
	minNameLength = 2
	maxNameLength = 100
)

// nameSpace is the whitespace a name may contain: ASCII whitespace, NBSP,
// the Unicode space separators and the ideographic space typed by Japanese IMEs.
const nameSpace = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	allowedNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}` + nameSpace + `,.\-]+$`)
	repeatedSpace      = regexp.MustCompile(`[` + nameSpace + `]{2,}`)
)

// ValidateCityInput checks a raw place name before any network use and returns
// it trimmed. Rules are applied in order and the first failure is reported.
func ValidateCityInput(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", inputError(MsgEmptyInput)
	}

	n := nameLength(value)
	if n > maxNameLength {
		return "", inputError(MsgTooLong)
	}
	if n < minNameLength {
		return "", inputError(MsgTooShort)
	}
	if !allowedNamePattern.MatchString(value) {
		return "", inputError(MsgDisallowedChars)
	}
	if repeatedSpace.MatchString(value) {
		return "", inputError(MsgConsecutiveSpaces)
	}
	return value, nil
}

// nameLength counts UTF-16 code units, so a character outside the BMP counts as two.
func nameLength(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

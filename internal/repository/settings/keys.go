package settings

import (
	"strings"
	"unicode"
)

// Key codes written by the first releases, which stored keybinds as numbers.
// Printable keys used their ASCII code, the rest the codes below.
const (
	codeBackspace = 8
	codeTab       = 9
	codeReturn    = 13
	codeEscape    = 27
	codeSpace     = 32
	codeRight     = 1073741903
	codeLeft      = 1073741904
	codeDown      = 1073741905
	codeUp        = 1073741906
)

//nolint:gochecknoglobals // Read-only lookup table.
var namedCodes = map[int]string{
	codeBackspace: "backspace",
	codeTab:       "tab",
	codeReturn:    "return",
	codeEscape:    "escape",
	codeSpace:     "space",
	codeRight:     "right",
	codeLeft:      "left",
	codeDown:      "down",
	codeUp:        "up",
}

// keyNames converts stored keys to key names. Strings are kept, numeric codes
// are translated and anything unknown is dropped.
func keyNames(keys []any) []string {
	names := make([]string, 0, len(keys))

	for _, k := range keys {
		switch v := k.(type) {
		case string:
			if name := strings.ToLower(strings.TrimSpace(v)); name != "" {
				names = append(names, name)
			}
		case float64:
			if name, ok := codeName(int(v)); ok {
				names = append(names, name)
			}
		}
	}

	return names
}

func codeName(code int) (string, bool) {
	if name, ok := namedCodes[code]; ok {
		return name, true
	}

	if code > codeSpace && code <= unicode.MaxASCII && unicode.IsPrint(rune(code)) {
		return strings.ToLower(string(rune(code))), true
	}

	return "", false
}

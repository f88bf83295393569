package render

import "strings"

// StripANSI removes ANSI escape sequences from runner output. Test frameworks
// color their failure messages for terminals; the escapes render as garbage in
// check annotations.
func StripANSI(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\033':
			inEscape = true
		case inEscape && s[i] == 'm':
			inEscape = false
		case !inEscape:
			result.WriteByte(s[i])
		}
	}
	return result.String()
}

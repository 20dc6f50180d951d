package huaci

import (
	"regexp"
	"unicode/utf8"
)

var (
	illegalFilenameRe  = regexp.MustCompile(`[/?<>\\:*|"]`)
	controlFilenameRe  = regexp.MustCompile(`[\x00-\x1f\x80-\x9f]`)
	reservedFilenameRe = regexp.MustCompile(`^\.+$`)
	windowsReservedRe  = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
	windowsTrailingRe  = regexp.MustCompile(`[. ]+$`)
)

// maxFilenameBytes is the common file name limit of desktop filesystems.
const maxFilenameBytes = 255

// SanitizeFilename removes characters and names that are not portable across
// Windows, macOS, and Linux file systems. The result may be empty.
func SanitizeFilename(name string) string {
	s := illegalFilenameRe.ReplaceAllString(name, "")
	s = controlFilenameRe.ReplaceAllString(s, "")
	s = reservedFilenameRe.ReplaceAllString(s, "")
	s = windowsReservedRe.ReplaceAllString(s, "")
	s = windowsTrailingRe.ReplaceAllString(s, "")
	return truncateBytes(s, maxFilenameBytes)
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

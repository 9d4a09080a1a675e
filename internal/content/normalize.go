// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares user supplied text for a single-line label: runs of
// control characters (CR, LF, TAB, ...) fold to one space, surrounding
// whitespace is trimmed and the result is NFC composed. DL Plus byte offsets
// are computed on the returned string.
func NormalizeText(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		s = strings.Join(strings.FieldsFunc(s, unicode.IsControl), " ")
	}
	return norm.NFC.String(strings.TrimSpace(s))
}

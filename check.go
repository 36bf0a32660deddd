package xmlserial

import (
	"fmt"
	"strings"
)

// IsXMLChar reports whether r falls inside the XML 1.0 Char production:
// https://www.w3.org/TR/xml/#NT-Char
func IsXMLChar(r rune) bool {
	return r == 0x9 || r == 0xA || r == 0xD ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// IsNameStartChar reports whether r may begin an XML name, per
// https://www.w3.org/TR/xml/#NT-NameStartChar
//
// The production includes ':'. Local names must still not contain
// colons; that rule belongs to the serializer, not the classifier.
func IsNameStartChar(r rune) bool {
	return r == ':' || r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 0xC0 && r <= 0xD6) ||
		(r >= 0xD8 && r <= 0xF6) ||
		(r >= 0xF8 && r <= 0x2FF) ||
		(r >= 0x370 && r <= 0x37D) ||
		(r >= 0x37F && r <= 0x1FFF) ||
		(r >= 0x200C && r <= 0x200D) ||
		(r >= 0x2070 && r <= 0x218F) ||
		(r >= 0x2C00 && r <= 0x2FEF) ||
		(r >= 0x3001 && r <= 0xD7FF) ||
		(r >= 0xF900 && r <= 0xFDCF) ||
		(r >= 0xFDF0 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0xEFFFF)
}

// IsNameChar reports whether r may continue an XML name, per
// https://www.w3.org/TR/xml/#NT-NameChar
func IsNameChar(r rune) bool {
	return IsNameStartChar(r) ||
		r == '-' || r == '.' || r == 0xB7 ||
		(r >= '0' && r <= '9') ||
		(r >= 0x300 && r <= 0x36F) ||
		(r >= 0x203F && r <= 0x2040)
}

// CheckLocalName validates the local part of a qualified name: it must
// be non-empty, contain no colon, start with a NameStartChar and
// continue with NameChars.
func CheckLocalName(local string) error {
	if local == "" {
		return fmt.Errorf("xmlserial: local name must not be empty")
	}
	if strings.ContainsRune(local, ':') {
		return fmt.Errorf("xmlserial: local name %q must not contain ':'", local)
	}
	for i, rn := range local {
		if i == 0 {
			if !IsNameStartChar(rn) {
				return fmt.Errorf("xmlserial: local name %q must not start with %q", local, rn)
			}
		} else if !IsNameChar(rn) {
			return fmt.Errorf("xmlserial: local name %q must not contain %q", local, rn)
		}
	}
	return nil
}

// CheckChars ensures a string contains only characters inside the XML
// Char production. The escaping writers perform this check themselves;
// CheckChars is for callers that want to validate content up front.
func CheckChars(chars string) error {
	for i, rn := range chars {
		if !IsXMLChar(rn) {
			return fmt.Errorf("xmlserial: invalid character at position %d: %U", i, rn)
		}
	}
	return nil
}

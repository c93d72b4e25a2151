package storage

import (
	"path"
	"strings"

	"github.com/gosimple/slug"
)

// SanitizeFileName reduces an arbitrary upload name to a predictable
// object-key segment. The extension is slugged separately so "Recibo
// Enero.PDF" becomes "recibo-enero.pdf".
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}

	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)

	cleanBase := slug.Make(base)
	if cleanBase == "" {
		cleanBase = "file"
	}
	cleanExt := slug.Make(strings.TrimPrefix(ext, "."))
	if cleanExt == "" {
		return cleanBase
	}
	return cleanBase + "." + cleanExt
}

// IsExternalURL reports whether the stored pointer references an object
// outside our buckets. External pointers are never removed or signed.
func IsExternalURL(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

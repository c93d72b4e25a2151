package db

// ScrubPatch copies a column patch without the given keys. Used by
// repositories to strip scope columns a caller must not override.
func ScrubPatch(patch map[string]any, drop ...string) map[string]any {
	out := make(map[string]any, len(patch))
	for k, v := range patch {
		out[k] = v
	}
	for _, key := range drop {
		delete(out, key)
	}
	return out
}

package encode

type EncodeOption func(*EncState)

// EncodeColors colorizes output with c.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeIndent sets the number of spaces per nesting level, 2 by default.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeTypes controls whether type names are written, true by default.
func EncodeTypes(v bool) EncodeOption {
	return func(es *EncState) { es.types = v }
}

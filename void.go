package xmlserial

// HTMLVoidElements is the HTML vocabulary's set of elements that can
// never have content. Pass it (or a vocabulary-specific set) to
// WithVoidElements, or assign it to Serializer.VoidElements, to have
// childless elements with these names close with " />" and no end tag.
var HTMLVoidElements = map[string]bool{
	"area":     true,
	"base":     true,
	"basefont": true,
	"bgsound":  true,
	"br":       true,
	"col":      true,
	"embed":    true,
	"frame":    true,
	"hr":       true,
	"img":      true,
	"input":    true,
	"keygen":   true,
	"link":     true,
	"meta":     true,
	"param":    true,
	"source":   true,
	"track":    true,
	"wbr":      true,
}

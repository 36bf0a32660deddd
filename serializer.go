package xmlserial

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
)

const (
	initialStackDepth = 8
	defaultBufsize    = 2048
)

// TraversalScope controls whether a Serializee emits the node it was
// handed or only that node's children.
type TraversalScope int

const (
	// ScopeChildrenOnly serializes the children of the node, not the
	// node itself.
	ScopeChildrenOnly TraversalScope = iota

	// ScopeIncludeNode serializes the node and everything below it.
	ScopeIncludeNode
)

// Serializee is implemented by tree holders. A Serializee walks itself
// depth-first, calling StartElem/EndElem and the Write methods on the
// Serializer as it goes.
type Serializee interface {
	Serialize(s *Serializer, scope TraversalScope) error
}

// Serialize writes node to w and flushes.
func Serialize(w io.Writer, node Serializee, options ...Option) error {
	s := Open(w, options...)
	if err := node.Serialize(s, s.Scope); err != nil {
		return err
	}
	return s.Flush()
}

// tagFrame is one in-flight open element. qualName is the exact text
// written after '<', captured so the close tag matches byte for byte
// even when a prefix was synthesized at open time. prevNS and prevMap
// restore the parent's scope when the element closes.
type tagFrame struct {
	qualName string
	skipEnd  bool
	prevNS   string
	prevMap  *PrefixMap
}

// Serializer converts a depth-first stream of element, text, comment
// and processing-instruction events into XML text that a conforming
// parser can read back unambiguously. Prefix resolution and
// well-formedness enforcement follow the element serialization
// algorithm of the W3C DOM Parsing and Serialization spec.
//
// One Serializer owns one run: the prefix map and the synthetic-prefix
// counter accumulate for the life of the value and must not be shared
// across goroutines.
type Serializer struct {
	printer printer
	stack   []tagFrame

	// ambient scope of the element currently being populated
	curNS   string
	curMap  *PrefixMap
	started bool

	// RequireWellFormed rejects output that could not round-trip
	// through a conforming parser. Defaults to true when created using
	// Open(). With it off, only stack discipline and the forced
	// escaping of '&', '<', '>' and '"' still apply.
	RequireWellFormed bool

	// ContextNamespace is the namespace inherited by the document's
	// imaginary root; the first StartElem resolves against it.
	ContextNamespace string

	// PrefixMap is the starting namespace-prefix map. Left nil, a
	// fresh map holding only the built-in "xml" binding is used.
	PrefixMap *PrefixMap

	// PrefixIndex seeds synthetic prefixes (ns1, ns2, ...). It only
	// ever increases during a run. Defaults to 1.
	PrefixIndex uint

	// Scope is handed to Serializees driven through Serialize.
	Scope TraversalScope

	// VoidElements lists local names that can never have content.
	// A childless element whose local name is in the set closes with
	// " />" and suppresses its end tag. See HTMLVoidElements.
	VoidElements map[string]bool

	// Determines how much memory the internal buffer will use. Set to
	// 0 to use the default.
	InitialBufSize int
}

// Option is an option to the Serializer.
type Option func(s *Serializer)

// WithContextNamespace sets the namespace the root element resolves
// against, as if the document were embedded in content already inside
// ns.
func WithContextNamespace(ns string) Option {
	return func(s *Serializer) { s.ContextNamespace = ns }
}

// WithPrefixMap sets the starting namespace-prefix map. The map is
// owned by the run from then on.
func WithPrefixMap(pm *PrefixMap) Option {
	return func(s *Serializer) { s.PrefixMap = pm }
}

// WithoutWellFormed turns off well-formedness enforcement.
func WithoutWellFormed() Option {
	return func(s *Serializer) { s.RequireWellFormed = false }
}

// WithVoidElements supplies the vocabulary's set of void element
// names:
//
//	s := xmlserial.Open(b, xmlserial.WithVoidElements(xmlserial.HTMLVoidElements))
func WithVoidElements(voids map[string]bool) Option {
	return func(s *Serializer) { s.VoidElements = voids }
}

// WithScope sets the traversal scope handed to Serializees.
func WithScope(scope TraversalScope) Option {
	return func(s *Serializer) { s.Scope = scope }
}

func newSerializer(w io.Writer, options ...Option) *Serializer {
	s := &Serializer{}
	s.RequireWellFormed = true
	s.PrefixIndex = 1
	s.stack = make([]tagFrame, 0, initialStackDepth)
	for _, o := range options {
		o(s)
	}
	if s.InitialBufSize <= 0 {
		s.InitialBufSize = defaultBufsize
	}
	s.printer = printer{Writer: bufio.NewWriterSize(w, s.InitialBufSize)}
	return s
}

// Open opens a Serializer producing UTF-8 output.
func Open(w io.Writer, options ...Option) *Serializer {
	return newSerializer(w, options...)
}

// OpenEncoding opens a Serializer whose output is converted on the fly
// to the target encoding. Write UTF-8 strings to it as usual:
//
//	enc := charmap.Windows1252.NewEncoder()
//	s := xmlserial.OpenEncoding(b, enc)
//
// Characters the target encoding cannot represent are written as
// numeric character references.
func OpenEncoding(w io.Writer, encoder *encoding.Encoder, options ...Option) *Serializer {
	enc := encoding.HTMLEscapeUnsupported(encoder).Writer(w)
	return newSerializer(enc, options...)
}

// Depth returns the number of currently open elements.
func (s *Serializer) Depth() int {
	return len(s.stack)
}

// Flush ensures the output buffer accumulated inside the Serializer is
// fully written to the underlying io.Writer.
func (s *Serializer) Flush() error {
	return s.printer.Flush()
}

// begin latches the run configuration on first use so the exported
// fields can still be assigned after Open but before the first event.
func (s *Serializer) begin() {
	if s.started {
		return
	}
	s.started = true
	if s.PrefixMap == nil {
		s.PrefixMap = NewPrefixMap()
	}
	s.curMap = s.PrefixMap
	s.curNS = s.ContextNamespace
}

// recordNamespaces scans the element's own attributes for namespace
// declarations, records prefixed declarations into m and localPrefixes,
// and returns the element's local default namespace if a bare xmlns
// attribute declared one. Redeclarations of the built-in "xml" binding
// and bindings already present in m are skipped.
func (s *Serializer) recordNamespaces(m *PrefixMap, localPrefixes map[string]string, attrs []Attr) (def string, hasDef bool) {
	for _, a := range attrs {
		if a.Name.NS != NSXMLNS {
			continue
		}
		if a.Name.Prefix == "" {
			def, hasDef = a.Value, true
			continue
		}
		prefixDef, nsDef := a.Name.Local, a.Value
		if nsDef == NSXML {
			continue
		}
		if m.FindPrefix(nsDef, prefixDef) {
			continue
		}
		m.Add(nsDef, prefixDef)
		localPrefixes[prefixDef] = nsDef
	}
	return def, hasDef
}

// generatePrefix produces the next synthetic prefix and records it as
// naming ns. The counter never resets mid-run, so generated prefixes
// are unique within the run.
func (s *Serializer) generatePrefix(m *PrefixMap, ns string) string {
	generated := "ns" + strconv.FormatUint(uint64(s.PrefixIndex), 10)
	s.PrefixIndex++
	m.Add(ns, generated)
	return generated
}

// StartElem opens an element. attrs are written in the order supplied.
// leaf marks the element as having no children; it will be
// self-closed, but the matching EndElem call is still required.
//
// Namespace declarations among attrs take effect for this element and
// its descendants only. StartElem decides the textual prefix (if any)
// for the element's namespace, synthesizes and declares a fresh one on
// collision, and suppresses declarations that restate what is already
// true at this point in the tree.
func (s *Serializer) StartElem(name QName, attrs []Attr, leaf bool) error {
	s.begin()

	if s.RequireWellFormed {
		if err := CheckLocalName(name.Local); err != nil {
			return err
		}
	}

	s.printer.WriteByte('<')

	ignoreNamespaceDefinition := false
	m := s.curMap.Clone()
	localPrefixes := make(map[string]string)
	localDefault, hasLocalDefault := s.recordNamespaces(m, localPrefixes, attrs)

	inheritedNS := s.curNS
	ns := name.NS
	childNS := inheritedNS
	var qualName string

	if inheritedNS == ns {
		// The element restates the namespace already in force; no
		// prefix and no declaration needed. A default declaration on
		// the element is redundant and gets suppressed below.
		if hasLocalDefault {
			ignoreNamespaceDefinition = true
		}
		if ns == NSXML {
			qualName = "xml:" + name.Local
		} else {
			qualName = name.Local
		}
		s.printer.WriteString(qualName)
	} else {
		prefix := name.Prefix
		if prefix == "xmlns" && s.RequireWellFormed {
			return fmt.Errorf("xmlserial: element prefix \"xmlns\" cannot round-trip through a conforming parser")
		}
		candidate, found := m.RetrievePreferredPrefix(ns, prefix)
		if prefix == "xmlns" {
			candidate, found = prefix, true
		}
		switch {
		case found:
			// A known prefix already names ns; reuse it with no new
			// declaration.
			qualName = candidate + ":" + name.Local
			if hasLocalDefault && localDefault != NSXML {
				childNS = localDefault
			}
			s.printer.WriteString(qualName)

		case prefix != "":
			// The element brought its own prefix. If this element's
			// declarations bound that prefix to something else, a
			// fresh prefix takes its place.
			if bound, ok := localPrefixes[prefix]; ok && bound != ns {
				prefix = s.generatePrefix(m, ns)
			} else {
				m.Add(ns, prefix)
			}
			qualName = prefix + ":" + name.Local
			s.printer.WriteString(qualName)
			if err := s.printer.printAttr("xmlns:"+prefix, ns, s.RequireWellFormed); err != nil {
				return err
			}
			if hasLocalDefault {
				childNS = localDefault
			}

		case !hasLocalDefault || localDefault != ns:
			// No prefix available: ns becomes the default namespace.
			// Any default declaration on the element is superseded by
			// the one written here.
			ignoreNamespaceDefinition = true
			qualName = name.Local
			childNS = ns
			s.printer.WriteString(qualName)
			if err := s.printer.printAttr("xmlns", ns, s.RequireWellFormed); err != nil {
				return err
			}

		default:
			// The element's own default declaration independently
			// names ns; the attribute pass writes it.
			qualName = name.Local
			childNS = ns
			s.printer.WriteString(qualName)
		}
	}

	if err := s.serializeAttrs(m, localPrefixes, attrs, ignoreNamespaceDefinition); err != nil {
		return err
	}

	skipEnd := false
	if leaf && s.VoidElements[name.Local] {
		s.printer.WriteString(" /")
		skipEnd = true
	} else if leaf {
		s.printer.WriteByte('/')
		skipEnd = true
	}
	s.printer.WriteByte('>')

	s.stack = append(s.stack, tagFrame{
		qualName: qualName,
		skipEnd:  skipEnd,
		prevNS:   s.curNS,
		prevMap:  s.curMap,
	})
	s.curNS = childNS
	s.curMap = m

	return s.printer.cachedWriteError()
}

// EndElem closes the most recently opened element. The close tag is
// reproduced from the text captured at open time, not re-derived, so a
// prefix synthesized on open always matches on close. Self-closed
// elements pop their frame and write nothing.
func (s *Serializer) EndElem(name QName) error {
	if len(s.stack) == 0 {
		return fmt.Errorf("xmlserial: end of element %q with no open element", name.Local)
	}
	frame := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.curNS = frame.prevNS
	s.curMap = frame.prevMap

	if frame.skipEnd {
		return s.printer.cachedWriteError()
	}
	s.printer.WriteString("</")
	s.printer.WriteString(frame.qualName)
	s.printer.WriteByte('>')
	return s.printer.cachedWriteError()
}

// WriteText writes a text node, escaping '&', '<' and '>'.
func (s *Serializer) WriteText(text string) error {
	s.begin()
	return s.printer.escapeText(text, s.RequireWellFormed)
}

// WriteComment writes a comment. Under enforcement, content containing
// "--" or ending in "-" is rejected because either would corrupt the
// closing token.
func (s *Serializer) WriteComment(text string) error {
	s.begin()
	if s.RequireWellFormed {
		if strings.Contains(text, "--") {
			return fmt.Errorf("xmlserial: comment must not contain \"--\"")
		}
		if strings.HasSuffix(text, "-") {
			return fmt.Errorf("xmlserial: comment must not end with \"-\"")
		}
	}
	s.printer.WriteString("<!--")
	if err := s.printer.escapeText(text, s.RequireWellFormed); err != nil {
		return err
	}
	s.printer.WriteString("-->")
	return s.printer.cachedWriteError()
}

// WritePI writes a processing instruction.
func (s *Serializer) WritePI(target, data string) error {
	s.begin()
	if s.RequireWellFormed {
		if strings.EqualFold(target, "xml") {
			return fmt.Errorf("xmlserial: processing instruction target must not be \"xml\"")
		}
		if strings.Contains(target, ":") {
			return fmt.Errorf("xmlserial: processing instruction target must not contain ':'")
		}
		if strings.Contains(data, "?>") {
			return fmt.Errorf("xmlserial: processing instruction data must not contain \"?>\"")
		}
	}
	s.printer.WriteString("<?")
	if err := s.printer.escapeText(target, s.RequireWellFormed); err != nil {
		return err
	}
	s.printer.WriteByte(' ')
	if err := s.printer.escapeText(data, s.RequireWellFormed); err != nil {
		return err
	}
	s.printer.WriteString("?>")
	return s.printer.cachedWriteError()
}

// WriteDoctype writes text verbatim between "<!DOCTYPE " and ">". DTD
// content is not interpreted or validated here.
func (s *Serializer) WriteDoctype(text string) error {
	s.begin()
	s.printer.WriteString("<!DOCTYPE ")
	s.printer.WriteString(text)
	s.printer.WriteByte('>')
	return s.printer.cachedWriteError()
}

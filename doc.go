/*
Package xmlserial converts an abstract element tree, delivered as a
stream of open/attribute/text/close events, into XML text that other
parsers can read back unambiguously.

The caller is a tree walker: it calls StartElem once per open tag with
the element's qualified name, its attributes in order, and a flag saying
whether the element is childless; zero or more Write calls for text,
comment and processing-instruction children; and exactly one EndElem per
StartElem, in strict depth-first order. The serializer resolves which
prefix textually represents each namespace at that point in the tree,
emits namespace declarations only where they change what is in force,
synthesizes fresh prefixes (ns1, ns2, ...) on collision, and rejects
structures that could not round-trip through a conforming parser.

Prefix resolution and well-formedness enforcement follow the element and
attribute serialization algorithms of the W3C DOM Parsing and
Serialization specification [1].

  [1] https://w3c.github.io/DOM-Parsing/

# Creating

Open takes any io.Writer, along with a variable list of options:

	b := &bytes.Buffer{}
	s := xmlserial.Open(b)

Options are based on Dave Cheney's functional options pattern
(https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis):

	s := xmlserial.Open(b, xmlserial.WithContextNamespace("urn:example"))

Provided options are:
  - WithContextNamespace(string)
  - WithPrefixMap(*PrefixMap)
  - WithoutWellFormed()
  - WithVoidElements(map[string]bool)
  - WithScope(TraversalScope)

# Writing

	ec := &xmlserial.ErrCollector{}
	defer ec.Panic()
	ec.Do(
		s.StartElem(xmlserial.QName{Local: "doc", NS: "urn:example"}, nil, false),
		s.WriteText("hello"),
		s.EndElem(xmlserial.QName{Local: "doc"}),
		s.Flush(),
	)

The serializer buffers internally; don't forget to Flush.

# Well-formedness

RequireWellFormed (the default) makes every structural and character
legality violation an immediate, fatal error for the run: invalid name
characters, colons in local names, duplicate attributes, characters
outside the XML Char range, comments containing "--" or ending in "-",
illegal processing-instruction targets, and namespace declarations that
could not round-trip. Bytes already written to the sink stay written;
there is no rollback. With enforcement off, only the escaping of '&',
'<', '>' and '"' and the element stack discipline remain.

# Encodings

xmlserial supports encoders from the golang.org/x/text/encoding
package. UTF-8 strings written in are converted on the fly:

	enc := charmap.Windows1252.NewEncoder()
	s := xmlserial.OpenEncoding(b, enc)
*/
package xmlserial

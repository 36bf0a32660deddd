// Command reserialize reads an XML document on stdin and replays it
// through the serializer to stdout. Useful for eyeballing how the
// namespace resolution rewrites real documents.
package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/markupkit/xmlserial"
)

func main() {
	loose := flag.Bool("loose", false, "disable well-formedness enforcement")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, *loose); err != nil {
		fmt.Fprintln(os.Stderr, "reserialize:", err)
		os.Exit(1)
	}
}

func run(r io.Reader, w io.Writer, loose bool) error {
	var options []xmlserial.Option
	if loose {
		options = append(options, xmlserial.WithoutWellFormed())
	}
	s := xmlserial.Open(w, options...)

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]xmlserial.Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				attrs = append(attrs, xmlserial.Attr{Name: attrName(a.Name), Value: a.Value})
			}
			if err := s.StartElem(elemName(t.Name), attrs, false); err != nil {
				return err
			}
		case xml.EndElement:
			if err := s.EndElem(elemName(t.Name)); err != nil {
				return err
			}
		case xml.CharData:
			if err := s.WriteText(string(t)); err != nil {
				return err
			}
		case xml.Comment:
			if err := s.WriteComment(string(t)); err != nil {
				return err
			}
		case xml.ProcInst:
			// the document declaration is not a PI; the output is
			// always UTF-8 regardless of what the input declared
			if strings.EqualFold(t.Target, "xml") {
				continue
			}
			if err := s.WritePI(t.Target, string(t.Inst)); err != nil {
				return err
			}
		case xml.Directive:
			d := strings.TrimSpace(string(t))
			if strings.HasPrefix(d, "DOCTYPE ") {
				if err := s.WriteDoctype(strings.TrimPrefix(d, "DOCTYPE ")); err != nil {
					return err
				}
			}
		}
	}
	return s.Flush()
}

// elemName maps an encoding/xml element name. The decoder resolves
// Space to the namespace URI and discards the source prefix, so the
// serializer is left to choose prefixes itself.
func elemName(n xml.Name) xmlserial.QName {
	return xmlserial.QName{Local: n.Local, NS: n.Space}
}

// attrName maps an encoding/xml attribute name, recovering the shape
// of namespace declarations: the decoder reports them with the literal
// "xmlns" in Space rather than the xmlns namespace URI.
func attrName(n xml.Name) xmlserial.QName {
	switch {
	case n.Space == "" && n.Local == "xmlns":
		return xmlserial.QName{Local: "xmlns", NS: xmlserial.NSXMLNS}
	case n.Space == "xmlns":
		return xmlserial.QName{Prefix: "xmlns", Local: n.Local, NS: xmlserial.NSXMLNS}
	default:
		return xmlserial.QName{Local: n.Local, NS: n.Space}
	}
}

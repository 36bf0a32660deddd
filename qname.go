package xmlserial

import "strconv"

// Namespace URIs with meanings fixed by the XML and Namespaces in XML
// recommendations. NSXML is permanently bound to the "xml" prefix and
// can never be redeclared; NSXMLNS is the namespace of namespace
// declaration attributes themselves.
const (
	NSXML   = "http://www.w3.org/XML/1998/namespace"
	NSXMLNS = "http://www.w3.org/2000/xmlns/"
)

// QName is the qualified name of an element or attribute. Identity is
// the (NS, Local) pair; Prefix is presentation only and the serializer
// is free to substitute another prefix (or drop it) when the one given
// cannot legally represent NS at the point of writing. An empty NS
// means "no namespace".
type QName struct {
	Prefix string
	Local  string
	NS     string
}

// Name returns a QName in no namespace.
func Name(local string) QName { return QName{Local: local} }

// Attr is a single attribute on an element. Attribute order is
// significant to the serializer and is never changed. Namespace
// declarations are ordinary attributes in the NSXMLNS namespace:
//
//	Attr{Name: QName{Local: "xmlns", NS: NSXMLNS}, Value: uri}
//	Attr{Name: QName{Prefix: "xmlns", Local: "p", NS: NSXMLNS}, Value: uri}
type Attr struct {
	Name  QName
	Value string
}

func (a Attr) Bool(v bool) Attr       { a.Value = strconv.FormatBool(v); return a }
func (a Attr) Int(v int) Attr         { a.Value = strconv.FormatInt(int64(v), 10); return a }
func (a Attr) Int64(v int64) Attr     { a.Value = strconv.FormatInt(v, 10); return a }
func (a Attr) Uint64(v uint64) Attr   { a.Value = strconv.FormatUint(v, 10); return a }
func (a Attr) Float64(v float64) Attr { a.Value = strconv.FormatFloat(v, 'g', -1, 64); return a }

package xmlserial

import "fmt"

type attrKey struct {
	ns, local string
}

// serializeAttrs writes the element's attributes in supplied order,
// resolving each namespaced attribute to a prefix via m and declaring
// synthetic prefixes inline when no recorded prefix serves. Namespace
// declaration attributes that restate bindings already in force are
// suppressed; ignoreNamespaceDefinition marks the element's default
// declaration as redundant.
func (s *Serializer) serializeAttrs(m *PrefixMap, localPrefixes map[string]string, attrs []Attr, ignoreNamespaceDefinition bool) error {
	var seen map[attrKey]bool
	if s.RequireWellFormed {
		seen = make(map[attrKey]bool, len(attrs))
	}

	for _, a := range attrs {
		if s.RequireWellFormed {
			k := attrKey{a.Name.NS, a.Name.Local}
			if seen[k] {
				return fmt.Errorf("xmlserial: duplicate attribute %q", a.Name.Local)
			}
			seen[k] = true
		}

		candidate, found := "", false
		if a.Name.NS != "" {
			candidate, found = m.RetrievePreferredPrefix(a.Name.NS, a.Name.Prefix)

			if a.Name.NS == NSXMLNS {
				// The attribute is itself a namespace declaration.
				// Skip it when it redeclares the immutable "xml"
				// binding, when the element-open step already wrote a
				// declaration superseding it, or when it restates a
				// binding the ambient map already carries for the same
				// prefix.
				if a.Value == NSXML {
					continue
				}
				if a.Name.Prefix == "" && ignoreNamespaceDefinition {
					continue
				}
				if a.Name.Prefix != "" {
					bound, ok := localPrefixes[a.Name.Local]
					if (!ok || bound != a.Value) && m.FindPrefix(a.Value, a.Name.Local) {
						continue
					}
				}
				if s.RequireWellFormed && a.Value == NSXMLNS {
					return fmt.Errorf("xmlserial: namespace declaration %q must not name the xmlns namespace", a.Name.Local)
				}
				if s.RequireWellFormed && a.Value == "" {
					return fmt.Errorf("xmlserial: namespace declaration %q must not have an empty value", a.Name.Local)
				}
				if a.Name.Prefix == "xmlns" {
					candidate, found = "xmlns", true
				}
			} else if !found {
				// Ordinary namespaced attribute with no resolvable
				// prefix: declare a synthetic one on this element.
				candidate = s.generatePrefix(m, a.Name.NS)
				found = true
				if err := s.printer.printAttr("xmlns:"+candidate, a.Name.NS, s.RequireWellFormed); err != nil {
					return err
				}
			}
		}

		if s.RequireWellFormed {
			if err := CheckLocalName(a.Name.Local); err != nil {
				return err
			}
			if a.Name.Local == "xmlns" && a.Name.NS == "" {
				return fmt.Errorf("xmlserial: attribute named \"xmlns\" must be a namespace declaration")
			}
		}

		name := a.Name.Local
		if found && candidate != "" {
			name = candidate + ":" + name
		}
		if err := s.printer.printAttr(name, a.Value, s.RequireWellFormed); err != nil {
			return err
		}
	}
	return s.printer.cachedWriteError()
}

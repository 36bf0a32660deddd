package xmlserial

// PrefixMap associates each namespace ever seen during a serialization
// run with the ordered list of prefixes recorded as naming it, oldest
// first. The empty string is a valid, distinct key meaning "no
// namespace". If a namespace is present its candidate list is never
// empty; a missing namespace behaves the same as one with no
// candidates.
//
// A fresh map carries the one immutable binding the XML recommendation
// fixes: NSXML named by the prefix "xml". The serializer never lets
// input declarations override it.
type PrefixMap struct {
	candidates map[string][]string
}

// NewPrefixMap returns a PrefixMap seeded with the built-in "xml"
// binding.
func NewPrefixMap() *PrefixMap {
	pm := &PrefixMap{candidates: make(map[string][]string)}
	pm.Add(NSXML, "xml")
	return pm
}

// Clone returns an independent copy. The serializer clones the ambient
// map once per element so bindings introduced by the element are
// visible to its descendants but never leak back to siblings or the
// parent.
func (pm *PrefixMap) Clone() *PrefixMap {
	out := &PrefixMap{candidates: make(map[string][]string, len(pm.candidates))}
	for ns, list := range pm.candidates {
		out.candidates[ns] = append([]string(nil), list...)
	}
	return out
}

// RetrievePreferredPrefix scans ns's candidates in recorded order and
// returns preferred if it occurs among them, otherwise the most
// recently recorded candidate. The second return is false when ns has
// no candidates at all.
func (pm *PrefixMap) RetrievePreferredPrefix(ns, preferred string) (string, bool) {
	list := pm.candidates[ns]
	if len(list) == 0 {
		return "", false
	}
	last := list[0]
	for _, prefix := range list {
		last = prefix
		if prefix == preferred {
			break
		}
	}
	return last, true
}

// FindPrefix reports whether prefix occurs anywhere in ns's candidate
// list.
func (pm *PrefixMap) FindPrefix(ns, prefix string) bool {
	for _, p := range pm.candidates[ns] {
		if p == prefix {
			return true
		}
	}
	return false
}

// Add appends prefix to ns's candidate list, creating the list if
// absent. Add never deduplicates; callers that want duplicate
// suppression must consult FindPrefix first. The serializer relies on
// this to decide when a binding is already known and need not be
// redeclared.
func (pm *PrefixMap) Add(ns, prefix string) {
	pm.candidates[ns] = append(pm.candidates[ns], prefix)
}

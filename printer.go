// Copyright (c) 2009 The Go Authors. All rights reserved.

// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:

// * Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
// * Redistributions in binary form must reproduce the above
// copyright notice, this list of conditions and the following disclaimer
// in the documentation and/or other materials provided with the
// distribution.
// * Neither the name of Google Inc. nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.

// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package xmlserial

import (
	"bufio"
	"fmt"
	"unicode/utf8"
)

// The escape loops are adapted from encoding/xml's printer, but the
// entity set is the one the serialization algorithm mandates: '&', '<'
// and '>' everywhere, plus '"' inside attribute values. Nothing else is
// ever substituted; characters outside the XML Char range are a
// data-format error when enforcement is on, and pass through untouched
// when it is off.

var (
	escAmp  = []byte("&amp;")
	escLt   = []byte("&lt;")
	escGt   = []byte("&gt;")
	escQuot = []byte("&quot;")
)

type printer struct {
	*bufio.Writer
}

// return the bufio Writer's cached write error
func (p printer) cachedWriteError() error {
	_, err := p.Write(nil)
	return err
}

// bytes that never need the slow path in attribute values
var attrSafe = [256]bool{}

func init() {
	for c := 0x20; c < 0x7F; c++ {
		attrSafe[c] = true
	}
	attrSafe['&'] = false
	attrSafe['<'] = false
	attrSafe['>'] = false
	attrSafe['"'] = false
}

func (p printer) escapeText(s string, enforce bool) error {
	last := 0
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		i += width
		var esc []byte
		switch r {
		case '&':
			esc = escAmp
		case '<':
			esc = escLt
		case '>':
			esc = escGt
		default:
			if enforce && !IsXMLChar(r) {
				return fmt.Errorf("xmlserial: invalid character in content: %U", r)
			}
			continue
		}
		p.WriteString(s[last : i-width])
		p.Write(esc)
		last = i
	}
	p.WriteString(s[last:])
	return p.cachedWriteError()
}

func (p printer) escapeAttr(s string, enforce bool) error {
	sz := len(s)
	i := 0
	for ; i < sz; i++ {
		if !attrSafe[s[i]] {
			goto slow
		}
	}
	p.WriteString(s)
	return p.cachedWriteError()

slow:
	p.WriteString(s[:i])
	last := i
	for i < sz {
		r, width := utf8.DecodeRuneInString(s[i:])
		i += width
		var esc []byte
		switch r {
		case '&':
			esc = escAmp
		case '<':
			esc = escLt
		case '>':
			esc = escGt
		case '"':
			esc = escQuot
		default:
			if enforce && !IsXMLChar(r) {
				return fmt.Errorf("xmlserial: invalid character in attribute value: %U", r)
			}
			continue
		}
		p.WriteString(s[last : i-width])
		p.Write(esc)
		last = i
	}
	p.WriteString(s[last:])
	return p.cachedWriteError()
}

// printAttr writes ` name="value"`. Name validity is the caller's
// responsibility; the attribute pass checks local names itself and the
// synthesized xmlns names are valid by construction.
func (p printer) printAttr(name, value string, enforce bool) error {
	p.WriteByte(' ')
	p.WriteString(name)
	p.WriteString(`="`)
	if err := p.escapeAttr(value, enforce); err != nil {
		return err
	}
	p.WriteByte('"')
	return p.cachedWriteError()
}

// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"bytes"
	"encoding/asn1"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// Oid represents an Object Identifier as used throughout GSSAPI. Elements of the byte slice
// represent the DER encoding of the object identifier, excluding the ASN.1 header (two bytes:
// tag value 0x06 and length) as per the Microsoft documentation on object identifiers.
//
// A nil or empty Oid is used by the import functions to mean "no name type was supplied"
// (GSS_C_NO_OID).
type Oid []byte

// Equal reports whether two OIDs have the same encoding.
func (o Oid) Equal(other Oid) bool {
	return bytes.Equal(o, other)
}

// Clone returns a copy of the OID that does not alias o.  The clone of an empty OID is nil.
func (o Oid) Clone() Oid {
	if len(o) == 0 {
		return nil
	}

	return bytes.Clone(o)
}

// String returns the dotted-decimal form of the OID, or a hex dump prefixed with "?"
// if the encoding is not a valid OBJECT IDENTIFIER body.
func (o Oid) String() string {
	if len(o) == 0 {
		return ""
	}

	var b cryptobyte.Builder
	b.AddASN1(cbasn1.OBJECT_IDENTIFIER, func(b *cryptobyte.Builder) {
		b.AddBytes(o)
	})

	der, err := b.Bytes()
	if err != nil {
		return fmt.Sprintf("?%x", []byte(o))
	}

	s := cryptobyte.String(der)
	var id asn1.ObjectIdentifier
	if !s.ReadASN1ObjectIdentifier(&id) {
		return fmt.Sprintf("?%x", []byte(o))
	}

	return id.String()
}

// OidFromString converts a dotted-decimal object identifier such as "1.2.840.113554.1.2.2"
// to its DER body.
func OidFromString(s string) (Oid, error) {
	elms := strings.Split(s, ".")
	if len(elms) < 2 {
		return nil, fmt.Errorf("gssapi: object identifier %q needs at least two arcs", s)
	}

	id := make(asn1.ObjectIdentifier, len(elms))
	for i, elm := range elms {
		j, err := strconv.ParseUint(elm, 10, 31)
		if err != nil {
			return nil, fmt.Errorf("gssapi: object identifier %q: %w", s, err)
		}
		id[i] = int(j)
	}

	var b cryptobyte.Builder
	b.AddASN1ObjectIdentifier(id)
	der, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("gssapi: object identifier %q: %w", s, err)
	}

	// strip the tag and length
	body := cryptobyte.String(der)
	var out cryptobyte.String
	if !body.ReadASN1(&out, cbasn1.OBJECT_IDENTIFIER) {
		return nil, fmt.Errorf("gssapi: object identifier %q could not be encoded", s)
	}

	return Oid(out), nil
}

// oidSetContains reports whether set contains oid.
func oidSetContains(set []Oid, oid Oid) bool {
	for _, o := range set {
		if o.Equal(oid) {
			return true
		}
	}

	return false
}

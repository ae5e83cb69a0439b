// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"golang.org/x/crypto/cryptobyte"
)

// TokenKind is the second byte of the TOK_ID of an exported name token.
type TokenKind uint8

const (
	// TokenExportedName is the RFC 2743 § 3.2 exported name token (TOK_ID 04 01).
	TokenExportedName TokenKind = 0x01
	// TokenCompositeExportedName is the RFC 6680 exported composite name token (TOK_ID 04 02).
	TokenCompositeExportedName TokenKind = 0x02
)

const (
	exportedNameTokenTag = 0x04
	derOidTag            = 0x06

	// no 16-bit mechanism length could describe an OID whose DER length needs more octets
	maxDerLengthBytes = 4
)

func (k TokenKind) String() string {
	switch k {
	case TokenExportedName:
		return "exported name"
	case TokenCompositeExportedName:
		return "composite exported name"
	}

	return "unknown"
}

// ExportedName is the result of decoding the header of an exported name token.  All of the
// slices alias the buffer passed to ParseExportedName.
type ExportedName struct {
	Kind TokenKind // simple or composite
	Mech Oid       // mechanism OID from the token header

	// Name holds the NAME field of a simple token; it is nil for composite tokens.
	Name []byte

	// Remainder holds everything after the mechanism OID of a composite token.  The format
	// is mechanism defined and is not validated; it is nil for simple tokens.
	Remainder []byte

	// Token is the complete, unmodified token.  Mechanisms are handed the whole token and
	// validate it again themselves.
	Token []byte
}

// ParseExportedName decodes an exported name token as produced by GSS_Export_name
// (RFC 2743 § 3.2) or GSS_Export_name_composite (RFC 6680 § 7.8):
//
//	04 01|02  TOK_ID
//	2 bytes   length of the DER encoded mechanism OID, including tag and length
//	06 ...    DER encoded mechanism OID
//	4 bytes   NAME_LEN (simple tokens only)
//	...       NAME (simple tokens only, exactly NAME_LEN bytes)
//
// For composite tokens nothing after the mechanism OID is checked: implementations disagree
// on the layout of the remainder and only the mechanism can interpret it.
//
// All failures are reported as a FatalStatus with the ErrBadName code and a *TokenError
// mechanism error.
func ParseExportedName(token []byte) (*ExportedName, error) {
	if len(token) < 2 {
		return nil, badToken(0, "token too short for TOK_ID")
	}

	s := cryptobyte.String(token)
	offset := func() int { return len(token) - len(s) }

	var tag, kind uint8
	_ = s.ReadUint8(&tag) && s.ReadUint8(&kind)
	if tag != exportedNameTokenTag {
		return nil, badToken(0, "bad TOK_ID byte 0x%02x", tag)
	}

	ret := &ExportedName{Kind: TokenKind(kind), Token: token}
	switch ret.Kind {
	case TokenExportedName, TokenCompositeExportedName:
	default:
		return nil, badToken(1, "bad TOK_ID kind 0x%02x", kind)
	}

	var hdrLen uint16
	if !s.ReadUint16(&hdrLen) {
		return nil, badToken(offset(), "token too short for mechanism OID length")
	}
	remaining := int(hdrLen)

	var oidTag uint8
	if !s.ReadUint8(&oidTag) {
		return nil, badToken(offset(), "token too short for mechanism OID tag")
	}
	if oidTag != derOidTag {
		return nil, badToken(offset()-1, "mechanism OID tag is 0x%02x, not 0x06", oidTag)
	}
	remaining--

	oidLen, ok := readDerLength(&s, &remaining)
	if !ok {
		return nil, badToken(offset(), "bad DER length for mechanism OID")
	}

	if oidLen != remaining {
		return nil, badToken(offset(), "mechanism OID length %d does not match token header (%d)", oidLen, remaining)
	}

	var mech []byte
	if !s.ReadBytes(&mech, oidLen) {
		return nil, badToken(offset(), "token truncated in mechanism OID")
	}
	ret.Mech = Oid(mech[:len(mech):len(mech)])

	rest := []byte(s)
	if ret.Kind == TokenCompositeExportedName {
		ret.Remainder = rest[:len(rest):len(rest)]
		return ret, nil
	}

	var nameLen uint32
	if !s.ReadUint32(&nameLen) {
		return nil, badToken(offset(), "token too short for NAME_LEN")
	}

	if uint64(len(s)) != uint64(nameLen) {
		return nil, badToken(offset(), "NAME_LEN %d does not match the %d remaining bytes", nameLen, len(s))
	}

	ret.Name = []byte(s)[:len(s):len(s)]

	return ret, nil
}

// readDerLength reads a DER length from s, decrementing remaining for every byte consumed.
func readDerLength(s *cryptobyte.String, remaining *int) (int, bool) {
	var lb uint8
	if !s.ReadUint8(&lb) {
		return 0, false
	}
	*remaining--

	if lb&0x80 == 0 {
		return int(lb), true
	}

	digits := int(lb & 0x7f)
	if digits > maxDerLengthBytes {
		return 0, false
	}

	length := 0
	for ; digits > 0; digits-- {
		var b uint8
		if !s.ReadUint8(&b) {
			return 0, false
		}
		length = length<<8 | int(b)
		*remaining--
	}

	return length, true
}

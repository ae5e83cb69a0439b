// SPDX-License-Identifier: Apache-2.0

package krb5

import (
	"errors"
	"strings"

	"github.com/jcmturner/gokrb5/v8/iana/nametype"
	"github.com/jcmturner/gokrb5/v8/types"
	"golang.org/x/crypto/cryptobyte"

	gssapi "github.com/golang-auth/go-gssapi-mechglue"
)

// KRB_NT_WELLKNOWN from RFC 6111 § 3
const ntWellKnown int32 = 11

const (
	anonymousPrincipal = "WELLKNOWN/ANONYMOUS"
	anonymousRealm     = "WELLKNOWN:ANONYMOUS"
)

// Minor status codes reported by the mechanism in gssapi.MechError.
const (
	MinorMalformedName uint32 = iota + 1
	MinorWrongMech
	MinorNotKrb5Name
	MinorNameReleased
	MinorNoHostname
)

var (
	ErrMalformedName = errors.New("malformed Kerberos principal name")
	ErrWrongMech     = errors.New("exported name is not a Kerberos name")
	ErrNotKrb5Name   = errors.New("not a Kerberos name")
	ErrNameReleased  = errors.New("name has already been released")
)

// Name is the mechanism's native name: a Kerberos principal and its realm.
type Name struct {
	Principal types.PrincipalName
	Realm     string

	released bool
}

// String returns the name in the usual "component/component@REALM" form.
func (n *Name) String() string {
	s := n.Principal.PrincipalNameString()
	if n.Realm != "" {
		s += "@" + n.Realm
	}

	return s
}

// ImportName parses a name of one of the supported name types.  A nil name type is
// treated as a Kerberos principal name.
func (m *Mech) ImportName(buf []byte, nameType gssapi.Oid) (gssapi.NativeName, error) {
	nt, err := gssapi.NameTypeFromOid(nameType)
	if err != nil {
		return nil, gssapi.MakeFatalStatus(gssapi.ErrBadNameType)
	}

	var name *Name
	switch nt {
	case gssapi.GSS_NO_OID, gssapi.GSS_KRB5_NT_PRINCIPAL_NAME, gssapi.GSS_NT_USER_NAME:
		name, err = m.parsePrincipal(string(buf), nametype.KRB_NT_PRINCIPAL)
	case gssapi.GSS_KRB5_NT_ENTERPRISE_NAME:
		name, err = m.parseEnterprise(string(buf))
	case gssapi.GSS_NT_HOSTBASED_SERVICE:
		name, err = m.parseHostBased(string(buf))
	case gssapi.GSS_NT_ANONYMOUS:
		name = &Name{
			Principal: types.NewPrincipalName(ntWellKnown, anonymousPrincipal),
			Realm:     anonymousRealm,
		}
	case gssapi.GSS_NT_EXPORT_NAME, gssapi.GSS_NT_COMPOSITE_EXPORT:
		name, err = m.parseExported(buf)
	default:
		return nil, gssapi.MakeFatalStatus(gssapi.ErrBadNameType)
	}

	if err != nil {
		return nil, err
	}

	m.outstanding.Add(1)
	return name, nil
}

// ReleaseName releases a name returned by ImportName.
func (m *Mech) ReleaseName(native gssapi.NativeName) error {
	name, ok := native.(*Name)
	if !ok || name == nil {
		return m.fail(gssapi.ErrBadName, MinorNotKrb5Name, ErrNotKrb5Name)
	}

	if name.released {
		return m.fail(gssapi.ErrBadName, MinorNameReleased, ErrNameReleased)
	}

	name.released = true
	m.outstanding.Add(-1)

	return nil
}

func (m *Mech) fail(fatal error, minor uint32, err error) error {
	return gssapi.MakeFatalStatus(fatal, &gssapi.MechError{Mech: mechOid, Minor: minor, Err: err})
}

func (m *Mech) parsePrincipal(s string, ntype int32) (*Name, error) {
	if s == "" {
		return nil, m.fail(gssapi.ErrBadName, MinorMalformedName, ErrMalformedName)
	}

	pn, realm := types.ParseSPNString(s)
	for _, c := range pn.NameString {
		if c == "" {
			return nil, m.fail(gssapi.ErrBadName, MinorMalformedName, ErrMalformedName)
		}
	}
	pn.NameType = ntype

	if realm == "" {
		realm = m.defaultRealm
	}

	return &Name{Principal: pn, Realm: realm}, nil
}

// parseEnterprise parses "user@domain" or "user@domain@REALM" (RFC 6806 § 5).
func (m *Mech) parseEnterprise(s string) (*Name, error) {
	user, realm := s, m.defaultRealm
	if strings.Count(s, "@") > 1 {
		i := strings.LastIndex(s, "@")
		user = s[:i]
		if s[i+1:] != "" {
			realm = s[i+1:]
		}
	}

	if user == "" || strings.HasPrefix(user, "@") || strings.HasSuffix(user, "@") {
		return nil, m.fail(gssapi.ErrBadName, MinorMalformedName, ErrMalformedName)
	}

	return &Name{
		Principal: types.PrincipalName{NameType: nametype.KRB_NT_ENTERPRISE, NameString: []string{user}},
		Realm:     realm,
	}, nil
}

// parseHostBased parses "service@host" or "service" (RFC 2743 § 4.1).
func (m *Mech) parseHostBased(s string) (*Name, error) {
	service, host, found := strings.Cut(s, "@")
	if service == "" || (found && host == "") {
		return nil, m.fail(gssapi.ErrBadName, MinorMalformedName, ErrMalformedName)
	}

	if !found {
		h, err := m.hostname()
		if err != nil {
			return nil, m.fail(gssapi.ErrFailure, MinorNoHostname, err)
		}
		host = h
	}
	host = strings.ToLower(host)

	realm := m.defaultRealm
	if m.cfg != nil {
		// ResolveRealm falls back to the configured default when the host is not mapped
		if r := m.cfg.ResolveRealm(host); r != m.cfg.LibDefaults.DefaultRealm {
			realm = r
		}
	}

	return &Name{
		Principal: types.PrincipalName{NameType: nametype.KRB_NT_SRV_HST, NameString: []string{service, host}},
		Realm:     realm,
	}, nil
}

// parseExported parses an exported name token.  The NAME field of a simple token is the
// string form of the principal (RFC 1964 § 2.1.3).  Composite tokens carry the same
// NAME_LEN and NAME fields, followed by name attributes that are not interpreted here.
func (m *Mech) parseExported(buf []byte) (*Name, error) {
	tok, err := gssapi.ParseExportedName(buf)
	if err != nil {
		return nil, err
	}

	if wk, err := gssapi.MechFromOid(tok.Mech); err != nil || wk != gssapi.GSS_MECH_KRB5 {
		return nil, m.fail(gssapi.ErrBadName, MinorWrongMech, ErrWrongMech)
	}

	nameBytes := tok.Name
	if tok.Kind == gssapi.TokenCompositeExportedName {
		rest := cryptobyte.String(tok.Remainder)
		var n []byte
		var nameLen uint32
		if !rest.ReadUint32(&nameLen) || !rest.ReadBytes(&n, int(nameLen)) {
			return nil, m.fail(gssapi.ErrBadName, MinorMalformedName, ErrMalformedName)
		}
		nameBytes = n
	}

	return m.parsePrincipal(string(nameBytes), nametype.KRB_NT_PRINCIPAL)
}

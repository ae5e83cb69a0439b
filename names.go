// SPDX-License-Identifier: Apache-2.0

package gssapi

import "strings"

// GssNameType describes an available GSSAPI Name Type (NT) as described in
// RFC 2743 § 4.
type GssNameType interface {
	// Oid returns the object identifier corresponding to the name type.
	Oid() Oid
	// OidString returns a printable version of the object identifier associated with the name type.
	OidString() string
	// String returns a printable version of the name type.
	String() string
}

// gssNameTypeImpl is an internal type that implements the GssNameType interface for the
// well-known name types.
type gssNameTypeImpl int

// NOTE: if the order here changes also change gen-gss-oids.go!

const (
	// Host-based name form (RFC 2743 § 4.1),      "service@host" or just "service"
	GSS_NT_HOSTBASED_SERVICE gssNameTypeImpl = iota

	// User name form (RFC 2743 § 4.2),            "username" : named local user
	GSS_NT_USER_NAME

	// Machine UID form (RFC 2743 § 4.3),           Numeric user ID in host byte order
	GSS_NT_MACHINE_UID_NAME

	// Machine UID form (RFC 2743 § 4.4),           Same as GSS_NT_MACHINE_UID_NAME but as a string of digits
	GSS_NT_STRING_UID_NAME

	// Anonymous name type (RFC 2743 § 4.5),        an anonymous principal
	GSS_NT_ANONYMOUS

	// Default name type (RFC 2743 § 4.6),          Null input value, not an actual OID; indicates name based on mech-specific default syntax
	GSS_NO_OID

	// Exported name type (RFC 2743 § 4.7),         Mech-independent exported name type from RFC 2743 § 3.2
	GSS_NT_EXPORT_NAME

	// No name type (RFC 2743 § 4.8),               Indicates that no name is being passed
	GSS_NO_NAME

	// Composite name type (RFC 6680 § 8)			Exported name including name attributes
	GSS_NT_COMPOSITE_EXPORT

	// Kerberos Principal Name (RFC 1964 § 2.1.1)           Kerberos principal name with optional @REALM
	GSS_KRB5_NT_PRINCIPAL_NAME

	// Kerberos Enterprise Principal Name (RFC 8606 § 5)    Kerberos principal alias
	GSS_KRB5_NT_ENTERPRISE_NAME

	// Kerberos X.509 DER-encoded certificate               For S4U2Self (MIT Kerberos 1.19)
	GSS_KRB5_NT_X509_CERT

	_GSS_NAME_TYPE_LAST
)

func (nt gssNameTypeImpl) Oid() Oid {
	if nt < 0 || nt >= _GSS_NAME_TYPE_LAST {
		panic(ErrBadNameType)
	}

	return nameTypes[nt].oid
}

func (nt gssNameTypeImpl) OidString() string {
	if nt < 0 || nt >= _GSS_NAME_TYPE_LAST {
		panic(ErrBadNameType)
	}

	return nameTypes[nt].oidString
}

func (nt gssNameTypeImpl) String() string {
	if nt < 0 || nt >= _GSS_NAME_TYPE_LAST {
		panic(ErrBadNameType)
	}

	return nameTypes[nt].name
}

// NameTypeFromOid returns the well-known name type associated with an OID.  Alternate OIDs
// (for example the RFC 2078 host-based service OID) map to the current name type.  A nil
// OID maps to GSS_NO_OID.
//
// Returns:
//   - the corresponding name type
//   - ErrBadNameType if the OID is not recognized
func NameTypeFromOid(oid Oid) (GssNameType, error) {
	for i, nt := range nameTypes {
		if nt.oid.Equal(oid) || oidSetContains(nt.altOids, oid) {
			return gssNameTypeImpl(i), nil
		}
	}

	return nil, ErrBadNameType
}

// NameTypeFromName returns the well-known name type with the given name, such as
// "GSS_NT_HOSTBASED_SERVICE".  Matching ignores case.
func NameTypeFromName(name string) (GssNameType, error) {
	for i, nt := range nameTypes {
		if strings.EqualFold(nt.name, name) {
			return gssNameTypeImpl(i), nil
		}
	}

	return nil, ErrBadNameType
}

// nameTypeEqual reports whether a and b denote the same name type, taking well-known
// alternate OIDs into account.
func nameTypeEqual(a, b Oid) bool {
	if a.Equal(b) {
		return true
	}

	nta, err := NameTypeFromOid(a)
	if err != nil {
		return false
	}
	ntb, err := NameTypeFromOid(b)
	if err != nil {
		return false
	}

	return nta == ntb
}

// isExportedNameType reports whether oid selects the exported-name import path.
func isExportedNameType(oid Oid) bool {
	if len(oid) == 0 {
		return false
	}

	return nameTypeEqual(oid, GSS_NT_EXPORT_NAME.Oid()) || nameTypeEqual(oid, GSS_NT_COMPOSITE_EXPORT.Oid())
}

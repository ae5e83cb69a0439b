// SPDX-License-Identifier: Apache-2.0

package gssapi

//go:generate  go run ./build-tools/gen-gss-oids -mechs mechs_gen.go -names names_gen.go

// GssMech describes a well-known GSSAPI mechanism. GSSAPI mechanisms are identified by unique
// object identifiers (OIDs).  The registry does not require registered mechanisms to be
// well-known; this table is used to resolve alternate OIDs and to produce readable log output.
type GssMech interface {
	// Oid returns the object identifier corresponding to the mechanism.
	Oid() Oid
	// OidString returns a printable version of the object identifier associated with the mechanism.
	OidString() string
	// String returns a printable version of the mechanism name.
	String() string
}

// gssMechImpl is an internal type that implements the GssMech interface for the well-known mechanisms.
type gssMechImpl int

// Well known GSSAPI mechanisms.
//
// NOTE: if the order here changes also change gen-gss-oids.go!
const (
	// Official Kerberos Mechanism (IETF)
	GSS_MECH_KRB5 gssMechImpl = iota
	GSS_MECH_IAKERB
	GSS_MECH_SPNEGO
	GSS_MECH_NTLMSSP
	GSS_MECH_SPKM
	_GSS_MECH_LAST
)

func (mech gssMechImpl) Oid() Oid {
	if mech < 0 || mech >= _GSS_MECH_LAST {
		panic(ErrBadMech)
	}

	return mechs[mech].oid
}

func (mech gssMechImpl) OidString() string {
	if mech < 0 || mech >= _GSS_MECH_LAST {
		panic(ErrBadMech)
	}

	return mechs[mech].oidString
}

func (mech gssMechImpl) String() string {
	if mech < 0 || mech >= _GSS_MECH_LAST {
		panic(ErrBadMech)
	}

	return mechs[mech].mech
}

// MechFromOid returns the well-known mechanism identified by oid.  Both the primary OID and
// any historical alternates (such as the OID shipped with Windows 2000 for Kerberos) are matched.
//
// Returns:
//   - the corresponding mechanism
//   - ErrBadMech if the OID is not recognized
func MechFromOid(oid Oid) (GssMech, error) {
	for i, mech := range mechs {
		if mech.oid.Equal(oid) || oidSetContains(mech.altOids, oid) {
			return gssMechImpl(i), nil
		}
	}

	return nil, ErrBadMech
}

// mechDisplayName returns a readable name for a mechanism OID, for use in log output.
func mechDisplayName(oid Oid) string {
	if m, err := MechFromOid(oid); err == nil {
		return m.String()
	}

	return oid.String()
}

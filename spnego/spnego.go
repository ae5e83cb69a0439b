// SPDX-License-Identifier: Apache-2.0

// Package spnego registers a name importer for the SPNEGO pseudo-mechanism (RFC 4178).
//
// SPNEGO has no names of its own: a name for SPNEGO is the glue layer's generic name, which
// already holds a name for each real mechanism that could negotiate.  The mechanism is
// therefore flagged with gssapi.MechUsesGenericNames and is never asked to import names
// during the registry's fan-out.
package spnego

import (
	"errors"

	gssapi "github.com/golang-auth/go-gssapi-mechglue"
)

func init() {
	gssapi.RegisterMechanism(func() (gssapi.Mechanism, error) {
		return New(gssapi.DefaultRegistry), nil
	})
}

var errNotGenericName = errors.New("not a SPNEGO name")

var nameTypes = []gssapi.Oid{
	gssapi.GSS_NT_HOSTBASED_SERVICE.Oid(),
	gssapi.GSS_NT_USER_NAME.Oid(),
	gssapi.GSS_NT_ANONYMOUS.Oid(),
}

// Mech is the SPNEGO name importer.  Names are imported through the registry that holds
// the real mechanisms.
type Mech struct {
	registry *gssapi.Registry
}

// New returns a SPNEGO mechanism that imports names through r.
func New(r *gssapi.Registry) *Mech {
	return &Mech{registry: r}
}

func (m *Mech) Oid() gssapi.Oid {
	return gssapi.GSS_MECH_SPNEGO.Oid()
}

func (m *Mech) Flags() gssapi.MechFlag {
	return gssapi.MechUsesGenericNames
}

func (m *Mech) NameTypes() []gssapi.Oid {
	return nameTypes
}

// ImportName returns a generic name imported through the registry.  SPNEGO has no exported
// name form, so exported name tokens are rejected.
func (m *Mech) ImportName(buf []byte, nameType gssapi.Oid) (gssapi.NativeName, error) {
	nt, err := gssapi.NameTypeFromOid(nameType)
	if err != nil || nt == gssapi.GSS_NT_EXPORT_NAME || nt == gssapi.GSS_NT_COMPOSITE_EXPORT {
		return nil, gssapi.MakeFatalStatus(gssapi.ErrBadNameType)
	}

	return m.registry.ImportName(buf, nameType)
}

func (m *Mech) ReleaseName(native gssapi.NativeName) error {
	name, ok := native.(*gssapi.GenericName)
	if !ok {
		return gssapi.MakeFatalStatus(gssapi.ErrBadName, &gssapi.MechError{Mech: m.Oid(), Err: errNotGenericName})
	}

	return name.Release()
}

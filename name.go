// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"bytes"
	"errors"
	"fmt"
)

// MechanismName binds a name to one mechanism's native representation.  It belongs to
// exactly one GenericName and is released with it.
type MechanismName struct {
	mech   NameImporter
	native NativeName
}

// Mech returns the mechanism that owns the native name.
func (mn *MechanismName) Mech() Mechanism {
	return mn.mech
}

// MechOid returns the OID of the mechanism that owns the native name.
func (mn *MechanismName) MechOid() Oid {
	return mn.mech.Oid()
}

// Native returns the mechanism's native name.  It remains owned by the GenericName and
// must not be released directly.
func (mn *MechanismName) Native() NativeName {
	return mn.native
}

// GenericName is the glue layer's internal name (an RFC 2743 INTERNAL NAME).  It keeps the
// name type and a copy of the imported buffer, and the names produced by each mechanism
// that could import it.
//
// A GenericName is not safe for concurrent use while it is being released.
type GenericName struct {
	nameType  Oid
	value     []byte
	mechNames []*MechanismName
	mechName  bool
	released  bool
}

func newGenericName(nameType Oid, value []byte) *GenericName {
	return &GenericName{
		nameType: nameType.Clone(),
		value:    bytes.Clone(value),
	}
}

// NameType returns the name type supplied at import, or nil if none was.
func (n *GenericName) NameType() Oid {
	return n.nameType
}

// Value returns the copy of the imported buffer.  The returned slice must not be modified.
func (n *GenericName) Value() []byte {
	return n.value
}

// IsMechName reports whether the name is a mechanism name (MN), i.e. it was imported from
// an exported name token and is bound to exactly one mechanism.
func (n *GenericName) IsMechName() bool {
	return n.mechName
}

// MechNames returns the mechanism names in the order the mechanisms were consulted.
func (n *GenericName) MechNames() []*MechanismName {
	ret := make([]*MechanismName, len(n.mechNames))
	copy(ret, n.mechNames)

	return ret
}

// MechNameFor returns the mechanism name belonging to the mechanism identified by oid.
func (n *GenericName) MechNameFor(oid Oid) (*MechanismName, bool) {
	for _, mn := range n.mechNames {
		if mn.mech.Oid().Equal(oid) {
			return mn, true
		}
	}

	return nil, false
}

func (n *GenericName) attach(mech NameImporter, native NativeName) *MechanismName {
	mn := &MechanismName{mech: mech, native: native}
	n.mechNames = append(n.mechNames, mn)

	return mn
}

// Release releases every mechanism name through its mechanism and then the name itself,
// corresponding to GSS_Release_name from RFC 2743 § 2.4.6.  Every mechanism name is
// released even if some mechanisms report errors; those errors are joined in the result.
// Releasing a name a second time does nothing.
func (n *GenericName) Release() error {
	if n == nil || n.released {
		return nil
	}

	var errs []error
	for _, mn := range n.mechNames {
		if err := mn.mech.ReleaseName(mn.native); err != nil {
			errs = append(errs, fmt.Errorf("releasing %s name: %w", mechDisplayName(mn.mech.Oid()), err))
		}
		mn.native = nil
	}

	n.mechNames = nil
	n.value = nil
	n.nameType = nil
	n.released = true

	return errors.Join(errs...)
}

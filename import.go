// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"errors"
)

// ImportName imports a name using the default registry.  See Registry.ImportName.
func ImportName(buf []byte, nameType Oid) (*GenericName, error) {
	return DefaultRegistry.ImportName(buf, nameType)
}

// ImportNameString imports a string name of one of the well-known name types using the
// default registry.
func ImportNameString(name string, nameType GssNameType) (*GenericName, error) {
	return DefaultRegistry.ImportName([]byte(name), nameType.Oid())
}

// ImportName implements GSS_Import_name from RFC 2743 § 2.4.5.
//
// Exported name tokens (GSS_NT_EXPORT_NAME and GSS_NT_COMPOSITE_EXPORT) are routed to the
// mechanism named in the token, which must import it; the result is a mechanism name.
//
// Any other name type, including none (a nil OID), is offered to every registered mechanism
// that supports the type.  The import succeeds if at least one mechanism accepts the name;
// mechanisms that reject it are skipped.  An empty buffer is passed to the mechanisms like
// any other.
//
// Parameters:
//   - buf: the name to import; it is copied and may be reused by the caller
//   - nameType: the name type OID, or nil for the mechanism-specific default syntax
//
// Returns:
//   - name: the imported name, which must be released with GenericName.Release()
//   - err: a FatalStatus if the name could not be imported
func (r *Registry) ImportName(buf []byte, nameType Oid) (name *GenericName, err error) {
	if err := r.load(); err != nil {
		return nil, MakeFatalStatus(ErrFailure, err)
	}

	if isExportedNameType(nameType) {
		return r.importExportedName(buf, nameType)
	}

	return r.importGenericName(buf, nameType)
}

// importExportedName imports an exported name token into the mechanism that the token names.
func (r *Registry) importExportedName(buf []byte, nameType Oid) (*GenericName, error) {
	tok, err := ParseExportedName(buf)
	if err != nil {
		return nil, err
	}

	m, err := r.LookupByOid(tok.Mech)
	if err != nil {
		r.log().Debug("exported name token for unknown mechanism", "mech", tok.Mech.String())
		return nil, err
	}

	imp, ok := m.(NameImporter)
	if !ok {
		r.log().Debug("mechanism cannot import names", "mech", mechDisplayName(m.Oid()))
		return nil, MakeFatalStatus(ErrBadMech)
	}

	// the mechanism validates the whole token again
	native, err := imp.ImportName(tok.Token, nameType)
	if err != nil {
		r.log().Debug("mechanism failed to import exported name", "mech", mechDisplayName(imp.Oid()), "error", err)
		return nil, mechStatus(imp, err)
	}

	name := newGenericName(nameType, buf)
	name.attach(imp, native)
	name.mechName = true

	return name, nil
}

// importGenericName offers the name to every eligible mechanism.
func (r *Registry) importGenericName(buf []byte, nameType Oid) (*GenericName, error) {
	name := newGenericName(nameType, buf)

	imported, discarded := r.fanOut(name.value, name.nameType)
	for _, mn := range imported {
		name.attach(mn.mech, mn.native)
	}

	if len(name.mechNames) == 0 {
		r.log().Debug("no mechanism could import the name", "name_type", name.nameType.String(), "failures", len(discarded))
		_ = name.Release()
		return nil, MakeFatalStatus(ErrNameNotMn)
	}

	return name, nil
}

// fanOut asks each eligible mechanism, in registration order, to import buf.  It returns the
// names that were imported and the errors from the mechanisms that refused.
func (r *Registry) fanOut(buf []byte, nameType Oid) (imported []MechanismName, discarded []error) {
	for _, m := range r.mechs {
		oid := m.Oid()

		if m.Flags()&MechUsesGenericNames != 0 {
			continue
		}

		imp, ok := m.(NameImporter)
		if !ok {
			continue
		}

		if len(nameType) > 0 && !supportsNameType(m, nameType) {
			continue
		}

		native, err := imp.ImportName(buf, nameType)
		if err != nil {
			r.log().Debug("mechanism failed to import name", "mech", mechDisplayName(oid), "error", err)
			discarded = append(discarded, mechStatus(imp, err))
			continue
		}

		imported = append(imported, MechanismName{mech: imp, native: native})
	}

	return imported, discarded
}

func supportsNameType(m Mechanism, nameType Oid) bool {
	for _, nt := range m.NameTypes() {
		if nameTypeEqual(nt, nameType) {
			return true
		}
	}

	return false
}

// mechStatus returns a mechanism's error as a FatalStatus.  Errors that already are a
// status are returned unchanged.
func mechStatus(m Mechanism, err error) error {
	var fs FatalStatus
	if errors.As(err, &fs) {
		return err
	}

	var me *MechError
	if errors.As(err, &me) {
		return MakeFatalStatus(ErrFailure, err)
	}

	return MakeFatalStatus(ErrFailure, &MechError{Mech: m.Oid(), Err: err})
}

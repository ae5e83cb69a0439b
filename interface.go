// SPDX-License-Identifier: Apache-2.0

package gssapi

// NativeName is a mechanism's own representation of a name.  The glue layer never looks
// inside it; it is only ever handed back to the mechanism that produced it.
type NativeName any

// Mechanism is the descriptor every registered mechanism provides.
type Mechanism interface {
	// Oid returns the mechanism's object identifier.
	Oid() Oid
	// Flags returns the mechanism's behavioural flags.
	Flags() MechFlag
	// NameTypes returns the name types the mechanism can import (GSS_Inquire_names_for_mech).
	NameTypes() []Oid
}

// NameImporter is implemented by mechanisms that can import names.  A registered mechanism
// that does not implement it cannot be the target of an exported name token and is never
// asked to import a generic name.
type NameImporter interface {
	Mechanism

	// ImportName converts buf, whose syntax is given by nameType, to the mechanism's native
	// name form.  nameType may be nil when the caller did not specify one.  For exported
	// name tokens buf is the complete token.
	ImportName(buf []byte, nameType Oid) (NativeName, error)

	// ReleaseName releases a native name previously returned by ImportName.
	ReleaseName(name NativeName) error
}

// MechanismConstructor creates a mechanism instance when the registry is first loaded.
type MechanismConstructor func() (Mechanism, error)

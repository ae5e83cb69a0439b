// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"fmt"
)

// MechError carries a mechanism-specific diagnostic.  Minor is the mechanism's minor status
// code; it has no meaning outside the mechanism identified by Mech.
type MechError struct {
	Mech  Oid
	Minor uint32
	Err   error
}

func (e *MechError) Error() string {
	msg := "mechanism error"
	if e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Minor != 0 {
		return fmt.Sprintf("%s: %s (minor %d)", mechDisplayName(e.Mech), msg, e.Minor)
	}

	return fmt.Sprintf("%s: %s", mechDisplayName(e.Mech), msg)
}

func (e *MechError) Unwrap() error {
	return e.Err
}

// TokenError describes why an exported name token was rejected.  It is reported as a
// mechanism error of a FatalStatus with the ErrBadName code.
type TokenError struct {
	Offset int    // byte offset into the token where the problem was found
	Reason string // what was wrong
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("exported name token: %s at offset %d", e.Reason, e.Offset)
}

func badToken(offset int, format string, args ...any) FatalStatus {
	return MakeFatalStatus(ErrBadName, &TokenError{Offset: offset, Reason: fmt.Sprintf(format, args...)})
}

// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"errors"
	"strings"
)

// FatalStatus represents fatal error status codes returned when a function fails, along with
// any mechanism-specific errors (the minor status of RFC 2743 § 1.2.1).
//
// The Go bindings use Go's standard error interface instead of the major and minor status codes
// specified in RFC 2743 § 1.2.1.  The numeric codes remain available through Major and Minor
// for callers that have to report them.
type FatalStatus struct {
	FatalErrorCode FatalErrorCode // The fatal error code
	MechErrors     []error        // Mechanism-specific errors
}

// FatalErrorCode represents fatal error codes. Values of runtime error codes are the same as
// the C bindings for compatibility. See RFC 2744 § 3.9.1.
type FatalErrorCode uint32

// The routine errors that name import reports, numbered as in RFC 2744 § 3.9.1.
const (
	complete       FatalErrorCode = 0
	errBadMech     FatalErrorCode = 1
	errBadName     FatalErrorCode = 2
	errBadNameType FatalErrorCode = 3
	errBadStatus   FatalErrorCode = 5
	errFailure     FatalErrorCode = 13
	errNameNotMn   FatalErrorCode = 18
)

// routineErrorOffset is the bit position of the routine error field in an RFC 2744 major status.
const routineErrorOffset = 16

// Fatal error variables that correspond to the fatal error codes defined by RFC 2743.
// These variables implement the error interface and can be used with Go's standard error handling.

var ErrBadMech = errors.New("an unsupported mechanism was requested")
var ErrBadName = errors.New("an invalid name was supplied")
var ErrBadNameType = errors.New("a supplied name was of an unsupported type")
var ErrBadStatus = errors.New("an invalid status code was supplied")
var ErrFailure = errors.New("unspecified GSS failure.  Minor code may provide more information")
var ErrNameNotMn = errors.New("no mechanism could import the name")

var fatalCodes = []struct {
	err  error
	code FatalErrorCode
}{
	{ErrBadMech, errBadMech},
	{ErrBadName, errBadName},
	{ErrBadNameType, errBadNameType},
	{ErrBadStatus, errBadStatus},
	{ErrFailure, errFailure},
	{ErrNameNotMn, errNameNotMn},
}

// MakeFatalStatus builds a FatalStatus for one of the fatal error variables (ErrBadName,
// ErrBadMech, ...), attaching any mechanism-specific errors.  Mechanism implementations use
// it to report failures from ImportName.  An unrecognized fatal error is reported as
// ErrFailure with the error appended to the mechanism errors.
func MakeFatalStatus(fatal error, mechErrs ...error) FatalStatus {
	code := complete
	for _, fc := range fatalCodes {
		if fc.err == fatal {
			code = fc.code
			break
		}
	}

	if code == complete {
		code = errFailure
		if fatal != nil {
			mechErrs = append([]error{fatal}, mechErrs...)
		}
	}

	s := FatalStatus{FatalErrorCode: code}
	if len(mechErrs) > 0 {
		s.MechErrors = mechErrs
	}

	return s
}

func (s FatalStatus) Fatal() error {
	switch s.FatalErrorCode {
	default:
		return ErrBadStatus
	case errBadMech:
		return ErrBadMech
	case errBadName:
		return ErrBadName
	case errBadNameType:
		return ErrBadNameType
	case errBadStatus:
		return ErrBadStatus
	case errFailure:
		return ErrFailure
	case errNameNotMn:
		return ErrNameNotMn
	}
}

// Major returns the RFC 2744 major status word, with the routine error in bits 16-23.
// Name import never sets supplementary information bits.
func (s FatalStatus) Major() uint32 {
	return uint32(s.FatalErrorCode) << routineErrorOffset
}

// Minor returns the mechanism-specific minor status of the first mechanism error that
// carries one, or zero.
func (s FatalStatus) Minor() uint32 {
	for _, e := range s.MechErrors {
		var me *MechError
		if errors.As(e, &me) && me.Minor != 0 {
			return me.Minor
		}
	}

	return 0
}

// Unwrap returns the fatal error variable and the mechanism errors, so that errors.Is and
// errors.As see all of them.
func (s FatalStatus) Unwrap() []error {
	ret := []error{}

	if s.FatalErrorCode != complete {
		ret = append(ret, s.Fatal())
	}

	ret = append(ret, s.MechErrors...)

	return ret
}

func (s FatalStatus) Error() string {
	var parts []string

	if s.FatalErrorCode != complete {
		fatal := s.Fatal()
		// only include the spiel about maybe the minor code being helpful if we do
		// actually have a mech error
		if !(fatal == ErrFailure && len(s.MechErrors) > 0) {
			parts = append(parts, fatal.Error())
		}
	}

	if s.MechErrors != nil {
		mechStrs := make([]string, len(s.MechErrors))
		for i, e := range s.MechErrors {
			mechStrs[i] = e.Error()
		}
		parts = append(parts, strings.Join(mechStrs, "; "))
	}

	return strings.Join(parts, ".  ")
}

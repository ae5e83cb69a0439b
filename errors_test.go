// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMechErrorString(t *testing.T) {
	assert := assert.New(t)

	e := &MechError{Mech: GSS_MECH_KRB5.Oid(), Minor: 5, Err: errors.New("bad principal")}
	assert.Equal("GSS_MECH_KRB5: bad principal (minor 5)", e.Error())

	e = &MechError{Mech: Oid{0x2b, 0x06, 0x01, 0x04, 0x01, 0x09}}
	assert.Equal("1.3.6.1.4.1.9: mechanism error", e.Error())
}

func TestMechErrorUnwrap(t *testing.T) {
	inner := errors.New("TEST")
	var err error = &MechError{Mech: GSS_MECH_KRB5.Oid(), Err: inner}

	assert.ErrorIs(t, err, inner)
}

func TestTokenError(t *testing.T) {
	assert := assert.New(t)

	err := badToken(4, "expected tag 0x%02x", 0x06)
	assert.ErrorIs(err, ErrBadName)
	assert.Contains(err.Error(), "expected tag 0x06 at offset 4")

	var te *TokenError
	assert.ErrorAs(err, &te)
	assert.Equal(4, te.Offset)
}

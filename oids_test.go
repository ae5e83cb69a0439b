// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOidString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1.2.840.113554.1.2.2", Oid(testKrb5Oid).String())
	assert.Equal("2.999.3", Oid{0x88, 0x37, 0x03}.String())
	assert.Equal("", Oid(nil).String())

	// non-minimal encoding
	assert.Equal("?8001", Oid{0x80, 0x01}.String())
}

func TestOidFromString(t *testing.T) {
	assert := NewAssert(t)

	oid, err := OidFromString("1.2.840.113554.1.2.2")
	assert.NoErrorFatal(err)
	assert.Equal(Oid(testKrb5Oid), oid)

	oid, err = OidFromString("2.999.3")
	assert.NoErrorFatal(err)
	assert.Equal(Oid{0x88, 0x37, 0x03}, oid)

	for _, s := range []string{"", "1", "1.2.x", "1.-2", "1..2"} {
		_, err = OidFromString(s)
		assert.Error(err, s)
	}
}

func TestOidEqualClone(t *testing.T) {
	assert := assert.New(t)

	oid := Oid(testKrb5Oid)
	clone := oid.Clone()
	assert.True(oid.Equal(clone))

	clone[0] = 0xff
	assert.False(oid.Equal(clone))
	assert.Equal(byte(0x2a), oid[0])

	assert.Nil(Oid{}.Clone())
	assert.True(Oid(nil).Equal(Oid{}))
}

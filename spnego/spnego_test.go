// SPDX-License-Identifier: Apache-2.0

package spnego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gssapi "github.com/golang-auth/go-gssapi-mechglue"
	"github.com/golang-auth/go-gssapi-mechglue/krb5"
)

func newRegistry() (*gssapi.Registry, *krb5.Mech) {
	krb := krb5.New(krb5.WithDefaultRealm("EXAMPLE.COM"))

	var r *gssapi.Registry
	r = gssapi.NewRegistry(
		gssapi.WithMechanismConstructors(func() (gssapi.Mechanism, error) { return New(r), nil }),
		gssapi.WithMechanisms(krb),
	)

	return r, krb
}

func TestDescriptor(t *testing.T) {
	assert := assert.New(t)

	m := New(nil)
	assert.Equal(gssapi.GSS_MECH_SPNEGO.Oid(), m.Oid())
	assert.Equal(gssapi.MechUsesGenericNames, m.Flags())
	assert.Contains(m.NameTypes(), gssapi.GSS_NT_HOSTBASED_SERVICE.Oid())
}

func TestFanOutSkipsSpnego(t *testing.T) {
	assert := assert.New(t)

	r, krb := newRegistry()

	name, err := r.ImportName([]byte("HTTP@www.example.com"), gssapi.GSS_NT_HOSTBASED_SERVICE.Oid())
	require.NoError(t, err)

	mns := name.MechNames()
	require.Len(t, mns, 1)
	assert.Equal(gssapi.GSS_MECH_KRB5.Oid(), mns[0].MechOid())

	_, ok := name.MechNameFor(gssapi.GSS_MECH_SPNEGO.Oid())
	assert.False(ok)

	assert.NoError(name.Release())
	assert.Equal(int64(0), krb.Outstanding())
}

func TestImportName(t *testing.T) {
	assert := assert.New(t)

	r, krb := newRegistry()
	mech, err := r.LookupByOid(gssapi.GSS_MECH_SPNEGO.Oid())
	require.NoError(t, err)
	m := mech.(*Mech)

	native, err := m.ImportName([]byte("alice"), gssapi.GSS_NT_USER_NAME.Oid())
	require.NoError(t, err)

	name := native.(*gssapi.GenericName)
	_, ok := name.MechNameFor(gssapi.GSS_MECH_KRB5.Oid())
	assert.True(ok)
	assert.Equal(int64(1), krb.Outstanding())

	assert.NoError(m.ReleaseName(native))
	assert.Equal(int64(0), krb.Outstanding())

	assert.Error(m.ReleaseName("alice"))
}

func TestImportNameRejectsExportedNames(t *testing.T) {
	r, _ := newRegistry()
	m := New(r)

	_, err := m.ImportName([]byte{0x04, 0x01}, gssapi.GSS_NT_EXPORT_NAME.Oid())
	assert.ErrorIs(t, err, gssapi.ErrBadNameType)

	_, err = m.ImportName([]byte{0x04, 0x02}, gssapi.GSS_NT_COMPOSITE_EXPORT.Oid())
	assert.ErrorIs(t, err, gssapi.ErrBadNameType)

	_, err = m.ImportName([]byte("x"), gssapi.Oid{0x2b, 0x06, 0x01, 0x04, 0x01, 0x09})
	assert.ErrorIs(t, err, gssapi.ErrBadNameType)
}

func TestDelegatedExportedNameToken(t *testing.T) {
	r, _ := newRegistry()

	// 04 01, T = 8, SPNEGO OID, NAME_LEN 1, "z"
	tok := []byte{0x04, 0x01, 0x00, 0x08, 0x06, 0x06, 0x2b, 0x06, 0x01, 0x05, 0x05, 0x02, 0x00, 0x00, 0x00, 0x01, 'z'}

	_, err := r.ImportName(tok, gssapi.GSS_NT_EXPORT_NAME.Oid())
	assert.ErrorIs(t, err, gssapi.ErrBadNameType)
}

// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryOrder(t *testing.T) {
	assert := NewAssert(t)

	a, b, c := newMockMech(testOidA), newMockMech(testOidB), newMockMech(testOidC)
	r := NewRegistry(WithMechanisms(a, b))
	r.RegisterMechanism(func() (Mechanism, error) { return c, nil })

	mechs, err := r.Mechanisms()
	assert.NoErrorFatal(err)
	assert.Equal([]Mechanism{a, b, c}, mechs)

	oids, err := r.IndicateMechs()
	assert.NoErrorFatal(err)
	assert.Equal([]Oid{testOidA, testOidB, testOidC}, oids)

	// the result does not alias the registry
	oids[0][0] = 0xff
	mechs[0] = nil
	assert.Equal(byte(0x2b), a.Oid()[0])
	mechs, _ = r.Mechanisms()
	assert.Same(a, mechs[0])
}

func TestRegistryWithMechanismsKeepsEach(t *testing.T) {
	assert := NewAssert(t)

	a, b, c := newMockMech(testOidA), newMockMech(testOidB), newMockMech(testOidC)
	r := NewRegistry(WithMechanisms(a, b, c))

	mechs, err := r.Mechanisms()
	assert.NoErrorFatal(err)
	assert.Len(mechs, 3)
	assert.Same(a, mechs[0])
	assert.Same(b, mechs[1])
	assert.Same(c, mechs[2])
}

func TestRegistryLoadsOnce(t *testing.T) {
	assert := NewAssert(t)

	var calls int
	var mu sync.Mutex
	r := NewRegistry(WithMechanismConstructors(func() (Mechanism, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return newMockMech(testOidA), nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Mechanisms()
			assert.NoError(err)
		}()
	}
	wg.Wait()

	assert.Equal(1, calls)
}

func TestRegistryLateRegistration(t *testing.T) {
	assert := NewAssert(t)

	r := NewRegistry()
	_, err := r.Mechanisms()
	assert.NoErrorFatal(err)

	assert.Panics(func() {
		r.RegisterMechanism(func() (Mechanism, error) { return newMockMech(testOidA), nil })
	})
}

func TestRegistryLoadError(t *testing.T) {
	assert := assert.New(t)

	loadErr := errors.New("no plugin")
	later := newMockMech(testOidB)
	var laterCalled bool

	r := NewRegistry(
		WithMechanisms(newMockMech(testOidA)),
		WithMechanismConstructors(
			func() (Mechanism, error) { return nil, loadErr },
			func() (Mechanism, error) { laterCalled = true; return later, nil },
		),
	)

	for i := 0; i < 2; i++ {
		_, err := r.Mechanisms()
		assert.ErrorIs(err, ErrFailure)
		assert.ErrorIs(err, loadErr)

		_, err = r.LookupByOid(testOidA)
		assert.ErrorIs(err, ErrFailure)

		_, err = r.ImportName([]byte("x"), nil)
		assert.ErrorIs(err, ErrFailure)
		assert.ErrorIs(err, loadErr)
	}

	assert.False(laterCalled)
}

func TestRegistryNilMechanism(t *testing.T) {
	r := NewRegistry(WithMechanismConstructors(func() (Mechanism, error) { return nil, nil }))

	_, err := r.IndicateMechs()
	assert.ErrorIs(t, err, ErrFailure)
}

func TestRegistryDuplicate(t *testing.T) {
	assert := NewAssert(t)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	first, second := newMockMech(testOidA), newMockMech(testOidA)
	r := NewRegistry(WithLogger(logger), WithMechanisms(first, second))

	mechs, err := r.Mechanisms()
	assert.NoErrorFatal(err)
	assert.Equal([]Mechanism{first}, mechs)
	assert.Contains(logs.String(), "ignoring duplicate mechanism")
	assert.Contains(logs.String(), "mech=1.3.6.1.4.1.9.1")
}

func TestRegistryLookupByOid(t *testing.T) {
	assert := NewAssert(t)

	windowsKrb5, err := OidFromString("1.2.840.48018.1.2.2")
	assert.NoErrorFatal(err)

	krb := newMockMech(GSS_MECH_KRB5.Oid())
	a := newMockMech(testOidA)
	r := NewRegistry(WithMechanisms(a, krb))

	m, err := r.LookupByOid(testOidA)
	assert.NoErrorFatal(err)
	assert.Same(a, m)

	m, err = r.LookupByOid(windowsKrb5)
	assert.NoErrorFatal(err)
	assert.Same(krb, m)

	_, err = r.LookupByOid(testOidC)
	assert.ErrorIs(err, ErrBadMech)

	_, err = r.LookupByOid(GSS_MECH_SPNEGO.Oid())
	assert.ErrorIs(err, ErrBadMech)

	// a mechanism registered under an alternate OID is found by the primary one
	alt := newMockMech(windowsKrb5)
	r = NewRegistry(WithMechanisms(alt))
	m, err = r.LookupByOid(GSS_MECH_KRB5.Oid())
	assert.NoErrorFatal(err)
	assert.Same(alt, m)
}

func TestRegistryInquireNamesForMech(t *testing.T) {
	assert := NewAssert(t)

	a := newMockMech(testOidA, GSS_NT_USER_NAME, GSS_NT_HOSTBASED_SERVICE)
	r := NewRegistry(WithMechanisms(a))

	nts, err := r.InquireNamesForMech(testOidA)
	assert.NoErrorFatal(err)
	assert.Equal([]Oid{GSS_NT_USER_NAME.Oid(), GSS_NT_HOSTBASED_SERVICE.Oid()}, nts)

	_, err = r.InquireNamesForMech(testOidB)
	assert.ErrorIs(err, ErrBadMech)
}

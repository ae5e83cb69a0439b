// SPDX-License-Identifier: Apache-2.0

package gssapi

// OIDs under 1.3.6.1.4.1.9 for mechanisms that exist only in the tests
var (
	testOidA = Oid{0x2b, 0x06, 0x01, 0x04, 0x01, 0x09, 0x01}
	testOidB = Oid{0x2b, 0x06, 0x01, 0x04, 0x01, 0x09, 0x02}
	testOidC = Oid{0x2b, 0x06, 0x01, 0x04, 0x01, 0x09, 0x03}
)

type mockName struct {
	mech  *mockMech
	value string
}

// mockMech is a name importer that records how it was called.
type mockMech struct {
	oid        Oid
	flags      MechFlag
	nameTypes  []Oid
	importErr  error
	releaseErr error

	imports  int // calls to ImportName
	issued   int // names returned by ImportName
	releases int
	lastBuf  []byte
	lastType Oid
}

func newMockMech(oid Oid, nameTypes ...GssNameType) *mockMech {
	m := &mockMech{oid: oid}
	for _, nt := range nameTypes {
		m.nameTypes = append(m.nameTypes, nt.Oid())
	}

	return m
}

func (m *mockMech) Oid() Oid         { return m.oid }
func (m *mockMech) Flags() MechFlag  { return m.flags }
func (m *mockMech) NameTypes() []Oid { return m.nameTypes }
func (m *mockMech) outstanding() int { return m.issued - m.releases }

func (m *mockMech) ImportName(buf []byte, nameType Oid) (NativeName, error) {
	m.imports++
	m.lastBuf = buf
	m.lastType = nameType

	if m.importErr != nil {
		return nil, m.importErr
	}

	m.issued++
	return &mockName{mech: m, value: string(buf)}, nil
}

func (m *mockMech) ReleaseName(name NativeName) error {
	m.releases++

	return m.releaseErr
}

// mockDescriptor is a mechanism that cannot import names.
type mockDescriptor struct {
	oid Oid
}

func (m *mockDescriptor) Oid() Oid         { return m.oid }
func (m *mockDescriptor) Flags() MechFlag  { return 0 }
func (m *mockDescriptor) NameTypes() []Oid { return nil }

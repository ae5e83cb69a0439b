// SPDX-License-Identifier: Apache-2.0

// gen-gss-oids writes the tables of well-known mechanism and name type OIDs.
package main

import (
	"encoding/asn1"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

type oidEntry struct {
	name    string
	oid     string
	altOids []string
}

// ORDER MATTERS - must be the same as mechs.go!
var mechOids = []oidEntry{
	// the alternate OIDs are the old (pre RFC) OID and incorrect OID shipped with Windows 2000
	// (see https://learn.microsoft.com/en-us/openspecs/windows_protocols/ms-spng/211417c4-11ef-46c0-a8fb-f178a51c2088)
	{"GSS_MECH_KRB5", "1.2.840.113554.1.2.2", []string{"1.3.6.1.5.2", "1.2.840.48018.1.2.2"}},
	{"GSS_MECH_IAKERB", "1.3.6.1.5.2.5", nil},
	{"GSS_MECH_SPNEGO", "1.3.6.1.5.5.2", nil},
	{"GSS_MECH_NTLMSSP", "1.3.6.1.4.1.311.2.2.10", nil},
	{"GSS_MECH_SPKM", "1.3.6.1.5.5.1.1", nil},
}

// ORDER MATTERS - must be the same as names.go!
var nameOids = []oidEntry{
	{"GSS_NT_HOSTBASED_SERVICE", "1.2.840.113554.1.2.1.4", []string{"1.3.6.1.5.6.2"}},
	{"GSS_NT_USER_NAME", "1.2.840.113554.1.2.1.1", nil},
	{"GSS_NT_MACHINE_UID_NAME", "1.2.840.113554.1.2.1.2", nil},
	{"GSS_NT_STRING_UID_NAME", "1.2.840.113554.1.2.1.3", nil},
	{"GSS_NT_ANONYMOUS", "1.3.6.1.5.6.3", nil},
	{"GSS_NO_OID", "", nil},
	{"GSS_NT_EXPORT_NAME", "1.3.6.1.5.6.4", nil},
	{"GSS_NO_NAME", "", nil},
	{"GSS_NT_COMPOSITE_EXPORT", "1.3.6.1.5.6.6", nil},
	{"GSS_KRB5_NT_PRINCIPAL_NAME", "1.2.840.113554.1.2.2.1", nil},
	{"GSS_KRB5_NT_ENTERPRISE_NAME", "1.2.840.113554.1.2.2.6", nil},
	{"GSS_KRB5_NT_X509_CERT", "1.2.840.113554.1.2.2.7", nil},
}

var codeTemplate = `// SPDX-License-Identifier: Apache-2.0

package gssapi

// GENERATED CODE: DO NOT EDIT

var {{.Var}} = []struct {
	id        {{.IdType}}
	{{.NameField}}      string
	oidString string
	oid       Oid
	altOids   []Oid
}{
	
{{range .Entries}}
	// {{.Oid.S}}
	{ {{.Name}},
		"{{.Name}}",
		"{{.Oid.S}}",
		{{ $length := len .Oid.B }} {{- if gt $length 0}}[]byte{ {{bytesFormat .Oid.B}} } {{- else}}nil{{- end}},
		[]Oid{ {{- range .AltOids}}
		   { {{- bytesFormat .B}} }, // {{ .S }}
		 {{ end}} }},
{{end}}
}

`

type oid struct {
	S string
	B []byte
}

type tmplEntry struct {
	Name    string
	Oid     oid
	AltOids []oid
}

type tmplParam struct {
	Var       string
	IdType    string
	NameField string
	Entries   []tmplEntry
}

func main() {
	mechsOut := pflag.String("mechs", "", "output file for the mechanism table")
	namesOut := pflag.String("names", "", "output file for the name type table")
	pflag.Parse()

	t := template.Must(template.New("code").Funcs(template.FuncMap{
		"bytesFormat": bytesFormat,
	}).Parse(codeTemplate))

	tables := []struct {
		out   string
		param tmplParam
	}{
		{*mechsOut, tmplParam{Var: "mechs", IdType: "gssMechImpl", NameField: "mech", Entries: makeEntries(mechOids)}},
		{*namesOut, tmplParam{Var: "nameTypes", IdType: "gssNameTypeImpl", NameField: "name", Entries: makeEntries(nameOids)}},
	}

	for _, tbl := range tables {
		if err := write(t, tbl.out, tbl.param); err != nil {
			log.Fatal(err)
		}
	}
}

// write renders one table to path, or to stdout if path is empty.
func write(t *template.Template, path string, param tmplParam) error {
	var fh io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		fh = f
	}

	return t.Execute(fh, param)
}

func makeEntries(table []oidEntry) []tmplEntry {
	entries := make([]tmplEntry, len(table))

	for i, entry := range table {
		entries[i] = tmplEntry{
			Name: entry.name,
			Oid:  oid{S: entry.oid, B: encode(entry.oid)},
		}

		for _, alt := range entry.altOids {
			entries[i].AltOids = append(entries[i].AltOids, oid{S: alt, B: encode(alt)})
		}
	}

	return entries
}

// encode returns the DER body of a dotted-decimal OID, or nil for an empty string.
func encode(s string) []byte {
	if s == "" {
		return nil
	}

	var b cryptobyte.Builder
	b.AddASN1ObjectIdentifier(stringToOid(s))
	der, err := b.Bytes()
	if err != nil {
		panic(fmt.Errorf("encoding %s: %w", s, err))
	}

	in := cryptobyte.String(der)
	var body cryptobyte.String
	if !in.ReadASN1(&body, cbasn1.OBJECT_IDENTIFIER) {
		panic(fmt.Errorf("encoding %s: bad DER", s))
	}

	return body
}

func bytesFormat(b []byte) string {
	strs := make([]string, len(b))
	for i, s := range b {
		strs[i] = fmt.Sprintf("0x%02x", s)
	}
	return strings.Join(strs, ", ")
}

func stringToOid(s string) asn1.ObjectIdentifier {
	// split string into components
	elms := strings.Split(s, ".")

	oid := make(asn1.ObjectIdentifier, len(elms))

	for i, elm := range elms {
		j, err := strconv.ParseUint(elm, 10, 31)
		if err != nil {
			panic(err)
		}

		oid[i] = int(j)
	}

	return oid
}

// SPDX-License-Identifier: Apache-2.0

// gss-import-name imports a name through the GSSAPI glue layer and shows which mechanisms
// could import it.
//
//	gss-import-name [flags] <name>
//
// The name type is given as a well-known name (GSS_NT_HOSTBASED_SERVICE) or as a dotted
// OID.  Exported name tokens are usually binary; use --hex or --base64 to pass them.
package main

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	gssapi "github.com/golang-auth/go-gssapi-mechglue"
	"github.com/golang-auth/go-gssapi-mechglue/krb5"
	"github.com/golang-auth/go-gssapi-mechglue/spnego"
)

const logLevelEnv = "GSSAPI_LOG_LEVEL"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

type options struct {
	nameType string
	hex      bool
	base64   bool
	logLevel string
	realm    string
	krbConf  string
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("gss-import-name", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.nameType, "name-type", "t", "", "name type, as a well-known name or dotted OID (default: none)")
	flagSet.BoolVar(&opts.hex, "hex", false, "the name is hex encoded")
	flagSet.BoolVar(&opts.base64, "base64", false, "the name is base64 encoded")
	flagSet.StringVar(&opts.logLevel, "log-level", envOr(logLevelEnv, "warn"), "log level (debug, info, warn, error)")
	flagSet.StringVar(&opts.realm, "realm", "", "Kerberos default realm (default: from krb5.conf)")
	flagSet.StringVar(&opts.krbConf, "krb5-config", envOr("KRB5_CONFIG", "/etc/krb5.conf"), "Kerberos configuration file")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if flagSet.NArg() != 1 {
		return fmt.Errorf("expected exactly one name, got %d arguments", flagSet.NArg())
	}
	if opts.hex && opts.base64 {
		return errors.New("--hex and --base64 are mutually exclusive")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return fmt.Errorf("bad log level %q: %w", opts.logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	buf, err := decodeName(flagSet.Arg(0), opts)
	if err != nil {
		return err
	}

	nameType, err := parseNameType(opts.nameType)
	if err != nil {
		return err
	}

	reg := newRegistry(opts, logger)
	name, err := reg.ImportName(buf, nameType)
	if err != nil {
		var fs gssapi.FatalStatus
		if errors.As(err, &fs) {
			return fmt.Errorf("importing name (major 0x%08x, minor %d): %w", fs.Major(), fs.Minor(), err)
		}
		return fmt.Errorf("importing name: %w", err)
	}
	defer func() {
		if err := name.Release(); err != nil {
			logger.Warn("releasing name", "error", err)
		}
	}()

	printName(stdout, name)

	return nil
}

// newRegistry builds a registry holding the Kerberos and SPNEGO mechanisms, in that order.
func newRegistry(opts options, logger *slog.Logger) *gssapi.Registry {
	krbOpts := []krb5.Option{krb5.WithLogger(logger), krb5.WithConfigFile(opts.krbConf)}
	if opts.realm != "" {
		krbOpts = append(krbOpts, krb5.WithDefaultRealm(opts.realm))
	}

	var reg *gssapi.Registry
	reg = gssapi.NewRegistry(
		gssapi.WithLogger(logger),
		gssapi.WithMechanisms(krb5.New(krbOpts...)),
		gssapi.WithMechanismConstructors(func() (gssapi.Mechanism, error) {
			return spnego.New(reg), nil
		}),
	)

	return reg
}

func decodeName(arg string, opts options) ([]byte, error) {
	switch {
	case opts.hex:
		b, err := hex.DecodeString(arg)
		if err != nil {
			return nil, fmt.Errorf("decoding hex name: %w", err)
		}
		return b, nil
	case opts.base64:
		b, err := base64.StdEncoding.DecodeString(arg)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 name: %w", err)
		}
		return b, nil
	default:
		return []byte(arg), nil
	}
}

// parseNameType accepts a well-known name type name or a dotted OID.  An empty string
// means no name type.
func parseNameType(s string) (gssapi.Oid, error) {
	if s == "" {
		return nil, nil
	}

	if nt, err := gssapi.NameTypeFromName(s); err == nil {
		return nt.Oid(), nil
	}

	oid, err := gssapi.OidFromString(s)
	if err != nil {
		return nil, fmt.Errorf("unknown name type %q", s)
	}

	return oid, nil
}

func printName(w io.Writer, name *gssapi.GenericName) {
	fmt.Fprintf(w, "name type:      %s\n", describeNameType(name.NameType()))
	fmt.Fprintf(w, "mechanism name: %t\n", name.IsMechName())

	for _, mn := range name.MechNames() {
		oid := mn.MechOid()
		label := oid.String()
		if m, err := gssapi.MechFromOid(oid); err == nil {
			label = m.String() + " (" + label + ")"
		}
		fmt.Fprintf(w, "  %s: %v\n", label, mn.Native())
	}
}

func describeNameType(oid gssapi.Oid) string {
	if len(oid) == 0 {
		return "none"
	}

	if nt, err := gssapi.NameTypeFromOid(oid); err == nil {
		return nt.String() + " (" + oid.String() + ")"
	}

	return oid.String()
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return def
}

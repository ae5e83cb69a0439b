// SPDX-License-Identifier: Apache-2.0

// Package krb5 provides the name handling part of the Kerberos V5 GSSAPI mechanism
// (RFC 1964, RFC 4121).  Importing the package registers the mechanism with
// gssapi.DefaultRegistry.
package krb5

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/jcmturner/gofork/encoding/asn1"
	"github.com/jcmturner/gokrb5/v8/config"

	gssapi "github.com/golang-auth/go-gssapi-mechglue"
)

func init() {
	gssapi.RegisterMechanism(func() (gssapi.Mechanism, error) {
		return New(WithConfigFile(krbConfFile())), nil
	})
}

// OID returns the Kerberos V5 mechanism object identifier.
func OID() asn1.ObjectIdentifier {
	return asn1.ObjectIdentifier{1, 2, 840, 113554, 1, 2, 2}
}

var mechOid = mustOidBody(OID())

func mustOidBody(id asn1.ObjectIdentifier) gssapi.Oid {
	der, err := asn1.Marshal(id)
	if err != nil {
		panic(fmt.Errorf("krb5: encoding mechanism OID: %w", err))
	}

	// drop the tag and length
	return gssapi.Oid(der[2:])
}

var nameTypes = []gssapi.Oid{
	gssapi.GSS_KRB5_NT_PRINCIPAL_NAME.Oid(),
	gssapi.GSS_KRB5_NT_ENTERPRISE_NAME.Oid(),
	gssapi.GSS_NT_USER_NAME.Oid(),
	gssapi.GSS_NT_HOSTBASED_SERVICE.Oid(),
	gssapi.GSS_NT_ANONYMOUS.Oid(),
	gssapi.GSS_NT_EXPORT_NAME.Oid(),
	gssapi.GSS_NT_COMPOSITE_EXPORT.Oid(),
}

// Mech is the Kerberos V5 mechanism.
type Mech struct {
	cfg          *config.Config
	defaultRealm string
	hostname     func() (string, error)
	logger       *slog.Logger

	outstanding atomic.Int64
}

// Option configures a Mech.
type Option func(m *Mech)

// WithDefaultRealm sets the realm used for names that do not specify one.
func WithDefaultRealm(realm string) Option {
	return func(m *Mech) {
		m.defaultRealm = realm
	}
}

// WithConfig takes the default realm and the domain to realm mapping from a parsed krb5.conf.
func WithConfig(cfg *config.Config) Option {
	return func(m *Mech) {
		if cfg == nil {
			return
		}

		m.cfg = cfg
		if cfg.LibDefaults.DefaultRealm != "" {
			m.defaultRealm = cfg.LibDefaults.DefaultRealm
		}
	}
}

// WithConfigFile reads the Kerberos settings from a krb5.conf file, see WithConfig.  A
// missing or unreadable file leaves the settings unchanged.
func WithConfigFile(path string) Option {
	return func(m *Mech) {
		if _, err := os.Stat(path); err != nil {
			return
		}

		// unsupported directives are reported alongside a usable configuration
		cfg, err := config.Load(path)
		if err != nil {
			var unsupported config.UnsupportedDirective
			if !errors.As(err, &unsupported) {
				m.log().Warn("ignoring Kerberos configuration", "path", path, "error", err)
				return
			}
		}

		WithConfig(cfg)(m)
	}
}

// WithHostname overrides the function used to find the local host name for host-based
// service names that do not name a host.
func WithHostname(f func() (string, error)) Option {
	return func(m *Mech) {
		m.hostname = f
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mech) {
		m.logger = logger
	}
}

// New returns a Kerberos V5 mechanism.
func New(opts ...Option) *Mech {
	m := &Mech{hostname: os.Hostname}
	for _, o := range opts {
		o(m)
	}

	return m
}

func (m *Mech) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}

	return slog.Default().With("component", "gssapi/krb5")
}

func (m *Mech) Oid() gssapi.Oid {
	return mechOid
}

func (m *Mech) Flags() gssapi.MechFlag {
	return 0
}

func (m *Mech) NameTypes() []gssapi.Oid {
	return nameTypes
}

// DefaultRealm returns the realm applied to names without one.
func (m *Mech) DefaultRealm() string {
	return m.defaultRealm
}

// Outstanding returns the number of names imported and not yet released.
func (m *Mech) Outstanding() int64 {
	return m.outstanding.Load()
}

func krbConfFile() string {
	cfgFile, ok := os.LookupEnv("KRB5_CONFIG")
	if !ok {
		cfgFile = "/etc/krb5.conf"
	}

	return cfgFile
}

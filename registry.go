// SPDX-License-Identifier: Apache-2.0

package gssapi

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry is an ordered table of mechanisms.  Mechanisms are registered before first use and
// instantiated the first time the registry is consulted; from then on the registry is read-only
// and may be used from any number of goroutines without locking.
type Registry struct {
	mu           sync.Mutex
	constructors []MechanismConstructor
	loaded       bool

	once    sync.Once
	loadErr error
	mechs   []Mechanism
	byOid   map[string]Mechanism

	logger *slog.Logger
}

// RegistryOption configures a Registry created with NewRegistry.
type RegistryOption func(r *Registry)

// WithLogger sets the logger used for diagnostics.  The default is slog.Default() at the
// time of each log call.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMechanisms registers already constructed mechanisms, in order.
func WithMechanisms(mechs ...Mechanism) RegistryOption {
	return func(r *Registry) {
		for _, m := range mechs {
			r.constructors = append(r.constructors, constantMechanism(m))
		}
	}
}

// constantMechanism returns a constructor that always yields m.
func constantMechanism(m Mechanism) MechanismConstructor {
	return func() (Mechanism, error) { return m, nil }
}

// WithMechanismConstructors registers mechanism constructors, in order.
func WithMechanismConstructors(fs ...MechanismConstructor) RegistryOption {
	return func(r *Registry) {
		r.constructors = append(r.constructors, fs...)
	}
}

// NewRegistry returns an empty registry configured with opts.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{}
	for _, o := range opts {
		o(r)
	}

	return r
}

// DefaultRegistry is the process-wide registry used by the package level functions.
// Mechanism packages add themselves to it from their init functions.
var DefaultRegistry = NewRegistry()

// RegisterMechanism adds a mechanism constructor to the default registry.
//
// Mechanism implementations should call RegisterMechanism from their init() function.
// It panics if the default registry has already been loaded.
func RegisterMechanism(f MechanismConstructor) {
	DefaultRegistry.RegisterMechanism(f)
}

// RegisterMechanism adds a mechanism constructor to the registry.  Mechanisms are consulted in
// the order they are registered.  It panics if the registry has already been loaded.
func (r *Registry) RegisterMechanism(f MechanismConstructor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		panic("gssapi: mechanism registered after the registry was loaded")
	}

	r.constructors = append(r.constructors, f)
}

func (r *Registry) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}

	return slog.Default().With("component", "gssapi")
}

// load instantiates the registered mechanisms exactly once.  A constructor failure makes the
// registry unusable; the error is returned by every later call.
func (r *Registry) load() error {
	r.once.Do(func() {
		r.mu.Lock()
		r.loaded = true
		constructors := r.constructors
		r.mu.Unlock()

		mechs := make([]Mechanism, 0, len(constructors))
		byOid := make(map[string]Mechanism, len(constructors))

		for i, f := range constructors {
			m, err := f()
			if err != nil {
				r.loadErr = fmt.Errorf("gssapi: loading mechanism %d: %w", i, err)
				r.log().Error("mechanism failed to load", "index", i, "error", err)
				return
			}
			if m == nil {
				r.loadErr = fmt.Errorf("gssapi: loading mechanism %d: constructor returned no mechanism", i)
				r.log().Error("mechanism failed to load", "index", i, "error", r.loadErr)
				return
			}

			key := string(m.Oid())
			if _, dup := byOid[key]; dup {
				r.log().Warn("ignoring duplicate mechanism", "mech", mechDisplayName(m.Oid()))
				continue
			}

			byOid[key] = m
			mechs = append(mechs, m)
			r.log().Debug("loaded mechanism", "mech", mechDisplayName(m.Oid()), "flags", m.Flags().String())
		}

		r.mechs = mechs
		r.byOid = byOid
	})

	return r.loadErr
}

// Mechanisms returns the loaded mechanisms in registration order.
func (r *Registry) Mechanisms() ([]Mechanism, error) {
	if err := r.load(); err != nil {
		return nil, MakeFatalStatus(ErrFailure, err)
	}

	ret := make([]Mechanism, len(r.mechs))
	copy(ret, r.mechs)

	return ret, nil
}

// LookupByOid returns the mechanism registered for oid.  If no mechanism is registered under
// that exact OID, the well-known alternates of oid are tried, so that for example the
// Windows 2000 Kerberos OID finds the Kerberos mechanism.
//
// Returns:
//   - the mechanism
//   - ErrBadMech if no registered mechanism matches
func (r *Registry) LookupByOid(oid Oid) (Mechanism, error) {
	if err := r.load(); err != nil {
		return nil, MakeFatalStatus(ErrFailure, err)
	}

	if m, ok := r.byOid[string(oid)]; ok {
		return m, nil
	}

	wk, err := MechFromOid(oid)
	if err != nil {
		return nil, MakeFatalStatus(ErrBadMech)
	}

	if m, ok := r.byOid[string(wk.Oid())]; ok {
		return m, nil
	}

	for _, alt := range mechs[wk.(gssMechImpl)].altOids {
		if m, ok := r.byOid[string(alt)]; ok {
			return m, nil
		}
	}

	return nil, MakeFatalStatus(ErrBadMech)
}

// IndicateMechs returns the OIDs of the loaded mechanisms, corresponding to
// GSS_Indicate_mechs from RFC 2743 § 2.4.2.
func (r *Registry) IndicateMechs() ([]Oid, error) {
	if err := r.load(); err != nil {
		return nil, MakeFatalStatus(ErrFailure, err)
	}

	ret := make([]Oid, len(r.mechs))
	for i, m := range r.mechs {
		ret[i] = m.Oid().Clone()
	}

	return ret, nil
}

// InquireNamesForMech returns the name types supported by a mechanism, corresponding to
// GSS_Inquire_names_for_mech from RFC 2743 § 2.4.12.
func (r *Registry) InquireNamesForMech(oid Oid) ([]Oid, error) {
	m, err := r.LookupByOid(oid)
	if err != nil {
		return nil, err
	}

	nts := m.NameTypes()
	ret := make([]Oid, len(nts))
	for i, nt := range nts {
		ret[i] = nt.Clone()
	}

	return ret, nil
}

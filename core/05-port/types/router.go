package types

import (
	"fmt"
	"sort"

	errorsmod "cosmossdk.io/errors"
)

const ModuleName = "ibccore/port"

var ErrInvalidPort = errorsmod.Register(ModuleName, 2, "invalid port")

// Router is the port-to-module resolver: it holds every bound application
// module under a name, and the port each is currently authorized to use.
// It is built once at host start-up and treated as read-only afterward by
// the dispatch path; binding/releasing ports is an administrative action,
// not a per-message one.
type Router struct {
	routes    map[string]Module
	portBinds map[string]string // portID -> module name
	sealed    bool
}

func NewRouter() *Router {
	return &Router{
		routes:    make(map[string]Module),
		portBinds: make(map[string]string),
	}
}

// AddRoute registers a module under name. Panics on a duplicate name,
// matching ibc-go's own router, since a second registration under the same
// name is always a programming error discovered at start-up, not runtime.
func (rtr *Router) AddRoute(name string, module Module) *Router {
	if rtr.sealed {
		panic("cannot add route, router is sealed")
	}
	if _, ok := rtr.routes[name]; ok {
		panic(fmt.Sprintf("route %s already registered", name))
	}
	rtr.routes[name] = module
	return rtr
}

// BindPort authorizes the named module to receive traffic on portID. A
// port may only ever be bound to one module at a time.
func (rtr *Router) BindPort(portID, name string) error {
	if _, ok := rtr.routes[name]; !ok {
		return errorsmod.Wrapf(ErrInvalidPort, "module %q is not registered", name)
	}
	if bound, ok := rtr.portBinds[portID]; ok && bound != name {
		return errorsmod.Wrapf(ErrInvalidPort, "port %q already bound to %q", portID, bound)
	}
	rtr.portBinds[portID] = name
	return nil
}

func (rtr *Router) ReleasePort(portID string) {
	delete(rtr.portBinds, portID)
}

// Seal prevents further AddRoute calls, mirroring ibc-go's router, which is
// sealed once the host app has finished wiring modules.
func (rtr *Router) Seal() {
	rtr.sealed = true
}

// LookupModuleByPort resolves the module currently bound to portID.
func (rtr *Router) LookupModuleByPort(portID string) (Module, error) {
	name, ok := rtr.portBinds[portID]
	if !ok {
		return nil, errorsmod.Wrapf(ErrInvalidPort, "no module bound to port %q", portID)
	}
	module, ok := rtr.routes[name]
	if !ok {
		return nil, errorsmod.Wrapf(ErrInvalidPort, "module %q bound to port %q is not registered", name, portID)
	}
	return module, nil
}

// HasRoute reports whether a module is bound to portID, without returning
// the module itself.
func (rtr *Router) HasRoute(portID string) bool {
	_, err := rtr.LookupModuleByPort(portID)
	return err == nil
}

// BoundPorts returns the ports currently bound, sorted, for diagnostics and
// tests.
func (rtr *Router) BoundPorts() []string {
	ports := make([]string, 0, len(rtr.portBinds))
	for p := range rtr.portBinds {
		ports = append(ports, p)
	}
	sort.Strings(ports)
	return ports
}

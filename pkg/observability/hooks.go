// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about ontology operations, snapshot store access and served
// HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The [prom] subpackage implements every hook interface on top of a private
// Prometheus registry.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := prom.New()
//	    m.Register()
//	    // ... serve m.Handler() on /metrics
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	err := o.Put(name, supers)
//	observability.Ontology().OnOperation(ctx, "put", time.Since(start), err)
//
// [prom]: https://pkg.go.dev/github.com/matzehuels/ontodag/pkg/observability/prom
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Ontology Hooks
// =============================================================================

// OntologyHooks receives events from ontology operations run inside a session.
type OntologyHooks interface {
	// OnOperation records one finished operation such as "get", "put",
	// "remove" or "merge". err is nil on success.
	OnOperation(ctx context.Context, op string, duration time.Duration, err error)

	// OnSessions records the number of live sessions after it changed.
	OnSessions(ctx context.Context, live int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from snapshot store operations.
type StoreHooks interface {
	// OnStoreHit records a snapshot found in the named backend.
	OnStoreHit(ctx context.Context, backend string)

	// OnStoreMiss records a lookup for a snapshot the backend does not hold.
	OnStoreMiss(ctx context.Context, backend string)

	// OnStoreSet records a snapshot write of size bytes.
	OnStoreSet(ctx context.Context, backend string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records a served request. route is the matched route
	// pattern, not the raw path, so that session ids do not leak into labels.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopOntologyHooks is a no-op implementation of OntologyHooks.
type NoopOntologyHooks struct{}

func (NoopOntologyHooks) OnOperation(context.Context, string, time.Duration, error) {}
func (NoopOntologyHooks) OnSessions(context.Context, int)                           {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreHit(context.Context, string)      {}
func (NoopStoreHooks) OnStoreMiss(context.Context, string)     {}
func (NoopStoreHooks) OnStoreSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	ontologyHooks OntologyHooks = NoopOntologyHooks{}
	storeHooks    StoreHooks    = NoopStoreHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetOntologyHooks registers custom ontology hooks.
// This should be called once at application startup before any session is created.
func SetOntologyHooks(h OntologyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		ontologyHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store is opened.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Ontology returns the registered ontology hooks.
func Ontology() OntologyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return ontologyHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	ontologyHooks = NoopOntologyHooks{}
	storeHooks = NoopStoreHooks{}
	httpHooks = NoopHTTPHooks{}
}

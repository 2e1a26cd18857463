package manager

import "sync"

// Resource is anything with an open/close lifecycle tied to the process
// (database pools, redis, kafka writers).
type Resource interface {
	MustOpen()
	Close()
}

// ResourcePlugin creates a named resource; plugins register themselves
// from init functions in internal/resource.
type ResourcePlugin interface {
	Name() string
	MustCreateResource() Resource
}

var (
	mu        sync.Mutex
	plugins   []ResourcePlugin
	resources []Resource
)

// RegisterResourcePlugin adds a plugin; called during package init,
// before MustInitResources.
func RegisterResourcePlugin(p ResourcePlugin) {
	if p == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	plugins = append(plugins, p)
}

// MustInitResources opens every registered resource in registration
// order; panics on the first failure.
func MustInitResources() {
	mu.Lock()
	defer mu.Unlock()
	for _, p := range plugins {
		r := p.MustCreateResource()
		r.MustOpen()
		resources = append(resources, r)
	}
}

// CloseResources closes resources in reverse order.
func CloseResources() {
	mu.Lock()
	defer mu.Unlock()
	for i := len(resources) - 1; i >= 0; i-- {
		resources[i].Close()
	}
	resources = nil
}

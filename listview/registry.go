/*
registry.go - Named view registry

PURPOSE:
  View packages register their builders on init so hosts (the CLI, a page
  shell) can construct any view by name without importing every entity
  package explicitly.

SEE ALSO:
  - employees, hmo, payroll, notifications packages: register here
*/
package listview

import (
	"fmt"
	"sort"
	"sync"
)

// ViewBuilder constructs a controller for one named view.
type ViewBuilder func(source DataSource, host Host) *Controller

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ViewBuilder)
)

// RegisterView registers a builder under a unique name. Registering the same
// name twice panics; view names are compile-time constants.
func RegisterView(name string, b ViewBuilder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("listview: view %q registered twice", name))
	}
	registry[name] = b
}

// BuildView constructs the named view's controller.
func BuildView(name string, source DataSource, host Host) (*Controller, error) {
	registryMu.RLock()
	b, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no registered view %q (known: %v)", name, ViewNames())
	}
	return b(source, host), nil
}

// ViewNames returns the registered view names, sorted.
func ViewNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

package container

import "sync"

var (
	defaultMu        sync.RWMutex
	defaultContainer *Container
)

// GetInstance returns the process-wide default container: the first one built
// with New, or the last one installed with SetInstance.
func GetInstance() (*Container, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultContainer == nil {
		return nil, &InstantiationError{Abstract: "container", Reason: "no default container has been set"}
	}
	return defaultContainer, nil
}

// SetInstance replaces the process-wide default container and returns it.
// Passing nil clears it.
func SetInstance(c *Container) *Container {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultContainer = c
	return c
}

func setDefaultOnce(c *Container) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultContainer == nil {
		defaultContainer = c
	}
}

package whiteboard

import (
	"fmt"
	"slices"
)

// Service is an engine component with listeners to release.
type Service interface {
	Dispose()
}

// Names under which the engine registers its services.
const (
	ServiceTools        = "toolService"
	ServiceSelection    = "selection"
	ServiceSelectTool   = "selectTool"
	ServicePanTool      = "panTool"
	ServiceWheel        = "wheel"
	ServiceShapeDrawer  = "shapeDrawer"
	ServiceCursorSender = "cursorSender"
	ServiceEntityBridge = "entityBridge"
)

// ServiceManager is a registry of named services. Registering a name twice
// and looking up or removing a missing name are programming errors and
// panic.
type ServiceManager struct {
	services map[string]Service
	order    []string
}

// NewServiceManager creates an empty registry.
func NewServiceManager() *ServiceManager {
	return &ServiceManager{services: make(map[string]Service)}
}

// Register adds s under name.
func (m *ServiceManager) Register(name string, s Service) {
	if _, ok := m.services[name]; ok {
		panic(fmt.Sprintf("whiteboard: service %q is already registered", name))
	}
	m.services[name] = s
	m.order = append(m.order, name)
}

// Get returns the service registered under name.
func (m *ServiceManager) Get(name string) Service {
	s, ok := m.services[name]
	if !ok {
		panic(fmt.Sprintf("whiteboard: service %q not found", name))
	}
	return s
}

// Has reports whether name is registered.
func (m *ServiceManager) Has(name string) bool {
	_, ok := m.services[name]
	return ok
}

// Remove unregisters name without disposing the service.
func (m *ServiceManager) Remove(name string) {
	if _, ok := m.services[name]; !ok {
		panic(fmt.Sprintf("whiteboard: service %q not found", name))
	}
	delete(m.services, name)
	m.order = slices.DeleteFunc(m.order, func(n string) bool { return n == name })
}

// Names returns the registered names in registration order.
func (m *ServiceManager) Names() []string { return slices.Clone(m.order) }

// Clear unregisters every service without disposing them.
func (m *ServiceManager) Clear() {
	clear(m.services)
	m.order = nil
}

// DisposeAll disposes every service in reverse registration order and
// clears the registry.
func (m *ServiceManager) DisposeAll() {
	for i := len(m.order) - 1; i >= 0; i-- {
		m.services[m.order[i]].Dispose()
	}
	m.Clear()
}

// GetService returns the service under name as a T. It panics if the
// service is missing or of another type.
func GetService[T Service](m *ServiceManager, name string) T {
	s := m.Get(name)
	t, ok := s.(T)
	if !ok {
		panic(fmt.Sprintf("whiteboard: service %q is %T", name, s))
	}
	return t
}

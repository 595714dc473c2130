package meta

import (
	"fmt"
	"reflect"
	"sync"
)

var checkable = struct {
	sync.RWMutex
	types map[reflect.Type]bool
}{types: map[reflect.Type]bool{}}

// RegisterCheckable marks a capability interface as runtime-checkable so
// FindProtocol may test items against it. Non-interface types are rejected.
func RegisterCheckable(capability reflect.Type) error {
	if capability == nil || capability.Kind() != reflect.Interface {
		return fmt.Errorf("meta: checkable capability has to be an interface, got %v", capability)
	}
	checkable.Lock()
	defer checkable.Unlock()
	checkable.types[capability] = true
	return nil
}

// IsCheckable reports whether capability was registered runtime-checkable
func IsCheckable(capability reflect.Type) bool {
	checkable.RLock()
	defer checkable.RUnlock()
	return checkable.types[capability]
}

// ResetCheckable clears the runtime-checkable registry; intended for tests
func ResetCheckable() {
	checkable.Lock()
	defer checkable.Unlock()
	checkable.types = map[reflect.Type]bool{}
}

package meta

import (
	"fmt"
	"reflect"
	"strings"
)

type (
	// NotFoundError indicates a required metadata item was absent
	NotFoundError struct {
		RequestedType reflect.Type
		Collection    *Collection
	}

	// ProtocolError indicates a capability lookup against an interface that
	// was not registered runtime-checkable
	ProtocolError struct {
		Capability reflect.Type
	}

	// HashError indicates a hash attempt over unhashable contents
	HashError struct {
		OffendingItems []interface{}
	}
)

// Error implements error
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("meta: no item of type %v in %v", e.RequestedType, e.Collection)
}

// Error implements error
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("meta: capability %v is not runtime-checkable", e.Capability)
}

// Error implements error
func (e *HashError) Error() string {
	var rendered []string
	for _, item := range e.OffendingItems {
		rendered = append(rendered, fmt.Sprintf("%v (%T)", item, item))
	}
	return fmt.Sprintf("meta: unhashable items: %s", strings.Join(rendered, ", "))
}

package meta

import (
	"reflect"
)

// matches reports whether item satisfies target: exact type, assignable type,
// or interface implementation.
func matches(item interface{}, target reflect.Type) bool {
	if target == nil {
		return false
	}
	itemType := reflect.TypeOf(item)
	if itemType == nil {
		return false
	}
	if target.Kind() == reflect.Interface {
		return itemType.Implements(target)
	}
	return itemType == target || itemType.AssignableTo(target)
}

func matchesAny(item interface{}, targets []reflect.Type) bool {
	for _, target := range targets {
		if matches(item, target) {
			return true
		}
	}
	return false
}

// Find returns the first item satisfying target (subtype-inclusive)
func (c *Collection) Find(target reflect.Type) (interface{}, bool) {
	for _, item := range c.items {
		if matches(item, target) {
			return item, true
		}
	}
	return nil, false
}

// FindFirst returns the first item matching any of the given targets
func (c *Collection) FindFirst(targets ...reflect.Type) (interface{}, bool) {
	for _, item := range c.items {
		if matchesAny(item, targets) {
			return item, true
		}
	}
	return nil, false
}

// FindAll returns a new collection of all matches; with no targets it returns
// a full copy.
func (c *Collection) FindAll(targets ...reflect.Type) *Collection {
	if len(targets) == 0 {
		return FromSlice(c.items, false)
	}
	var ret []interface{}
	for _, item := range c.items {
		if matchesAny(item, targets) {
			ret = append(ret, item)
		}
	}
	return FromSlice(ret, false)
}

// Has returns true if any item matches any target
func (c *Collection) Has(targets ...reflect.Type) bool {
	_, ok := c.FindFirst(targets...)
	return ok
}

// Count returns the number of items matching any target
func (c *Collection) Count(targets ...reflect.Type) int {
	ret := 0
	for _, item := range c.items {
		if matchesAny(item, targets) {
			ret++
		}
	}
	return ret
}

// Get returns the first item matching target, or defaultValue when absent.
// A found falsy value (zero, empty string) is returned in preference to the
// default; presence is tracked with a flag, never a sentinel comparison.
func (c *Collection) Get(target reflect.Type, defaultValue interface{}) interface{} {
	item, found := c.Find(target)
	if !found {
		return defaultValue
	}
	return item
}

// GetRequired returns the first item matching target or fails with
// *NotFoundError carrying the requested type and the searched collection.
func (c *Collection) GetRequired(target reflect.Type) (interface{}, error) {
	item, found := c.Find(target)
	if !found {
		return nil, &NotFoundError{RequestedType: target, Collection: c}
	}
	return item, nil
}

// Filter returns a new collection of items satisfying predicate
func (c *Collection) Filter(predicate func(item interface{}) bool) *Collection {
	var ret []interface{}
	for _, item := range c.items {
		if predicate(item) {
			ret = append(ret, item)
		}
	}
	return FromSlice(ret, false)
}

// FilterByType returns matching-type items satisfying predicate; the
// predicate is only applied to items of the target type.
func (c *Collection) FilterByType(target reflect.Type, predicate func(item interface{}) bool) *Collection {
	var ret []interface{}
	for _, item := range c.items {
		if matches(item, target) && predicate(item) {
			ret = append(ret, item)
		}
	}
	return FromSlice(ret, false)
}

// FindProtocol returns the first item implementing capability. The capability
// interface has to be registered runtime-checkable beforehand; otherwise the
// lookup fails with *ProtocolError.
func (c *Collection) FindProtocol(capability reflect.Type) (interface{}, error) {
	if !IsCheckable(capability) {
		return nil, &ProtocolError{Capability: capability}
	}
	item, _ := c.Find(capability)
	return item, nil
}

// Types returns distinct item types in first-occurrence order
func (c *Collection) Types() []reflect.Type {
	var ret []reflect.Type
	seen := map[reflect.Type]bool{}
	for _, item := range c.items {
		itemType := reflect.TypeOf(item)
		if itemType == nil || seen[itemType] {
			continue
		}
		seen[itemType] = true
		ret = append(ret, itemType)
	}
	return ret
}

// ByType returns a mapping from item type to its items in declaration order
func (c *Collection) ByType() map[reflect.Type][]interface{} {
	ret := map[reflect.Type][]interface{}{}
	for _, item := range c.items {
		itemType := reflect.TypeOf(item)
		if itemType == nil {
			continue
		}
		ret[itemType] = append(ret[itemType], item)
	}
	return ret
}

// TypeOf is a shorthand for reflect type lookup of a value prototype
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// FindOf returns the first item of type T
func FindOf[T any](c *Collection) (T, bool) {
	item, found := c.Find(TypeOf[T]())
	if !found {
		var zero T
		return zero, false
	}
	return item.(T), true
}

// GetOf returns the first item of type T or defaultValue when absent
func GetOf[T any](c *Collection, defaultValue T) T {
	item, found := FindOf[T](c)
	if !found {
		return defaultValue
	}
	return item
}

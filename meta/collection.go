// Package meta provides an immutable, ordered metadata collection with a
// query and transform algebra. Collections attach to type graph nodes but can
// be retained and combined independently.
package meta

import (
	"fmt"
	"hash/maphash"
	"reflect"
	"strings"
)

// Empty is the canonical empty collection. Factory paths returning an empty
// result always return this instance.
var Empty = &Collection{}

var hashSeed = maphash.MakeSeed()

type (
	// Collection immutable ordered metadata item container
	Collection struct {
		items []interface{}
	}

	// Grouped marks an item that expands into its members when a collection flattens
	Grouped interface {
		GroupItems() []interface{}
	}

	// Group groups metadata items for one-shot attachment; flatten expands it
	Group struct {
		Items []interface{}
	}

	// Provider supplies metadata items extracted from a qualified description
	Provider interface {
		MetadataItems() []interface{}
	}
)

// GroupItems returns grouped items
func (g Group) GroupItems() []interface{} {
	return g.Items
}

// GroupOf creates a metadata group
func GroupOf(items ...interface{}) Group {
	return Group{Items: items}
}

// Of builds a collection from items, expanding one level of grouped items.
// An empty source yields Empty.
func Of(items ...interface{}) *Collection {
	return FromSlice(items, true)
}

// FromSlice builds a collection from a slice; autoFlatten expands one level
// of grouped items.
func FromSlice(items []interface{}, autoFlatten bool) *Collection {
	if len(items) == 0 {
		return Empty
	}
	var owned []interface{}
	for _, item := range items {
		if autoFlatten {
			if group, ok := item.(Grouped); ok {
				owned = append(owned, group.GroupItems()...)
				continue
			}
		}
		owned = append(owned, item)
	}
	if len(owned) == 0 {
		return Empty
	}
	return &Collection{items: owned}
}

// FromAnnotated extracts metadata from a qualified description, or returns
// Empty for non-qualified input.
func FromAnnotated(description interface{}) *Collection {
	provider, ok := description.(Provider)
	if !ok {
		return Empty
	}
	return FromSlice(provider.MetadataItems(), true)
}

// Len returns item count
func (c *Collection) Len() int {
	return len(c.items)
}

// IsEmpty returns true if collection has no items
func (c *Collection) IsEmpty() bool {
	return len(c.items) == 0
}

// At returns item at index
func (c *Collection) At(index int) interface{} {
	return c.items[index]
}

// Items returns a copy of the item sequence in declaration order
func (c *Collection) Items() []interface{} {
	if len(c.items) == 0 {
		return nil
	}
	ret := make([]interface{}, len(c.items))
	copy(ret, c.items)
	return ret
}

// Each calls cb for each item in order until cb returns false
func (c *Collection) Each(cb func(index int, item interface{}) bool) {
	for i, item := range c.items {
		if !cb(i, item) {
			return
		}
	}
}

// Slice returns a new collection of items[from:to:step]; a negative step
// walks backwards. Bounds are clamped.
func (c *Collection) Slice(from, to, step int) *Collection {
	if step == 0 {
		step = 1
	}
	size := len(c.items)
	if from < 0 {
		from = 0
	}
	if to > size {
		to = size
	}
	var ret []interface{}
	if step > 0 {
		for i := from; i < to; i += step {
			ret = append(ret, c.items[i])
		}
	} else {
		start := to - 1
		if start >= size {
			start = size - 1
		}
		for i := start; i >= from; i += step {
			ret = append(ret, c.items[i])
		}
	}
	return FromSlice(ret, false)
}

// Contains reports membership via equality, not identity
func (c *Collection) Contains(item interface{}) bool {
	for _, candidate := range c.items {
		if equalItems(candidate, item) {
			return true
		}
	}
	return false
}

// Equal compares against another value; order-sensitive, definite false for
// anything that is not a collection.
func (c *Collection) Equal(other interface{}) bool {
	counterpart, ok := other.(*Collection)
	if !ok || counterpart == nil {
		return false
	}
	if len(c.items) != len(counterpart.items) {
		return false
	}
	for i, item := range c.items {
		if !equalItems(item, counterpart.items[i]) {
			return false
		}
	}
	return true
}

// IsHashable reports whether every item is hashable; never fails
func (c *Collection) IsHashable() bool {
	return len(c.unhashable()) == 0
}

// Hash computes an order-sensitive hash; equal collections of hashable items
// hash equally within a process. Fails with *HashError when any item is
// unhashable.
func (c *Collection) Hash() (uint64, error) {
	if offending := c.unhashable(); len(offending) > 0 {
		return 0, &HashError{OffendingItems: offending}
	}
	var h uint64 = 1469598103934665603
	for _, item := range c.items {
		var itemHash uint64
		if item != nil {
			itemHash = maphash.Comparable[interface{}](hashSeed, item)
		}
		h = (h ^ itemHash) * 1099511628211
	}
	return h, nil
}

func (c *Collection) unhashable() []interface{} {
	var ret []interface{}
	for _, item := range c.items {
		if !isHashable(item) {
			ret = append(ret, item)
		}
	}
	return ret
}

func isHashable(item interface{}) bool {
	if item == nil {
		return true
	}
	return reflect.TypeOf(item).Comparable()
}

func equalItems(a, b interface{}) bool {
	if isHashable(a) && isHashable(b) {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

const debugLimit = 5

// String renders up to 5 items, then a remaining-count marker
func (c *Collection) String() string {
	builder := strings.Builder{}
	builder.WriteString("meta.Collection(")
	for i, item := range c.items {
		if i >= debugLimit {
			builder.WriteString(fmt.Sprintf(", …+%d more", len(c.items)-debugLimit))
			break
		}
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(fmt.Sprintf("%v", item))
	}
	builder.WriteString(")")
	return builder.String()
}

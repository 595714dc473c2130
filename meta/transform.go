package meta

import (
	"reflect"
	"sort"
)

// Concat returns a new collection with all items of c followed by items of
// each other collection in order.
func (c *Collection) Concat(others ...*Collection) *Collection {
	size := len(c.items)
	for _, other := range others {
		size += len(other.items)
	}
	if size == len(c.items) {
		return c
	}
	ret := make([]interface{}, 0, size)
	ret = append(ret, c.items...)
	for _, other := range others {
		ret = append(ret, other.items...)
	}
	return FromSlice(ret, false)
}

// Append returns a new collection with items appended
func (c *Collection) Append(items ...interface{}) *Collection {
	if len(items) == 0 {
		return c
	}
	ret := make([]interface{}, 0, len(c.items)+len(items))
	ret = append(ret, c.items...)
	ret = append(ret, items...)
	return FromSlice(ret, false)
}

// Exclude returns a new collection without items matching any target
func (c *Collection) Exclude(targets ...reflect.Type) *Collection {
	var ret []interface{}
	for _, item := range c.items {
		if !matchesAny(item, targets) {
			ret = append(ret, item)
		}
	}
	if len(ret) == len(c.items) {
		return c
	}
	return FromSlice(ret, false)
}

// Unique returns a new collection preserving the first occurrence of each
// item. Hashable items deduplicate through a set; unhashable items fall back
// to an equality scan.
func (c *Collection) Unique() *Collection {
	var ret []interface{}
	var scanned []interface{}
	seen := map[interface{}]bool{}
	for _, item := range c.items {
		if isHashable(item) {
			if seen[item] {
				continue
			}
			seen[item] = true
			ret = append(ret, item)
			continue
		}
		duplicate := false
		for _, prior := range scanned {
			if equalItems(prior, item) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		scanned = append(scanned, item)
		ret = append(ret, item)
	}
	if len(ret) == len(c.items) {
		return c
	}
	return FromSlice(ret, false)
}

// Sorted returns a new collection ordered by less; the sort is stable
func (c *Collection) Sorted(less func(a, b interface{}) bool) *Collection {
	if len(c.items) < 2 {
		return c
	}
	ret := make([]interface{}, len(c.items))
	copy(ret, c.items)
	sort.SliceStable(ret, func(i, j int) bool {
		return less(ret[i], ret[j])
	})
	return FromSlice(ret, false)
}

// Reversed returns a new collection in reverse order
func (c *Collection) Reversed() *Collection {
	if len(c.items) < 2 {
		return c
	}
	ret := make([]interface{}, len(c.items))
	for i, item := range c.items {
		ret[len(c.items)-1-i] = item
	}
	return FromSlice(ret, false)
}

// Map applies mapper to each item; terminal, the result is a plain ordered
// slice rather than a collection.
func (c *Collection) Map(mapper func(item interface{}) interface{}) []interface{} {
	if len(c.items) == 0 {
		return nil
	}
	ret := make([]interface{}, len(c.items))
	for i, item := range c.items {
		ret[i] = mapper(item)
	}
	return ret
}

// Partition splits the collection into (matching, non-matching) collections
func (c *Collection) Partition(predicate func(item interface{}) bool) (*Collection, *Collection) {
	var matching, rest []interface{}
	for _, item := range c.items {
		if predicate(item) {
			matching = append(matching, item)
			continue
		}
		rest = append(rest, item)
	}
	return FromSlice(matching, false), FromSlice(rest, false)
}

// Flatten expands one level of grouped items; returns the receiver when no
// groupable items exist.
func (c *Collection) Flatten() *Collection {
	if !c.hasGroups() {
		return c
	}
	var ret []interface{}
	for _, item := range c.items {
		if group, ok := item.(Grouped); ok {
			ret = append(ret, group.GroupItems()...)
			continue
		}
		ret = append(ret, item)
	}
	return FromSlice(ret, false)
}

// FlattenDeep expands grouped items recursively; idempotent
func (c *Collection) FlattenDeep() *Collection {
	if !c.hasGroups() {
		return c
	}
	var ret []interface{}
	flattenInto(&ret, c.items)
	return FromSlice(ret, false)
}

func flattenInto(dest *[]interface{}, items []interface{}) {
	for _, item := range items {
		if group, ok := item.(Grouped); ok {
			flattenInto(dest, group.GroupItems())
			continue
		}
		*dest = append(*dest, item)
	}
}

func (c *Collection) hasGroups() bool {
	for _, item := range c.items {
		if _, ok := item.(Grouped); ok {
			return true
		}
	}
	return false
}

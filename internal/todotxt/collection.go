package todotxt

import "slices"

// Item is anything that can be held in a Collection.
type Item interface {
	comparable
	ID() ID
}

// Collection is an ordered sequence of items with lookup by ID.
type Collection[T Item] struct {
	items []T
}

// Add appends item unconditionally.
func (c *Collection[T]) Add(item T) {
	c.items = append(c.items, item)
}

// AddUnique appends item unless an item with the same ID is already present.
// It reports whether the item was added.
func (c *Collection[T]) AddUnique(item T) bool {
	if c.IndexOf(item.ID()) >= 0 {
		return false
	}
	c.items = append(c.items, item)
	return true
}

// Delete removes the item at position i, shifting later items down.
// It reports whether i was in range.
func (c *Collection[T]) Delete(i int) bool {
	if i < 0 || i >= len(c.items) {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// Remove deletes the first item equal to item and reports whether one was found.
func (c *Collection[T]) Remove(item T) bool {
	for i, it := range c.items {
		if it == item {
			return c.Delete(i)
		}
	}
	return false
}

// Has reports whether item itself (not just its ID) is in the collection.
func (c *Collection[T]) Has(item T) bool {
	for _, it := range c.items {
		if it == item {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the first item with the given ID, or -1.
func (c *Collection[T]) IndexOf(id ID) int {
	for i, it := range c.items {
		if it.ID() == id {
			return i
		}
	}
	return -1
}

// Get returns the first item with the given ID.
func (c *Collection[T]) Get(id ID) (T, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// At returns the item at position i.
func (c *Collection[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// First returns the first item, if any.
func (c *Collection[T]) First() (T, bool) {
	return c.At(0)
}

// Last returns the last item, if any.
func (c *Collection[T]) Last() (T, bool) {
	return c.At(len(c.items) - 1)
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the items in order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Reset removes all items.
func (c *Collection[T]) Reset() {
	c.items = nil
}

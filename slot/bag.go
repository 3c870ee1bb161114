// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slot

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"cogentcore.org/scenegraph/base/errors"
)

// Component is anything that exposes named slots.
type Component interface {

	// HasSlot returns whether there is a slot with the given name.
	HasSlot(name string) bool

	// Slot returns the slot with the given name, or an
	// [errors.ErrKey] error if there is none.
	Slot(name string) (Slot, error)
}

// Bag is a [Component] holding a set of slots by name.
// The zero value is ready to use.
type Bag struct {
	slots map[string]Slot
}

func (b *Bag) HasSlot(name string) bool {
	_, ok := b.slots[name]
	return ok
}

func (b *Bag) Slot(name string) (Slot, error) {
	s, ok := b.slots[name]
	if !ok {
		return nil, fmt.Errorf("%w: no slot named %q", errors.ErrKey, name)
	}
	return s, nil
}

// AddSlot adds a slot under the given name. It returns an
// [errors.ErrKey] error if the name is already taken.
func (b *Bag) AddSlot(name string, s Slot) error {
	if b.HasSlot(name) {
		return fmt.Errorf("%w: slot %q already exists", errors.ErrKey, name)
	}
	if b.slots == nil {
		b.slots = make(map[string]Slot)
	}
	b.slots[name] = s
	return nil
}

// RemoveSlot removes the slot with the given name without destroying it.
func (b *Bag) RemoveSlot(name string) error {
	if !b.HasSlot(name) {
		return fmt.Errorf("%w: no slot named %q", errors.ErrKey, name)
	}
	delete(b.slots, name)
	return nil
}

// SlotNames returns the sorted names of all slots.
func (b *Bag) SlotNames() []string {
	names := maps.Keys(b.slots)
	slices.Sort(names)
	return names
}

func (b *Bag) NumSlots() int {
	return len(b.slots)
}

// DestroySlots destroys and removes all slots.
func (b *Bag) DestroySlots() {
	for _, name := range b.SlotNames() {
		b.slots[name].Destroy()
	}
	b.slots = nil
}

// As returns the slot of c with the given name as a [Typed] slot.
// It returns an [errors.ErrKey] error if there is no such slot and an
// [errors.ErrType] error if its value type is not T.
func As[T comparable](c Component, name string) (Typed[T], error) {
	s, err := c.Slot(name)
	if err != nil {
		return nil, err
	}
	ts, ok := s.(Typed[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: slot %q is %s, not %T", errors.ErrType, name, s.TypeName(), zero)
	}
	return ts, nil
}

package ui

import (
	"errors"
	"fmt"
	"hash/fnv"
)

// WidgetID disambiguates widgets that would otherwise derive the same key.
// The zero value is Auto.
type WidgetID struct {
	explicit string
	set      bool
}

// Auto derives identity from the widget kind, its label and, for
// label-less kinds, its position in the holder.
var Auto = WidgetID{}

// ID builds an explicit id from any value printable with %v.
func ID(v any) WidgetID {
	if s, ok := v.(string); ok {
		return WidgetID{explicit: s, set: true}
	}
	return WidgetID{explicit: fmt.Sprint(v), set: true}
}

func (id WidgetID) IsAuto() bool { return !id.set }

func (id WidgetID) String() string {
	if !id.set {
		return "Auto"
	}
	return id.explicit
}

// Key is the 64-bit structural identity of a declaration.
type Key uint64

func (k Key) String() string { return fmt.Sprintf("%016x", uint64(k)) }

// DeriveKey hashes (kind, explicit id, label). Equal inputs always give
// equal keys, across frames and processes.
func DeriveKey(kind string, id WidgetID, label string) Key {
	h := fnv.New64a()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	if id.set {
		h.Write([]byte{1})
		h.Write([]byte(id.explicit))
	}
	h.Write([]byte{0})
	h.Write([]byte(label))
	return Key(h.Sum64())
}

// WindowKey hashes a caller supplied window name.
func WindowKey(name string) Key {
	h := fnv.New64a()
	h.Write([]byte(name))
	return Key(h.Sum64())
}

var ErrDuplicateKey = errors.New("ui: duplicate widget identity in one frame")

// DuplicateKeyError names the declaration that collided.
type DuplicateKeyError struct {
	Kind  string
	ID    WidgetID
	Label string
	Key   Key
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("ui: %s %q (id %s, key %s) declared twice in one frame; give it a unique explicit ID",
		e.Kind, e.Label, e.ID, e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// Registry is the ordered set of keys declared during the current frame.
type Registry struct {
	seen  map[Key]struct{}
	order []Key
}

func (r *Registry) Reset() {
	clear(r.seen)
	r.order = r.order[:0]
}

// Register records k for this frame, failing if it was already declared.
func (r *Registry) Register(k Key, kind string, id WidgetID, label string) error {
	if r.seen == nil {
		r.seen = make(map[Key]struct{})
	}
	if _, dup := r.seen[k]; dup {
		return &DuplicateKeyError{Kind: kind, ID: id, Label: label, Key: k}
	}
	r.seen[k] = struct{}{}
	r.order = append(r.order, k)
	return nil
}

func (r *Registry) Contains(k Key) bool {
	_, ok := r.seen[k]
	return ok
}

// Keys returns this frame's declarations in declaration order.
func (r *Registry) Keys() []Key { return r.order }

func (r *Registry) Len() int { return len(r.order) }

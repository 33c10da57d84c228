package ecs

// DelegateHandle identifies one binding on a Delegate. Zero is never issued.
type DelegateHandle uint64

type binding[T any] struct {
	handle DelegateHandle
	fn     func(T)
}

// Delegate is a multicast callback list. Each event kind gets its own
// Delegate so listeners on one never see the other.
type Delegate[T any] struct {
	next     DelegateHandle
	bindings []binding[T]
}

// Add binds fn and returns a handle for Remove.
func (d *Delegate[T]) Add(fn func(T)) DelegateHandle {
	if d == nil || fn == nil {
		return 0
	}
	d.next++
	d.bindings = append(d.bindings, binding[T]{handle: d.next, fn: fn})
	return d.next
}

// Remove unbinds the handler; it reports whether anything was removed.
func (d *Delegate[T]) Remove(h DelegateHandle) bool {
	if d == nil || h == 0 {
		return false
	}
	for i, b := range d.bindings {
		if b.handle == h {
			d.bindings = append(d.bindings[:i:i], d.bindings[i+1:]...)
			return true
		}
	}
	return false
}

// Broadcast calls every handler in bind order. Handlers bound during the
// broadcast wait for the next one; handlers removed during it are skipped.
func (d *Delegate[T]) Broadcast(v T) {
	if d == nil || len(d.bindings) == 0 {
		return
	}
	snapshot := append([]binding[T](nil), d.bindings...)
	for _, b := range snapshot {
		if !d.bound(b.handle) {
			continue
		}
		b.fn(v)
	}
}

func (d *Delegate[T]) Clear() {
	if d == nil {
		return
	}
	d.bindings = nil
}

func (d *Delegate[T]) IsBound() bool {
	return d != nil && len(d.bindings) > 0
}

func (d *Delegate[T]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.bindings)
}

func (d *Delegate[T]) bound(h DelegateHandle) bool {
	for _, b := range d.bindings {
		if b.handle == h {
			return true
		}
	}
	return false
}

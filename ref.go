package dot

import "weak"

// NodeRef is a non-owning reference to a Node. It never keeps the node alive
// and resolves to nil once the node has been destroyed.
type NodeRef struct {
	id  uint32
	ptr weak.Pointer[Node]
}

// Ref returns a weak reference to n. A nil node yields the zero NodeRef.
func (n *Node) Ref() NodeRef {
	if n == nil || n.disposed {
		return NodeRef{}
	}
	return NodeRef{id: n.ID, ptr: weak.Make(n)}
}

// Get resolves the reference. It returns nil if the reference is empty or the
// node has been destroyed or collected.
func (r NodeRef) Get() *Node {
	n := r.ptr.Value()
	if n == nil || n.disposed || n.ID != r.id {
		return nil
	}
	return n
}

// IsZero reports whether the reference was never set.
func (r NodeRef) IsZero() bool {
	return r.id == 0
}

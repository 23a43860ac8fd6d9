// Package pointee describes the metadata that travels next to a pointer
// when the pointed-to blob cannot be interpreted on its own.
package pointee

// Pointee is implemented by values whose layout depends on metadata M.
type Pointee[M comparable] interface {
	Metadata() M
}

// DynSized is implemented by codecs that recover a blob size from its
// metadata alone.
type DynSized[M comparable] interface {
	Size(m M) int
}

// Fat is a thin pointer paired with the metadata needed to use it.
type Fat[P any, M comparable] struct {
	Ptr  P
	Meta M
}

func MakeFat[P any, M comparable](p P, m M) Fat[P, M] {
	return Fat[P, M]{Ptr: p, Meta: m}
}

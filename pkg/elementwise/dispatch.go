package elementwise

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/simplevec/pkg/core/dtypes"
)

// Registration priorities: priorityArch overrides priorityTyped overrides
// priorityGeneric, independent of init() ordering across files. Equal
// priority keeps the last registration.
const (
	priorityGeneric = iota
	priorityTyped
	priorityArch
)

// FuncForDispatcher is the type of functions that a DTypeDispatcher holds,
// usually instantiations of a generic function wrapped to unpack params.
type FuncForDispatcher func(params ...any)

// DTypeDispatcher maps a dtype to the function instantiation that handles it.
// Registration happens in init() functions; Dispatch is read-only and safe
// for concurrent use afterwards.
type DTypeDispatcher struct {
	Name       string
	fnMap      [dtypes.MaxDType]FuncForDispatcher
	priorities [dtypes.MaxDType]int
}

// NewDTypeDispatcher creates a named dispatcher for a class of functions.
func NewDTypeDispatcher(name string) *DTypeDispatcher {
	return &DTypeDispatcher{Name: name}
}

// Register a function to handle a specific dtype. A lower priority than the
// one already registered is ignored.
func (d *DTypeDispatcher) Register(dtype dtypes.DType, priority int, fn FuncForDispatcher) {
	if dtype <= dtypes.InvalidDType || dtype >= dtypes.MaxDType {
		exceptions.Panicf("dtype %s not supported by %s", dtype, d.Name)
	}
	if d.fnMap[dtype] != nil && priority < d.priorities[dtype] {
		return
	}
	d.fnMap[dtype] = fn
	d.priorities[dtype] = priority
}

// IsSupported returns whether a function was registered for dtype.
func (d *DTypeDispatcher) IsSupported(dtype dtypes.DType) bool {
	return dtype > dtypes.InvalidDType && dtype < dtypes.MaxDType && d.fnMap[dtype] != nil
}

// Dispatch calls the function registered for the dtype.
// It panics (with an exception) if the dtype is not supported.
func (d *DTypeDispatcher) Dispatch(dtype dtypes.DType, params ...any) {
	if !d.IsSupported(dtype) {
		exceptions.Panicf("dtype %s not supported by %s", dtype, d.Name)
	}
	d.fnMap[dtype](params...)
}

// DTypePairMap maps a pair of dtypes, usually (input, output), to an
// arbitrary function asserted back to its concrete type at the call site.
type DTypePairMap struct {
	Name       string
	fnMap      [dtypes.MaxDType][dtypes.MaxDType]any
	priorities [dtypes.MaxDType][dtypes.MaxDType]int
}

// NewDTypePairMap creates a named map of dtype pairs to functions.
func NewDTypePairMap(name string) *DTypePairMap {
	return &DTypePairMap{Name: name}
}

// Register a function for the pair (from, to). A lower priority than the one
// already registered is ignored.
func (m *DTypePairMap) Register(from, to dtypes.DType, priority int, fn any) {
	if from <= dtypes.InvalidDType || from >= dtypes.MaxDType ||
		to <= dtypes.InvalidDType || to >= dtypes.MaxDType {
		exceptions.Panicf("dtype pair (%s, %s) not supported by %s", from, to, m.Name)
	}
	if m.fnMap[from][to] != nil && priority < m.priorities[from][to] {
		return
	}
	m.fnMap[from][to] = fn
	m.priorities[from][to] = priority
}

// Has returns whether a function was registered for the pair (from, to).
func (m *DTypePairMap) Has(from, to dtypes.DType) bool {
	return from > dtypes.InvalidDType && from < dtypes.MaxDType &&
		to > dtypes.InvalidDType && to < dtypes.MaxDType &&
		m.fnMap[from][to] != nil
}

// Get returns the function registered for the pair (from, to).
// It panics (with an exception) if the pair is not supported.
func (m *DTypePairMap) Get(from, to dtypes.DType) any {
	if !m.Has(from, to) {
		exceptions.Panicf("dtype pair (%s, %s) not supported by %s", from, to, m.Name)
	}
	return m.fnMap[from][to]
}

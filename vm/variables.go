package vm

import (
	"fmt"
	"sort"
)

// Variables is the variable table. Names are declared by their first write.
type Variables struct {
	data map[string]Value
}

func NewVariables() *Variables {
	return &Variables{
		data: make(map[string]Value),
	}
}

func (vs *Variables) Put(name string, v Value) {
	vs.data[name] = v
}

func (vs *Variables) Get(name string) (Value, error) {
	val, exists := vs.data[name]
	if !exists {
		return 0, fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
	}
	return val, nil
}

func (vs *Variables) Len() int {
	return len(vs.data)
}

// Names returns the declared names in sorted order
func (vs *Variables) Names() []string {
	out := make([]string, 0, len(vs.data))
	for k := range vs.data {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Snapshot copies the table so callers can inspect it without aliasing
func (vs *Variables) Snapshot() map[string]Value {
	out := make(map[string]Value, len(vs.data))
	for k, v := range vs.data {
		out[k] = v
	}
	return out
}

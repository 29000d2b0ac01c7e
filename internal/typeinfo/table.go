package typeinfo

import (
	"errors"
	"fmt"
)

// Table is a fixed map of classes. The zero value is empty and ready to use.
type Table struct {
	classes map[string]*ClassInfo
}

// NewTable returns a table holding infos.
func NewTable(infos ...*ClassInfo) *Table {
	t := &Table{}
	for _, info := range infos {
		t.Add(info)
	}
	return t
}

// Add inserts or replaces info.
func (t *Table) Add(info *ClassInfo) {
	if t.classes == nil {
		t.classes = make(map[string]*ClassInfo)
	}
	t.classes[info.Name] = info
}

// Len returns the number of classes in the table.
func (t *Table) Len() int { return len(t.classes) }

func (t *Table) Resolve(name string) (*ClassInfo, error) {
	if info, ok := t.classes[name]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Multi consults resolvers in order and returns the first hit.
type Multi []Resolver

func (m Multi) Resolve(name string) (*ClassInfo, error) {
	for _, r := range m {
		info, err := r.Resolve(name)
		if err == nil {
			return info, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

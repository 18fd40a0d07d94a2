/*
File    : gomixvm/domain/fakesql/fakesql.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package fakesql realizes the out-of-scope in-memory fake SQL store
// (spec.md §1) as a table-name-keyed slice of row maps, with a tiny
// predicate-based "SELECT ... WHERE col = val" evaluator. Grounded on the
// teacher's std/json.go GoMixObject<->encoding/json tree conversion and
// std/maps.go map-object idiom, reworked over value.Map rows.
package fakesql

import (
	"fmt"
	"sync"

	"github.com/akashmaji946/gomixvm/value"
)

type row map[string]value.Value

// Store is a mutex-guarded set of named tables, each an ordered list of
// rows.
type Store struct {
	mu     sync.Mutex
	tables map[string][]row
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{tables: make(map[string][]row)}
}

// Natives returns sql_insert and sql_select for registration.
func (s *Store) Natives() map[string]value.NativeFn {
	return map[string]value.NativeFn{
		"sql_insert": s.insert,
		"sql_select": s.selectWhere,
	}
}

func rowFromValue(v value.Value) row {
	r := row{}
	if v.Type() != value.TypeMap {
		return r
	}
	m := v.AsMap()
	for i, k := range m.Keys {
		r[k.AsString()] = m.Values[i]
	}
	return r
}

func rowToValue(r row) value.Value {
	m := &value.Map{}
	for k, v := range r {
		m.Keys = append(m.Keys, value.String(k))
		m.Values = append(m.Values, v)
	}
	return value.MapOf(m)
}

// Insert appends row to table, used directly by Go-level callers/tests.
func (s *Store) Insert(table string, r row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], r)
}

// Select returns every row in table whose col equals val.
func (s *Store) Select(table, col string, val value.Value) []row {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []row
	for _, r := range s.tables[table] {
		if cell, ok := r[col]; ok && cell.Equal(val) {
			out = append(out, r)
		}
	}
	return out
}

// insert(table, row) -> nil. row is a value.Map; since map literals
// always lower to NIL at compile time (spec.md §9), a go-mix program
// cannot construct one, but the native still accepts a real value.Map
// from Go-level callers and tests (spec.md §8).
func (s *Store) insert(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Nil(), fmt.Errorf("sql_insert expects 2 arguments (table, row)")
	}
	table := args[0].AsString()
	s.Insert(table, rowFromValue(args[1]))
	return value.Nil(), nil
}

// selectWhere(table, col, val) -> array of matching row maps.
func (s *Store) selectWhere(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return value.Nil(), fmt.Errorf("sql_select expects 3 arguments (table, col, val)")
	}
	table := args[0].AsString()
	col := args[1].AsString()
	matches := s.Select(table, col, args[2])

	elems := make([]value.Value, len(matches))
	for i, r := range matches {
		elems[i] = rowToValue(r)
	}
	return value.ArrayOf(elems), nil
}

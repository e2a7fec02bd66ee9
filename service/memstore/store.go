// Package memstore is the in-memory storage backend, it keeps every table as a
// map of immutable values behind one store-wide RWMutex.
//
// Values must never be mutated after they are handed to the store: updates
// replace the value, so a transaction can roll back by restoring a shallow
// copy of the tables taken when it started.
package memstore

import (
	"context"
	"errors"
	"sync"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
)

var (
	// ErrNotFound is returned when no record has the given id
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert violates the id or a unique predicate
	ErrDuplicateKey = errors.New("duplicate key")
)

type txKey struct{}

type Store struct {
	mu     sync.RWMutex
	tables map[domain.Table]map[string]interface{}
}

func New() *Store {
	return &Store{
		tables: map[domain.Table]map[string]interface{}{},
	}
}

func (s *Store) inTx(c ctx.Ctx) bool {
	owner, _ := c.Value(txKey{}).(*Store)
	return owner == s
}

// read and write take the lock unless c already runs inside a transaction holding it
func (s *Store) read(c ctx.Ctx) func() {
	if s.inTx(c) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) write(c ctx.Ctx) func() {
	if s.inTx(c) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) table(t domain.Table) map[string]interface{} {
	rows, ok := s.tables[t]
	if !ok {
		rows = map[string]interface{}{}
		s.tables[t] = rows
	}
	return rows
}

func (s *Store) snapshot() map[domain.Table]map[string]interface{} {
	res := make(map[domain.Table]map[string]interface{}, len(s.tables))
	for t, rows := range s.tables {
		cp := make(map[string]interface{}, len(rows))
		for id, v := range rows {
			cp[id] = v
		}
		res[t] = cp
	}
	return res
}

// RunWithTransaction runs fn holding the write lock. Every change made through
// the ctx given to run is discarded if run returns an error or panics.
// Nested calls join the outer transaction.
func (s *Store) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) (err error) {
	if s.inTx(c) {
		return run(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.tables = snapshot
		}
	}()

	if err := run(ctx.WithContext(c, context.WithValue(c.Context, txKey{}, s))); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Store) Get(c ctx.Ctx, t domain.Table, id string) (interface{}, error) {
	defer s.read(c)()
	v, ok := s.tables[t][id]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Find returns every value matching pred, in no particular order
func (s *Store) Find(c ctx.Ctx, t domain.Table, pred func(v interface{}) bool) []interface{} {
	defer s.read(c)()
	res := []interface{}{}
	for _, v := range s.tables[t] {
		if pred == nil || pred(v) {
			res = append(res, v)
		}
	}
	return res
}

// Insert stores v under id. It fails with ErrDuplicateKey if id exists or an
// existing value matches one of the unique predicates.
func (s *Store) Insert(c ctx.Ctx, t domain.Table, id string, v interface{}, uniques ...func(existing interface{}) bool) error {
	defer s.write(c)()
	rows := s.table(t)
	if _, ok := rows[id]; ok {
		return ErrDuplicateKey
	}
	for _, existing := range rows {
		for _, unique := range uniques {
			if unique(existing) {
				return ErrDuplicateKey
			}
		}
	}
	rows[id] = v
	return nil
}

// Update replaces the value of id by the result of fn, atomically.
// An error from fn aborts the update and is returned as is.
func (s *Store) Update(c ctx.Ctx, t domain.Table, id string, fn func(cur interface{}) (interface{}, error)) error {
	defer s.write(c)()
	rows := s.table(t)
	cur, ok := rows[id]
	if !ok {
		return ErrNotFound
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	rows[id] = next
	return nil
}

// UpdateAll applies fn to every value, values for which fn returns false are left untouched
func (s *Store) UpdateAll(c ctx.Ctx, t domain.Table, fn func(cur interface{}) (interface{}, bool)) int {
	defer s.write(c)()
	rows := s.table(t)
	n := 0
	for id, cur := range rows {
		if next, ok := fn(cur); ok {
			rows[id] = next
			n++
		}
	}
	return n
}

// Delete removes id if cond accepts its current value, cond may be nil
func (s *Store) Delete(c ctx.Ctx, t domain.Table, id string, cond func(cur interface{}) error) error {
	defer s.write(c)()
	rows := s.table(t)
	cur, ok := rows[id]
	if !ok {
		return ErrNotFound
	}
	if cond != nil {
		if err := cond(cur); err != nil {
			return err
		}
	}
	delete(rows, id)
	return nil
}

// Ping fails only when c is already done
func (s *Store) Ping(c ctx.Ctx) error {
	return c.Err()
}

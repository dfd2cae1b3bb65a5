package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// Entity is the capability every stored type must expose: a gettable,
// settable integer identity.
type Entity interface {
	EntityID() int
	SetEntityID(id int)
}

// RowScanner is the subset of sql.Row / sql.Rows used by mappers.
type RowScanner interface {
	Scan(dest ...any) error
}

// Mapper describes how one entity type maps onto its table. Columns
// excludes the id column; Values and Scan follow the Columns order
// (Scan reads id first).
type Mapper[T Entity] struct {
	Table   string
	Columns []string
	Values  func(e T) []any
	Scan    func(row RowScanner) (T, error)
}

type changeOp int

const (
	opInsert changeOp = iota
	opUpdate
	opDelete
)

type stagedChange[T Entity] struct {
	op     changeOp
	entity T
}

// Repository provides uniform CRUD over one entity type. Insert,
// Update and Delete only stage changes in memory; the owning
// UnitOfWork's Save commits them. Reads always go to the committed
// store.
type Repository[T Entity] struct {
	db     *DB
	mapper Mapper[T]
	staged []stagedChange[T]
}

func newRepository[T Entity](db *DB, mapper Mapper[T]) *Repository[T] {
	return &Repository[T]{db: db, mapper: mapper}
}

// GetAll returns every committed entity, ordered by id. An empty
// result is not an error.
func (r *Repository[T]) GetAll() ([]T, error) {
	query := fmt.Sprintf("SELECT id, %s FROM %s ORDER BY id",
		strings.Join(r.mapper.Columns, ", "), r.mapper.Table)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []T
	for rows.Next() {
		e, err := r.mapper.Scan(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// GetByID looks up one entity by identity. Absence is reported through
// the bool, not as an error.
func (r *Repository[T]) GetByID(id int) (T, bool, error) {
	var zero T

	query := fmt.Sprintf("SELECT id, %s FROM %s WHERE id = ?",
		strings.Join(r.mapper.Columns, ", "), r.mapper.Table)

	e, err := r.mapper.Scan(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	return e, true, nil
}

// First returns the first committed entity matching the predicate,
// scanning in id order.
func (r *Repository[T]) First(match func(T) bool) (T, bool, error) {
	var zero T

	entities, err := r.GetAll()
	if err != nil {
		return zero, false, err
	}
	for _, e := range entities {
		if match(e) {
			return e, true, nil
		}
	}
	return zero, false, nil
}

// Insert assigns the entity its identity and stages it for creation.
// The id is observable immediately, before Save commits.
func (r *Repository[T]) Insert(e T) error {
	id, err := r.db.NextID(r.mapper.Table)
	if err != nil {
		return err
	}
	e.SetEntityID(id)
	r.staged = append(r.staged, stagedChange[T]{op: opInsert, entity: e})
	return nil
}

// Update stages a replace-by-identity. If the row no longer exists the
// commit is a no-op; nothing at this layer reports it.
func (r *Repository[T]) Update(e T) {
	r.staged = append(r.staged, stagedChange[T]{op: opUpdate, entity: e})
}

// Delete stages removal by identity. Deleting an already-removed id is
// a no-op.
func (r *Repository[T]) Delete(e T) {
	r.staged = append(r.staged, stagedChange[T]{op: opDelete, entity: e})
}

func (r *Repository[T]) pending() int {
	return len(r.staged)
}

// flush writes every staged change through the transaction, in staging
// order.
func (r *Repository[T]) flush(tx *sql.Tx) error {
	for _, c := range r.staged {
		var err error
		switch c.op {
		case opInsert:
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(r.mapper.Columns)), ", ")
			query := fmt.Sprintf("INSERT INTO %s (id, %s) VALUES (?, %s)",
				r.mapper.Table, strings.Join(r.mapper.Columns, ", "), placeholders)
			args := append([]any{c.entity.EntityID()}, r.mapper.Values(c.entity)...)
			_, err = tx.Exec(query, args...)
		case opUpdate:
			query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?",
				r.mapper.Table, strings.Join(r.mapper.Columns, " = ?, "))
			args := append(r.mapper.Values(c.entity), c.entity.EntityID())
			_, err = tx.Exec(query, args...)
		case opDelete:
			query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.mapper.Table)
			_, err = tx.Exec(query, c.entity.EntityID())
		}
		if err != nil {
			return newPersistenceError(r.mapper.Table, err)
		}
	}
	return nil
}

func (r *Repository[T]) clear() {
	r.staged = nil
}

package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// PersistenceError reports a store-level commit failure: which entity
// table was being written, the offending column when the store names
// one, and the store's message. The enclosing Save guarantees nothing
// was committed.
type PersistenceError struct {
	Entity  string
	Field   string
	Message string
}

func (e *PersistenceError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("persistence failed for %s (field %s): %s", e.Entity, e.Field, e.Message)
	}
	return fmt.Sprintf("persistence failed for %s: %s", e.Entity, e.Message)
}

func newPersistenceError(entity string, err error) *PersistenceError {
	pe := &PersistenceError{Entity: entity, Message: err.Error()}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		pe.Field = constraintField(err.Error())
	}
	return pe
}

// constraintField pulls the column out of sqlite constraint messages.
// NOT NULL and UNIQUE violations read "constraint failed: table.column";
// CHECK violations report the constraint name, which the schema names
// after the column it guards.
func constraintField(msg string) string {
	idx := strings.LastIndex(msg, ": ")
	if idx < 0 {
		return ""
	}
	qualified := msg[idx+2:]
	if dot := strings.LastIndex(qualified, "."); dot >= 0 {
		return qualified[dot+1:]
	}
	if strings.ContainsRune(qualified, ' ') {
		return ""
	}
	return qualified
}

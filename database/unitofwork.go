package database

import (
	"database/sql"

	"project-tracker/models"
)

type repositoryFlusher interface {
	flush(tx *sql.Tx) error
	clear()
	pending() int
}

// UnitOfWork is the transaction boundary for one logical operation. It
// creates one repository per entity type on first access, memoizes it
// for its lifetime, and commits every staged change across all of them
// in a single Save. One UnitOfWork per request or test scope; never
// shared across goroutines.
type UnitOfWork struct {
	db *DB

	users    *Repository[*models.User]
	tokens   *Repository[*models.Token]
	contacts *Repository[*models.Contact]
	projects *Repository[*models.Project]
	tasks    *Repository[*models.Task]

	spawned []repositoryFlusher
	closed  bool
}

func NewUnitOfWork(db *DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Users() *Repository[*models.User] {
	if u.users == nil {
		u.users = newRepository(u.db, userMapper)
		u.spawned = append(u.spawned, u.users)
	}
	return u.users
}

func (u *UnitOfWork) Tokens() *Repository[*models.Token] {
	if u.tokens == nil {
		u.tokens = newRepository(u.db, tokenMapper)
		u.spawned = append(u.spawned, u.tokens)
	}
	return u.tokens
}

func (u *UnitOfWork) Contacts() *Repository[*models.Contact] {
	if u.contacts == nil {
		u.contacts = newRepository(u.db, contactMapper)
		u.spawned = append(u.spawned, u.contacts)
	}
	return u.contacts
}

func (u *UnitOfWork) Projects() *Repository[*models.Project] {
	if u.projects == nil {
		u.projects = newRepository(u.db, projectMapper)
		u.spawned = append(u.spawned, u.projects)
	}
	return u.projects
}

func (u *UnitOfWork) Tasks() *Repository[*models.Task] {
	if u.tasks == nil {
		u.tasks = newRepository(u.db, taskMapper)
		u.spawned = append(u.spawned, u.tasks)
	}
	return u.tasks
}

// Save commits every staged change across all repositories spawned so
// far as one store transaction. On failure it returns a
// *PersistenceError and no subset of the staged changes is committed;
// the changes stay staged.
func (u *UnitOfWork) Save() error {
	total := 0
	for _, r := range u.spawned {
		total += r.pending()
	}
	if total == 0 {
		return nil
	}

	tx, err := u.db.Begin()
	if err != nil {
		return newPersistenceError("", err)
	}

	for _, r := range u.spawned {
		if err := r.flush(tx); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return newPersistenceError("", err)
	}

	for _, r := range u.spawned {
		r.clear()
	}
	return nil
}

// Close discards any staged-but-unsaved changes and releases the
// scope. Closing twice is a no-op.
func (u *UnitOfWork) Close() {
	if u.closed {
		return
	}
	u.closed = true
	for _, r := range u.spawned {
		r.clear()
	}
}

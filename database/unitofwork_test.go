package database

import (
	"testing"

	"project-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_RepositoriesAreMemoized(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	assert.Same(t, uow.Contacts(), uow.Contacts())
	assert.Same(t, uow.Projects(), uow.Projects())
	assert.Same(t, uow.Tasks(), uow.Tasks())
	assert.Same(t, uow.Users(), uow.Users())
	assert.Same(t, uow.Tokens(), uow.Tokens())
}

func TestUnitOfWork_StagedChangesInvisibleUntilSave(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	contact := &models.Contact{FirstName: "Britney", LastName: "James", Email: "brit@tf.com"}
	require.NoError(t, uow.Contacts().Insert(contact))

	contactID := contact.ID
	project := &models.Project{ProjectName: "Migration", ContactID: &contactID}
	require.NoError(t, uow.Projects().Insert(project))

	// Interrupted before Save: a fresh unit of work sees no partial write
	uow.Close()

	fresh := NewUnitOfWork(db)
	defer fresh.Close()

	_, found, err := fresh.Contacts().GetByID(contact.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = fresh.Projects().GetByID(project.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUnitOfWork_SaveCommitsAcrossRepositories(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	contact := &models.Contact{FirstName: "Britney", LastName: "James", Email: "brit@tf.com"}
	require.NoError(t, uow.Contacts().Insert(contact))

	contactID := contact.ID
	project := &models.Project{ProjectName: "Migration", ContactID: &contactID}
	require.NoError(t, uow.Projects().Insert(project))

	task := &models.Task{TaskName: "Plan", ContactID: &contactID}
	require.NoError(t, uow.Tasks().Insert(task))

	require.NoError(t, uow.Save())

	fresh := NewUnitOfWork(db)
	defer fresh.Close()

	_, found, err := fresh.Contacts().GetByID(contact.ID)
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = fresh.Projects().GetByID(project.ID)
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = fresh.Tasks().GetByID(task.ID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestUnitOfWork_SaveFailureCommitsNothing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	valid := &models.Contact{FirstName: "Ket", LastName: "John", Email: "ket@ka.com"}
	require.NoError(t, uow.Contacts().Insert(valid))

	// first_name violates the store's non-empty check
	invalid := &models.Contact{FirstName: "", LastName: "John", Email: "no@first.com"}
	require.NoError(t, uow.Contacts().Insert(invalid))

	err := uow.Save()
	require.Error(t, err)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "contacts", pe.Entity)
	assert.Equal(t, "first_name", pe.Field)
	assert.NotEmpty(t, pe.Message)

	// The valid staged insert must not have been committed either
	fresh := NewUnitOfWork(db)
	defer fresh.Close()

	all, err := fresh.Contacts().GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUnitOfWork_CloseIsIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	contact := &models.Contact{FirstName: "Britney", LastName: "James", Email: "brit@tf.com"}
	require.NoError(t, uow.Contacts().Insert(contact))

	uow.Close()
	uow.Close()
}

func TestUnitOfWork_SaveWithNothingStaged(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	require.NoError(t, uow.Save())
}

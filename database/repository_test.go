package database

import (
	"os"
	"path/filepath"
	"testing"

	"project-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "project-tracker-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func TestRepository_InsertAssignsIDBeforeSave(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	contact := &models.Contact{FirstName: "Britney", LastName: "James", Email: "brit@tf.com"}
	err := uow.Contacts().Insert(contact)
	require.NoError(t, err)

	// Identity is observable immediately, before Save commits
	assert.Equal(t, 1, contact.ID)

	// Nothing committed yet
	all, err := uow.Contacts().GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, uow.Save())

	all, err = uow.Contacts().GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestRepository_RoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	contact := &models.Contact{FirstName: "Britney", LastName: "James", Email: "brit@tf.com"}
	require.NoError(t, uow.Contacts().Insert(contact))
	require.NoError(t, uow.Save())

	fresh := NewUnitOfWork(db)
	defer fresh.Close()

	got, found, err := fresh.Contacts().GetByID(contact.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, contact.ID, got.ID)
	assert.Equal(t, "Britney", got.FirstName)
	assert.Equal(t, "James", got.LastName)
	assert.Equal(t, "brit@tf.com", got.Email)
}

func TestRepository_InsertedIDIsPreviousMaxPlusOne(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	first := &models.Contact{FirstName: "Ket", LastName: "John", Email: "ket@ka.com"}
	require.NoError(t, uow.Contacts().Insert(first))
	require.NoError(t, uow.Save())

	before, err := uow.Contacts().GetAll()
	require.NoError(t, err)

	contact := &models.Contact{FirstName: "Britney", LastName: "James", Email: "brit@tf.com"}
	require.NoError(t, uow.Contacts().Insert(contact))
	require.NoError(t, uow.Save())

	after, err := uow.Contacts().GetAll()
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
	assert.Equal(t, first.ID+1, contact.ID)
}

func TestRepository_GetByIDAbsent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	got, found, err := uow.Contacts().GetByID(42)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestRepository_GetAllEmptyIsNotAnError(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	all, err := uow.Contacts().GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_DeleteIsIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	contact := &models.Contact{FirstName: "Disha", LastName: "John", Email: "ket@ka.com"}
	require.NoError(t, uow.Contacts().Insert(contact))
	require.NoError(t, uow.Save())

	uow.Contacts().Delete(contact)
	require.NoError(t, uow.Save())

	all, err := uow.Contacts().GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	// Deleting the already-removed id again is a no-op, not an error
	uow.Contacts().Delete(contact)
	require.NoError(t, uow.Save())

	all, err = uow.Contacts().GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_UpdateMissingIsSilentNoOp(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	ghost := &models.Contact{FirstName: "No", LastName: "One", Email: "no@one.com"}
	ghost.SetEntityID(99)
	uow.Contacts().Update(ghost)
	require.NoError(t, uow.Save())

	_, found, err := uow.Contacts().GetByID(99)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_First(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	uow := NewUnitOfWork(db)
	defer uow.Close()

	for _, c := range []*models.Contact{
		{FirstName: "Dipesh", LastName: "Parekh", Email: "di@di.com"},
		{FirstName: "Ket", LastName: "John", Email: "ket@ka.com"},
	} {
		require.NoError(t, uow.Contacts().Insert(c))
	}
	require.NoError(t, uow.Save())

	got, found, err := uow.Contacts().First(func(c *models.Contact) bool {
		return c.Email == "ket@ka.com"
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ket", got.FirstName)

	_, found, err = uow.Contacts().First(func(c *models.Contact) bool {
		return c.Email == "nobody@nowhere.com"
	})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNextID_Linearizable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	const workers = 8
	const perWorker = 25

	ids := make(chan int, workers*perWorker)
	done := make(chan struct{})

	for i := 0; i < workers; i++ {
		go func() {
			for j := 0; j < perWorker; j++ {
				id, err := db.NextID("contacts")
				assert.NoError(t, err)
				ids <- id
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < workers; i++ {
		<-done
	}
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}

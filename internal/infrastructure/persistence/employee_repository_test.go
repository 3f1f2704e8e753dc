package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appemployee "github.com/workify/backend/internal/application/employee"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
	"gorm.io/gorm"
)

func newTestEmployee(t *testing.T, db *gorm.DB, first, last string) *employee.Employee {
	t.Helper()
	email := shared.Slugify(first+"."+last) + "@example.com"
	user, err := identity.NewUser(email, email, first, last)
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(context.Background(), user))

	e, err := employee.NewEmployee(user.ID, first, last, email, shared.Slugify(first+" "+last), "", nil)
	require.NoError(t, err)
	require.NoError(t, NewGormEmployeeRepository(db).Save(context.Background(), e))
	return e
}

func TestGormEmployeeRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	zoe := newTestEmployee(t, db, "Zoe", "Adams")
	adam := newTestEmployee(t, db, "Adam", "Brown")

	t.Run("finds by slug and user", func(t *testing.T) {
		found, err := repo.FindBySlug(ctx, "zoe-adams")
		require.NoError(t, err)
		assert.Equal(t, zoe.ID, found.ID)

		found, err = repo.FindByUserID(ctx, adam.UserID)
		require.NoError(t, err)
		assert.Equal(t, adam.ID, found.ID)

		_, err = repo.FindByUserID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists by last name", func(t *testing.T) {
		list, total, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, zoe.ID, list[0].ID)
		assert.Equal(t, adam.ID, list[1].ID)
	})

	t.Run("searches e-mail", func(t *testing.T) {
		list, total, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10, Search: "ADAMBROWN@"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, adam.ID, list[0].ID)
	})

	t.Run("e-mail check skips the employee itself", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, zoe.Email, nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, zoe.Email, &zoe.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("inactive employees are listed on request", func(t *testing.T) {
		require.NoError(t, adam.Deactivate(nil))
		require.NoError(t, repo.Save(ctx, adam))

		_, total, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		_, total, err = repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10, IncludeInactive: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}

func TestGormRateRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRateRepository(db)
	ctx := context.Background()
	e := newTestEmployee(t, db, "Ann", "Lee")
	currencyID := uuid.New()

	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	old, err := employee.NewRate(e, decimal.NewFromInt(40), currencyID, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), &end, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, old))
	current, err := employee.NewRate(e, decimal.RequireFromString("55.5"), currencyID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, current))

	rates, err := repo.FindByEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, current.ID, rates[0].ID)
	assert.True(t, rates[0].Rate.Equal(decimal.RequireFromString("55.5")))

	at := employee.RateAt(rates, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, at)
	assert.Equal(t, old.ID, at.ID)

	require.NoError(t, repo.Delete(ctx, old.ID))
	assert.ErrorIs(t, repo.Delete(ctx, old.ID), shared.ErrNotFound)
}

func TestGormDocumentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()
	e := newTestEmployee(t, db, "Ann", "Lee")
	typeID := uuid.New()

	contract, err := employee.NewDocument(e, employee.DocumentDetails{
		Name:           "Contract",
		SignDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DocumentTypeID: typeID,
	}, "documents/contract.pdf", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, contract))

	annex, err := employee.NewDocument(e, employee.DocumentDetails{
		Name:           "Annex 1",
		SignDate:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DocumentTypeID: typeID,
		Reference:      contract,
	}, "documents/annex.pdf", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, annex))

	docs, err := repo.FindByEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, annex.ID, docs[0].ID)
	require.NotNil(t, docs[0].ReferenceDocumentID)
	assert.Equal(t, contract.ID, *docs[0].ReferenceDocumentID)

	t.Run("delete removes every listed document", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, []uuid.UUID{contract.ID, annex.ID}))

		docs, err := repo.FindByEmployee(ctx, e.ID)
		require.NoError(t, err)
		assert.Empty(t, docs)
		_, err = repo.FindByID(ctx, annex.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, []uuid.UUID{contract.ID}), shared.ErrNotFound)
	})
}

func TestGormTransactionScope(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()

	createPair := func(repos appemployee.TransactionalRepositories, username string) error {
		user, err := identity.NewUser(username, username, "Tx", "User")
		if err != nil {
			return err
		}
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}
		e, err := employee.NewEmployee(user.ID, "Tx", "User", username, shared.Slugify(username), "", nil)
		if err != nil {
			return err
		}
		return repos.EmployeeRepo().Save(ctx, e)
	}

	t.Run("commits user and employee together", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos appemployee.TransactionalRepositories) error {
			return createPair(repos, "tx.ok@example.com")
		})
		require.NoError(t, err)

		user, err := NewGormUserRepository(db).FindByUsername(ctx, "tx.ok@example.com")
		require.NoError(t, err)
		_, err = NewGormEmployeeRepository(db).FindByUserID(ctx, user.ID)
		assert.NoError(t, err)
	})

	t.Run("rolls both back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := scope.Execute(ctx, func(repos appemployee.TransactionalRepositories) error {
			if err := createPair(repos, "tx.fail@example.com"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		exists, err := NewGormUserRepository(db).ExistsByUsername(ctx, "tx.fail@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
		exists, err = NewGormEmployeeRepository(db).ExistsBySlug(ctx, shared.Slugify("tx.fail@example.com"))
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

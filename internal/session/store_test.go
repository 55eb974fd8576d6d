package session

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db), mock
}

func TestCartID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT value FROM session_state`).
			WithArgs(KeyCartID).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("gid://suxxus/Cart/abc"))

		id, err := store.CartID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "gid://suxxus/Cart/abc", id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingIsEmptyNotError", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT value FROM session_state`).
			WithArgs(KeyCartID).
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		id, err := store.CartID(ctx)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("QueryError", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT value FROM session_state`).
			WillReturnError(errors.New("db error"))

		_, err := store.CartID(ctx)
		assert.Error(t, err)
	})
}

func TestSetCartID(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO session_state`).
		WithArgs(KeyCartID, "gid://suxxus/Cart/abc").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.SetCartID(context.Background(), "gid://suxxus/Cart/abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO session_state`).
		WithArgs(KeyAccessToken, "tok-123").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, store.SetAccessToken(ctx, "tok-123"))

	mock.ExpectQuery(`SELECT value FROM session_state`).
		WithArgs(KeyAccessToken).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("tok-123"))
	tok, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)

	mock.ExpectExec(`DELETE FROM session_state`).
		WithArgs(KeyAccessToken).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.ClearAccessToken(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlist(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`INSERT INTO session_state`).
			WithArgs(KeyWishlist, `["p1","p2"]`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		require.NoError(t, store.SetWishlist(ctx, []string{"p1", "p2"}))

		mock.ExpectQuery(`SELECT value FROM session_state`).
			WithArgs(KeyWishlist).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`["p1","p2"]`))
		ids, err := store.Wishlist(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, ids)
	})

	t.Run("CorruptJSONDiscarded", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT value FROM session_state`).
			WithArgs(KeyWishlist).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{not json]`))

		ids, err := store.Wishlist(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("NilPersistsEmptyArray", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`INSERT INTO session_state`).
			WithArgs(KeyWishlist, `[]`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		require.NoError(t, store.SetWishlist(ctx, nil))
	})
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

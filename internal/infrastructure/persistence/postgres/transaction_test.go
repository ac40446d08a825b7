package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gen-api/internal/domain/entity"
)

func TestTxManagerCommit(t *testing.T) {
	client := newTestClient(t)
	tm := NewTxManager(client)
	users := NewUserRepository(client)
	prefs := NewPreferenceRepository(client)
	ctx := context.Background()

	err := tm.WithTransaction(ctx, func(txCtx context.Context) error {
		user := entity.NewUser("alice@example.com", "Alice")
		if err := user.SetPassword("secret-password"); err != nil {
			return err
		}
		if err := users.Create(txCtx, user); err != nil {
			return err
		}
		return prefs.Create(txCtx, entity.NewUserPreference(user.ID))
	})
	require.NoError(t, err)

	user, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)

	pref, err := prefs.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, "Default", pref.DefaultLinkedInStyle)
}

func TestTxManagerRollback(t *testing.T) {
	client := newTestClient(t)
	tm := NewTxManager(client)
	users := NewUserRepository(client)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tm.WithTransaction(ctx, func(txCtx context.Context) error {
		user := entity.NewUser("bob@example.com", "Bob")
		if err := user.SetPassword("secret-password"); err != nil {
			return err
		}
		if err := users.Create(txCtx, user); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	user, err := users.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestTxManagerNested(t *testing.T) {
	client := newTestClient(t)
	tm := NewTxManager(client)
	users := NewUserRepository(client)
	ctx := context.Background()

	err := tm.WithTransaction(ctx, func(outer context.Context) error {
		return tm.WithTransaction(outer, func(inner context.Context) error {
			user := entity.NewUser("carol@example.com", "Carol")
			if err := user.SetPassword("secret-password"); err != nil {
				return err
			}
			return users.Create(inner, user)
		})
	})
	require.NoError(t, err)

	user, err := users.GetByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.NotNil(t, user)
}

package sessions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/sessions"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := sessions.NewInMemory()

	_, err := repo.Get(ctx, &sessions.GetInput{SessionID: "arena-1"})
	assert.True(t, errors.IsNotFound(err))

	saved := testSession()
	_, err = repo.Save(ctx, &sessions.SaveInput{Session: saved})
	require.NoError(t, err)

	// the stored copy is detached from the caller's value
	saved.Players[0].Deaths = 99

	out, err := repo.Get(ctx, &sessions.GetInput{SessionID: "arena-1"})
	require.NoError(t, err)
	assert.Equal(t, testSession(), out.Session)

	del, err := repo.Delete(ctx, &sessions.DeleteInput{SessionID: "arena-1"})
	require.NoError(t, err)
	assert.True(t, del.Deleted)

	_, err = repo.Save(ctx, &sessions.SaveInput{})
	assert.True(t, errors.IsInvalidArgument(err))
}

package todo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestCreateStampsOwner(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := svc.Create(ctx, owner, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, owner, created.Owner)
	assert.Equal(t, "buy milk", created.Text)
	assert.False(t, created.Completed)
	assert.Nil(t, created.CompletedAt)
	assert.False(t, created.ID.IsZero())
}

func TestCreateRequiresText(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, primitive.NewObjectID(), "")
	assert.ErrorIs(t, err, ErrTextRequired)

	_, err = svc.Create(ctx, primitive.NewObjectID(), "   ")
	assert.ErrorIs(t, err, ErrTextRequired)
}

func TestOwnershipIsolation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()

	created, err := svc.Create(ctx, ownerA, "buy milk")
	require.NoError(t, err)

	// B cannot see, update or delete A's record
	_, err = svc.Get(ctx, created.ID, ownerB)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, created.ID, ownerB, nil, boolPtr(true))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Delete(ctx, created.ID, ownerB)
	assert.ErrorIs(t, err, ErrNotFound)

	// the record is unchanged and still visible to A
	got, err := svc.Get(ctx, created.ID, ownerA)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.False(t, got.Completed)

	docsB, err := svc.List(ctx, ownerB)
	require.NoError(t, err)
	assert.Empty(t, docsB)

	docsA, err := svc.List(ctx, ownerA)
	require.NoError(t, err)
	assert.Len(t, docsA, 1)
}

func TestCompletedTransitions(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := svc.Create(ctx, owner, "buy milk")
	require.NoError(t, err)

	// true-set stamps completedAt with the current server time
	before := time.Now().UnixMilli()
	updated, err := svc.Update(ctx, created.ID, owner, nil, boolPtr(true))
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, updated.Completed)
	assert.GreaterOrEqual(t, *updated.CompletedAt, before)

	// a second true-set refreshes the stamp
	first := *updated.CompletedAt
	time.Sleep(2 * time.Millisecond)
	updated, err = svc.Update(ctx, created.ID, owner, nil, boolPtr(true))
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Greater(t, *updated.CompletedAt, first)

	// false-set clears completedAt
	updated, err = svc.Update(ctx, created.ID, owner, nil, boolPtr(false))
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Nil(t, updated.CompletedAt)

	// omitting completed leaves both fields untouched
	updated, err = svc.Update(ctx, created.ID, owner, strPtr("buy oat milk"), nil)
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Text)
	assert.False(t, updated.Completed)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateRejectsEmptyText(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := svc.Create(ctx, owner, "buy milk")
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, owner, strPtr("  "), nil)
	assert.ErrorIs(t, err, ErrTextRequired)
}

func TestDeleteReturnsRecord(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := svc.Create(ctx, owner, "buy milk")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.Delete(ctx, created.ID, owner)
	assert.ErrorIs(t, err, ErrNotFound)
}

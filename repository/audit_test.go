package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uploadhub/uploadhub/entity"
)

func TestRecordStoresPayloadAsJSON(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.AuditRepo.Record(ctx, "folder", "created", "lshaw", entity.Folder{Name: "Projects"})
	require.NoError(t, err)

	events, err := repo.AuditRepo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, "folder", events[0].Entity)
	assert.Equal(t, "created", events[0].Action)
	assert.Equal(t, "lshaw", events[0].Actor)

	var payload entity.Folder
	require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
	assert.Equal(t, "Projects", payload.Name)
}

func TestRecordToleratesNilPayload(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.AuditRepo.Record(context.Background(), "upload", "removed", "", nil)
	assert.NoError(t, err)
}

func TestRecentHonorsLimitAndDefaults(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AuditRepo.Record(ctx, "folder", "created", "", nil))
	}

	events, err := repo.AuditRepo.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)

	events, err = repo.AuditRepo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uploadhub/uploadhub/entity"
)

func TestSeedPopulatesEmptyDatabase(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx))

	folders, err := repo.FolderRepo.GetFolders(ctx, false)
	require.NoError(t, err)
	require.Len(t, folders, 3)
	assert.Equal(t, "Personal", folders[0].Name)
	assert.Equal(t, "Project", folders[1].Name)
	assert.Equal(t, "Time Capsule", folders[2].Name)
}

func TestSeedLeavesExistingDataAlone(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.FolderRepo.AddFolder(ctx, &entity.Folder{Name: "Pre-existing"}))
	require.NoError(t, repo.Seed(ctx))

	folders, err := repo.FolderRepo.GetFolders(ctx, false)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "Pre-existing", folders[0].Name)
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx))
	require.NoError(t, repo.Seed(ctx))

	var count int64
	require.NoError(t, repo.Db.Model(&entity.Folder{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/uploadhub/uploadhub/entity"
	"gorm.io/gorm"
)

// FolderRepository handles all database operations for the Folder entity.
type FolderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

// GetFolders lists folders filtered on the soft-delete flag, by name
// ascending, each with its association rows loaded.
func (r *FolderRepository) GetFolders(ctx context.Context, deleted bool) ([]*entity.Folder, error) {
	var folders []*entity.Folder
	err := r.db.WithContext(ctx).
		Preload("FolderUploads").
		Where("is_deleted = ?", deleted).
		Order("name ASC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

// SearchFolders matches the term case-insensitively against folder name,
// description, and the names of associated uploads.
func (r *FolderRepository) SearchFolders(ctx context.Context, search string, deleted bool) ([]*entity.Folder, error) {
	pattern := "%" + strings.ToLower(search) + "%"

	matchingUploads := r.db.Model(&entity.FolderUpload{}).
		Select("folder_uploads.folder_id").
		Joins("JOIN uploads ON uploads.id = folder_uploads.upload_id").
		Where("LOWER(uploads.name) LIKE ?", pattern)

	var folders []*entity.Folder
	err := r.db.WithContext(ctx).
		Preload("FolderUploads").
		Where("is_deleted = ?", deleted).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR id IN (?)", pattern, pattern, matchingUploads).
		Order("name ASC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *FolderRepository) GetFolder(ctx context.Context, id uint) (*entity.Folder, error) {
	var folder entity.Folder
	err := r.db.WithContext(ctx).Preload("FolderUploads").First(&folder, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &folder, nil
}

func (r *FolderRepository) GetFolderByName(ctx context.Context, name string) (*entity.Folder, error) {
	var folder entity.Folder
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &folder, nil
}

// GetFolderUploads returns the non-deleted uploads of a named folder, newest
// first, each populated with its full set of folder associations rather than
// just the queried one.
func (r *FolderRepository) GetFolderUploads(ctx context.Context, name string, deleted bool) ([]*entity.Upload, error) {
	var uploads []*entity.Upload
	err := r.db.WithContext(ctx).
		Joins("JOIN folder_uploads ON folder_uploads.upload_id = uploads.id").
		Joins("JOIN folders ON folders.id = folder_uploads.folder_id").
		Where("LOWER(folders.name) = LOWER(?)", name).
		Where("uploads.is_deleted = ?", deleted).
		Preload("UploadFolders.Folder").
		Order("uploads.upload_date DESC").
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

// GetExcludedFolders returns the folders that do not yet contain the named
// upload file. It feeds the "add to folder" picker.
func (r *FolderRepository) GetExcludedFolders(ctx context.Context, file string, deleted bool) ([]*entity.Folder, error) {
	containing := r.db.Model(&entity.FolderUpload{}).
		Select("folder_uploads.folder_id").
		Joins("JOIN uploads ON uploads.id = folder_uploads.upload_id").
		Where("LOWER(uploads.file) = LOWER(?)", file)

	var folders []*entity.Folder
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", deleted).
		Where("id NOT IN (?)", containing).
		Order("name ASC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *FolderRepository) AddFolder(ctx context.Context, folder *entity.Folder) error {
	if err := r.Validate(ctx, folder); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(folder).Error
}

func (r *FolderRepository) UpdateFolder(ctx context.Context, folder *entity.Folder) error {
	if err := r.Validate(ctx, folder); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(folder).Error
}

// ToggleFolderDeleted flips the soft-delete flag on the stored row.
func (r *FolderRepository) ToggleFolderDeleted(ctx context.Context, folder *entity.Folder) error {
	if err := r.Validate(ctx, folder); err != nil {
		return err
	}

	var current entity.Folder
	if err := r.db.WithContext(ctx).First(&current, folder.ID).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&current).
		Update("is_deleted", !current.IsDeleted).Error
}

// RemoveFolder permanently deletes a folder: the association rows first,
// then the folder row itself.
func (r *FolderRepository) RemoveFolder(ctx context.Context, folder *entity.Folder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("folder_id = ?", folder.ID).Delete(&entity.FolderUpload{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Folder{}, folder.ID).Error
	})
}

// Validate enforces the naming invariants: a non-empty name that no other
// folder holds, compared case-insensitively. The row itself is excluded by
// identifier so updates do not collide with themselves.
func (r *FolderRepository) Validate(ctx context.Context, folder *entity.Folder) error {
	if folder.Name == "" {
		return ErrFolderNameRequired
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Folder{}).
		Where("id <> ? AND LOWER(name) = LOWER(?)", folder.ID, folder.Name).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrFolderNameTaken
	}

	return nil
}

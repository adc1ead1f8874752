package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/uploadhub/uploadhub/entity"
	"gorm.io/gorm"
)

// FolderUploadRepository handles the association rows linking folders and
// uploads.
type FolderUploadRepository struct {
	db *gorm.DB
}

func NewFolderUploadRepository(db *gorm.DB) *FolderUploadRepository {
	return &FolderUploadRepository{db: db}
}

// AddFolderUploads creates a batch of associations. The batch is
// all-or-nothing: every member is validated before any row is written.
func (r *FolderUploadRepository) AddFolderUploads(ctx context.Context, folderUploads []entity.FolderUpload) error {
	if err := r.ValidateBatch(ctx, folderUploads); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&folderUploads).Error
}

func (r *FolderUploadRepository) UpdateFolderUpload(ctx context.Context, folderUpload *entity.FolderUpload) error {
	if err := r.Validate(ctx, folderUpload); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(folderUpload).Error
}

// RemoveFolderUpload breaks the association between a named folder and an
// upload. Unlike entity lookups, a missing association is an explicit
// failure.
func (r *FolderUploadRepository) RemoveFolderUpload(ctx context.Context, name string, upload *entity.Upload) error {
	var folderUpload entity.FolderUpload
	err := r.db.WithContext(ctx).
		Joins("JOIN folders ON folders.id = folder_uploads.folder_id").
		Where("LOWER(folders.name) = LOWER(?)", name).
		Where("folder_uploads.upload_id = ?", upload.ID).
		First(&folderUpload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s does not contain %s", ErrAssociationNotFound, name, upload.File)
		}
		return err
	}

	return r.db.WithContext(ctx).Delete(&folderUpload).Error
}

// Validate enforces the referential invariants: both endpoints must be
// positive identifiers and the (folder, upload) pair must not already exist
// in another row.
func (r *FolderUploadRepository) Validate(ctx context.Context, folderUpload *entity.FolderUpload) error {
	if folderUpload.FolderID < 1 {
		return ErrFolderRequired
	}
	if folderUpload.UploadID < 1 {
		return ErrUploadRequired
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.FolderUpload{}).
		Where("id <> ? AND folder_id = ? AND upload_id = ?",
			folderUpload.ID, folderUpload.FolderID, folderUpload.UploadID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateAssociation
	}

	return nil
}

func (r *FolderUploadRepository) ValidateBatch(ctx context.Context, folderUploads []entity.FolderUpload) error {
	for i := range folderUploads {
		if err := r.Validate(ctx, &folderUploads[i]); err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/uploadhub/uploadhub/entity"
	"github.com/uploadhub/uploadhub/infra"
	"gorm.io/gorm"
)

// UploadRepository handles the Upload entity and the ingestion path that
// feeds it. The store owns the bytes on disk; the repository owns the rows.
type UploadRepository struct {
	db    *gorm.DB
	store *infra.LocalUploadStore
}

func NewUploadRepository(db *gorm.DB, store *infra.LocalUploadStore) *UploadRepository {
	return &UploadRepository{db: db, store: store}
}

// GetUploads lists uploads filtered on the soft-delete flag, newest first,
// each with its folder associations loaded.
func (r *UploadRepository) GetUploads(ctx context.Context, deleted bool) ([]*entity.Upload, error) {
	var uploads []*entity.Upload
	err := r.db.WithContext(ctx).
		Preload("UploadFolders.Folder").
		Where("is_deleted = ?", deleted).
		Order("upload_date DESC").
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

// SearchUploads matches the term case-insensitively against the stored file
// name and the names and descriptions of associated folders.
func (r *UploadRepository) SearchUploads(ctx context.Context, search string, deleted bool) ([]*entity.Upload, error) {
	pattern := "%" + strings.ToLower(search) + "%"

	matchingFolders := r.db.Model(&entity.FolderUpload{}).
		Select("folder_uploads.upload_id").
		Joins("JOIN folders ON folders.id = folder_uploads.folder_id").
		Where("LOWER(folders.name) LIKE ? OR LOWER(folders.description) LIKE ?", pattern, pattern)

	var uploads []*entity.Upload
	err := r.db.WithContext(ctx).
		Preload("UploadFolders.Folder").
		Where("is_deleted = ?", deleted).
		Where("LOWER(file) LIKE ? OR id IN (?)", pattern, matchingFolders).
		Order("upload_date DESC").
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *UploadRepository) GetUpload(ctx context.Context, id uint) (*entity.Upload, error) {
	var upload entity.Upload
	err := r.db.WithContext(ctx).
		Preload("UploadFolders.Folder").
		First(&upload, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &upload, nil
}

func (r *UploadRepository) GetUploadByName(ctx context.Context, file string) (*entity.Upload, error) {
	var upload entity.Upload
	err := r.db.WithContext(ctx).
		Preload("UploadFolders.Folder").
		Where("LOWER(file) = LOWER(?)", file).
		First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &upload, nil
}

// GetUploadFolders returns the non-deleted folders containing an upload,
// by name ascending.
func (r *UploadRepository) GetUploadFolders(ctx context.Context, uploadID uint, deleted bool) ([]*entity.Folder, error) {
	var folders []*entity.Folder
	err := r.db.WithContext(ctx).
		Joins("JOIN folder_uploads ON folder_uploads.folder_id = folders.id").
		Where("folder_uploads.upload_id = ?", uploadID).
		Where("folders.is_deleted = ?", deleted).
		Order("folders.name ASC").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

// GetExcludedUploads returns the uploads not yet contained in the named
// folder. It feeds the "add upload" picker.
func (r *UploadRepository) GetExcludedUploads(ctx context.Context, name string, deleted bool) ([]*entity.Upload, error) {
	contained := r.db.Model(&entity.FolderUpload{}).
		Select("folder_uploads.upload_id").
		Joins("JOIN folders ON folders.id = folder_uploads.folder_id").
		Where("LOWER(folders.name) = LOWER(?)", name)

	var uploads []*entity.Upload
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", deleted).
		Where("id NOT IN (?)", contained).
		Order("upload_date DESC").
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

// IngestBatch persists every file of a multipart batch: bytes first, then
// the metadata row. An empty batch fails before any side effect.
func (r *UploadRepository) IngestBatch(ctx context.Context, files []*multipart.FileHeader) ([]*entity.Upload, error) {
	if len(files) < 1 {
		return nil, ErrNoFiles
	}

	uploads := make([]*entity.Upload, 0, len(files))
	for _, file := range files {
		upload, err := r.ingestOne(ctx, file)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	return uploads, nil
}

func (r *UploadRepository) ingestOne(ctx context.Context, file *multipart.FileHeader) (*entity.Upload, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Filename, err)
	}
	defer src.Close()

	stored, err := r.store.Store(file.Filename, src)
	if err != nil {
		return nil, err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	upload := &entity.Upload{
		File:       stored.File,
		Name:       file.Filename,
		Path:       stored.Path,
		URL:        stored.URL,
		FileType:   contentType,
		Size:       file.Size,
		UploadDate: time.Now(),
	}

	if err := r.db.WithContext(ctx).Create(upload).Error; err != nil {
		return nil, err
	}

	return upload, nil
}

// ToggleUploadDeleted flips the soft-delete flag on the stored row.
func (r *UploadRepository) ToggleUploadDeleted(ctx context.Context, upload *entity.Upload) error {
	var current entity.Upload
	if err := r.db.WithContext(ctx).First(&current, upload.ID).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&current).
		Update("is_deleted", !current.IsDeleted).Error
}

// RemoveUpload permanently deletes an upload. The backing file goes first;
// if that fails the rows stay untouched and the error propagates.
func (r *UploadRepository) RemoveUpload(ctx context.Context, upload *entity.Upload) error {
	if err := r.store.Delete(upload.Path); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("upload_id = ?", upload.ID).Delete(&entity.FolderUpload{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Upload{}, upload.ID).Error
	})
}

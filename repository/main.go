package repository

import (
	"errors"

	"github.com/uploadhub/uploadhub/infra"
	"gorm.io/gorm"
)

// Validation failures carry the message shown to the user; the controller
// maps them to a rejected request. No partial write happens after one.
var (
	ErrFolderNameRequired   = errors.New("a folder must have a name")
	ErrFolderNameTaken      = errors.New("a folder with this name already exists")
	ErrFolderRequired       = errors.New("an upload must be associated with a folder")
	ErrUploadRequired       = errors.New("a folder must be associated with an upload")
	ErrDuplicateAssociation = errors.New("this folder already contains the specified upload")
	ErrNoFiles              = errors.New("no files provided for upload")
	ErrAssociationNotFound  = errors.New("association not found")
)

func IsValidationError(err error) bool {
	return errors.Is(err, ErrFolderNameRequired) ||
		errors.Is(err, ErrFolderNameTaken) ||
		errors.Is(err, ErrFolderRequired) ||
		errors.Is(err, ErrUploadRequired) ||
		errors.Is(err, ErrDuplicateAssociation) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrAssociationNotFound)
}

type Repository struct {
	Db *gorm.DB

	FolderRepo       *FolderRepository
	UploadRepo       *UploadRepository
	FolderUploadRepo *FolderUploadRepository
	AuditRepo        *AuditRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = New(infra.Postgres.DB, infra.UploadStore)
	return repository
}

// New builds a repository over any gorm connection. Tests use this with an
// in-memory database.
func New(db *gorm.DB, store *infra.LocalUploadStore) *Repository {
	if db == nil {
		panic("database connection is nil")
	}
	return &Repository{
		Db:               db,
		FolderRepo:       NewFolderRepository(db),
		UploadRepo:       NewUploadRepository(db, store),
		FolderUploadRepo: NewFolderUploadRepository(db),
		AuditRepo:        NewAuditRepository(db),
	}
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

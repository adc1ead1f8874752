package entity

// FolderUpload is the explicit association row between a Folder and an
// Upload. It has its own identity so an association can be removed without
// touching either endpoint. The composite unique index is the storage-level
// backstop for the duplicate-association check.
type FolderUpload struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	FolderID uint `json:"folder_id" gorm:"not null;uniqueIndex:idx_folder_uploads_pair"`
	UploadID uint `json:"upload_id" gorm:"not null;uniqueIndex:idx_folder_uploads_pair"`

	Folder *Folder `json:"folder,omitempty" gorm:"foreignKey:FolderID"`
	Upload *Upload `json:"upload,omitempty" gorm:"foreignKey:UploadID"`
}

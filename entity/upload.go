package entity

import "time"

type Upload struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	File       string    `json:"file" gorm:"size:512;not null;uniqueIndex"`
	Name       string    `json:"name" gorm:"size:512"`
	Path       string    `json:"path" gorm:"size:1024"`
	URL        string    `json:"url" gorm:"size:1024"`
	FileType   string    `json:"file_type" gorm:"size:255"`
	Size       int64     `json:"size"`
	UploadDate time.Time `json:"upload_date"`
	IsDeleted  bool      `json:"is_deleted" gorm:"not null;default:false"`

	UploadFolders []FolderUpload `json:"upload_folders,omitempty" gorm:"foreignKey:UploadID"`
}

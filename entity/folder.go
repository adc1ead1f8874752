package entity

type Folder struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Description string `json:"description" gorm:"size:1024"`
	IsDeleted   bool   `json:"is_deleted" gorm:"not null;default:false"`

	FolderUploads []FolderUpload `json:"folder_uploads,omitempty" gorm:"foreignKey:FolderID"`
}

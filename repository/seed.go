package repository

import (
	"context"
	"log"

	"github.com/uploadhub/uploadhub/entity"
)

// Seed inserts the development fixture folders when the table is empty.
func (r *Repository) Seed(ctx context.Context) error {
	var count int64
	if err := r.Db.WithContext(ctx).Model(&entity.Folder{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding folders...")

	folders := []entity.Folder{
		{Name: "Project", Description: "Files necessary to execute some project"},
		{Name: "Personal", Description: "Personal files for safekeeping"},
		{Name: "Time Capsule", Description: "Store these for posterity. Do not open until 3020!"},
	}

	return r.Db.WithContext(ctx).Create(&folders).Error
}

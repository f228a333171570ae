package common

import (
	"log"
	"tourbook/src/models"

	"gorm.io/gorm"
)

// UpdateMissingSlugs fills in slugs for tours inserted without one.
func UpdateMissingSlugs(db *gorm.DB) {
	var tours []models.Tour
	if err := db.
		Model(&models.Tour{}).
		Select("id", "name").
		Where("slug IS NULL OR slug = ''").
		Find(&tours).
		Error; err != nil {
		log.Printf("Error querying Tours: %s\n", err.Error())
		return
	}
	if len(tours) == 0 {
		return
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		for _, tour := range tours {
			if err := tx.
				Model(&models.Tour{}).
				Where("id = ?", tour.ID).
				Update("slug", models.TourSlug(tour.Name, tour.ID)).
				Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		log.Printf("Error on update operation: %s\n", err.Error())
		return
	}
	log.Printf("Updated slugs for %d tours\n", len(tours))
}

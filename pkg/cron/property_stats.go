package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/rdogf/AppImovel/internal/model"
)

// InitPropertyStatsCron refreshes the per-property view counters nightly
// and prunes raw view rows older than a year.
func InitPropertyStatsCron(db *gorm.DB) {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		if err := AggregatePropertyStats(db); err != nil {
			log.Printf("Could not aggregate property stats: %v", err)
		}
		if err := PruneOldViews(db); err != nil {
			log.Printf("Could not prune old views: %v", err)
		}
	})
	if err != nil {
		log.Printf("Could not initialize property stats cron: %v", err)
		return
	}

	c.Start()
	log.Println("Property stats cron started")
}

// AggregatePropertyStats rolls the raw view log up into one counter row
// per property.
func AggregatePropertyStats(db *gorm.DB) error {
	var propertyIDs []uint
	if err := db.Model(&model.PropertyView{}).Distinct("property_id").Pluck("property_id", &propertyIDs).Error; err != nil {
		return err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)

	for _, propertyID := range propertyIDs {
		var total, unique, weekly int64

		db.Model(&model.PropertyView{}).Where("property_id = ?", propertyID).Count(&total)
		db.Model(&model.PropertyView{}).Where("property_id = ? AND is_unique = ?", propertyID, true).Count(&unique)
		db.Model(&model.PropertyView{}).Where("property_id = ? AND viewed_at >= ?", propertyID, weekAgo).Count(&weekly)

		stats := model.PropertyStats{PropertyID: propertyID}
		err := db.Where(model.PropertyStats{PropertyID: propertyID}).FirstOrCreate(&stats).Error
		if err != nil {
			return err
		}

		err = db.Model(&stats).Updates(map[string]interface{}{
			"total_views":  total,
			"unique_views": unique,
			"weekly_views": weekly,
			"last_updated": time.Now(),
		}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// PruneOldViews drops raw view rows past the retention window; the
// aggregated counters keep the history.
func PruneOldViews(db *gorm.DB) error {
	cutoff := time.Now().AddDate(-1, 0, 0)
	return db.Unscoped().Where("viewed_at < ?", cutoff).Delete(&model.PropertyView{}).Error
}

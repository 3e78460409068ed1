package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rdogf/AppImovel/internal/model"
)

// PhotoService keeps one ordered photo sequence per property: appends get
// the next rank, explicit reorders replace the whole ranking, deletions
// leave gaps alone.
type PhotoService struct {
	db *gorm.DB
}

func NewPhotoService(db *gorm.DB) *PhotoService {
	return &PhotoService{db: db}
}

// AddPhoto appends a photo at the end of the property's sequence:
// order = max(existing) + 1, so the first photo lands at 0 and becomes
// the cover. Concurrent appends to the same property can race into a
// duplicate rank; reads break ties by id, so display stays deterministic.
func (s *PhotoService) AddPhoto(propertyID uint, url, caption string) (*model.Photo, error) {
	var maxOrder int
	err := s.db.Model(&model.Photo{}).
		Where("property_id = ?", propertyID).
		Select("COALESCE(MAX(sort_order), -1)").
		Scan(&maxOrder).Error
	if err != nil {
		return nil, fmt.Errorf("could not compute photo order: %w", err)
	}

	photo := model.Photo{
		PropertyID: propertyID,
		URL:        url,
		Caption:    caption,
		Order:      maxOrder + 1,
	}
	if err := s.db.Create(&photo).Error; err != nil {
		return nil, fmt.Errorf("could not save photo: %w", err)
	}
	return &photo, nil
}

// DeletePhoto removes the row without renumbering siblings.
func (s *PhotoService) DeletePhoto(id uint) error {
	var photo model.Photo
	if err := s.db.First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("could not fetch photo: %w", err)
	}
	if err := s.db.Unscoped().Delete(&photo).Error; err != nil {
		return fmt.Errorf("could not delete photo: %w", err)
	}
	return nil
}

// GetPhoto loads one photo row, mostly so callers can check ownership of
// the parent property before touching it.
func (s *PhotoService) GetPhoto(id uint) (*model.Photo, error) {
	var photo model.Photo
	if err := s.db.Preload("Property").First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not fetch photo: %w", err)
	}
	return &photo, nil
}

// ListPhotos returns the property's photos in display order. Ties on the
// rank fall back to insertion order.
func (s *PhotoService) ListPhotos(propertyID uint) ([]model.Photo, error) {
	var photos []model.Photo
	err := s.db.Where("property_id = ?", propertyID).
		Order("sort_order ASC, id ASC").
		Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("could not fetch photos: %w", err)
	}
	return photos, nil
}

// Reorder replaces the property's ranking with the supplied id sequence:
// position in the slice becomes the photo's order. Runs in one
// transaction, so a half-applied reorder never survives; two concurrent
// calls resolve to whichever commits last.
//
// Every id must belong to the property and the sequence must be complete.
// The ids are checked against the property's own photo set first, so a
// confused or hostile caller cannot rewrite another property's ordering.
func (s *PhotoService) Reorder(propertyID uint, orderedIDs []uint) error {
	var ownIDs []uint
	err := s.db.Model(&model.Photo{}).
		Where("property_id = ?", propertyID).
		Pluck("id", &ownIDs).Error
	if err != nil {
		return fmt.Errorf("could not fetch photos: %w", err)
	}

	owned := make(map[uint]bool, len(ownIDs))
	for _, id := range ownIDs {
		owned[id] = true
	}

	verr := newValidationError()
	if len(orderedIDs) != len(ownIDs) {
		verr.add("photo_ids", fmt.Sprintf("expected %d ids, got %d", len(ownIDs), len(orderedIDs)))
	}
	seen := make(map[uint]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !owned[id] {
			verr.add("photo_ids", fmt.Sprintf("photo %d does not belong to property %d", id, propertyID))
			break
		}
		if seen[id] {
			verr.add("photo_ids", fmt.Sprintf("photo %d appears more than once", id))
			break
		}
		seen[id] = true
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not start transaction: %w", tx.Error)
	}
	for i, id := range orderedIDs {
		err := tx.Model(&model.Photo{}).
			Where("id = ?", id).
			Update("sort_order", i).Error
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("could not reorder photo %d: %w", id, err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("could not complete reorder: %w", err)
	}
	return nil
}

package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/rdogf/AppImovel/internal/model"
)

var validate = validator.New()

// PropertyService implements the listing lifecycle: creation, descriptive
// updates, soft delete/restore, master-only permanent delete and clone
// pre-fill. Every mutation goes through the Actor ownership predicates.
type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

type CreatePropertyInput struct {
	Title        string             `json:"title" validate:"required"`
	Address      string             `json:"address" validate:"required"`
	Neighborhood string             `json:"neighborhood" validate:"required"`
	City         string             `json:"city" validate:"required"`
	State        string             `json:"state"`
	PropertyType model.PropertyType `json:"property_type" validate:"required"`

	TotalArea     float64 `json:"total_area" validate:"min=0"`
	Bedrooms      int     `json:"bedrooms" validate:"min=0"`
	Suites        int     `json:"suites" validate:"min=0"`
	Bathrooms     int     `json:"bathrooms" validate:"min=0"`
	ParkingSpaces int     `json:"parking_spaces" validate:"min=0"`

	Characteristics string `json:"characteristics"`

	Price    float64  `json:"price" validate:"required,min=0"`
	CondoFee *float64 `json:"condo_fee"`
	IPTU     *float64 `json:"iptu"`

	Status   model.PropertyStatus `json:"status"`
	Featured bool                 `json:"featured"`
}

// UpdatePropertyInput carries the full replacement field set. Ownership,
// share code and the active flag are never part of an update payload.
type UpdatePropertyInput = CreatePropertyInput

// DraftFields is the clone pre-fill result: descriptive fields only, ready
// to seed a subsequent Create call. No id, owner, photos or timestamps.
type DraftFields struct {
	Title           string               `json:"title"`
	Address         string               `json:"address"`
	Neighborhood    string               `json:"neighborhood"`
	City            string               `json:"city"`
	State           string               `json:"state"`
	PropertyType    model.PropertyType   `json:"property_type"`
	TotalArea       float64              `json:"total_area"`
	Bedrooms        int                  `json:"bedrooms"`
	Suites          int                  `json:"suites"`
	Bathrooms       int                  `json:"bathrooms"`
	ParkingSpaces   int                  `json:"parking_spaces"`
	Characteristics string               `json:"characteristics"`
	Price           float64              `json:"price"`
	CondoFee        *float64             `json:"condo_fee"`
	IPTU            *float64             `json:"iptu"`
	Status          model.PropertyStatus `json:"status"`
	Featured        bool                 `json:"featured"`
}

// ListFilters narrows the listing view. Inactive requests the deactivated
// set and is master-only.
type ListFilters struct {
	PropertyType model.PropertyType
	Neighborhood string
	Search       string
	Inactive     bool
}

func (s *PropertyService) validateInput(input *CreatePropertyInput) error {
	verr := newValidationError()

	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("could not validate input: %w", err)
		}
		for _, fe := range fieldErrs {
			switch fe.Tag() {
			case "required":
				verr.add(fe.Field(), "is required")
			case "min":
				verr.add(fe.Field(), "must not be negative")
			default:
				verr.add(fe.Field(), "is invalid")
			}
		}
	}

	if input.Status != "" && !input.Status.Valid() {
		verr.add("Status", "is not a known status")
	}
	if input.CondoFee != nil && *input.CondoFee < 0 {
		verr.add("CondoFee", "must not be negative")
	}
	if input.IPTU != nil && *input.IPTU < 0 {
		verr.add("IPTU", "must not be negative")
	}

	return verr.orNil()
}

// Create registers a new listing owned by the actor. Status defaults to
// disponivel, the share code is generated by the model hook.
func (s *PropertyService) Create(actor Actor, input CreatePropertyInput) (*model.Property, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	property := model.Property{
		UserID:          actor.ID,
		Active:          true,
		Status:          input.Status,
		Title:           input.Title,
		Address:         input.Address,
		Neighborhood:    input.Neighborhood,
		City:            input.City,
		State:           input.State,
		PropertyType:    input.PropertyType,
		TotalArea:       input.TotalArea,
		Bedrooms:        input.Bedrooms,
		Suites:          input.Suites,
		Bathrooms:       input.Bathrooms,
		ParkingSpaces:   input.ParkingSpaces,
		Characteristics: input.Characteristics,
		Price:           input.Price,
		CondoFee:        input.CondoFee,
		IPTU:            input.IPTU,
		Featured:        input.Featured,
	}
	if property.State == "" {
		property.State = "RJ"
	}

	if err := s.db.Create(&property).Error; err != nil {
		return nil, fmt.Errorf("could not create property: %w", err)
	}
	return &property, nil
}

// Get loads one listing with its photos in display order. Non-master
// actors only resolve their own active listings; out-of-scope rows look
// like they don't exist.
func (s *PropertyService) Get(actor Actor, id uint) (*model.Property, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	query := s.db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("photos.sort_order ASC, photos.id ASC")
	})
	if !actor.IsMaster() {
		query = query.Where("user_id = ? AND active = ?", actor.ID, true)
	}

	var property model.Property
	if err := query.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not fetch property: %w", err)
	}
	return &property, nil
}

// GetByShareCode is the public share-page read: active listings only, no
// actor required.
func (s *PropertyService) GetByShareCode(code string) (*model.Property, error) {
	var property model.Property
	err := s.db.Where("share_code = ? AND active = ?", code, true).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.sort_order ASC, photos.id ASC")
		}).
		First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not fetch property: %w", err)
	}
	return &property, nil
}

// List returns the actor's listing view, newest first. Masters see every
// owner; the inactive set is only reachable through Filters.Inactive and
// only for masters.
func (s *PropertyService) List(actor Actor, filters ListFilters) ([]model.Property, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if filters.Inactive && !actor.CanViewInactive() {
		return nil, ErrUnauthorized
	}

	query := s.db.Where("active = ?", !filters.Inactive)
	if !actor.IsMaster() {
		query = query.Where("user_id = ?", actor.ID)
	}
	if filters.PropertyType != "" {
		query = query.Where("property_type = ?", filters.PropertyType)
	}
	if filters.Neighborhood != "" {
		query = query.Where("neighborhood = ?", filters.Neighborhood)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where(
			"title LIKE ? OR address LIKE ? OR neighborhood LIKE ? OR city LIKE ?",
			like, like, like, like,
		)
	}

	var properties []model.Property
	err := query.Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("photos.sort_order ASC, photos.id ASC")
	}).
		Order("created_at desc").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("could not fetch properties: %w", err)
	}
	return properties, nil
}

// fetchForMutation loads a row without view scoping so ownership failures
// surface as ErrUnauthorized instead of a misleading not-found.
func (s *PropertyService) fetchForMutation(actor Actor, id uint) (*model.Property, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	var property model.Property
	if err := s.db.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not fetch property: %w", err)
	}
	if !actor.CanMutate(&property) {
		return nil, ErrUnauthorized
	}
	return &property, nil
}

// Update overwrites the descriptive fields and status. UserID, ShareCode
// and Active are untouchable here.
func (s *PropertyService) Update(actor Actor, id uint, input UpdatePropertyInput) (*model.Property, error) {
	property, err := s.fetchForMutation(actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	property.Title = input.Title
	property.Address = input.Address
	property.Neighborhood = input.Neighborhood
	property.City = input.City
	property.PropertyType = input.PropertyType
	property.TotalArea = input.TotalArea
	property.Bedrooms = input.Bedrooms
	property.Suites = input.Suites
	property.Bathrooms = input.Bathrooms
	property.ParkingSpaces = input.ParkingSpaces
	property.Characteristics = input.Characteristics
	property.Price = input.Price
	property.CondoFee = input.CondoFee
	property.IPTU = input.IPTU
	property.Featured = input.Featured
	if input.State != "" {
		property.State = input.State
	}
	if input.Status != "" {
		property.Status = input.Status
	}

	if err := s.db.Save(property).Error; err != nil {
		return nil, fmt.Errorf("could not update property: %w", err)
	}
	return property, nil
}

// SoftDelete hides the listing from every default view. Idempotent.
func (s *PropertyService) SoftDelete(actor Actor, id uint) error {
	return s.setActive(actor, id, false)
}

// Restore brings a soft-deleted listing back. Idempotent.
func (s *PropertyService) Restore(actor Actor, id uint) error {
	return s.setActive(actor, id, true)
}

func (s *PropertyService) setActive(actor Actor, id uint, active bool) error {
	property, err := s.fetchForMutation(actor, id)
	if err != nil {
		return err
	}
	if property.Active == active {
		return nil
	}
	if err := s.db.Model(property).Update("active", active).Error; err != nil {
		return fmt.Errorf("could not update property: %w", err)
	}
	return nil
}

// PermanentDelete removes the row and its photos for good. Master only,
// single transaction so a failed cascade never leaves orphaned photos.
func (s *PropertyService) PermanentDelete(actor Actor, id uint) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}
	if !actor.CanPermanentlyDelete() {
		return ErrUnauthorized
	}

	var property model.Property
	if err := s.db.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("could not fetch property: %w", err)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not start transaction: %w", tx.Error)
	}

	if err := tx.Unscoped().Where("property_id = ?", property.ID).Delete(&model.Photo{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete photos: %w", err)
	}
	if err := tx.Unscoped().Delete(&property).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete property: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("could not complete deletion: %w", err)
	}
	return nil
}

// Clone returns a draft copy of an existing listing for pre-filling the
// new-listing form. It creates nothing: the caller feeds the draft into
// Create. Title is suffixed and status reset so the copy starts fresh.
func (s *PropertyService) Clone(actor Actor, sourceID uint) (*DraftFields, error) {
	source, err := s.Get(actor, sourceID)
	if err != nil {
		return nil, err
	}

	return &DraftFields{
		Title:           source.Title + " (Cópia)",
		Address:         source.Address,
		Neighborhood:    source.Neighborhood,
		City:            source.City,
		State:           source.State,
		PropertyType:    source.PropertyType,
		TotalArea:       source.TotalArea,
		Bedrooms:        source.Bedrooms,
		Suites:          source.Suites,
		Bathrooms:       source.Bathrooms,
		ParkingSpaces:   source.ParkingSpaces,
		Characteristics: source.Characteristics,
		Price:           source.Price,
		CondoFee:        source.CondoFee,
		IPTU:            source.IPTU,
		Status:          model.PropertyStatusDisponivel,
		Featured:        source.Featured,
	}, nil
}

// AssignOrphansToMaster is the one-time ownership migration: listings with
// no owner become the master user's. Returns how many rows moved.
func (s *PropertyService) AssignOrphansToMaster(masterID uint) (int64, error) {
	result := s.db.Model(&model.Property{}).
		Where("user_id = ? OR user_id IS NULL", 0).
		Update("user_id", masterID)
	if result.Error != nil {
		return 0, fmt.Errorf("could not reassign properties: %w", result.Error)
	}
	return result.RowsAffected, nil
}

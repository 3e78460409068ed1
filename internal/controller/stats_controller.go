package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rdogf/AppImovel/internal/middleware"
	"github.com/rdogf/AppImovel/internal/model"
	"github.com/rdogf/AppImovel/pkg/database"
)

// DashboardStats summarizes the caller's portfolio for the admin home
type DashboardStats struct {
	TotalListings    int64         `json:"total_listings"`
	ActiveListings   int64         `json:"active_listings"`
	InactiveListings int64         `json:"inactive_listings"`
	TotalViews       int64         `json:"total_views"`
	StatusCounts     []StatusCount `json:"status_counts"`
	TopProperties    []TopProperty `json:"top_properties"`
}

type StatusCount struct {
	Status model.PropertyStatus `json:"status"`
	Count  int64                `json:"count"`
}

type TopProperty struct {
	ID         uint    `json:"id"`
	Title      string  `json:"title"`
	Views      int64   `json:"views"`
	Price      float64 `json:"price"`
	CoverImage string  `json:"cover_image"`
}

const ViewCooldown = 24 * time.Hour

// GetDashboardStats aggregates the caller's listings; masters get the
// whole portfolio.
func GetDashboardStats(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	db := database.GetDB()

	scope := func() *gorm.DB {
		q := db.Model(&model.Property{})
		if !actor.IsMaster() {
			q = q.Where("user_id = ?", actor.ID)
		}
		return q
	}

	var stats DashboardStats
	scope().Count(&stats.TotalListings)
	scope().Where("active = ?", true).Count(&stats.ActiveListings)
	stats.InactiveListings = stats.TotalListings - stats.ActiveListings

	viewScope := db.Model(&model.PropertyView{}).
		Joins("JOIN properties ON property_views.property_id = properties.id")
	if !actor.IsMaster() {
		viewScope = viewScope.Where("properties.user_id = ?", actor.ID)
	}
	viewScope.Count(&stats.TotalViews)

	for _, status := range []model.PropertyStatus{
		model.PropertyStatusDisponivel,
		model.PropertyStatusReservado,
		model.PropertyStatusVendido,
		model.PropertyStatusAlugado,
	} {
		var count int64
		scope().Where("active = ? AND status = ?", true, status).Count(&count)
		stats.StatusCounts = append(stats.StatusCounts, StatusCount{Status: status, Count: count})
	}

	var topProps []TopProperty
	top := db.Table("properties").
		Select("properties.id, properties.title, properties.price, COUNT(property_views.id) as views").
		Joins("LEFT JOIN property_views ON properties.id = property_views.property_id").
		Where("properties.active = ?", true)
	if !actor.IsMaster() {
		top = top.Where("properties.user_id = ?", actor.ID)
	}
	top.Group("properties.id").
		Order("views DESC").
		Limit(5).
		Scan(&topProps)

	for i := range topProps {
		var cover model.Photo
		err := db.Where("property_id = ?", topProps[i].ID).
			Order("sort_order ASC, id ASC").
			First(&cover).Error
		if err == nil {
			topProps[i].CoverImage = cover.URL
		}
	}
	stats.TopProperties = topProps

	return c.JSON(stats)
}

// RecordPropertyView logs a share-page visit, deduplicating by IP within
// the cooldown window.
func RecordPropertyView(c *fiber.Ctx) error {
	shareCode := c.Params("share_code")

	var property model.Property
	err := database.GetDB().
		Where("share_code = ? AND active = ?", shareCode, true).
		First(&property).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	ip := c.IP()
	sessionID := c.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = fmt.Sprintf("%s_%s", ip, time.Now().Format("20060102"))
	}

	var recent int64
	database.GetDB().Model(&model.PropertyView{}).
		Where("property_id = ? AND ip = ? AND viewed_at > ?",
			property.ID, ip, time.Now().Add(-ViewCooldown)).
		Count(&recent)

	view := model.PropertyView{
		PropertyID: property.ID,
		IP:         ip,
		SessionID:  sessionID,
		UserAgent:  c.Get("User-Agent"),
		ViewedAt:   time.Now(),
		IsUnique:   recent == 0,
	}
	if err := database.GetDB().Create(&view).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record view",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

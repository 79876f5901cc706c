package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/EberechiLabs/FestHive/app/models"
)

// eventRepository implements the EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository instance
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event in the database
func (r *eventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// GetByID retrieves an event by its ID
func (r *eventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetBySlug retrieves an event by its slug
func (r *eventRepository) GetBySlug(slug string) (*models.Event, error) {
	var event models.Event
	err := r.db.Where("slug = ?", slug).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetPublished retrieves published events with pagination, soonest first
func (r *eventRepository) GetPublished(offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("published = ?", true).
		Order("starts_at ASC").Offset(offset).Limit(limit).Find(&events).Error
	return events, err
}

// GetPublishedByCategory retrieves published events of one category
func (r *eventRepository) GetPublishedByCategory(category string, offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("published = ? AND category = ?", true, category).
		Order("starts_at ASC").Offset(offset).Limit(limit).Find(&events).Error
	return events, err
}

// GetUpcoming retrieves the next published events starting after now
func (r *eventRepository) GetUpcoming(limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("published = ? AND starts_at > ?", true, time.Now()).
		Order("starts_at ASC").Limit(limit).Find(&events).Error
	return events, err
}

// List retrieves all events with pagination
func (r *eventRepository) List(offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Order("starts_at ASC").Offset(offset).Limit(limit).Find(&events).Error
	return events, err
}

// Update updates an existing event in the database
func (r *eventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete soft deletes an event by its ID
func (r *eventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

// Count returns the total number of events
func (r *eventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Count(&count).Error
	return count, err
}

package database

import (
	"github.com/google/uuid"
	"github.com/pdmitriev/recipebook-backend/models"
	"gorm.io/gorm"
)

type SubscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db}
}

// Add inserts the (follower, author) pair. Self-subscription is validated by
// the caller and backed by a check constraint; duplicates surface as
// gorm.ErrDuplicatedKey from the unique index.
func (r *SubscriptionRepo) Add(userID, authorID uuid.UUID) error {
	return r.db.Create(&models.Subscription{UserID: userID, AuthorID: authorID}).Error
}

// Remove deletes the pair; a pair that was never added is a not-found.
func (r *SubscriptionRepo) Remove(userID, authorID uuid.UUID) error {
	res := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Subscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists probes the specific (follower, author) pair. Flag derivation always
// goes through here; never through a broader "has any subscription" lookup.
func (r *SubscriptionRepo) Exists(userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// FindByUser lists the user's subscriptions with authors loaded, ordered by
// the author's first name.
func (r *SubscriptionRepo) FindByUser(userID uuid.UUID) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	err := r.db.Preload("Author").
		Joins("JOIN users ON users.id = subscriptions.author_id").
		Where("subscriptions.user_id = ?", userID).
		Order("users.first_name").
		Find(&subscriptions).Error
	return subscriptions, err
}

// internal/domain/activity/service.go
package activity

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service records and queries the audit trail
type Service struct {
	db *gorm.DB
}

// NewService creates a new activity service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Record appends an audit entry. Failures are logged and swallowed; an
// audit write must never fail the action it describes.
func (s *Service) Record(userID *uint, actorName, action, details string) {
	entry := Log{
		UserID:    userID,
		ActorName: actorName,
		Action:    action,
		Details:   details,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logrus.WithError(err).WithField("action", action).Error("Failed to record activity")
	}
}

// Recent returns the newest audit entries, up to limit
func (s *Service) Recent(limit int) ([]Log, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var entries []Log
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve activity log: %w", err)
	}
	return entries, nil
}

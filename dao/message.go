package dao

import (
	"github.com/Bumblebig/UniSupport/models"

	"gorm.io/gorm"
)

// MessageDAO handles message-related database operations
type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{db: db}
}

// Append writes one message row. The caller assigns id, seq and timestamp;
// nothing is re-stamped on the way in.
func (d *MessageDAO) Append(msg *models.Message) error {
	return d.db.Create(msg).Error
}

// LoadHistory retrieves all messages belonging to an owner, ordered by
// sequence number with timestamp as tiebreak
func (d *MessageDAO) LoadHistory(owner string) ([]models.Message, error) {
	var messages []models.Message
	if err := d.db.Where("uid = ?", owner).
		Order("seq ASC").
		Order("timestamp ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

package repositories

import (
	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/pkg/errors"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// CreateMessage persists a message with a server-assigned timestamp
func (r *MessageRepository) CreateMessage(message *models.Message) error {
	result := r.db.Create(message)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to create message")
	}
	return nil
}

// GetMessageByID retrieves a single message
func (r *MessageRepository) GetMessageByID(id uint) (*models.Message, error) {
	var message models.Message
	result := r.db.First(&message, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "message not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get message")
	}

	return &message, nil
}

// GetConversation retrieves every message exchanged between two users in
// chronological order. Timestamps are not unique at sub-second resolution,
// so the id breaks ties in insertion order.
func (r *MessageRepository) GetConversation(userAID, userBID uint) ([]models.Message, error) {
	var messages []models.Message

	err := r.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userAID, userBID, userBID, userAID,
	).Order("created_at ASC, id ASC").
		Find(&messages).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get conversation")
	}

	return messages, nil
}

// DeleteMessage deletes a message by id
func (r *MessageRepository) DeleteMessage(id uint) error {
	result := r.db.Delete(&models.Message{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete message")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "message not found")
	}
	return nil
}

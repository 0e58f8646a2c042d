package services

import (
	"strings"

	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/internal/realtime"
	"github.com/nikitavr/sociable/internal/repositories"
	"github.com/nikitavr/sociable/internal/security"
	"github.com/nikitavr/sociable/pkg/errors"
)

// Notifier delivers a freshly created message to a user's live connections.
// Best effort; must never block the request that produced the message.
type Notifier interface {
	Notify(userID uint, payload realtime.MessagePayload)
}

// MessagingService is the conversation engine: it gates every operation on
// the friendship predicate and owns the ordering and ownership rules.
type MessagingService struct {
	messageRepo *repositories.MessageRepository
	friendRepo  *repositories.FriendRepository
	userRepo    *repositories.UserRepository
	notifier    Notifier
}

func NewMessagingService(
	messageRepo *repositories.MessageRepository,
	friendRepo *repositories.FriendRepository,
	userRepo *repositories.UserRepository,
	notifier Notifier,
) *MessagingService {
	return &MessagingService{
		messageRepo: messageRepo,
		friendRepo:  friendRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Send persists a message from sender to recipient and notifies both
// parties' live connections
func (s *MessagingService) Send(senderID, recipientID uint, body string) (*models.Message, error) {
	areFriends, err := s.friendRepo.AreFriends(senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if !areFriends {
		return nil, errors.New(errors.ErrCodeNotFriends, "can only message friends")
	}

	body = strings.TrimSpace(security.SanitizeHTML(body))
	if body == "" {
		return nil, errors.New(errors.ErrCodeValidation, "message body is empty")
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}
	if err := s.messageRepo.CreateMessage(message); err != nil {
		return nil, err
	}

	s.notifyParties(message)

	return message, nil
}

// Conversation returns the full two-party thread in chronological order.
// History is access-blocked while the pair is not friends; the rows are
// retained, so re-friending restores the thread.
func (s *MessagingService) Conversation(userAID, userBID uint) ([]models.Message, error) {
	areFriends, err := s.friendRepo.AreFriends(userAID, userBID)
	if err != nil {
		return nil, err
	}
	if !areFriends {
		return nil, errors.New(errors.ErrCodeNotFriends, "can only view conversations with friends")
	}

	return s.messageRepo.GetConversation(userAID, userBID)
}

// Delete removes a message; only the sender or the recipient may delete it
func (s *MessagingService) Delete(requesterID, messageID uint) error {
	message, err := s.messageRepo.GetMessageByID(messageID)
	if err != nil {
		return err
	}

	if !message.Involves(requesterID) {
		return errors.New(errors.ErrCodeForbidden, "not a party to this message")
	}

	return s.messageRepo.DeleteMessage(messageID)
}

// notifyParties pushes the created message to every live connection of the
// sender and the recipient
func (s *MessagingService) notifyParties(message *models.Message) {
	if s.notifier == nil {
		return
	}

	sender, err := s.userRepo.GetUserByID(message.SenderID)
	if err != nil {
		return
	}
	recipient, err := s.userRepo.GetUserByID(message.RecipientID)
	if err != nil {
		return
	}

	payload := realtime.MessagePayload{
		ID:        message.ID,
		Sender:    realtime.UserRef{Username: sender.Username, AvatarURL: AvatarURL(sender)},
		Recipient: realtime.UserRef{Username: recipient.Username, AvatarURL: AvatarURL(recipient)},
		Body:      message.Body,
		CreatedAt: message.FormattedCreatedAt(),
	}

	s.notifier.Notify(message.RecipientID, payload)
	s.notifier.Notify(message.SenderID, payload)
}

// AvatarURL resolves the retrievable avatar URL for a user, falling back to
// the well-known default path
func AvatarURL(user *models.User) string {
	if user.HasAvatar() {
		return "/avatars/" + user.Username
	}
	return "/" + models.DefaultAvatarPath
}

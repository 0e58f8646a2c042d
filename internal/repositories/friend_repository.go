package repositories

import (
	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/pkg/errors"
	"gorm.io/gorm"
)

// FriendRepository owns the relationship state machine for each unordered
// pair of users: NONE -> REQUESTED (directional) -> FRIENDS. Both tables
// store the pair canonically (lower id first), so every lookup is a direct
// keyed read on the canonical slots.
type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// SendFriendRequest creates a pending request from requester to receiver.
// The canonical-pair unique index makes a simultaneous mutual request lose
// at the constraint rather than creating two live rows.
func (r *FriendRepository) SendFriendRequest(requesterID, receiverID uint) error {
	if requesterID == receiverID {
		return errors.New(errors.ErrCodeValidation, "cannot send a friend request to yourself")
	}

	areFriends, err := r.AreFriends(requesterID, receiverID)
	if err != nil {
		return err
	}
	if areFriends {
		return errors.New(errors.ErrCodeAlreadyFriends, "already friends")
	}

	request := &models.FriendRequest{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
	}

	result := r.db.Create(request)
	if result.Error == gorm.ErrDuplicatedKey {
		// A request already exists for the pair, in either direction
		return errors.New(errors.ErrCodeAlreadyRequested, "friend request already pending")
	}
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to create friend request")
	}

	return nil
}

// AcceptFriendRequest converts a pending request into a friendship. Deleting
// the request row and inserting the friendship happen in one transaction, so
// a concurrent accept and refuse cannot both succeed: the loser sees zero
// rows deleted.
func (r *FriendRepository) AcceptFriendRequest(receiverID, requesterID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("requester_id = ? AND receiver_id = ?", requesterID, receiverID).
			Delete(&models.FriendRequest{})
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete friend request")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeNoSuchRequest, "no pending friend request")
		}

		friendship := &models.Friendship{User1ID: requesterID, User2ID: receiverID}
		if err := tx.Create(friendship).Error; err != nil {
			if err == gorm.ErrDuplicatedKey {
				return errors.New(errors.ErrCodeAlreadyFriends, "already friends")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create friendship")
		}

		return nil
	})
	return err
}

// RefuseFriendRequest deletes a pending request without creating a friendship
func (r *FriendRepository) RefuseFriendRequest(receiverID, requesterID uint) error {
	result := r.db.Where("requester_id = ? AND receiver_id = ?", requesterID, receiverID).
		Delete(&models.FriendRequest{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to refuse friend request")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNoSuchRequest, "no pending friend request")
	}

	return nil
}

// RemoveFriend removes a friendship, callable by either party
func (r *FriendRepository) RemoveFriend(userID, otherID uint) error {
	lo, hi := models.CanonicalPair(userID, otherID)
	result := r.db.Where("user1_id = ? AND user2_id = ?", lo, hi).
		Delete(&models.Friendship{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to remove friend")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFriends, "not friends")
	}

	return nil
}

// AreFriends checks if two users are friends; symmetric by construction
// since the pair is canonicalized before the lookup
func (r *FriendRepository) AreFriends(userID, otherID uint) (bool, error) {
	lo, hi := models.CanonicalPair(userID, otherID)

	var count int64
	result := r.db.Model(&models.Friendship{}).
		Where("user1_id = ? AND user2_id = ?", lo, hi).
		Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check friendship")
	}

	return count > 0, nil
}

// GetFriends retrieves the user's friends, either slot of the canonical pair
func (r *FriendRepository) GetFriends(userID uint) ([]models.User, error) {
	var friends []models.User

	err := r.db.Table("users").
		Select("users.*").
		Joins("JOIN friendships ON users.id = friendships.user1_id OR users.id = friendships.user2_id").
		Where("(friendships.user1_id = ? OR friendships.user2_id = ?) AND users.id != ?",
			userID, userID, userID).
		Find(&friends).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get friends")
	}

	return friends, nil
}

// GetIncomingRequesters retrieves users with a pending request to the user
func (r *FriendRepository) GetIncomingRequesters(userID uint) ([]models.User, error) {
	var users []models.User

	err := r.db.Table("users").
		Select("users.*").
		Joins("JOIN friend_requests ON friend_requests.requester_id = users.id").
		Where("friend_requests.receiver_id = ?", userID).
		Find(&users).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get incoming requests")
	}

	return users, nil
}

// GetOutgoingReceivers retrieves users the user has a pending request to
func (r *FriendRepository) GetOutgoingReceivers(userID uint) ([]models.User, error) {
	var users []models.User

	err := r.db.Table("users").
		Select("users.*").
		Joins("JOIN friend_requests ON friend_requests.receiver_id = users.id").
		Where("friend_requests.requester_id = ?", userID).
		Find(&users).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get outgoing requests")
	}

	return users, nil
}

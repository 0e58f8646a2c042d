package models

import (
	"time"

	"gorm.io/gorm"
)

// FriendRequest is a pending, directional ask for a friendship. The canonical
// UserLo/UserHi slots carry the unique index, so two crossed requests for the
// same pair collide at the constraint no matter which side sent first.
type FriendRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"not null" json:"requester_id"`
	Requester   User      `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"-"`
	ReceiverID  uint      `gorm:"not null" json:"receiver_id"`
	Receiver    User      `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	UserLoID    uint      `gorm:"not null;index:idx_request_pair,unique" json:"-"`
	UserHiID    uint      `gorm:"not null;index:idx_request_pair,unique" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate fills the canonical pair slots and rejects self-requests
func (fr *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if fr.RequesterID == fr.ReceiverID {
		return gorm.ErrInvalidData
	}
	fr.UserLoID, fr.UserHiID = CanonicalPair(fr.RequesterID, fr.ReceiverID)
	return nil
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

// Friendship is a confirmed symmetric relation stored once per pair,
// lower user id always in slot 1.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   uint      `gorm:"not null;index:idx_friendship_pair,unique" json:"user1_id"`
	User1     User      `gorm:"foreignKey:User1ID;constraint:OnDelete:CASCADE" json:"-"`
	User2ID   uint      `gorm:"not null;index:idx_friendship_pair,unique" json:"user2_id"`
	User2     User      `gorm:"foreignKey:User2ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate enforces User1ID < User2ID so each pair has one representation
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.User1ID == f.User2ID {
		return gorm.ErrInvalidData
	}
	f.User1ID, f.User2ID = CanonicalPair(f.User1ID, f.User2ID)
	return nil
}

func (Friendship) TableName() string {
	return "friendships"
}

// CanonicalPair orders two user ids lower-first
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

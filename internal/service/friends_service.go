package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"forum/backend/internal/apperrors"
	"forum/backend/internal/auth"
	"forum/backend/internal/dto"
	"forum/backend/internal/hub"
	"forum/backend/internal/models"
)

// FriendsService runs the friend request state machine:
// Pending -> Accepted (request replaced by a Friendship) or Pending -> Rejected (request dropped).
type FriendsService struct {
	db       *gorm.DB
	notifier Notifier
	now      func() time.Time
}

func NewFriendsService(db *gorm.DB, notifier Notifier) *FriendsService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &FriendsService{db: db, notifier: notifier, now: time.Now}
}

func areFriends(db *gorm.DB, a, b uint) (bool, error) {
	var n int64
	err := db.Model(&models.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("checking friendship: %w", err)
	}
	return n > 0, nil
}

func findFriendRequest(db *gorm.DB, id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := db.First(&req, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFoundError("friend request not found")
		}
		return nil, fmt.Errorf("fetching friend request: %w", err)
	}
	return &req, nil
}

// SendRequest creates a pending request from senderID to receiverID.
// A request pending in either direction, or an existing friendship, is a conflict.
func (s *FriendsService) SendRequest(ctx context.Context, senderID, receiverID uint) (*dto.FriendRequestResponse, error) {
	if senderID == receiverID {
		return nil, apperrors.NewValidationError("cannot send a friend request to yourself")
	}

	var req models.FriendRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sender, err := findUser(tx, senderID)
		if err != nil {
			return err
		}
		receiver, err := findUser(tx, receiverID)
		if err != nil {
			return err
		}

		friends, err := areFriends(tx, senderID, receiverID)
		if err != nil {
			return err
		}
		if friends {
			return apperrors.NewConflictError("you are already friends")
		}

		var pending int64
		err = tx.Model(&models.FriendRequest{}).
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", senderID, receiverID, receiverID, senderID).
			Count(&pending).Error
		if err != nil {
			return fmt.Errorf("checking friend requests: %w", err)
		}
		if pending > 0 {
			return apperrors.NewConflictError("a friend request between these users is already pending")
		}

		req = models.FriendRequest{
			SenderID:   sender.ID,
			ReceiverID: receiver.ID,
			Status:     models.FriendRequestPending,
			SentAt:     s.now(),
		}
		if err := tx.Omit("Sender", "Receiver").Create(&req).Error; err != nil {
			if isDuplicate(err) {
				return apperrors.NewConflictError("a friend request between these users is already pending")
			}
			return fmt.Errorf("creating friend request: %w", err)
		}
		req.Sender = *sender
		req.Receiver = *receiver
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toFriendRequestResponse(req)
	s.notifier.Notify(receiverID, hub.Event{Type: hub.EventFriendRequestReceived, Payload: resp})
	return &resp, nil
}

// AnswerRequest applies the receiver's decision to a pending request.
func (s *FriendsService) AnswerRequest(ctx context.Context, caller auth.Caller, requestID uint, decision models.FriendRequestStatus) (*dto.AnswerResponse, error) {
	if decision != models.FriendRequestAccepted && decision != models.FriendRequestRejected {
		return nil, apperrors.NewValidationError("decision must be Accepted or Rejected")
	}

	var (
		outcome  string
		senderID uint
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := findFriendRequest(tx, requestID)
		if err != nil {
			return err
		}
		if !auth.CanAnswerFriendRequest(caller, *req) {
			return apperrors.NewForbiddenError("only the receiver can answer this friend request")
		}
		if req.Status != models.FriendRequestPending {
			outcome = dto.OutcomeAlreadyHandled
			return nil
		}
		senderID = req.SenderID

		if err := tx.Delete(&models.FriendRequest{}, req.ID).Error; err != nil {
			return fmt.Errorf("deleting friend request: %w", err)
		}

		if decision == models.FriendRequestRejected {
			outcome = dto.OutcomeFriendshipRejected
			return nil
		}

		// A reverse request may have been accepted since this one was sent.
		friends, err := areFriends(tx, req.SenderID, req.ReceiverID)
		if err != nil {
			return err
		}
		if friends {
			return apperrors.NewConflictError("you are already friends")
		}

		friendship := models.NewFriendship(req.SenderID, req.ReceiverID)
		if err := tx.Omit("User", "Friend").Create(&friendship).Error; err != nil {
			if isDuplicate(err) {
				return apperrors.NewConflictError("you are already friends")
			}
			return fmt.Errorf("creating friendship: %w", err)
		}
		outcome = dto.OutcomeFriendshipStarted
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome != dto.OutcomeAlreadyHandled {
		s.notifier.Notify(senderID, hub.Event{
			Type: hub.EventFriendRequestAnswered,
			Payload: map[string]interface{}{
				"request_id":  requestID,
				"receiver_id": caller.ID,
				"outcome":     outcome,
			},
		})
	}
	return &dto.AnswerResponse{RequestID: requestID, Outcome: outcome}, nil
}

// CancelRequest withdraws a pending request. Only its sender may do so.
func (s *FriendsService) CancelRequest(ctx context.Context, caller auth.Caller, requestID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := findFriendRequest(tx, requestID)
		if err != nil {
			return err
		}
		if !auth.CanCancelFriendRequest(caller, *req) {
			return apperrors.NewForbiddenError("only the sender can cancel this friend request")
		}
		if err := tx.Delete(&models.FriendRequest{}, req.ID).Error; err != nil {
			return fmt.Errorf("deleting friend request: %w", err)
		}
		return nil
	})
}

// ListFriends returns the other party of every friendship of userID.
func (s *FriendsService) ListFriends(ctx context.Context, userID uint) ([]dto.FriendResponse, error) {
	var friendships []models.Friendship
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Friend").
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Order("id").
		Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("fetching friendships: %w", err)
	}

	out := make([]dto.FriendResponse, len(friendships))
	for i, f := range friendships {
		other := f.Friend
		if f.FriendID == userID {
			other = f.User
		}
		out[i] = dto.FriendResponse{
			FriendshipID: f.ID,
			UserID:       other.ID,
			Username:     other.Username,
			Since:        f.CreatedAt,
		}
	}
	return out, nil
}

// ListReceived returns the pending requests addressed to userID.
func (s *FriendsService) ListReceived(ctx context.Context, userID uint) ([]dto.FriendRequestResponse, error) {
	return s.listPending(ctx, "receiver_id", userID)
}

// ListSent returns the pending requests sent by userID.
func (s *FriendsService) ListSent(ctx context.Context, userID uint) ([]dto.FriendRequestResponse, error) {
	return s.listPending(ctx, "sender_id", userID)
}

func (s *FriendsService) listPending(ctx context.Context, column string, userID uint) ([]dto.FriendRequestResponse, error) {
	var reqs []models.FriendRequest
	err := s.db.WithContext(ctx).
		Preload("Sender").Preload("Receiver").
		Where(column+" = ? AND status = ?", userID, models.FriendRequestPending).
		Order("sent_at DESC, id DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("fetching friend requests: %w", err)
	}
	return friendRequestResponses(reqs), nil
}

// Unfriend removes the friendship between userID and friendID, whichever side created it.
func (s *FriendsService) Unfriend(ctx context.Context, userID, friendID uint) error {
	res := s.db.WithContext(ctx).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", userID, friendID, friendID, userID).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return fmt.Errorf("deleting friendship: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("friendship not found")
	}
	return nil
}

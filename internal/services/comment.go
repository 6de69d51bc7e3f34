package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"cimsel/internal/models"
	"cimsel/internal/repository"

	"github.com/sirupsen/logrus"
)

// MaxCommentLength caps comment content, in characters.
const MaxCommentLength = 1000

// BulkAction is an admin batch operation over a set of comment ids.
type BulkAction string

const (
	BulkApprove    BulkAction = "approve"
	BulkReject     BulkAction = "reject"
	BulkSpam       BulkAction = "spam"
	BulkDelete     BulkAction = "delete"
	BulkMarkAsRead BulkAction = "markAsRead"
)

// BulkResult summarizes a batch moderation call. ErrorCount only ever rises on
// the approve/reject/spam path, where items are processed one by one.
type BulkResult struct {
	SuccessCount   int `json:"success_count"`
	ErrorCount     int `json:"error_count"`
	TotalProcessed int `json:"total_processed"`
}

// CommentService owns the comment lifecycle: initial status decisions on
// create/edit, admin status transitions, the cascade rules for replies, and
// keeping Blog.CommentCount in step with every approved-boundary crossing.
//
// The framework-level model hooks of a typical ORM setup are deliberately
// replaced by the explicit syncOnTransition calls below, so every counter
// movement is visible at the call site that causes it.
type CommentService struct {
	comments repository.CommentRepository
	blogs    repository.BlogRepository
	trust    *TrustService
	filter   *ContentFilter
}

func NewCommentService(
	comments repository.CommentRepository,
	blogs repository.BlogRepository,
	trust *TrustService,
	filter *ContentFilter,
) *CommentService {
	return &CommentService{
		comments: comments,
		blogs:    blogs,
		trust:    trust,
		filter:   filter,
	}
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return ErrContentTooLong
	}
	return nil
}

// decideStatus picks the initial status for new or edited content. The spam
// heuristic always wins over trust; forbidden-word-only content is held for
// moderation even when the author is trusted, but not flagged as spam.
func (s *CommentService) decideStatus(content string, authorID uint) (models.CommentStatus, error) {
	forbidden := s.filter.ContainsForbiddenWords(content)
	spammy := s.filter.IsLikelySpam(content)

	trusted, err := s.trust.IsTrusted(authorID)
	if err != nil {
		return models.CommentStatusNone, err
	}

	status := models.CommentStatusPending
	if trusted {
		status = models.CommentStatusApproved
	}
	if forbidden || spammy {
		if spammy {
			status = models.CommentStatusSpam
		} else {
			status = models.CommentStatusPending
		}
	}
	return status, nil
}

// syncOnTransition keeps Blog.CommentCount equal to the number of approved
// comments on the blog. Exactly one increment or decrement per transition that
// crosses the approved boundary; everything else is a no-op. previous is the
// CommentStatusNone sentinel for brand-new comments.
func (s *CommentService) syncOnTransition(blogID uint, previous, next models.CommentStatus) error {
	switch {
	case previous != models.CommentStatusApproved && next == models.CommentStatusApproved:
		return s.blogs.IncrementCommentCount(blogID)
	case previous == models.CommentStatusApproved && next != models.CommentStatusApproved:
		return s.blogs.DecrementCommentCount(blogID)
	}
	return nil
}

// Create stores a new top-level comment. Trusted authors with clean content
// land directly on approved and bump the blog counter in the same request.
func (s *CommentService) Create(blogID, authorID uint, content string) (*models.Comment, error) {
	blog, err := s.blogs.FindByID(blogID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	if err := validateContent(content); err != nil {
		return nil, err
	}

	status, err := s.decideStatus(content, authorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		BlogID:  blog.ID,
		UserID:  authorID,
		Status:  status,
		IsRead:  false,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	if err := s.syncOnTransition(blog.ID, models.CommentStatusNone, status); err != nil {
		return nil, err
	}
	return comment, nil
}

// Reply stores an answer to a top-level comment. The reply inherits the
// parent's blog and goes through the same filter/trust decision as Create.
func (s *CommentService) Reply(parentID, authorID uint, content string) (*models.Comment, error) {
	parent, err := s.comments.FindByID(parentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	if parent.IsReply() {
		return nil, ErrReplyToReply
	}

	if err := validateContent(content); err != nil {
		return nil, err
	}

	status, err := s.decideStatus(content, authorID)
	if err != nil {
		return nil, err
	}

	reply := &models.Comment{
		Content:  content,
		BlogID:   parent.BlogID,
		UserID:   authorID,
		ParentID: &parent.ID,
		Status:   status,
		IsRead:   false,
	}
	if err := s.comments.Create(reply); err != nil {
		return nil, err
	}

	if err := s.syncOnTransition(parent.BlogID, models.CommentStatusNone, status); err != nil {
		return nil, err
	}
	return reply, nil
}

// UpdateOwn lets the author rewrite a comment. The status is re-decided from
// scratch (spam / pending / approved), the unread flag comes back for the
// moderation queue, and the trust ledger is not touched - trust only moves on
// explicit admin decisions.
func (s *CommentService) UpdateOwn(commentID, authorID uint, content string) (*models.Comment, error) {
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.UserID != authorID {
		return nil, ErrNotCommentOwner
	}

	if err := validateContent(content); err != nil {
		return nil, err
	}

	status, err := s.decideStatus(content, authorID)
	if err != nil {
		return nil, err
	}

	previous := comment.Status
	comment.Content = content
	comment.Status = status
	comment.IsRead = false
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}

	if err := s.syncOnTransition(comment.BlogID, previous, status); err != nil {
		return nil, err
	}
	return comment, nil
}

// Moderate applies an admin decision to one comment. Re-applying the current
// status is a no-op for both the counter and the trust ledger.
func (s *CommentService) Moderate(commentID uint, status models.CommentStatus, adminNote string) (*models.Comment, error) {
	switch status {
	case models.CommentStatusApproved, models.CommentStatusRejected, models.CommentStatusSpam:
	default:
		return nil, ErrInvalidStatus
	}

	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	previous := comment.Status
	comment.Status = status
	comment.AdminNote = adminNote
	comment.IsRead = true
	if err := s.comments.Update(comment); err != nil {
		return nil, err
	}

	if err := s.syncOnTransition(comment.BlogID, previous, status); err != nil {
		return nil, err
	}

	if previous != status {
		if err := s.applyTrustTransition(comment.UserID, status); err != nil {
			return nil, err
		}
	}
	return comment, nil
}

func (s *CommentService) applyTrustTransition(userID uint, status models.CommentStatus) error {
	switch status {
	case models.CommentStatusApproved:
		return s.trust.OnApproved(userID)
	case models.CommentStatusRejected, models.CommentStatusSpam:
		return s.trust.OnRejected(userID)
	}
	return nil
}

// Delete removes a comment for its author or an admin. Deleting a top-level
// comment first removes all of its replies; every approved row that goes away
// decrements the blog counter once.
func (s *CommentService) Delete(commentID uint, requester *models.User) error {
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != requester.ID && !requester.IsAdmin() {
		return ErrNotCommentOwner
	}

	removed := []models.Comment{*comment}
	if !comment.IsReply() {
		replies, err := s.comments.FindReplies([]uint{comment.ID})
		if err != nil {
			return err
		}
		replyIDs := make([]uint, 0, len(replies))
		for _, reply := range replies {
			replyIDs = append(replyIDs, reply.ID)
		}
		if _, err := s.comments.DeleteByIDs(replyIDs); err != nil {
			return err
		}
		removed = append(removed, replies...)
	}

	if _, err := s.comments.DeleteByIDs([]uint{comment.ID}); err != nil {
		return err
	}

	for _, row := range removed {
		if err := s.syncOnTransition(row.BlogID, row.Status, models.CommentStatusNone); err != nil {
			return err
		}
	}
	return nil
}

// MarkAsRead flags one comment as seen by a moderator. Idempotent.
func (s *CommentService) MarkAsRead(commentID uint) error {
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	_, err = s.comments.MarkRead([]uint{comment.ID})
	return err
}

type statusTransition struct {
	previous models.CommentStatus
	next     models.CommentStatus
}

// BulkAction applies one action to a batch of comment ids. Ids that do not
// exist are silently skipped. On the approve/reject/spam path each comment is
// processed individually and per-item failures are tallied instead of aborting
// the batch; trust ledger updates are applied once per user, keyed on the last
// transition seen for that user in the batch.
func (s *CommentService) BulkAction(ids []uint, action BulkAction, adminNote string) (*BulkResult, error) {
	switch action {
	case BulkApprove, BulkReject, BulkSpam, BulkDelete, BulkMarkAsRead:
	default:
		return nil, ErrInvalidAction
	}

	comments, err := s.comments.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	result := &BulkResult{TotalProcessed: len(comments)}
	if len(comments) == 0 {
		return result, nil
	}

	switch action {
	case BulkDelete:
		return s.bulkDelete(comments, result)
	case BulkMarkAsRead:
		commentIDs := make([]uint, 0, len(comments))
		for _, c := range comments {
			commentIDs = append(commentIDs, c.ID)
		}
		updated, err := s.comments.MarkRead(commentIDs)
		if err != nil {
			return nil, err
		}
		result.SuccessCount = int(updated)
		return result, nil
	}

	newStatus := map[BulkAction]models.CommentStatus{
		BulkApprove: models.CommentStatusApproved,
		BulkReject:  models.CommentStatusRejected,
		BulkSpam:    models.CommentStatusSpam,
	}[action]

	trustUpdates := make(map[uint]statusTransition)
	for i := range comments {
		comment := comments[i]
		previous := comment.Status

		comment.Status = newStatus
		if adminNote != "" {
			comment.AdminNote = adminNote
		}
		comment.IsRead = true
		if err := s.comments.Update(&comment); err != nil {
			logrus.WithError(err).WithField("comment_id", comment.ID).
				Error("bulk moderation: failed to update comment")
			result.ErrorCount++
			continue
		}

		if err := s.syncOnTransition(comment.BlogID, previous, newStatus); err != nil {
			logrus.WithError(err).WithField("comment_id", comment.ID).
				Error("bulk moderation: failed to sync blog comment count")
			result.ErrorCount++
			continue
		}

		if previous != newStatus {
			// Last transition wins per user within a batch.
			trustUpdates[comment.UserID] = statusTransition{previous: previous, next: newStatus}
		}
		result.SuccessCount++
	}

	for userID, transition := range trustUpdates {
		if err := s.applyTrustTransition(userID, transition.next); err != nil {
			logrus.WithError(err).WithField("user_id", userID).
				Error("bulk moderation: failed to update trust level")
		}
	}
	return result, nil
}

// bulkDelete removes the loaded comments plus every reply hanging off the
// top-level ones among them, counting one decrement per approved row removed.
func (s *CommentService) bulkDelete(comments []models.Comment, result *BulkResult) (*BulkResult, error) {
	selected := make(map[uint]bool, len(comments))
	var topLevelIDs []uint
	for _, c := range comments {
		selected[c.ID] = true
		if !c.IsReply() {
			topLevelIDs = append(topLevelIDs, c.ID)
		}
	}

	removed := append([]models.Comment(nil), comments...)
	replies, err := s.comments.FindReplies(topLevelIDs)
	if err != nil {
		return nil, err
	}
	var cascadeIDs []uint
	for _, reply := range replies {
		if selected[reply.ID] {
			continue // already part of the batch
		}
		cascadeIDs = append(cascadeIDs, reply.ID)
		removed = append(removed, reply)
	}

	cascadeDeleted, err := s.comments.DeleteByIDs(cascadeIDs)
	if err != nil {
		return nil, err
	}
	batchIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		batchIDs = append(batchIDs, c.ID)
	}
	deleted, err := s.comments.DeleteByIDs(batchIDs)
	if err != nil {
		return nil, err
	}

	for _, row := range removed {
		if err := s.syncOnTransition(row.BlogID, row.Status, models.CommentStatusNone); err != nil {
			return nil, err
		}
	}

	result.SuccessCount = int(deleted) + int(cascadeDeleted)
	return result, nil
}

// DeleteAllByUser removes every comment a user wrote, plus other users'
// replies hanging off the removed top-level ones so no reply is left pointing
// at a missing parent. Each approved row removed decrements its blog counter.
// Used when an account is deleted. Returns the number of rows removed.
func (s *CommentService) DeleteAllByUser(userID uint) (int64, error) {
	owned, err := s.comments.FindByUser(userID)
	if err != nil {
		return 0, err
	}
	if len(owned) == 0 {
		return 0, nil
	}

	ownedIDs := make([]uint, 0, len(owned))
	ownedSet := make(map[uint]bool, len(owned))
	var topLevelIDs []uint
	for _, c := range owned {
		ownedIDs = append(ownedIDs, c.ID)
		ownedSet[c.ID] = true
		if !c.IsReply() {
			topLevelIDs = append(topLevelIDs, c.ID)
		}
	}

	removed := append([]models.Comment(nil), owned...)
	replies, err := s.comments.FindReplies(topLevelIDs)
	if err != nil {
		return 0, err
	}
	var cascadeIDs []uint
	for _, reply := range replies {
		if ownedSet[reply.ID] {
			continue
		}
		cascadeIDs = append(cascadeIDs, reply.ID)
		removed = append(removed, reply)
	}

	cascadeDeleted, err := s.comments.DeleteByIDs(cascadeIDs)
	if err != nil {
		return 0, err
	}
	deleted, err := s.comments.DeleteByIDs(ownedIDs)
	if err != nil {
		return 0, err
	}

	for _, row := range removed {
		if err := s.syncOnTransition(row.BlogID, row.Status, models.CommentStatusNone); err != nil {
			return 0, err
		}
	}
	return deleted + cascadeDeleted, nil
}

package services

import "errors"

// Sentinel errors raised by the moderation services. Handlers map these to
// transport responses; anything else is an infrastructure failure from a
// repository and propagates unchanged.
var (
	ErrBlogNotFound    = errors.New("blog not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")

	ErrEmptyContent   = errors.New("comment content must not be empty")
	ErrContentTooLong = errors.New("comment content is too long")
	ErrReplyToReply   = errors.New("cannot reply to a reply, only to a top-level comment")
	ErrInvalidStatus  = errors.New("invalid status, use approved, rejected or spam")
	ErrInvalidAction  = errors.New("invalid action, use approve, reject, spam, delete or markAsRead")

	ErrNotCommentOwner = errors.New("you can only modify your own comments")
)

// IsNotFound reports whether err classifies as a missing blog, comment or
// parent comment.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBlogNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrParentNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyContent) ||
		errors.Is(err, ErrContentTooLong) ||
		errors.Is(err, ErrReplyToReply) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidAction)
}

func IsAuthorization(err error) bool {
	return errors.Is(err, ErrNotCommentOwner)
}

package reviews

import "tourbook/src/types"

var (
	ErrRatingRange     = types.NewValidationError("Rating must be between 1 and 5")
	ErrCommentRequired = types.NewValidationError("comment is required")
	ErrTourNotFound    = types.NewNotFoundError("tour not found")
	ErrBookingNotOwned = types.NewValidationError("booking does not belong to this user or tour")
	ErrAlreadyReviewed = types.NewRuleError("You have already reviewed this tour")
	ErrReviewNotFound  = types.NewNotFoundError("review not found")
	ErrNotAuthor       = types.NewForbiddenError("you can only delete your own reviews")
	ErrInvalidStatus   = types.NewValidationError("status must be one of pending, approved or rejected")
)

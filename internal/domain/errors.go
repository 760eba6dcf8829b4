package domain

import "errors"

// --- Domain Specific Errors ---

var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrForbidden indicates that the user is not authorized to perform the action.
	ErrForbidden = errors.New("action forbidden")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrUnauthenticated indicates that no signed-in user is attached to the request.
	ErrUnauthenticated = errors.New("user is not logged in")
	// ErrNotEligible indicates that a line item cannot be reviewed (order not concluded).
	ErrNotEligible = errors.New("item is not eligible for review")
	// ErrNoSelection indicates that a review was submitted without an item selected.
	ErrNoSelection = errors.New("no item selected for review")
	// ErrReviewAlreadyExists indicates that the user already reviewed this sweet for this order.
	ErrReviewAlreadyExists = errors.New("review already exists for this user, sweet and order")
	// ErrEmptyCart indicates that checkout was attempted with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrHistoryNotLoaded indicates that a history command arrived before the history was loaded.
	ErrHistoryNotLoaded = errors.New("order history has not been loaded")
)

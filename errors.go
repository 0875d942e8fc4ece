package canteen

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeEmptyCart         = "EMPTY_CART"
	textCodeInvalidSubmitter  = "INVALID_SUBMITTER"
	textCodeInvalidTransition = "INVALID_ORDER_STATUS_TRANSITION"
	textCodeTerminalStatus    = "TERMINAL_ORDER_STATUS"
	textCodeOrderNotFound     = "ORDER_NOT_FOUND"
)

// ErrEmptyCart is returned when PlaceOrder is called with no cart lines.
var ErrEmptyCart = goerrors.New("cart is empty", goerrors.CategoryValidation).
	WithTextCode(textCodeEmptyCart).
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidSubmitter is returned when the submitter identity fails validation.
var ErrInvalidSubmitter = goerrors.New("invalid order submitter", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidSubmitter).
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidTransition is returned when a requested status change is not allowed.
var ErrInvalidTransition = goerrors.New("invalid order status transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidTransition).
	WithCode(goerrors.CodeBadRequest)

// ErrTerminalStatus is returned when attempting to move away from a terminal
// status (completed or cancelled).
var ErrTerminalStatus = goerrors.New("order status is terminal", goerrors.CategoryConflict).
	WithTextCode(textCodeTerminalStatus).
	WithCode(goerrors.CodeConflict)

// ErrOrderNotFound is returned when the order id is not in the active set.
// Callers racing the archival path may treat it as a benign no-op.
var ErrOrderNotFound = goerrors.New("order not found", goerrors.CategoryNotFound).
	WithTextCode(textCodeOrderNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrUnknownMenuItem is the error we return for menu lookups that miss.
var ErrUnknownMenuItem = errors.New("unknown menu item")

// ErrItemUnavailable is the error we return for items not offered right now.
var ErrItemUnavailable = errors.New("menu item not available")

// ErrUnableToParseToken is returned when the provider ID token cannot be decoded.
var ErrUnableToParseToken = errors.New("unable to parse id token")

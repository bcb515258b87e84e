package service

import "errors"

var (
	ErrValidation        = errors.New("validation")         // 400
	ErrNotFound          = errors.New("not found")          // 404
	ErrPermissionDenied  = errors.New("permission denied")  // 403
	ErrInsufficientStock = errors.New("insufficient stock") // 409
	ErrMinimumReached    = errors.New("minimum quantity reached")
	ErrEmptyCart         = errors.New("cart is empty")
)

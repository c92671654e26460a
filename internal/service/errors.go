package service

import "errors"

var (
	ErrProductIDRequired = errors.New("product id required")
	ErrProductNotFound   = errors.New("product not found")
	ErrSessionRequired   = errors.New("cart session required")
	ErrCartUnavailable   = errors.New("cart unavailable")
	ErrCartSaveFailed    = errors.New("cart save failed")
	ErrContactInvalid    = errors.New("contact form invalid")
)

package service

import "errors"

var (
	ErrEmptyCart  = errors.New("cart is empty, nothing to check out")
	ErrNotifyFail = errors.New("order notification failed")
)

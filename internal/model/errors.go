package model

import "errors"

var (
	ErrPoolNotFound        = errors.New("pool not found")
	ErrPoolInactive        = errors.New("pool is not active")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrTicketUsed          = errors.New("ticket already used")
	ErrNotTicketOwner      = errors.New("ticket belongs to another user")
	ErrItemNotFound        = errors.New("item not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInsufficientBalance = errors.New("not enough balance")
	ErrInsufficientFunds   = errors.New("insufficient funds for withdrawal")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrValueTooLarge       = errors.New("value does not fit into storage")

	ErrCompanyNameTooLong  = errors.New("company name is too long (max 50 characters)")
	ErrCompanyImageTooLong = errors.New("company image URL is too long (max 200 characters)")
	ErrItemNameTooLong     = errors.New("item name is too long (max 50 characters)")
	ErrItemImageTooLong    = errors.New("item image URL is too long (max 200 characters)")
	ErrItemDescTooLong     = errors.New("item description is too long (max 200 characters)")
)

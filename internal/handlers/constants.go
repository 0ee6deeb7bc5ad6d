package handlers

import "corpoleve/internal/security"

const (
	SessionCookieName = security.SessionCookieName
	CSRFHeaderName    = "X-CSRF-Token"

	ErrInvalidRequestBody  = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrInvalidCSRFToken    = "Invalid CSRF token"
	ErrTooManyRequests     = "Too many requests, please wait a moment"
	ErrInternalServerError = "Internal server error"
	ErrProgressUnavailable = "We could not save your progress right now. Please try again."
)

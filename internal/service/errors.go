package service

import "errors"

var (
	// ErrInvalidInput wraps every validation failure so the transport
	// layer can map the whole family to one status code.
	ErrInvalidInput = errors.New("invalid input")

	ErrSigningUpload = errors.New("error signing upload")
)

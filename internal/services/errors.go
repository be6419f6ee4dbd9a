package services

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrAlreadyInFamily   = errors.New("user already belongs to a family")
	ErrCreatorHasMembers = errors.New("creator cannot leave while other members remain")
	ErrCannotRemoveSelf  = errors.New("use leave to remove yourself from the family")
)

package state

import (
	"errors"
	"fmt"
)

var (
	ErrSelfTarget       = errors.New("cannot target yourself")
	ErrTargetPrivileged = errors.New("target is an administrator")
	ErrAlreadyBanned    = errors.New("user is already banned")
	ErrNotBanned        = errors.New("user is not banned")
	ErrNotMuted         = errors.New("user is not muted")
	ErrNicknameTooLong  = errors.New("nickname is too long")
	ErrRoleNotFound     = errors.New("role not found")
	ErrUserLacksRole    = errors.New("user does not have this role")
	ErrAlreadyHasRole   = errors.New("user already has this role")
	ErrCommandNotFound  = errors.New("custom command not found")
	ErrGloballyBanned   = errors.New("user is globally banned")
)

// PermissionDeniedError carries the tier the rejected operation
// requires, for user-facing translation.
type PermissionDeniedError struct {
	Required Tier
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("requires %v tier", e.Required)
}

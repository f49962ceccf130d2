// Package auth defines the authorization policy boundary for admin-facing
// routes. The shipped policy is permissive; route logic never changes when a
// real policy is substituted.
package auth

import (
	pkgAuth "github.com/bucodel/registration-backend/internal/pkg/auth"
)

// Actions checked on the admin-facing surface.
const (
	ActionStudentsList   = "students:list"
	ActionStudentsRead   = "students:read"
	ActionStudentsUpdate = "students:update"
	ActionStudentsDelete = "students:delete"
	ActionStudentsExport = "students:export"
	ActionFilesMaintain  = "files:maintain"
)

// Authorizer decides whether a principal may perform an action. A nil
// principal represents an unauthenticated caller.
type Authorizer interface {
	Check(principal *pkgAuth.Principal, action string) error
}

// PermissiveAuthorizer allows every action, authenticated or not. It stands
// in until a real policy is plugged in.
type PermissiveAuthorizer struct{}

// NewPermissiveAuthorizer creates the default allow-all policy
func NewPermissiveAuthorizer() *PermissiveAuthorizer {
	return &PermissiveAuthorizer{}
}

// Check always allows
func (a *PermissiveAuthorizer) Check(principal *pkgAuth.Principal, action string) error {
	return nil
}

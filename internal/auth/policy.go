package auth

import (
	"log/slog"

	"github.com/edurede/school-registry/internal"
)

// Action names an operation the policy engine can decide on.
type Action string

const (
	ActionListUsers  Action = "users:list"
	ActionUpdateUser Action = "users:update"
	ActionDeleteUser Action = "users:delete"

	ActionCreateSchool Action = "schools:create"
	ActionUpdateSchool Action = "schools:update"
	ActionDeleteSchool Action = "schools:delete"
	ActionListSchools  Action = "schools:list"
)

// Target is a pass-by-value snapshot of the resource under decision. ID is
// the resource's own id; OwnerID is the id of the user that created it (for
// user targets the two coincide).
type Target struct {
	ID      int64
	OwnerID int64
}

type policyRule struct {
	action Action
	allow  func(ident Identity, target *Target) bool
}

// PolicyEngine evaluates an ordered rule set: the first rule matching the
// action decides, and an action with no rule is denied.
type PolicyEngine struct {
	rules  []policyRule
	logger *slog.Logger
}

func NewPolicyEngine(logger *slog.Logger) *PolicyEngine {
	return &PolicyEngine{
		logger: logger,
		rules: []policyRule{
			{ActionListUsers, func(ident Identity, _ *Target) bool {
				return ident.Role == RoleAdmin
			}},
			{ActionUpdateUser, adminOrSelf},
			{ActionDeleteUser, adminOrSelf},
			{ActionCreateSchool, func(ident Identity, _ *Target) bool {
				return ident.Role == RoleAdmin || ident.Role == RoleEdit
			}},
			{ActionUpdateSchool, adminOrOwner},
			{ActionDeleteSchool, adminOrOwner},
			{ActionListSchools, func(Identity, *Target) bool {
				// public read
				return true
			}},
		},
	}
}

// adminOrSelf grants admins unconditionally and everyone else only their own
// user record.
func adminOrSelf(ident Identity, target *Target) bool {
	if ident.Role == RoleAdmin {
		return true
	}
	return target != nil && ident.UserID == target.ID
}

// adminOrOwner grants admins unconditionally; the edit role only touches
// records it owns, and view never touches records regardless of ownership.
func adminOrOwner(ident Identity, target *Target) bool {
	if ident.Role == RoleAdmin {
		return true
	}
	if ident.Role != RoleEdit {
		return false
	}
	return target != nil && ident.UserID == target.OwnerID
}

// Authorize decides whether ident may perform action on target. Callers must
// resolve target existence before calling: a missing target is NotFound, not
// a policy decision.
func (e *PolicyEngine) Authorize(ident Identity, action Action, target *Target) error {
	for _, rule := range e.rules {
		if rule.action != action {
			continue
		}
		if rule.allow(ident, target) {
			return nil
		}
		break
	}

	e.logger.Warn("access denied",
		"user_id", ident.UserID,
		"role", ident.Role,
		"action", action)
	return internal.ErrAccessDenied
}

// RedactRoleChange applies the role-assignment rule to an update payload:
// only admins may set or change a role, and a non-admin's attempt is dropped
// rather than rejected. Returns the effective role pointer and whether a
// redaction happened.
func (e *PolicyEngine) RedactRoleChange(ident Identity, requested *string) (*string, bool) {
	if requested == nil || ident.Role == RoleAdmin {
		return requested, false
	}

	e.logger.Info("role change redacted from update payload",
		"user_id", ident.UserID,
		"role", ident.Role)
	return nil, true
}

// Package employee builds the read-side views an employee sees: their
// document inbox grouped by category and their paycheck history grouped
// by year.
package employee

import (
	"context"

	companydomain "github.com/bancalarisantiago/workfolio/internal/company/domain"
	userdomain "github.com/bancalarisantiago/workfolio/internal/user/domain"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
	"github.com/bancalarisantiago/workfolio/pkg/scope"
)

// Context identifies the acting employee within their company.
type Context struct {
	UserID     string
	CompanyID  string
	MemberID   string
	EmployeeID string
	Role       companydomain.MemberRole
}

// ContextResolver turns a user id into an employee Context via the
// user's single active membership.
type ContextResolver struct {
	members companydomain.Repository
	users   userdomain.Repository
}

func NewContextResolver(members companydomain.Repository, users userdomain.Repository) *ContextResolver {
	return &ContextResolver{members: members, users: users}
}

// Resolve requires an active membership and resolves its employee
// profile. Employees need a provisioned profile already; admins get an
// empty one created lazily on first access.
func (r *ContextResolver) Resolve(ctx context.Context, userID string) (*Context, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return nil, err
	}

	member, err := r.members.GetActiveMembershipForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, repoerr.NotFound("No active company membership for this user")
	}

	var profile *userdomain.EmployeeProfile
	switch member.Role {
	case companydomain.RoleAdmin:
		profile, err = r.users.EnsureEmployeeProfileForMember(ctx, member.CompanyID, member.ID)
	default:
		profile, err = r.users.GetEmployeeProfileByMemberID(ctx, member.ID)
	}
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, repoerr.NotFound("No employee profile for this user")
	}

	return &Context{
		UserID:     userID,
		CompanyID:  member.CompanyID,
		MemberID:   member.ID,
		EmployeeID: profile.ID,
		Role:       member.Role,
	}, nil
}

package domain

import "context"

// Patch is a partial update keyed by column name.
type Patch = map[string]any

type Repository interface {
	ListUserProfiles(ctx context.Context) ([]UserProfile, error)
	GetUserProfileByID(ctx context.Context, userID string) (*UserProfile, error)
	CreateUserProfile(ctx context.Context, profile UserProfile) (*UserProfile, error)
	ReplaceUserProfile(ctx context.Context, userID string, profile UserProfile) (*UserProfile, error)
	UpdateUserProfile(ctx context.Context, userID string, patch Patch) (*UserProfile, error)
	DeleteUserProfile(ctx context.Context, userID string) error

	ListEmployeeProfiles(ctx context.Context, companyID string) ([]EmployeeProfile, error)
	GetEmployeeProfileByID(ctx context.Context, companyID, employeeID string) (*EmployeeProfile, error)
	GetEmployeeProfileByMemberID(ctx context.Context, memberID string) (*EmployeeProfile, error)
	EnsureEmployeeProfileForMember(ctx context.Context, companyID, memberID string) (*EmployeeProfile, error)
	CreateEmployeeProfile(ctx context.Context, companyID string, profile EmployeeProfile) (*EmployeeProfile, error)
	ReplaceEmployeeProfile(ctx context.Context, companyID, employeeID string, profile EmployeeProfile) (*EmployeeProfile, error)
	UpdateEmployeeProfile(ctx context.Context, companyID, employeeID string, patch Patch) (*EmployeeProfile, error)
	DeleteEmployeeProfile(ctx context.Context, companyID, employeeID string) error

	GetUserPreferences(ctx context.Context, userID string) (*UserPreference, error)
	CreateUserPreferences(ctx context.Context, pref UserPreference) (*UserPreference, error)
	ReplaceUserPreferences(ctx context.Context, userID string, pref UserPreference) (*UserPreference, error)
	UpdateUserPreferences(ctx context.Context, userID string, patch Patch) (*UserPreference, error)
	DeleteUserPreferences(ctx context.Context, userID string) error
}

package repository

import (
	"context"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/user/domain"
	"github.com/bancalarisantiago/workfolio/pkg/db"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
	"github.com/bancalarisantiago/workfolio/pkg/scope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewRepository(conn *gorm.DB, clk clock.Clock) domain.Repository {
	return &repository{db: conn, clock: clk}
}

func (r *repository) ListUserProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	var profiles []domain.UserProfile
	err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&profiles).Error
	return repoerr.List(profiles, err, "Unable to load user profiles")
}

func (r *repository) GetUserProfileByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return nil, err
	}

	var profile domain.UserProfile
	findErr := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	row, err := repoerr.MaybeSingle(&profile, findErr, "Unable to load user profile")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("User profile not found")
	}
	return row, nil
}

func (r *repository) CreateUserProfile(ctx context.Context, profile domain.UserProfile) (*domain.UserProfile, error) {
	userID, err := scope.Identifier(profile.UserID, "userId")
	if err != nil {
		return nil, err
	}
	profile.UserID = userID

	now := r.clock.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	createErr := r.db.WithContext(ctx).Create(&profile).Error
	return repoerr.Mutation(&profile, createErr, "Unable to create user profile")
}

func (r *repository) ReplaceUserProfile(ctx context.Context, userID string, profile domain.UserProfile) (*domain.UserProfile, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return nil, err
	}

	profile.UserID = userID
	profile.UpdatedAt = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("user_id = ?", userID).
		Select("*").Omit("user_id", "created_at").
		Updates(&profile)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace user profile")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("User profile not found")
	}
	return r.GetUserProfileByID(ctx, userID)
}

func (r *repository) UpdateUserProfile(ctx context.Context, userID string, patch domain.Patch) (*domain.UserProfile, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "user_id", "created_at")
	updates["updated_at"] = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update user profile")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("User profile not found")
	}
	return r.GetUserProfileByID(ctx, userID)
}

func (r *repository) DeleteUserProfile(ctx context.Context, userID string) error {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.UserProfile{}).Error
	return repoerr.NoError(delErr, "Unable to delete user profile")
}

func (r *repository) ListEmployeeProfiles(ctx context.Context, companyID string) ([]domain.EmployeeProfile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var profiles []domain.EmployeeProfile
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at asc").
		Find(&profiles).Error
	return repoerr.List(profiles, findErr, "Unable to load employee profiles")
}

func (r *repository) GetEmployeeProfileByID(ctx context.Context, companyID, employeeID string) (*domain.EmployeeProfile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	employeeID, err = scope.Identifier(employeeID, "employeeId")
	if err != nil {
		return nil, err
	}

	var profile domain.EmployeeProfile
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, employeeID).
		First(&profile).Error
	row, err := repoerr.MaybeSingle(&profile, findErr, "Unable to load employee profile")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Employee profile not found")
	}
	return row, nil
}

// GetEmployeeProfileByMemberID resolves the profile behind a membership.
// Absence is not an error at this boundary.
func (r *repository) GetEmployeeProfileByMemberID(ctx context.Context, memberID string) (*domain.EmployeeProfile, error) {
	memberID, err := scope.Identifier(memberID, "memberId")
	if err != nil {
		return nil, err
	}

	var profile domain.EmployeeProfile
	findErr := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		First(&profile).Error
	return repoerr.MaybeSingle(&profile, findErr, "Unable to load employee profile")
}

// EnsureEmployeeProfileForMember returns the member's profile, creating an
// empty one when none exists yet. Concurrent callers converge on the same
// row through the unique member index.
func (r *repository) EnsureEmployeeProfileForMember(ctx context.Context, companyID, memberID string) (*domain.EmployeeProfile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	memberID, err = scope.Identifier(memberID, "memberId")
	if err != nil {
		return nil, err
	}

	existing, err := r.GetEmployeeProfileByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := r.clock.Now()
	profile := domain.EmployeeProfile{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		MemberID:  memberID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	createErr := r.db.WithContext(ctx).Create(&profile).Error
	if createErr != nil {
		if db.IsDuplicateKeyErr(createErr) {
			return r.GetEmployeeProfileByMemberID(ctx, memberID)
		}
		return nil, repoerr.Wrap(createErr, "Unable to create employee profile")
	}
	return &profile, nil
}

func (r *repository) CreateEmployeeProfile(ctx context.Context, companyID string, profile domain.EmployeeProfile) (*domain.EmployeeProfile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	profile.CompanyID = companyID
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	now := r.clock.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	createErr := r.db.WithContext(ctx).Create(&profile).Error
	return repoerr.Mutation(&profile, createErr, "Unable to create employee profile")
}

func (r *repository) ReplaceEmployeeProfile(ctx context.Context, companyID, employeeID string, profile domain.EmployeeProfile) (*domain.EmployeeProfile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	employeeID, err = scope.Identifier(employeeID, "employeeId")
	if err != nil {
		return nil, err
	}

	profile.ID = employeeID
	profile.CompanyID = companyID
	profile.UpdatedAt = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.EmployeeProfile{}).
		Where("company_id = ? AND id = ?", companyID, employeeID).
		Select("*").Omit("id", "created_at").
		Updates(&profile)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace employee profile")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Employee profile not found")
	}
	return r.GetEmployeeProfileByID(ctx, companyID, employeeID)
}

func (r *repository) UpdateEmployeeProfile(ctx context.Context, companyID, employeeID string, patch domain.Patch) (*domain.EmployeeProfile, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	employeeID, err = scope.Identifier(employeeID, "employeeId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "member_id", "created_at")
	updates["updated_at"] = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.EmployeeProfile{}).
		Where("company_id = ? AND id = ?", companyID, employeeID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update employee profile")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Employee profile not found")
	}
	return r.GetEmployeeProfileByID(ctx, companyID, employeeID)
}

func (r *repository) DeleteEmployeeProfile(ctx context.Context, companyID, employeeID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	employeeID, err = scope.Identifier(employeeID, "employeeId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, employeeID).
		Delete(&domain.EmployeeProfile{}).Error
	return repoerr.NoError(delErr, "Unable to delete employee profile")
}

func (r *repository) GetUserPreferences(ctx context.Context, userID string) (*domain.UserPreference, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return nil, err
	}

	var pref domain.UserPreference
	findErr := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&pref).Error
	row, err := repoerr.MaybeSingle(&pref, findErr, "Unable to load user preferences")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("User preferences not found")
	}
	return row, nil
}

func (r *repository) CreateUserPreferences(ctx context.Context, pref domain.UserPreference) (*domain.UserPreference, error) {
	userID, err := scope.Identifier(pref.UserID, "userId")
	if err != nil {
		return nil, err
	}
	pref.UserID = userID

	if pref.Theme == "" {
		pref.Theme = domain.ThemeSystem
	}
	now := r.clock.Now()
	if pref.CreatedAt.IsZero() {
		pref.CreatedAt = now
	}
	pref.UpdatedAt = now

	createErr := r.db.WithContext(ctx).Create(&pref).Error
	return repoerr.Mutation(&pref, createErr, "Unable to create user preferences")
}

func (r *repository) ReplaceUserPreferences(ctx context.Context, userID string, pref domain.UserPreference) (*domain.UserPreference, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return nil, err
	}

	pref.UserID = userID
	pref.UpdatedAt = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.UserPreference{}).
		Where("user_id = ?", userID).
		Select("*").Omit("user_id", "created_at").
		Updates(&pref)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace user preferences")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("User preferences not found")
	}
	return r.GetUserPreferences(ctx, userID)
}

func (r *repository) UpdateUserPreferences(ctx context.Context, userID string, patch domain.Patch) (*domain.UserPreference, error) {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "user_id", "created_at")
	updates["updated_at"] = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.UserPreference{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update user preferences")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("User preferences not found")
	}
	return r.GetUserPreferences(ctx, userID)
}

func (r *repository) DeleteUserPreferences(ctx context.Context, userID string) error {
	userID, err := scope.Identifier(userID, "userId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.UserPreference{}).Error
	return repoerr.NoError(delErr, "Unable to delete user preferences")
}

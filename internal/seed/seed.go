// Package seed provisions a demo tenant for local development. Every
// ensure function is idempotent so repeated startups reuse the same rows.
package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	companydomain "github.com/bancalarisantiago/workfolio/internal/company/domain"
	"github.com/bancalarisantiago/workfolio/internal/config"
	documentdomain "github.com/bancalarisantiago/workfolio/internal/document/domain"
	userdomain "github.com/bancalarisantiago/workfolio/internal/user/domain"
)

const (
	demoCompanyName = "Demo SRL"
	demoCompanyCode = "demo"
	demoAdminUserID = "00000000-0000-0000-0000-00000000ad01"
	demoAdminName   = "Demo Admin"
	demoStaffUserID = "00000000-0000-0000-0000-00000000ee01"
	demoStaffName   = "Demo Empleado"
)

// EnsureDemoCompany seeds the demo tenant: a company, an admin and an
// employee member with profiles, and the default document categories.
func EnsureDemoCompany(conn *gorm.DB, clk clock.Clock) error {
	if conn == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company, err := ensureCompany(tx, clk)
		if err != nil {
			return err
		}

		if err := ensureMember(tx, clk, company.ID, demoAdminUserID, demoAdminName, companydomain.RoleAdmin); err != nil {
			return err
		}
		if err := ensureMember(tx, clk, company.ID, demoStaffUserID, demoStaffName, companydomain.RoleEmployee); err != nil {
			return err
		}

		return ensureCategories(tx, clk, company.ID)
	})
}

func ensureCompany(tx *gorm.DB, clk clock.Clock) (*companydomain.Company, error) {
	var company companydomain.Company
	err := tx.Where("company_code = ?", demoCompanyCode).First(&company).Error
	if err == nil {
		return &company, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := clk.Now()
	company = companydomain.Company{
		ID:              uuid.NewString(),
		Name:            demoCompanyName,
		CompanyCode:     demoCompanyCode,
		CountryCode:     "AR",
		DefaultTimeZone: "America/Argentina/Buenos_Aires",
		PlanTier:        companydomain.PlanTrial,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := tx.Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func ensureMember(tx *gorm.DB, clk clock.Clock, companyID, userID, fullName string, role companydomain.MemberRole) error {
	now := clk.Now()

	var profile userdomain.UserProfile
	err := tx.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = userdomain.UserProfile{
			UserID:    userID,
			FullName:  fullName,
			TimeZone:  "America/Argentina/Buenos_Aires",
			Locale:    "es-AR",
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = tx.Create(&profile).Error
	}
	if err != nil {
		return err
	}

	var member companydomain.CompanyMember
	err = tx.Where("company_id = ? AND user_id = ?", companyID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		joined := now
		member = companydomain.CompanyMember{
			ID:        uuid.NewString(),
			CompanyID: companyID,
			UserID:    userID,
			Role:      role,
			Status:    companydomain.MemberActive,
			InvitedAt: now,
			JoinedAt:  &joined,
			CreatedAt: now,
		}
		err = tx.Create(&member).Error
	}
	if err != nil {
		return err
	}

	var employee userdomain.EmployeeProfile
	err = tx.Where("member_id = ?", member.ID).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		employee = userdomain.EmployeeProfile{
			ID:        uuid.NewString(),
			CompanyID: companyID,
			MemberID:  member.ID,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = tx.Create(&employee).Error
	}
	return err
}

func ensureCategories(tx *gorm.DB, clk clock.Clock, companyID string) error {
	now := clk.Now()
	for i, category := range config.DefaultCategoryConfig().Categories {
		var existing documentdomain.DocumentCategory
		err := tx.Where("company_id = ? AND key = ?", companyID, category.Key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := documentdomain.DocumentCategory{
			ID:        uuid.NewString(),
			CompanyID: companyID,
			Key:       category.Key,
			Label:     category.Label,
			SortOrder: i,
			CreatedAt: now,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

var Module = fx.Module("seed",
	fx.Invoke(func(cfg config.Config, conn *gorm.DB, clk clock.Clock, log *zap.Logger) error {
		if !cfg.SeedDemoData {
			return nil
		}
		if err := EnsureDemoCompany(conn, clk); err != nil {
			return err
		}
		log.Info("demo tenant ready", zap.String("company_code", demoCompanyCode))
		return nil
	}),
)

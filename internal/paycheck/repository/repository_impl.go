package repository

import (
	"context"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/paycheck/domain"
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

func (r *repository) ListPaychecks(ctx context.Context, companyID string) ([]domain.Paycheck, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	var paychecks []domain.Paycheck
	findErr := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("issued_at desc").
		Find(&paychecks).Error
	return repoerr.List(paychecks, findErr, "Unable to load paychecks")
}

func (r *repository) ListPaychecksForEmployee(ctx context.Context, companyID, employeeID string) ([]domain.Paycheck, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	employeeID, err = scope.Identifier(employeeID, "employeeId")
	if err != nil {
		return nil, err
	}

	var paychecks []domain.Paycheck
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("issued_at desc").
		Find(&paychecks).Error
	return repoerr.List(paychecks, findErr, "Unable to load employee paychecks")
}

func (r *repository) GetPaycheckByID(ctx context.Context, companyID, paycheckID string) (*domain.Paycheck, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	paycheckID, err = scope.Identifier(paycheckID, "paycheckId")
	if err != nil {
		return nil, err
	}

	var paycheck domain.Paycheck
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, paycheckID).
		First(&paycheck).Error
	row, err := repoerr.MaybeSingle(&paycheck, findErr, "Unable to load paycheck")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Paycheck not found")
	}
	return row, nil
}

func (r *repository) CreatePaycheck(ctx context.Context, companyID string, paycheck domain.Paycheck) (*domain.Paycheck, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	paycheck.CompanyID = companyID
	if paycheck.ID == "" {
		paycheck.ID = uuid.NewString()
	}
	now := r.clock.Now()
	if paycheck.CreatedAt.IsZero() {
		paycheck.CreatedAt = now
	}
	paycheck.UpdatedAt = now
	if paycheck.IssuedAt.IsZero() {
		paycheck.IssuedAt = now
	}
	if paycheck.Status == "" {
		paycheck.Status = domain.StatusUnsigned
	}
	if paycheck.Currency == "" {
		paycheck.Currency = "ARS"
	}

	createErr := r.db.WithContext(ctx).Create(&paycheck).Error
	return repoerr.Mutation(&paycheck, createErr, "Unable to create paycheck")
}

func (r *repository) ReplacePaycheck(ctx context.Context, companyID, paycheckID string, paycheck domain.Paycheck) (*domain.Paycheck, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	paycheckID, err = scope.Identifier(paycheckID, "paycheckId")
	if err != nil {
		return nil, err
	}

	paycheck.ID = paycheckID
	paycheck.CompanyID = companyID
	paycheck.UpdatedAt = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Paycheck{}).
		Where("company_id = ? AND id = ?", companyID, paycheckID).
		Select("*").Omit("id", "created_at").
		Updates(&paycheck)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to replace paycheck")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Paycheck not found")
	}
	return r.GetPaycheckByID(ctx, companyID, paycheckID)
}

func (r *repository) UpdatePaycheck(ctx context.Context, companyID, paycheckID string, patch domain.Patch) (*domain.Paycheck, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	paycheckID, err = scope.Identifier(paycheckID, "paycheckId")
	if err != nil {
		return nil, err
	}

	updates := db.ScrubPatch(patch, "id", "company_id", "created_at")
	updates["updated_at"] = r.clock.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Paycheck{}).
		Where("company_id = ? AND id = ?", companyID, paycheckID).
		Updates(updates)
	if res.Error != nil {
		return nil, repoerr.Wrap(res.Error, "Unable to update paycheck")
	}
	if res.RowsAffected == 0 {
		return nil, repoerr.NotFound("Paycheck not found")
	}
	return r.GetPaycheckByID(ctx, companyID, paycheckID)
}

func (r *repository) DeletePaycheck(ctx context.Context, companyID, paycheckID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	paycheckID, err = scope.Identifier(paycheckID, "paycheckId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, paycheckID).
		Delete(&domain.Paycheck{}).Error
	return repoerr.NoError(delErr, "Unable to delete paycheck")
}

func (r *repository) ListSignatureEvents(ctx context.Context, companyID, paycheckID string) ([]domain.PaycheckSignatureEvent, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	paycheckID, err = scope.Identifier(paycheckID, "paycheckId")
	if err != nil {
		return nil, err
	}

	var events []domain.PaycheckSignatureEvent
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND paycheck_id = ?", companyID, paycheckID).
		Order("created_at asc").
		Find(&events).Error
	return repoerr.List(events, findErr, "Unable to load paycheck signature events")
}

func (r *repository) GetSignatureEventByID(ctx context.Context, companyID, eventID string) (*domain.PaycheckSignatureEvent, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}
	eventID, err = scope.Identifier(eventID, "eventId")
	if err != nil {
		return nil, err
	}

	var event domain.PaycheckSignatureEvent
	findErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, eventID).
		First(&event).Error
	row, err := repoerr.MaybeSingle(&event, findErr, "Unable to load paycheck signature event")
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, repoerr.NotFound("Paycheck signature event not found")
	}
	return row, nil
}

func (r *repository) CreateSignatureEvent(ctx context.Context, companyID string, event domain.PaycheckSignatureEvent) (*domain.PaycheckSignatureEvent, error) {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return nil, err
	}

	event.CompanyID = companyID
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.clock.Now()
	}

	createErr := r.db.WithContext(ctx).Create(&event).Error
	return repoerr.Mutation(&event, createErr, "Unable to create paycheck signature event")
}

func (r *repository) DeleteSignatureEvent(ctx context.Context, companyID, eventID string) error {
	companyID, err := scope.CompanyScope(companyID)
	if err != nil {
		return err
	}
	eventID, err = scope.Identifier(eventID, "eventId")
	if err != nil {
		return err
	}

	delErr := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, eventID).
		Delete(&domain.PaycheckSignatureEvent{}).Error
	return repoerr.NoError(delErr, "Unable to delete paycheck signature event")
}

package employee

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	paydomain "github.com/bancalarisantiago/workfolio/internal/paycheck/domain"
	payservice "github.com/bancalarisantiago/workfolio/internal/paycheck/service"
	"github.com/bancalarisantiago/workfolio/internal/storage"
	"github.com/bancalarisantiago/workfolio/pkg/repoerr"
)

// PaycheckYearGroup holds one calendar year of paychecks, newest first.
type PaycheckYearGroup struct {
	Year  int                  `json:"year"`
	Items []paydomain.Paycheck `json:"items"`
}

// PaychecksView is the rendered history state. Refresh never fails; any
// failure lands in Error with Groups left from the last good refresh.
type PaychecksView struct {
	Groups      []PaycheckYearGroup `json:"groups"`
	Error       string              `json:"error,omitempty"`
	RefreshedAt time.Time           `json:"refreshed_at"`
}

// PaychecksService assembles the per-employee paycheck history.
type PaychecksService struct {
	resolver  *ContextResolver
	paychecks paydomain.Repository
	files     *payservice.FileService
	clock     clock.Clock
	log       *zap.Logger

	mu    sync.Mutex
	views map[string]PaychecksView
}

func NewPaychecksService(resolver *ContextResolver, paychecks paydomain.Repository, files *payservice.FileService, clk clock.Clock, log *zap.Logger) *PaychecksService {
	return &PaychecksService{
		resolver:  resolver,
		paychecks: paychecks,
		files:     files,
		clock:     clk,
		log:       log,
		views:     make(map[string]PaychecksView),
	}
}

// GroupPaychecksByYear buckets paychecks by the calendar year of
// issued_at, years descending and items issued_at descending. A zero
// issued_at falls into the current year.
func GroupPaychecksByYear(paychecks []paydomain.Paycheck, now time.Time) []PaycheckYearGroup {
	byYear := make(map[int][]paydomain.Paycheck)
	for _, p := range paychecks {
		year := p.IssuedAt.Year()
		if p.IssuedAt.IsZero() {
			year = now.Year()
		}
		byYear[year] = append(byYear[year], p)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	groups := make([]PaycheckYearGroup, 0, len(years))
	for _, year := range years {
		items := byYear[year]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].IssuedAt.After(items[j].IssuedAt)
		})
		groups = append(groups, PaycheckYearGroup{Year: year, Items: items})
	}
	return groups
}

// Refresh rebuilds the history for the user. Errors never propagate;
// they surface through the returned view's Error field.
func (s *PaychecksService) Refresh(ctx context.Context, userID string) PaychecksView {
	view := PaychecksView{RefreshedAt: s.clock.Now()}

	ec, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return s.storeFailure(userID, view, err)
	}

	paychecks, err := s.paychecks.ListPaychecksForEmployee(ctx, ec.CompanyID, ec.EmployeeID)
	if err != nil {
		return s.storeFailure(userID, view, err)
	}

	view.Groups = GroupPaychecksByYear(paychecks, s.clock.Now())

	s.mu.Lock()
	s.views[userID] = view
	s.mu.Unlock()
	return view
}

func (s *PaychecksService) storeFailure(userID string, view PaychecksView, err error) PaychecksView {
	s.log.Warn("paycheck history refresh failed",
		zap.String("user_id", userID),
		zap.Error(err))
	view.Error = err.Error()

	s.mu.Lock()
	if previous, ok := s.views[userID]; ok {
		view.Groups = previous.Groups
	}
	s.views[userID] = view
	s.mu.Unlock()
	return view
}

// View returns the last refreshed state for the user, if any.
func (s *PaychecksService) View(userID string) (PaychecksView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.views[userID]
	return view, ok
}

// Download mints a short-lived download URL for the paycheck's stored
// file after confirming the paycheck belongs to the caller. A paycheck
// owned by another employee is indistinguishable from a missing one.
func (s *PaychecksService) Download(ctx context.Context, userID, paycheckID string) (storage.SignedURL, error) {
	ec, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return storage.SignedURL{}, err
	}

	paycheck, err := s.paychecks.GetPaycheckByID(ctx, ec.CompanyID, paycheckID)
	if err != nil {
		return storage.SignedURL{}, err
	}
	if paycheck.EmployeeID != ec.EmployeeID {
		return storage.SignedURL{}, repoerr.NotFound("Paycheck not found")
	}

	return s.files.CreateSignedURL(ctx, ec.CompanyID, paycheckID)
}

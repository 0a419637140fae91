package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/leave"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type LeaveServiceImpl struct {
	leave.LeaveTypeRepository
	leave.LeaveLedgerRepository
	employee.EmployeeRepository
	now func() time.Time
}

type ledger struct {
	employee employee.Employee
	window   leave.EntitlementWindow
	grants   []leave.LeaveGrantRow
	usages   []leave.LeaveUsageRow
}

// load resolves the window from the hire date, then reads grants and usages concurrently.
func (s *LeaveServiceImpl) load(ctx context.Context, companyID, employeeID string, year int) (ledger, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, companyID, employeeID)
	if err != nil {
		return ledger{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.HireDate == nil {
		return ledger{}, leave.ErrHireDateNotFound
	}

	today := s.now()
	if year == 0 {
		year = today.Year()
	}

	// Window days are calendar days in the server location, same as usage start times
	hire := *emp.HireDate
	hire = time.Date(hire.Year(), hire.Month(), hire.Day(), 0, 0, 0, 0, today.Location())

	window, err := ComputeWindow(hire, year, today)
	if err != nil {
		return ledger{}, err
	}
	window.EmployeeID = employeeID

	l := ledger{employee: emp, window: window}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		grants, err := s.LeaveLedgerRepository.GetGrants(gctx, companyID, employeeID, window.StartDate, window.EndDate)
		if err != nil {
			return fmt.Errorf("failed to get leave grants: %w", err)
		}
		l.grants = grants
		return nil
	})
	g.Go(func() error {
		usages, err := s.LeaveLedgerRepository.GetUsages(gctx, companyID, employeeID, window.StartDate, window.EndDate)
		if err != nil {
			return fmt.Errorf("failed to get leave usages: %w", err)
		}
		l.usages = usages
		return nil
	})
	if err := g.Wait(); err != nil {
		return ledger{}, err
	}

	return l, nil
}

func windowResponse(w leave.EntitlementWindow) leave.WindowResponse {
	return leave.WindowResponse{
		Year:      w.Year,
		StartDate: w.StartDate.Format("2006-01-02"),
		EndDate:   w.EndDate.Format("2006-01-02"),
	}
}

// GetBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalances(ctx context.Context, companyID, employeeID string, year int) (leave.BalancesResponse, error) {
	l, err := s.load(ctx, companyID, employeeID, year)
	if err != nil {
		return leave.BalancesResponse{}, err
	}

	dwh := l.employee.WorkHoursPerDay()
	balances, err := Aggregate(l.window, l.grants, l.usages, dwh)
	if err != nil {
		return leave.BalancesResponse{}, err
	}

	summaries := make([]leave.LeaveBalanceSummary, 0, len(balances))
	for _, b := range balances {
		summaries = append(summaries, Summary(b, dwh))
	}

	return leave.BalancesResponse{
		WindowResponse: windowResponse(l.window),
		Balances:       summaries,
	}, nil
}

// GetBalanceDetail implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalanceDetail(ctx context.Context, companyID, employeeID string, year int) (leave.BalanceDetailResponse, error) {
	l, err := s.load(ctx, companyID, employeeID, year)
	if err != nil {
		return leave.BalanceDetailResponse{}, err
	}

	dwh := l.employee.WorkHoursPerDay()
	balances, err := Aggregate(l.window, l.grants, l.usages, dwh)
	if err != nil {
		return leave.BalanceDetailResponse{}, err
	}

	return leave.BalanceDetailResponse{
		WindowResponse: windowResponse(l.window),
		DayWorkHours:   dwh.String(),
		Balances:       balances,
	}, nil
}

// ListLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	types, err := s.LeaveTypeRepository.ListActive(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return types, nil
}

// CheckBalance returns leave.ErrInsufficientBalance when hours of leaveCode
// exceed what remains in the current window. Leave types of the free class
// are never checked.
func (s *LeaveServiceImpl) CheckBalance(ctx context.Context, companyID, employeeID, leaveCode string, hours decimal.Decimal) error {
	lt, err := s.LeaveTypeRepository.GetByCode(ctx, companyID, leaveCode)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return err
		}
		return fmt.Errorf("failed to get leave type: %w", err)
	}
	if lt.Class != leave.ClassQuota {
		return nil
	}

	detail, err := s.GetBalanceDetail(ctx, companyID, employeeID, 0)
	if err != nil {
		return err
	}

	for _, b := range detail.Balances {
		if b.LeaveTypeCode != leaveCode {
			continue
		}
		if b.RemainingTotalHours.LessThan(hours) {
			return leave.ErrInsufficientBalance
		}
		return nil
	}
	return leave.ErrInsufficientBalance
}

func NewLeaveService(
	leaveTypeRepo leave.LeaveTypeRepository,
	ledgerRepo leave.LeaveLedgerRepository,
	employeeRepo employee.EmployeeRepository,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		LeaveTypeRepository:   leaveTypeRepo,
		LeaveLedgerRepository: ledgerRepo,
		EmployeeRepository:    employeeRepo,
		now:                   time.Now,
	}
}

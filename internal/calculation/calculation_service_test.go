package calculation

import (
	"context"
	"testing"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/audit"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee"
	employeeerrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeFinder struct {
	employee.Repository
	findFn func(ctx context.Context, organizationID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeFinder) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*employee.Employee, error) {
	return f.findFn(ctx, organizationID, id)
}

type fakeAuditRepository struct {
	recorded []*audit.Entry
}

func (f *fakeAuditRepository) Record(ctx context.Context, entry *audit.Entry) error {
	f.recorded = append(f.recorded, entry)
	return nil
}

func (f *fakeAuditRepository) FindByEntity(ctx context.Context, organizationID, entityType, entityID string) ([]audit.Entry, error) {
	return nil, nil
}

func activeEmployee(orgID uuid.UUID) *employee.Employee {
	return &employee.Employee{
		ID:             uuid.New(),
		OrganizationID: orgID,
		FullName:       "Grace Auma",
		Classification: "local",
		PayType:        "salary",
		PayRate:        1_000_000,
		Country:        "UG",
		Active:         true,
	}
}

func TestCalculationService_EmployeeNotFound(t *testing.T) {
	repo := &fakeEmployeeFinder{
		findFn: func(ctx context.Context, organizationID, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Calculate(context.Background(), uuid.NewString(), uuid.NewString(), CalculateRequest{
		EmployeeID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestCalculationService_InactiveEmployee(t *testing.T) {
	orgID := uuid.New()
	empl := activeEmployee(orgID)
	empl.Active = false

	repo := &fakeEmployeeFinder{
		findFn: func(ctx context.Context, organizationID, id string) (*employee.Employee, error) {
			return empl, nil
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.Calculate(context.Background(), orgID.String(), uuid.NewString(), CalculateRequest{
		EmployeeID: empl.ID.String(),
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeInactive)
}

func TestCalculationService_UsesStoredParameters(t *testing.T) {
	orgID := uuid.New()
	empl := activeEmployee(orgID)

	repo := &fakeEmployeeFinder{
		findFn: func(ctx context.Context, organizationID, id string) (*employee.Employee, error) {
			return empl, nil
		},
	}
	auditRepo := &fakeAuditRepository{}
	svc := NewService(repo, auditRepo)

	resp, err := svc.Calculate(context.Background(), orgID.String(), uuid.NewString(), CalculateRequest{
		EmployeeID: empl.ID.String(),
	})
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, empl.FullName, resp.Employee.Name)

	// 1,000,000 UGX salary: PAYE 202,000 + NSSF 50,000.
	assert.InDelta(t, 1_000_000, resp.Data.GrossPay, 0.01)
	assert.InDelta(t, 252_000, resp.Data.TotalDeductions, 0.01)
	assert.InDelta(t, 748_000, resp.Data.NetPay, 0.01)

	assert.Len(t, auditRepo.recorded, 1)
	assert.Equal(t, "calculation.run", auditRepo.recorded[0].Action)
	assert.Equal(t, empl.ID.String(), auditRepo.recorded[0].EntityID)
}

func TestCalculationService_RequestOverridesWin(t *testing.T) {
	orgID := uuid.New()
	empl := activeEmployee(orgID)

	repo := &fakeEmployeeFinder{
		findFn: func(ctx context.Context, organizationID, id string) (*employee.Employee, error) {
			return empl, nil
		},
	}
	svc := NewService(repo, nil)

	hourly := "hourly"
	rate := 10_000.0
	hours := 100.0
	resp, err := svc.Calculate(context.Background(), orgID.String(), uuid.NewString(), CalculateRequest{
		EmployeeID:  empl.ID.String(),
		PayType:     &hourly,
		PayRate:     &rate,
		HoursWorked: &hours,
	})
	assert.NoError(t, err)
	assert.InDelta(t, 1_000_000, resp.Data.GrossPay, 0.01)
}

func TestCalculationService_CustomDeductionsApplied(t *testing.T) {
	orgID := uuid.New()
	empl := activeEmployee(orgID)

	repo := &fakeEmployeeFinder{
		findFn: func(ctx context.Context, organizationID, id string) (*employee.Employee, error) {
			return empl, nil
		},
	}
	svc := NewService(repo, nil)

	base, err := svc.Calculate(context.Background(), orgID.String(), uuid.NewString(), CalculateRequest{
		EmployeeID: empl.ID.String(),
	})
	assert.NoError(t, err)

	withDeduction, err := svc.Calculate(context.Background(), orgID.String(), uuid.NewString(), CalculateRequest{
		EmployeeID: empl.ID.String(),
		CustomDeductions: []CustomDeductionInput{
			{Name: "Salary advance", Amount: 50_000, Type: "deduction"},
		},
	})
	assert.NoError(t, err)
	assert.InDelta(t, base.Data.NetPay-50_000, withDeduction.Data.NetPay, 0.01)
}

func TestCalculationService_Deterministic(t *testing.T) {
	orgID := uuid.New()
	empl := activeEmployee(orgID)

	repo := &fakeEmployeeFinder{
		findFn: func(ctx context.Context, organizationID, id string) (*employee.Employee, error) {
			return empl, nil
		},
	}
	svc := NewService(repo, nil)

	req := CalculateRequest{EmployeeID: empl.ID.String(), BenefitDeductions: 10_000}
	first, err := svc.Calculate(context.Background(), orgID.String(), uuid.NewString(), req)
	assert.NoError(t, err)
	second, err := svc.Calculate(context.Background(), orgID.String(), uuid.NewString(), req)
	assert.NoError(t, err)
	assert.Equal(t, first.Data, second.Data)
}

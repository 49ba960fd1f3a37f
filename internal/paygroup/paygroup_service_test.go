package paygroup

import (
	"context"
	"testing"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee"
	paygrouperrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paygroup/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayGroupRepository struct {
	createFn      func(ctx context.Context, group *PayGroup) error
	findAllFn     func(ctx context.Context, organizationID string) ([]PayGroup, error)
	findByIDFn    func(ctx context.Context, organizationID, id string) (*PayGroup, error)
	findDefaultFn func(ctx context.Context, organizationID, companyID string) (*PayGroup, error)
	updateFn      func(ctx context.Context, group *PayGroup) error
	deleteFn      func(ctx context.Context, organizationID, id string) error
}

func (f *fakePayGroupRepository) Create(ctx context.Context, group *PayGroup) error {
	return f.createFn(ctx, group)
}

func (f *fakePayGroupRepository) FindAllByOrganization(ctx context.Context, organizationID string) ([]PayGroup, error) {
	return f.findAllFn(ctx, organizationID)
}

func (f *fakePayGroupRepository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayGroup, error) {
	return f.findByIDFn(ctx, organizationID, id)
}

func (f *fakePayGroupRepository) FindDefaultByCompany(ctx context.Context, organizationID, companyID string) (*PayGroup, error) {
	return f.findDefaultFn(ctx, organizationID, companyID)
}

func (f *fakePayGroupRepository) Update(ctx context.Context, group *PayGroup) error {
	return f.updateFn(ctx, group)
}

func (f *fakePayGroupRepository) Delete(ctx context.Context, organizationID, id string) error {
	return f.deleteFn(ctx, organizationID, id)
}

type fakeEmployeeAssigner struct {
	employee.Repository
	assigned map[string]uuid.UUID
}

func (f *fakeEmployeeAssigner) AssignPayGroup(ctx context.Context, id string, payGroupID uuid.UUID) error {
	if f.assigned == nil {
		f.assigned = map[string]uuid.UUID{}
	}
	f.assigned[id] = payGroupID
	return nil
}

func TestPayGroupService_Create_DefaultsExchangeRateToOne(t *testing.T) {
	var created *PayGroup
	repo := &fakePayGroupRepository{
		createFn: func(ctx context.Context, group *PayGroup) error {
			created = group
			return nil
		},
	}
	svc := NewService(repo, nil)

	resp, err := svc.Create(context.Background(), uuid.NewString(), CreatePayGroupRequest{
		CompanyID: uuid.NewString(),
		Name:      "Monthly Local",
		Currency:  "UGX",
		Frequency: "monthly",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, resp.ExchangeRate)
	assert.NotNil(t, created)
	assert.Equal(t, 1.0, created.ExchangeRate)
}

func TestPayGroupService_Create_RejectsNegativeExchangeRate(t *testing.T) {
	svc := NewService(&fakePayGroupRepository{}, nil)

	_, err := svc.Create(context.Background(), uuid.NewString(), CreatePayGroupRequest{
		CompanyID:    uuid.NewString(),
		Name:         "Expat USD",
		Currency:     "USD",
		Frequency:    "monthly",
		ExchangeRate: -3700,
	})
	assert.ErrorIs(t, err, paygrouperrors.ErrInvalidExchangeRate)
}

func TestPayGroupService_GetByID_NotFound(t *testing.T) {
	repo := &fakePayGroupRepository{
		findByIDFn: func(ctx context.Context, organizationID, id string) (*PayGroup, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, nil)

	_, err := svc.GetByID(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, paygrouperrors.ErrPayGroupNotFound)
}

func TestPayGroupService_AssignEmployeeDefault(t *testing.T) {
	groupID := uuid.New()
	repo := &fakePayGroupRepository{
		findDefaultFn: func(ctx context.Context, organizationID, companyID string) (*PayGroup, error) {
			return &PayGroup{ID: groupID, IsDefault: true}, nil
		},
	}
	assigner := &fakeEmployeeAssigner{}
	svc := NewService(repo, assigner)

	emplID := uuid.NewString()
	err := svc.AssignEmployeeDefault(context.Background(), uuid.NewString(), uuid.NewString(), emplID)
	assert.NoError(t, err)
	assert.Equal(t, groupID, assigner.assigned[emplID])
}

func TestPayGroupService_AssignEmployeeDefault_NoDefaultGroup(t *testing.T) {
	repo := &fakePayGroupRepository{
		findDefaultFn: func(ctx context.Context, organizationID, companyID string) (*PayGroup, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	assigner := &fakeEmployeeAssigner{}
	svc := NewService(repo, assigner)

	err := svc.AssignEmployeeDefault(context.Background(), uuid.NewString(), uuid.NewString(), uuid.NewString())
	assert.NoError(t, err)
	assert.Empty(t, assigner.assigned)
}

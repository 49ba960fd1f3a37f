package payrun

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/events"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/messaging/kafka"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paygroup"
	payrunerrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/payrun/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRunRepository struct {
	runs    map[string]*PayRun
	entries map[string][]PayRunEntry
	overlap bool
}

func newFakeRunRepository() *fakeRunRepository {
	return &fakeRunRepository{
		runs:    map[string]*PayRun{},
		entries: map[string][]PayRunEntry{},
	}
}

func (f *fakeRunRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRunRepository) Create(ctx context.Context, run *PayRun) error {
	cp := *run
	f.runs[run.ID.String()] = &cp
	return nil
}

func (f *fakeRunRepository) FindAllByOrganization(ctx context.Context, organizationID string) ([]PayRun, error) {
	out := make([]PayRun, 0, len(f.runs))
	for _, r := range f.runs {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRunRepository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayRun, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *run
	return &cp, nil
}

func (f *fakeRunRepository) HasOverlappingPeriod(ctx context.Context, organizationID, payGroupID string, start, end time.Time, excludeID *string) (bool, error) {
	return f.overlap, nil
}

func (f *fakeRunRepository) Update(ctx context.Context, run *PayRun) error {
	cp := *run
	f.runs[run.ID.String()] = &cp
	return nil
}

func (f *fakeRunRepository) Delete(ctx context.Context, organizationID, id string) error {
	delete(f.runs, id)
	return nil
}

func (f *fakeRunRepository) ReplaceEntries(ctx context.Context, runID string, entries []PayRunEntry) error {
	f.entries[runID] = entries
	return nil
}

func (f *fakeRunRepository) FindEntriesByRun(ctx context.Context, organizationID, runID string) ([]PayRunEntry, error) {
	return f.entries[runID], nil
}

func (f *fakeRunRepository) FindEntryByID(ctx context.Context, organizationID, runID, entryID string) (*PayRunEntry, error) {
	for _, e := range f.entries[runID] {
		if e.ID.String() == entryID {
			cp := e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRunRepository) UpdateEntry(ctx context.Context, entry *PayRunEntry) error {
	list := f.entries[entry.PayRunID.String()]
	for i := range list {
		if list[i].ID == entry.ID {
			list[i] = *entry
		}
	}
	return nil
}

type fakeGroupRepository struct {
	group *paygroup.PayGroup
}

func (f *fakeGroupRepository) Create(ctx context.Context, group *paygroup.PayGroup) error { return nil }

func (f *fakeGroupRepository) FindAllByOrganization(ctx context.Context, organizationID string) ([]paygroup.PayGroup, error) {
	return nil, nil
}

func (f *fakeGroupRepository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*paygroup.PayGroup, error) {
	if f.group == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.group, nil
}

func (f *fakeGroupRepository) FindDefaultByCompany(ctx context.Context, organizationID, companyID string) (*paygroup.PayGroup, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroupRepository) Update(ctx context.Context, group *paygroup.PayGroup) error { return nil }

func (f *fakeGroupRepository) Delete(ctx context.Context, organizationID, id string) error {
	return nil
}

type fakeMemberRepository struct {
	employee.Repository
	members []employee.Employee
}

func (f *fakeMemberRepository) FindActiveByPayGroup(ctx context.Context, organizationID, payGroupID string) ([]employee.Employee, error) {
	return f.members, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func newGormMock(t *testing.T) (*gorm.DB, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	return gdb, db, mock
}

func seedRun(repo *fakeRunRepository, orgID uuid.UUID, group *paygroup.PayGroup, status string) *PayRun {
	run := &PayRun{
		ID:             uuid.New(),
		OrganizationID: orgID,
		CompanyID:      group.CompanyID,
		PayGroupID:     group.ID,
		PeriodStart:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:         status,
		CreatedBy:      uuid.New(),
	}
	repo.Create(context.Background(), run)
	return run
}

func localGroup(orgID uuid.UUID) *paygroup.PayGroup {
	return &paygroup.PayGroup{
		ID:             uuid.New(),
		OrganizationID: orgID,
		CompanyID:      uuid.New(),
		Name:           "Monthly Local",
		Currency:       "UGX",
		Frequency:      paygroup.FrequencyMonthly,
		ExchangeRate:   1,
	}
}

func TestPayRunService_Create_RejectsOverlappingPeriod(t *testing.T) {
	gdb, db, _ := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	repo := newFakeRunRepository()
	repo.overlap = true

	svc := NewService(gdb, repo, &fakeGroupRepository{group: group}, nil, nil, nil)

	_, err := svc.Create(context.Background(), orgID.String(), uuid.NewString(), CreatePayRunRequest{
		PayGroupID:  group.ID.String(),
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
	})
	assert.ErrorIs(t, err, payrunerrors.ErrOverlappingPeriod)
}

func TestPayRunService_Create_RejectsInvertedPeriod(t *testing.T) {
	gdb, db, _ := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	svc := NewService(gdb, newFakeRunRepository(), &fakeGroupRepository{group: group}, nil, nil, nil)

	_, err := svc.Create(context.Background(), orgID.String(), uuid.NewString(), CreatePayRunRequest{
		PayGroupID:  group.ID.String(),
		PeriodStart: "2026-02-01",
		PeriodEnd:   "2026-01-01",
	})
	assert.ErrorIs(t, err, payrunerrors.ErrInvalidPeriod)
}

func TestPayRunService_Process_ComputesStatutoryDeductions(t *testing.T) {
	gdb, db, sqlMock := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	repo := newFakeRunRepository()
	run := seedRun(repo, orgID, group, StatusDraft)

	members := &fakeMemberRepository{members: []employee.Employee{
		{
			ID:             uuid.New(),
			OrganizationID: orgID,
			FullName:       "Grace Auma",
			Classification: "local",
			PayType:        "salary",
			PayRate:        1_000_000,
			Country:        "UG",
			Active:         true,
		},
	}}

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	svc := NewService(gdb, repo, &fakeGroupRepository{group: group}, members, nil, nil)

	resp, err := svc.Process(context.Background(), orgID.String(), uuid.NewString(), run.ID.String(), ProcessPayRunRequest{})
	assert.NoError(t, err)
	assert.Equal(t, StatusProcessed, resp.Status)
	assert.Equal(t, 1, resp.EntryCount)

	// PAYE 202,000 + NSSF 50,000 on a 1,000,000 salary.
	assert.InDelta(t, 1_000_000, resp.TotalGross, 0.01)
	assert.InDelta(t, 252_000, resp.TotalDeduction, 0.01)
	assert.InDelta(t, 748_000, resp.TotalNet, 0.01)
	assert.InDelta(t, 100_000, resp.TotalEmployer, 0.01)

	entries := repo.entries[run.ID.String()]
	assert.Len(t, entries, 1)
	assert.Equal(t, "Grace Auma", entries[0].EmployeeName)
	assert.InDelta(t, 748_000, entries[0].NetPayLocal, 0.01)
}

func TestPayRunService_Process_ConvertsExpatriateNet(t *testing.T) {
	gdb, db, sqlMock := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	group.Currency = "USD"
	group.ExchangeRate = 3700

	repo := newFakeRunRepository()
	run := seedRun(repo, orgID, group, StatusDraft)

	members := &fakeMemberRepository{members: []employee.Employee{
		{
			ID:             uuid.New(),
			OrganizationID: orgID,
			FullName:       "John Expat",
			Classification: "expatriate",
			PayType:        "salary",
			PayRate:        2_000,
			Country:        "UG",
			Active:         true,
		},
	}}

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	svc := NewService(gdb, repo, &fakeGroupRepository{group: group}, members, nil, nil)

	resp, err := svc.Process(context.Background(), orgID.String(), uuid.NewString(), run.ID.String(), ProcessPayRunRequest{})
	assert.NoError(t, err)

	// Flat 15 percent, converted once at the group rate.
	assert.InDelta(t, 1_700, resp.TotalNet, 0.001)
	entries := repo.entries[run.ID.String()]
	assert.Len(t, entries, 1)
	assert.InDelta(t, 1_700*3700, entries[0].NetPayLocal, 0.001)
	assert.InDelta(t, 0, entries[0].EmployerContributions, 0.001)
}

func TestPayRunService_Process_RejectsApprovedRun(t *testing.T) {
	gdb, db, _ := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	repo := newFakeRunRepository()
	run := seedRun(repo, orgID, group, StatusApproved)

	svc := NewService(gdb, repo, &fakeGroupRepository{group: group}, &fakeMemberRepository{}, nil, nil)

	_, err := svc.Process(context.Background(), orgID.String(), uuid.NewString(), run.ID.String(), ProcessPayRunRequest{})
	assert.ErrorIs(t, err, payrunerrors.ErrInvalidStatusTransition)
}

func TestPayRunService_Process_EmptyPayGroup(t *testing.T) {
	gdb, db, _ := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	repo := newFakeRunRepository()
	run := seedRun(repo, orgID, group, StatusDraft)

	svc := NewService(gdb, repo, &fakeGroupRepository{group: group}, &fakeMemberRepository{}, nil, nil)

	_, err := svc.Process(context.Background(), orgID.String(), uuid.NewString(), run.ID.String(), ProcessPayRunRequest{})
	assert.ErrorIs(t, err, payrunerrors.ErrEmptyPayGroup)
}

func TestPayRunService_Approve_QueuesPayslipEvent(t *testing.T) {
	gdb, db, sqlMock := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	repo := newFakeRunRepository()
	run := seedRun(repo, orgID, group, StatusProcessed)
	outbox := &fakeOutboxRepository{}

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	svc := NewService(gdb, repo, &fakeGroupRepository{group: group}, nil, outbox, nil)

	actor := uuid.NewString()
	resp, err := svc.Approve(context.Background(), orgID.String(), actor, run.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, actor, *resp.ApprovedBy)

	assert.Len(t, outbox.created, 1)
	assert.Equal(t, events.PayRunPayslipsRequestedTopic, outbox.created[0].Topic)
}

func TestPayRunService_Approve_RequiresProcessed(t *testing.T) {
	gdb, db, _ := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	repo := newFakeRunRepository()
	run := seedRun(repo, orgID, group, StatusDraft)

	svc := NewService(gdb, repo, &fakeGroupRepository{group: group}, nil, nil, nil)

	_, err := svc.Approve(context.Background(), orgID.String(), uuid.NewString(), run.ID.String())
	assert.ErrorIs(t, err, payrunerrors.ErrInvalidStatusTransition)
}

func TestPayRunService_MarkPaid_RequiresApproved(t *testing.T) {
	gdb, db, _ := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	repo := newFakeRunRepository()

	approved := seedRun(repo, orgID, group, StatusApproved)
	draft := seedRun(repo, orgID, group, StatusDraft)

	svc := NewService(gdb, repo, &fakeGroupRepository{group: group}, nil, nil, nil)

	resp, err := svc.MarkPaid(context.Background(), orgID.String(), uuid.NewString(), approved.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, resp.Status)
	assert.NotNil(t, resp.PaidAt)

	_, err = svc.MarkPaid(context.Background(), orgID.String(), uuid.NewString(), draft.ID.String())
	assert.ErrorIs(t, err, payrunerrors.ErrInvalidStatusTransition)
}

func TestPayRunService_Delete_OnlyDraft(t *testing.T) {
	gdb, db, _ := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	repo := newFakeRunRepository()
	run := seedRun(repo, orgID, group, StatusProcessed)

	svc := NewService(gdb, repo, &fakeGroupRepository{group: group}, nil, nil, nil)

	err := svc.Delete(context.Background(), orgID.String(), run.ID.String())
	assert.ErrorIs(t, err, payrunerrors.ErrNotDraft)
}

func TestPayRunService_GeneratePayslips(t *testing.T) {
	gdb, db, _ := newGormMock(t)
	defer db.Close()

	orgID := uuid.New()
	group := localGroup(orgID)
	repo := newFakeRunRepository()
	run := seedRun(repo, orgID, group, StatusApproved)

	entry := PayRunEntry{
		ID:              uuid.New(),
		PayRunID:        run.ID,
		OrganizationID:  orgID,
		EmployeeID:      uuid.New(),
		EmployeeName:    "Grace Auma",
		Currency:        "UGX",
		GrossPay:        1_000_000,
		TotalDeductions: 252_000,
		NetPay:          748_000,
		ExchangeRate:    1,
		NetPayLocal:     748_000,
	}
	repo.entries[run.ID.String()] = []PayRunEntry{entry}

	svc := NewService(gdb, repo, &fakeGroupRepository{group: group}, nil, nil, nil)

	err := svc.GeneratePayslips(context.Background(), orgID.String(), run.ID.String())
	assert.NoError(t, err)

	stored := repo.entries[run.ID.String()][0]
	assert.True(t, bytes.HasPrefix(stored.PayslipPDF, []byte("%PDF-1.4")))
	assert.NotNil(t, stored.PayslipGeneratedAt)

	pdf, err := svc.GetPayslip(context.Background(), orgID.String(), run.ID.String(), entry.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, stored.PayslipPDF, pdf)
}

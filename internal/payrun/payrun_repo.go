package payrun

import (
	"context"
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payrun_repo.go -destination=mock/payrun_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, run *PayRun) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]PayRun, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayRun, error)
	HasOverlappingPeriod(ctx context.Context, organizationID, payGroupID string, start, end time.Time, excludeID *string) (bool, error)
	Update(ctx context.Context, run *PayRun) error
	Delete(ctx context.Context, organizationID, id string) error

	ReplaceEntries(ctx context.Context, runID string, entries []PayRunEntry) error
	FindEntriesByRun(ctx context.Context, organizationID, runID string) ([]PayRunEntry, error)
	FindEntryByID(ctx context.Context, organizationID, runID, entryID string) (*PayRunEntry, error)
	UpdateEntry(ctx context.Context, entry *PayRunEntry) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, run *PayRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]PayRun, error) {
	var runs []PayRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("period_start DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayRun, error) {
	var run PayRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) HasOverlappingPeriod(
	ctx context.Context,
	organizationID, payGroupID string,
	start, end time.Time,
	excludeID *string,
) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&PayRun{}).
		Scopes(tenant.Scope(organizationID)).
		Where("pay_group_id = ?", payGroupID).
		Where("period_start <= ? AND period_end >= ?", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Update(ctx context.Context, run *PayRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Delete(&PayRun{}, "id = ?", id).Error
}

// ReplaceEntries drops any previous computation for the run before
// inserting the new one, so re-processing a draft stays idempotent.
func (r *repository) ReplaceEntries(ctx context.Context, runID string, entries []PayRunEntry) error {
	if err := r.db.WithContext(ctx).
		Where("pay_run_id = ?", runID).
		Delete(&PayRunEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *repository) FindEntriesByRun(ctx context.Context, organizationID, runID string) ([]PayRunEntry, error) {
	var entries []PayRunEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("pay_run_id = ?", runID).
		Order("employee_name ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindEntryByID(ctx context.Context, organizationID, runID, entryID string) (*PayRunEntry, error) {
	var entry PayRunEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("pay_run_id = ?", runID).
		First(&entry, "id = ?", entryID).Error
	return &entry, err
}

func (r *repository) UpdateEntry(ctx context.Context, entry *PayRunEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

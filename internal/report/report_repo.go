package report

import (
	"context"
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/payrun"

	"gorm.io/gorm"
)

type SummaryRow struct {
	RunCount       int64
	EmployeeCount  int64
	TotalGross     float64
	TotalDeduction float64
	TotalNet       float64
	TotalEmployer  float64
}

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	PayrollSummary(ctx context.Context, organizationID, companyID string, from, to time.Time) (SummaryRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// PayrollSummary aggregates non-draft runs overlapping the window.
func (r *repository) PayrollSummary(
	ctx context.Context,
	organizationID, companyID string,
	from, to time.Time,
) (SummaryRow, error) {
	var row SummaryRow
	err := r.db.WithContext(ctx).
		Model(&payrun.PayRun{}).
		Select(
			"COUNT(*) AS run_count",
			"COALESCE(SUM(total_gross), 0) AS total_gross",
			"COALESCE(SUM(total_deduction), 0) AS total_deduction",
			"COALESCE(SUM(total_net), 0) AS total_net",
			"COALESCE(SUM(total_employer), 0) AS total_employer",
		).
		Where("organization_id = ?", organizationID).
		Where("company_id = ?", companyID).
		Where("status <> ?", payrun.StatusDraft).
		Where("period_start <= ? AND period_end >= ?", to, from).
		Scan(&row).Error
	if err != nil {
		return SummaryRow{}, err
	}

	err = r.db.WithContext(ctx).
		Model(&payrun.PayRunEntry{}).
		Joins("JOIN pay_runs ON pay_runs.id = pay_run_entries.pay_run_id").
		Where("pay_runs.organization_id = ?", organizationID).
		Where("pay_runs.company_id = ?", companyID).
		Where("pay_runs.status <> ?", payrun.StatusDraft).
		Where("pay_runs.period_start <= ? AND pay_runs.period_end >= ?", to, from).
		Distinct("pay_run_entries.employee_id").
		Count(&row.EmployeeCount).Error
	if err != nil {
		return SummaryRow{}, err
	}

	return row, nil
}

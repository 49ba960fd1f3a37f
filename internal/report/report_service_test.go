package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeReportRepository struct {
	calls int
	row   SummaryRow
}

func (f *fakeReportRepository) PayrollSummary(ctx context.Context, organizationID, companyID string, from, to time.Time) (SummaryRow, error) {
	f.calls++
	return f.row, nil
}

func TestReportService_PayrollSummary(t *testing.T) {
	repo := &fakeReportRepository{row: SummaryRow{
		RunCount:       2,
		EmployeeCount:  14,
		TotalGross:     28_000_000,
		TotalDeduction: 6_200_000,
		TotalNet:       21_800_000,
		TotalEmployer:  2_800_000,
	}}
	svc := NewService(repo, nil)

	resp, err := svc.PayrollSummary(context.Background(), uuid.NewString(), PayrollSummaryRequest{
		CompanyID: uuid.NewString(),
		From:      "2026-01-01",
		To:        "2026-01-31",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), resp.RunCount)
	assert.Equal(t, int64(14), resp.EmployeeCount)
	assert.InDelta(t, 21_800_000, resp.TotalNet, 0.01)
	assert.Equal(t, 1, repo.calls)
}

func TestReportService_PayrollSummary_InvalidDates(t *testing.T) {
	svc := NewService(&fakeReportRepository{}, nil)

	_, err := svc.PayrollSummary(context.Background(), uuid.NewString(), PayrollSummaryRequest{
		CompanyID: uuid.NewString(),
		From:      "not-a-date",
		To:        "2026-01-31",
	})
	assert.Error(t, err)

	_, err = svc.PayrollSummary(context.Background(), uuid.NewString(), PayrollSummaryRequest{
		CompanyID: uuid.NewString(),
		From:      "2026-02-01",
		To:        "2026-01-01",
	})
	assert.Error(t, err)
}

func TestReportService_PayrollSummary_ServesFromCache(t *testing.T) {
	orgID := uuid.NewString()
	companyID := uuid.NewString()

	cached := PayrollSummaryResponse{
		CompanyID: companyID,
		From:      "2026-01-01",
		To:        "2026-01-31",
		RunCount:  1,
		TotalNet:  5_000_000,
	}
	payload, _ := json.Marshal(cached)

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(summaryCacheKey(orgID, companyID, "2026-01-01", "2026-01-31")).
		SetVal(string(payload))

	repo := &fakeReportRepository{}
	svc := NewService(repo, rdb)

	resp, err := svc.PayrollSummary(context.Background(), orgID, PayrollSummaryRequest{
		CompanyID: companyID,
		From:      "2026-01-01",
		To:        "2026-01-31",
	})
	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.Zero(t, repo.calls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

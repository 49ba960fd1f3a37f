package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/apperror"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const summaryCacheTTL = 5 * time.Minute

func summaryCacheKey(organizationID, companyID, from, to string) string {
	return fmt.Sprintf("reports:payroll-summary:%s:%s:%s:%s", organizationID, companyID, from, to)
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	PayrollSummary(ctx context.Context, organizationID string, req PayrollSummaryRequest) (PayrollSummaryResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) PayrollSummary(
	ctx context.Context,
	organizationID string,
	req PayrollSummaryRequest,
) (PayrollSummaryResponse, error) {
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return PayrollSummaryResponse{}, apperror.InvalidField("from")
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return PayrollSummaryResponse{}, apperror.InvalidField("to")
	}
	if from.After(to) {
		return PayrollSummaryResponse{}, apperror.InvalidField("from")
	}

	cacheKey := summaryCacheKey(organizationID, req.CompanyID, req.From, req.To)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp PayrollSummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		row, err := s.repo.PayrollSummary(ctx, organizationID, req.CompanyID, from, to)
		if err != nil {
			return nil, err
		}

		resp := PayrollSummaryResponse{
			CompanyID:      req.CompanyID,
			From:           req.From,
			To:             req.To,
			RunCount:       row.RunCount,
			EmployeeCount:  row.EmployeeCount,
			TotalGross:     row.TotalGross,
			TotalDeduction: row.TotalDeduction,
			TotalNet:       row.TotalNet,
			TotalEmployer:  row.TotalEmployer,
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, summaryCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("payroll summary failed", zap.Error(err))
		return PayrollSummaryResponse{}, err
	}

	return v.(PayrollSummaryResponse), nil
}

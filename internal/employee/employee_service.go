package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee/errors"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/events"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/messaging/kafka"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paycalc"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(organizationID string) string {
	return EmployeeOptionsKeyPrefix + organizationID
}

func employeeNumberKey(organizationID string) string {
	return "employees:number:" + organizationID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, organizationID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, organizationID, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	organizationID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("organization_id", organizationID),
		zap.String("company_id", req.CompanyID),
		zap.String("email", req.Email),
	)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidOrganizationID
	}
	companyUUID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}
	if _, err := paycalc.RulesFor(paycalc.Country(req.Country)); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrUnsupportedCountry
	}

	if req.EmployeeNumber == "" {
		number, err := s.nextEmployeeNumber(ctx, organizationID)
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = number
	}

	empl := &Employee{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		CompanyID:      companyUUID,
		FullName:       req.FullName,
		Email:          req.Email,
		EmployeeNumber: req.EmployeeNumber,
		Classification: paycalc.Classification(req.Classification),
		PayType:        paycalc.PayType(req.PayType),
		PayRate:        req.PayRate,
		Country:        req.Country,
		Active:         true,
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.Create(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}

		if s.outbox == nil {
			return nil
		}

		event := events.EmployeeCreatedEvent{
			EventType:      "employee_created",
			RequestID:      rid,
			EmployeeID:     empl.ID.String(),
			OrganizationID: organizationID,
			CompanyID:      req.CompanyID,
			OccurredAt:     time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
	})
	if txErr != nil {
		s.logger.Error("create employee failed", zap.String("request_id", rid), zap.Error(txErr))
		return EmployeeResponse{}, txErr
	}

	s.invalidateOptionsCache(ctx, organizationID)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, organizationID string) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeOptionsKey(organizationID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAllByOrganization(ctx, organizationID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	if _, err := paycalc.RulesFor(paycalc.Country(req.Country)); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrUnsupportedCountry
	}

	var updated Employee
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		empl, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		empl.FullName = req.FullName
		empl.Email = req.Email
		empl.EmployeeNumber = req.EmployeeNumber
		empl.Classification = paycalc.Classification(req.Classification)
		empl.PayType = paycalc.PayType(req.PayType)
		empl.PayRate = req.PayRate
		empl.Country = req.Country
		if req.Active != nil {
			empl.Active = *req.Active
		}

		if err := qtx.Update(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}
		updated = *empl
		return nil
	})
	if txErr != nil {
		s.logger.Error("update employee failed", zap.String("employee_id", id), zap.Error(txErr))
		return EmployeeResponse{}, txErr
	}

	s.invalidateOptionsCache(ctx, organizationID)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, organizationID, id string) error {
	if err := s.repo.Delete(ctx, organizationID, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx, organizationID)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// nextEmployeeNumber hands out org-scoped sequential numbers via a Redis
// counter so two API replicas never mint the same one.
func (s *service) nextEmployeeNumber(ctx context.Context, organizationID string) (string, error) {
	if s.rdb == nil {
		return fmt.Sprintf("EMP-%s", uuid.NewString()[:8]), nil
	}
	next, err := s.rdb.Incr(ctx, employeeNumberKey(organizationID)).Result()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("EMP-%06d", next), nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, organizationID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(organizationID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		OrganizationID: empl.OrganizationID.String(),
		CompanyID:      empl.CompanyID.String(),
		FullName:       empl.FullName,
		Email:          empl.Email,
		EmployeeNumber: empl.EmployeeNumber,
		Classification: string(empl.Classification),
		PayType:        string(empl.PayType),
		PayRate:        empl.PayRate,
		Country:        empl.Country,
		Active:         empl.Active,
	}
	if empl.PayGroupID != nil {
		resp.PayGroupID = empl.PayGroupID.String()
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

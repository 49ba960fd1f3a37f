package payrun

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/audit"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/events"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/messaging/kafka"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paycalc"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paygroup"
	payrunerrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/payrun/errors"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payrun_service.go -destination=mock/payrun_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, actorID string, req CreatePayRunRequest) (PayRunResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]PayRunResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (PayRunResponse, error)
	GetEntries(ctx context.Context, organizationID, id string) ([]PayRunEntryResponse, error)
	Process(ctx context.Context, organizationID, actorID, id string, req ProcessPayRunRequest) (PayRunResponse, error)
	Approve(ctx context.Context, organizationID, actorID, id string) (PayRunResponse, error)
	MarkPaid(ctx context.Context, organizationID, actorID, id string) (PayRunResponse, error)
	Delete(ctx context.Context, organizationID, id string) error

	// GeneratePayslips renders a PDF per entry. Called by the payslip
	// consumer after approval.
	GeneratePayslips(ctx context.Context, organizationID, id string) error

	GetPayslip(ctx context.Context, organizationID, id, entryID string) ([]byte, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	groupRepo    paygroup.Repository
	employeeRepo employee.Repository
	outbox       kafka.OutboxRepository
	auditRepo    audit.Repository
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	groupRepo paygroup.Repository,
	employeeRepo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	auditRepo audit.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payrun.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrun.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		groupRepo:    groupRepo,
		employeeRepo: employeeRepo,
		outbox:       outboxRepo,
		auditRepo:    auditRepo,
		logger:       l,
	}
}

func (s *service) Create(
	ctx context.Context,
	organizationID, actorID string,
	req CreatePayRunRequest,
) (PayRunResponse, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidPayRunID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidPayRunID
	}

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return PayRunResponse{}, err
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return PayRunResponse{}, err
	}
	if periodStart.After(periodEnd) {
		return PayRunResponse{}, payrunerrors.ErrInvalidPeriod
	}

	group, err := s.groupRepo.FindByIDAndOrganization(ctx, organizationID, req.PayGroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayRunResponse{}, payrunerrors.ErrPayRunNotFound
		}
		return PayRunResponse{}, err
	}

	overlap, err := s.repo.HasOverlappingPeriod(ctx, organizationID, req.PayGroupID, periodStart, periodEnd, nil)
	if err != nil {
		return PayRunResponse{}, err
	}
	if overlap {
		return PayRunResponse{}, payrunerrors.ErrOverlappingPeriod
	}

	run := &PayRun{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		CompanyID:      group.CompanyID,
		PayGroupID:     group.ID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Status:         StatusDraft,
		CreatedBy:      actorUUID,
	}
	if err := s.repo.Create(ctx, run); err != nil {
		s.logger.Error("create pay run failed", zap.Error(err))
		return PayRunResponse{}, err
	}

	s.logger.Info("create pay run success",
		zap.String("pay_run_id", run.ID.String()),
		zap.String("pay_group_id", group.ID.String()),
	)
	return mapToResponse(*run), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]PayRunResponse, error) {
	runs, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	out := make([]PayRunResponse, len(runs))
	for i, r := range runs {
		out[i] = mapToResponse(r)
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (PayRunResponse, error) {
	run, err := s.findRun(ctx, organizationID, id)
	if err != nil {
		return PayRunResponse{}, err
	}
	return mapToResponse(*run), nil
}

func (s *service) GetEntries(ctx context.Context, organizationID, id string) ([]PayRunEntryResponse, error) {
	if _, err := s.findRun(ctx, organizationID, id); err != nil {
		return nil, err
	}

	entries, err := s.repo.FindEntriesByRun(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	out := make([]PayRunEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = mapEntryToResponse(e)
	}
	return out, nil
}

func (s *service) Process(
	ctx context.Context,
	organizationID, actorID, id string,
	req ProcessPayRunRequest,
) (PayRunResponse, error) {
	run, err := s.findRun(ctx, organizationID, id)
	if err != nil {
		return PayRunResponse{}, err
	}
	// Re-processing a draft or an already processed run is allowed;
	// approved and paid runs are frozen.
	if run.Status != StatusDraft && run.Status != StatusProcessed {
		return PayRunResponse{}, payrunerrors.ErrInvalidStatusTransition
	}

	group, err := s.groupRepo.FindByIDAndOrganization(ctx, organizationID, run.PayGroupID.String())
	if err != nil {
		return PayRunResponse{}, err
	}

	members, err := s.employeeRepo.FindActiveByPayGroup(ctx, organizationID, run.PayGroupID.String())
	if err != nil {
		return PayRunResponse{}, err
	}
	if len(members) == 0 {
		return PayRunResponse{}, payrunerrors.ErrEmptyPayGroup
	}

	entries := make([]PayRunEntry, 0, len(members))
	var totalGross, totalDeduction, totalNet, totalEmployer float64

	for _, m := range members {
		input := buildCalcInput(m, req.Members[m.ID.String()])

		result, err := paycalc.Calculate(input)
		if err != nil {
			s.logger.Error("member calculation failed",
				zap.String("employee_id", m.ID.String()),
				zap.Error(err),
			)
			return PayRunResponse{}, err
		}

		deductionsJSON, _ := json.Marshal(result.Deductions)
		breakdownJSON, _ := json.Marshal(result.Breakdown)

		entries = append(entries, PayRunEntry{
			ID:                    uuid.New(),
			PayRunID:              run.ID,
			OrganizationID:        run.OrganizationID,
			EmployeeID:            m.ID,
			EmployeeName:          m.FullName,
			Currency:              group.Currency,
			GrossPay:              result.GrossPay,
			TotalDeductions:       result.TotalDeductions,
			NetPay:                result.NetPay,
			EmployerContributions: result.EmployerContributions,
			ExchangeRate:          group.ExchangeRate,
			NetPayLocal:           result.NetPay * group.ExchangeRate,
			Deductions:            deductionsJSON,
			Breakdown:             breakdownJSON,
		})

		totalGross += result.GrossPay
		totalDeduction += result.TotalDeductions
		totalNet += result.NetPay
		totalEmployer += result.EmployerContributions
	}

	now := time.Now().UTC()
	run.Status = StatusProcessed
	run.ProcessedAt = &now
	run.TotalGross = totalGross
	run.TotalDeduction = totalDeduction
	run.TotalNet = totalNet
	run.TotalEmployer = totalEmployer

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.ReplaceEntries(ctx, run.ID.String(), entries); err != nil {
			return err
		}
		return qtx.Update(ctx, run)
	})
	if txErr != nil {
		s.logger.Error("process pay run persist failed", zap.Error(txErr))
		return PayRunResponse{}, txErr
	}

	s.recordAudit(ctx, organizationID, actorID, "payrun.processed", run.ID.String(), map[string]any{
		"entry_count": len(entries),
		"total_gross": totalGross,
		"total_net":   totalNet,
	})

	s.logger.Info("process pay run success",
		zap.String("pay_run_id", run.ID.String()),
		zap.Int("entries", len(entries)),
	)

	resp := mapToResponse(*run)
	resp.EntryCount = len(entries)
	return resp, nil
}

func (s *service) Approve(ctx context.Context, organizationID, actorID, id string) (PayRunResponse, error) {
	run, err := s.findRun(ctx, organizationID, id)
	if err != nil {
		return PayRunResponse{}, err
	}
	if run.Status != StatusProcessed {
		return PayRunResponse{}, payrunerrors.ErrInvalidStatusTransition
	}

	approverUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayRunResponse{}, payrunerrors.ErrInvalidPayRunID
	}

	rid := contextutil.GetRequestID(ctx)
	now := time.Now().UTC()
	run.Status = StatusApproved
	run.ApprovedBy = &approverUUID
	run.ApprovedAt = &now

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, run); err != nil {
			return err
		}

		if s.outbox == nil {
			return nil
		}

		event := events.PayRunPayslipsRequestedEvent{
			EventType:      "payrun_payslips_requested",
			RequestID:      rid,
			PayRunID:       run.ID.String(),
			OrganizationID: organizationID,
			RequestedBy:    actorID,
			OccurredAt:     now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payrun",
			AggregateID:   run.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayRunPayslipsRequestedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
	})
	if txErr != nil {
		s.logger.Error("approve pay run failed", zap.Error(txErr))
		return PayRunResponse{}, txErr
	}

	s.recordAudit(ctx, organizationID, actorID, "payrun.approved", run.ID.String(), nil)
	s.logger.Info("approve pay run success", zap.String("pay_run_id", run.ID.String()))

	return mapToResponse(*run), nil
}

func (s *service) MarkPaid(ctx context.Context, organizationID, actorID, id string) (PayRunResponse, error) {
	run, err := s.findRun(ctx, organizationID, id)
	if err != nil {
		return PayRunResponse{}, err
	}
	if run.Status != StatusApproved {
		return PayRunResponse{}, payrunerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	run.Status = StatusPaid
	run.PaidAt = &now

	if err := s.repo.Update(ctx, run); err != nil {
		s.logger.Error("mark pay run paid failed", zap.Error(err))
		return PayRunResponse{}, err
	}

	s.recordAudit(ctx, organizationID, actorID, "payrun.paid", run.ID.String(), nil)
	s.logger.Info("mark pay run paid success", zap.String("pay_run_id", run.ID.String()))

	return mapToResponse(*run), nil
}

func (s *service) Delete(ctx context.Context, organizationID, id string) error {
	run, err := s.findRun(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if run.Status != StatusDraft {
		return payrunerrors.ErrNotDraft
	}

	if err := s.repo.Delete(ctx, organizationID, id); err != nil {
		s.logger.Error("delete pay run failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete pay run success", zap.String("pay_run_id", id))
	return nil
}

func (s *service) GeneratePayslips(ctx context.Context, organizationID, id string) error {
	run, err := s.findRun(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if run.Status != StatusApproved && run.Status != StatusPaid {
		return payrunerrors.ErrInvalidStatusTransition
	}

	entries, err := s.repo.FindEntriesByRun(ctx, organizationID, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for i := range entries {
		entry := &entries[i]
		pdf, err := buildPayslipPDF(run, entry)
		if err != nil {
			s.logger.Error("render payslip failed",
				zap.String("entry_id", entry.ID.String()),
				zap.Error(err),
			)
			return err
		}

		entry.PayslipPDF = pdf
		entry.PayslipGeneratedAt = &now
		if err := s.repo.UpdateEntry(ctx, entry); err != nil {
			return err
		}
	}

	run.PayslipsGeneratedAt = &now
	if err := s.repo.Update(ctx, run); err != nil {
		return err
	}

	s.logger.Info("payslips generated",
		zap.String("pay_run_id", run.ID.String()),
		zap.Int("count", len(entries)),
	)
	return nil
}

func (s *service) GetPayslip(ctx context.Context, organizationID, id, entryID string) ([]byte, error) {
	entry, err := s.repo.FindEntryByID(ctx, organizationID, id, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrunerrors.ErrEntryNotFound
		}
		return nil, err
	}
	if len(entry.PayslipPDF) == 0 {
		return nil, payrunerrors.ErrEntryNotFound
	}
	return entry.PayslipPDF, nil
}

func (s *service) findRun(ctx context.Context, organizationID, id string) (*PayRun, error) {
	run, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrunerrors.ErrPayRunNotFound
		}
		return nil, err
	}
	return run, nil
}

func (s *service) recordAudit(ctx context.Context, organizationID, actorID, action, entityID string, payload any) {
	if s.auditRepo == nil {
		return
	}
	entry := audit.NewEntry(organizationID, actorID, action, "payrun", entityID, payload)
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("audit record failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func buildCalcInput(m employee.Employee, member MemberInput) paycalc.Input {
	items := make([]paycalc.LineItem, 0, len(member.LineItems))
	for _, li := range member.LineItems {
		items = append(items, paycalc.LineItem{
			Type:   paycalc.LineItemType(li.Type),
			Name:   li.Name,
			Amount: li.Amount,
		})
	}

	return paycalc.Input{
		Classification:  m.Classification,
		PayType:         m.PayType,
		PayRate:         m.PayRate,
		HoursWorked:     member.HoursWorked,
		PiecesCompleted: member.PiecesCompleted,
		Country:         paycalc.Country(m.Country),
		LineItems:       items,
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrunerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(run PayRun) PayRunResponse {
	resp := PayRunResponse{
		ID:             run.ID.String(),
		OrganizationID: run.OrganizationID.String(),
		CompanyID:      run.CompanyID.String(),
		PayGroupID:     run.PayGroupID.String(),
		PeriodStart:    run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      run.PeriodEnd.Format("2006-01-02"),
		Status:         run.Status,
		CreatedBy:      run.CreatedBy.String(),
		TotalGross:     run.TotalGross,
		TotalDeduction: run.TotalDeduction,
		TotalNet:       run.TotalNet,
		TotalEmployer:  run.TotalEmployer,
	}

	if run.ApprovedBy != nil {
		v := run.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if run.ApprovedAt != nil {
		v := run.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if run.PaidAt != nil {
		v := run.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}

	return resp
}

func mapEntryToResponse(entry PayRunEntry) PayRunEntryResponse {
	resp := PayRunEntryResponse{
		ID:                    entry.ID.String(),
		PayRunID:              entry.PayRunID.String(),
		EmployeeID:            entry.EmployeeID.String(),
		EmployeeName:          entry.EmployeeName,
		Currency:              entry.Currency,
		GrossPay:              entry.GrossPay,
		TotalDeductions:       entry.TotalDeductions,
		NetPay:                entry.NetPay,
		EmployerContributions: entry.EmployerContributions,
		ExchangeRate:          entry.ExchangeRate,
		NetPayLocal:           entry.NetPayLocal,
		HasPayslip:            len(entry.PayslipPDF) > 0,
	}

	if len(entry.Deductions) > 0 {
		var deductions map[string]float64
		if json.Unmarshal(entry.Deductions, &deductions) == nil {
			resp.Deductions = deductions
		}
	}

	return resp
}

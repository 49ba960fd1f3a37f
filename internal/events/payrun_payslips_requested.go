package events

import "time"

const PayRunPayslipsRequestedTopic = "payroll.payrun.payslips.requested.v1"

type PayRunPayslipsRequestedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	PayRunID       string    `json:"pay_run_id"`
	OrganizationID string    `json:"organization_id"`
	RequestedBy    string    `json:"requested_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}

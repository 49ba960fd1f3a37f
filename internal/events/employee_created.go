package events

import "time"

const EmployeeCreatedTopic = "payroll.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	OrganizationID string    `json:"organization_id"`
	CompanyID      string    `json:"company_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

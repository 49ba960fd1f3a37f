package access

// Permission describes one entry of the static permission catalog consumed
// by the grant editor. Changing the catalog is a code change; it is never
// persisted or versioned.
type Permission struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

const (
	PermEmployeeRead   = "employee.read"
	PermEmployeeCreate = "employee.create"
	PermEmployeeUpdate = "employee.update"
	PermEmployeeDelete = "employee.delete"

	PermPayGroupRead   = "paygroup.read"
	PermPayGroupManage = "paygroup.manage"

	PermPayRunRead    = "payrun.read"
	PermPayRunCreate  = "payrun.create"
	PermPayRunProcess = "payrun.process"
	PermPayRunApprove = "payrun.approve"
	PermPayRunPay     = "payrun.pay"
	PermPayRunDelete  = "payrun.delete"

	PermCalculationRun = "calculation.run"

	PermReportRead = "report.read"

	PermGrantManage = "grant.manage"

	PermOrganizationManage = "organization.manage"
)

var catalog = []Permission{
	{Key: PermEmployeeRead, Label: "View employees", Description: "List and view employee records", Category: "Employees"},
	{Key: PermEmployeeCreate, Label: "Create employees", Description: "Add employee records", Category: "Employees"},
	{Key: PermEmployeeUpdate, Label: "Update employees", Description: "Edit employee records", Category: "Employees"},
	{Key: PermEmployeeDelete, Label: "Delete employees", Description: "Remove employee records", Category: "Employees"},
	{Key: PermPayGroupRead, Label: "View pay groups", Description: "List and view pay groups", Category: "Pay groups"},
	{Key: PermPayGroupManage, Label: "Manage pay groups", Description: "Create, edit and delete pay groups", Category: "Pay groups"},
	{Key: PermPayRunRead, Label: "View pay runs", Description: "List pay runs and payslip breakdowns", Category: "Pay runs"},
	{Key: PermPayRunCreate, Label: "Create pay runs", Description: "Open a pay run for a pay group and period", Category: "Pay runs"},
	{Key: PermPayRunProcess, Label: "Process pay runs", Description: "Run the statutory calculation for a pay run", Category: "Pay runs"},
	{Key: PermPayRunApprove, Label: "Approve pay runs", Description: "Approve a processed pay run", Category: "Pay runs"},
	{Key: PermPayRunPay, Label: "Mark pay runs paid", Description: "Record payment of an approved pay run", Category: "Pay runs"},
	{Key: PermPayRunDelete, Label: "Delete pay runs", Description: "Delete draft pay runs", Category: "Pay runs"},
	{Key: PermCalculationRun, Label: "Run calculations", Description: "Run ad-hoc pay calculations", Category: "Calculations"},
	{Key: PermReportRead, Label: "View reports", Description: "View payroll summary reports", Category: "Reports"},
	{Key: PermGrantManage, Label: "Manage access grants", Description: "Create and revoke allow/deny grants", Category: "Access control"},
	{Key: PermOrganizationManage, Label: "Manage organization", Description: "Edit organization and company settings", Category: "Organization"},
}

// Catalog returns the permission catalog in display order.
func Catalog() []Permission {
	out := make([]Permission, len(catalog))
	copy(out, catalog)
	return out
}

// KnownPermission reports whether key exists in the catalog.
func KnownPermission(key string) bool {
	for _, p := range catalog {
		if p.Key == key {
			return true
		}
	}
	return false
}

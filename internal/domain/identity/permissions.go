package identity

import "sort"

// Permission actions
const (
	ActionRead        = "read"
	ActionCreate      = "create"
	ActionUpdate      = "update"
	ActionDelete      = "delete"
	ActionReadDetails = "read_details"
)

// Permission resources
const (
	ResourceClient           = "client"
	ResourceContract         = "contract"
	ResourceContractItem     = "contract_item"
	ResourceSalesInvoice     = "sales_invoice"
	ResourceBudget           = "budget"
	ResourceProject          = "project"
	ResourceBudgetAssignment = "budget_assignment"
	ResourceEmployee         = "employee"
	ResourceEmployeeRate     = "employee_rate"
	ResourceEmployeeDocument = "employee_document"
	ResourceCurrency         = "currency"
	ResourceDocumentType     = "document_type"
	ResourceDimension        = "dimension"
	ResourceRole             = "role"
	ResourceAudit            = "audit"
)

// PermissionEmployeeDetails lets a user see rates and documents of other employees
const PermissionEmployeeDetails = ResourceEmployee + ":" + ActionReadDetails

var crudActions = []string{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

var catalogue = buildCatalogue()

func buildCatalogue() map[string]bool {
	resources := []string{
		ResourceClient, ResourceContract, ResourceContractItem, ResourceSalesInvoice,
		ResourceBudget, ResourceProject, ResourceBudgetAssignment,
		ResourceEmployee, ResourceEmployeeRate, ResourceEmployeeDocument,
		ResourceCurrency, ResourceDocumentType, ResourceDimension, ResourceRole,
	}
	out := make(map[string]bool, len(resources)*len(crudActions)+2)
	for _, r := range resources {
		for _, a := range crudActions {
			out[r+":"+a] = true
		}
	}
	out[PermissionEmployeeDetails] = true
	out[ResourceAudit+":"+ActionRead] = true
	return out
}

// Code builds a permission code
func Code(resource, action string) string {
	return resource + ":" + action
}

// IsKnownPermission reports whether code is part of the permission catalogue
func IsKnownPermission(code string) bool {
	return catalogue[code]
}

// AllPermissionCodes returns the sorted permission catalogue
func AllPermissionCodes() []string {
	codes := make([]string, 0, len(catalogue))
	for c := range catalogue {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

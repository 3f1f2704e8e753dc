package router

import (
	"github.com/gin-gonic/gin"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/interfaces/http/handler"
	"github.com/workify/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler mounted under the API prefix
type Handlers struct {
	Auth         *handler.AuthHandler
	Role         *handler.RoleHandler
	User         *handler.UserHandler
	Client       *handler.ClientHandler
	Contract     *handler.ContractHandler
	ContractItem *handler.ContractItemHandler
	Invoice      *handler.InvoiceHandler
	Budget       *handler.BudgetHandler
	Project      *handler.ProjectHandler
	Assignment   *handler.AssignmentHandler
	Employee     *handler.EmployeeHandler
	Rate         *handler.RateHandler
	Document     *handler.DocumentHandler
	Dict         *handler.DictHandler
	Audit        *handler.AuditHandler
	System       *handler.SystemHandler
}

func perm(resource, action string) gin.HandlerFunc {
	return middleware.RequirePermission(identity.Code(resource, action))
}

// RegisterAPI registers the domain groups of the API. authLimiter guards the
// unauthenticated auth endpoints and may be nil.
func RegisterAPI(r *Router, h Handlers, authLimiter gin.HandlerFunc) {
	r.Register(authRoutes(h, authLimiter))
	r.Register(identityRoutes(h))
	r.Register(clientRoutes(h))
	r.Register(contractRoutes(h))
	r.Register(invoiceRoutes(h))
	r.Register(budgetRoutes(h))
	r.Register(projectRoutes(h))
	r.Register(employeeRoutes(h))
	r.Register(dictRoutes(h))
	r.Register(auditRoutes(h))
	r.Register(systemRoutes(h))
}

func authRoutes(h Handlers, limiter gin.HandlerFunc) *DomainGroup {
	public := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		if limiter == nil {
			return []gin.HandlerFunc{fn}
		}
		return []gin.HandlerFunc{limiter, fn}
	}

	g := NewDomainGroup("auth", "/auth")
	g.POST("/login", public(h.Auth.Login)...)
	g.POST("/refresh", public(h.Auth.RefreshToken)...)
	g.GET("/sso/authorize", public(h.Auth.SSOAuthorize)...)
	g.GET("/sso/callback", public(h.Auth.SSOCallback)...)
	g.POST("/logout", h.Auth.Logout)
	g.GET("/me", h.Auth.GetCurrentUser)
	return g
}

// identityRoutes covers roles and the role assignments of users
func identityRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("identity", "")

	roles := g.Group("roles", "/roles")
	roles.GET("", perm(identity.ResourceRole, identity.ActionRead), h.Role.List)
	roles.GET("/permissions", perm(identity.ResourceRole, identity.ActionRead), h.Role.GetPermissions)
	roles.GET("/:id", perm(identity.ResourceRole, identity.ActionRead), h.Role.GetByID)
	roles.POST("", perm(identity.ResourceRole, identity.ActionCreate), h.Role.Create)
	roles.PUT("/:id", perm(identity.ResourceRole, identity.ActionUpdate), h.Role.Update)
	roles.PUT("/:id/permissions", perm(identity.ResourceRole, identity.ActionUpdate), h.Role.SetPermissions)
	roles.DELETE("/:id", perm(identity.ResourceRole, identity.ActionDelete), h.Role.Delete)

	users := g.Group("users", "/users")
	users.GET("/:id", perm(identity.ResourceRole, identity.ActionRead), h.User.GetByID)
	users.PUT("/:id/roles", perm(identity.ResourceRole, identity.ActionUpdate), h.User.AssignRoles)
	return g
}

func clientRoutes(h Handlers) *DomainGroup {
	read := perm(identity.ResourceClient, identity.ActionRead)
	update := perm(identity.ResourceClient, identity.ActionUpdate)
	del := perm(identity.ResourceClient, identity.ActionDelete)

	g := NewDomainGroup("clients", "/clients")
	g.GET("", read, h.Client.List)
	g.GET("/autocomplete", read, h.Client.Autocomplete)
	g.GET("/:slug", read, h.Client.Get)
	g.POST("", perm(identity.ResourceClient, identity.ActionCreate), h.Client.Create)
	g.PUT("/:slug", update, h.Client.Update)
	g.PUT("/:slug/logo", update, h.Client.UploadLogo)
	g.POST("/:slug/activate", del, h.Client.Activate)
	g.POST("/:slug/deactivate", del, h.Client.Deactivate)
	g.GET("/:slug/contracts", perm(identity.ResourceContract, identity.ActionRead), h.Contract.ListByClient)
	g.POST("/:slug/contracts", perm(identity.ResourceContract, identity.ActionCreate), h.Contract.Create)
	return g
}

// contractRoutes covers contracts and their items
func contractRoutes(h Handlers) *DomainGroup {
	read := perm(identity.ResourceContract, identity.ActionRead)
	del := perm(identity.ResourceContract, identity.ActionDelete)
	itemRead := perm(identity.ResourceContractItem, identity.ActionRead)
	audit := perm(identity.ResourceAudit, identity.ActionRead)

	g := NewDomainGroup("contracts", "")

	contracts := g.Group("contracts", "/contracts")
	contracts.GET("", read, h.Contract.List)
	contracts.GET("/autocomplete", read, h.Contract.Autocomplete)
	contracts.GET("/:slug", read, h.Contract.Get)
	contracts.PUT("/:slug", perm(identity.ResourceContract, identity.ActionUpdate), h.Contract.Update)
	contracts.POST("/:slug/activate", del, h.Contract.Activate)
	contracts.POST("/:slug/deactivate", del, h.Contract.Deactivate)
	contracts.GET("/:slug/totals", read, h.Contract.Totals)
	contracts.GET("/:slug/audit", audit, h.Contract.History)
	contracts.GET("/:slug/items", itemRead, h.ContractItem.ListByContract)
	contracts.POST("/:slug/items", perm(identity.ResourceContractItem, identity.ActionCreate), h.ContractItem.Create)
	contracts.GET("/:slug/invoices", perm(identity.ResourceSalesInvoice, identity.ActionRead), h.Invoice.ListByContract)
	contracts.POST("/:slug/invoices", perm(identity.ResourceSalesInvoice, identity.ActionCreate), h.Invoice.Create)

	items := g.Group("contract-items", "/contract-items")
	items.GET("/:id", itemRead, h.ContractItem.Get)
	items.PUT("/:id", perm(identity.ResourceContractItem, identity.ActionUpdate), h.ContractItem.Update)
	items.DELETE("/:id", perm(identity.ResourceContractItem, identity.ActionDelete), h.ContractItem.Delete)
	items.GET("/:id/audit", audit, h.ContractItem.History)
	items.GET("/:id/invoices", perm(identity.ResourceSalesInvoice, identity.ActionRead), h.Invoice.ListByContractItem)
	return g
}

func invoiceRoutes(h Handlers) *DomainGroup {
	read := perm(identity.ResourceSalesInvoice, identity.ActionRead)
	update := perm(identity.ResourceSalesInvoice, identity.ActionUpdate)

	g := NewDomainGroup("invoices", "/invoices")
	g.GET("/:id", read, h.Invoice.Get)
	g.PUT("/:id", update, h.Invoice.Update)
	g.POST("/:id/settle", update, h.Invoice.Settle)
	g.DELETE("/:id", perm(identity.ResourceSalesInvoice, identity.ActionDelete), h.Invoice.Delete)
	g.PUT("/:id/file", update, h.Invoice.UploadFile)
	g.GET("/:id/file", read, h.Invoice.FileURL)
	return g
}

func budgetRoutes(h Handlers) *DomainGroup {
	read := perm(identity.ResourceBudget, identity.ActionRead)
	del := perm(identity.ResourceBudget, identity.ActionDelete)

	g := NewDomainGroup("budgets", "/budgets")
	g.GET("", read, h.Budget.List)
	g.GET("/autocomplete", read, h.Budget.Autocomplete)
	g.GET("/:id", read, h.Budget.Get)
	g.POST("", perm(identity.ResourceBudget, identity.ActionCreate), h.Budget.Create)
	g.PUT("/:id", perm(identity.ResourceBudget, identity.ActionUpdate), h.Budget.Update)
	g.POST("/:id/activate", del, h.Budget.Activate)
	g.POST("/:id/deactivate", del, h.Budget.Deactivate)
	return g
}

// projectRoutes covers projects and their budget assignments
func projectRoutes(h Handlers) *DomainGroup {
	read := perm(identity.ResourceProject, identity.ActionRead)
	update := perm(identity.ResourceProject, identity.ActionUpdate)
	del := perm(identity.ResourceProject, identity.ActionDelete)

	g := NewDomainGroup("projects", "/projects")
	g.GET("", read, h.Project.List)
	g.GET("/autocomplete", read, h.Project.Autocomplete)
	g.GET("/:slug", read, h.Project.Get)
	g.POST("", perm(identity.ResourceProject, identity.ActionCreate), h.Project.Create)
	g.PUT("/:slug", update, h.Project.Update)
	g.PUT("/:slug/managers", update, h.Project.SetManagers)
	g.PUT("/:slug/team-members", update, h.Project.SetTeamMembers)
	g.POST("/:slug/activate", del, h.Project.Activate)
	g.POST("/:slug/deactivate", del, h.Project.Deactivate)

	budgets := g.Group("assignments", "/:slug/budgets")
	budgets.GET("", perm(identity.ResourceBudgetAssignment, identity.ActionRead), h.Assignment.List)
	budgets.POST("", perm(identity.ResourceBudgetAssignment, identity.ActionCreate), h.Assignment.Create)
	budgets.PUT("/:id", perm(identity.ResourceBudgetAssignment, identity.ActionUpdate), h.Assignment.Update)
	budgets.DELETE("/:id", perm(identity.ResourceBudgetAssignment, identity.ActionDelete), h.Assignment.Delete)
	return g
}

// employeeRoutes covers employees, rates and documents. Reads of rates and
// documents only need a session: the services show them to the employee
// themself or to holders of employee:read_details.
func employeeRoutes(h Handlers) *DomainGroup {
	read := perm(identity.ResourceEmployee, identity.ActionRead)
	del := perm(identity.ResourceEmployee, identity.ActionDelete)

	g := NewDomainGroup("employees", "/employees")
	g.GET("", read, h.Employee.List)
	g.GET("/autocomplete", read, h.Employee.Autocomplete)
	g.GET("/me", h.Employee.Me)
	g.GET("/:slug", read, h.Employee.Get)
	g.POST("", perm(identity.ResourceEmployee, identity.ActionCreate), h.Employee.Create)
	g.PUT("/:slug", perm(identity.ResourceEmployee, identity.ActionUpdate), h.Employee.Update)
	g.POST("/:slug/activate", del, h.Employee.Activate)
	g.POST("/:slug/deactivate", del, h.Employee.Deactivate)

	rates := g.Group("rates", "/:slug/rates")
	rates.GET("", h.Rate.List)
	rates.GET("/at", h.Rate.At)
	rates.GET("/:id", h.Rate.Get)
	rates.POST("", perm(identity.ResourceEmployeeRate, identity.ActionCreate), h.Rate.Create)
	rates.PUT("/:id", perm(identity.ResourceEmployeeRate, identity.ActionUpdate), h.Rate.Update)
	rates.DELETE("/:id", perm(identity.ResourceEmployeeRate, identity.ActionDelete), h.Rate.Delete)

	docs := g.Group("documents", "/:slug/documents")
	docs.GET("", h.Document.List)
	docs.GET("/:id", h.Document.Get)
	docs.GET("/:id/file", h.Document.Download)
	docs.POST("", perm(identity.ResourceEmployeeDocument, identity.ActionCreate), h.Document.Create)
	docs.PUT("/:id", perm(identity.ResourceEmployeeDocument, identity.ActionUpdate), h.Document.Update)
	docs.DELETE("/:id", perm(identity.ResourceEmployeeDocument, identity.ActionDelete), h.Document.Delete)
	return g
}

func dictRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("dicts", "/dicts")

	cur := g.Group("currencies", "/currencies")
	cur.GET("", perm(identity.ResourceCurrency, identity.ActionRead), h.Dict.ListCurrencies)
	cur.GET("/default", perm(identity.ResourceCurrency, identity.ActionRead), h.Dict.DefaultCurrency)
	cur.GET("/:id", perm(identity.ResourceCurrency, identity.ActionRead), h.Dict.GetCurrency)
	cur.POST("", perm(identity.ResourceCurrency, identity.ActionCreate), h.Dict.CreateCurrency)
	cur.PUT("/:id", perm(identity.ResourceCurrency, identity.ActionUpdate), h.Dict.UpdateCurrency)
	cur.DELETE("/:id", perm(identity.ResourceCurrency, identity.ActionDelete), h.Dict.DeleteCurrency)

	types := g.Group("document-types", "/document-types")
	types.GET("", perm(identity.ResourceDocumentType, identity.ActionRead), h.Dict.ListDocumentTypes)
	types.GET("/:id", perm(identity.ResourceDocumentType, identity.ActionRead), h.Dict.GetDocumentType)
	types.POST("", perm(identity.ResourceDocumentType, identity.ActionCreate), h.Dict.CreateDocumentType)
	types.PUT("/:id", perm(identity.ResourceDocumentType, identity.ActionUpdate), h.Dict.UpdateDocumentType)
	types.DELETE("/:id", perm(identity.ResourceDocumentType, identity.ActionDelete), h.Dict.DeleteDocumentType)

	dims := g.Group("dimensions", "/dimensions")
	dims.GET("", perm(identity.ResourceDimension, identity.ActionRead), h.Dict.ListDimensions)
	dims.GET("/tree", perm(identity.ResourceDimension, identity.ActionRead), h.Dict.DimensionTree)
	dims.GET("/:id", perm(identity.ResourceDimension, identity.ActionRead), h.Dict.GetDimension)
	dims.POST("", perm(identity.ResourceDimension, identity.ActionCreate), h.Dict.CreateDimension)
	dims.PUT("/:id", perm(identity.ResourceDimension, identity.ActionUpdate), h.Dict.UpdateDimension)
	dims.DELETE("/:id", perm(identity.ResourceDimension, identity.ActionDelete), h.Dict.DeleteDimension)
	return g
}

func auditRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("audit", "/audit")
	g.GET("", perm(identity.ResourceAudit, identity.ActionRead), h.Audit.History)
	return g
}

func systemRoutes(h Handlers) *DomainGroup {
	g := NewDomainGroup("system", "/system")
	g.GET("/info", h.System.GetSystemInfo)
	g.GET("/ping", h.System.Ping)
	return g
}

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	appaudit "github.com/workify/backend/internal/application/audit"
	appbudget "github.com/workify/backend/internal/application/budget"
	appclient "github.com/workify/backend/internal/application/client"
	appdict "github.com/workify/backend/internal/application/dict"
	appemployee "github.com/workify/backend/internal/application/employee"
	appidentity "github.com/workify/backend/internal/application/identity"
	appproject "github.com/workify/backend/internal/application/project"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/auth"
	"github.com/workify/backend/internal/infrastructure/config"
	"github.com/workify/backend/internal/infrastructure/event"
	"github.com/workify/backend/internal/infrastructure/persistence"
	"github.com/workify/backend/internal/infrastructure/persistence/models"
	"github.com/workify/backend/internal/infrastructure/storage"
	"github.com/workify/backend/internal/interfaces/http/dto"
	"github.com/workify/backend/internal/interfaces/http/handler"
	"github.com/workify/backend/internal/interfaces/http/middleware"
	"github.com/workify/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var validatorOnce sync.Once

const adminPassword = "Sup3r-secret-pass"

// testApp is the HTTP API over real services and an in-memory database
type testApp struct {
	t       *testing.T
	db      *gorm.DB
	engine  *gin.Engine
	jwt     *auth.JWTService
	storage *storage.MemoryObjectStorage

	users     *appidentity.UserService
	employees *appemployee.EmployeeService
	dicts     *appdict.Service

	adminID    uuid.UUID
	adminToken string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validatorOnce.Do(middleware.SetupValidator)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	log := zap.NewNop()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-at-least-32-chars",
		RefreshSecret:          "handler-test-refresh-secret-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "workify-test",
		MaxRefreshCount:        5,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	objects := storage.NewMemoryObjectStorage()
	bus := event.NewInMemoryEventBus(log)
	slugs := shared.NewSlugGenerator()

	userRepo := persistence.NewGormUserRepository(db)
	roleRepo := persistence.NewGormRoleRepository(db)
	clientRepo := persistence.NewGormClientRepository(db)
	contractRepo := persistence.NewGormContractRepository(db)
	itemRepo := persistence.NewGormContractItemRepository(db)
	invoiceRepo := persistence.NewGormSalesInvoiceRepository(db)
	budgetRepo := persistence.NewGormBudgetRepository(db)
	projectRepo := persistence.NewGormProjectRepository(db)
	assignmentRepo := persistence.NewGormBudgetAssignmentRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)
	auditRepo := persistence.NewGormAuditRepository(db)

	bus.Subscribe(appaudit.NewRecordHandler(auditRepo, log))

	authService := appidentity.NewAuthService(userRepo, roleRepo, jwtService, blacklist, log)
	bus.Subscribe(appidentity.NewUserDeactivatedHandler(authService, log))
	roleService := appidentity.NewRoleService(roleRepo, userRepo, bus, log)
	userService := appidentity.NewUserService(userRepo, roleRepo, bus, log)
	dictService := appdict.NewService(
		persistence.NewGormCurrencyRepository(db),
		persistence.NewGormDocumentTypeRepository(db),
		persistence.NewGormDimensionRepository(db),
		log,
	)
	auditService := appaudit.NewService(auditRepo, contractRepo, itemRepo, invoiceRepo, log)
	employeeService := appemployee.NewEmployeeService(employeeRepo, userRepo,
		persistence.NewGormTransactionScope(db), slugs, objects, bus, log)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	r := router.NewRouter(engine)
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths:      middleware.DefaultJWTConfig(jwtService).SkipPaths,
	}))
	router.RegisterAPI(r, router.Handlers{
		Auth: handler.NewAuthHandler(authService, nil),
		Role: handler.NewRoleHandler(roleService),
		User: handler.NewUserHandler(userService, roleService),
		Client: handler.NewClientHandler(
			appclient.NewClientService(clientRepo, slugs, objects, bus, log)),
		Contract: handler.NewContractHandler(
			appclient.NewContractService(clientRepo, contractRepo, itemRepo, invoiceRepo, employeeRepo, dictService, slugs, bus, log),
			auditService),
		ContractItem: handler.NewContractItemHandler(
			appclient.NewContractItemService(contractRepo, itemRepo, invoiceRepo, dictService, bus, log),
			auditService),
		Invoice: handler.NewInvoiceHandler(
			appclient.NewInvoiceService(contractRepo, itemRepo, invoiceRepo, objects, bus, log)),
		Budget: handler.NewBudgetHandler(appbudget.NewService(budgetRepo, dictService, bus, log)),
		Project: handler.NewProjectHandler(
			appproject.NewProjectService(projectRepo, employeeRepo, clientRepo, slugs, bus, log)),
		Assignment: handler.NewAssignmentHandler(
			appproject.NewAssignmentService(projectRepo, assignmentRepo, budgetRepo, bus, log)),
		Employee: handler.NewEmployeeHandler(employeeService),
		Rate: handler.NewRateHandler(
			appemployee.NewRateService(employeeRepo, persistence.NewGormRateRepository(db), dictService, bus, log)),
		Document: handler.NewDocumentHandler(
			appemployee.NewDocumentService(employeeRepo, persistence.NewGormDocumentRepository(db), dictService, objects, bus, log)),
		Dict:   handler.NewDictHandler(dictService),
		Audit:  handler.NewAuditHandler(auditService),
		System: handler.NewSystemHandler("Workify"),
	}, nil)
	r.Setup()

	app := &testApp{
		t:         t,
		db:        db,
		engine:    engine,
		jwt:       jwtService,
		storage:   objects,
		users:     userService,
		employees: employeeService,
		dicts:     dictService,
	}

	admin, err := userService.CreateLocal(context.Background(), appidentity.CreateLocalUserInput{
		Username:  "admin@example.com",
		Email:     "admin@example.com",
		Password:  adminPassword,
		FirstName: "Ada",
		LastName:  "Admin",
		Superuser: true,
	})
	require.NoError(t, err)
	app.adminID = admin.ID
	app.adminToken = app.tokenFor(admin.ID, true)
	return app
}

// tokenFor issues an access token for userID carrying perms
func (a *testApp) tokenFor(userID uuid.UUID, superuser bool, perms ...string) string {
	a.t.Helper()
	pair, err := a.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      userID,
		Username:    userID.String() + "@example.com",
		Superuser:   superuser,
		Permissions: perms,
	})
	require.NoError(a.t, err)
	return pair.AccessToken
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.serve(req, token)
}

func (a *testApp) upload(method, path, token string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	a.t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(a.t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(a.t, err)
		_, err = part.Write(content)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.serve(req, token)
}

func (a *testApp) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// envelope mirrors dto.Response with a typed payload
type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var resp envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// expectStatus fails with the response body when the status differs
func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, w, status)
	resp := decode[json.RawMessage](t, w)
	require.NotNil(t, resp.Error)
	require.Equal(t, code, resp.Error.Code, resp.Error.Message)
}

// seedCurrency creates the default currency through the API
func (a *testApp) seedCurrency(code string, isDefault bool) appdict.EntryResponse {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/dicts/currencies", a.adminToken,
		appdict.EntryRequest{Code: code, Name: code, IsDefault: isDefault})
	expectStatus(a.t, w, http.StatusCreated)
	return decode[appdict.EntryResponse](a.t, w).Data
}

func (a *testApp) seedClient(name string) appclient.ClientResponse {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/clients", a.adminToken, appclient.ClientRequest{Name: name})
	expectStatus(a.t, w, http.StatusCreated)
	return decode[appclient.ClientResponse](a.t, w).Data
}

func (a *testApp) seedEmployee(first, last, email string) appemployee.EmployeeResponse {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/employees", a.adminToken, appemployee.CreateEmployeeRequest{
		FirstName: first,
		LastName:  last,
		Email:     email,
	})
	expectStatus(a.t, w, http.StatusCreated)
	return decode[appemployee.EmployeeResponse](a.t, w).Data
}

var (
	pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	pngContent = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
)

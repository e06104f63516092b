package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/company-directory-api/internal/auth"
	"github.com/company-directory-api/internal/config"
	"github.com/company-directory-api/internal/converter"
	"github.com/company-directory-api/internal/database"
	"github.com/company-directory-api/internal/database/databasetest"
	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/handler"
	"github.com/company-directory-api/internal/middleware"
	"github.com/company-directory-api/internal/repository"
	"github.com/company-directory-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

var jwtConfig = config.JWTConfig{
	Issuer:    "directory",
	Audience:  "directory-clients",
	SecretKey: "handler-test-secret",
	ValidFor:  time.Hour,
}

type services struct {
	companies   service.CompanyService
	departments service.DepartmentService
	employees   service.EmployeeService
	users       service.UserService
	auth        service.AuthService
}

type testServer struct {
	server *httptest.Server
	token  string
}

func newServer(t *testing.T, svc services, ping func(context.Context) error) *httptest.Server {
	t.Helper()
	logger := databasetest.Logger()
	conv := converter.New(nil)

	reg := prometheus.NewRegistry()
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	router := handler.NewRouter(handler.Handlers{
		Auth:        handler.NewAuthHandler(svc.auth, conv, logger),
		Companies:   handler.NewCompanyHandler(svc.companies, conv, logger),
		Departments: handler.NewDepartmentHandler(svc.departments, conv, logger),
		Employees:   handler.NewEmployeeHandler(svc.employees, conv, logger),
		Users:       handler.NewUserHandler(svc.users, conv, logger),
		Health:      handler.NewHealthHandler(ping, logger),
	},
		middleware.Authenticate(auth.NewValidator(logger), auth.ParamsFromConfig(jwtConfig)),
		metrics, reg, logger,
	)

	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	db := databasetest.New(t)
	if err := database.Seed(context.Background(), db, databasetest.Logger()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	newFactory := func() *repository.Factory { return repository.NewFactory(db) }
	svc := services{
		companies:   service.NewCompanyService(newFactory),
		departments: service.NewDepartmentService(newFactory),
		employees:   service.NewEmployeeService(newFactory),
		users:       service.NewUserService(newFactory),
		auth:        service.NewAuthService(newFactory, auth.NewIssuer(jwtConfig), databasetest.Logger()),
	}
	ping := func(ctx context.Context) error { return database.Ping(ctx, db) }

	ts := &testServer{server: newServer(t, svc, ping)}
	ts.token = ts.login(t, "johnw", "test")
	return ts
}

func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := ts.do(t, http.MethodPost, "/api/v1/auth/token", map[string]any{"username": username, "password": password}, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var user dto.UserResponse
	decode(t, resp, &user)
	if user.Token == "" {
		t.Fatal("login: empty token")
	}
	return user.Token
}

func (ts *testServer) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// call выполняет запрос с токеном и проверяет статус ответа
func (ts *testServer) call(t *testing.T, method, path string, body any, wantStatus int, out any) {
	t.Helper()
	resp := ts.do(t, method, path, body, ts.token)
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, wantStatus, resp.StatusCode, data)
	}
	if out != nil {
		decode(t, resp, out)
	}
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.server.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request id header")
	}
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	server := newServer(t, services{}, func(context.Context) error { return errors.New("connection refused") })

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
	}
}

func TestAuth_RequiresToken(t *testing.T) {
	ts := setupTestServer(t)

	for _, token := range []string{"", "garbage"} {
		resp := ts.do(t, http.MethodGet, "/api/v1/companies", nil, token)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("token %q: expected %d, got %d", token, http.StatusUnauthorized, resp.StatusCode)
		}
	}
}

func TestAuth_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/auth/token", map[string]any{"username": "johnw", "password": "nope"}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestGetCompany_SeededScenario(t *testing.T) {
	ts := setupTestServer(t)

	var company dto.CompanyResponse
	ts.call(t, http.MethodGet, "/api/v1/companies/1", nil, http.StatusOK, &company)

	want := "John Whyne, Address: Kentucky, USA, Department: Logistics, Username: johnw"
	if len(company.Employees) != 1 || company.Employees[0] != want {
		t.Errorf("expected employees [%q], got %q", want, company.Employees)
	}
}

func TestCompanyLifecycle(t *testing.T) {
	ts := setupTestServer(t)

	var created dto.CompanyResponse
	ts.call(t, http.MethodPost, "/api/v1/companies", map[string]any{"name": "Acme"}, http.StatusCreated, &created)
	if created.Name != "Acme" || created.ID == 0 {
		t.Fatalf("unexpected company: %+v", created)
	}

	var updated dto.CompanyResponse
	ts.call(t, http.MethodPut, "/api/v1/companies/"+strconv.FormatInt(created.ID, 10), map[string]any{"name": "Acme Corp"}, http.StatusOK, &updated)
	if updated.Name != "Acme Corp" || updated.ID != created.ID {
		t.Errorf("unexpected company after update: %+v", updated)
	}

	var list []dto.CompanyResponse
	ts.call(t, http.MethodGet, "/api/v1/companies", nil, http.StatusOK, &list)
	if len(list) != 2 {
		t.Errorf("expected 2 companies, got %d", len(list))
	}

	ts.call(t, http.MethodDelete, "/api/v1/companies/1", nil, http.StatusNoContent, nil)
	ts.call(t, http.MethodGet, "/api/v1/companies/1", nil, http.StatusNotFound, nil)

	// пользователь удалён каскадно, но токен действителен до истечения срока
	var users []dto.UserResponse
	ts.call(t, http.MethodGet, "/api/v1/users", nil, http.StatusOK, &users)
	if len(users) != 0 {
		t.Errorf("expected users to be deleted with the company, got %d", len(users))
	}
}

func TestCreateCompany_Validation(t *testing.T) {
	ts := setupTestServer(t)

	var errResp dto.ErrorResponse
	ts.call(t, http.MethodPost, "/api/v1/companies", map[string]any{"name": ""}, http.StatusBadRequest, &errResp)
	if len(errResp.Fields) != 1 || errResp.Fields[0].Field != "name" {
		t.Errorf("expected field error for name, got %+v", errResp.Fields)
	}

	errResp = dto.ErrorResponse{}
	ts.call(t, http.MethodPost, "/api/v1/companies", map[string]any{"name": "   "}, http.StatusBadRequest, &errResp)
	if len(errResp.Fields) != 1 || errResp.Fields[0].Message != "Name must not be blank" {
		t.Errorf("expected blank name error, got %+v", errResp.Fields)
	}
	ts.call(t, http.MethodPut, "/api/v1/companies/1", map[string]any{"name": "\t "}, http.StatusBadRequest, nil)
	ts.call(t, http.MethodPut, "/api/v1/departments/1", map[string]any{"name": " ", "company_id": 1}, http.StatusBadRequest, nil)
	ts.call(t, http.MethodPost, "/api/v1/employees", map[string]any{"first_name": " ", "last_name": "Doe", "company_id": 1}, http.StatusBadRequest, nil)

	var company dto.CompanyResponse
	ts.call(t, http.MethodGet, "/api/v1/companies/1", nil, http.StatusOK, &company)
	if company.Name != "Company One" {
		t.Errorf("expected name to stay 'Company One', got '%s'", company.Name)
	}

	resp := ts.do(t, http.MethodPost, "/api/v1/companies", nil, ts.token)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty body: expected %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestInvalidID(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{"/api/v1/companies/abc", "/api/v1/employees/0", "/api/v1/users/-1"} {
		ts.call(t, http.MethodGet, path, nil, http.StatusBadRequest, nil)
	}
}

func TestDepartments(t *testing.T) {
	ts := setupTestServer(t)

	ts.call(t, http.MethodPost, "/api/v1/departments", map[string]any{"name": "Sales", "company_id": 99}, http.StatusNotFound, nil)

	var dept dto.DepartmentResponse
	ts.call(t, http.MethodPost, "/api/v1/departments", map[string]any{"name": "Sales", "company_id": 1}, http.StatusCreated, &dept)
	if dept.CompanyName != "Company One" {
		t.Errorf("expected company name 'Company One', got '%s'", dept.CompanyName)
	}

	var logistics dto.DepartmentResponse
	ts.call(t, http.MethodGet, "/api/v1/departments/1", nil, http.StatusOK, &logistics)
	if len(logistics.Employees) != 1 {
		t.Errorf("expected 1 employee in Logistics, got %d", len(logistics.Employees))
	}

	// удаление отдела удаляет его сотрудников
	ts.call(t, http.MethodDelete, "/api/v1/departments/1", nil, http.StatusNoContent, nil)
	ts.call(t, http.MethodGet, "/api/v1/employees/1", nil, http.StatusNotFound, nil)
}

func TestEmployees(t *testing.T) {
	ts := setupTestServer(t)

	var emp dto.EmployeeResponse
	ts.call(t, http.MethodPost, "/api/v1/employees", map[string]any{
		"first_name":    "Jane",
		"last_name":     "Doe",
		"birth_date":    "1985-07-01",
		"company_id":    1,
		"department_id": 1,
		"address":       "Ohio, USA",
	}, http.StatusCreated, &emp)

	if emp.Summary != "Jane Doe, Address: Ohio, USA, Department: Logistics" {
		t.Errorf("unexpected summary %q", emp.Summary)
	}
	if emp.Age == nil || *emp.Age < 38 {
		t.Errorf("unexpected age %v", emp.Age)
	}

	var errResp dto.ErrorResponse
	ts.call(t, http.MethodPost, "/api/v1/employees", map[string]any{
		"first_name": "Bad", "last_name": "Date", "company_id": 1, "birth_date": "01.07.1985",
	}, http.StatusBadRequest, &errResp)
	if len(errResp.Fields) != 1 || errResp.Fields[0].Field != "birth_date" {
		t.Errorf("expected birth_date field error, got %+v", errResp.Fields)
	}

	var found []dto.EmployeeResponse
	ts.call(t, http.MethodGet, "/api/v1/employees/search?department=logi&first_name=JA", nil, http.StatusOK, &found)
	if len(found) != 1 || found[0].ID != emp.ID {
		t.Errorf("expected to find Jane, got %+v", found)
	}

	ts.call(t, http.MethodGet, "/api/v1/employees/search?birth_date=1985-07-01", nil, http.StatusOK, &found)
	if len(found) != 1 {
		t.Errorf("expected 1 employee born on 1985-07-01, got %d", len(found))
	}

	var updated dto.EmployeeResponse
	ts.call(t, http.MethodPut, "/api/v1/employees/"+strconv.FormatInt(emp.ID, 10), map[string]any{
		"first_name": "Janet", "last_name": "Doe", "company_id": 1, "address": "",
	}, http.StatusOK, &updated)
	if updated.FirstName != "Janet" || updated.Address != "" || updated.DepartmentID != nil {
		t.Errorf("unexpected employee after update: %+v", updated)
	}
}

func TestUsers(t *testing.T) {
	ts := setupTestServer(t)

	var emp dto.EmployeeResponse
	ts.call(t, http.MethodPost, "/api/v1/employees", map[string]any{
		"first_name": "Jane", "last_name": "Doe", "company_id": 1,
	}, http.StatusCreated, &emp)
	path := "/api/v1/employees/" + strconv.FormatInt(emp.ID, 10) + "/user"

	ts.call(t, http.MethodPost, path, map[string]any{"username": "johnw", "password": "secret"}, http.StatusConflict, nil)
	ts.call(t, http.MethodPost, "/api/v1/employees/1/user", map[string]any{"username": "other", "password": "secret"}, http.StatusConflict, nil)
	ts.call(t, http.MethodPost, "/api/v1/employees/99/user", map[string]any{"username": "ghost", "password": "secret"}, http.StatusNotFound, nil)

	var user dto.UserResponse
	ts.call(t, http.MethodPost, path, map[string]any{"username": "janed", "password": "secret"}, http.StatusCreated, &user)
	if user.EmployeeName != "Jane Doe" || user.Token != "" {
		t.Errorf("unexpected user: %+v", user)
	}

	if token := ts.login(t, "janed", "secret"); token == "" {
		t.Error("expected the new user to log in")
	}

	ts.call(t, http.MethodPut, "/api/v1/users/"+strconv.FormatInt(emp.ID, 10), map[string]any{"username": "janedoe", "password": "changed"}, http.StatusOK, &user)
	if user.Username != "janedoe" {
		t.Errorf("expected username 'janedoe', got '%s'", user.Username)
	}

	ts.call(t, http.MethodDelete, "/api/v1/users/"+strconv.FormatInt(emp.ID, 10), nil, http.StatusNoContent, nil)
	ts.call(t, http.MethodGet, "/api/v1/users/"+strconv.FormatInt(emp.ID, 10), nil, http.StatusNotFound, nil)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	ts.call(t, http.MethodGet, "/api/v1/companies/1", nil, http.StatusOK, nil)

	resp, err := http.Get(ts.server.URL + "/metrics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `path="GET /api/v1/companies/{id}"`) {
		t.Errorf("expected route pattern in metrics, got:\n%s", body)
	}
}

type failingCompanyService struct {
	service.CompanyService
}

func (failingCompanyService) List(context.Context) ([]*domain.Company, error) {
	return nil, &domain.PersistenceError{Entity: "companies", Op: "select", Err: errors.New("disk I/O error")}
}

func TestInternalError(t *testing.T) {
	ts := setupTestServer(t)
	db := databasetest.New(t)
	newFactory := func() *repository.Factory { return repository.NewFactory(db) }

	server := newServer(t, services{
		companies: failingCompanyService{},
		auth:      service.NewAuthService(newFactory, auth.NewIssuer(jwtConfig), databasetest.Logger()),
	}, nil)
	failing := &testServer{server: server, token: ts.token}

	var errResp dto.ErrorResponse
	failing.call(t, http.MethodGet, "/api/v1/companies", nil, http.StatusInternalServerError, &errResp)
	if errResp.Error != "internal server error" || strings.Contains(errResp.Message, "disk") {
		t.Errorf("unexpected error response: %+v", errResp)
	}
}

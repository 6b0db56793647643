package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"simak/internal/handlers"
	"simak/internal/middleware"
	"simak/internal/services"
	"simak/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app        *fiber.App
	adminToken string
	userToken  string
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	store, err := storage.New(filepath.Join(t.TempDir(), "students.json"))
	require.NoError(t, err)

	authService, err := services.NewAuthService("admin123", "user123", "test_secret")
	require.NoError(t, err)
	studentService := services.NewStudentService(store, nil)
	reportService := services.NewReportService()
	mailService := services.NewMailService("smtp.example.com", 587, "", "")

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewStudentHandler(studentService).RegisterRoutes(protected)
	handlers.NewReportHandler(studentService, reportService, mailService).RegisterRoutes(protected)

	ta := &testApp{app: app}
	ta.adminToken = ta.login(t, "admin", "admin123")
	ta.userToken = ta.login(t, "user", "user123")
	return ta
}

func (ta *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	body := ta.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": username,
		"password": password,
	}, http.StatusOK)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// request fires a JSON request at the app and decodes the JSON response,
// asserting the expected status first.
func (ta *testApp) request(t *testing.T, method, target, token string, payload interface{}, wantStatus int) map[string]interface{} {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reqBody)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return body
}

func studentPayload(id string) fiber.Map {
	return fiber.Map{
		"name":       "Alice Putri",
		"id":         id,
		"major":      "Informatika",
		"hobby":      "Membaca",
		"aspiration": "Programmer",
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	ta := setupApp(t)
	body := ta.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": "admin",
		"password": "wrong",
	}, http.StatusUnauthorized)
	assert.Equal(t, "Authentication failed", body["message"])
}

func TestLogin_MissingFields(t *testing.T) {
	ta := setupApp(t)
	ta.request(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": "admin",
	}, http.StatusBadRequest)
}

func TestStudents_RequireAuthentication(t *testing.T) {
	ta := setupApp(t)
	body := ta.request(t, http.MethodGet, "/api/v1/students/", "", nil, http.StatusUnauthorized)
	assert.Equal(t, "Authorization header is required", body["message"])
}

func TestStudents_RejectMalformedBearerToken(t *testing.T) {
	ta := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStudents_UserCannotMutate(t *testing.T) {
	ta := setupApp(t)

	body := ta.request(t, http.MethodPost, "/api/v1/students/", ta.userToken,
		studentPayload("100000000001"), http.StatusForbidden)
	assert.Equal(t, "Access denied. Admin role is required.", body["message"])

	ta.request(t, http.MethodPut, "/api/v1/students/100000000001", ta.userToken,
		studentPayload("100000000001"), http.StatusForbidden)
	ta.request(t, http.MethodDelete, "/api/v1/students/100000000001", ta.userToken,
		nil, http.StatusForbidden)
	ta.request(t, http.MethodPost, "/api/v1/students/sort", ta.userToken,
		fiber.Map{"method": "bubble"}, http.StatusForbidden)
}

func TestStudents_CRUDFlow(t *testing.T) {
	ta := setupApp(t)

	// create
	body := ta.request(t, http.MethodPost, "/api/v1/students/", ta.adminToken,
		studentPayload("100000000001"), http.StatusCreated)
	assert.Equal(t, "Alice Putri", body["name"])
	assert.NotEmpty(t, body["created_at"])

	// duplicate id
	body = ta.request(t, http.MethodPost, "/api/v1/students/", ta.adminToken,
		studentPayload("100000000001"), http.StatusBadRequest)
	assert.Contains(t, body["error"], "already registered")

	// list is visible to the user role
	body = ta.request(t, http.MethodGet, "/api/v1/students/", ta.userToken, nil, http.StatusOK)
	assert.Equal(t, float64(1), body["total"])

	// fetch by id
	body = ta.request(t, http.MethodGet, "/api/v1/students/100000000001", ta.userToken, nil, http.StatusOK)
	assert.Equal(t, "Alice Putri", body["name"])

	ta.request(t, http.MethodGet, "/api/v1/students/999999999999", ta.userToken, nil, http.StatusNotFound)

	// update, moving the record to a new id
	payload := studentPayload("100000000002")
	payload["name"] = "Alice Sari"
	body = ta.request(t, http.MethodPut, "/api/v1/students/100000000001", ta.adminToken,
		payload, http.StatusOK)
	assert.Equal(t, "Alice Sari", body["name"])
	assert.Equal(t, "100000000002", body["id"])

	// update of a missing record
	ta.request(t, http.MethodPut, "/api/v1/students/100000000001", ta.adminToken,
		studentPayload("100000000001"), http.StatusNotFound)

	// delete twice
	body = ta.request(t, http.MethodDelete, "/api/v1/students/100000000002", ta.adminToken,
		nil, http.StatusOK)
	assert.Equal(t, "Student deleted successfully", body["message"])
	ta.request(t, http.MethodDelete, "/api/v1/students/100000000002", ta.adminToken,
		nil, http.StatusNotFound)
}

func TestStudents_CreateRejectsInvalidFields(t *testing.T) {
	ta := setupApp(t)

	payload := studentPayload("12")
	payload["name"] = "x"
	body := ta.request(t, http.MethodPost, "/api/v1/students/", ta.adminToken,
		payload, http.StatusBadRequest)
	assert.Contains(t, body["error"], "Name must be 3-50 letters/spaces.")
	assert.Contains(t, body["error"], "ID must be exactly 12 digits.")
}

func seedStudents(t *testing.T, ta *testApp) {
	t.Helper()
	for _, row := range []fiber.Map{
		{"name": "Citra Dewi", "id": "100000000003", "major": "Teknik Sipil", "hobby": "Membaca Komik", "aspiration": "Arsitek"},
		{"name": "Alice Putri", "id": "100000000001", "major": "Informatika", "hobby": "Membaca", "aspiration": "Programmer"},
		{"name": "Ali Hamzah", "id": "100000000002", "major": "Informatika", "hobby": "Catur", "aspiration": "Programmer"},
	} {
		ta.request(t, http.MethodPost, "/api/v1/students/", ta.adminToken, row, http.StatusCreated)
	}
}

func TestStudents_Search(t *testing.T) {
	ta := setupApp(t)
	seedStudents(t, ta)

	// default method is the linear name scan
	body := ta.request(t, http.MethodGet, "/api/v1/students/search?q=ali", ta.userToken, nil, http.StatusOK)
	assert.Equal(t, float64(2), body["total"])

	body = ta.request(t, http.MethodGet, "/api/v1/students/search?method=sequential&q=membaca", ta.userToken, nil, http.StatusOK)
	assert.Equal(t, float64(2), body["total"])

	body = ta.request(t, http.MethodGet, "/api/v1/students/search?method=binary&q=100000000002", ta.userToken, nil, http.StatusOK)
	assert.Equal(t, float64(1), body["total"])

	// binary rejects anything but a 12-digit id
	ta.request(t, http.MethodGet, "/api/v1/students/search?method=binary&q=ali", ta.userToken, nil, http.StatusBadRequest)

	// missing keyword
	body = ta.request(t, http.MethodGet, "/api/v1/students/search?method=linear", ta.userToken, nil, http.StatusBadRequest)
	assert.Equal(t, "Search keyword is required", body["message"])

	// empty result is a JSON array, not null
	body = ta.request(t, http.MethodGet, "/api/v1/students/search?q=zzz", ta.userToken, nil, http.StatusOK)
	students, ok := body["students"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, students)
}

func TestStudents_Sort(t *testing.T) {
	ta := setupApp(t)
	seedStudents(t, ta)

	body := ta.request(t, http.MethodPost, "/api/v1/students/sort", ta.adminToken,
		fiber.Map{"method": "selection"}, http.StatusOK)
	assert.Equal(t, "Sort completed", body["message"])
	assert.Equal(t, "selection", body["method"])
	_, ok := body["elapsed_ms"].(float64)
	assert.True(t, ok)

	list := ta.request(t, http.MethodGet, "/api/v1/students/", ta.userToken, nil, http.StatusOK)
	students := list["students"].([]interface{})
	first := students[0].(map[string]interface{})
	assert.Equal(t, "100000000001", first["id"])
}

func TestStudents_SortRejectsUnknownMethod(t *testing.T) {
	ta := setupApp(t)
	body := ta.request(t, http.MethodPost, "/api/v1/students/sort", ta.adminToken,
		fiber.Map{"method": "quick"}, http.StatusBadRequest)
	assert.Equal(t, "Method must be one of: bubble, selection, merge", body["message"])
}

func TestStudents_Stats(t *testing.T) {
	ta := setupApp(t)
	seedStudents(t, ta)

	body := ta.request(t, http.MethodGet, "/api/v1/students/stats", ta.userToken, nil, http.StatusOK)
	assert.Equal(t, float64(3), body["total"])

	majors := body["majors"].([]interface{})
	top := majors[0].(map[string]interface{})
	assert.Equal(t, "Informatika", top["major"])
	assert.Equal(t, float64(2), top["count"])
	assert.InDelta(t, 66.67, top["percentage"], 0.001)

	aspirations := body["top_aspirations"].([]interface{})
	first := aspirations[0].(map[string]interface{})
	assert.Equal(t, "Programmer", first["aspiration"])
}

func TestReports_ExportCSV(t *testing.T) {
	ta := setupApp(t)
	seedStudents(t, ta)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/export?format=csv", nil)
	req.Header.Set("Authorization", "Bearer "+ta.userToken)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Alice Putri")
}

func TestReports_ExportUnknownFormat(t *testing.T) {
	ta := setupApp(t)
	ta.request(t, http.MethodGet, "/api/v1/reports/export?format=docx", ta.userToken, nil, http.StatusBadRequest)
}

func TestReports_EmailValidation(t *testing.T) {
	ta := setupApp(t)

	// empty store
	body := ta.request(t, http.MethodPost, "/api/v1/reports/email", ta.adminToken, fiber.Map{
		"to":     "someone@example.com",
		"format": "csv",
	}, http.StatusBadRequest)
	assert.Equal(t, "There is no student data to send", body["message"])

	seedStudents(t, ta)

	// malformed recipient
	ta.request(t, http.MethodPost, "/api/v1/reports/email", ta.adminToken, fiber.Map{
		"to":     "not-an-email",
		"format": "csv",
	}, http.StatusBadRequest)

	// a non-admin must bring sender credentials
	body = ta.request(t, http.MethodPost, "/api/v1/reports/email", ta.userToken, fiber.Map{
		"to":     "someone@example.com",
		"format": "csv",
	}, http.StatusBadRequest)
	assert.Equal(t, "Sender email and app password are required for non-admin users", body["message"])
}

func TestStudents_ListOnFreshStore(t *testing.T) {
	ta := setupApp(t)
	body := ta.request(t, http.MethodGet, "/api/v1/students/", ta.userToken, nil, http.StatusOK)
	assert.Equal(t, float64(0), body["total"])
}

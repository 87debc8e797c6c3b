package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"staffpay/internal/app/server"
	"staffpay/internal/domain/auth"
	"staffpay/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		StoreDriver:        config.StoreMemory,
		Environment:        "test",
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		DataEncryptionKey:  "0123456789abcdef0123456789abcdef",
		PayslipDir:         t.TempDir(),
		PayrollAllowances:  2000,
		PayrollDeductions:  500,
		SeedAdminUsername:  "admin",
		SeedAdminPassword:  "ChangeMe123!",
		CORSAllowedOrigins: []string{"*"},
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
	}
}

func startApp(t *testing.T) (*server.App, *httptest.Server) {
	t.Helper()
	app, err := server.New(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	ts := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		ts.Close()
		app.Close()
	})
	return app, ts
}

func TestEmployeeAttendanceAndPayrollJourney(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL, "admin", "ChangeMe123!")

	fullTimeID := createEmployee(t, client, ts.URL, token, map[string]any{
		"name":         "Ada",
		"department":   "Engineering",
		"salary":       5000,
		"employeeType": "FULL_TIME",
		"benefits":     "health",
		"annualLeave":  20,
	})
	createEmployee(t, client, ts.URL, token, map[string]any{
		"name":              "Linus",
		"department":        "Engineering",
		"salary":            4000,
		"employeeType":      "DEVELOPER",
		"projectsCompleted": 2,
	})

	salary := envelopeDataMap(t, getJSON(t, client, ts.URL+"/api/v1/employees/"+fullTimeID+"/salary", token))
	if salary["salary"].(float64) != 5750 {
		t.Fatalf("expected full-time salary 5750, got %v", salary["salary"])
	}

	members := envelopeDataSlice(t, getJSON(t, client, ts.URL+"/api/v1/departments/Engineering/employees", token))
	if len(members) != 2 {
		t.Fatalf("expected 2 engineering employees, got %d", len(members))
	}

	checkIn := envelopeDataMap(t, postJSONStatus(t, client, ts.URL+"/api/v1/attendance", token, map[string]any{
		"employeeId": fullTimeID,
		"date":       "2026-01-15",
	}, http.StatusCreated))
	if checkIn["status"] != "PRESENT" {
		t.Fatalf("expected default PRESENT status, got %v", checkIn["status"])
	}
	attendanceID, _ := checkIn["id"].(string)
	checkOut := envelopeDataMap(t, postJSON(t, client, ts.URL+"/api/v1/attendance/"+attendanceID+"/checkout", token, nil))
	if checkOut["checkOut"] == nil || checkOut["workedHours"] == nil {
		t.Fatalf("expected check-out and worked hours, got %v", checkOut)
	}
	onDate := envelopeDataSlice(t, getJSON(t, client, ts.URL+"/api/v1/attendance?date=2026-01-15", token))
	if len(onDate) != 1 {
		t.Fatalf("expected 1 attendance record on date, got %d", len(onDate))
	}

	generated := envelopeDataMap(t, postJSONStatus(t, client, ts.URL+"/api/v1/payroll/reports", token, map[string]any{
		"employeeId": fullTimeID,
		"month":      "January",
		"year":       2026,
	}, http.StatusCreated))
	if generated["netSalary"].(float64) != 7250 {
		t.Fatalf("expected net salary 7250, got %v", generated["netSalary"])
	}
	if generated["status"] != "PROCESSED" {
		t.Fatalf("expected PROCESSED, got %v", generated["status"])
	}
	payrollID, _ := generated["id"].(string)

	summary := envelopeDataMap(t, getJSON(t, client, ts.URL+"/api/v1/payroll?month=January&year=2026&summary=true", token))
	totals, _ := summary["summary"].(map[string]any)
	if totals["payrollCount"].(float64) != 1 || totals["totalNet"].(float64) != 7250 {
		t.Fatalf("unexpected summary %v", totals)
	}

	status, body, header := getRaw(t, client, ts.URL+"/api/v1/payroll/export?month=January&year=2026", token)
	if status != http.StatusOK || !strings.HasPrefix(header.Get("Content-Type"), "text/csv") {
		t.Fatalf("expected csv export, got %d %s", status, header.Get("Content-Type"))
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "payroll_id") || !strings.Contains(lines[1], "Ada") {
		t.Fatalf("unexpected csv export %q", body)
	}

	status, body, header = getRaw(t, client, ts.URL+"/api/v1/payroll/"+payrollID+"/payslip", token)
	if status != http.StatusOK || header.Get("Content-Type") != "application/pdf" {
		t.Fatalf("expected pdf payslip, got %d %s", status, header.Get("Content-Type"))
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("expected decrypted pdf bytes")
	}

	run := envelopeDataMap(t, postJSONStatus(t, client, ts.URL+"/api/v1/payroll/runs", token, map[string]any{
		"department": "Engineering",
		"month":      "February",
		"year":       2026,
	}, http.StatusAccepted))
	runID, _ := run["id"].(string)
	run = waitForRun(t, client, ts.URL, token, runID)
	if run["status"] != "completed" {
		t.Fatalf("expected completed run, got %v", run)
	}
	if ids, _ := run["payrollIds"].([]any); len(ids) != 2 {
		t.Fatalf("expected 2 payrolls from department run, got %v", run["payrollIds"])
	}

	latest := envelopeDataMap(t, getJSON(t, client, ts.URL+"/api/v1/employees/"+fullTimeID+"/payroll?month=February&year=2026", token))
	if latest["month"] != "February" {
		t.Fatalf("expected February snapshot, got %v", latest["month"])
	}
	history := envelopeDataSlice(t, getJSON(t, client, ts.URL+"/api/v1/employees/"+fullTimeID+"/payroll", token))
	if len(history) != 2 {
		t.Fatalf("expected 2 snapshots in history, got %d", len(history))
	}

	deleteStatus(t, client, ts.URL+"/api/v1/employees/"+fullTimeID, token, http.StatusNoContent)
	getJSONStatus(t, client, ts.URL+"/api/v1/employees/"+fullTimeID, token, http.StatusNotFound)

	history = envelopeDataSlice(t, getJSON(t, client, ts.URL+"/api/v1/employees/"+fullTimeID+"/payroll", token))
	if len(history) != 2 {
		t.Fatalf("expected payroll history to survive employee deletion, got %d", len(history))
	}
	attendanceLogs := envelopeDataSlice(t, getJSON(t, client, ts.URL+"/api/v1/employees/"+fullTimeID+"/attendance", token))
	if len(attendanceLogs) != 1 {
		t.Fatalf("expected attendance to survive employee deletion, got %d", len(attendanceLogs))
	}

	deletions := envelopeDataSlice(t, getJSON(t, client, ts.URL+"/api/v1/audit/events?action=employee.delete", token))
	if len(deletions) != 1 || deletions[0]["entityId"] != fullTimeID || deletions[0]["actor"] != "admin" {
		t.Fatalf("unexpected delete audit trail: %v", deletions)
	}
	generateEvents := envelopeDataSlice(t, getJSON(t, client, ts.URL+"/api/v1/audit/events?action=payroll.generate&includeDetails=true", token))
	if len(generateEvents) == 0 || generateEvents[0]["after"] == nil {
		t.Fatalf("expected payroll.generate events with details, got %v", generateEvents)
	}
	status, body, header = getRaw(t, client, ts.URL+"/api/v1/audit/events/export", token)
	if status != http.StatusOK || !strings.HasPrefix(header.Get("Content-Type"), "text/csv") || !strings.Contains(string(body), "employee.delete") {
		t.Fatalf("unexpected audit export: %d %s", status, body)
	}
}

func TestCheckInKeepsStatusAsGiven(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL, "admin", "ChangeMe123!")
	employeeID := createEmployee(t, client, ts.URL, token, map[string]any{
		"name":         "Grace",
		"department":   "Support",
		"salary":       3000,
		"employeeType": "FULL_TIME",
	})

	for _, status := range []string{"LATE", "HALF_DAY", "present"} {
		record := envelopeDataMap(t, postJSONStatus(t, client, ts.URL+"/api/v1/attendance", token, map[string]any{
			"employeeId": employeeID,
			"date":       "2026-02-02",
			"status":     status,
		}, http.StatusCreated))
		if record["status"] != status {
			t.Fatalf("expected status %q, got %v", status, record["status"])
		}
	}

	logs := envelopeDataSlice(t, getJSON(t, client, ts.URL+"/api/v1/employees/"+employeeID+"/attendance", token))
	if len(logs) != 3 || logs[0]["status"] != "LATE" {
		t.Fatalf("unexpected attendance logs %v", logs)
	}
}

func TestEmployeeRoleCannotWrite(t *testing.T) {
	app, ts := startApp(t)
	client := ts.Client()

	if _, err := app.Auth.EnsureUser(context.Background(), "clerk", "Clerk123!", auth.RoleEmployee); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token := login(t, client, ts.URL, "clerk", "Clerk123!")

	env := postJSONStatus(t, client, ts.URL+"/api/v1/employees", token, map[string]any{"name": "Nope"}, http.StatusForbidden)
	if code := envelopeErrorCode(env); code != "forbidden" {
		t.Fatalf("expected forbidden, got %q", code)
	}
	getJSON(t, client, ts.URL+"/api/v1/employees", token)
	getJSONStatus(t, client, ts.URL+"/api/v1/employees", "", http.StatusUnauthorized)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, ts := startApp(t)
	env := postJSONStatus(t, ts.Client(), ts.URL+"/api/v1/auth/login", "", map[string]any{
		"username": "admin",
		"password": "wrong",
	}, http.StatusUnauthorized)
	if code := envelopeErrorCode(env); code != "invalid_credentials" {
		t.Fatalf("expected invalid_credentials, got %q", code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	_, ts := startApp(t)
	client := ts.Client()

	for _, path := range []string{"/healthz", "/readyz"} {
		status, _, _ := getRaw(t, client, ts.URL+path, "")
		if status != http.StatusOK {
			t.Fatalf("expected %s to be ok, got %d", path, status)
		}
	}
	metrics := envelopeDataMap(t, getJSON(t, client, ts.URL+"/metrics", ""))
	if metrics["requestsTotal"].(float64) < 2 {
		t.Fatalf("expected request counter to include health checks, got %v", metrics["requestsTotal"])
	}
}

func waitForRun(t *testing.T, client *http.Client, baseURL, token, runID string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		run := envelopeDataMap(t, getJSON(t, client, baseURL+"/api/v1/payroll/runs/"+runID, token))
		if run["status"] == "completed" || run["status"] == "failed" || time.Now().After(deadline) {
			return run
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	})
	payload := envelopeDataMap(t, resp)
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token string, body map[string]any) string {
	t.Helper()
	created := envelopeDataMap(t, postJSONStatus(t, client, baseURL+"/api/v1/employees", token, body, http.StatusCreated))
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("expected employee id")
	}
	return id
}

func doRequest(t *testing.T, client *http.Client, method, url, token string, body any) (int, []byte, http.Header) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp.StatusCode, raw, resp.Header
}

func decodeEnvelope(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v: %s", err, string(raw))
	}
	return env
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	status, raw, _ := doRequest(t, client, http.MethodPost, url, token, body)
	if status >= 400 {
		t.Fatalf("unexpected status %d: %s", status, string(raw))
	}
	return decodeEnvelope(t, raw)
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) envelope {
	t.Helper()
	return requestJSONStatus(t, client, http.MethodPost, url, token, body, want)
}

func requestJSONStatus(t *testing.T, client *http.Client, method, url, token string, body any, want int) envelope {
	t.Helper()
	status, raw, _ := doRequest(t, client, method, url, token, body)
	if status != want {
		t.Fatalf("expected status %d, got %d: %s", want, status, string(raw))
	}
	return decodeEnvelope(t, raw)
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	status, raw, _ := doRequest(t, client, http.MethodGet, url, token, nil)
	if status >= 400 {
		t.Fatalf("unexpected status %d: %s", status, string(raw))
	}
	return decodeEnvelope(t, raw)
}

func getJSONStatus(t *testing.T, client *http.Client, url, token string, want int) envelope {
	t.Helper()
	return requestJSONStatus(t, client, http.MethodGet, url, token, nil, want)
}

func getRaw(t *testing.T, client *http.Client, url, token string) (int, []byte, http.Header) {
	t.Helper()
	return doRequest(t, client, http.MethodGet, url, token, nil)
}

func deleteStatus(t *testing.T, client *http.Client, url, token string, want int) {
	t.Helper()
	status, raw, _ := doRequest(t, client, http.MethodDelete, url, token, nil)
	if status != want {
		t.Fatalf("expected status %d, got %d: %s", want, status, string(raw))
	}
}

func envelopeErrorCode(env envelope) string {
	if env.Error == nil {
		return ""
	}
	if m, ok := env.Error.(map[string]any); ok {
		if code, ok := m["code"].(string); ok {
			return code
		}
	}
	return ""
}

func envelopeDataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("expected object data, got %s", string(env.Data))
	}
	return out
}

func envelopeDataSlice(t *testing.T, env envelope) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("expected array data, got %s", string(env.Data))
	}
	return out
}

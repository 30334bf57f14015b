package beacon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-hrops/beacon/lifecycle"
	"github.com/go-hrops/beacon/notify"
	"github.com/go-hrops/beacon/storage/model"
)

type memEmployeeStore struct {
	nextID    uint
	employees map[uint]*model.Employee
	tasks     *memTaskStore
}

func (s *memEmployeeStore) CreateWithTasks(e *model.Employee, batch []model.Task) error {
	for _, existing := range s.employees {
		if existing.EmployeeCode == e.EmployeeCode {
			return model.AlreadyExistsError("employee code already exists")
		}
	}
	e.ID = s.nextID
	s.nextID++
	s.employees[e.ID] = e
	s.tasks.add(e.ID, batch)
	return nil
}

func (s *memEmployeeStore) ByID(id uint) (*model.Employee, error) {
	e, ok := s.employees[id]
	if !ok {
		return nil, model.NotFoundError("employee not found")
	}
	return e, nil
}

func (s *memEmployeeStore) ByCode(code string) (*model.Employee, error) {
	for _, e := range s.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return nil, model.NotFoundErrorFmt("no employee with code %s", code)
}

func (s *memEmployeeStore) List() ([]model.Employee, error) {
	out := []model.Employee{}
	for _, e := range s.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (s *memEmployeeStore) ApplyWithTasks(id uint, upd model.EmployeeUpdate, batch []model.Task) (
	*model.Employee, error,
) {
	e, ok := s.employees[id]
	if !ok {
		return nil, model.NotFoundError("employee not found")
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.Department != nil {
		e.Department = *upd.Department
	}
	if upd.DateOfLeaving != nil {
		e.DateOfLeaving = upd.DateOfLeaving
	}
	if upd.TransferDate != nil {
		e.TransferDate = upd.TransferDate
	}
	s.tasks.add(id, batch)
	return e, nil
}

type memTaskStore struct {
	nextID uint
	tasks  []model.Task
}

func (s *memTaskStore) add(employeeID uint, batch []model.Task) {
	for _, t := range batch {
		s.nextID++
		t.ID = s.nextID
		t.EmployeeID = employeeID
		s.tasks = append(s.tasks, t)
	}
}

func (s *memTaskStore) ByEmployee(employeeID uint) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range s.tasks {
		if t.EmployeeID == employeeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memTaskStore) DueBetween(start, end time.Time, excluding model.TaskStatus) ([]model.Task, error) {
	var out []model.Task
	for _, t := range s.tasks {
		if t.Status != excluding && !t.DueDate.Before(start) && !t.DueDate.After(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memTaskStore) UpdateFields(id uint, upd model.TaskUpdate) (*model.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			if upd.Status != nil {
				s.tasks[i].Status = *upd.Status
			}
			if upd.Assignee != nil {
				s.tasks[i].Assignee = *upd.Assignee
			}
			return &s.tasks[i], nil
		}
	}
	return nil, model.NotFoundError("task not found")
}

type memSubscriptionStore struct {
	nextID uint
	subs   []model.PushSubscription
}

func (s *memSubscriptionStore) Create(sub *model.PushSubscription) error {
	s.nextID++
	sub.ID = s.nextID
	s.subs = append(s.subs, *sub)
	return nil
}

func (s *memSubscriptionStore) ByEmployee(employeeID uint) ([]model.PushSubscription, error) {
	var out []model.PushSubscription
	for _, sub := range s.subs {
		if sub.EmployeeID != nil && *sub.EmployeeID == employeeID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *memSubscriptionStore) Broadcast() ([]model.PushSubscription, error) {
	var out []model.PushSubscription
	for _, sub := range s.subs {
		if sub.EmployeeID == nil {
			out = append(out, sub)
		}
	}
	return out, nil
}

type countingSender struct {
	sent int
}

func (s *countingSender) Send(sub model.PushSubscription, payload []byte) error {
	s.sent++
	return nil
}

func newTestBeacon() (*Beacon, *memSubscriptionStore, *countingSender) {
	tasks := &memTaskStore{}
	employees := &memEmployeeStore{nextID: 1, employees: map[uint]*model.Employee{}, tasks: tasks}
	subs := &memSubscriptionStore{}
	sender := &countingSender{}
	backs := model.Backends{Employees: employees, Tasks: tasks, Subscriptions: subs}
	b := NewBeacon(
		ServerConf{},
		backs,
		&lifecycle.Engine{
			Employees: employees,
			Tasks:     tasks,
			Codes:     lifecycle.UUIDCodeGenerator{},
		},
		&notify.Engine{
			Tasks:         tasks,
			Subscriptions: subs,
			Sender:        sender,
		},
		"test-public-key",
	)
	return b, subs, sender
}

func doJSON(t *testing.T, b *Beacon, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := b.server.Test(req)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}

// TestHealthEndpoint checks the liveness endpoint.
func TestHealthEndpoint(t *testing.T) {
	b, _, _ := newTestBeacon()
	resp := doJSON(t, b, http.MethodGet, "/api/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body map[string]any
	decodeBody(t, resp, &body)
	if ok, _ := body["ok"].(bool); !ok {
		t.Error("Expected ok to be true")
	}
	if v, _ := body["version"].(string); v == "" {
		t.Error("Expected version in health response")
	}
}

// TestOnboardingEndpoint checks the onboarding transition through the HTTP
// surface: 201, employee payload and the four generated tasks.
func TestOnboardingEndpoint(t *testing.T) {
	b, _, _ := newTestBeacon()
	resp := doJSON(
		t, b, http.MethodPost, "/api/employees/onboarding", map[string]any{
			"full_name":       "Aiko Tanaka",
			"department":      "Engineering",
			"date_of_joining": "2024-03-15",
		},
	)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		Employee struct {
			ID           uint   `json:"id"`
			EmployeeCode string `json:"employee_code"`
			Status       string `json:"status"`
		} `json:"employee"`
		Tasks []struct {
			Name     string `json:"name"`
			Status   string `json:"status"`
			Assignee string `json:"assignee"`
		} `json:"tasks"`
	}
	decodeBody(t, resp, &body)
	if body.Employee.ID == 0 {
		t.Error("Expected employee id in response")
	}
	if body.Employee.EmployeeCode == "" {
		t.Error("Expected generated employee code in response")
	}
	if body.Employee.Status != "active" {
		t.Errorf("Expected status active, got %q", body.Employee.Status)
	}
	if len(body.Tasks) != 4 {
		t.Fatalf("Expected 4 tasks, got %d", len(body.Tasks))
	}
	for _, task := range body.Tasks {
		if task.Status != "open" {
			t.Errorf("Task %q not open: %s", task.Name, task.Status)
		}
	}
}

// TestOnboardingMissingDate checks the 400 for a missing pivotal date.
func TestOnboardingMissingDate(t *testing.T) {
	b, _, _ := newTestBeacon()
	resp := doJSON(
		t, b, http.MethodPost, "/api/employees/onboarding", map[string]any{
			"full_name": "No Date",
		},
	)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}
	var body APIError
	decodeBody(t, resp, &body)
	if body.Error != "invalid_request" {
		t.Errorf("Unexpected error code: %q", body.Error)
	}
}

// TestOffboardingEndpoint checks offboarding by employee code.
func TestOffboardingEndpoint(t *testing.T) {
	b, _, _ := newTestBeacon()
	resp := doJSON(
		t, b, http.MethodPost, "/api/employees/onboarding", map[string]any{
			"full_name":       "Kenji Sato",
			"date_of_joining": "2024-01-01",
		},
	)
	var created struct {
		Employee struct {
			EmployeeCode string `json:"employee_code"`
		} `json:"employee"`
	}
	decodeBody(t, resp, &created)

	resp = doJSON(
		t, b, http.MethodPost, "/api/employees/offboarding", map[string]any{
			"employee_code":   created.Employee.EmployeeCode,
			"date_of_leaving": "2024-06-30",
		},
	)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Employee struct {
			Status string `json:"status"`
		} `json:"employee"`
		Tasks []struct {
			Name string `json:"name"`
		} `json:"tasks"`
	}
	decodeBody(t, resp, &body)
	if body.Employee.Status != "terminated" {
		t.Errorf("Expected status terminated, got %q", body.Employee.Status)
	}
	if len(body.Tasks) != 8 {
		t.Errorf("Expected 8 tasks after offboarding, got %d", len(body.Tasks))
	}
}

// TestTransferUnknownEmployee checks the 404 for a transfer of a missing
// employee.
func TestTransferUnknownEmployee(t *testing.T) {
	b, _, _ := newTestBeacon()
	resp := doJSON(
		t, b, http.MethodPost, "/api/employees/transfer", map[string]any{
			"employee_db_id": 99,
			"transfer_date":  "2024-01-10",
		},
	)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", resp.StatusCode)
	}
	var body APIError
	decodeBody(t, resp, &body)
	if body.Error != "not_found" {
		t.Errorf("Unexpected error code: %q", body.Error)
	}
}

// TestTaskPatchEndpoint checks the task status update.
func TestTaskPatchEndpoint(t *testing.T) {
	b, _, _ := newTestBeacon()
	resp := doJSON(
		t, b, http.MethodPost, "/api/employees/onboarding", map[string]any{
			"full_name":       "Yui Mori",
			"date_of_joining": "2024-03-15",
		},
	)
	var created struct {
		Tasks []struct {
			ID uint `json:"id"`
		} `json:"tasks"`
	}
	decodeBody(t, resp, &created)
	if len(created.Tasks) == 0 {
		t.Fatal("Expected tasks to be created")
	}

	resp = doJSON(
		t, b, http.MethodPatch, fmt.Sprintf("/api/tasks/%d", created.Tasks[0].ID), map[string]any{
			"status": "done",
		},
	)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var task struct {
		Status string `json:"status"`
	}
	decodeBody(t, resp, &task)
	if task.Status != "done" {
		t.Errorf("Expected status done, got %q", task.Status)
	}

	resp = doJSON(
		t, b, http.MethodPatch, fmt.Sprintf("/api/tasks/%d", created.Tasks[0].ID), map[string]any{
			"status": "closed",
		},
	)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid status, got %d", resp.StatusCode)
	}
}

// TestSubscriptionEndpoints checks the public key endpoint and subscription
// registration, including validation of the key material.
func TestSubscriptionEndpoints(t *testing.T) {
	b, subs, _ := newTestBeacon()

	resp := doJSON(t, b, http.MethodGet, "/api/webpush/public_key", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var keyBody map[string]string
	decodeBody(t, resp, &keyBody)
	if keyBody["publicKey"] != "test-public-key" {
		t.Errorf("Unexpected public key: %q", keyBody["publicKey"])
	}

	resp = doJSON(
		t, b, http.MethodPost, "/api/subscriptions", map[string]any{
			"subscription": map[string]any{
				"endpoint": "https://push.example/abc",
				"keys": map[string]any{
					"auth":   "authsecret",
					"p256dh": "p256dhkey",
				},
			},
		},
	)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var body struct {
		OK bool `json:"ok"`
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &body)
	if !body.OK || body.ID == 0 {
		t.Errorf("Unexpected response: %+v", body)
	}
	if len(subs.subs) != 1 {
		t.Fatalf("Expected 1 stored subscription, got %d", len(subs.subs))
	}

	// missing key material
	resp = doJSON(
		t, b, http.MethodPost, "/api/subscriptions", map[string]any{
			"subscription": map[string]any{"endpoint": "https://push.example/abc"},
		},
	)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for incomplete subscription, got %d", resp.StatusCode)
	}

	// bound to an unknown employee
	resp = doJSON(
		t, b, http.MethodPost, "/api/subscriptions", map[string]any{
			"employee_db_id": 99,
			"subscription": map[string]any{
				"endpoint": "https://push.example/abc",
				"keys":     map[string]any{"auth": "a", "p256dh": "p"},
			},
		},
	)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown employee, got %d", resp.StatusCode)
	}
}

// TestNotifyEndpoint checks the scan trigger end to end with a broadcast
// subscriber and an upcoming task.
func TestNotifyEndpoint(t *testing.T) {
	b, _, sender := newTestBeacon()

	resp := doJSON(
		t, b, http.MethodPost, "/api/employees/onboarding", map[string]any{
			"full_name":       "Ren Abe",
			"date_of_joining": time.Now().UTC().Add(5 * 24 * time.Hour).Format("2006-01-02"),
		},
	)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(
		t, b, http.MethodPost, "/api/subscriptions", map[string]any{
			"subscription": map[string]any{
				"endpoint": "https://push.example/abc",
				"keys":     map[string]any{"auth": "a", "p256dh": "p"},
			},
		},
	)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	// joining in 5 days puts the -3d tasks inside a 96h horizon
	resp = doJSON(t, b, http.MethodPost, "/api/notify/upcoming", map[string]any{"hours": 96})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Tasks             int `json:"tasks"`
		NotificationsSent int `json:"notifications_sent"`
	}
	decodeBody(t, resp, &body)
	if body.Tasks == 0 {
		t.Error("Expected at least one matched task")
	}
	if body.NotificationsSent != sender.sent || sender.sent == 0 {
		t.Errorf("Expected deliveries, got sent=%d, reported=%d", sender.sent, body.NotificationsSent)
	}
}

// TestEmployeeListAndTasks checks the read-only employee endpoints.
func TestEmployeeListAndTasks(t *testing.T) {
	b, _, _ := newTestBeacon()
	resp := doJSON(
		t, b, http.MethodPost, "/api/employees/onboarding", map[string]any{
			"full_name":       "First",
			"date_of_joining": "2024-03-15",
		},
	)
	var created struct {
		Employee struct {
			ID uint `json:"id"`
		} `json:"employee"`
	}
	decodeBody(t, resp, &created)

	resp = doJSON(t, b, http.MethodGet, "/api/employees", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var list []map[string]any
	decodeBody(t, resp, &list)
	if len(list) != 1 {
		t.Errorf("Expected 1 employee, got %d", len(list))
	}

	resp = doJSON(t, b, http.MethodGet, fmt.Sprintf("/api/employees/%d/tasks", created.Employee.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var tasks []map[string]any
	decodeBody(t, resp, &tasks)
	if len(tasks) != 4 {
		t.Errorf("Expected 4 tasks, got %d", len(tasks))
	}

	resp = doJSON(t, b, http.MethodGet, "/api/employees/99/tasks", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown employee, got %d", resp.StatusCode)
	}

	resp = doJSON(t, b, http.MethodGet, "/api/employees/abc/tasks", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed id, got %d", resp.StatusCode)
	}
}

package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-hrops/beacon/storage/model"
)

// TestBuildPayload checks the JSON shape consumed by the service worker.
func TestBuildPayload(t *testing.T) {
	task := model.Task{
		ID:         7,
		EmployeeID: 3,
		Name:       "Prepare equipment",
		DueDate:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	raw, err := buildPayload(task)
	if err != nil {
		t.Fatalf("Failed to build payload: %v", err)
	}

	var got struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Data  struct {
			TaskID     uint `json:"taskId"`
			EmployeeID uint `json:"employeeId"`
		} `json:"data"`
	}
	if err = json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if got.Title != "A task deadline is approaching" {
		t.Errorf("Unexpected title: %q", got.Title)
	}
	if got.Body != "Prepare equipment (due 2024-03-10 00:00)" {
		t.Errorf("Unexpected body: %q", got.Body)
	}
	if got.Data.TaskID != 7 || got.Data.EmployeeID != 3 {
		t.Errorf("Unexpected data: %+v", got.Data)
	}
}

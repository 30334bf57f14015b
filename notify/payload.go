package notify

import (
	"encoding/json"
	"fmt"

	"github.com/go-hrops/beacon/storage/model"
)

// payloadTitle is the fixed title of every due-task alert.
const payloadTitle = "A task deadline is approaching"

const dueFormat = "2006-01-02 15:04"

type pushPayload struct {
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Data  payloadData `json:"data"`
}

type payloadData struct {
	TaskID     uint `json:"taskId"`
	EmployeeID uint `json:"employeeId"`
}

// buildPayload renders the JSON push payload for a due task.
func buildPayload(t model.Task) ([]byte, error) {
	return json.Marshal(
		pushPayload{
			Title: payloadTitle,
			Body:  fmt.Sprintf("%s (due %s)", t.Name, t.DueDate.Format(dueFormat)),
			Data: payloadData{
				TaskID:     t.ID,
				EmployeeID: t.EmployeeID,
			},
		},
	)
}

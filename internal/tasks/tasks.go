package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names routed by the worker mux.
const (
	TypeReportDispatch = "report:dispatch"
	TypeTokenRotate    = "tokens:rotate"
)

// Queue names. Reports share a queue; rotation runs on the default queue.
const (
	QueueReports = "reports"
	QueueDefault = "default"
)

const taskDateLayout = "2006-01-02"

// ReportDispatchPayload is the wire form of a report request.
type ReportDispatchPayload struct {
	ProfileID uint   `json:"profile_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Email     string `json:"email"`
}

// NewReportDispatchTask builds the asynq task for one report request.
func NewReportDispatchTask(profileID uint, start, end time.Time, email string) (*asynq.Task, error) {
	payload, err := json.Marshal(ReportDispatchPayload{
		ProfileID: profileID,
		Start:     start.Format(taskDateLayout),
		End:       end.Format(taskDateLayout),
		Email:     email,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal report payload: %w", err)
	}
	return asynq.NewTask(TypeReportDispatch, payload,
		asynq.Queue(QueueReports),
		asynq.MaxRetry(5),
		asynq.Timeout(2*time.Minute),
	), nil
}

// NewTokenRotateTask builds the periodic token rotation task. It carries no
// payload; the handler rotates every user.
func NewTokenRotateTask() *asynq.Task {
	return asynq.NewTask(TypeTokenRotate, nil, asynq.Queue(QueueDefault))
}

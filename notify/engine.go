package notify

import (
	"time"

	arrays "github.com/adam-hanna/arrayOperations"
	log "github.com/sirupsen/logrus"

	"github.com/go-hrops/beacon/storage/model"
)

// Sender delivers a payload to a single push subscription. Implementations
// must treat missing delivery credentials as a failed delivery, not a
// panic-worthy condition.
type Sender interface {
	Send(sub model.PushSubscription, payload []byte) error
}

// DeliveryOutcome records the result of one (task, subscription) delivery
// attempt.
type DeliveryOutcome struct {
	TaskID         uint
	SubscriptionID uint
	Err            error
}

// Summary is the result of one scan. Matched counts tasks due inside the
// horizon; Sent counts successful deliveries, not attempts. Failed
// deliveries are recorded in Outcomes but never surfaced as an error.
type Summary struct {
	Matched  int
	Sent     int
	Failed   int
	Outcomes []DeliveryOutcome
}

// Engine matches upcoming tasks against subscriptions and dispatches one
// payload per (task, subscriber) pair.
type Engine struct {
	Tasks         model.TaskStore
	Subscriptions model.SubscriptionStore
	Sender        Sender
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// ScanAndNotify selects open tasks whose due instant falls inside
// [now, now+horizon], both bounds inclusive, and notifies the union of the
// owning employee's subscriptions and all broadcast subscriptions. Tasks
// without any subscriber are counted as matched and skipped. Delivery
// errors are swallowed per subscriber; the returned error only covers
// storage failures.
func (e *Engine) ScanAndNotify(horizon time.Duration) (Summary, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	start := now()
	end := start.Add(horizon)

	tasks, err := e.Tasks.DueBetween(start, end, model.TaskStatusDone)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Matched: len(tasks)}
	for _, t := range tasks {
		subs, err := e.subscribers(t.EmployeeID)
		if err != nil {
			return summary, err
		}
		if len(subs) == 0 {
			continue
		}
		payload, err := buildPayload(t)
		if err != nil {
			log.WithError(err).WithField("task_id", t.ID).Error("failed to build push payload")
			continue
		}
		for _, sub := range subs {
			outcome := DeliveryOutcome{TaskID: t.ID, SubscriptionID: sub.ID}
			if outcome.Err = e.Sender.Send(sub, payload); outcome.Err != nil {
				summary.Failed++
				log.WithError(outcome.Err).
					WithField("task_id", t.ID).
					WithField("subscription_id", sub.ID).
					Debug("push delivery failed")
			} else {
				summary.Sent++
			}
			summary.Outcomes = append(summary.Outcomes, outcome)
		}
	}
	return summary, nil
}

// subscribers returns the set union of the employee's own subscriptions and
// all broadcast subscriptions.
func (e *Engine) subscribers(employeeID uint) ([]model.PushSubscription, error) {
	scoped, err := e.Subscriptions.ByEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	broadcast, err := e.Subscriptions.Broadcast()
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]model.PushSubscription, len(scoped)+len(broadcast))
	ids := make([]uint, 0, len(scoped)+len(broadcast))
	for _, s := range append(scoped, broadcast...) {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	distinct := arrays.Distinct(ids)
	subs := make([]model.PushSubscription, len(distinct))
	for i, id := range distinct {
		subs[i] = byID[id]
	}
	return subs, nil
}

package model

import (
	"time"
)

// PushSubscription is a Web Push delivery target. A subscription bound to an
// employee receives alerts for that employee's tasks only; a subscription
// without an employee reference is a broadcast target and receives alerts
// for every employee. Subscriptions are created once and never updated.
type PushSubscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// EmployeeID is nil for broadcast subscriptions.
	EmployeeID *uint  `gorm:"index" json:"employee_id"`
	Endpoint   string `gorm:"size:500;not null" json:"endpoint"`
	// KeysAuth and KeysP256dh are the client key material required by the
	// push service; they are never exposed in responses.
	KeysAuth   string `gorm:"size:256;not null" json:"-"`
	KeysP256dh string `gorm:"size:256;not null" json:"-"`
}

// SubscriptionStore abstracts persistence for push subscriptions.
type SubscriptionStore interface {
	// Create stores a new subscription
	Create(s *PushSubscription) error
	// ByEmployee returns subscriptions bound to the given employee
	ByEmployee(employeeID uint) ([]PushSubscription, error)
	// Broadcast returns all unbound subscriptions
	Broadcast() ([]PushSubscription, error)
}

package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/go-hrops/beacon/storage/model"
)

// Storage is a GORM-based storage implementation
type Storage struct {
	db *gorm.DB
}

var models = []any{
	&model.Employee{},
	&model.Task{},
	&model.PushSubscription{},
}

// NewStorage creates a new GORM-based storage
func NewStorage(config Config) (*Storage, error) {
	db, err := Connect(config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate the schemas
	if err = db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// EmployeeStorage returns an EmployeeStorage
func (s *Storage) EmployeeStorage() *EmployeeStorage {
	return &EmployeeStorage{db: s.db}
}

// TaskStorage returns a TaskStorage
func (s *Storage) TaskStorage() *TaskStorage {
	return &TaskStorage{db: s.db}
}

// SubscriptionStorage returns a SubscriptionStorage
func (s *Storage) SubscriptionStorage() *SubscriptionStorage {
	return &SubscriptionStorage{db: s.db}
}

// EmployeeStorage implements the model.EmployeeStore interface
type EmployeeStorage struct {
	db *gorm.DB
}

// CreateWithTasks stores a new employee together with its initial task
// batch. Employee row and task batch are one transaction.
func (s *EmployeeStorage) CreateWithTasks(e *model.Employee, tasks []model.Task) error {
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			if err := tx.Create(e).Error; err != nil {
				if isUniqueConstraintError(err) {
					return model.AlreadyExistsError("employee code already exists")
				}
				return errors.Wrap(err, "employees: create failed")
			}
			if len(tasks) == 0 {
				return nil
			}
			for i := range tasks {
				tasks[i].EmployeeID = e.ID
			}
			return errors.Wrap(tx.Create(&tasks).Error, "employees: create task batch failed")
		},
	)
}

// ByID retrieves an employee by internal id
func (s *EmployeeStorage) ByID(id uint) (*model.Employee, error) {
	var e model.Employee
	if err := s.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundError("employee not found")
		}
		return nil, errors.Wrap(err, "employees: get failed")
	}
	return &e, nil
}

// ByCode retrieves an employee by external employee code
func (s *EmployeeStorage) ByCode(code string) (*model.Employee, error) {
	var e model.Employee
	if err := s.db.Where("employee_code = ?", code).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("no employee with code %s", code)
		}
		return nil, errors.Wrap(err, "employees: get by code failed")
	}
	return &e, nil
}

// List returns all employees, newest first
func (s *EmployeeStorage) List() ([]model.Employee, error) {
	var es []model.Employee
	if err := s.db.Order("created_at DESC").Find(&es).Error; err != nil {
		return nil, errors.Wrap(err, "employees: list failed")
	}
	return es, nil
}

// ApplyWithTasks applies a sparse update to an employee and appends a task
// batch in a single transaction; it returns the updated employee.
func (s *EmployeeStorage) ApplyWithTasks(id uint, upd model.EmployeeUpdate, tasks []model.Task) (
	*model.Employee, error,
) {
	var e model.Employee
	err := s.db.Transaction(
		func(tx *gorm.DB) error {
			if err := tx.First(&e, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return model.NotFoundError("employee not found")
				}
				return errors.Wrap(err, "employees: get failed")
			}
			if fields := upd.Map(); len(fields) > 0 {
				if err := tx.Model(&e).Updates(fields).Error; err != nil {
					return errors.Wrap(err, "employees: update failed")
				}
			}
			if len(tasks) > 0 {
				for i := range tasks {
					tasks[i].EmployeeID = id
				}
				if err := tx.Create(&tasks).Error; err != nil {
					return errors.Wrap(err, "employees: create task batch failed")
				}
			}
			return errors.Wrap(tx.First(&e, id).Error, "employees: reload failed")
		},
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// TaskStorage implements the model.TaskStore interface
type TaskStorage struct {
	db *gorm.DB
}

// ByEmployee returns all tasks of an employee ordered by due date
func (s *TaskStorage) ByEmployee(employeeID uint) ([]model.Task, error) {
	var ts []model.Task
	err := s.db.Where("employee_id = ?", employeeID).Order("due_date ASC").Find(&ts).Error
	if err != nil {
		return nil, errors.Wrap(err, "tasks: list by employee failed")
	}
	return ts, nil
}

// DueBetween returns tasks due in [start, end], both bounds inclusive,
// excluding tasks in the passed status.
func (s *TaskStorage) DueBetween(start, end time.Time, excluding model.TaskStatus) ([]model.Task, error) {
	var ts []model.Task
	err := s.db.
		Where("status <> ? AND due_date >= ? AND due_date <= ?", excluding, start, end).
		Find(&ts).Error
	if err != nil {
		return nil, errors.Wrap(err, "tasks: due query failed")
	}
	return ts, nil
}

// UpdateFields applies a sparse update to a task and returns the updated row
func (s *TaskStorage) UpdateFields(id uint, upd model.TaskUpdate) (*model.Task, error) {
	var t model.Task
	err := s.db.Transaction(
		func(tx *gorm.DB) error {
			if err := tx.First(&t, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return model.NotFoundError("task not found")
				}
				return errors.Wrap(err, "tasks: get failed")
			}
			if fields := upd.Map(); len(fields) > 0 {
				if err := tx.Model(&t).Updates(fields).Error; err != nil {
					return errors.Wrap(err, "tasks: update failed")
				}
			}
			return errors.Wrap(tx.First(&t, id).Error, "tasks: reload failed")
		},
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SubscriptionStorage implements the model.SubscriptionStore interface
type SubscriptionStorage struct {
	db *gorm.DB
}

// Create stores a new push subscription
func (s *SubscriptionStorage) Create(sub *model.PushSubscription) error {
	return errors.Wrap(s.db.Create(sub).Error, "subscriptions: create failed")
}

// ByEmployee returns the subscriptions bound to the given employee
func (s *SubscriptionStorage) ByEmployee(employeeID uint) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.Where("employee_id = ?", employeeID).Find(&subs).Error; err != nil {
		return nil, errors.Wrap(err, "subscriptions: list by employee failed")
	}
	return subs, nil
}

// Broadcast returns all unbound subscriptions
func (s *SubscriptionStorage) Broadcast() ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.Where("employee_id IS NULL").Find(&subs).Error; err != nil {
		return nil, errors.Wrap(err, "subscriptions: list broadcast failed")
	}
	return subs, nil
}

// isUniqueConstraintError reports whether err comes from a violated unique
// constraint, across the supported drivers.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key value") // postgres
}

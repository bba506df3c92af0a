package health

import (
	"context"
	"time"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Check is the state of one dependency.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Report is the health payload: passing checks under Info, failing ones under Error.
type Report struct {
	Status  string           `json:"status"`
	Info    map[string]Check `json:"info"`
	Error   map[string]Check `json:"error"`
	Details map[string]Check `json:"details"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB      Pinger
	Timeout time.Duration
}

// NewService constructs a new health service. A nil db means the memory store is in use.
func NewService(db Pinger) *Service {
	return &Service{DB: db, Timeout: 2 * time.Second}
}

// Check pings the database and reports the outcome.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Status:  StatusOK,
		Info:    map[string]Check{},
		Error:   map[string]Check{},
		Details: map[string]Check{},
	}

	database := s.checkDatabase(ctx)
	report.Details["database"] = database
	if database.Status == "down" {
		report.Status = StatusError
		report.Error["database"] = database
	} else {
		report.Info["database"] = database
	}
	return report
}

func (s *Service) checkDatabase(ctx context.Context) Check {
	if s.DB == nil {
		return Check{Status: "memory"}
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	if err := s.DB.PingContext(ctx); err != nil {
		return Check{Status: "down", Message: err.Error()}
	}
	return Check{Status: "up"}
}

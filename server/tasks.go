package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopee-scraper/utils"
)

// Task lifecycle states exposed to polling clients.
const (
	StatusRunning         = "running"
	StatusAwaitingCaptcha = "awaiting-captcha"
	StatusCompleted       = "completed"
	StatusError           = "error"
)

// TaskLog is one progress entry, append-only.
type TaskLog struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Time    string `json:"time"`
}

// TaskView is the JSON snapshot returned by the polling endpoint.
type TaskView struct {
	Status string    `json:"status"`
	Logs   []TaskLog `json:"logs"`
	Result any       `json:"result"`
	Error  string    `json:"error,omitempty"`
}

type task struct {
	id        string
	status    string
	logs      []TaskLog
	result    any
	err       string
	createdAt time.Time
	captcha   chan struct{}
}

// TaskRegistry tracks background tasks. Workers report progress exclusively
// by appending log entries and finally setting status+result/error; they
// never read their own record.
type TaskRegistry struct {
	mu     sync.Mutex
	tasks  map[string]*task
	logger *utils.Logger
}

// NewTaskRegistry creates an empty registry.
func NewTaskRegistry(logger *utils.Logger) *TaskRegistry {
	return &TaskRegistry{
		tasks:  make(map[string]*task),
		logger: logger,
	}
}

// Create registers a new running task and returns its id.
func (r *TaskRegistry) Create() string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[id] = &task{
		id:        id,
		status:    StatusRunning,
		createdAt: time.Now(),
	}
	return id
}

// AppendLog adds one progress entry to the task.
func (r *TaskRegistry) AppendLog(id, message, logType string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return
	}
	t.logs = append(t.logs, TaskLog{
		Message: message,
		Type:    logType,
		Time:    time.Now().Format("15:04:05"),
	})
}

// Complete marks the task finished, with either a result or an error.
func (r *TaskRegistry) Complete(id string, result any, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return
	}
	if err != nil {
		t.status = StatusError
		t.err = err.Error()
		return
	}
	t.status = StatusCompleted
	t.result = result
}

// Get returns a snapshot of the task for polling clients.
func (r *TaskRegistry) Get(id string) (TaskView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return TaskView{}, false
	}
	logs := make([]TaskLog, len(t.logs))
	copy(logs, t.logs)
	return TaskView{
		Status: t.status,
		Logs:   logs,
		Result: t.result,
		Error:  t.err,
	}, true
}

// AwaitCaptcha moves the task into the awaiting-captcha state and blocks
// until ResolveCaptcha fires. The caller must not hold the session while
// blocked here; the session mutex is only held per-request, so other tasks
// keep running until they hit the block themselves.
func (r *TaskRegistry) AwaitCaptcha(id string) error {
	r.mu.Lock()
	t, ok := r.tasks[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("task %s not found", id)
	}
	ch := make(chan struct{})
	t.status = StatusAwaitingCaptcha
	t.captcha = ch
	r.mu.Unlock()

	<-ch

	r.mu.Lock()
	t.status = StatusRunning
	r.mu.Unlock()
	return nil
}

// ResolveCaptcha signals that a human has solved the captcha. Returns false
// when the task does not exist or is not waiting.
func (r *TaskRegistry) ResolveCaptcha(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.captcha == nil {
		return false
	}
	close(t.captcha)
	t.captcha = nil
	return true
}

// Run executes fn on its own goroutine with the task boundary guarantees:
// any error or panic becomes the task's terminal error and never affects
// other tasks.
func (r *TaskRegistry) Run(id string, fn func() (any, error)) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("task panic: %v", rec)
				r.AppendLog(id, err.Error(), "error")
				r.Complete(id, nil, err)
			}
		}()

		r.AppendLog(id, "Starting task...", "info")
		result, err := fn()
		if err != nil {
			r.AppendLog(id, "Error: "+err.Error(), "error")
			r.Complete(id, nil, err)
			return
		}
		r.AppendLog(id, "Task completed successfully!", "success")
		r.Complete(id, result, nil)
	}()
}

// CleanupLoop drops tasks older than maxAge every interval. Runs until the
// process exits.
func (r *TaskRegistry) CleanupLoop(interval, maxAge time.Duration) {
	for {
		time.Sleep(interval)

		cutoff := time.Now().Add(-maxAge)
		r.mu.Lock()
		for id, t := range r.tasks {
			if t.createdAt.Before(cutoff) && t.captcha == nil {
				delete(r.tasks, id)
				r.logger.Debug("[tasks] Cleaned up old task: %s", id)
			}
		}
		r.mu.Unlock()
	}
}

// Logger returns a logger that tees into the task's log stream.
func (r *TaskRegistry) Logger(base *utils.Logger, id string) *utils.Logger {
	return base.WithSink(func(level, message string) {
		r.AppendLog(id, message, level)
	})
}

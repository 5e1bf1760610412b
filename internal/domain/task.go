package domain

import "github.com/google/uuid"

type Task struct {
	ID          string
	Description string
	Type        TaskType
	Completed   bool
	Priority    Priority
}

// TaskInput carries the caller-supplied fields of a new task. The id and
// completion flag are always assigned by Add.
type TaskInput struct {
	Description string
	Type        TaskType
	Priority    Priority
}

// NewTaskID returns a random identifier for a task. Ids are never reused,
// including after the task they named is deleted.
func NewTaskID() string {
	return uuid.New().String()
}

func newTask(in TaskInput) Task {
	p := in.Priority
	if p == "" {
		p = PriorityMedium
	}
	t := in.Type
	if t == "" {
		t = TaskWorkout
	}
	return Task{
		ID:          NewTaskID(),
		Description: in.Description,
		Type:        t,
		Priority:    p,
	}
}

package domain

// DayPlan is one scheduled day. Every mutating method returns a new DayPlan
// whose task slice is freshly allocated; the receiver's slice is never
// written, so earlier snapshots stay valid.
type DayPlan struct {
	DayName  string
	Focus    string
	DailyTip string
	Tasks    []Task
}

// IndexOf returns the position of the task with the given id, or -1.
func (d DayPlan) IndexOf(taskID string) int {
	for i, t := range d.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// Task returns the task with the given id.
func (d DayPlan) Task(taskID string) (Task, bool) {
	i := d.IndexOf(taskID)
	if i < 0 {
		return Task{}, false
	}
	return d.Tasks[i], true
}

func (d DayPlan) updateTask(taskID string, fn func(*Task)) DayPlan {
	i := d.IndexOf(taskID)
	if i < 0 {
		return d
	}
	tasks := make([]Task, len(d.Tasks))
	copy(tasks, d.Tasks)
	fn(&tasks[i])
	d.Tasks = tasks
	return d
}

// Toggle flips the completion flag of a task. Unknown ids are ignored.
func (d DayPlan) Toggle(taskID string) DayPlan {
	return d.updateTask(taskID, func(t *Task) { t.Completed = !t.Completed })
}

// UpdateDescription stores text as the task's description verbatim.
func (d DayPlan) UpdateDescription(taskID, text string) DayPlan {
	return d.updateTask(taskID, func(t *Task) { t.Description = text })
}

func (d DayPlan) UpdatePriority(taskID string, p Priority) DayPlan {
	return d.updateTask(taskID, func(t *Task) { t.Priority = p })
}

// CyclePriority advances a task's priority low → medium → high → low.
func (d DayPlan) CyclePriority(taskID string) DayPlan {
	return d.updateTask(taskID, func(t *Task) { t.Priority = t.Priority.Next() })
}

// Delete removes a task, keeping the order of the rest.
func (d DayPlan) Delete(taskID string) DayPlan {
	i := d.IndexOf(taskID)
	if i < 0 {
		return d
	}
	tasks := make([]Task, 0, len(d.Tasks)-1)
	tasks = append(tasks, d.Tasks[:i]...)
	tasks = append(tasks, d.Tasks[i+1:]...)
	d.Tasks = tasks
	return d
}

// Add appends a new incomplete task with a fresh id and returns the updated
// plan together with the created task.
func (d DayPlan) Add(in TaskInput) (DayPlan, Task) {
	t := newTask(in)
	tasks := make([]Task, 0, len(d.Tasks)+1)
	tasks = append(tasks, d.Tasks...)
	tasks = append(tasks, t)
	d.Tasks = tasks
	return d, t
}

// Reorder replaces the task list wholesale. The list is taken as given and
// is not checked against the current tasks.
func (d DayPlan) Reorder(tasks []Task) DayPlan {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	d.Tasks = out
	return d
}

// Move relocates one task to position, shifting the others. position is
// clamped to the valid range. Unknown ids are ignored.
func (d DayPlan) Move(taskID string, position int) DayPlan {
	from := d.IndexOf(taskID)
	if from < 0 {
		return d
	}
	if position < 0 {
		position = 0
	}
	if position > len(d.Tasks)-1 {
		position = len(d.Tasks) - 1
	}
	if position == from {
		return d
	}
	moved := d.Tasks[from]
	order := make([]Task, 0, len(d.Tasks))
	order = append(order, d.Tasks[:from]...)
	order = append(order, d.Tasks[from+1:]...)
	order = append(order[:position], append([]Task{moved}, order[position:]...)...)
	return d.Reorder(order)
}

// IsPermutationOf reports whether tasks holds exactly the ids of d's
// current tasks, each once.
func (d DayPlan) IsPermutationOf(tasks []Task) bool {
	if len(tasks) != len(d.Tasks) {
		return false
	}
	seen := make(map[string]int, len(d.Tasks))
	for _, t := range d.Tasks {
		seen[t.ID]++
	}
	for _, t := range tasks {
		if seen[t.ID] == 0 {
			return false
		}
		seen[t.ID]--
	}
	return true
}

// Progress summarizes completion of the day's tasks.
func (d DayPlan) Progress() Progress {
	p := Progress{Total: len(d.Tasks)}
	for _, t := range d.Tasks {
		if t.Completed {
			p.Completed++
		}
	}
	return p
}

// IsComplete reports whether the day has tasks and all of them are done.
func (d DayPlan) IsComplete() bool {
	p := d.Progress()
	return p.Total > 0 && p.Completed == p.Total
}

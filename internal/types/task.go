package types

// TaskType classifies how a weekly task is meant to be worked.
type TaskType string

// Task types
const (
	TaskLearning TaskType = "Learning"
	TaskPractice TaskType = "Practice"
	TaskBuilding TaskType = "Building"
	TaskReading  TaskType = "Reading"
)

// TaskStatus is the completion state of a task. The only transition the
// API performs is a toggle between Todo and Done.
type TaskStatus string

// Task statuses
const (
	StatusTodo       TaskStatus = "Todo"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// TaskDifficulty is a coarse difficulty rating.
type TaskDifficulty string

// Task difficulties
const (
	DifficultyEasy   TaskDifficulty = "Easy"
	DifficultyMedium TaskDifficulty = "Medium"
	DifficultyHard   TaskDifficulty = "Hard"
)

// Task is one entry in the user's weekly task list. Duration is free text
// ("2 hours", "1h 30m"); see the metrics package for the parsing contract.
type Task struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        TaskType       `json:"type"`
	Duration    string         `json:"duration,omitempty"`
	Status      TaskStatus     `json:"status"`
	Difficulty  TaskDifficulty `json:"difficulty,omitempty"`
	Description string         `json:"description,omitempty"`
}

// Toggle flips a task between Todo and Done. Applying it twice restores
// the original status.
func (t *Task) Toggle() {
	if t.Status == StatusDone {
		t.Status = StatusTodo
	} else {
		t.Status = StatusDone
	}
}

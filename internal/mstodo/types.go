package mstodo

// Records produced by the Microsoft To Do export tooling. The JSON snapshot
// is a top-level array of task lists.

// TaskList is one exported list with its tasks.
type TaskList struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	IsOwner           bool   `json:"isOwner"`
	IsShared          bool   `json:"isShared"`
	WellKnownListName string `json:"wellKnownListName"`
	Tasks             []Task `json:"tasks"`
}

// Task is a single exported task.
type Task struct {
	ID                   string          `json:"id"`
	Status               string          `json:"status"`
	Title                string          `json:"title"`
	Importance           string          `json:"importance"`
	IsReminderOn         bool            `json:"isReminderOn"`
	CreatedDateTime      string          `json:"createdDateTime"`
	LastModifiedDateTime string          `json:"lastModifiedDateTime"`
	HasAttachments       bool            `json:"hasAttachments"`
	Categories           []string        `json:"categories"`
	Body                 ItemBody        `json:"body"`
	CompletedDateTime    *DateTimeZone   `json:"completedDateTime,omitempty"`
	DueDateTime          *DateTimeZone   `json:"dueDateTime,omitempty"`
	ReminderDateTime     *DateTimeZone   `json:"reminderDateTime,omitempty"`
	StartDateTime        *DateTimeZone   `json:"startDateTime,omitempty"`
	Recurrence           *Recurrence     `json:"recurrence,omitempty"`
	ChecklistItems       []ChecklistItem `json:"checklistItems,omitempty"`
}

// ItemBody is the task body text plus its content type ("text" or "html").
type ItemBody struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

// DateTimeZone is the export's wrapper for a local timestamp with a
// separate time zone name.
type DateTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// ChecklistItem is one checklist entry of a task.
type ChecklistItem struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	CreatedDateTime string `json:"createdDatetime"`
	IsChecked       bool   `json:"isChecked"`
}

// Recurrence and its parts are carried through decoding but not mapped.
type Recurrence struct {
	Pattern *RecurrencePattern `json:"pattern,omitempty"`
	Range   *RecurrenceRange   `json:"range,omitempty"`
}

type RecurrencePattern struct {
	Type           string   `json:"type,omitempty"`
	Interval       int      `json:"interval,omitempty"`
	Month          int      `json:"month,omitempty"`
	DayOfMonth     int      `json:"dayOfMonth,omitempty"`
	DaysOfWeek     []string `json:"daysOfWeek,omitempty"`
	FirstDayOfWeek string   `json:"firstDayOfWeek,omitempty"`
	Index          string   `json:"index,omitempty"`
}

type RecurrenceRange struct {
	Type                string `json:"type,omitempty"`
	StartDate           string `json:"startDate,omitempty"`
	EndDate             string `json:"endDate,omitempty"`
	RecurrenceTimeZone  string `json:"recurrenceTimeZone,omitempty"`
	NumberOfOccurrences int    `json:"numberOfOccurrences,omitempty"`
}

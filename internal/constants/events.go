package constants

type EventType string

const (
	EventTaskCreated       EventType = "task.created"
	EventTaskUpdated       EventType = "task.updated"
	EventTaskScheduled     EventType = "task.scheduled"
	EventTaskCompleted     EventType = "task.completed"
	EventTaskCancelled     EventType = "task.cancelled"
	EventScheduleCancelled EventType = "task.schedule_cancelled"
	EventApplicationAdded  EventType = "application.created"
	EventApplicationUpdate EventType = "application.updated"
)

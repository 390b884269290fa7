// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Event actions published to the task.events queue.
const (
	ActionTaskCreated   = "task.created"
	ActionTaskUpdated   = "task.updated"
	ActionTaskDeleted   = "task.deleted"
	ActionAssetUploaded = "asset.uploaded"
)

// TaskEvent is published whenever a task record or one of its assets changes.
// It carries enough information for downstream consumers to log or trigger
// notifications without querying the primary database. AssetKey is only set
// for asset.uploaded events.
type TaskEvent struct {
	Action   string `json:"action"`
	TaskID   uint64 `json:"task_id,omitempty"`
	TaskName string `json:"task_name,omitempty"`
	Phoneme  string `json:"phoneme,omitempty"`
	AssetKey string `json:"asset_key,omitempty"`
	At       string `json:"at"`
}

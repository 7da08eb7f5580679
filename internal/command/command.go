package command

import (
	"github.com/google/uuid"
)

// TaskType names the analysis a command asks for.
type TaskType string

const (
	// ThermalUSVCount counts vessels in a thermal image.
	ThermalUSVCount TaskType = "THERMAL_USV_COUNT"

	// VisibleUSVIdentify identifies and localises vessels in a visible-light image.
	VisibleUSVIdentify TaskType = "VISIBLE_USV_IDENTIFY"
)

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case ThermalUSVCount, VisibleUSVIdentify:
		return true
	}
	return false
}

// Params carries the task inputs.
type Params struct {
	// ImagePath is a filesystem path readable by the service process.
	ImagePath string `json:"image_path"`
}

// Command is the request envelope. It is created per request and never
// modified after binding.
type Command struct {
	CommandID string   `json:"command_id"`
	TaskType  TaskType `json:"task_type"`
	Params    Params   `json:"params"`
}

// Request is the wire form of a Command as bound by the server. Pointer
// fields tell a missing key apart from an empty value: `required` fails only
// on an absent (or null) key, while "" binds and is judged by dispatch.
type Request struct {
	CommandID *string        `json:"command_id" binding:"required"`
	TaskType  *TaskType      `json:"task_type" binding:"required"`
	Params    *RequestParams `json:"params" binding:"required"`
}

// RequestParams is the wire form of Params.
type RequestParams struct {
	ImagePath *string `json:"image_path" binding:"required"`
}

// ID returns the command_id if one was decoded, else "".
func (r *Request) ID() string {
	if r.CommandID == nil {
		return ""
	}
	return *r.CommandID
}

// Command converts a validated request. Absent fields become zero values.
func (r *Request) Command() Command {
	cmd := Command{CommandID: r.ID()}
	if r.TaskType != nil {
		cmd.TaskType = *r.TaskType
	}
	if r.Params != nil && r.Params.ImagePath != nil {
		cmd.Params.ImagePath = *r.Params.ImagePath
	}
	return cmd
}

// NewCommand builds a command with a fresh "CMD-<uuid>" identifier.
func NewCommand(taskType TaskType, imagePath string) Command {
	return Command{
		CommandID: "CMD-" + uuid.NewString(),
		TaskType:  taskType,
		Params:    Params{ImagePath: imagePath},
	}
}

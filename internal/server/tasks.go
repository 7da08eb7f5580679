package server

import (
	"net/http"

	"github.com/ironsheep/usv-vision/internal/command"
)

// TaskDefinition describes one analysis task exposed by the server.
type TaskDefinition struct {
	// Name is a short stable identifier, e.g. "thermal_count".
	Name string `json:"name"`

	// TaskType is the task_type a command for this task declares.
	TaskType command.TaskType `json:"task_type"`

	// Method and Route locate the endpoint.
	Method string `json:"method"`
	Route  string `json:"route"`

	// StrictTaskType rejects commands whose task_type differs from TaskType
	// with code 4001. When false the route runs its task regardless.
	StrictTaskType bool `json:"strict_task_type"`

	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// GetTaskDefinitions returns all available tasks.
func GetTaskDefinitions() []TaskDefinition {
	return []TaskDefinition{
		{
			Name:           "thermal_count",
			TaskType:       command.ThermalUSVCount,
			Method:         http.MethodPost,
			Route:          "/v1/command/analyze_image/thermal_count",
			StrictTaskType: false,
			Description:    "Count unmanned surface vessels in a thermal image. Returns result.detected_count.",
			InputSchema:    commandSchema(command.ThermalUSVCount, "Path to the thermal image file"),
		},
		{
			Name:           "visible_identify",
			TaskType:       command.VisibleUSVIdentify,
			Method:         http.MethodPost,
			Route:          "/v1/command/analyze_image/visible_identify",
			StrictTaskType: true,
			Description:    "Identify and locate unmanned surface vessels in a visible-light image. Returns result.detections with identity, box_xyxy and confidence.",
			InputSchema:    commandSchema(command.VisibleUSVIdentify, "Path to the visible-light image file"),
		},
	}
}

// commandSchema is the JSON schema of a Command for taskType.
func commandSchema(taskType command.TaskType, pathDescription string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"command_id": map[string]interface{}{
				"type":        "string",
				"description": "Caller-chosen identifier echoed as request_command_id",
			},
			"task_type": map[string]interface{}{
				"type":        "string",
				"enum":        []string{string(taskType)},
				"description": "Declared task type",
			},
			"params": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": pathDescription,
					},
				},
				"required": []string{"image_path"},
			},
		},
		"required": []string{"command_id", "task_type", "params"},
	}
}

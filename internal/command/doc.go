// Package command defines the request/response envelope shared by every
// image-analysis task.
//
// A caller submits a Command identified by a caller-chosen command_id and a
// declared task type. The service answers with exactly one of two shapes:
//
//   - SuccessResponse: status "SUCCESS" plus a task-specific result
//   - FailureResponse: status "FAILURE" plus a numeric error code and message
//
// Both shapes echo the submitted command_id as request_command_id so the
// caller can correlate replies without relying on connection state.
//
// # Wire Format
//
//	{
//	  "command_id": "CMD-6f1c...",
//	  "task_type": "THERMAL_USV_COUNT",
//	  "params": {"image_path": "/data/frame-0001.png"}
//	}
//
// Timestamps are UTC, ISO-8601 with microsecond precision and a trailing "Z".
//
// # Error Codes
//
// Codes are four digits: the HTTP status followed by a per-status discriminator.
//
//   - 4001: task_type does not match the route (HTTP 400)
//   - 4041: image file not found (HTTP 404)
//   - 4220: command body malformed or missing a required key (HTTP 422)
//   - 4221: image file could not be decoded (HTTP 422)
//   - 5000: unexpected internal failure (HTTP 500)
package command

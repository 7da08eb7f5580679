// Package server implements the HTTP command API for vessel image analysis.
//
// Each analysis task is a POST route that accepts a command envelope and
// replies with exactly one success or failure envelope (see package command).
// Routing uses gin; request bodies are bound and validated with the
// go-playground validator through gin's binding layer.
//
// # Routes
//
//   - POST /v1/command/analyze_image/thermal_count: count vessels (THERMAL_USV_COUNT)
//   - POST /v1/command/analyze_image/visible_identify: identify vessels (VISIBLE_USV_IDENTIFY)
//   - GET /v1/tasks: describe the available tasks and their input schema
//   - GET /healthz: liveness probe
//
// # Dispatch
//
// For a command route the server:
//
//  1. Binds the JSON body into command.Request; a malformed body or a
//     missing key is answered with 422 / code 4220. Empty string values
//     are accepted and judged by the later steps
//  2. For routes with StrictTaskType, rejects a mismatched task_type with
//     400 / code 4001
//  3. Runs the task with the request context
//  4. Maps the outcome: success 200; imaging.ErrNotFound 404 / 4041;
//     imaging.ErrDecode 422 / 4221; anything else, including a panic,
//     500 / 5000
//
// The request_command_id of every reply equals the submitted command_id.
//
// # State
//
// The server holds no per-request state between calls. Task implementations
// are injected at construction and must be safe for concurrent use.
//
// # Usage
//
//	srv := server.New(counter, identifier, server.WithLogger(log))
//	if err := srv.Run(ctx, server.ListenConfig{Addr: ":8000"}); err != nil {
//	    log.Fatal("server error", zap.Error(err))
//	}
package server

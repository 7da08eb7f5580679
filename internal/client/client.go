// Package client calls the vessel analysis command API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/usv-vision/internal/command"
)

// Route paths relative to the server base URL.
const (
	ThermalCountPath    = "/v1/command/analyze_image/thermal_count"
	VisibleIdentifyPath = "/v1/command/analyze_image/visible_identify"
)

// Client sends commands to one server.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Reply is the outcome of one command round trip.
type Reply struct {
	// Command is what was sent.
	Command command.Command

	// RequestBody is the exact JSON sent.
	RequestBody []byte

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Envelope is the decoded response, success or failure.
	Envelope command.Envelope

	// Body is the raw response body.
	Body []byte
}

// New creates a client for the server at baseURL.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// ThermalCount asks the server to count vessels in the thermal image at path.
func (c *Client) ThermalCount(ctx context.Context, imagePath string) (*Reply, error) {
	return c.Send(ctx, ThermalCountPath, command.NewCommand(command.ThermalUSVCount, imagePath))
}

// VisibleIdentify asks the server to identify vessels in the visible-light
// image at path.
func (c *Client) VisibleIdentify(ctx context.Context, imagePath string) (*Reply, error) {
	return c.Send(ctx, VisibleIdentifyPath, command.NewCommand(command.VisibleUSVIdentify, imagePath))
}

// Send posts cmd to path. A FAILURE envelope is not an error; errors are
// reserved for transport problems and undecodable responses.
func (c *Client) Send(ctx context.Context, path string, cmd command.Command) (*Reply, error) {
	body, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Debug("sending command",
		zap.String("url", req.URL.String()),
		zap.String("command_id", cmd.CommandID),
		zap.String("task_type", string(cmd.TaskType)))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	reply := &Reply{
		Command:     cmd,
		RequestBody: body,
		StatusCode:  resp.StatusCode,
		Body:        raw,
	}
	if err := json.Unmarshal(raw, &reply.Envelope); err != nil {
		return reply, fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}

	c.log.Debug("received reply",
		zap.String("command_id", cmd.CommandID),
		zap.Int("status", resp.StatusCode),
		zap.String("outcome", reply.Envelope.Status))
	return reply, nil
}

// Summary is a one-line human-readable description of the reply.
func (r *Reply) Summary() string {
	env := r.Envelope
	if !env.Succeeded() {
		if env.Error == nil {
			return fmt.Sprintf("FAILURE (HTTP %d)", r.StatusCode)
		}
		return fmt.Sprintf("FAILURE %d: %s", env.Error.Code, env.Error.Message)
	}

	switch r.Command.TaskType {
	case command.ThermalUSVCount:
		var res command.ThermalCountResult
		if err := env.DecodeResult(&res); err != nil {
			return "SUCCESS (unreadable result: " + err.Error() + ")"
		}
		return fmt.Sprintf("SUCCESS: %d vessel(s) counted", res.DetectedCount)
	case command.VisibleUSVIdentify:
		var res command.VisibleIdentifyResult
		if err := env.DecodeResult(&res); err != nil {
			return "SUCCESS (unreadable result: " + err.Error() + ")"
		}
		parts := make([]string, 0, len(res.Detections))
		for _, d := range res.Detections {
			parts = append(parts, fmt.Sprintf("%s %v %.2f", d.Identity, d.Box, d.Confidence))
		}
		if len(parts) == 0 {
			return "SUCCESS: no vessels identified"
		}
		return fmt.Sprintf("SUCCESS: %d vessel(s): %s", len(parts), strings.Join(parts, "; "))
	}
	return "SUCCESS"
}

package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/usv-vision/internal/client"
	"github.com/ironsheep/usv-vision/internal/command"
)

type stubSender struct {
	reply *client.Reply
	err   error
	sent  []command.Command
}

func (s *stubSender) Send(ctx context.Context, path string, cmd command.Command) (*client.Reply, error) {
	s.sent = append(s.sent, cmd)
	return s.reply, s.err
}

func TestCall_PrintsRequestOnTransportError(t *testing.T) {
	var out bytes.Buffer
	stub := &stubSender{err: errors.New("connection refused")}
	cmd := command.Command{CommandID: "CMD-1", TaskType: command.ThermalUSVCount, Params: command.Params{ImagePath: "/a.png"}}

	call(context.Background(), &out, stub, "http://127.0.0.1:8000", client.ThermalCountPath, cmd)

	require.Len(t, stub.sent, 1)
	got := out.String()
	require.Contains(t, got, ">> sending request to http://127.0.0.1:8000/v1/command/analyze_image/thermal_count")
	require.Contains(t, got, "Request Body:")
	require.Contains(t, got, `"command_id": "CMD-1"`)
	require.Contains(t, got, `"image_path": "/a.png"`)
	require.Contains(t, got, "request error: connection refused")
	require.NotContains(t, got, "HTTP Status Code")
}

func TestCall_PrintsResponseAndSummary(t *testing.T) {
	var out bytes.Buffer
	cmd := command.Command{CommandID: "CMD-2", TaskType: command.ThermalUSVCount, Params: command.Params{ImagePath: "/a.png"}}
	body := []byte(`{"request_command_id":"CMD-2","status":"SUCCESS","timestamp_utc":"2025-01-01T00:00:00.000000Z","result":{"detected_count":2}}`)
	reply := &client.Reply{
		Command:    cmd,
		StatusCode: 200,
		Body:       body,
		Envelope: command.Envelope{
			RequestCommandID: "CMD-2",
			Status:           command.StatusSuccess,
			TimestampUTC:     command.Timestamp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
			Result:           []byte(`{"detected_count":2}`),
		},
	}

	call(context.Background(), &out, &stubSender{reply: reply}, "http://h", client.ThermalCountPath, cmd)

	got := out.String()
	require.Less(t, bytes.Index(out.Bytes(), []byte("Request Body:")), bytes.Index(out.Bytes(), []byte("HTTP Status Code: 200")))
	require.Contains(t, got, `"detected_count": 2`)
	require.Contains(t, got, "SUCCESS: 2 vessel(s) counted")
}

func TestIndent(t *testing.T) {
	require.Equal(t, "{\n  \"a\": 1\n}", indent([]byte(`{"a":1}`)))
	require.Equal(t, "not json", indent([]byte("not json")))
}

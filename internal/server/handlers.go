package server

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ironsheep/usv-vision/internal/command"
	"github.com/ironsheep/usv-vision/internal/imaging"
)

// commandHandler binds the request body to a Command, dispatches it to the
// task behind def and writes exactly one SuccessResponse or FailureResponse.
func (s *Server) commandHandler(def TaskDefinition) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req command.Request
		var out command.Outcome
		if err := c.ShouldBindJSON(&req); err != nil {
			out = command.Fail(req.ID(), s.now(), command.CodeInvalidCommand, bindErrorMessage(err))
			s.log.Warn("rejected command body",
				zap.String("route", def.Route),
				zap.String("command_id", req.ID()),
				zap.Error(err))
		} else {
			cmd := req.Command()
			out = s.dispatch(c.Request.Context(), def, &cmd)
		}
		c.JSON(out.HTTPStatus(), out.Body())
	}
}

// dispatch validates cmd against def, runs the task and converts its result
// or error into an Outcome. A panic inside the task becomes an internal
// failure for this command only.
func (s *Server) dispatch(ctx context.Context, def TaskDefinition, cmd *command.Command) (out command.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("task panicked",
				zap.String("task", def.Name),
				zap.String("command_id", cmd.CommandID),
				zap.Any("panic", r))
			out = command.Fail(cmd.CommandID, s.now(), command.CodeInternal, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if def.StrictTaskType && cmd.TaskType != def.TaskType {
		msg := fmt.Sprintf("Invalid task_type '%s', expected '%s'.", cmd.TaskType, def.TaskType)
		s.log.Warn("task type mismatch",
			zap.String("task", def.Name),
			zap.String("command_id", cmd.CommandID),
			zap.String("task_type", string(cmd.TaskType)),
			zap.Bool("known_task_type", cmd.TaskType.Valid()))
		return command.Fail(cmd.CommandID, s.now(), command.CodeBadRequest, msg)
	}
	if cmd.TaskType != def.TaskType {
		s.log.Info("running task despite task_type mismatch",
			zap.String("task", def.Name),
			zap.String("command_id", cmd.CommandID),
			zap.String("task_type", string(cmd.TaskType)),
			zap.Bool("known_task_type", cmd.TaskType.Valid()))
	}

	result, err := s.executeTask(ctx, def.TaskType, cmd.Params)
	if err != nil {
		code := classify(err)
		fields := []zap.Field{
			zap.String("task", def.Name),
			zap.String("command_id", cmd.CommandID),
			zap.String("image_path", cmd.Params.ImagePath),
			zap.Int("code", int(code)),
			zap.Error(err),
		}
		if code == command.CodeInternal {
			s.log.Error("task failed", fields...)
		} else {
			s.log.Warn("task failed", fields...)
		}
		return command.Fail(cmd.CommandID, s.now(), code, err.Error())
	}

	s.log.Debug("task succeeded",
		zap.String("task", def.Name),
		zap.String("command_id", cmd.CommandID))
	return command.Succeed(cmd.CommandID, s.now(), result)
}

// executeTask dispatches to the task implementation for taskType.
func (s *Server) executeTask(ctx context.Context, taskType command.TaskType, params command.Params) (interface{}, error) {
	switch taskType {
	case command.ThermalUSVCount:
		return s.handleThermalCount(ctx, params)
	case command.VisibleUSVIdentify:
		return s.handleVisibleIdentify(ctx, params)
	default:
		return nil, fmt.Errorf("unknown task: %s", taskType)
	}
}

func (s *Server) handleThermalCount(ctx context.Context, params command.Params) (interface{}, error) {
	n, err := s.counter.Count(ctx, params.ImagePath)
	if err != nil {
		return nil, err
	}
	return command.ThermalCountResult{DetectedCount: n}, nil
}

func (s *Server) handleVisibleIdentify(ctx context.Context, params command.Params) (interface{}, error) {
	dets, err := s.identifier.Identify(ctx, params.ImagePath)
	if err != nil {
		return nil, err
	}
	if dets == nil {
		dets = []command.Detection{}
	}
	return command.VisibleIdentifyResult{Detections: dets}, nil
}

// classify maps a task error onto its failure code.
func classify(err error) command.Code {
	switch {
	case errors.Is(err, imaging.ErrNotFound):
		return command.CodeNotFound
	case errors.Is(err, imaging.ErrDecode):
		return command.CodeProcessing
	default:
		return command.CodeInternal
	}
}

// bindErrorMessage turns a ShouldBindJSON error into a client-facing message.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldPath(fe))
		}
		return "invalid command: missing required field(s): " + strings.Join(fields, ", ")
	}
	return "invalid command body: " + err.Error()
}

// fieldPath renders "Request.params.image_path" as "params.image_path".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

var jsonNamesOnce sync.Once

// registerJSONFieldNames makes validation errors report JSON field names.
func registerJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

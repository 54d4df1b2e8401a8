package main

import (
	"context"
	"encoding/json"

	"github.com/nguyentantai21042004/lingua-flow/internal/logger"
	"github.com/nguyentantai21042004/lingua-flow/internal/pipeline"
)

const warmupSource = "warmup"

// Request is one pipeline action. State is whatever the previous response
// returned; a missing state starts a fresh session.
type Request struct {
	Action string          `json:"action"`
	State  *pipeline.State `json:"state,omitempty"`
	Text   string          `json:"text,omitempty"`
	Code   string          `json:"code,omitempty"`
}

type Response struct {
	State pipeline.State `json:"state"`
	Error *ErrorBody     `json:"error,omitempty"`
}

type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type warmupResponse struct {
	Status string `json:"status"`
}

type handler struct {
	ctrl   pipeline.Controller
	logger logger.Logger
}

// Handle runs one action against the state carried in req. Failures are
// reported in the response body, not as invocation errors.
func (h *handler) Handle(ctx context.Context, req Request) Response {
	st := pipeline.NewState()
	if req.State != nil {
		st = *req.State
	}

	var (
		next pipeline.State
		err  error
	)
	switch pipeline.Action(req.Action) {
	case pipeline.ActionSubmit:
		next, err = h.ctrl.SubmitText(ctx, st, req.Text)
	case pipeline.ActionTranslate:
		next, err = h.ctrl.Translate(ctx, st)
	case pipeline.ActionSummarize:
		next, err = h.ctrl.Summarize(ctx, st)
	case pipeline.ActionLanguage:
		next, err = h.ctrl.SelectTargetLanguage(st, req.Code)
	default:
		h.logger.Warn(ctx, "Unknown action %q", req.Action)
		return Response{
			State: st,
			Error: &ErrorBody{Kind: pipeline.KindValidation.String(), Message: "unknown action: " + req.Action},
		}
	}

	resp := Response{State: next}
	if err != nil {
		resp.Error = &ErrorBody{Kind: pipeline.KindOf(err).String(), Message: next.LastError}
	}
	return resp
}

func isWarmupEvent(event json.RawMessage) bool {
	var probe struct {
		Source string `json:"source"`
	}
	if err := json.Unmarshal(event, &probe); err != nil {
		return false
	}
	return probe.Source == warmupSource
}

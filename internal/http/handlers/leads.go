package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leadpipe/leadpipe/internal/attio"
	"github.com/leadpipe/leadpipe/internal/extract"
	"github.com/leadpipe/leadpipe/internal/pipeline"
	"github.com/leadpipe/leadpipe/pkg/logging"
)

// Processor runs one message through the lead pipeline.
type Processor interface {
	Process(ctx context.Context, message string) (*pipeline.Result, error)
}

// LeadsHandler exposes the pipeline over HTTP for chat-transport callers.
type LeadsHandler struct {
	processor Processor
	logger    *logging.Logger
}

// NewLeadsHandler creates the handler.
func NewLeadsHandler(processor Processor, logger *logging.Logger) *LeadsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadsHandler{processor: processor, logger: logger}
}

// ProcessLeadRequest is the inbound message envelope.
type ProcessLeadRequest struct {
	Message string `json:"message"`
}

// SubmissionView is the per-payload outcome in API shape.
type SubmissionView struct {
	ObjectType string `json:"object_type"`
	Outcome    string `json:"outcome"`
	RecordID   string `json:"record_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// ProcessLeadResponse reports what the pipeline did with the message.
type ProcessLeadResponse struct {
	UnitID    string           `json:"unit_id"`
	Duplicate bool             `json:"duplicate,omitempty"`
	Results   []SubmissionView `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// ProcessLead handles POST /v1/leads requests.
func (h *LeadsHandler) ProcessLead(w http.ResponseWriter, r *http.Request) {
	var req ProcessLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.processor.Process(r.Context(), req.Message)
	if err != nil {
		h.writeProcessError(w, err)
		return
	}

	resp := ProcessLeadResponse{
		UnitID:    result.UnitID.String(),
		Duplicate: result.Duplicate,
		Results:   make([]SubmissionView, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		resp.Results = append(resp.Results, SubmissionView{
			ObjectType: string(res.ObjectType),
			Outcome:    string(res.Outcome),
			RecordID:   res.RecordID,
			Detail:     res.Detail,
		})
	}
	writeJSON(w, statusForResults(result.Results), resp)
}

// HealthCheck handles GET /health requests.
func (h *LeadsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *LeadsHandler) writeProcessError(w http.ResponseWriter, err error) {
	var extErr *extract.Error
	if errors.As(err, &extErr) {
		status := http.StatusBadGateway
		switch extErr.Kind {
		case extract.KindEmptyInput:
			status = http.StatusBadRequest
		case extract.KindValidation:
			status = http.StatusUnprocessableEntity
		case extract.KindExhaustedRetries:
			status = http.StatusServiceUnavailable
		}
		h.logger.Warn("extraction failed", "kind", string(extErr.Kind), "error", err)
		writeJSON(w, status, errorResponse{Error: extErr.Error(), Kind: string(extErr.Kind)})
		return
	}
	h.logger.Error("pipeline failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// statusForResults maps the submission outcomes to one HTTP status: 201
// when everything landed, 207 when outcomes were mixed, 502 when nothing
// was written.
func statusForResults(results []attio.SubmissionResult) int {
	if len(results) == 0 {
		return http.StatusOK
	}
	succeeded := 0
	for _, res := range results {
		if res.Outcome == attio.OutcomeCreated || res.Outcome == attio.OutcomeDuplicate {
			succeeded++
		}
	}
	switch succeeded {
	case len(results):
		return http.StatusCreated
	case 0:
		return http.StatusBadGateway
	default:
		return http.StatusMultiStatus
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

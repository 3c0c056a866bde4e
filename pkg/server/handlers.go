package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mrhapile/hvac-diagnoser/pkg/cycle"
	"github.com/mrhapile/hvac-diagnoser/pkg/engine"
	"github.com/mrhapile/hvac-diagnoser/pkg/types"
)

// Handlers serves the diagnostic API from the store's current snapshot.
type Handlers struct {
	store      *Store
	batchLimit int
	now        func() time.Time
}

// Options configure Handlers.
type Options struct {
	// BatchConcurrency bounds concurrent analyses within one batch request.
	BatchConcurrency int

	// Now supplies report timestamps. Defaults to time.Now.
	Now func() time.Time
}

// NewHandlers creates handlers backed by store.
func NewHandlers(store *Store, opts Options) *Handlers {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{store: store, batchLimit: opts.BatchConcurrency, now: now}
}

const requestIDKey = "request_id"

// getOrCreateRequestID echoes the caller's X-Request-ID or assigns one. The
// id is stored on the context so repeated calls agree.
func getOrCreateRequestID(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	c.Set(requestIDKey, requestID)
	return requestID
}

// requestIDMiddleware tags every response, including /metrics.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		getOrCreateRequestID(c)
		c.Next()
	}
}

// timestamp returns the ?at= query time, or now.
func (h *Handlers) timestamp(c *gin.Context) (time.Time, bool) {
	raw := c.Query("at")
	if raw == "" {
		return h.now(), true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

func (h *Handlers) fail(c *gin.Context, endpoint string, status int, resp ErrorResponse) {
	requestsTotal.WithLabelValues(endpoint, resp.Code).Inc()
	c.JSON(status, resp)
}

func (h *Handlers) invalidRequest(c *gin.Context, endpoint, msg string) {
	h.fail(c, endpoint, http.StatusBadRequest, ErrorResponse{Error: msg, Code: CodeInvalidRequest})
}

// HandleCycle handles POST /v1/cycle.
//
// Request: FieldReading
//
// Response:
//
//	200 OK: CycleState
//	400 Bad Request: incomplete or invalid reading
//	404 Not Found: unknown refrigerant
//	422 Unprocessable Entity: pressure outside the refrigerant table
func (h *Handlers) HandleCycle(c *gin.Context) {
	const endpoint = "cycle"
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleCycle")

	var reading types.FieldReading
	if err := c.ShouldBindJSON(&reading); err != nil {
		logger.Warn("Invalid request body", "error", err)
		h.invalidRequest(c, endpoint, "Invalid request body")
		return
	}

	snap := h.store.Current()
	start := time.Now()
	state, err := cycle.NewEngine(snap.Refrigerants, snap.Cycle).Compute(reading)
	analysisDuration.WithLabelValues("compute").Observe(time.Since(start).Seconds())
	if err != nil {
		status, resp := errorResponse(err)
		logger.Info("Cycle rejected", "code", resp.Code, "error", err)
		h.fail(c, endpoint, status, resp)
		return
	}

	requestsTotal.WithLabelValues(endpoint, "OK").Inc()
	c.JSON(http.StatusOK, state)
}

// HandleDiagnose handles POST /v1/diagnose.
//
// Request: FieldReading. Optional query ?at=RFC3339 fixes the report time.
//
// Response:
//
//	200 OK: DiagnosticReport
//	4xx: as HandleCycle
func (h *Handlers) HandleDiagnose(c *gin.Context) {
	const endpoint = "diagnose"
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleDiagnose")

	at, ok := h.timestamp(c)
	if !ok {
		h.invalidRequest(c, endpoint, "at must be an RFC3339 timestamp")
		return
	}

	var reading types.FieldReading
	if err := c.ShouldBindJSON(&reading); err != nil {
		logger.Warn("Invalid request body", "error", err)
		h.invalidRequest(c, endpoint, "Invalid request body")
		return
	}

	start := time.Now()
	rep, err := engine.Analyze(h.store.Current(), reading, at)
	analysisDuration.WithLabelValues("analyze").Observe(time.Since(start).Seconds())
	if err != nil {
		status, resp := errorResponse(err)
		logger.Info("Reading rejected", "code", resp.Code, "error", err)
		h.fail(c, endpoint, status, resp)
		return
	}

	observe(rep)
	logger.Info("Diagnosis complete",
		"report_id", rep.ID,
		"top", rep.Summary.TopDiagnosis,
		"confidence", rep.Summary.TopConfidence)
	requestsTotal.WithLabelValues(endpoint, "OK").Inc()
	c.JSON(http.StatusOK, rep)
}

// HandleDiagnoseBatch handles POST /v1/diagnose/batch.
//
// Readings are analyzed concurrently; one bad reading does not fail the
// request. Results keep the request order.
//
// Response:
//
//	200 OK: BatchResponse
//	400 Bad Request: body is not a BatchRequest
func (h *Handlers) HandleDiagnoseBatch(c *gin.Context) {
	const endpoint = "diagnose_batch"
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleDiagnoseBatch")

	at, ok := h.timestamp(c)
	if !ok {
		h.invalidRequest(c, endpoint, "at must be an RFC3339 timestamp")
		return
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		h.invalidRequest(c, endpoint, "Invalid request body")
		return
	}

	start := time.Now()
	results, err := engine.AnalyzeBatch(c.Request.Context(), h.store.Current(), req.Readings, at, h.batchLimit)
	analysisDuration.WithLabelValues("analyze_batch").Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Warn("Batch aborted", "error", err)
		h.fail(c, endpoint, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: CodeInternal})
		return
	}

	resp := BatchResponse{Results: make([]BatchItem, len(results))}
	for i, res := range results {
		item := BatchItem{Index: res.Index}
		if res.Err != nil {
			_, e := errorResponse(res.Err)
			item.Error = &e
			resp.Failed++
		} else {
			item.Report = res.Report
			observe(*res.Report)
			resp.Succeeded++
		}
		resp.Results[i] = item
	}

	logger.Info("Batch complete", "readings", len(req.Readings), "failed", resp.Failed)
	requestsTotal.WithLabelValues(endpoint, "OK").Inc()
	c.JSON(http.StatusOK, resp)
}

// HandleRefrigerants handles GET /v1/refrigerants.
func (h *Handlers) HandleRefrigerants(c *gin.Context) {
	requestsTotal.WithLabelValues("refrigerants", "OK").Inc()
	c.JSON(http.StatusOK, DescribeRefrigerants(h.store.Current().Refrigerants))
}

// HandleSignatures handles GET /v1/signatures.
func (h *Handlers) HandleSignatures(c *gin.Context) {
	requestsTotal.WithLabelValues("signatures", "OK").Inc()
	c.JSON(http.StatusOK, h.store.Current().Signatures.All())
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	snap := h.store.Current()
	c.JSON(http.StatusOK, HealthResponse{
		Status:       "healthy",
		Refrigerants: len(snap.Refrigerants.IDs()),
		Signatures:   snap.Signatures.Len(),
		LoadedAt:     snap.LoadedAt,
	})
}

func observe(rep types.DiagnosticReport) {
	if len(rep.Diagnoses) == 0 {
		return
	}
	top := rep.Diagnoses[0]
	topConfidence.Observe(top.Confidence)
	if rep.Summary.TopDiagnosis != "" {
		diagnosesTotal.WithLabelValues(top.Signature).Inc()
	}
}

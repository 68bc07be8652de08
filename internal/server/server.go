package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/portfolio-picker/internal/dataset"
	"github.com/iwvelando/portfolio-picker/internal/knapsack"
	"github.com/iwvelando/portfolio-picker/internal/optimizer"
	"github.com/iwvelando/portfolio-picker/pkg/constants"
	"github.com/iwvelando/portfolio-picker/pkg/optimization"
	"github.com/iwvelando/portfolio-picker/pkg/output"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request identifier on every response.
const RequestIDHeader = "X-Request-ID"

//go:embed items.schema.json
var itemsSchemaJSON string

var itemsSchema = jsonschema.MustCompileString("items.schema.json", itemsSchemaJSON)

type requestIDKey struct{}

type handler struct {
	logger        *zap.Logger
	runner        *optimizer.Runner
	columns       dataset.Columns
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the optimization API.
// Every request runs on the shared runner; datasets uploaded to
// /api/optimize are read with columns.
func NewHandler(logger *zap.Logger, runner *optimizer.Runner, columns dataset.Columns, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		runner:        runner,
		columns:       columns,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Optimization over an uploaded CSV dataset
	mux.HandleFunc("/api/optimize", h.handleOptimize)

	// Optimization over a JSON item list
	mux.HandleFunc("/api/optimize/items", h.handleOptimizeItems)

	mux.HandleFunc("/api/version", h.handleVersion)

	return withRequestID(mux)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

type optimizeResponse struct {
	RequestID string               `json:"requestId"`
	Report    optimization.Summary `json:"report"`
	Rejected  []dataset.Rejection  `json:"rejected,omitempty"`
	CSV       string               `json:"csv"`
}

type itemsRequest struct {
	Budget    *decimal.Decimal `json:"budget"`
	Algorithm string           `json:"algorithm"`
	Items     []itemPayload    `json:"items"`
}

type itemPayload struct {
	ID      string           `json:"id"`
	Cost    decimal.Decimal  `json:"cost"`
	Percent *decimal.Decimal `json:"percent"`
	Value   *decimal.Decimal `json:"value"`
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimize"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	budget, err := h.parseBudget(r.FormValue("budget"))
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing dataset file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.String("requestId", requestID(r)),
				zap.Error(closeErr),
			)
		}
	}()

	ds, err := dataset.Read(h.logger, file, h.columns, h.runner.Options())
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("error reading dataset, %v", err), op)
		return
	}
	ds.Source = header.Filename

	h.runOptimization(w, r, ds.Items, budget, r.FormValue("algorithm"), ds.Source, ds.Rejected, op)
}

func (h *handler) handleOptimizeItems(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimizeItems"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}
	if err := itemsSchema.Validate(raw); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err), op)
		return
	}

	var req itemsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	budget := h.runner.Budget()
	if req.Budget != nil {
		budget = *req.Budget
	}

	items := make([]knapsack.Item, 0, len(req.Items))
	for _, payload := range req.Items {
		item := knapsack.Item{ID: payload.ID, Cost: payload.Cost}
		if payload.Value != nil {
			item.Value = *payload.Value
		} else {
			item.Value = dataset.Payout(payload.Cost, *payload.Percent)
		}
		items = append(items, item)
	}

	h.runOptimization(w, r, items, budget, req.Algorithm, "", nil, op)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) parseBudget(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return h.runner.Budget(), nil
	}
	budget, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("budget %q is not a number", value)
	}
	return budget, nil
}

func (h *handler) runOptimization(w http.ResponseWriter, r *http.Request, items []knapsack.Item, budget decimal.Decimal, algorithm, source string, rejected []dataset.Rejection, op string) {
	start := time.Now()
	result, err := h.runner.RunWith(items, budget, algorithm)
	if err != nil {
		h.respondErrorWithOp(w, r, statusFor(err), err.Error(), op)
		return
	}

	summary := result.Summary(source, len(rejected))
	response := optimizeResponse{
		RequestID: requestID(r),
		Report:    summary,
		Rejected:  rejected,
		CSV:       output.CsvString(summary),
	}

	h.logger.Info("optimization computed",
		zap.String("op", op),
		zap.String("requestId", response.RequestID),
		zap.String("algorithm", summary.Algorithm),
		zap.Int("items", len(items)),
		zap.Int("selected", len(summary.Selected)),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, response)
}

// statusFor maps optimizer failures onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, knapsack.ErrCapacityTooLarge), errors.Is(err, knapsack.ErrTooManyItems):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, knapsack.ErrInvalidInput), errors.Is(err, optimizer.ErrUnsupportedAlgorithm):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("optimization request failed",
		zap.String("op", op),
		zap.String("requestId", requestID(r)),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

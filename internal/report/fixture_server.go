package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// FixtureHandler serves fabricated reports over HTTP using the same wire
// contract the HTTP transport consumes.
type FixtureHandler struct {
	fixture *FixtureTransport
	log     *zap.Logger
}

// NewFixtureHandler wraps a fixture transport as an http.Handler.
func NewFixtureHandler(fixture *FixtureTransport, log *zap.Logger) *FixtureHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &FixtureHandler{fixture: fixture, log: log}
}

func (h *FixtureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeEnvelope(w, http.StatusMethodNotAllowed, wireEnvelope{Success: boolPtr(false), Message: "method not allowed"})
		return
	}

	var body wireRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		writeEnvelope(w, http.StatusBadRequest, wireEnvelope{Success: boolPtr(false), Message: "request body must be JSON with a modules array"})
		return
	}

	start := time.Now()
	resp, err := h.fixture.Generate(r.Context(), Request{
		ID:        r.Header.Get("X-Request-ID"),
		ModuleIDs: body.Modules,
	})
	fields := []zap.Field{
		zap.String("request_id", r.Header.Get("X-Request-ID")),
		zap.Strings("modules", body.Modules),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()),
	}

	var logical *LogicalError
	switch {
	case err == nil:
		h.log.Info("fixture report served", fields...)
		writeEnvelope(w, http.StatusOK, wireEnvelope{Success: boolPtr(true), Data: fromDomainTiers(resp.Tiers)})
	case errors.As(err, &logical):
		h.log.Info("fixture report refused", append(fields, zap.String("message", logical.Message))...)
		writeEnvelope(w, http.StatusUnprocessableEntity, wireEnvelope{Success: boolPtr(false), Message: logical.Message})
	default:
		// Client went away before the delay elapsed.
		h.log.Debug("fixture report abandoned", append(fields, zap.Error(err))...)
	}
}

func writeEnvelope(w http.ResponseWriter, status int, env wireEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func boolPtr(b bool) *bool { return &b }

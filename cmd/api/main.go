package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"autoqa-go/internal/analytics"
	"autoqa-go/internal/dataset"
	"autoqa-go/internal/evaluator"
	"autoqa-go/internal/insight"
	"autoqa-go/internal/knowledge"
	"autoqa-go/internal/logger"
	"autoqa-go/internal/samples"
	"autoqa-go/internal/storage"
	"autoqa-go/internal/transcript"
	"autoqa-go/internal/types"
)

type evaluateRequest struct {
	Transcript    string              `json:"transcript"`
	TranscriptURL string              `json:"transcript_url,omitempty"`
	Metadata      *types.CallMetadata `json:"metadata,omitempty"`
}

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "autoqa-go").Info("starting service")

	kb := knowledge.Default()

	var opts []evaluator.Option
	switch {
	case os.Getenv("USE_MOCK_LLM") == "true":
		log.Info("mock insight provider enabled")
		opts = append(opts, evaluator.WithProvider(insight.NewMock()))
	case os.Getenv("LLM_GATEWAY_URL") != "":
		log.WithField("gateway", os.Getenv("LLM_GATEWAY_URL")).Info("insight gateway configured")
		opts = append(opts, evaluator.WithProvider(insight.NewGateway(
			os.Getenv("LLM_GATEWAY_URL"),
			os.Getenv("LLM_API_KEY"),
			os.Getenv("LLM_MODEL"),
		)))
	default:
		log.Info("no insight provider configured, rule-based coaching only")
	}

	eval := evaluator.New(kb, opts...)
	engine := analytics.New(kb)

	store, err := storage.NewFileStore(envOr("RECORDS_DIR", "records"))
	if err != nil {
		log.WithError(err).Fatal("failed to initialize record store")
	}

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// evaluate a single call
	mux.HandleFunc("/evaluate", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "evaluate")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if req.Transcript == "" && req.TranscriptURL != "" {
			text, err := transcript.Fetch(r.Context(), req.TranscriptURL)
			if err != nil {
				reqLog.WithError(err).Warn("transcript fetch failed")
				http.Error(w, "could not fetch transcript", http.StatusBadGateway)
				return
			}
			req.Transcript = text
		}
		if strings.TrimSpace(req.Transcript) == "" {
			reqLog.Warn("missing transcript")
			http.Error(w, "missing transcript", http.StatusBadRequest)
			return
		}

		start := time.Now()
		rec := eval.EvaluateCall(r.Context(), req.Transcript, req.Metadata)
		reqLog.WithField("evaluation_id", rec.EvaluationID).
			WithField("score", rec.Overall.Score).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("call evaluated")

		engine.AddEvaluation(rec)
		if err := store.Save(r.Context(), rec); err != nil {
			reqLog.WithError(err).Warn("failed to persist record")
		}
		writeJSON(w, http.StatusOK, rec)
	})

	// analytics report
	mux.HandleFunc("/report", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "report")
		report, err := engine.GenerateReport()
		if err != nil {
			if errors.Is(err, analytics.ErrNoEvaluations) {
				writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
				return
			}
			reqLog.WithError(err).Error("report generation failed")
			http.Error(w, "report generation failed", http.StatusInternalServerError)
			return
		}
		reqLog.WithField("total_calls", report.TotalCallsAnalyzed).Info("report generated")
		writeJSON(w, http.StatusOK, report)
	})

	// stored record lookup
	mux.HandleFunc("/calls/", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "calls")
		id := strings.TrimPrefix(r.URL.Path, "/calls/")
		if id == "" {
			http.Error(w, "missing evaluation id", http.StatusBadRequest)
			return
		}
		rec, err := store.Load(r.Context(), id)
		if err != nil {
			reqLog.WithError(err).Warn("record not found")
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	})

	// demo endpoint (evaluate the bundled sample calls)
	mux.HandleFunc("/demo", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "demo")
		reqLog.Info("demo invoked")
		var out []types.EvaluationRecord
		for _, sample := range samples.Calls() {
			meta := sample.Metadata
			rec := eval.EvaluateCall(r.Context(), sample.Transcript, &meta)
			reqLog.WithField("sample", sample.Name).WithField("score", rec.Overall.Score).Info("sample evaluated")
			engine.AddEvaluation(rec)
			out = append(out, rec)
		}
		writeJSON(w, http.StatusOK, out)
	})

	// batch endpoint (evaluate every row of an xlsx workbook)
	mux.HandleFunc("/batch", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "batch")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		path := r.URL.Query().Get("path")
		if path == "" {
			path = envOr("DATASET_PATH", "calls.xlsx")
		}
		reqLog = reqLog.WithField("dataset_path", path)

		calls, err := dataset.Load(path)
		if err != nil {
			reqLog.WithError(err).Error("dataset load error")
			http.Error(w, "dataset load error", http.StatusInternalServerError)
			return
		}
		for _, call := range calls {
			meta := call.Metadata
			rec := eval.EvaluateCall(r.Context(), call.Transcript, &meta)
			engine.AddEvaluation(rec)
			if err := store.Save(r.Context(), rec); err != nil {
				reqLog.WithError(err).Warn("failed to persist record")
			}
		}
		reqLog.WithField("evaluated", len(calls)).Info("batch complete")
		writeJSON(w, http.StatusOK, map[string]int{
			"evaluated":   len(calls),
			"total_calls": engine.TotalCalls(),
		})
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

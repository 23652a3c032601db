package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"finreports/internal/amqp"
	"finreports/internal/log"
	"finreports/internal/reports"
)

// reportRoutes maps endpoint paths to report types. Every report shares the
// same query parameter surface, so one handler serves them all.
var reportRoutes = map[string]reports.ReportType{
	"/reports/profit-loss": reports.TypeProfitLoss,
	"/reports/cash-flow":   reports.TypeCashFlow,
	"/reports/category":    reports.TypeCategoryAnalysis,
	"/reports/merchant":    reports.TypeMerchantAnalysis,
	"/reports/trend":       reports.TypeTrendAnalysis,
	"/reports/account":     reports.TypeAccountSummary,
	"/reports/custom":      reports.TypeCustom,
}

// handleReport serves one report type. Documents are cached per path and
// query string; a hit skips both the source load and the generation.
func (s *Server) handleReport(rt reports.ReportType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		params, err := ParseReportParams(r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		cacheKey := r.URL.Path + "?" + r.URL.Query().Encode()
		if doc, ok := s.reportCache.Get(cacheKey); ok {
			writeJSON(w, http.StatusOK, doc)
			return
		}

		txs, err := s.src.Transactions(r.Context())
		if err != nil {
			s.logger.ErrorContext(r.Context(), "transaction load failed", log.FieldError, err)
			writeError(w, http.StatusServiceUnavailable, "transaction source unavailable")
			return
		}

		builder := reports.NewWithLogger(txs, s.logger)
		report, err := builder.Generate(rt, params)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		doc := report.Document()
		s.reportCache.Set(cacheKey, doc)
		writeJSON(w, http.StatusOK, doc)
	}
}

// handleAllReports generates every standard report concurrently over one
// transaction snapshot and returns them keyed by report type.
func (s *Server) handleAllReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	params, err := ParseReportParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := s.src.Transactions(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "transaction load failed", log.FieldError, err)
		writeError(w, http.StatusServiceUnavailable, "transaction source unavailable")
		return
	}
	builder := reports.NewWithLogger(txs, s.logger)

	types := []reports.ReportType{
		reports.TypeProfitLoss,
		reports.TypeCashFlow,
		reports.TypeCategoryAnalysis,
		reports.TypeMerchantAnalysis,
		reports.TypeTrendAnalysis,
		reports.TypeAccountSummary,
	}

	var (
		mu   sync.Mutex
		docs = make(map[string]any, len(types))
	)
	g, _ := errgroup.WithContext(r.Context())
	for _, rt := range types {
		rt := rt
		g.Go(func() error {
			report, err := builder.Generate(rt, params)
			if err != nil {
				return err
			}
			mu.Lock()
			docs[string(rt)] = report.Document()
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(r.Context(), "report generation failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reports":           docs,
		"transaction_count": builder.Len(),
	})
}

// handleTransactions lists the current transaction set, optionally filtered
// by the same query parameters the reports accept.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	params, err := ParseReportParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := s.src.Transactions(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "transaction source unavailable")
		return
	}

	filtered := params.Filter.Apply(txs)
	recs := make([]map[string]any, 0, len(filtered))
	for _, tx := range filtered {
		recs = append(recs, tx.Record())
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": recs,
		"count":        len(recs),
	})
}

// jobRequest is the POST body of the jobs endpoint.
type jobRequest struct {
	Type   string         `json:"type"`
	Params reports.Params `json:"params"`
}

// handleCreateJob enqueues an asynchronous report job over AMQP and answers
// 202 with the job ID.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.jobs == nil {
		writeError(w, http.StatusServiceUnavailable, "job queue not configured")
		return
	}

	var body jobRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rt := reports.ReportType(body.Type)
	if !rt.Valid() {
		writeError(w, http.StatusBadRequest, "unknown report type: "+body.Type)
		return
	}

	req := amqp.NewReportRequest(rt, body.Params)
	if err := s.jobs.PublishRequest(r.Context(), req); err != nil {
		s.logger.ErrorContext(r.Context(), "job publish failed",
			log.FieldJobID, req.ID,
			log.FieldError, err)
		writeError(w, http.StatusServiceUnavailable, "job queue unavailable")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id": req.ID,
		"type":   body.Type,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/viratco/klord/core"
	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// requestConfig clones the base config for one request, refreshing now unless it was pinned.
func (s *Server) requestConfig(q seriesQuery) *contract.Config {
	cfg := s.baseCfg.CloneWithQuery(schema.TimeFrame(q.Mode), "", "", 0, 0)
	if q.Window > 0 {
		cfg.Window = q.Window
	}
	if !cfg.NowPinned {
		cfg.Now = s.clock()
	}
	return cfg
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	q, err := parseSeriesQuery(r.URL.Query())
	if err == nil {
		err = s.validate.Struct(q)
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	cfg := s.requestConfig(q)
	result, err := core.GetSeriesResult(core.WithSuppressHeader(r.Context()), cfg, s.src, s.mgr)
	if err != nil {
		s.logger.Error("Series aggregation failed", slog.Any("error", err))
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	q, err := parseChartQuery(r.URL.Query())
	if err == nil {
		err = s.validate.Struct(q)
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	cfg := s.requestConfig(q.seriesQuery)
	cfg = cfg.CloneWithQuery("", schema.ChartKind(q.Kind), schema.SeriesName(q.Series), q.Width, q.Height)
	if err := contract.ValidateKindForMode(cfg.Kind, cfg.Mode); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := core.GetChartResult(core.WithSuppressHeader(r.Context()), cfg, s.src, s.mgr)
	if err != nil {
		s.logger.Error("Chart build failed", slog.Any("error", err))
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	q, err := parseSeriesQuery(r.URL.Query())
	if err == nil {
		err = s.validate.Struct(q)
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	rows, err := core.GetRecordRows(core.WithSuppressHeader(r.Context()), s.requestConfig(q), s.src)
	if err != nil {
		s.logger.Error("Record listing failed", slog.Any("error", err))
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status, err := core.GetStatusResult(s.mgr)
	if err != nil {
		s.logger.Error("Status lookup failed", slog.Any("error", err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}

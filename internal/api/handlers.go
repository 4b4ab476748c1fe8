package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/comparison-cli/internal/fetcher"
	"github.com/sells-group/comparison-cli/internal/model"
	"github.com/sells-group/comparison-cli/internal/report"
	"github.com/sells-group/comparison-cli/internal/store"
)

// maxBodyBytes caps POST /v1/reports payloads.
const maxBodyBytes = 8 << 20

type reportRequest struct {
	ViewModel *model.ViewModel `json:"view_model"`
	Options   report.Options   `json:"options"`

	// Save persists the scorecards under SectionID when a store is configured.
	Save      bool   `json:"save,omitempty"`
	SectionID string `json:"section_id,omitempty"`
}

type reportResponse struct {
	*report.Report
	RunID string `json:"run_id,omitempty"`
}

func (s *server) postReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ViewModel == nil {
		writeError(w, http.StatusBadRequest, "view_model is required")
		return
	}

	rep := s.builder.Build(req.ViewModel, req.Options)
	s.respond(w, r, rep, req.Save, req.SectionID)
}

func (s *server) sectionReport(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeError(w, http.StatusServiceUnavailable, "no data source configured")
		return
	}

	q := r.URL.Query()
	differences, err := parseBool(q.Get("differences"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid differences value")
		return
	}
	yearly, err := parseBool(q.Get("yearly"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid yearly value")
		return
	}
	save, err := parseBool(q.Get("save"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid save value")
		return
	}

	sectionID := chi.URLParam(r, "sectionID")
	req := fetcher.SectionRequest{
		SectionID:      sectionID,
		OrganizationID: q.Get("organization_id"),
		PlanID:         q.Get("plan_id"),
		CompetitorIDs:  splitIDs(q.Get("competitor_ids")),
	}

	vm, err := s.source.Fetch(r.Context(), req)
	if err != nil {
		zap.L().Warn("api: fetch section failed", zap.String("section_id", sectionID), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	rep := s.builder.Build(vm, report.Options{
		PlanID:          req.PlanID,
		CompetitorIDs:   req.CompetitorIDs,
		Query:           q.Get("q"),
		DifferencesOnly: differences,
		Yearly:          yearly,
	})
	s.respond(w, r, rep, save, sectionID)
}

func (s *server) respond(w http.ResponseWriter, r *http.Request, rep *report.Report, save bool, sectionID string) {
	resp := reportResponse{Report: rep}
	if save {
		if s.store == nil {
			writeError(w, http.StatusServiceUnavailable, "no store configured")
			return
		}
		run := rep.Run(sectionID)
		if err := s.store.SaveRun(r.Context(), run); err != nil {
			zap.L().Error("api: save run failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save run")
			return
		}
		resp.RunID = run.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) listRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}

	q := r.URL.Query()
	filter := store.RunFilter{SectionID: q.Get("section_id")}
	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid "+name+" value")
			return
		}
		*dst = n
	}

	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("api: list runs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []model.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *server) getRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}

	id := chi.URLParam(r, "id")
	run, err := s.store.GetRun(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "run not found")
		return
	case err != nil:
		zap.L().Error("api: get run failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func parseBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// splitIDs splits a comma-separated id list, dropping blanks.
func splitIDs(v string) []string {
	var ids []string
	for _, id := range strings.Split(v, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

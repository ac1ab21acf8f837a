package webserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	featuregen "github.com/MohamadsFakih/flutter-feature-generator"
	"github.com/MohamadsFakih/flutter-feature-generator/generrors"
	"github.com/MohamadsFakih/flutter-feature-generator/scaffold"
)

var (
	validate     = validator.New()
	queryDecoder = schema.NewDecoder()
)

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// endpointEntry is one row of the endpoint listing. Index is the 1-based
// selection number accepted by the generate call.
type endpointEntry struct {
	Index          int    `json:"index"`
	Tag            string `json:"tag"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Summary        string `json:"summary,omitempty"`
	OperationID    string `json:"operationId,omitempty"`
	HasRequestBody bool   `json:"hasRequestBody"`
	ResponseCount  int    `json:"responseCount"`
}

// endpointsQuery are the supported listing filters. Unknown query
// parameters are ignored.
type endpointsQuery struct {
	Tag    string `schema:"tag"`
	Method string `schema:"method"`
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	var q endpointsQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid query: %w", err))
		return
	}

	entries := make([]endpointEntry, 0)
	for _, row := range s.proj.Spec.Listing() {
		e := s.proj.Spec.Endpoints[row.Endpoint]
		if q.Tag != "" && !strings.EqualFold(q.Tag, row.Tag) {
			continue
		}
		if q.Method != "" && !strings.EqualFold(q.Method, e.Method) {
			continue
		}
		entries = append(entries, endpointEntry{
			Index:          row.Index,
			Tag:            row.Tag,
			Method:         e.Method,
			Path:           e.Path,
			Summary:        e.Summary,
			OperationID:    e.OperationID,
			HasRequestBody: e.HasRequestBody(),
			ResponseCount:  len(e.Responses),
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

// componentsBody mirrors scaffold.Components in the request payload.
type componentsBody struct {
	Bloc    bool `json:"bloc"`
	Screens bool `json:"screens"`
	Widgets bool `json:"widgets"`
}

// layersBody mirrors scaffold.Layers in the request payload. A nil
// PresentationComponents with Presentation set means every component.
type layersBody struct {
	Data                   bool            `json:"data"`
	Domain                 bool            `json:"domain"`
	Presentation           bool            `json:"presentation"`
	PresentationComponents *componentsBody `json:"presentationComponents,omitempty"`
}

// generateRequest is the POST /api/generate payload. A nil Layers means
// every layer; an empty OnExists means append.
type generateRequest struct {
	FeatureName     string      `json:"featureName" validate:"required"`
	SelectedIndices []int       `json:"selectedIndices" validate:"required,min=1,dive,min=1"`
	Layers          *layersBody `json:"layers,omitempty"`
	OnExists        string      `json:"onExists,omitempty"`
}

// scaffoldLayers maps the request layer selection to the scaffold type.
func (g generateRequest) scaffoldLayers() scaffold.Layers {
	if g.Layers == nil {
		return scaffold.AllLayers()
	}
	l := scaffold.Layers{
		Data:         g.Layers.Data,
		Domain:       g.Layers.Domain,
		Presentation: g.Layers.Presentation,
	}
	if l.Presentation {
		if c := g.Layers.PresentationComponents; c != nil {
			l.Components = scaffold.Components{Bloc: c.Bloc, Screens: c.Screens, Widgets: c.Widgets}
		} else {
			l.Components = scaffold.Components{Bloc: true, Screens: true, Widgets: true}
		}
	}
	return l
}

// generateResponse is the POST /api/generate result payload.
type generateResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	FeatureName     string   `json:"featureName"`
	EndpointCount   int      `json:"endpointCount"`
	Location        string   `json:"location"`
	IsUpdate        bool     `json:"isUpdate"`
	GeneratedLayers []string `json:"generatedLayers"`
	Warnings        []string `json:"warnings,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	endpoints, err := s.proj.Spec.Select(req.SelectedIndices)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc := scaffold.New()
	sc.Layers = req.scaffoldLayers()
	sc.Logger = s.logger
	if req.OnExists != "" {
		choice, err := scaffold.ParseExistsChoice(req.OnExists)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		sc.OnExists = func(string) (scaffold.ExistsChoice, error) { return choice, nil }
	}

	result, err := sc.Generate(r.Context(), s.proj, req.FeatureName, endpoints)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, generrors.ErrSelection) || errors.Is(err, generrors.ErrConfig) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	resp := generateResponse{
		Success:         result.Success,
		Message:         result.Message,
		FeatureName:     result.FeatureName,
		EndpointCount:   result.EndpointCount,
		Location:        result.Location,
		IsUpdate:        result.IsUpdate,
		GeneratedLayers: sc.Layers.Names(),
	}
	for _, issue := range result.Issues {
		if issue.Severity != scaffold.SeverityWarning {
			continue
		}
		msg := issue.Message
		if c := issue.Context(); c != "" {
			msg = c + ": " + msg
		}
		resp.Warnings = append(resp.Warnings, msg)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": featuregen.Version(),
	})
}

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/resolve"
	"github.com/vanshika/degrees/internal/service"
)

const defaultMaxBatch = 100

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger   *slog.Logger
	service  *service.Degrees
	batch    *service.BatchSearcher
	maxBatch int
}

// NewAPIHandlers constructs an APIHandlers instance. workers bounds the
// concurrency of batch requests.
func NewAPIHandlers(logger *slog.Logger, svc *service.Degrees, workers int) *APIHandlers {
	return &APIHandlers{
		logger:   logger,
		service:  svc,
		batch:    service.NewBatchSearcher(svc, workers),
		maxBatch: defaultMaxBatch,
	}
}

func (h *APIHandlers) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /people", h.findPeople)
	mux.HandleFunc("GET /people/{id}", h.getPerson)
	mux.HandleFunc("GET /people/{id}/neighbors", h.getNeighbors)
	mux.HandleFunc("GET /movies/{id}", h.getMovie)
	mux.HandleFunc("GET /degrees", h.getDegrees)
	mux.HandleFunc("POST /degrees/batch", h.postBatch)
}

func (h *APIHandlers) findPeople(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	matches := h.service.FindPeople(name)
	response := peopleResponse{Name: name, People: make([]personSummary, 0, len(matches))}
	for _, p := range matches {
		response.People = append(response.People, toPersonSummary(p))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) getPerson(w http.ResponseWriter, r *http.Request) {
	person, err := h.service.Person(r.PathValue("id"))
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}

	response := personDetail{
		ID:     person.ID,
		Name:   person.Name,
		Birth:  person.Birth,
		Movies: make([]movieRef, 0, len(person.MovieIDs)),
	}
	for _, id := range person.MovieIDs {
		movie, err := h.service.Movie(id)
		if err != nil {
			h.fail(r.Context(), w, err)
			return
		}
		response.Movies = append(response.Movies, toMovieRef(movie))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) getNeighbors(w http.ResponseWriter, r *http.Request) {
	hops, err := h.service.Neighbors(r.PathValue("id"))
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}

	response := neighborsResponse{PersonID: r.PathValue("id"), Neighbors: make([]hop, 0, len(hops))}
	for _, hp := range hops {
		response.Neighbors = append(response.Neighbors, toHop(hp))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) getMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.Movie(r.PathValue("id"))
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}

	response := movieDetail{
		ID:    movie.ID,
		Title: movie.Title,
		Year:  movie.Year,
		Stars: make([]personSummary, 0, len(movie.StarIDs)),
	}
	for _, id := range movie.StarIDs {
		person, err := h.service.Person(id)
		if err != nil {
			h.fail(r.Context(), w, err)
			return
		}
		response.Stars = append(response.Stars, toPersonSummary(person.Summary()))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) getDegrees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	var (
		conn domain.Connection
		err  error
	)
	switch {
	case q.Get("source") != "" || q.Get("target") != "":
		conn, err = h.service.ResolveAndSearch(ctx, q.Get("source"), q.Get("target"))
	case q.Get("sourceName") != "" || q.Get("targetName") != "":
		strategy, perr := parseStrategy(q.Get("strategy"))
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr.Error())
			return
		}
		conn, err = h.service.SearchByName(ctx, q.Get("sourceName"), q.Get("targetName"), strategy)
	default:
		writeError(w, http.StatusBadRequest, "source and target (or sourceName and targetName) are required")
		return
	}
	if err != nil {
		h.fail(ctx, w, err)
		return
	}
	respondJSON(w, http.StatusOK, toDegreesResponse(conn))
}

func (h *APIHandlers) postBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}
	if len(req.Queries) == 0 {
		writeError(w, http.StatusBadRequest, "queries must not be empty")
		return
	}
	if len(req.Queries) > h.maxBatch {
		writeError(w, http.StatusBadRequest, "too many queries in one batch")
		return
	}

	queries := make([]service.Query, 0, len(req.Queries))
	for _, q := range req.Queries {
		queries = append(queries, service.Query{Source: q.Source, Target: q.Target})
	}

	outcomes, err := h.batch.SearchAll(r.Context(), queries)
	var taskErr *service.TaskError
	if err != nil && !errors.As(err, &taskErr) {
		h.fail(r.Context(), w, err)
		return
	}
	if taskErr != nil {
		logging.FromContext(r.Context()).Warn("batch finished with errors", "failed", len(taskErr.Errors), "total", len(queries))
	}

	response := batchResponse{Results: make([]batchResult, 0, len(outcomes))}
	for _, o := range outcomes {
		result := batchResult{Source: o.Query.Source, Target: o.Query.Target}
		if o.Err != nil {
			result.Error = o.Err.Error()
		} else {
			d := toDegreesResponse(o.Connection)
			result.Result = &d
		}
		response.Results = append(response.Results, result)
	}
	respondJSON(w, http.StatusOK, response)
}

// fail maps service errors onto HTTP statuses.
func (h *APIHandlers) fail(ctx context.Context, w http.ResponseWriter, err error) {
	var ambiguous *resolve.AmbiguousNameError
	switch {
	case errors.As(err, &ambiguous):
		candidates := make([]personSummary, 0, len(ambiguous.Candidates))
		for _, c := range ambiguous.Candidates {
			candidates = append(candidates, toPersonSummary(c))
		}
		respondJSON(w, http.StatusConflict, ambiguousResponse{
			Error:      err.Error(),
			Name:       ambiguous.Name,
			Candidates: candidates,
		})
	case errors.Is(err, service.ErrInvalidQuery), errors.Is(err, resolve.ErrUnknownStrategy):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, dataset.ErrPersonNotFound),
		errors.Is(err, dataset.ErrMovieNotFound),
		errors.Is(err, resolve.ErrPersonNameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "search timed out")
	default:
		logging.FromContext(ctx).Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseStrategy(name string) (resolve.Strategy, error) {
	if strings.EqualFold(strings.TrimSpace(name), resolve.StrategyPrompt) {
		return nil, errors.New("strategy must be first or strict")
	}
	return resolve.ParseStrategy(name, nil)
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

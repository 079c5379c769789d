package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	campaign "go-campaigner/internal/agents/marketing/actor"
	"go-campaigner/pkg/logger"
	"go-campaigner/pkg/messages"
	"go-campaigner/pkg/models"
	"go-campaigner/pkg/progress"
)

type errorResponse struct {
	Error   string              `json:"error"`
	Details []models.FieldError `json:"details,omitempty"`
}

type campaignStarted struct {
	CampaignID string          `json:"campaignId"`
	Status     progress.Status `json:"status"`
	Message    string          `json:"message"`
}

type campaignSummary struct {
	CampaignID string          `json:"campaignId"`
	Status     progress.Status `json:"status"`
	Progress   int             `json:"progress"`
	Message    string          `json:"message"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Options struct {
	Port           int
	Capacity       int
	StatusTimeout  time.Duration
	StreamInterval time.Duration
	// Gatherer backs GET /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

type Server struct {
	root      *actor.RootContext
	runner    campaign.Runner
	opts      Options
	campaigns *campaignsCache
	handler   http.Handler
	server    *http.Server
}

func New(root *actor.RootContext, runner campaign.Runner, opts Options) (*Server, error) {
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	campaigns, err := newCampaignsCache(root, opts.Capacity)
	if err != nil {
		return nil, err
	}
	s := &Server{
		root:      root,
		runner:    runner,
		opts:      opts,
		campaigns: campaigns,
	}

	r := chi.NewRouter()
	r.Use(logMiddleware())
	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	r.Route("/api/agent", func(r chi.Router) {
		r.Post("/campaign", s.startCampaign)
		r.Get("/campaign/{id}", s.getCampaign)
		r.Get("/campaign/{id}/stream", s.streamCampaign)
		r.Get("/campaigns", s.listCampaigns)
	})

	s.handler = r
	s.server = &http.Server{
		Addr:    fmt.Sprint(":", opts.Port),
		Handler: r,
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start() error {
	log.Info().Int("port", s.opts.Port).Msg("http server starting")
	err := s.server.ListenAndServe()
	if err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop shuts the http server down and stops every campaign actor.
func (s *Server) Stop(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.campaigns.purge()
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "campaigner",
	})
}

func (s *Server) startCampaign(w http.ResponseWriter, r *http.Request) {
	log.Debug().Msg("new campaign request")
	req := models.CampaignRequest{}
	if err := unmarshalRequestBody(r, &req); err != nil {
		log.Debug().Err(err).Msg("cannot parse body")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "unable to parse body"})
		return
	}
	if err := req.Validate(); err != nil {
		resp := errorResponse{Error: "validation error"}
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			resp.Details = verr.Fields
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp)
		return
	}

	id := uuid.New()
	pid := s.root.Spawn(campaign.Props(s.runner))
	s.campaigns.add(id, pid)
	s.root.Send(pid, messages.NewCampaign{CampaignID: id, Request: req})

	log.Info().Str(logger.CampaignIDField, id.String()).Msg("campaign generation started")
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, campaignStarted{
		CampaignID: id.String(),
		Status:     progress.Started,
		Message:    "Campaign generation started. Poll /api/agent/campaign/" + id.String() + " for status.",
	})
}

// resolve finds the actor for the {id} route parameter. It writes the error
// response itself and reports whether to continue.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (uuid.UUID, *actor.PID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "unable to parse id"})
		return uuid.Nil, nil, false
	}
	pid, ok := s.campaigns.get(id)
	if !ok {
		log.Debug().Str(logger.CampaignIDField, idParam).Msg("cannot find campaign")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorResponse{Error: "campaign not found"})
		return uuid.Nil, nil, false
	}
	return id, pid, true
}

// status queries the campaign actor. A campaign whose actor does not answer
// is forgotten.
func (s *Server) status(w http.ResponseWriter, r *http.Request, id uuid.UUID, pid *actor.PID) (models.CampaignStatus, bool) {
	status, err := campaign.Status(s.root, pid, s.opts.StatusTimeout)
	if err != nil {
		s.campaigns.remove(id)
		log.Error().Str(logger.CampaignIDField, id.String()).Err(err).Msg("unable to get status from actor")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "unable to get campaign status"})
		return models.CampaignStatus{}, false
	}
	return status, true
}

func (s *Server) getCampaign(w http.ResponseWriter, r *http.Request) {
	id, pid, ok := s.resolve(w, r)
	if !ok {
		return
	}
	status, ok := s.status(w, r, id, pid)
	if !ok {
		return
	}
	render.JSON(w, r, status)
}

// streamCampaign writes the campaign status as server-sent events every
// stream interval until the run completes or fails.
func (s *Server) streamCampaign(w http.ResponseWriter, r *http.Request) {
	id, pid, ok := s.resolve(w, r)
	if !ok {
		return
	}
	status, ok := s.status(w, r, id, pid)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	l := hlog.FromRequest(r).With().Str(logger.CampaignIDField, id.String()).Logger()
	ticker := time.NewTicker(s.opts.StreamInterval)
	defer ticker.Stop()
	for {
		payload, err := json.Marshal(status)
		if err != nil {
			l.Error().Err(err).Msg("unable to marshal status")
			return
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			l.Debug().Err(err).Msg("stream client gone")
			return
		}
		flusher.Flush()
		if status.Done() {
			return
		}

		select {
		case <-r.Context().Done():
			l.Debug().Msg("stream closed by client")
			return
		case <-ticker.C:
		}

		status, err = campaign.Status(s.root, pid, s.opts.StatusTimeout)
		if err != nil {
			l.Error().Err(err).Msg("unable to get status from actor")
			return
		}
	}
}

func (s *Server) listCampaigns(w http.ResponseWriter, r *http.Request) {
	ids := s.campaigns.list()
	out := make([]campaignSummary, 0, len(ids))
	for _, id := range ids {
		pid, ok := s.campaigns.peek(id)
		if !ok {
			continue
		}
		status, err := campaign.Status(s.root, pid, s.opts.StatusTimeout)
		if err != nil {
			log.Warn().Str(logger.CampaignIDField, id.String()).Err(err).Msg("skipping campaign without status")
			continue
		}
		out = append(out, campaignSummary{
			CampaignID: status.CampaignID,
			Status:     status.Status,
			Progress:   status.Progress,
			Message:    status.Message,
			CreatedAt:  status.CreatedAt,
		})
	}
	render.JSON(w, r, map[string]any{"campaigns": out})
}

func logMiddleware() func(http.Handler) http.Handler {
	c := alice.New()
	c = c.Append(hlog.NewHandler(log.Logger))
	c = c.Append(hlog.RemoteAddrHandler("ip"))
	c = c.Append(hlog.UserAgentHandler("agent"))
	c = c.Append(hlog.RefererHandler("referer"))
	c = c.Append(hlog.RequestIDHandler("req_id", "Request-Id"))
	c = c.Append(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("verb", r.Method).
			Stringer("url", r.URL).
			Int("size", size).
			Int("status", status).
			Int64("duration", duration.Milliseconds()).
			Msg("REQ")
	}))

	return c.Then
}

func unmarshalRequestBody(req *http.Request, output interface{}) error {
	if req.Body == nil {
		return errors.New("invalid body in request")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	if err = req.Body.Close(); err != nil {
		return err
	}
	if err = json.Unmarshal(body, output); err != nil {
		return err
	}

	return nil
}

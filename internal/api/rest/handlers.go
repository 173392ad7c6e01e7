package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ShopLab-Team/jira-github-webhook/internal/jira"
	"github.com/ShopLab-Team/jira-github-webhook/internal/release"
	"github.com/ShopLab-Team/jira-github-webhook/pkg/types"
)

const (
	contentTypeJSON = "application/json"

	missingDataMessage = "Missing required data from payload"

	findFailedPrefix  = "Failed to find pull request: "
	mergeFailedPrefix = "Failed to merge pull request: "

	// maxBodyBytes caps webhook request bodies
	maxBodyBytes = 1 << 20
)

// Response is the outcome of one webhook invocation
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Handler handles webhook requests
type Handler struct {
	release *release.Service
	decoder *jira.Decoder
	logger  *zap.Logger
}

// NewHandler creates a new webhook handler
func NewHandler(releaseService *release.Service, decoder *jira.Decoder, logger *zap.Logger) *Handler {
	return &Handler{
		release: releaseService,
		decoder: decoder,
		logger:  logger,
	}
}

// Handle finds the pull request of the ticket, approves it and tries to merge
// it. Once the approval went through the response is 200 whatever the merge
// outcome; the body tells whether the merge happened.
func (h *Handler) Handle(ctx context.Context, payload types.WebhookPayload) Response {
	if !payload.Complete() {
		return h.respond(http.StatusBadRequest, release.Fail[any](missingDataMessage))
	}

	logger := h.logger.With(
		zap.String("project", payload.Project),
		zap.String("ticket_key", payload.TicketKey),
		zap.String("ticket_status", payload.TicketStatus),
		zap.String("repo_owner", payload.RepositoryOwner),
		zap.String("repo_name", payload.RepositoryName),
	)
	logger.Info("handling ticket status change")

	found, err := h.release.FindPullRequest(ctx, payload.TicketKey, payload.RepositoryName, payload.RepositoryOwner)
	if err != nil {
		logger.Error("pull request lookup failed", zap.Error(err))
		return h.respond(http.StatusInternalServerError, release.Fail[any](findFailedPrefix+err.Error()))
	}
	if !found.OK {
		return h.respond(http.StatusBadRequest, found)
	}

	approval := h.release.ApprovePullRequest(ctx, found.Data, payload.RepositoryName, payload.RepositoryOwner, payload.TicketKey, payload.TicketStatus)
	if !approval.OK {
		return h.respond(http.StatusBadRequest, approval)
	}

	merge, err := h.release.MergePullRequest(ctx, found.Data, payload.RepositoryName, payload.RepositoryOwner)
	if err != nil {
		logger.Error("merge failed", zap.Int("pr_number", found.Data), zap.Error(err))
		return h.respond(http.StatusInternalServerError, release.Fail[any](mergeFailedPrefix+err.Error()))
	}

	logger.Info("ticket status change handled",
		zap.Int("pr_number", found.Data),
		zap.Bool("merged", merge.OK),
		zap.String("message", merge.Message),
	)
	return h.respond(http.StatusOK, merge)
}

func (h *Handler) respond(statusCode int, result any) Response {
	body, err := json.Marshal(result)
	if err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		statusCode = http.StatusInternalServerError
		body, _ = json.Marshal(release.Fail[any]("failed to encode response"))
	}

	return Response{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		Body:       string(body),
	}
}

// Webhook handles POST /webhook. A body that is not valid JSON or is larger
// than maxBodyBytes is treated like a payload with missing fields.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	var payload types.WebhookPayload
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		h.logger.Warn("invalid webhook body", zap.Error(err))
		h.write(w, h.respond(http.StatusBadRequest, release.Fail[any](missingDataMessage)))
		return
	}

	h.write(w, h.Handle(r.Context(), payload))
}

// JiraWebhook handles POST /webhook/jira with a native Jira issue event. The
// github_repo_owner and github_repo_name query parameters are used when the
// issue does not name a repository. Events other than issue updates are
// acknowledged with 200 and do not touch the pull request.
func (h *Handler) JiraWebhook(w http.ResponseWriter, r *http.Request) {
	fallback := types.RepositoryInfo{
		Owner: r.URL.Query().Get("github_repo_owner"),
		Name:  r.URL.Query().Get("github_repo_name"),
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := h.decoder.Decode(body, fallback)
	if errors.Is(err, jira.ErrUnsupportedEvent) {
		h.logger.Info("ignoring jira event", zap.Error(err))
		h.write(w, h.respond(http.StatusOK, release.Fail[any](fmt.Sprintf("Ignored: %v", err))))
		return
	}
	if err != nil {
		h.logger.Warn("invalid jira event", zap.Error(err))
		h.write(w, h.respond(http.StatusBadRequest, release.Fail[any](missingDataMessage)))
		return
	}

	h.write(w, h.Handle(r.Context(), payload))
}

func (h *Handler) write(w http.ResponseWriter, resp Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write([]byte(resp.Body)); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}

// RegisterRoutes registers the webhook routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook", h.Webhook)
	r.Post("/webhook/jira", h.JiraWebhook)
}

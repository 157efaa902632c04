package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clintrovert/actionagent/pkg/types"
)

// Runner executes one automation run per message.
type Runner interface {
	Run(ctx context.Context, msg *types.IncomingMessage) *types.AutomationResult
}

// TicketDirectory looks up existing tickets.
type TicketDirectory interface {
	GetTicket(ctx context.Context, ticketKey string) (*types.TicketInfo, error)
	SearchTickets(ctx context.Context, jql string) ([]types.TicketInfo, error)
}

// Handler handles REST API requests
type Handler struct {
	runner  Runner
	tickets TicketDirectory
	logger  *zap.Logger
}

// NewHandler creates a new REST handler
func NewHandler(runner Runner, tickets TicketDirectory, logger *zap.Logger) *Handler {
	return &Handler{
		runner:  runner,
		tickets: tickets,
		logger:  logger,
	}
}

// TriggerAutomationRequest represents a manual automation trigger. The body
// stands in for a Slack message, so the same classification and sequencing
// apply.
type TriggerAutomationRequest struct {
	Text      string `json:"text"`
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
}

// TriggerAutomation handles POST /automations
func (h *Handler) TriggerAutomation(w http.ResponseWriter, r *http.Request) {
	var req TriggerAutomationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	msg := &types.IncomingMessage{
		Text:      req.Text,
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
	}

	result := h.runner.Run(r.Context(), msg)

	status := http.StatusOK
	if result.Aborted {
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(result)
}

// GetTicket handles GET /tickets/{key}
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	info, err := h.tickets.GetTicket(r.Context(), key)
	if err != nil {
		h.logger.Error("failed to get ticket", zap.String("key", key), zap.Error(err))
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// SearchTickets handles GET /tickets?jql=...
func (h *Handler) SearchTickets(w http.ResponseWriter, r *http.Request) {
	jql := r.URL.Query().Get("jql")
	if jql == "" {
		http.Error(w, "jql query parameter is required", http.StatusBadRequest)
		return
	}

	infos, err := h.tickets.SearchTickets(r.Context(), jql)
	if err != nil {
		h.logger.Error("failed to search tickets", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

// RegisterRoutes registers REST API routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/automations", h.TriggerAutomation)
	r.Get("/tickets", h.SearchTickets)
	r.Get("/tickets/{key}", h.GetTicket)
}

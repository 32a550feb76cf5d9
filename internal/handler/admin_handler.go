package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"legends-bot/internal/container"
	"legends-bot/internal/domain"
	"legends-bot/internal/middleware"
	apperrors "legends-bot/pkg/errors"
)

const adminTokenTTL = 12 * time.Hour

// AdminHandler handles the organizer API
type AdminHandler struct {
	container *container.Container
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(container *container.Container) *AdminHandler {
	return &AdminHandler{
		container: container,
	}
}

// AuthRequest represents the admin login payload
type AuthRequest struct {
	UserID int64  `json:"user_id"`
	APIKey string `json:"api_key"`
}

// AuthResponse carries the issued bearer token
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Auth handles POST /api/admin/auth
func (h *AdminHandler) Auth(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()
	cfg := h.container.GetConfig()

	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	if cfg.AdminAPIKey == "" || req.APIKey != cfg.AdminAPIKey {
		h.writeErrorResponse(w, apperrors.NewAuthenticationError("Invalid API key"))
		return
	}

	isAdmin, err := h.container.GetRegistrationService().IsAdmin(r.Context(), domain.UserID(req.UserID))
	if err != nil {
		h.writeErrorResponse(w, apperrors.NewInternalError("Failed to check admin status", err))
		return
	}
	if !isAdmin {
		h.writeErrorResponse(w, apperrors.NewAuthorizationError("User is not an organizer"))
		return
	}

	token, err := middleware.IssueAdminToken(domain.UserID(req.UserID), cfg.AdminJWTSecret, adminTokenTTL)
	if err != nil {
		h.writeErrorResponse(w, apperrors.NewInternalError("Failed to issue token", err))
		return
	}

	log.WithField("user_id", req.UserID).Info("Admin token issued")

	h.writeJSON(w, http.StatusOK, AuthResponse{
		Token:     token,
		ExpiresIn: int64(adminTokenTTL.Seconds()),
	})
}

// TeamResponse represents one team in the organizer listing
type TeamResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CaptainID int64            `json:"captain_id"`
	Size      int              `json:"size"`
	Solo      bool             `json:"solo"`
	Completed bool             `json:"completed"`
	Members   []MemberResponse `json:"members"`
}

// MemberResponse represents one participant inside a team listing
type MemberResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Group    string `json:"group"`
}

// ListTeams handles GET /api/admin/teams
func (h *AdminHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teamService := h.container.GetTeamService()

	teams, err := teamService.ListTeams(r.Context())
	if err != nil {
		h.writeErrorResponse(w, apperrors.NewInternalError("Failed to list teams", err))
		return
	}

	response := make([]TeamResponse, 0, len(teams))
	for _, team := range teams {
		detailed, err := teamService.GetTeamWithMembers(r.Context(), team.ID)
		if err != nil {
			h.writeErrorResponse(w, apperrors.NewInternalError("Failed to load team members", err))
			return
		}

		members := make([]MemberResponse, 0, len(detailed.Members))
		for _, m := range detailed.Members {
			members = append(members, MemberResponse{
				ID:       int64(m.ID),
				Username: string(m.Username),
				FullName: string(m.FullName),
				Group:    string(m.Group),
			})
		}

		response = append(response, TeamResponse{
			ID:        string(team.ID),
			Name:      string(team.Name),
			CaptainID: int64(detailed.CaptainID),
			Size:      team.Size,
			Solo:      team.Solo,
			Completed: team.Completed,
			Members:   members,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"teams": response})
}

// SlotResponse represents one slot in the organizer listing
type SlotResponse struct {
	ID              string    `json:"id"`
	Start           time.Time `json:"start"`
	Site            string    `json:"site"`
	Capacity        int       `json:"capacity"`
	AvailablePlaces int       `json:"available_places"`
}

// ListSlots handles GET /api/admin/slots
func (h *AdminHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.container.GetSlotService().GetAll(r.Context())
	if err != nil {
		h.writeErrorResponse(w, apperrors.NewInternalError("Failed to list slots", err))
		return
	}

	response := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		response = append(response, SlotResponse{
			ID:              string(s.ID),
			Start:           s.Start,
			Site:            string(s.Site),
			Capacity:        int(s.Capacity),
			AvailablePlaces: int(s.AvailablePlaces),
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"slots": response})
}

// MediaRequest represents the media registration payload
type MediaRequest struct {
	ID     string `json:"id"`
	FileID string `json:"file_id"`
	Type   string `json:"type"`
}

// RegisterMedia handles POST /api/admin/media
func (h *AdminHandler) RegisterMedia(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	var req MediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	if req.FileID == "" {
		h.writeErrorResponse(w, apperrors.NewValidationError("file_id is required", nil))
		return
	}

	mediaType := domain.MediaType(req.Type)
	if mediaType != domain.MediaImage && mediaType != domain.MediaVideoNote {
		h.writeErrorResponse(w, apperrors.NewValidationError("Unknown media type", map[string]interface{}{
			"type": req.Type,
		}))
		return
	}

	media, err := h.container.GetMediaService().Register(r.Context(), req.ID, req.FileID, mediaType)
	if err != nil {
		var invalid *domain.ErrInvalidValue
		if errors.As(err, &invalid) {
			h.writeErrorResponse(w, apperrors.NewValidationError(invalid.Message, nil))
			return
		}
		h.writeErrorResponse(w, apperrors.NewInternalError("Failed to register media", err))
		return
	}

	adminID, _ := middleware.AdminIDFromContext(r.Context())
	log.WithFields(map[string]interface{}{
		"media_id": string(media.ID),
		"admin_id": int64(adminID),
	}).Info("Media registered")

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      string(media.ID),
		"file_id": string(media.FileID),
		"type":    string(media.Type),
	})
}

func (h *AdminHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.container.GetLogger().WithError(err).Error("Failed to encode response")
	}
}

// writeErrorResponse writes an error response to the client
func (h *AdminHandler) writeErrorResponse(w http.ResponseWriter, appErr *apperrors.AppError) {
	log := h.container.GetLogger()
	log.WithError(appErr).Error("Request error")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	response := map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"type":    string(appErr.Type),
			"message": appErr.Message,
		},
	}
	if appErr.Details != nil {
		response["error"].(map[string]interface{})["details"] = appErr.Details
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.WithError(err).Error("Failed to encode error response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

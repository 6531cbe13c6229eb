package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"dailyQuestAPI/internal/submission"
	"dailyQuestAPI/middleware"
	"dailyQuestAPI/services"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
	feedService       *services.FeedService
}

func NewSubmissionHandler(submissionService *services.SubmissionService, feedService *services.FeedService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		feedService:       feedService,
	}
}

// Submit accepts a JSON body with userId, base64 imageData, latitude,
// longitude and note. Image uploads can be slow on mobile networks, so this
// handler gets a longer deadline than the read endpoints.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req submission.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// A verified Clerk session stands in for an omitted userId.
	if req.UserID == "" {
		if clerkID, ok := middleware.GetClerkID(ctx); ok {
			req.UserID = clerkID
		}
	}

	sub, err := h.submissionService.Submit(ctx, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, sub)
}

func (h *SubmissionHandler) GetUserSubmissionHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'userId' is required")
		return
	}

	history, err := h.feedService.UserSubmissionHistory(ctx, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}

func (h *SubmissionHandler) HasCompletedToday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'userId' is required")
		return
	}

	completed, err := h.feedService.HasCompletedToday(ctx, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	message := "Quest not completed yet"
	if completed {
		message = "Quest completed today"
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"completed": completed,
		"message":   message,
	})
}

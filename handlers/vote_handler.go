package handlers

import (
	"context"
	"net/http"
	"time"

	"dailyQuestAPI/services"
)

type VoteHandler struct {
	voteService *services.VoteService
}

func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

func (h *VoteHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, h.voteService.Upvote, "Upvote recorded")
}

func (h *VoteHandler) Downvote(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, h.voteService.Downvote, "Downvote recorded")
}

func (h *VoteHandler) vote(w http.ResponseWriter, r *http.Request, apply func(context.Context, string, string) error, confirmation string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	postID := r.URL.Query().Get("postId")
	if postID == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'postId' is required")
		return
	}
	// userId identifies the voter for the logs; the owner credited for the
	// vote always comes from the submission itself.
	callerID := r.URL.Query().Get("userId")

	if err := apply(ctx, postID, callerID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": confirmation,
		"postId":  postID,
	})
}

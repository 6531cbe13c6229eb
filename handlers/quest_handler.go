package handlers

import (
	"context"
	"net/http"
	"time"

	"dailyQuestAPI/services"
)

type QuestHandler struct {
	feedService *services.FeedService
}

func NewQuestHandler(feedService *services.FeedService) *QuestHandler {
	return &QuestHandler{
		feedService: feedService,
	}
}

func (h *QuestHandler) GetTodaysQuest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q, err := h.feedService.TodaysQuest(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, q)
}

func (h *QuestHandler) GetTodaysFeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	feed, err := h.feedService.TodaysFeed(ctx)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if len(feed) == 0 {
		respondWithError(w, http.StatusNotFound, "No submissions yet today")
		return
	}

	respondWithJSON(w, http.StatusOK, feed)
}

func (h *QuestHandler) GetVotesLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.leaderboard(w, r, "votes")
}

func (h *QuestHandler) GetStreakLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.leaderboard(w, r, "streak")
}

func (h *QuestHandler) leaderboard(w http.ResponseWriter, r *http.Request, sortKey string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.feedService.Leaderboard(ctx, sortKey)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

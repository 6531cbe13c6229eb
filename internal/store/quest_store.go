package store

import (
	"context"
	"time"

	"dailyQuestAPI/internal/quest"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type QuestStore struct {
	client *firestore.Client
}

func NewQuestStore(client *firestore.Client) *QuestStore {
	return &QuestStore{client: client}
}

// InWindow returns the quests with startTime in [start, end), ordered by
// startTime ascending so callers get a deterministic first quest when the
// content pipeline scheduled more than one.
func (s *QuestStore) InWindow(ctx context.Context, start, end time.Time) ([]quest.Quest, error) {
	iter := s.client.Collection(questsCollection).
		Where("startTime", ">=", start).
		Where("startTime", "<", end).
		OrderBy("startTime", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var quests []quest.Quest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("query quests", "window", err)
		}
		var q quest.Quest
		if err := doc.DataTo(&q); err != nil {
			return nil, mapErr("decode quest", doc.Ref.ID, err)
		}
		quests = append(quests, q)
	}
	return quests, nil
}

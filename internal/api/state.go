package api

import (
	"fmt"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"go-campaigner/pkg/logger"
)

// campaignsCache maps campaign ids to their actors. It is bounded; the least
// recently used campaign is evicted and its actor stopped.
type campaignsCache struct {
	ids *lru.Cache[uuid.UUID, *actor.PID]
}

func newCampaignsCache(root *actor.RootContext, capacity int) (*campaignsCache, error) {
	ids, err := lru.NewWithEvict(capacity, func(id uuid.UUID, pid *actor.PID) {
		log.Debug().Str(logger.CampaignIDField, id.String()).Msg("stopping campaign actor")
		root.Stop(pid)
	})
	if err != nil {
		return nil, fmt.Errorf("campaigns cache: %w", err)
	}
	return &campaignsCache{ids: ids}, nil
}

func (s *campaignsCache) add(id uuid.UUID, pid *actor.PID) {
	s.ids.Add(id, pid)
}

func (s *campaignsCache) get(id uuid.UUID) (*actor.PID, bool) {
	return s.ids.Get(id)
}

func (s *campaignsCache) remove(id uuid.UUID) {
	s.ids.Remove(id)
}

// list returns the known campaigns, newest first, without touching recency.
func (s *campaignsCache) list() []uuid.UUID {
	keys := s.ids.Keys()
	out := make([]uuid.UUID, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		out = append(out, keys[i])
	}
	return out
}

func (s *campaignsCache) peek(id uuid.UUID) (*actor.PID, bool) {
	return s.ids.Peek(id)
}

func (s *campaignsCache) purge() {
	s.ids.Purge()
}

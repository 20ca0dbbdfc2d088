package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/mudasir256/helplineapp/internal/domain"
)

// SignalService fans adoption events out over redis pub/sub. Every API
// instance subscribes, so websocket clients see adoptions made anywhere.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event domain.Event) error {
	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.rdb.Publish(ctx, domain.AdoptionEventChannel, jsonstr).Err()
}

// Subscribe returns a channel of adoption events. The channel closes when ctx
// is cancelled.
func (s *SignalService) Subscribe(ctx context.Context) <-chan domain.Event {
	sub := s.rdb.Subscribe(ctx, domain.AdoptionEventChannel)
	out := make(chan domain.Event)

	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var event domain.Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/traveltrack/traveltrack/internal/jobs"
	"github.com/traveltrack/traveltrack/internal/queue/redisclient"
)

const DefaultKey = "traveltrack:jobs:email"

var ErrEmpty = errors.New("queue is empty")

// Queue is a redis list carrying serialized jobs. The API enqueues, the
// worker blocks on Dequeue.
type Queue struct {
	client *redisclient.Client
	key    string
}

func New(client *redisclient.Client, key string) *Queue {
	if key == "" {
		key = DefaultKey
	}

	return &Queue{
		client: client,
		key:    key,
	}
}

func (q *Queue) Enqueue(ctx context.Context, j jobs.Job) error {
	b, err := json.Marshal(j)

	if err != nil {
		return err
	}

	return q.client.Raw().LPush(ctx, q.key, b).Err()
}

// Dequeue blocks for up to wait and returns the oldest job. ErrEmpty means
// the timeout elapsed with nothing to do.
func (q *Queue) Dequeue(ctx context.Context, wait time.Duration) (jobs.Job, error) {
	res, err := q.client.Raw().BRPop(ctx, wait, q.key).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return jobs.Job{}, ErrEmpty
		}

		return jobs.Job{}, err
	}

	// BRPop returns [key, value]
	if len(res) != 2 {
		return jobs.Job{}, ErrEmpty
	}

	var j jobs.Job

	if err := json.Unmarshal([]byte(res[1]), &j); err != nil {
		return jobs.Job{}, err
	}

	return j, nil
}

func (q *Queue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx)
}

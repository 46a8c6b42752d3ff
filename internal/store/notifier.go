package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// channelPrefix namespaces the pub/sub channels; the collection name is
// appended, e.g. "herba:changed:appointments".
const channelPrefix = "herba:changed:"

// Notifier bridges collection change events between instances over Redis
// pub/sub. Each instance tags its messages with a random origin ID and
// ignores its own, because the local store already fanned the change out
// before publishing.
type Notifier struct {
	rdb    *redis.Client
	origin string
	log    *logging.Logger
	cancel context.CancelFunc
}

// NewNotifier wraps the given Redis client. The client must be non-nil;
// callers that failed to connect to Redis should pass a nil *Notifier to the
// store instead.
func NewNotifier(rdb *redis.Client, log *logging.Logger) *Notifier {
	if rdb == nil {
		panic("store: nil redis client for notifier")
	}
	if log == nil {
		log = logging.Default()
	}
	return &Notifier{rdb: rdb, origin: uuid.NewString(), log: log}
}

// Publish announces a mutation of the collection. Failures are logged and
// swallowed; a missed notification only delays remote views until the next
// mutation.
func (n *Notifier) Publish(ctx context.Context, col Collection) {
	if err := n.rdb.Publish(ctx, channelPrefix+string(col), n.origin).Err(); err != nil {
		n.log.Warn("notifier: publish failed", "collection", string(col), "error", err)
	}
}

// Listen starts a background goroutine that invokes fn with the collection
// name for every change announced by another instance. Call Close to stop
// it.
func (n *Notifier) Listen(fn func(Collection)) {
	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	sub := n.rdb.PSubscribe(ctx, channelPrefix+"*")
	go func() {
		defer func() { _ = sub.Close() }()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg.Payload == n.origin {
					continue
				}
				col := Collection(strings.TrimPrefix(msg.Channel, channelPrefix))
				if !col.Valid() {
					n.log.Warn("notifier: message on unknown channel", "channel", msg.Channel)
					continue
				}
				fn(col)
			}
		}
	}()
}

// Close stops the listener goroutine, if one was started.
func (n *Notifier) Close() {
	if n.cancel != nil {
		n.cancel()
	}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ellucho77/HerbaBeauty/internal/model"
	"github.com/ellucho77/HerbaBeauty/internal/repository"
	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// snapshotTimeout bounds the background re-read that follows a mutation.
const snapshotTimeout = 5 * time.Second

// SQLStore implements Store on top of the MySQL repositories. Mutations go
// straight to the database; after each successful mutation the affected
// collection is re-read and the fresh snapshot is fanned out to every local
// subscriber. When a Notifier is attached the mutation is also announced on
// Redis so other instances re-read and fan out to their own subscribers.
//
// All subscriber callbacks run on one dispatch goroutine, serialized, so a
// callback never observes two renders interleaving.
type SQLStore struct {
	appointments *repository.AppointmentRepo
	history      *repository.HistoryRepo
	notifier     *Notifier
	log          *logging.Logger

	mu     sync.Mutex
	subs   map[Collection]map[uint64]func([]model.Appointment)
	nextID uint64

	changes chan Collection
	done    chan struct{}
	closed  sync.Once
}

// NewSQLStore builds a store over the two repositories. notifier may be nil,
// in which case change fan-out stays instance-local.
func NewSQLStore(appts *repository.AppointmentRepo, hist *repository.HistoryRepo, notifier *Notifier, log *logging.Logger) *SQLStore {
	if appts == nil || hist == nil {
		panic("store: nil repository")
	}
	if log == nil {
		log = logging.Default()
	}
	s := &SQLStore{
		appointments: appts,
		history:      hist,
		notifier:     notifier,
		log:          log,
		subs: map[Collection]map[uint64]func([]model.Appointment){
			Active:  {},
			History: {},
		},
		changes: make(chan Collection, 64),
		done:    make(chan struct{}),
	}
	go s.dispatch()
	if notifier != nil {
		notifier.Listen(s.enqueue)
	}
	return s
}

// Create inserts a record and schedules a snapshot fan-out.
func (s *SQLStore) Create(ctx context.Context, col Collection, a model.Appointment) (uint64, error) {
	var (
		id  uint64
		err error
	)
	switch col {
	case Active:
		id, err = s.appointments.Create(ctx, a)
	case History:
		id, err = s.history.Create(ctx, a)
	default:
		return 0, fmt.Errorf("store: unknown collection %q", col)
	}
	if err != nil {
		return 0, err
	}
	s.changed(ctx, col)
	return id, nil
}

// ReadAll returns the current snapshot of the collection.
func (s *SQLStore) ReadAll(ctx context.Context, col Collection) ([]model.Appointment, error) {
	switch col {
	case Active:
		return s.appointments.ListAll(ctx)
	case History:
		return s.history.ListAll(ctx)
	default:
		return nil, fmt.Errorf("store: unknown collection %q", col)
	}
}

// DeleteByID removes a record and schedules a snapshot fan-out.
func (s *SQLStore) DeleteByID(ctx context.Context, col Collection, id uint64) error {
	var err error
	switch col {
	case Active:
		err = s.appointments.DeleteByID(ctx, id)
	case History:
		err = s.history.DeleteByID(ctx, id)
	default:
		return fmt.Errorf("store: unknown collection %q", col)
	}
	if err != nil {
		return err
	}
	s.changed(ctx, col)
	return nil
}

// Subscribe registers fn for snapshot deliveries and fires it once with the
// current snapshot before returning.
func (s *SQLStore) Subscribe(col Collection, fn func([]model.Appointment)) (*Subscription, error) {
	if fn == nil {
		return nil, errors.New("store: nil subscriber callback")
	}
	if !col.Valid() {
		return nil, fmt.Errorf("store: unknown collection %q", col)
	}
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	snap, err := s.ReadAll(ctx, col)
	cancel()
	if err != nil {
		return nil, err
	}
	fn(snap)

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[col][id] = fn
	s.mu.Unlock()

	return &Subscription{cancel: func() {
		s.mu.Lock()
		delete(s.subs[col], id)
		s.mu.Unlock()
	}}, nil
}

// Close stops the dispatch goroutine. Pending snapshot deliveries are
// dropped.
func (s *SQLStore) Close() {
	s.closed.Do(func() { close(s.done) })
}

// changed queues a local fan-out and announces the mutation to other
// instances.
func (s *SQLStore) changed(ctx context.Context, col Collection) {
	s.enqueue(col)
	if s.notifier != nil {
		s.notifier.Publish(ctx, col)
	}
}

// enqueue schedules a fan-out without re-publishing; it is also the entry
// point for remote change notifications.
func (s *SQLStore) enqueue(col Collection) {
	select {
	case s.changes <- col:
	case <-s.done:
	}
}

func (s *SQLStore) dispatch() {
	for {
		select {
		case <-s.done:
			return
		case col := <-s.changes:
			s.deliver(col)
		}
	}
}

// deliver re-reads the collection and hands each subscriber its own copy of
// the snapshot. A failed read drops this delivery; the next mutation will
// trigger another one.
func (s *SQLStore) deliver(col Collection) {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	snap, err := s.ReadAll(ctx, col)
	cancel()
	if err != nil {
		s.log.Error("store: snapshot read failed", "collection", string(col), "error", err)
		return
	}
	s.mu.Lock()
	fns := make([]func([]model.Appointment), 0, len(s.subs[col]))
	for _, fn := range s.subs[col] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		cp := make([]model.Appointment, len(snap))
		copy(cp, snap)
		fn(cp)
	}
}

package services

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"localexplorer/internal/models/db_models"
	"localexplorer/internal/models/response_models"
	"localexplorer/internal/repositories"
	"localexplorer/pkg/utils"
)

// Snapshot is one delivered state of the derived place list. Consumers can
// tell loading, loaded-with-N-results and errored apart.
type Snapshot struct {
	Places  []response_models.Place
	Loading bool
	Err     error
}

type QueryServiceInterface interface {
	SetSearchQuery(text string)
	SetCategory(name string) error
	SearchQuery() string
	Category() string

	// Subscribe attaches a live consumer: the current snapshot arrives
	// immediately, then a fresh one whenever the store, the search text or
	// the category changes. Cancelling ctx detaches and closes the channel.
	// The first subscriber triggers the one-time cache seed.
	Subscribe(ctx context.Context) <-chan Snapshot

	// Retry re-runs the seed, the explicit retry affordance for a failed
	// bootstrap. No automatic retry happens anywhere else.
	Retry(ctx context.Context) error
}

// QueryService recomputes the derived list inside a single update loop.
// Three inputs feed it: store change signals, the search text and the
// category selector. Setter events and store signals collapse into one
// 1-slot wake-up, so bursts coalesce and only the newest state is delivered.
type QueryService struct {
	repo   repositories.PlaceRepository
	seeder SyncServiceInterface
	logger *zap.Logger

	mu       sync.Mutex
	search   string
	category string
	loading  bool
	lastErr  error
	latest   Snapshot
	subs     map[int]chan Snapshot
	nextSub  int

	start     sync.Once
	recompute chan struct{}
}

func NewQueryService(repo repositories.PlaceRepository, syncService SyncServiceInterface, logger *zap.Logger) QueryServiceInterface {
	return &QueryService{
		repo:      repo,
		seeder:    syncService,
		logger:    logger,
		category:  db_models.CategoryAll,
		loading:   true,
		latest:    Snapshot{Loading: true},
		subs:      make(map[int]chan Snapshot),
		recompute: make(chan struct{}, 1),
	}
}

func (q *QueryService) SetSearchQuery(text string) {
	q.mu.Lock()
	q.search = text
	q.mu.Unlock()
	q.wake()
}

func (q *QueryService) SetCategory(name string) error {
	if !db_models.IsValidCategoryFilter(name) {
		return utils.ErrInvalidCategory
	}
	q.mu.Lock()
	q.category = name
	q.mu.Unlock()
	q.wake()
	return nil
}

func (q *QueryService) SearchQuery() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.search
}

func (q *QueryService) Category() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.category
}

func (q *QueryService) Subscribe(ctx context.Context) <-chan Snapshot {
	q.ensureStarted()

	ch := make(chan Snapshot, 1)
	q.mu.Lock()
	id := q.nextSub
	q.nextSub++
	q.subs[id] = ch
	ch <- q.latest
	q.mu.Unlock()

	go func() {
		<-ctx.Done()
		q.mu.Lock()
		defer q.mu.Unlock()
		if sub, ok := q.subs[id]; ok {
			delete(q.subs, id)
			close(sub)
		}
	}()

	return ch
}

func (q *QueryService) Retry(ctx context.Context) error {
	err := q.seeder.SeedIfEmpty(ctx)
	q.mu.Lock()
	q.lastErr = err
	q.loading = false
	q.mu.Unlock()
	q.wake()
	return err
}

func (q *QueryService) ensureStarted() {
	q.start.Do(func() {
		go q.run()
		go func() {
			err := q.seeder.SeedIfEmpty(context.Background())
			if err != nil {
				q.logger.Error("initial seed failed", zap.Error(err))
			}
			q.mu.Lock()
			q.lastErr = err
			q.loading = false
			q.mu.Unlock()
			q.wake()
		}()
	})
}

func (q *QueryService) wake() {
	select {
	case q.recompute <- struct{}{}:
	default:
	}
}

// run is the single writer of latest. Serializing every recompute here keeps
// each subscriber's snapshot sequence monotonic.
func (q *QueryService) run() {
	ctx := context.Background()
	changes := q.repo.Changes(ctx)

	q.publish(q.compute(ctx))
	for {
		select {
		case <-q.recompute:
		case _, ok := <-changes:
			if !ok {
				return
			}
		}
		q.publish(q.compute(ctx))
	}
}

func (q *QueryService) compute(ctx context.Context) Snapshot {
	q.mu.Lock()
	search := q.search
	category := q.category
	loading := q.loading
	lastErr := q.lastErr
	q.mu.Unlock()

	places, err := q.repo.AllOrdered(ctx)
	if err != nil {
		return Snapshot{Err: err}
	}

	filtered := make([]response_models.Place, 0, len(places))
	for _, p := range places {
		if matchesSearch(p, search) && matchesCategory(p, category) {
			filtered = append(filtered, toResponsePlace(p))
		}
	}
	return Snapshot{Places: filtered, Loading: loading, Err: lastErr}
}

func (q *QueryService) publish(s Snapshot) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.latest = s
	for _, ch := range q.subs {
		select {
		case ch <- s:
		default:
			// replace the unread snapshot, never queue behind it
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}

func matchesSearch(p db_models.Place, query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), needle)
}

func matchesCategory(p db_models.Place, category string) bool {
	return category == db_models.CategoryAll || p.Category == category
}

func toResponsePlace(p db_models.Place) response_models.Place {
	return response_models.Place{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		IsFavorite:  p.IsFavorite,
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"roomboard/infras/otel"
	"roomboard/shared/constant"
	"roomboard/shared/dto"
	"slices"
	"sync"
	"sync/atomic"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Filter selects records; a nil filter matches everything.
type Filter[T any] func(T) bool

func (f Filter[T]) match(model T) bool {
	return f == nil || f(model)
}

// Repository is an in-memory, insertion-ordered table keyed by a string primary key.
// It is safe for concurrent use; callers that need check-then-write atomicity across
// several calls must hold their own lock.
type Repository[T any] struct {
	mu      sync.RWMutex
	otel    otel.Otel
	entitas string
	key     func(T) string
	rows    []T
	index   map[string]int

	revision atomic.Uint64
}

func NewRepository[T any](entitasName string, key func(T) string, otl otel.Otel) *Repository[T] {
	return &Repository[T]{
		otel:    otl,
		entitas: entitasName,
		key:     key,
		index:   map[string]int{},
	}
}

func (repo *Repository[T]) spanName(operation string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, operation)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.InsertBulk(ctx, []T{model})
}

// InsertBulk appends all models or none of them.
func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) (err error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("InsertBulk"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	seen := make(map[string]struct{}, len(models))
	for _, model := range models {
		id := repo.key(model)
		if _, ok := repo.index[id]; ok {
			return fmt.Errorf("failed to insert data (%s) %q: %w", repo.entitas, id, ErrDuplicateKey)
		}

		if _, ok := seen[id]; ok {
			return fmt.Errorf("failed to insert data (%s) %q: %w", repo.entitas, id, ErrDuplicateKey)
		}

		seen[id] = struct{}{}
	}

	for _, model := range models {
		repo.index[repo.key(model)] = len(repo.rows)
		repo.rows = append(repo.rows, model)
	}

	if len(models) > 0 {
		repo.revision.Add(1)
	}

	scope.SetAttribute("rows", len(models))

	return nil
}

func (repo *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Get"))
	defer scope.End()

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var zero T

	idx, ok := repo.index[id]
	if !ok {
		return zero, fmt.Errorf("%s %q: %w", repo.entitas, id, ErrNotFound)
	}

	return repo.rows[idx], nil
}

// Find returns every matching record in insertion order.
func (repo *Repository[T]) Find(ctx context.Context, filter Filter[T]) []T {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Find"))
	defer scope.End()

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	res := make([]T, 0, len(repo.rows))
	for _, row := range repo.rows {
		if filter.match(row) {
			res = append(res, row)
		}
	}

	return res
}

// GetAll returns one page of matching records. DESC (the default) lists newest inserts first.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter Filter[T]) []T {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("GetAll"))
	defer scope.End()

	rows := repo.Find(ctx, filter)
	if !params.Ascending() {
		slices.Reverse(rows)
	}

	return Page(rows, params)
}

// Page cuts the requested page out of rows. A non-positive limit returns rows unchanged.
func Page[T any](rows []T, params dto.QueryParams) []T {
	if params.Limit <= 0 {
		return rows
	}

	start := params.Offset()
	if start >= len(rows) {
		return []T{}
	}

	return rows[start:min(start+params.Limit, len(rows))]
}

func (repo *Repository[T]) Exist(ctx context.Context, filter Filter[T]) bool {
	return repo.Count(ctx, filter) > 0
}

func (repo *Repository[T]) Count(ctx context.Context, filter Filter[T]) int {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Count"))
	defer scope.End()

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	count := 0
	for _, row := range repo.rows {
		if filter.match(row) {
			count++
		}
	}

	return count
}

// Update applies fn to the stored record and returns the new value.
func (repo *Repository[T]) Update(ctx context.Context, id string, fn func(*T)) (T, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.spanName("Update"))
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	var zero T

	idx, ok := repo.index[id]
	if !ok {
		err := fmt.Errorf("%s %q: %w", repo.entitas, id, ErrNotFound)
		scope.TraceError(err)

		return zero, err
	}

	fn(&repo.rows[idx])
	repo.revision.Add(1)

	return repo.rows[idx], nil
}

// Revision increases on every successful write.
func (repo *Repository[T]) Revision() uint64 {
	return repo.revision.Load()
}

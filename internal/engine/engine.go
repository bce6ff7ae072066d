// Package engine enforces the restaurant's cross-entity rules: menu pricing, table
// occupancy, table grouping, and the order lifecycle.
//
// Every operation re-reads the records it touches through the store, checks its
// rules, and writes the result back inside one storage transaction. Failures are
// *apperr.Error values.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lxxjn0/jwp-refactoring/internal/apperr"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

// Engine bundles the per-entity services over one store.
type Engine struct {
	Products    *ProductService
	MenuGroups  *MenuGroupService
	Menus       *MenuService
	Tables      *TableService
	TableGroups *TableGroupService
	Orders      *OrderService
}

type options struct {
	now          func() time.Time
	strictStatus bool
}

// Option configures an Engine.
type Option func(*options)

// WithClock sets the time source for order and group timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithStrictStatusSequencing restricts order status changes to single forward
// steps: COOKING -> MEAL -> COMPLETION.
func WithStrictStatusSequencing(strict bool) Option {
	return func(o *options) { o.strictStatus = strict }
}

// New creates an Engine backed by store.
func New(store storage.Store, opts ...Option) *Engine {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		Products:    &ProductService{store: store},
		MenuGroups:  &MenuGroupService{store: store},
		Menus:       &MenuService{store: store},
		Tables:      &TableService{store: store},
		TableGroups: &TableGroupService{store: store, now: o.now},
		Orders:      &OrderService{store: store, now: o.now, strict: o.strictStatus},
	}
}

// lookup calls get and turns storage.ErrNotFound into a ReferenceNotFound failure.
func lookup[T any](ctx context.Context, get func(context.Context, string) (T, error), entity, id string) (T, error) {
	v, err := get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		var zero T
		return zero, apperr.NotFound(entity, id)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %s %s: %w", entity, id, err)
	}
	return v, nil
}

// settle classifies an error returned from a transaction. Engine failures pass
// through; a lost write race becomes a Conflict failure.
func settle(err error) error {
	if err == nil || apperr.KindOf(err) != "" {
		return err
	}
	if errors.Is(err, storage.ErrConflict) {
		return apperr.Wrap(err, apperr.KindConflict, "concurrent update, retry the request")
	}
	return err
}

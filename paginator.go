package relaypager

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Paginator serves cursor-paginated pages of a Store.
type Paginator[T any] struct {
	store    Store[T]
	key      KeyFunc[T]
	maxLimit int
	order    Direction
	columns  Columns
	logger   logrus.FieldLogger
}

// NewPaginator creates a paginator over store with newest-first ordering on
// DefaultColumns and a MaxLimit ceiling.
func NewPaginator[T any](store Store[T], key KeyFunc[T]) *Paginator[T] {
	return &Paginator[T]{
		store:    store,
		key:      key,
		maxLimit: MaxLimit,
		order:    DirectionDESC,
		columns:  DefaultColumns,
		logger:   logrus.StandardLogger(),
	}
}

// WithMaxLimit sets the hard ceiling for the page size. Non-positive values
// restore MaxLimit.
func (p *Paginator[T]) WithMaxLimit(maxLimit int) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	p.maxLimit = lo.Ternary(maxLimit > 0, maxLimit, MaxLimit)

	return p
}

// WithOrder sets the canonical order of the collection. Edges are always
// emitted in this order, whatever the traversal direction.
func (p *Paginator[T]) WithOrder(order Direction) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	p.order = order

	return p
}

// WithColumns sets the sort key column names.
func (p *Paginator[T]) WithColumns(columns Columns) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	p.columns = columns

	return p
}

// WithLogger sets the logger. Nil restores the logrus standard logger.
func (p *Paginator[T]) WithLogger(logger logrus.FieldLogger) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}
	p.logger = logger

	return p
}

// GetMaxLimit returns the page size ceiling.
func (p *Paginator[T]) GetMaxLimit() int {
	if p == nil {
		return 0
	}

	return p.maxLimit
}

// GetOrder returns the canonical order.
func (p *Paginator[T]) GetOrder() Direction {
	if p == nil {
		return ""
	}

	return p.order
}

func (p *Paginator[T]) validate() error {
	if p == nil {
		return fmt.Errorf("paginator is nil")
	}

	if p.store == nil {
		return fmt.Errorf("record store is nil")
	}

	if p.key == nil {
		return fmt.Errorf("key function is nil")
	}

	if !p.order.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", p.order)
	}

	return p.columns.validate()
}

// ListPage returns the page described by req.
//
// It fails with ErrInvalidCursor if either cursor is malformed and with
// ErrStoreUnavailable if a store call fails. An empty collection or a cursor
// past the end of data yields an empty page, not an error.
func (p *Paginator[T]) ListPage(ctx context.Context, req PageRequest) (*Connection[T], error) {
	err := p.validate()
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	limit := req.Limit(p.maxLimit)

	after, before, err := req.Decode()
	if err != nil {
		return nil, err
	}

	window := BuildWindow(p.order, p.columns, after, before)
	if err = window.Validate(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows  []T
		total int64
	)

	// The windowed fetch and the count are independent reads.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var findErr error
		rows, findErr = p.store.Find(gctx, window, LookaheadLimit(limit))
		return p.storeError(ctx, "find page", findErr)
	})
	g.Go(func() error {
		var countErr error
		total, countErr = p.store.Count(gctx)
		return p.storeError(ctx, "count records", countErr)
	})

	if err = g.Wait(); err != nil {
		return nil, err
	}

	conn := p.assemble(req, window, limit, rows, total)

	p.logger.WithFields(logrus.Fields{
		"limit":           limit,
		"backward":        window.Backward,
		"fetched":         len(rows),
		"edges":           len(conn.Edges),
		"hasNextPage":     conn.PageInfo.HasNextPage,
		"hasPreviousPage": conn.PageInfo.HasPreviousPage,
		"totalCount":      total,
	}).Debug("page listed")

	return conn, nil
}

// assemble derives the connection from the over-fetched rows.
func (p *Paginator[T]) assemble(req PageRequest, window Window, limit int, rows []T, total int64) *Connection[T] {
	hasMore := HasMore(rows, limit)

	// Truncate before reversing: for backward windows the lookahead row is the
	// farthest from the cursor and sits at the end of the fetched slice.
	rows = TrimResultSet(rows, limit)
	if window.Backward {
		rows = slices.Clone(rows)
		slices.Reverse(rows)
	}

	edges := lo.Map(rows, func(row T, _ int) Edge[T] {
		return Edge[T]{
			Node:   row,
			Cursor: EncodeCursor(p.key(row)),
		}
	})

	info := PageInfo{
		HasNextPage:     req.First != nil && hasMore,
		HasPreviousPage: req.HasCursor(),
	}

	if len(edges) > 0 {
		info.StartCursor = lo.ToPtr(edges[0].Cursor)
		info.EndCursor = lo.ToPtr(edges[len(edges)-1].Cursor)
	}

	return &Connection[T]{
		Edges:      edges,
		PageInfo:   info,
		TotalCount: total,
	}
}

// storeError classifies a store failure. Cancellation of the caller's context
// is reported as is; anything else is a store failure.
func (p *Paginator[T]) storeError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.logger.WithError(err).WithField("op", op).Error("record store call failed")

	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}

// LookaheadLimit returns the number of rows to fetch for a page of limit
// records: one extra row signals that more data exists beyond the page.
func LookaheadLimit(limit int) int {
	return limit + 1
}

// HasMore returns true if the result set fetched with LookaheadLimit contains
// the lookahead row.
func HasMore[T any](resultSet []T, limit int) bool {
	return len(resultSet) > limit
}

// TrimResultSet trims the result set to what should be returned to the client.
// Suppose limit = 2 and resultSet = [a, b, c]: the result is [a, b]. Shorter
// result sets are returned unchanged.
func TrimResultSet[T any](resultSet []T, limit int) []T {
	if len(resultSet) > limit {
		resultSet = resultSet[:limit]
	}

	return resultSet
}

package relaypager

// Edge is a record together with the cursor pointing at it.
type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

// PageInfo describes the neighbourhood of the returned page.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor,omitempty"`
	EndCursor       *string `json:"endCursor,omitempty"`
}

// Connection is a paginated result container.
type Connection[T any] struct {
	// Edges page elements in canonical order.
	Edges []Edge[T] `json:"edges"`
	// PageInfo page metadata.
	PageInfo PageInfo `json:"pageInfo"`
	// TotalCount number of records in the whole collection.
	TotalCount int64 `json:"totalCount"`
}

// Nodes returns the records of the page without cursors.
func (c *Connection[T]) Nodes() []T {
	if c == nil {
		return nil
	}

	ret := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		ret = append(ret, e.Node)
	}

	return ret
}

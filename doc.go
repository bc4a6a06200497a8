// Package relaypager provides Relay-style cursor pagination over collections
// ordered by a (created_at, id) key.
//
// Overview
//
// A page is requested with PageRequest (first/after to page forward,
// last/before to page backward) and served by Paginator.ListPage as a
// Connection: edges, page info and the total number of records.
//
// Key concepts
//   - Key: the composite sort key. Ties on the timestamp are broken by id, so
//     the traversal order is total and no record is skipped or repeated.
//   - Cursor: an opaque base64url token encoding a Key (EncodeCursor,
//     DecodeCursor).
//   - Window: the range query built from a cursor (BuildWindow). It compiles to
//     gorm clauses, raw SQL, or an in-memory predicate.
//   - Store: the record store contract (range query + unfiltered count).
//     See the store/gormstore and store/memstore packages.
//
// Lookahead
//
// The paginator fetches one row more than requested. The presence of that row
// is the only signal used for PageInfo.HasNextPage.
package relaypager

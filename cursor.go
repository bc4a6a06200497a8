package relaypager

import (
	"bytes"
	"cmp"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

var _encoder = base64.RawURLEncoding

// Key is a position in the ordered collection: the composite sort key of one
// record. Keys are strictly totally ordered by CreatedAt and then by ID.
type Key struct {
	CreatedAt time.Time
	ID        string
}

// KeyFunc extracts the sort key from a record.
//
// Example:
//
//	relaypager.KeyFunc[models.User](func(u models.User) relaypager.Key {
//		return relaypager.Key{CreatedAt: u.CreatedAt, ID: u.ID}
//	})
type KeyFunc[T any] func(T) Key

// Compare returns -1, 0 or +1 depending on whether k sorts before, together
// with, or after other in ascending order.
func (k Key) Compare(other Key) int {
	if c := k.CreatedAt.Compare(other.CreatedAt); c != 0 {
		return c
	}

	return cmp.Compare(k.ID, other.ID)
}

// String - implements fmt.Stringer. Returns the cursor token for the key.
func (k Key) String() string {
	return EncodeCursor(k)
}

// cursorPayload is the JSON shape hidden behind the base64 token.
//
//	{"t":"2024-01-01T00:00:00Z","i":"42"}
type cursorPayload struct {
	Timestamp string `json:"t"`
	ID        string `json:"i"`
}

// EncodeCursor builds an opaque cursor token for the given position. The
// timestamp is stored in UTC with nanosecond precision.
func EncodeCursor(k Key) string {
	jTok, err := json.Marshal(cursorPayload{
		Timestamp: k.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:        k.ID,
	})
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor value: %w", err))
	}

	return _encoder.EncodeToString(jTok)
}

// DecodeCursor parses a token produced by EncodeCursor. An empty token means
// there is no cursor and yields (nil, nil).
//
// It does not check that a record with the decoded key still exists.
func DecodeCursor(b64String string) (*Key, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 encoded cursor: %w", ErrInvalidCursor, err)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.DisallowUnknownFields()

	var payload cursorPayload
	if err = dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal json encoded cursor: %w", ErrInvalidCursor, err)
	}

	ts, err := time.Parse(time.RFC3339Nano, payload.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed cursor timestamp: %w", ErrInvalidCursor, err)
	}

	if payload.ID == "" {
		return nil, fmt.Errorf("%w: empty cursor id", ErrInvalidCursor)
	}

	return &Key{
		CreatedAt: ts.UTC(),
		ID:        payload.ID,
	}, nil
}

var _ fmt.Stringer = Key{}

// Package storage provides the durable slot the incident store mirrors into:
// a single key-value entry holding the serialized collection. Backends exist
// for memory, a local file, Redis, and PostgreSQL.
package storage

import "context"

// Slot is one durable key-value entry. Load returns (nil, nil) when the slot
// has never been written; callers treat that the same as empty data.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Store(ctx context.Context, data []byte) error
}

package port

import "context"

// Snapshot keys. Each holds one JSON document overwritten wholesale.
const (
	CartKey   = "cart"
	OrdersKey = "orders"
)

type StateRepository interface {
	// Load returns the stored snapshot, ok is false if the key was never written
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Save overwrites the snapshot stored under key
	Save(ctx context.Context, key string, data []byte) error
}

// Package store provides key-value persistence for saved loan scenarios.
// The engine itself has no persistence awareness; callers pass plain
// configuration values through this collaborator.
package store

// Store is a key-value store for serialized scenarios.
type Store interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

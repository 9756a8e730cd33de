// Package dedupe holds the shared singleflight groups that collapse
// concurrent work on the same key into one call.
package dedupe

import "golang.org/x/sync/singleflight"

// TableGroup deduplicates loading a game table from storage, keyed by game
// id, so concurrent first requests for a cold game start one actor.
var TableGroup singleflight.Group

// TotalsGroup deduplicates champion ledger aggregation keyed by champion id.
var TotalsGroup singleflight.Group

// Do runs fn once per key among concurrent callers and returns the typed
// result to all of them.
func Do[T any](g *singleflight.Group, key string, fn func() (T, error)) (T, error) {
	v, err, _ := g.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

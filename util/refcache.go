package util

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Reference-data cache keys.
const (
	RefShifts      = "ref:shifts"
	RefRooms       = "ref:rooms"
	RefDepartments = "ref:departments"
	RefMedicines   = "ref:medicines"
)

var refCache = cache.New(10*time.Minute, 20*time.Minute)

// CachedRef returns the value stored under key or calls load and caches its
// result. Load errors are returned and nothing is cached.
func CachedRef[T any](key string, load func() (T, error)) (T, error) {
	if v, ok := refCache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	refCache.SetDefault(key, v)
	return v, nil
}

// InvalidateRef drops a cached reference list.
func InvalidateRef(key string) {
	refCache.Delete(key)
}

// FlushRefCache empties the reference-data cache.
func FlushRefCache() {
	refCache.Flush()
}

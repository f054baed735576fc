package cache

type hitResult[T any] struct {
	data  T
	valid bool
	// The caller owns the entry and must set or delete it
	claimed bool
}

// Cache stores values while they are being created, so concurrent callers wait instead of duplicating work
type Cache[T any] interface {
	getOrClaim(key string) hitResult[T]
	set(key string, data T)
	delete(key string)
	wait()
}

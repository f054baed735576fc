package reporting

import (
	"context"
	"maps"
	"time"
)

type metaContextKey struct{}

// Meta is attached to every event reported for a request
type Meta struct {
	tags      map[string]string
	extras    map[string]string
	userID    string
	startedAt time.Time
}

// MetaFromContext returns a copy of the meta stored in ctx, safe to modify
func MetaFromContext(ctx context.Context) Meta {
	meta, ok := ctx.Value(metaContextKey{}).(Meta)
	if !ok {
		return Meta{
			tags:   map[string]string{},
			extras: map[string]string{},
		}
	}
	return Meta{
		tags:      maps.Clone(meta.tags),
		extras:    maps.Clone(meta.extras),
		userID:    meta.userID,
		startedAt: meta.startedAt,
	}
}

func withMeta(ctx context.Context, modify func(meta *Meta)) context.Context {
	meta := MetaFromContext(ctx)
	modify(&meta)
	return context.WithValue(ctx, metaContextKey{}, meta)
}

func AddTagsToContext(ctx context.Context, tags map[string]string) context.Context {
	return withMeta(ctx, func(meta *Meta) {
		maps.Copy(meta.tags, tags)
	})
}

func AddExtrasToContext(ctx context.Context, extras map[string]string) context.Context {
	return withMeta(ctx, func(meta *Meta) {
		maps.Copy(meta.extras, extras)
	})
}

func SetUserIDInContext(ctx context.Context, userID string) context.Context {
	return withMeta(ctx, func(meta *Meta) {
		meta.userID = userID
	})
}

func setStartedAtInContext(ctx context.Context, startedAt time.Time) context.Context {
	return withMeta(ctx, func(meta *Meta) {
		meta.startedAt = startedAt
	})
}

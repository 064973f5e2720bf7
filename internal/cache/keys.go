package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ContentKeyPrefix = "content:%d"
	CampKeyPrefix    = "camp:%d"
)

// Feed results are never cached: the saved flag and visibility filtering are
// viewer-specific, so only camp and single-item reads go through Redis.
const (
	ContentTTL = 30 * time.Minute
	CampTTL    = 10 * time.Minute
)

func ContentKey(contentID uint) string {
	return fmt.Sprintf(ContentKeyPrefix, contentID)
}

func CampKey(campID uint) string {
	return fmt.Sprintf(CampKeyPrefix, campID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateContent(ctx context.Context, contentID uint) {
	Invalidate(ctx, ContentKey(contentID))
}

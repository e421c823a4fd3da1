package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevalidateViews drops the cached renderings of the given view paths so
// the presentation layer recomputes them on next request. A nil client
// (redis not configured) makes this a no-op; errors only get logged —
// stale cache is preferable to a failed save.
func RevalidateViews(rdb *redis.Client, paths ...string) {
	if rdb == nil || len(paths) == 0 {
		return
	}

	keys := make([]string, len(paths))
	for i, path := range paths {
		keys[i] = "view:" + path
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("view cache revalidation failed (%v): %v", paths, err)
	}
}

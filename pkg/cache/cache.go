// Package cache keeps rendered public profiles in Redis. The public page is
// the read-hot path; every dashboard write invalidates the owner's entry.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const publicProfileTTL = 5 * time.Minute

var client *redis.Client

// Init connects to Redis. An empty URL leaves caching disabled; every
// lookup then misses, which is fine for local development.
func Init(url string) {
	if url == "" {
		log.Println("Redis not configured, public profile cache disabled")
		return
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("Invalid REDIS_URL, cache disabled: %v", err)
		return
	}

	client = redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Could not reach Redis, cache disabled: %v", err)
		client = nil
		return
	}

	log.Println("Redis connected, public profile cache enabled")
}

func key(slug string) string {
	return "public_profile:" + slug
}

// GetPublicProfile returns the cached JSON payload for a slug, or false.
func GetPublicProfile(ctx context.Context, slug string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}

	data, err := client.Get(ctx, key(slug)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetPublicProfile stores the rendered payload for a slug.
func SetPublicProfile(ctx context.Context, slug string, payload []byte) {
	if client == nil {
		return
	}

	if err := client.Set(ctx, key(slug), payload, publicProfileTTL).Err(); err != nil {
		log.Printf("Could not cache public profile %s: %v", slug, err)
	}
}

// InvalidatePublicProfile drops the cached payload after a write.
func InvalidatePublicProfile(ctx context.Context, slug string) {
	if client == nil {
		return
	}

	if err := client.Del(ctx, key(slug)).Err(); err != nil {
		log.Printf("Could not invalidate public profile %s: %v", slug, err)
	}
}

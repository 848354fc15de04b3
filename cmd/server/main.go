package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"signalchart/internal/app/di"
	"signalchart/internal/app/router"
	"signalchart/internal/platform/cache"
	infraredis "signalchart/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	ttl := cacheTTL()

	// Series cache: Redis when configured and reachable, otherwise the
	// in-process store. Either way the service keeps running.
	var store cache.SeriesCache
	var rdb *redisv9.Client
	if os.Getenv("REDIS_HOST") != "" {
		if tmp, err := infraredis.NewRedisClient(); err != nil {
			log.Println("[WARN] Redis unavailable. Falling back to in-memory series cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}
	if rdb != nil {
		store = cache.NewRedisSeriesCache(rdb, ttl)
	} else {
		store = cache.NewMemorySeriesCache(ttl)
	}

	chartH := di.NewChartHandler(store)
	r := router.NewRouter(chartH)

	// A missing credential surfaces per request as a 500; warn early.
	if os.Getenv("TWELVE_KEY") == "" {
		log.Println("[WARN] TWELVE_KEY is not set. Chart requests will fail until it is configured.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// cacheTTL reads CACHE_TTL in seconds, defaulting to the cache package's
// 60 second TTL.
func cacheTTL() time.Duration {
	if v, err := strconv.Atoi(os.Getenv("CACHE_TTL")); err == nil && v > 0 {
		return time.Duration(v) * time.Second
	}
	return cache.DefaultTTL
}

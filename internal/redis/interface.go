package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the redis surface the session store depends on. Tests back it
// with miniredis.
type Client interface {
	redis.UniversalClient
}

package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient to allow for easy mocking
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of missing keys
const Nil = redis.Nil

// Z is a member of a sorted set
type Z = redis.Z

// ZRangeBy bounds a sorted-set range query
type ZRangeBy = redis.ZRangeBy

package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	SoftwareKeyPrefix = "software:%d"
	SoftwareListKey   = "software:list"
)

const (
	UserTTL         = 5 * time.Minute
	SoftwareTTL     = 10 * time.Minute
	SoftwareListTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SoftwareKey(softwareID uint) string {
	return fmt.Sprintf(SoftwareKeyPrefix, softwareID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateSoftware(ctx context.Context, softwareID uint) {
	Invalidate(ctx, SoftwareKey(softwareID), SoftwareListKey)
}

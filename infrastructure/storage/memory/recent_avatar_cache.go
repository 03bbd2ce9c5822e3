package memory

import (
	"avatar-chat/domain/avatar"
	"avatar-chat/errors"
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
)

// RecentAvatarCache is a bounded move-to-front list held in memory.
type RecentAvatarCache struct {
	mu      sync.Mutex
	limit   int
	avatars []avatar.Avatar
}

func NewRecentAvatarCache(limit int) *RecentAvatarCache {
	return &RecentAvatarCache{limit: limit}
}

func (c *RecentAvatarCache) AddRecent(_ context.Context, a avatar.Avatar) error {
	if a.AvatarID == "" {
		return fmt.Errorf("%w: empty avatar id", errors.ErrInvalidArgument)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	others := lo.Filter(c.avatars, func(item avatar.Avatar, _ int) bool {
		return item.AvatarID != a.AvatarID
	})
	c.avatars = append([]avatar.Avatar{a}, others...)
	if c.limit > 0 && len(c.avatars) > c.limit {
		c.avatars = c.avatars[:c.limit]
	}
	return nil
}

func (c *RecentAvatarCache) GetRecents(_ context.Context) ([]avatar.Avatar, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]avatar.Avatar{}, c.avatars...), nil
}

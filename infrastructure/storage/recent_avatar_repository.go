package storage

import (
	"avatar-chat/domain/avatar"
	"avatar-chat/errors"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const (
	recentPrefix       = "recent:"
	DefaultRecentLimit = 20
)

// RecentAvatarRepository keeps the most recently used avatars in a local BadgerDB,
// one key per avatar id so adding an avatar twice moves it to the front.
type RecentAvatarRepository struct {
	db    *badger.DB
	log   *slog.Logger
	limit int
	now   func() time.Time
}

func NewRecentAvatarRepository(db *badger.DB, log *slog.Logger, limit int) *RecentAvatarRepository {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &RecentAvatarRepository{db: db, log: log, limit: limit, now: time.Now}
}

func recentKey(avatarID string) []byte { return []byte(recentPrefix + avatarID) }

// AddRecent puts the avatar in front and evicts the oldest entries beyond the limit,
// in the same transaction.
func (r *RecentAvatarRepository) AddRecent(_ context.Context, a avatar.Avatar) error {
	if a.AvatarID == "" {
		return fmt.Errorf("%w: empty avatar id", errors.ErrInvalidArgument)
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		others, err := r.load(txn)
		if err != nil {
			return err
		}
		others = lo.Filter(others, func(item avatar.RecentAvatar, _ int) bool {
			return item.Avatar.AvatarID != a.AvatarID
		})

		added := r.now().UTC()
		// Keep the new entry strictly in front even with a coarse clock
		if len(others) > 0 && !added.After(others[0].DateAdded) {
			added = others[0].DateAdded.Add(time.Nanosecond)
		}
		entry := avatar.RecentAvatar{Avatar: a, DateAdded: added}
		if err = txn.Set(recentKey(a.AvatarID), encodeRecentAvatar(entry)); err != nil {
			return err
		}

		if keep := r.limit - 1; len(others) > keep {
			for _, evicted := range others[keep:] {
				if err = txn.Delete(recentKey(evicted.Avatar.AvatarID)); err != nil {
					return err
				}
			}
			r.log.Debug("Recent avatars evicted", "count", len(others)-keep)
		}
		return nil
	})
	return errors.Persistence("add recent avatar", err)
}

// GetRecents returns the cached avatars, most recent first. An empty cache is not an error.
func (r *RecentAvatarRepository) GetRecents(_ context.Context) ([]avatar.Avatar, error) {
	var recents []avatar.RecentAvatar
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		recents, err = r.load(txn)
		return err
	})
	if err != nil {
		return nil, errors.Persistence("get recent avatars", err)
	}
	if len(recents) > r.limit {
		recents = recents[:r.limit]
	}
	return lo.Map(recents, func(item avatar.RecentAvatar, _ int) avatar.Avatar {
		return item.Avatar
	}), nil
}

func (r *RecentAvatarRepository) load(txn *badger.Txn) ([]avatar.RecentAvatar, error) {
	var recents []avatar.RecentAvatar
	err := scan(txn, []byte(recentPrefix), func(key, value []byte) error {
		entry, err := decodeRecentAvatar(value)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		recents = append(recents, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recents, func(i, j int) bool {
		return recents[i].DateAdded.After(recents[j].DateAdded)
	})
	return recents, nil
}

package storage

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Record is a human readable view of one stored key, used by the inspect tool.
type Record struct {
	Key    string
	Kind   string
	ID     string
	Owner  string
	At     time.Time
	Detail string
}


// DescribeRecord decodes a raw key/value pair. Unknown prefixes are
// described with the raw value size only.
func DescribeRecord(key, value []byte) (Record, error) {
	k := string(key)
	switch {
	case bytes.HasPrefix(key, []byte("chat:")):
		c, err := decodeConversation(value)
		if err != nil {
			return Record{}, err
		}
		return Record{Key: k, Kind: "conversation", ID: c.ID, Owner: c.UserID, At: c.DateModified, Detail: "avatar " + c.AvatarID}, nil
	case bytes.HasPrefix(key, []byte("user_chat:")):
		userAndChat := strings.TrimPrefix(k, "user_chat:")
		userID, _, _ := strings.Cut(userAndChat, ":")
		return Record{Key: k, Kind: "index", ID: string(value), Owner: userID}, nil
	case bytes.HasPrefix(key, []byte("msg:")):
		m, err := decodeMessage(value)
		if err != nil {
			return Record{}, err
		}
		return Record{
			Key:    k,
			Kind:   "message",
			ID:     m.ID,
			Owner:  lo.FromPtr(m.AuthorID),
			At:     lo.FromPtr(m.DateCreated),
			Detail: lo.FromPtr(m.Content) + " (seen by " + strings.Join(m.SeenByIDs, ",") + ")",
		}, nil
	case bytes.HasPrefix(key, []byte("report:")):
		r, err := decodeReport(value)
		if err != nil {
			return Record{}, err
		}
		detail := "inactive"
		if r.IsActive {
			detail = "active"
		}
		return Record{Key: k, Kind: "report", ID: r.ID, Owner: r.UserID, At: r.DateCreated, Detail: detail}, nil
	case bytes.HasPrefix(key, []byte(recentPrefix)):
		r, err := decodeRecentAvatar(value)
		if err != nil {
			return Record{}, err
		}
		return Record{Key: k, Kind: "recent", ID: r.Avatar.AvatarID, At: r.DateAdded, Detail: lo.FromPtr(r.Avatar.Name)}, nil
	default:
		return Record{Key: k, Kind: "unknown", Detail: fmt.Sprintf("%d bytes", len(value))}, nil
	}
}

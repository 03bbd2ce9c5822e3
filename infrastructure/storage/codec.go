package storage

import (
	"avatar-chat/domain/avatar"
	"avatar-chat/domain/chat"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Values are stored in protobuf wire format. Field numbers are part of the
// persisted shape and must never be reused.
//
//	Conversation  1 id, 2 user_id, 3 avatar_id, 4 date_created, 5 date_modified
//	Message       1 id, 2 chat_id, 3 author_id, 4 content, 5 seen_by_ids, 6 date_created
//	Report        1 id, 2 chat_id, 3 user_id, 4 is_active, 5 date_created
//	RecentAvatar  1 avatar_id, 2 name, 3 character_option, 4 character_action,
//	              5 character_location, 6 profile_image_name, 7 author_id,
//	              8 date_created, 9 date_added
//
// Times are unix nanoseconds; a zero or absent time is omitted.

var errWireType = fmt.Errorf("unexpected wire type")

func encodeConversation(c chat.Conversation) []byte {
	var b []byte
	b = appendString(b, 1, c.ID)
	b = appendString(b, 2, c.UserID)
	b = appendString(b, 3, c.AvatarID)
	b = appendTime(b, 4, c.DateCreated)
	b = appendTime(b, 5, c.DateModified)
	return b
}

func decodeConversation(b []byte) (chat.Conversation, error) {
	var c chat.Conversation
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &c.ID)
		case 2:
			return readString(typ, v, &c.UserID)
		case 3:
			return readString(typ, v, &c.AvatarID)
		case 4:
			return readTime(typ, v, &c.DateCreated)
		case 5:
			return readTime(typ, v, &c.DateModified)
		}
		return skip(num, typ, v)
	})
	return c, err
}

func encodeMessage(m chat.Message) []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.ChatID)
	b = appendOptionalString(b, 3, m.AuthorID)
	b = appendOptionalString(b, 4, m.Content)
	for _, id := range m.SeenByIDs {
		b = appendString(b, 5, id)
	}
	if m.DateCreated != nil {
		b = appendTime(b, 6, *m.DateCreated)
	}
	return b
}

func decodeMessage(b []byte) (chat.Message, error) {
	var m chat.Message
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &m.ID)
		case 2:
			return readString(typ, v, &m.ChatID)
		case 3:
			return readOptionalString(typ, v, &m.AuthorID)
		case 4:
			return readOptionalString(typ, v, &m.Content)
		case 5:
			var id string
			n, err := readString(typ, v, &id)
			m.SeenByIDs = append(m.SeenByIDs, id)
			return n, err
		case 6:
			return readOptionalTime(typ, v, &m.DateCreated)
		}
		return skip(num, typ, v)
	})
	return m, err
}

func encodeReport(r chat.Report) []byte {
	var b []byte
	b = appendString(b, 1, r.ID)
	b = appendString(b, 2, r.ChatID)
	b = appendString(b, 3, r.UserID)
	b = appendBool(b, 4, r.IsActive)
	b = appendTime(b, 5, r.DateCreated)
	return b
}

func decodeReport(b []byte) (chat.Report, error) {
	var r chat.Report
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &r.ID)
		case 2:
			return readString(typ, v, &r.ChatID)
		case 3:
			return readString(typ, v, &r.UserID)
		case 4:
			return readBool(typ, v, &r.IsActive)
		case 5:
			return readTime(typ, v, &r.DateCreated)
		}
		return skip(num, typ, v)
	})
	return r, err
}

func encodeRecentAvatar(r avatar.RecentAvatar) []byte {
	a := r.Avatar
	var b []byte
	b = appendString(b, 1, a.AvatarID)
	b = appendOptionalString(b, 2, a.Name)
	if a.CharacterOption != nil {
		b = appendString(b, 3, string(*a.CharacterOption))
	}
	b = appendOptionalString(b, 4, a.CharacterAction)
	b = appendOptionalString(b, 5, a.CharacterLocation)
	b = appendOptionalString(b, 6, a.ProfileImageName)
	b = appendOptionalString(b, 7, a.AuthorID)
	if a.DateCreated != nil {
		b = appendTime(b, 8, *a.DateCreated)
	}
	b = appendTime(b, 9, r.DateAdded)
	return b
}

func decodeRecentAvatar(b []byte) (avatar.RecentAvatar, error) {
	var r avatar.RecentAvatar
	a := &r.Avatar
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, v, &a.AvatarID)
		case 2:
			return readOptionalString(typ, v, &a.Name)
		case 3:
			var option string
			n, err := readString(typ, v, &option)
			a.CharacterOption = (*avatar.CharacterOption)(&option)
			return n, err
		case 4:
			return readOptionalString(typ, v, &a.CharacterAction)
		case 5:
			return readOptionalString(typ, v, &a.CharacterLocation)
		case 6:
			return readOptionalString(typ, v, &a.ProfileImageName)
		case 7:
			return readOptionalString(typ, v, &a.AuthorID)
		case 8:
			return readOptionalTime(typ, v, &a.DateCreated)
		case 9:
			return readTime(typ, v, &r.DateAdded)
		}
		return skip(num, typ, v)
	})
	return r, err
}

// walk calls fn for every field of b. fn returns how many bytes of the value it consumed.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m, err := fn(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		b = b[m:]
	}
	return nil
}

func skip(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendOptionalString(b []byte, num protowire.Number, s *string) []byte {
	if s == nil {
		return b
	}
	return appendString(b, num, *s)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(t.UnixNano()))
}

func readString(typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, errWireType
	}
	s, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = s
	return n, nil
}

func readOptionalString(typ protowire.Type, b []byte, dst **string) (int, error) {
	var s string
	n, err := readString(typ, b, &s)
	if err != nil {
		return 0, err
	}
	*dst = &s
	return n, nil
}

func readVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, errWireType
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func readBool(typ protowire.Type, b []byte, dst *bool) (int, error) {
	v, n, err := readVarint(typ, b)
	if err != nil {
		return 0, err
	}
	*dst = protowire.DecodeBool(v)
	return n, nil
}

func readTime(typ protowire.Type, b []byte, dst *time.Time) (int, error) {
	v, n, err := readVarint(typ, b)
	if err != nil {
		return 0, err
	}
	*dst = time.Unix(0, int64(v)).UTC()
	return n, nil
}

func readOptionalTime(typ protowire.Type, b []byte, dst **time.Time) (int, error) {
	var t time.Time
	n, err := readTime(typ, b, &t)
	if err != nil {
		return 0, err
	}
	*dst = &t
	return n, nil
}

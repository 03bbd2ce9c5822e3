// Package avatar holds the avatar snapshot kept by the recent-avatar cache.
package avatar

import "time"

type CharacterOption string

const (
	Man   CharacterOption = "man"
	Woman CharacterOption = "woman"
	Alien CharacterOption = "alien"
	Dog   CharacterOption = "dog"
	Cat   CharacterOption = "cat"
)

// Avatar is the AI counterpart a user chats with.
type Avatar struct {
	AvatarID          string `validate:"required"`
	Name              *string
	CharacterOption   *CharacterOption
	CharacterAction   *string
	CharacterLocation *string
	ProfileImageName  *string
	AuthorID          *string
	DateCreated       *time.Time
}

// RecentAvatar is an avatar snapshot with the time it was last interacted with.
type RecentAvatar struct {
	Avatar    Avatar
	DateAdded time.Time
}

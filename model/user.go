package model

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/lib/pq"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	// DefaultProfilePicture is attached to every account that never uploaded
	// an avatar.
	DefaultProfilePicture = "https://static.arcadia.social/assets/default-avatar.png"
)

/*

User is a data model for a socialfeed account.

Id: primary key, use to identify a user
CreatedAt/UpdatedAt: entity timestamps

Username: unique handle, required
Email: unique contact address, required
Password: bcrypt hash of the password, never the plaintext
Description: free-form profile text
ProfilePicture: avatar URL, defaults to DefaultProfilePicture
Followers: ids of users following this account
Followings: ids of users this account follows
Role: "user" or "admin"
RefreshToken: the single live refresh token of this account; overwritten on
every login or refresh, which revokes the previous session

A user never appears in its own Followers or Followings.

*/

type User struct {
	Id             string         `gorm:"primaryKey" json:"_id"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	Username       string         `gorm:"uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"not null" json:"password"`
	Description    string         `json:"description"`
	ProfilePicture string         `json:"profilePicture"`
	Followers      pq.StringArray `gorm:"type:text[]" json:"followers"`
	Followings     pq.StringArray `gorm:"type:text[]" json:"followings"`
	Role           string         `gorm:"default:user" json:"role"`
	Gender         string         `json:"gender"`
	RefreshToken   string         `json:"-"`
}

// UserView is the public projection of a User: everything except the password
// hash and the stored refresh token.
type UserView struct {
	Id             string         `json:"_id"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	Description    string         `json:"description"`
	ProfilePicture string         `json:"profilePicture"`
	Followers      pq.StringArray `json:"followers"`
	Followings     pq.StringArray `json:"followings"`
	Role           string         `json:"role"`
	Gender         string         `json:"gender"`
}

func (u *User) PublicView() *UserView {
	view := &UserView{}
	copier.Copy(view, u)
	return view
}

// UserRef is the owner stub hydrated onto timeline articles.
type UserRef struct {
	Id             string `json:"_id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

package model

import (
	"time"

	"github.com/lib/pq"
)

/*

Article is a data model for a short text/image post.

Id: primary key
UserID: id of the owning user, immutable after creation
Description: post text, the only field the owner may edit besides ImgUrl
ImgUrl: optional image URL
Likes: ids of users that liked this article, no duplicates
Comments: ids of attached comments, insertion order

*/

type Article struct {
	Id          string         `gorm:"primaryKey" json:"_id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	UserID      string         `gorm:"index;not null" json:"user"`
	Description string         `json:"description"`
	ImgUrl      string         `gorm:"column:imgurl" json:"imgurl"`
	Likes       pq.StringArray `gorm:"type:text[]" json:"likes"`
	Comments    pq.StringArray `gorm:"type:text[]" json:"comments"`
}

// TimelineArticle is an Article with its owner hydrated into the "user"
// field, the shape the timeline endpoint returns. The outer User field
// shadows the embedded UserID on marshal.
type TimelineArticle struct {
	Article
	User UserRef `json:"user"`
}

// ArticleWithComments resolves the ordered comment id list into full comment
// documents for single-article reads.
type ArticleWithComments struct {
	Article
	Comments []Comment `json:"comments"`
}

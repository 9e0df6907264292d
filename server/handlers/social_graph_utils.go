package handlers

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/arcadia-social/socialfeed-backend/model"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrSelfFollow       = errors.New("you can't follow yourself")
	ErrAlreadyFollowing = errors.New("you already follow this user")
	ErrNotFollowing     = errors.New("you don't follow this user")
)

// followUser adds the follow edge actor -> target. The edge is stored
// redundantly on both user rows and both sides are always written together,
// as two independent single-row updates: a crash in between leaves the edge
// half-written, matching the document-store semantics this system reproduces.
func followUser(db *gorm.DB, actorId, targetUsername string) error {
	var target model.User
	res := db.Where("username = ?", targetUsername).First(&target)
	if res.RowsAffected != 1 {
		return ErrUserNotFound
	}
	if target.Id == actorId {
		return ErrSelfFollow
	}
	var actor model.User
	res = db.Where("id = ?", actorId).First(&actor)
	if res.RowsAffected != 1 {
		return ErrUserNotFound
	}
	if containsId(target.Followers, actorId) {
		return ErrAlreadyFollowing
	}
	if err := db.Model(&model.User{}).Where("id = ?", actor.Id).
		Update("followings", gorm.Expr("array_append(followings, ?)", target.Id)).Error; err != nil {
		return errors.Wrap(err, "failed to append following edge")
	}
	if err := db.Model(&model.User{}).Where("id = ?", target.Id).
		Update("followers", gorm.Expr("array_append(followers, ?)", actor.Id)).Error; err != nil {
		return errors.Wrap(err, "failed to append follower edge")
	}
	return nil
}

// unfollowUser removes the follow edge actor -> target symmetrically, same
// two-write shape as followUser.
func unfollowUser(db *gorm.DB, actorId, targetUsername string) error {
	var target model.User
	res := db.Where("username = ?", targetUsername).First(&target)
	if res.RowsAffected != 1 {
		return ErrUserNotFound
	}
	var actor model.User
	res = db.Where("id = ?", actorId).First(&actor)
	if res.RowsAffected != 1 {
		return ErrUserNotFound
	}
	if !containsId(target.Followers, actorId) {
		return ErrNotFollowing
	}
	if err := db.Model(&model.User{}).Where("id = ?", actor.Id).
		Update("followings", gorm.Expr("array_remove(followings, ?)", target.Id)).Error; err != nil {
		return errors.Wrap(err, "failed to remove following edge")
	}
	if err := db.Model(&model.User{}).Where("id = ?", target.Id).
		Update("followers", gorm.Expr("array_remove(followers, ?)", actor.Id)).Error; err != nil {
		return errors.Wrap(err, "failed to remove follower edge")
	}
	return nil
}

func containsId(ids pq.StringArray, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

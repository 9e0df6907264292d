package handlers

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/arcadia-social/socialfeed-backend/model"
	Logger "github.com/arcadia-social/socialfeed-backend/utils/log"
)

// Followed users only contribute articles created inside this trailing
// window; the caller's own articles are not windowed.
const timelineWindow = 24 * time.Hour

// getTimelineArticles assembles the timeline for one user: their own article
// page first, then for each followed user the same page slice restricted to
// the trailing 24 hours. Each followed user is fetched in its own goroutine
// and collected through a sync.Map keyed by index so the result keeps
// followings order. The per-source slices are concatenated as-is, not
// re-sorted globally.
func getTimelineArticles(db *gorm.DB, userId string, page, limit int) ([]*model.TimelineArticle, error) {
	var user model.User
	res := db.Where("id = ?", userId).First(&user)
	if res.RowsAffected != 1 {
		return nil, ErrUserNotFound
	}
	offset := (page - 1) * limit

	var own []model.Article
	if err := db.Where("user_id = ?", userId).
		Order("created_at desc").Offset(offset).Limit(limit).
		Find(&own).Error; err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-timelineWindow)
	var wg sync.WaitGroup
	var followed sync.Map
	for idx := range user.Followings {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var articles []model.Article
			if err := db.
				Where("user_id = ? AND created_at >= ?", user.Followings[i], cutoff).
				Order("created_at desc").Offset(offset).Limit(limit).
				Find(&articles).Error; err != nil {
				Logger.Errorf("failed to fetch timeline slice for followed user %s: %v", user.Followings[i], err)
				return
			}
			followed.Store(i, articles)
		}(idx)
	}
	wg.Wait()

	merged := append([]model.Article{}, own...)
	for idx := range user.Followings {
		if articles, ok := followed.Load(idx); ok {
			merged = append(merged, articles.([]model.Article)...)
		}
	}
	return hydrateOwners(db, merged)
}

// hydrateOwners batch-loads the owners of the given articles and attaches a
// UserRef (id, username, profile picture) to each.
func hydrateOwners(db *gorm.DB, articles []model.Article) ([]*model.TimelineArticle, error) {
	ownerIds := []string{}
	seen := map[string]bool{}
	for idx := range articles {
		if !seen[articles[idx].UserID] {
			seen[articles[idx].UserID] = true
			ownerIds = append(ownerIds, articles[idx].UserID)
		}
	}
	ownersById := map[string]model.UserRef{}
	if len(ownerIds) > 0 {
		var owners []model.User
		if err := db.Where("id IN ?", ownerIds).Find(&owners).Error; err != nil {
			return nil, err
		}
		for idx := range owners {
			ownersById[owners[idx].Id] = model.UserRef{
				Id:             owners[idx].Id,
				Username:       owners[idx].Username,
				ProfilePicture: owners[idx].ProfilePicture,
			}
		}
	}
	results := make([]*model.TimelineArticle, 0, len(articles))
	for idx := range articles {
		results = append(results, &model.TimelineArticle{
			Article: articles[idx],
			User:    ownersById[articles[idx].UserID],
		})
	}
	return results, nil
}

package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-social/socialfeed-backend/model"
)

func TestCreateArticle(t *testing.T) {
	router, db, h := newTestServer(t)
	alice := createTestUser(t, db, "alice", model.RoleUser)

	recorder := performRequest(router, http.MethodPost, "/api/article", bearerFor(t, h, alice), map[string]string{
		"description": "hello world",
		"imgurl":      "https://example.com/pic.png",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "article has been created", decodeBody(t, recorder)["message"])

	var article model.Article
	require.NoError(t, db.Where("user_id = ?", alice.Id).First(&article).Error)
	assert.Equal(t, "hello world", article.Description)
	assert.Equal(t, "https://example.com/pic.png", article.ImgUrl)
	assert.Empty(t, article.Likes)
	assert.Empty(t, article.Comments)
}

func TestUpdateArticleWhitelist(t *testing.T) {
	router, db, h := newTestServer(t)
	alice := createTestUser(t, db, "alice", model.RoleUser)
	article := createTestArticle(t, db, alice, "original", time.Minute)

	// unknown fields are dropped, known ones applied
	recorder := performRequest(router, http.MethodPut, "/api/article/"+article.Id, bearerFor(t, h, alice), map[string]string{
		"description": "edited",
		"user":        "someone-else",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated model.Article
	require.NoError(t, db.Where("id = ?", article.Id).First(&updated).Error)
	assert.Equal(t, "edited", updated.Description)
	assert.Equal(t, alice.Id, updated.UserID)
}

func TestUpdateArticleNotOwner(t *testing.T) {
	router, db, h := newTestServer(t)
	alice := createTestUser(t, db, "alice", model.RoleUser)
	bob := createTestUser(t, db, "bob", model.RoleUser)
	article := createTestArticle(t, db, alice, "original", time.Minute)

	recorder := performRequest(router, http.MethodPut, "/api/article/"+article.Id, bearerFor(t, h, bob), map[string]string{
		"description": "hijacked",
	})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "you are not authorized", decodeBody(t, recorder)["message"])

	// the article is unchanged
	var unchanged model.Article
	require.NoError(t, db.Where("id = ?", article.Id).First(&unchanged).Error)
	assert.Equal(t, "original", unchanged.Description)
}

func TestDeleteArticleByOwner(t *testing.T) {
	router, db, h := newTestServer(t)
	alice := createTestUser(t, db, "alice", model.RoleUser)
	article := createTestArticle(t, db, alice, "doomed", time.Minute)

	recorder := performRequest(router, http.MethodDelete, "/api/article/"+article.Id, bearerFor(t, h, alice), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var count int64
	require.NoError(t, db.Model(&model.Article{}).Where("id = ?", article.Id).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteArticleByAdmin(t *testing.T) {
	router, db, h := newTestServer(t)
	alice := createTestUser(t, db, "alice", model.RoleUser)
	admin := createTestUser(t, db, "root", model.RoleAdmin)
	article := createTestArticle(t, db, alice, "doomed", time.Minute)

	recorder := performRequest(router, http.MethodDelete, "/api/article/"+article.Id, bearerFor(t, h, admin), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestDeleteArticleByStranger(t *testing.T) {
	router, db, h := newTestServer(t)
	alice := createTestUser(t, db, "alice", model.RoleUser)
	bob := createTestUser(t, db, "bob", model.RoleUser)
	article := createTestArticle(t, db, alice, "safe", time.Minute)

	recorder := performRequest(router, http.MethodDelete, "/api/article/"+article.Id, bearerFor(t, h, bob), nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var count int64
	require.NoError(t, db.Model(&model.Article{}).Where("id = ?", article.Id).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteArticleCascadesActorComments(t *testing.T) {
	router, db, h := newTestServer(t)
	alice := createTestUser(t, db, "alice", model.RoleUser)
	bob := createTestUser(t, db, "bob", model.RoleUser)
	doomed := createTestArticle(t, db, alice, "doomed", time.Minute)
	other := createTestArticle(t, db, bob, "other", time.Minute)

	// alice commented on both articles, bob on one
	addTestComment(t, router, h, alice, doomed.Id, "alice on doomed")
	addTestComment(t, router, h, alice, other.Id, "alice elsewhere")
	addTestComment(t, router, h, bob, other.Id, "bob elsewhere")

	recorder := performRequest(router, http.MethodDelete, "/api/article/"+doomed.Id, bearerFor(t, h, alice), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// every comment authored by alice is gone, wherever it was attached;
	// bob's comment survives
	var remaining []model.Comment
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, bob.Id, remaining[0].UserID)
}

func TestLikeToggle(t *testing.T) {
	router, db, h := newTestServer(t)
	alice := createTestUser(t, db, "alice", model.RoleUser)
	article := createTestArticle(t, db, alice, "likeable", time.Minute)

	recorder := performRequest(router, http.MethodPut, "/api/article/like/"+article.Id, bearerFor(t, h, alice), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "the article has been liked", decodeBody(t, recorder)["message"])

	var liked model.Article
	require.NoError(t, db.Where("id = ?", article.Id).First(&liked).Error)
	assert.Contains(t, []string(liked.Likes), alice.Id)

	// second call removes the like and restores the original state
	recorder = performRequest(router, http.MethodPut, "/api/article/like/"+article.Id, bearerFor(t, h, alice), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "the article has been disliked", decodeBody(t, recorder)["message"])

	var unliked model.Article
	require.NoError(t, db.Where("id = ?", article.Id).First(&unliked).Error)
	assert.NotContains(t, []string(unliked.Likes), alice.Id)
	assert.Equal(t, article.Likes, unliked.Likes)
}

func TestGetArticlesUser(t *testing.T) {
	router, db, h := newTestServer(t)
	alice := createTestUser(t, db, "alice", model.RoleUser)
	bob := createTestUser(t, db, "bob", model.RoleUser)
	createTestArticle(t, db, alice, "first", 2*time.Hour)
	createTestArticle(t, db, alice, "second", time.Hour)
	createTestArticle(t, db, bob, "not-alices", time.Hour)

	recorder := performRequest(router, http.MethodGet, "/api/article/user/alice", bearerFor(t, h, bob), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var articles []model.Article
	require.NoError(t, jsonUnmarshal(recorder, &articles))
	assert.Len(t, articles, 2)
}

func TestGetTimelineEndpoint(t *testing.T) {
	router, db, h := newTestServer(t)
	alice := createTestUser(t, db, "alice", model.RoleUser)
	bob := createTestUser(t, db, "bob", model.RoleUser)
	require.NoError(t, followUser(db, bob.Id, "alice"))
	createTestArticle(t, db, alice, "alice-article", time.Hour)

	recorder := performRequest(router, http.MethodGet, "/api/article/timeline?page=1&limit=5", bearerFor(t, h, bob), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	articles := body["Articles"].([]interface{})
	require.Len(t, articles, 1)
	assert.EqualValues(t, 1, body["limit"])

	// the owner is hydrated onto the article
	entry := articles[0].(map[string]interface{})
	owner := entry["user"].(map[string]interface{})
	assert.Equal(t, "alice", owner["username"])
}

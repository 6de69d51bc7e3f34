package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"cimsel/internal/db"
	"cimsel/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the global handle at an in-memory sqlite database for
// the duration of one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Blog{},
		&models.Comment{},
	))

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() {
		db.DB = prev
		sqlDB.Close()
	})
	return gdb
}

type commentListResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Comments []models.Comment `json:"comments"`
		Total    int              `json:"total"`
	} `json:"data"`
}

func TestListForBlogOrdering(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := setupTestDB(t)

	author := models.User{Name: "Fulan", Username: "fulan", Email: "fulan@example.com", Password: "x"}
	require.NoError(t, gdb.Create(&author).Error)
	category := models.Category{Name: "Kajian"}
	require.NoError(t, gdb.Create(&category).Error)
	blog := models.Blog{
		Title:      "Kajian Rutin",
		Content:    "ringkasan kajian",
		Status:     models.BlogStatusPublished,
		UserID:     author.ID,
		CategoryID: category.ID,
	}
	require.NoError(t, gdb.Create(&blog).Error)

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	older := models.Comment{Content: "pertama", BlogID: blog.ID, UserID: author.ID, Status: models.CommentStatusApproved, CreatedAt: base}
	require.NoError(t, gdb.Create(&older).Error)
	newer := models.Comment{Content: "kedua", BlogID: blog.ID, UserID: author.ID, Status: models.CommentStatusApproved, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, gdb.Create(&newer).Error)
	pending := models.Comment{Content: "menunggu", BlogID: blog.ID, UserID: author.ID, Status: models.CommentStatusPending, CreatedAt: base.Add(2 * time.Hour)}
	require.NoError(t, gdb.Create(&pending).Error)

	// Replies inserted newest first so primary-key order disagrees with
	// creation time.
	lateReply := models.Comment{Content: "balasan kedua", BlogID: blog.ID, UserID: author.ID, ParentID: &older.ID, Status: models.CommentStatusApproved, CreatedAt: base.Add(30 * time.Minute)}
	require.NoError(t, gdb.Create(&lateReply).Error)
	earlyReply := models.Comment{Content: "balasan pertama", BlogID: blog.ID, UserID: author.ID, ParentID: &older.ID, Status: models.CommentStatusApproved, CreatedAt: base.Add(10 * time.Minute)}
	require.NoError(t, gdb.Create(&earlyReply).Error)
	rejectedReply := models.Comment{Content: "ditolak", BlogID: blog.ID, UserID: author.ID, ParentID: &older.ID, Status: models.CommentStatusRejected, CreatedAt: base.Add(20 * time.Minute)}
	require.NoError(t, gdb.Create(&rejectedReply).Error)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/blogs/"+strconv.Itoa(int(blog.ID))+"/comments", nil)
	c.Params = gin.Params{{Key: "id", Value: strconv.Itoa(int(blog.ID))}}

	NewCommentHandler(nil).ListForBlog(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp commentListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	require.Len(t, resp.Data.Comments, 2, "pending top-level comments are excluded")
	assert.Equal(t, "kedua", resp.Data.Comments[0].Content, "top-level comments newest first")
	assert.Equal(t, "pertama", resp.Data.Comments[1].Content)

	replies := resp.Data.Comments[1].Replies
	require.Len(t, replies, 2, "non-approved replies are excluded")
	assert.Equal(t, "balasan pertama", replies[0].Content, "replies oldest first")
	assert.Equal(t, "balasan kedua", replies[1].Content)
}

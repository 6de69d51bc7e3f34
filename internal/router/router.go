package router

import (
	"cimsel/internal/db"
	"cimsel/internal/handlers"
	"cimsel/internal/middleware"
	"cimsel/internal/repository"
	"cimsel/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the repositories, services and handlers onto the
// engine. Everything lives under /api.
func RegisterRoutes(r *gin.Engine) {
	blogs := repository.NewBlogRepository(db.DB)
	comments := repository.NewCommentRepository(db.DB)
	trusts := repository.NewTrustRepository(db.DB)

	trustService := services.NewTrustService(trusts, services.TrustThreshold, services.DistrustThreshold)
	filter := services.NewContentFilter(services.DefaultForbiddenWords, services.DefaultMaxLinks)
	commentService := services.NewCommentService(comments, blogs, trustService, filter)

	blogHandler := handlers.NewBlogHandler()
	categoryHandler := handlers.NewCategoryHandler()
	commentHandler := handlers.NewCommentHandler(commentService)
	bookmarkHandler := handlers.NewBookmarkHandler()
	adminHandler := handlers.NewAdminHandler(commentService)
	adminCommentHandler := handlers.NewAdminCommentHandler(commentService)

	api := r.Group("/api")

	// Public routes
	api.GET("/blogs", blogHandler.List)
	api.GET("/blogs/:id", blogHandler.Get)
	api.GET("/blogs/:id/comments", commentHandler.ListForBlog)
	api.GET("/categories", categoryHandler.List)

	// Routes for logged-in users
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/blogs/:id/comments", commentHandler.Create)
		authorized.POST("/comments/:id/replies", commentHandler.Reply)
		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.Delete)

		authorized.POST("/bookmarks", bookmarkHandler.Create)
		authorized.GET("/bookmarks", bookmarkHandler.List)
		authorized.PUT("/bookmarks/:id", bookmarkHandler.UpdateNotes)
		authorized.DELETE("/bookmarks/:id", bookmarkHandler.Delete)
	}

	// Admin console
	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)

		admin.POST("/blogs", blogHandler.Create)
		admin.PUT("/blogs/:id", blogHandler.Update)
		admin.DELETE("/blogs/:id", blogHandler.Delete)

		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Update)
		admin.DELETE("/categories/:id", categoryHandler.Delete)

		admin.GET("/comments", adminCommentHandler.List)
		admin.GET("/comments/counts", adminCommentHandler.Counts)
		admin.PUT("/comments/:id/status", adminCommentHandler.UpdateStatus)
		admin.PUT("/comments/:id/read", adminCommentHandler.MarkRead)
		admin.DELETE("/comments/:id", adminCommentHandler.Delete)
		admin.POST("/comments/bulk", adminCommentHandler.Bulk)

		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/:id", adminHandler.GetUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
	}
}

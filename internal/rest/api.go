package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/rfenwick/blogapi/blog/application"
)

func NewApi(router *gin.Engine, service *application.PostService) {
	h := &PostsHandler{service: service}

	posts := router.Group("/posts")
	{
		posts.POST("", h.CreatePost)
		posts.GET("", h.SearchPosts)
		posts.GET("/:id", h.GetPost)
		posts.PUT("/:id", h.UpdatePost)
		posts.DELETE("/:id", h.DeletePost)
	}
}

package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rfenwick/blogapi/api"
	"github.com/rfenwick/blogapi/blog/application"
	"github.com/rfenwick/blogapi/blog/domain"
)

// PostsHandler routes post requests to service calls and maps results and
// errors to status codes. It holds no state and no business logic.
type PostsHandler struct {
	service *application.PostService
}

func (h *PostsHandler) CreatePost(c *gin.Context) {
	req := &api.PostRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.CreatePost(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PostsHandler) UpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	req := &api.PostRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.UpdatePost(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostsHandler) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PostsHandler) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostsHandler) SearchPosts(c *gin.Context) {
	term := c.DefaultQuery("term", "")

	resp, err := h.service.SearchPosts(c.Request.Context(), term)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid post id")
		return 0, false
	}
	return id, true
}

// writeError maps the domain error taxonomy onto the HTTP contract:
// not-found is 404 with a fixed body, both argument kinds are 400 with
// the error's message, everything else is a 500.
func writeError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.String(http.StatusNotFound, "Post not found")
	case domain.IsNullArgument(err), domain.IsInvalidArgument(err):
		c.String(http.StatusBadRequest, err.Error())
	default:
		c.String(http.StatusInternalServerError, err.Error())
	}
}

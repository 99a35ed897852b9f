package handler

import (
	"net/http"
	"strconv"

	"socialmedia/backend/internal/auth"
	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts PostService
}

func NewPostHandler(posts PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// GetPosts godoc
// @Summary      List posts
// @Description  Retrieves a page of posts with their authors and images.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page number, zero-based" default(0)
// @Param        size       query     int     false  "Items per page (max 100)" default(20)
// @Param        sortField  query     string  false  "Sort field (id, title, text, created_at, updated_at)" default(id)
// @Param        sortOrder  query     string  false  "Sort order (ASC, DESC)" default(ASC)
// @Success      200        {object}  PaginatedResponse[PostResponse]
// @Failure      400        {object}  ErrorResponse
// @Failure      401        {object}  ErrorResponse
// @Router       /posts [get]
func (h *PostHandler) GetPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(service.DefaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size"})
		return
	}

	result, err := h.posts.List(c.Request.Context(), service.PostQuery{
		Page:      page,
		Size:      size,
		SortField: c.DefaultQuery("sortField", "id"),
		SortOrder: c.DefaultQuery("sortOrder", "ASC"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapPage(result.Page, func(p models.Post) PostResponse {
		return buildPost(p, result.Images[p.ID])
	}))
}

// GetPostByID godoc
// @Summary      Get a post by ID
// @Description  Retrieves a single post with its author and images.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse "Invalid ID or post not found"
// @Failure      401  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPostByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, images, err := h.posts.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildPost(*post, images))
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Publishes a new post owned by the current user.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostCreateInput true "Post"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ValidationErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	var input PostCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), me, input.Title, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, buildPost(*post, nil))
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Partially updates a post. Only the owner may update it.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Post ID"
// @Param        input body      PostUpdateInput  true  "Fields to update"
// @Success      200   {object}  PostResponse
// @Failure      400   {object}  ErrorResponse "Invalid input, post not found or someone else's post"
// @Failure      401   {object}  ErrorResponse
// @Router       /posts/{id} [patch]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input PostUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	post, images, err := h.posts.Update(c.Request.Context(), me, id, service.PostUpdate{Title: input.Title, Text: input.Text})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildPost(*post, images))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post together with its images. Only the owner may delete it.
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse "Post not found or someone else's post"
// @Failure      401  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	if err := h.posts.Delete(c.Request.Context(), me, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

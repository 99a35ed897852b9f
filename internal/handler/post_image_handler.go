package handler

import (
	"net/http"

	"socialmedia/backend/internal/auth"
	"socialmedia/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type PostImageHandler struct {
	images PostImageService
}

func NewPostImageHandler(images PostImageService) *PostImageHandler {
	return &PostImageHandler{images: images}
}

// GetPostImages godoc
// @Summary      List the images of a post
// @Tags         post images
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {array}   PostImageResponse
// @Failure      400  {object}  ErrorResponse "Post not found"
// @Failure      401  {object}  ErrorResponse
// @Router       /posts/{id}/images [get]
func (h *PostImageHandler) GetPostImages(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	images, err := h.images.List(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildImages(images))
}

// UploadPostImage godoc
// @Summary      Upload an image
// @Description  Attaches an image to one of the current user's posts.
// @Tags         post images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int   true  "Post ID"
// @Param        image  formData  file  true  "Image file"
// @Success      201    {object}  PostImageResponse
// @Failure      400    {object}  ErrorResponse "Missing file, post not found, someone else's post or image not stored"
// @Failure      401    {object}  ErrorResponse
// @Router       /posts/{id}/images/upload [post]
func (h *PostImageHandler) UploadPostImage(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	postID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form field 'image' is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file cannot be read"})
		return
	}
	defer file.Close()

	image, err := h.images.Upload(c.Request.Context(), me, postID, service.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PostImageResponse{ID: image.ID, Filename: image.Filename})
}

// DeletePostImage godoc
// @Summary      Delete an image
// @Description  Removes an image from one of the current user's posts.
// @Tags         post images
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int  true  "Post ID"
// @Param        imageId  path      int  true  "Image ID"
// @Success      200      {object}  map[string]string "{"message": "deletion successful"}"
// @Failure      400      {object}  ErrorResponse "Post or image not found, or someone else's post"
// @Failure      401      {object}  ErrorResponse
// @Router       /posts/{id}/images/{imageId} [delete]
func (h *PostImageHandler) DeletePostImage(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	postID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}
	imageID, ok := pathID(c, "imageId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	status, err := h.images.Delete(c.Request.Context(), me, postID, imageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": status})
}

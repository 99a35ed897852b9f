package repository

import (
	"context"
	"fmt"

	"socialmedia/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostImageRepository struct {
	db *gorm.DB
}

func NewPostImageRepository(db *gorm.DB) *PostImageRepository {
	return &PostImageRepository{db: db}
}

func (r *PostImageRepository) Create(ctx context.Context, image *models.PostImage) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(image).Error; err != nil {
		return fmt.Errorf("create post image: %w", err)
	}
	return nil
}

func (r *PostImageRepository) FindByID(ctx context.Context, id uint) (*models.PostImage, error) {
	var image models.PostImage
	if err := conn(ctx, r.db).First(&image, id).Error; err != nil {
		return nil, translate(err)
	}
	return &image, nil
}

func (r *PostImageRepository) FindByPost(ctx context.Context, postID uint) ([]models.PostImage, error) {
	var images []models.PostImage
	if err := conn(ctx, r.db).Where("post_id = ?", postID).Order("id").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("find post images: %w", err)
	}
	return images, nil
}

// FindByPosts groups the images of several posts by post id.
func (r *PostImageRepository) FindByPosts(ctx context.Context, postIDs []uint) (map[uint][]models.PostImage, error) {
	grouped := make(map[uint][]models.PostImage, len(postIDs))
	if len(postIDs) == 0 {
		return grouped, nil
	}

	var images []models.PostImage
	if err := conn(ctx, r.db).Where("post_id IN ?", postIDs).Order("id").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("find post images: %w", err)
	}
	for _, image := range images {
		grouped[image.PostID] = append(grouped[image.PostID], image)
	}
	return grouped, nil
}

func (r *PostImageRepository) Delete(ctx context.Context, id uint) error {
	if err := conn(ctx, r.db).Delete(&models.PostImage{}, id).Error; err != nil {
		return fmt.Errorf("delete post image: %w", err)
	}
	return nil
}

func (r *PostImageRepository) DeleteByPost(ctx context.Context, postID uint) error {
	if err := conn(ctx, r.db).Where("post_id = ?", postID).Delete(&models.PostImage{}).Error; err != nil {
		return fmt.Errorf("delete post images: %w", err)
	}
	return nil
}

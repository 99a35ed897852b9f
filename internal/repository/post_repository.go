package repository

import (
	"context"
	"fmt"

	"socialmedia/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := conn(ctx, r.db).Preload("Owner").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// Update writes the editable fields of post.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	err := conn(ctx, r.db).Model(post).Select("title", "text", "updated_at").Updates(post).Error
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	if err := conn(ctx, r.db).Delete(&models.Post{}, id).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// FindPage returns one page of posts ordered by sortField. The caller
// is responsible for whitelisting sortField.
func (r *PostRepository) FindPage(ctx context.Context, page, size int, sortField string, desc bool) (*Page[models.Post], error) {
	query := conn(ctx, r.db).Model(&models.Post{}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortField}, Desc: desc})

	result, err := Paginate[models.Post](query, page, size, "Owner")
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	return result, nil
}

func (r *PostRepository) FindByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("id").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("find posts of user: %w", err)
	}
	return posts, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"leanacademy/pkg/domain"
)

// GormStore implements Store against the remote Postgres database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&CourseModel{}, &CourseVideoModel{}, &VideoModel{},
		&BlogPostModel{}, &BookingFormModel{}, &AdminUserModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Ping issues a lightweight query to verify the database is reachable.
// Used for status display only, never on the request hot path.
func (s *GormStore) Ping(ctx context.Context) error {
	var count int64
	return s.db.WithContext(ctx).Model(&CourseModel{}).Limit(1).Count(&count).Error
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// courses

func (s *GormStore) ListCourses(ctx context.Context) ([]domain.Course, error) {
	var models []CourseModel
	if err := s.db.WithContext(ctx).Order("order_index ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Course, 0, len(models))
	for _, m := range models {
		res = append(res, courseFromModel(m))
	}
	return res, nil
}

func (s *GormStore) GetCourse(ctx context.Context, id string) (domain.Course, bool, error) {
	var model CourseModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return domain.Course{}, false, nil
		}
		return domain.Course{}, false, err
	}
	return courseFromModel(model), true, nil
}

func (s *GormStore) CreateCourse(ctx context.Context, draft domain.CourseDraft) (domain.Course, error) {
	now := time.Now().UTC()
	model := CourseModel{
		ID:           uuid.NewString(),
		Title:        draft.Title,
		Description:  draft.Description,
		Duration:     draft.Duration,
		LessonsCount: draft.LessonsCount,
		IsPremium:    draft.IsPremium,
		ThumbnailURL: draft.ThumbnailURL,
		OrderIndex:   draft.OrderIndex,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Course{}, err
	}
	return courseFromModel(model), nil
}

func (s *GormStore) UpdateCourse(ctx context.Context, id string, patch domain.CoursePatch) (domain.Course, bool, error) {
	var model CourseModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return domain.Course{}, false, nil
		}
		return domain.Course{}, false, err
	}
	if patch.Title != nil {
		model.Title = *patch.Title
	}
	if patch.Description != nil {
		model.Description = *patch.Description
	}
	if patch.Duration != nil {
		model.Duration = *patch.Duration
	}
	if patch.LessonsCount != nil {
		model.LessonsCount = *patch.LessonsCount
	}
	if patch.IsPremium != nil {
		model.IsPremium = *patch.IsPremium
	}
	if patch.ThumbnailURL != nil {
		model.ThumbnailURL = *patch.ThumbnailURL
	}
	if patch.OrderIndex != nil {
		model.OrderIndex = *patch.OrderIndex
	}
	model.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(&model).Error; err != nil {
		return domain.Course{}, false, err
	}
	return courseFromModel(model), true, nil
}

// DeleteCourse removes dependent course videos first, then the course,
// inside one transaction so a failed child delete aborts the parent delete.
func (s *GormStore) DeleteCourse(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&CourseVideoModel{}, "course_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&CourseModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// course videos

func (s *GormStore) ListCourseVideos(ctx context.Context, courseID string) ([]domain.CourseVideo, error) {
	var models []CourseVideoModel
	err := s.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.CourseVideo, 0, len(models))
	for _, m := range models {
		res = append(res, courseVideoFromModel(m))
	}
	return res, nil
}

func (s *GormStore) CreateCourseVideo(ctx context.Context, draft domain.CourseVideoDraft) (domain.CourseVideo, bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&CourseModel{}).Where("id = ?", draft.CourseID).Count(&count).Error; err != nil {
		return domain.CourseVideo{}, false, err
	}
	if count == 0 {
		return domain.CourseVideo{}, false, nil
	}
	now := time.Now().UTC()
	model := CourseVideoModel{
		ID:          uuid.NewString(),
		CourseID:    draft.CourseID,
		Title:       draft.Title,
		Description: draft.Description,
		VideoURL:    draft.VideoURL,
		Duration:    draft.Duration,
		OrderIndex:  draft.OrderIndex,
		IsPreview:   draft.IsPreview,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.CourseVideo{}, false, err
	}
	return courseVideoFromModel(model), true, nil
}

func (s *GormStore) UpdateCourseVideo(ctx context.Context, id string, patch domain.CourseVideoPatch) (domain.CourseVideo, bool, error) {
	var model CourseVideoModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return domain.CourseVideo{}, false, nil
		}
		return domain.CourseVideo{}, false, err
	}
	if patch.Title != nil {
		model.Title = *patch.Title
	}
	if patch.Description != nil {
		model.Description = *patch.Description
	}
	if patch.VideoURL != nil {
		model.VideoURL = *patch.VideoURL
	}
	if patch.Duration != nil {
		model.Duration = *patch.Duration
	}
	if patch.OrderIndex != nil {
		model.OrderIndex = *patch.OrderIndex
	}
	if patch.IsPreview != nil {
		model.IsPreview = *patch.IsPreview
	}
	model.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(&model).Error; err != nil {
		return domain.CourseVideo{}, false, err
	}
	return courseVideoFromModel(model), true, nil
}

func (s *GormStore) DeleteCourseVideo(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&CourseVideoModel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// standalone videos

func (s *GormStore) ListVideos(ctx context.Context) ([]domain.Video, error) {
	var models []VideoModel
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Video, 0, len(models))
	for _, m := range models {
		res = append(res, videoFromModel(m))
	}
	return res, nil
}

func (s *GormStore) CreateVideo(ctx context.Context, draft domain.VideoDraft) (domain.Video, error) {
	now := time.Now().UTC()
	model := VideoModel{
		ID:           uuid.NewString(),
		Title:        draft.Title,
		Description:  draft.Description,
		YouTubeID:    draft.YouTubeID,
		Category:     string(draft.Category),
		Duration:     draft.Duration,
		ViewsCount:   draft.ViewsCount,
		Rating:       draft.Rating,
		IsPremium:    draft.IsPremium,
		ThumbnailURL: draft.ThumbnailURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Video{}, err
	}
	return videoFromModel(model), nil
}

func (s *GormStore) UpdateVideo(ctx context.Context, id string, patch domain.VideoPatch) (domain.Video, bool, error) {
	var model VideoModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return domain.Video{}, false, nil
		}
		return domain.Video{}, false, err
	}
	if patch.Title != nil {
		model.Title = *patch.Title
	}
	if patch.Description != nil {
		model.Description = *patch.Description
	}
	if patch.YouTubeID != nil {
		model.YouTubeID = *patch.YouTubeID
	}
	if patch.Category != nil {
		model.Category = string(*patch.Category)
	}
	if patch.Duration != nil {
		model.Duration = *patch.Duration
	}
	if patch.ViewsCount != nil {
		model.ViewsCount = *patch.ViewsCount
	}
	if patch.Rating != nil {
		model.Rating = *patch.Rating
	}
	if patch.IsPremium != nil {
		model.IsPremium = *patch.IsPremium
	}
	if patch.ThumbnailURL != nil {
		model.ThumbnailURL = *patch.ThumbnailURL
	}
	model.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(&model).Error; err != nil {
		return domain.Video{}, false, err
	}
	return videoFromModel(model), true, nil
}

func (s *GormStore) DeleteVideo(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&VideoModel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// blog posts

func (s *GormStore) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var models []BlogPostModel
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.BlogPost, 0, len(models))
	for _, m := range models {
		res = append(res, blogPostFromModel(m))
	}
	return res, nil
}

func (s *GormStore) ListPublishedBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var models []BlogPostModel
	err := s.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("published_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.BlogPost, 0, len(models))
	for _, m := range models {
		res = append(res, blogPostFromModel(m))
	}
	return res, nil
}

func (s *GormStore) GetBlogPost(ctx context.Context, id string) (domain.BlogPost, bool, error) {
	var model BlogPostModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return domain.BlogPost{}, false, nil
		}
		return domain.BlogPost{}, false, err
	}
	return blogPostFromModel(model), true, nil
}

func (s *GormStore) CreateBlogPost(ctx context.Context, draft domain.BlogPostDraft) (domain.BlogPost, error) {
	now := time.Now().UTC()
	model := BlogPostModel{
		ID:               uuid.NewString(),
		Title:            draft.Title,
		Content:          draft.Content,
		Excerpt:          draft.Excerpt,
		Author:           draft.Author,
		IsPublished:      draft.IsPublished,
		FeaturedImageURL: draft.FeaturedImageURL,
		Tags:             datatypes.NewJSONSlice(append([]string(nil), draft.Tags...)),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if draft.IsPublished {
		publishedAt := now
		model.PublishedAt = &publishedAt
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.BlogPost{}, err
	}
	return blogPostFromModel(model), nil
}

func (s *GormStore) UpdateBlogPost(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, bool, error) {
	var model BlogPostModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return domain.BlogPost{}, false, nil
		}
		return domain.BlogPost{}, false, err
	}
	if patch.Title != nil {
		model.Title = *patch.Title
	}
	if patch.Content != nil {
		model.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		model.Excerpt = *patch.Excerpt
	}
	if patch.Author != nil {
		model.Author = *patch.Author
	}
	if patch.FeaturedImageURL != nil {
		model.FeaturedImageURL = *patch.FeaturedImageURL
	}
	if patch.Tags != nil {
		model.Tags = datatypes.NewJSONSlice(append([]string(nil), (*patch.Tags)...))
	}
	model.UpdatedAt = time.Now().UTC()
	if patch.IsPublished != nil {
		model.IsPublished = *patch.IsPublished
		// First publish stamps published_at; unpublishing keeps the last
		// published timestamp.
		if *patch.IsPublished && model.PublishedAt == nil {
			publishedAt := model.UpdatedAt
			model.PublishedAt = &publishedAt
		}
	}
	if err := s.db.WithContext(ctx).Save(&model).Error; err != nil {
		return domain.BlogPost{}, false, err
	}
	return blogPostFromModel(model), true, nil
}

func (s *GormStore) DeleteBlogPost(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&BlogPostModel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// booking forms

func (s *GormStore) ListBookingForms(ctx context.Context) ([]domain.BookingForm, error) {
	return s.listBookingForms(ctx, nil)
}

func (s *GormStore) ListActiveBookingForms(ctx context.Context) ([]domain.BookingForm, error) {
	return s.listBookingForms(ctx, map[string]any{"is_active": true})
}

func (s *GormStore) listBookingForms(ctx context.Context, conds map[string]any) ([]domain.BookingForm, error) {
	var models []BookingFormModel
	tx := s.db.WithContext(ctx).Order("created_at ASC")
	if conds != nil {
		tx = tx.Where(conds)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.BookingForm, 0, len(models))
	for _, m := range models {
		res = append(res, bookingFormFromModel(m))
	}
	return res, nil
}

func (s *GormStore) CreateBookingForm(ctx context.Context, draft domain.BookingFormDraft) (domain.BookingForm, error) {
	now := time.Now().UTC()
	model := BookingFormModel{
		ID:        uuid.NewString(),
		CoachName: draft.CoachName,
		FormURL:   draft.FormURL,
		IsActive:  draft.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.BookingForm{}, err
	}
	return bookingFormFromModel(model), nil
}

func (s *GormStore) UpdateBookingForm(ctx context.Context, id string, patch domain.BookingFormPatch) (domain.BookingForm, bool, error) {
	var model BookingFormModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return domain.BookingForm{}, false, nil
		}
		return domain.BookingForm{}, false, err
	}
	if patch.CoachName != nil {
		model.CoachName = *patch.CoachName
	}
	if patch.FormURL != nil {
		model.FormURL = *patch.FormURL
	}
	if patch.IsActive != nil {
		model.IsActive = *patch.IsActive
	}
	model.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(&model).Error; err != nil {
		return domain.BookingForm{}, false, err
	}
	return bookingFormFromModel(model), true, nil
}

func (s *GormStore) DeleteBookingForm(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&BookingFormModel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// admin users

func (s *GormStore) ListAdminUsers(ctx context.Context) ([]domain.AdminUser, error) {
	var models []AdminUserModel
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.AdminUser, 0, len(models))
	for _, m := range models {
		res = append(res, adminUserFromModel(m))
	}
	return res, nil
}

func (s *GormStore) GetAdminUserByUsername(ctx context.Context, username string) (domain.AdminUser, bool, error) {
	var model AdminUserModel
	if err := s.db.WithContext(ctx).First(&model, "username = ?", username).Error; err != nil {
		if notFound(err) {
			return domain.AdminUser{}, false, nil
		}
		return domain.AdminUser{}, false, err
	}
	return adminUserFromModel(model), true, nil
}

func (s *GormStore) CreateAdminUser(ctx context.Context, draft domain.AdminUserDraft) (domain.AdminUser, error) {
	now := time.Now().UTC()
	model := AdminUserModel{
		ID:           uuid.NewString(),
		Username:     draft.Username,
		Email:        draft.Email,
		PasswordHash: draft.PasswordHash,
		Role:         string(draft.Role),
		IsActive:     draft.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.AdminUser{}, err
	}
	return adminUserFromModel(model), nil
}

func (s *GormStore) UpdateAdminUser(ctx context.Context, id string, patch domain.AdminUserPatch) (domain.AdminUser, bool, error) {
	var model AdminUserModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return domain.AdminUser{}, false, nil
		}
		return domain.AdminUser{}, false, err
	}
	if patch.Email != nil {
		model.Email = *patch.Email
	}
	if patch.Role != nil {
		model.Role = string(*patch.Role)
	}
	if patch.IsActive != nil {
		model.IsActive = *patch.IsActive
	}
	if patch.LastLogin != nil {
		lastLogin := *patch.LastLogin
		model.LastLogin = &lastLogin
	}
	model.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(&model).Error; err != nil {
		return domain.AdminUser{}, false, err
	}
	return adminUserFromModel(model), true, nil
}

func (s *GormStore) DeleteAdminUser(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&AdminUserModel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// model conversions

func courseFromModel(m CourseModel) domain.Course {
	return domain.Course{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Duration:     m.Duration,
		LessonsCount: m.LessonsCount,
		IsPremium:    m.IsPremium,
		ThumbnailURL: m.ThumbnailURL,
		OrderIndex:   m.OrderIndex,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func courseVideoFromModel(m CourseVideoModel) domain.CourseVideo {
	return domain.CourseVideo{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Title:       m.Title,
		Description: m.Description,
		VideoURL:    m.VideoURL,
		Duration:    m.Duration,
		OrderIndex:  m.OrderIndex,
		IsPreview:   m.IsPreview,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func videoFromModel(m VideoModel) domain.Video {
	return domain.Video{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		YouTubeID:    m.YouTubeID,
		Category:     domain.VideoCategory(m.Category),
		Duration:     m.Duration,
		ViewsCount:   m.ViewsCount,
		Rating:       m.Rating,
		IsPremium:    m.IsPremium,
		ThumbnailURL: m.ThumbnailURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func blogPostFromModel(m BlogPostModel) domain.BlogPost {
	return domain.BlogPost{
		ID:               m.ID,
		Title:            m.Title,
		Content:          m.Content,
		Excerpt:          m.Excerpt,
		Author:           m.Author,
		IsPublished:      m.IsPublished,
		FeaturedImageURL: m.FeaturedImageURL,
		Tags:             append([]string(nil), m.Tags...),
		PublishedAt:      m.PublishedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func bookingFormFromModel(m BookingFormModel) domain.BookingForm {
	return domain.BookingForm{
		ID:        m.ID,
		CoachName: m.CoachName,
		FormURL:   m.FormURL,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func adminUserFromModel(m AdminUserModel) domain.AdminUser {
	return domain.AdminUser{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.AdminRole(m.Role),
		LastLogin:    m.LastLogin,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

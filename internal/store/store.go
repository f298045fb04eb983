package store

import (
	"context"

	"leanacademy/pkg/domain"
)

// Store defines the persistence operations shared by the remote database
// and the in-memory fallback. Both implementations return identically
// shaped records so callers never branch on which mode supplied the data.
//
// "Not found" is reported through the boolean return, never as an error.
type Store interface {
	// courses
	ListCourses(ctx context.Context) ([]domain.Course, error)
	GetCourse(ctx context.Context, id string) (domain.Course, bool, error)
	CreateCourse(ctx context.Context, draft domain.CourseDraft) (domain.Course, error)
	UpdateCourse(ctx context.Context, id string, patch domain.CoursePatch) (domain.Course, bool, error)
	// DeleteCourse also removes every course video owned by the course.
	DeleteCourse(ctx context.Context, id string) (bool, error)

	// course videos
	ListCourseVideos(ctx context.Context, courseID string) ([]domain.CourseVideo, error)
	CreateCourseVideo(ctx context.Context, draft domain.CourseVideoDraft) (domain.CourseVideo, bool, error)
	UpdateCourseVideo(ctx context.Context, id string, patch domain.CourseVideoPatch) (domain.CourseVideo, bool, error)
	DeleteCourseVideo(ctx context.Context, id string) (bool, error)

	// standalone videos
	ListVideos(ctx context.Context) ([]domain.Video, error)
	CreateVideo(ctx context.Context, draft domain.VideoDraft) (domain.Video, error)
	UpdateVideo(ctx context.Context, id string, patch domain.VideoPatch) (domain.Video, bool, error)
	DeleteVideo(ctx context.Context, id string) (bool, error)

	// blog posts
	ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error)
	ListPublishedBlogPosts(ctx context.Context) ([]domain.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (domain.BlogPost, bool, error)
	CreateBlogPost(ctx context.Context, draft domain.BlogPostDraft) (domain.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, bool, error)
	DeleteBlogPost(ctx context.Context, id string) (bool, error)

	// booking forms
	ListBookingForms(ctx context.Context) ([]domain.BookingForm, error)
	ListActiveBookingForms(ctx context.Context) ([]domain.BookingForm, error)
	CreateBookingForm(ctx context.Context, draft domain.BookingFormDraft) (domain.BookingForm, error)
	UpdateBookingForm(ctx context.Context, id string, patch domain.BookingFormPatch) (domain.BookingForm, bool, error)
	DeleteBookingForm(ctx context.Context, id string) (bool, error)

	// admin users
	ListAdminUsers(ctx context.Context) ([]domain.AdminUser, error)
	GetAdminUserByUsername(ctx context.Context, username string) (domain.AdminUser, bool, error)
	CreateAdminUser(ctx context.Context, draft domain.AdminUserDraft) (domain.AdminUser, error)
	UpdateAdminUser(ctx context.Context, id string, patch domain.AdminUserPatch) (domain.AdminUser, bool, error)
	DeleteAdminUser(ctx context.Context, id string) (bool, error)
}

// SessionStore persists admin session tokens.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}

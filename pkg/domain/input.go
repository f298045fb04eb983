package domain

import "time"

// Draft types carry the caller-supplied fields for a create. Identity and
// timestamps are assigned by the store that performs the insert, so the same
// draft produces an identically shaped record in either mode.

type CourseDraft struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Duration     string `json:"duration"`
	LessonsCount int    `json:"lessons_count"`
	IsPremium    bool   `json:"is_premium"`
	ThumbnailURL string `json:"thumbnail_url"`
	OrderIndex   int    `json:"order_index"`
}

type CourseVideoDraft struct {
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    string `json:"duration"`
	OrderIndex  int    `json:"order_index"`
	IsPreview   bool   `json:"is_preview"`
}

type VideoDraft struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	YouTubeID    string        `json:"youtube_id"`
	Category     VideoCategory `json:"category"`
	Duration     string        `json:"duration"`
	ViewsCount   int           `json:"views_count"`
	Rating       float64       `json:"rating"`
	IsPremium    bool          `json:"is_premium"`
	ThumbnailURL string        `json:"thumbnail_url"`
}

type BlogPostDraft struct {
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	Excerpt          string   `json:"excerpt"`
	Author           string   `json:"author"`
	IsPublished      bool     `json:"is_published"`
	FeaturedImageURL string   `json:"featured_image_url"`
	Tags             []string `json:"tags"`
}

type BookingFormDraft struct {
	CoachName string `json:"coach_name"`
	FormURL   string `json:"form_url"`
	IsActive  bool   `json:"is_active"`
}

type AdminUserDraft struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         AdminRole `json:"role"`
	IsActive     bool      `json:"is_active"`
}

// Patch types express partial updates. A nil field is left untouched, so a
// malformed or unknown field can never be merged into a stored record.

type CoursePatch struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Duration     *string `json:"duration"`
	LessonsCount *int    `json:"lessons_count"`
	IsPremium    *bool   `json:"is_premium"`
	ThumbnailURL *string `json:"thumbnail_url"`
	OrderIndex   *int    `json:"order_index"`
}

type CourseVideoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"video_url"`
	Duration    *string `json:"duration"`
	OrderIndex  *int    `json:"order_index"`
	IsPreview   *bool   `json:"is_preview"`
}

type VideoPatch struct {
	Title        *string        `json:"title"`
	Description  *string        `json:"description"`
	YouTubeID    *string        `json:"youtube_id"`
	Category     *VideoCategory `json:"category"`
	Duration     *string        `json:"duration"`
	ViewsCount   *int           `json:"views_count"`
	Rating       *float64       `json:"rating"`
	IsPremium    *bool          `json:"is_premium"`
	ThumbnailURL *string        `json:"thumbnail_url"`
}

type BlogPostPatch struct {
	Title            *string   `json:"title"`
	Content          *string   `json:"content"`
	Excerpt          *string   `json:"excerpt"`
	Author           *string   `json:"author"`
	IsPublished      *bool     `json:"is_published"`
	FeaturedImageURL *string   `json:"featured_image_url"`
	Tags             *[]string `json:"tags"`
}

type BookingFormPatch struct {
	CoachName *string `json:"coach_name"`
	FormURL   *string `json:"form_url"`
	IsActive  *bool   `json:"is_active"`
}

type AdminUserPatch struct {
	Email     *string    `json:"email"`
	Role      *AdminRole `json:"role"`
	IsActive  *bool      `json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
}

// ParseVideoCategory validates a category string.
func ParseVideoCategory(category string) (VideoCategory, bool) {
	switch VideoCategory(category) {
	case CategoryCourses, CategoryTestimonials, CategoryInspiration:
		return VideoCategory(category), true
	default:
		return "", false
	}
}

// ParseAdminRole validates a role string.
func ParseAdminRole(role string) (AdminRole, bool) {
	switch AdminRole(role) {
	case RoleAdmin, RoleSuperAdmin:
		return AdminRole(role), true
	default:
		return "", false
	}
}

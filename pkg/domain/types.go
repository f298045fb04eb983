package domain

import "time"

type VideoCategory string

const (
	CategoryCourses      VideoCategory = "courses"
	CategoryTestimonials VideoCategory = "testimonials"
	CategoryInspiration  VideoCategory = "inspiration"
)

type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "super_admin"
)

type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Duration     string    `json:"duration"`
	LessonsCount int       `json:"lessons_count"`
	IsPremium    bool      `json:"is_premium"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	OrderIndex   int       `json:"order_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CourseVideo struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	Duration    string    `json:"duration"`
	OrderIndex  int       `json:"order_index"`
	IsPreview   bool      `json:"is_preview"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Video struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	YouTubeID    string        `json:"youtube_id"`
	Category     VideoCategory `json:"category"`
	Duration     string        `json:"duration"`
	ViewsCount   int           `json:"views_count"`
	Rating       float64       `json:"rating"`
	IsPremium    bool          `json:"is_premium"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type BlogPost struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	Excerpt          string     `json:"excerpt"`
	Author           string     `json:"author"`
	IsPublished      bool       `json:"is_published"`
	FeaturedImageURL string     `json:"featured_image_url,omitempty"`
	Tags             []string   `json:"tags"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type BookingForm struct {
	ID        string    `json:"id"`
	CoachName string    `json:"coach_name"`
	FormURL   string    `json:"form_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminUser struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         AdminRole  `json:"role"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

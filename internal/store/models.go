package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence. Table names match the hosted schema.

type CourseModel struct {
	ID           string `gorm:"primaryKey"`
	Title        string `gorm:"not null"`
	Description  string
	Duration     string
	LessonsCount int  `gorm:"not null"`
	IsPremium    bool `gorm:"not null"`
	ThumbnailURL string
	OrderIndex   int       `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (CourseModel) TableName() string { return "courses" }

type CourseVideoModel struct {
	ID          string `gorm:"primaryKey"`
	CourseID    string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	VideoURL    string
	Duration    string
	OrderIndex  int       `gorm:"not null"`
	IsPreview   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (CourseVideoModel) TableName() string { return "course_videos" }

type VideoModel struct {
	ID           string `gorm:"primaryKey"`
	Title        string `gorm:"not null"`
	Description  string
	YouTubeID    string `gorm:"column:youtube_id;not null"`
	Category     string `gorm:"not null;index"`
	Duration     string
	ViewsCount   int     `gorm:"not null"`
	Rating       float64 `gorm:"not null"`
	IsPremium    bool    `gorm:"not null"`
	ThumbnailURL string
	CreatedAt    time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (VideoModel) TableName() string { return "videos" }

type BlogPostModel struct {
	ID               string `gorm:"primaryKey"`
	Title            string `gorm:"not null"`
	Content          string
	Excerpt          string
	Author           string
	IsPublished      bool `gorm:"not null;index"`
	FeaturedImageURL string
	Tags             datatypes.JSONSlice[string]
	PublishedAt      *time.Time
	CreatedAt        time.Time `gorm:"not null;index"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (BlogPostModel) TableName() string { return "blog_posts" }

type BookingFormModel struct {
	ID        string    `gorm:"primaryKey"`
	CoachName string    `gorm:"not null"`
	FormURL   string    `gorm:"not null"`
	IsActive  bool      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (BookingFormModel) TableName() string { return "booking_forms" }

type AdminUserModel struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
	LastLogin    *time.Time
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (AdminUserModel) TableName() string { return "admin_users" }

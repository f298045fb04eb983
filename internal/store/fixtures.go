package store

import (
	"context"

	"leanacademy/pkg/auth"
	"leanacademy/pkg/domain"
)

// ProtectedAdminUsername is the seed account that can never be deleted.
const ProtectedAdminUsername = "Divyanshu"

const seedAdminPassword = "Divyanshu 123"

// Seed loads the fixture catalog so every screen has data before any
// backend is configured.
func (m *MemoryStore) Seed() error {
	ctx := context.Background()

	courses := []domain.CourseDraft{
		{Title: "Lean Basics", Description: "Fundamental principles of Lean methodology", Duration: "2 hours", LessonsCount: 8, IsPremium: false, OrderIndex: 1},
		{Title: "Six Sigma Belt Overview", Description: "Understanding the Six Sigma belt system", Duration: "3 hours", LessonsCount: 12, IsPremium: false, OrderIndex: 2},
		{Title: "DMAIC Process", Description: "Define, Measure, Analyze, Improve, Control", Duration: "4 hours", LessonsCount: 16, IsPremium: true, OrderIndex: 3},
		{Title: "5S & Kaizen", Description: "Workplace organization and continuous improvement", Duration: "2.5 hours", LessonsCount: 10, IsPremium: true, OrderIndex: 4},
		{Title: "Agile for Continuous Improvement", Description: "Integrating Agile practices with Lean principles", Duration: "3.5 hours", LessonsCount: 14, IsPremium: true, OrderIndex: 5},
	}
	courseIDs := make([]string, 0, len(courses))
	for _, draft := range courses {
		course, err := m.CreateCourse(ctx, draft)
		if err != nil {
			return err
		}
		courseIDs = append(courseIDs, course.ID)
	}

	courseVideos := []domain.CourseVideoDraft{
		{CourseID: courseIDs[0], Title: "What is Lean?", Description: "An introduction to Lean thinking", VideoURL: "https://www.youtube.com/watch?v=wfsRAZUnonI", Duration: "12:30", OrderIndex: 1, IsPreview: true},
		{CourseID: courseIDs[0], Title: "The Eight Wastes", Description: "Identifying waste in your processes", VideoURL: "https://www.youtube.com/watch?v=QKYdcy6E_bM", Duration: "18:45", OrderIndex: 2, IsPreview: false},
		{CourseID: courseIDs[1], Title: "Belt Levels Explained", Description: "From White Belt to Master Black Belt", VideoURL: "https://www.youtube.com/watch?v=IhH9TgDsWko", Duration: "15:20", OrderIndex: 1, IsPreview: true},
	}
	for _, draft := range courseVideos {
		if _, _, err := m.CreateCourseVideo(ctx, draft); err != nil {
			return err
		}
	}

	videos := []domain.VideoDraft{
		{Title: "Continuous Improvement Mindset", Description: "How small changes compound into big results", YouTubeID: "wfsRAZUnonI", Category: domain.CategoryInspiration, Duration: "10:15", ViewsCount: 1240, Rating: 4.8, IsPremium: false},
		{Title: "Client Success: Manufacturing Turnaround", Description: "A plant cut lead time by 40% with Lean", YouTubeID: "QKYdcy6E_bM", Category: domain.CategoryTestimonials, Duration: "8:42", ViewsCount: 860, Rating: 4.9, IsPremium: false},
		{Title: "DMAIC Walkthrough", Description: "A worked example of the DMAIC cycle", YouTubeID: "IhH9TgDsWko", Category: domain.CategoryCourses, Duration: "22:05", ViewsCount: 2310, Rating: 4.7, IsPremium: true},
	}
	for _, draft := range videos {
		if _, err := m.CreateVideo(ctx, draft); err != nil {
			return err
		}
	}

	posts := []domain.BlogPostDraft{
		{Title: "Getting Started with Lean", Content: "Lean is a way of thinking about value...", Excerpt: "Where to begin when everything feels like waste.", Author: "Divyanshu Singh", IsPublished: true, Tags: []string{"lean", "basics"}},
		{Title: "Why Kaizen Events Fail", Content: "Most kaizen events fail before they start...", Excerpt: "Common pitfalls and how to avoid them.", Author: "Divyanshu Singh", IsPublished: true, Tags: []string{"kaizen", "culture"}},
		{Title: "Draft: Six Sigma Myths", Content: "Work in progress.", Excerpt: "Debunking belt-factory thinking.", Author: "Divyanshu Singh", IsPublished: false, Tags: []string{"six-sigma"}},
	}
	for _, draft := range posts {
		if _, err := m.CreateBlogPost(ctx, draft); err != nil {
			return err
		}
	}

	if _, err := m.CreateBookingForm(ctx, domain.BookingFormDraft{
		CoachName: "Divyanshu Singh",
		FormURL:   "https://forms.gle/coaching-session",
		IsActive:  true,
	}); err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword(seedAdminPassword)
	if err != nil {
		return err
	}
	if _, err := m.CreateAdminUser(ctx, domain.AdminUserDraft{
		Username:     ProtectedAdminUsername,
		Email:        "divyanshu@leanacademy.app",
		PasswordHash: passwordHash,
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	}); err != nil {
		return err
	}
	return nil
}

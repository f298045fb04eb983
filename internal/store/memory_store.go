package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"leanacademy/pkg/domain"
)

// MemoryStore keeps every collection in-process so the app stays usable
// with zero backend configuration. State lives for the process lifetime
// only; it is a fallback, not a database.
type MemoryStore struct {
	mu           sync.RWMutex
	seq          uint64
	courses      []domain.Course
	courseVideos []domain.CourseVideo
	videos       []domain.Video
	blogPosts    []domain.BlogPost
	bookingForms []domain.BookingForm
	adminUsers   []domain.AdminUser
	notify       func()
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetNotifier registers a callback invoked synchronously after every
// mutation, once the store lock has been released.
func (m *MemoryStore) SetNotifier(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = fn
}

func (m *MemoryStore) changed() {
	m.mu.RLock()
	fn := m.notify
	m.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// nextID returns a process-unique identifier. A counter rather than a
// timestamp: rapid successive creates must never collide.
func (m *MemoryStore) nextID() string {
	m.seq++
	return fmt.Sprintf("local-%d", m.seq)
}

func (m *MemoryStore) now() time.Time {
	return time.Now().UTC()
}

// touch returns an updated_at that is strictly after createdAt even when
// the clock has not advanced since the create.
func touch(createdAt time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(createdAt) {
		return createdAt.Add(time.Nanosecond)
	}
	return now
}

// courses

// ListCourses returns a copy of the courses ordered by order_index.
func (m *MemoryStore) ListCourses(_ context.Context) ([]domain.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Course, len(m.courses))
	copy(res, m.courses)
	sort.SliceStable(res, func(i, j int) bool { return res[i].OrderIndex < res[j].OrderIndex })
	return res, nil
}

func (m *MemoryStore) GetCourse(_ context.Context, id string) (domain.Course, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.courses {
		if c.ID == id {
			return c, true, nil
		}
	}
	return domain.Course{}, false, nil
}

func (m *MemoryStore) CreateCourse(_ context.Context, draft domain.CourseDraft) (domain.Course, error) {
	m.mu.Lock()
	now := m.now()
	course := domain.Course{
		ID:           m.nextID(),
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
	m.courses = append(m.courses, course)
	m.mu.Unlock()
	m.changed()
	return course, nil
}

func (m *MemoryStore) UpdateCourse(_ context.Context, id string, patch domain.CoursePatch) (domain.Course, bool, error) {
	m.mu.Lock()
	var updated domain.Course
	found := false
	for i := range m.courses {
		if m.courses[i].ID != id {
			continue
		}
		c := &m.courses[i]
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		if patch.Duration != nil {
			c.Duration = *patch.Duration
		}
		if patch.LessonsCount != nil {
			c.LessonsCount = *patch.LessonsCount
		}
		if patch.IsPremium != nil {
			c.IsPremium = *patch.IsPremium
		}
		if patch.ThumbnailURL != nil {
			c.ThumbnailURL = *patch.ThumbnailURL
		}
		if patch.OrderIndex != nil {
			c.OrderIndex = *patch.OrderIndex
		}
		c.UpdatedAt = touch(c.CreatedAt)
		updated = *c
		found = true
		break
	}
	m.mu.Unlock()
	if found {
		m.changed()
	}
	return updated, found, nil
}

// DeleteCourse removes the course and cascades to its course videos.
func (m *MemoryStore) DeleteCourse(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	kept := m.courses[:0]
	removed := false
	for _, c := range m.courses {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	m.courses = kept
	if removed {
		keptVideos := m.courseVideos[:0]
		for _, v := range m.courseVideos {
			if v.CourseID != id {
				keptVideos = append(keptVideos, v)
			}
		}
		m.courseVideos = keptVideos
	}
	m.mu.Unlock()
	if removed {
		m.changed()
	}
	return removed, nil
}

// course videos

// ListCourseVideos returns the videos of one course ordered by order_index.
func (m *MemoryStore) ListCourseVideos(_ context.Context, courseID string) ([]domain.CourseVideo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.CourseVideo, 0, len(m.courseVideos))
	for _, v := range m.courseVideos {
		if v.CourseID == courseID {
			res = append(res, v)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].OrderIndex < res[j].OrderIndex })
	return res, nil
}

// CreateCourseVideo stores a video under an existing course. The boolean is
// false when the owning course does not exist.
func (m *MemoryStore) CreateCourseVideo(_ context.Context, draft domain.CourseVideoDraft) (domain.CourseVideo, bool, error) {
	m.mu.Lock()
	courseExists := false
	for _, c := range m.courses {
		if c.ID == draft.CourseID {
			courseExists = true
			break
		}
	}
	if !courseExists {
		m.mu.Unlock()
		return domain.CourseVideo{}, false, nil
	}
	now := m.now()
	video := domain.CourseVideo{
		ID:          m.nextID(),
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
	m.courseVideos = append(m.courseVideos, video)
	m.mu.Unlock()
	m.changed()
	return video, true, nil
}

func (m *MemoryStore) UpdateCourseVideo(_ context.Context, id string, patch domain.CourseVideoPatch) (domain.CourseVideo, bool, error) {
	m.mu.Lock()
	var updated domain.CourseVideo
	found := false
	for i := range m.courseVideos {
		if m.courseVideos[i].ID != id {
			continue
		}
		v := &m.courseVideos[i]
		if patch.Title != nil {
			v.Title = *patch.Title
		}
		if patch.Description != nil {
			v.Description = *patch.Description
		}
		if patch.VideoURL != nil {
			v.VideoURL = *patch.VideoURL
		}
		if patch.Duration != nil {
			v.Duration = *patch.Duration
		}
		if patch.OrderIndex != nil {
			v.OrderIndex = *patch.OrderIndex
		}
		if patch.IsPreview != nil {
			v.IsPreview = *patch.IsPreview
		}
		v.UpdatedAt = touch(v.CreatedAt)
		updated = *v
		found = true
		break
	}
	m.mu.Unlock()
	if found {
		m.changed()
	}
	return updated, found, nil
}

func (m *MemoryStore) DeleteCourseVideo(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	kept := m.courseVideos[:0]
	removed := false
	for _, v := range m.courseVideos {
		if v.ID == id {
			removed = true
			continue
		}
		kept = append(kept, v)
	}
	m.courseVideos = kept
	m.mu.Unlock()
	if removed {
		m.changed()
	}
	return removed, nil
}

// standalone videos

// ListVideos returns a copy of the video library in insertion order.
func (m *MemoryStore) ListVideos(_ context.Context) ([]domain.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Video, len(m.videos))
	copy(res, m.videos)
	return res, nil
}

func (m *MemoryStore) CreateVideo(_ context.Context, draft domain.VideoDraft) (domain.Video, error) {
	m.mu.Lock()
	now := m.now()
	video := domain.Video{
		ID:           m.nextID(),
		Title:        draft.Title,
		Description:  draft.Description,
		YouTubeID:    draft.YouTubeID,
		Category:     draft.Category,
		Duration:     draft.Duration,
		ViewsCount:   draft.ViewsCount,
		Rating:       draft.Rating,
		IsPremium:    draft.IsPremium,
		ThumbnailURL: draft.ThumbnailURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.videos = append(m.videos, video)
	m.mu.Unlock()
	m.changed()
	return video, nil
}

func (m *MemoryStore) UpdateVideo(_ context.Context, id string, patch domain.VideoPatch) (domain.Video, bool, error) {
	m.mu.Lock()
	var updated domain.Video
	found := false
	for i := range m.videos {
		if m.videos[i].ID != id {
			continue
		}
		v := &m.videos[i]
		if patch.Title != nil {
			v.Title = *patch.Title
		}
		if patch.Description != nil {
			v.Description = *patch.Description
		}
		if patch.YouTubeID != nil {
			v.YouTubeID = *patch.YouTubeID
		}
		if patch.Category != nil {
			v.Category = *patch.Category
		}
		if patch.Duration != nil {
			v.Duration = *patch.Duration
		}
		if patch.ViewsCount != nil {
			v.ViewsCount = *patch.ViewsCount
		}
		if patch.Rating != nil {
			v.Rating = *patch.Rating
		}
		if patch.IsPremium != nil {
			v.IsPremium = *patch.IsPremium
		}
		if patch.ThumbnailURL != nil {
			v.ThumbnailURL = *patch.ThumbnailURL
		}
		v.UpdatedAt = touch(v.CreatedAt)
		updated = *v
		found = true
		break
	}
	m.mu.Unlock()
	if found {
		m.changed()
	}
	return updated, found, nil
}

func (m *MemoryStore) DeleteVideo(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	kept := m.videos[:0]
	removed := false
	for _, v := range m.videos {
		if v.ID == id {
			removed = true
			continue
		}
		kept = append(kept, v)
	}
	m.videos = kept
	m.mu.Unlock()
	if removed {
		m.changed()
	}
	return removed, nil
}

// blog posts

// ListBlogPosts returns all posts, newest first. New posts are prepended on
// create so the order needs no explicit sort.
func (m *MemoryStore) ListBlogPosts(_ context.Context) ([]domain.BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.BlogPost, len(m.blogPosts))
	for i, p := range m.blogPosts {
		res[i] = clonePost(p)
	}
	return res, nil
}

func (m *MemoryStore) ListPublishedBlogPosts(_ context.Context) ([]domain.BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.BlogPost, 0, len(m.blogPosts))
	for _, p := range m.blogPosts {
		if p.IsPublished {
			res = append(res, clonePost(p))
		}
	}
	return res, nil
}

func (m *MemoryStore) GetBlogPost(_ context.Context, id string) (domain.BlogPost, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.blogPosts {
		if p.ID == id {
			return clonePost(p), true, nil
		}
	}
	return domain.BlogPost{}, false, nil
}

func (m *MemoryStore) CreateBlogPost(_ context.Context, draft domain.BlogPostDraft) (domain.BlogPost, error) {
	m.mu.Lock()
	now := m.now()
	post := domain.BlogPost{
		ID:               m.nextID(),
		Title:            draft.Title,
		Content:          draft.Content,
		Excerpt:          draft.Excerpt,
		Author:           draft.Author,
		IsPublished:      draft.IsPublished,
		FeaturedImageURL: draft.FeaturedImageURL,
		Tags:             append([]string(nil), draft.Tags...),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if draft.IsPublished {
		publishedAt := now
		post.PublishedAt = &publishedAt
	}
	m.blogPosts = append([]domain.BlogPost{post}, m.blogPosts...)
	m.mu.Unlock()
	m.changed()
	return clonePost(post), nil
}

func (m *MemoryStore) UpdateBlogPost(_ context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, bool, error) {
	m.mu.Lock()
	var updated domain.BlogPost
	found := false
	for i := range m.blogPosts {
		if m.blogPosts[i].ID != id {
			continue
		}
		p := &m.blogPosts[i]
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.Excerpt != nil {
			p.Excerpt = *patch.Excerpt
		}
		if patch.Author != nil {
			p.Author = *patch.Author
		}
		if patch.FeaturedImageURL != nil {
			p.FeaturedImageURL = *patch.FeaturedImageURL
		}
		if patch.Tags != nil {
			p.Tags = append([]string(nil), (*patch.Tags)...)
		}
		p.UpdatedAt = touch(p.CreatedAt)
		if patch.IsPublished != nil {
			p.IsPublished = *patch.IsPublished
			// First publish stamps published_at; unpublishing keeps the
			// last published timestamp.
			if *patch.IsPublished && p.PublishedAt == nil {
				publishedAt := p.UpdatedAt
				p.PublishedAt = &publishedAt
			}
		}
		updated = clonePost(*p)
		found = true
		break
	}
	m.mu.Unlock()
	if found {
		m.changed()
	}
	return updated, found, nil
}

func (m *MemoryStore) DeleteBlogPost(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	kept := m.blogPosts[:0]
	removed := false
	for _, p := range m.blogPosts {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	m.blogPosts = kept
	m.mu.Unlock()
	if removed {
		m.changed()
	}
	return removed, nil
}

// booking forms

func (m *MemoryStore) ListBookingForms(_ context.Context) ([]domain.BookingForm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.BookingForm, len(m.bookingForms))
	copy(res, m.bookingForms)
	return res, nil
}

func (m *MemoryStore) ListActiveBookingForms(_ context.Context) ([]domain.BookingForm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.BookingForm, 0, len(m.bookingForms))
	for _, f := range m.bookingForms {
		if f.IsActive {
			res = append(res, f)
		}
	}
	return res, nil
}

func (m *MemoryStore) CreateBookingForm(_ context.Context, draft domain.BookingFormDraft) (domain.BookingForm, error) {
	m.mu.Lock()
	now := m.now()
	form := domain.BookingForm{
		ID:        m.nextID(),
		CoachName: draft.CoachName,
		FormURL:   draft.FormURL,
		IsActive:  draft.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.bookingForms = append(m.bookingForms, form)
	m.mu.Unlock()
	m.changed()
	return form, nil
}

func (m *MemoryStore) UpdateBookingForm(_ context.Context, id string, patch domain.BookingFormPatch) (domain.BookingForm, bool, error) {
	m.mu.Lock()
	var updated domain.BookingForm
	found := false
	for i := range m.bookingForms {
		if m.bookingForms[i].ID != id {
			continue
		}
		f := &m.bookingForms[i]
		if patch.CoachName != nil {
			f.CoachName = *patch.CoachName
		}
		if patch.FormURL != nil {
			f.FormURL = *patch.FormURL
		}
		if patch.IsActive != nil {
			f.IsActive = *patch.IsActive
		}
		f.UpdatedAt = touch(f.CreatedAt)
		updated = *f
		found = true
		break
	}
	m.mu.Unlock()
	if found {
		m.changed()
	}
	return updated, found, nil
}

func (m *MemoryStore) DeleteBookingForm(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	kept := m.bookingForms[:0]
	removed := false
	for _, f := range m.bookingForms {
		if f.ID == id {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	m.bookingForms = kept
	m.mu.Unlock()
	if removed {
		m.changed()
	}
	return removed, nil
}

// admin users

func (m *MemoryStore) ListAdminUsers(_ context.Context) ([]domain.AdminUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.AdminUser, len(m.adminUsers))
	for i, u := range m.adminUsers {
		res[i] = cloneAdmin(u)
	}
	return res, nil
}

func (m *MemoryStore) GetAdminUserByUsername(_ context.Context, username string) (domain.AdminUser, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.adminUsers {
		if u.Username == username {
			return cloneAdmin(u), true, nil
		}
	}
	return domain.AdminUser{}, false, nil
}

func (m *MemoryStore) CreateAdminUser(_ context.Context, draft domain.AdminUserDraft) (domain.AdminUser, error) {
	m.mu.Lock()
	now := m.now()
	user := domain.AdminUser{
		ID:           m.nextID(),
		Username:     draft.Username,
		Email:        draft.Email,
		PasswordHash: draft.PasswordHash,
		Role:         draft.Role,
		IsActive:     draft.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.adminUsers = append(m.adminUsers, user)
	m.mu.Unlock()
	m.changed()
	return user, nil
}

func (m *MemoryStore) UpdateAdminUser(_ context.Context, id string, patch domain.AdminUserPatch) (domain.AdminUser, bool, error) {
	m.mu.Lock()
	var updated domain.AdminUser
	found := false
	for i := range m.adminUsers {
		if m.adminUsers[i].ID != id {
			continue
		}
		u := &m.adminUsers[i]
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Role != nil {
			u.Role = *patch.Role
		}
		if patch.IsActive != nil {
			u.IsActive = *patch.IsActive
		}
		if patch.LastLogin != nil {
			lastLogin := *patch.LastLogin
			u.LastLogin = &lastLogin
		}
		u.UpdatedAt = touch(u.CreatedAt)
		updated = cloneAdmin(*u)
		found = true
		break
	}
	m.mu.Unlock()
	if found {
		m.changed()
	}
	return updated, found, nil
}

func (m *MemoryStore) DeleteAdminUser(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	kept := m.adminUsers[:0]
	removed := false
	for _, u := range m.adminUsers {
		if u.ID == id {
			removed = true
			continue
		}
		kept = append(kept, u)
	}
	m.adminUsers = kept
	m.mu.Unlock()
	if removed {
		m.changed()
	}
	return removed, nil
}

// clonePost deep-copies the fields that would otherwise alias internal state.
func clonePost(p domain.BlogPost) domain.BlogPost {
	p.Tags = append([]string(nil), p.Tags...)
	if p.PublishedAt != nil {
		publishedAt := *p.PublishedAt
		p.PublishedAt = &publishedAt
	}
	return p
}

func cloneAdmin(u domain.AdminUser) domain.AdminUser {
	if u.LastLogin != nil {
		lastLogin := *u.LastLogin
		u.LastLogin = &lastLogin
	}
	return u
}

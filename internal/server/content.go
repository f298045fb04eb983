package server

import (
	"net/http"
	"strings"

	"leanacademy/pkg/domain"
)

// public content

// handleContent returns every public collection in one payload, for the
// app's initial load.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	snap, src := s.app.Snapshot(r.Context())
	writeItem(w, src, snap)
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	courses, src := s.app.ListCourses(r.Context())
	writeList(w, src, courses, len(courses))
}

// handleCourseByID serves /api/courses/{id} and /api/courses/{id}/videos.
func (s *Server) handleCourseByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/courses/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		notFound(w)
		return
	}
	if len(parts) == 2 {
		if parts[1] != "videos" {
			notFound(w)
			return
		}
		videos, src := s.app.ListCourseVideos(r.Context(), id)
		writeList(w, src, videos, len(videos))
		return
	}
	course, found, src := s.app.GetCourse(r.Context(), id)
	if !found {
		notFound(w)
		return
	}
	writeItem(w, src, course)
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	videos, src := s.app.ListVideos(r.Context())
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, ok := domain.ParseVideoCategory(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid category")
			return
		}
		filtered := videos[:0]
		for _, v := range videos {
			if v.Category == category {
				filtered = append(filtered, v)
			}
		}
		videos = filtered
	}
	writeList(w, src, videos, len(videos))
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	posts, src := s.app.ListPublishedBlogPosts(r.Context())
	writeList(w, src, posts, len(posts))
}

// handleBlogByID serves a single post. Drafts stay hidden on the public
// route even when fetched by id.
func (s *Server) handleBlogByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id, ok := pathID(r, "/api/blog/")
	if !ok {
		notFound(w)
		return
	}
	post, found, src := s.app.GetBlogPost(r.Context(), id)
	if !found || !post.IsPublished {
		notFound(w)
		return
	}
	writeItem(w, src, post)
}

func (s *Server) handleBookingForms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	forms, src := s.app.ListActiveBookingForms(r.Context())
	writeList(w, src, forms, len(forms))
}

// admin: courses

func (s *Server) handleAdminCourses(w http.ResponseWriter, r *http.Request, _ string) {
	switch r.Method {
	case http.MethodGet:
		courses, src := s.app.ListCourses(r.Context())
		writeList(w, src, courses, len(courses))
	case http.MethodPost:
		var draft domain.CourseDraft
		if err := decodeJSON(r, &draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if draft.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		course, err := s.app.CreateCourse(r.Context(), draft)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, course)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAdminCourseByID(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(r, "/api/admin/courses/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var patch domain.CoursePatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		course, found, err := s.app.UpdateCourse(r.Context(), id, patch)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !found {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, course)
	case http.MethodDelete:
		removed, err := s.app.DeleteCourse(r.Context(), id)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !removed {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

// admin: course videos

func (s *Server) handleAdminCourseVideos(w http.ResponseWriter, r *http.Request, _ string) {
	switch r.Method {
	case http.MethodGet:
		courseID := r.URL.Query().Get("course_id")
		if courseID == "" {
			writeError(w, http.StatusBadRequest, "course_id is required")
			return
		}
		videos, src := s.app.ListCourseVideos(r.Context(), courseID)
		writeList(w, src, videos, len(videos))
	case http.MethodPost:
		var draft domain.CourseVideoDraft
		if err := decodeJSON(r, &draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if draft.CourseID == "" || draft.Title == "" {
			writeError(w, http.StatusBadRequest, "course_id and title are required")
			return
		}
		video, courseExists, err := s.app.CreateCourseVideo(r.Context(), draft)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !courseExists {
			writeError(w, http.StatusNotFound, "course not found")
			return
		}
		writeJSON(w, http.StatusCreated, video)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAdminCourseVideoByID(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(r, "/api/admin/course-videos/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var patch domain.CourseVideoPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		video, found, err := s.app.UpdateCourseVideo(r.Context(), id, patch)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !found {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, video)
	case http.MethodDelete:
		removed, err := s.app.DeleteCourseVideo(r.Context(), id)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !removed {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

// admin: standalone videos

func (s *Server) handleAdminVideos(w http.ResponseWriter, r *http.Request, _ string) {
	switch r.Method {
	case http.MethodGet:
		videos, src := s.app.ListVideos(r.Context())
		writeList(w, src, videos, len(videos))
	case http.MethodPost:
		var draft domain.VideoDraft
		if err := decodeJSON(r, &draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if draft.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		if _, ok := domain.ParseVideoCategory(string(draft.Category)); !ok {
			writeError(w, http.StatusBadRequest, "invalid category")
			return
		}
		video, err := s.app.CreateVideo(r.Context(), draft)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, video)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAdminVideoByID(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(r, "/api/admin/videos/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var patch domain.VideoPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if patch.Category != nil {
			if _, ok := domain.ParseVideoCategory(string(*patch.Category)); !ok {
				writeError(w, http.StatusBadRequest, "invalid category")
				return
			}
		}
		video, found, err := s.app.UpdateVideo(r.Context(), id, patch)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !found {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, video)
	case http.MethodDelete:
		removed, err := s.app.DeleteVideo(r.Context(), id)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !removed {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

// admin: blog

func (s *Server) handleAdminBlog(w http.ResponseWriter, r *http.Request, _ string) {
	switch r.Method {
	case http.MethodGet:
		posts, src := s.app.ListBlogPosts(r.Context())
		writeList(w, src, posts, len(posts))
	case http.MethodPost:
		var draft domain.BlogPostDraft
		if err := decodeJSON(r, &draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if draft.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		post, err := s.app.CreateBlogPost(r.Context(), draft)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAdminBlogByID(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(r, "/api/admin/blog/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		post, found, src := s.app.GetBlogPost(r.Context(), id)
		if !found {
			notFound(w)
			return
		}
		writeItem(w, src, post)
	case http.MethodPut:
		var patch domain.BlogPostPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		post, found, err := s.app.UpdateBlogPost(r.Context(), id, patch)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !found {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, post)
	case http.MethodDelete:
		removed, err := s.app.DeleteBlogPost(r.Context(), id)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !removed {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

// admin: booking forms

func (s *Server) handleAdminBookingForms(w http.ResponseWriter, r *http.Request, _ string) {
	switch r.Method {
	case http.MethodGet:
		forms, src := s.app.ListBookingForms(r.Context())
		writeList(w, src, forms, len(forms))
	case http.MethodPost:
		var draft domain.BookingFormDraft
		if err := decodeJSON(r, &draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if draft.CoachName == "" || draft.FormURL == "" {
			writeError(w, http.StatusBadRequest, "coach_name and form_url are required")
			return
		}
		form, err := s.app.CreateBookingForm(r.Context(), draft)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, form)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAdminBookingFormByID(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(r, "/api/admin/booking-forms/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var patch domain.BookingFormPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		form, found, err := s.app.UpdateBookingForm(r.Context(), id, patch)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !found {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, form)
	case http.MethodDelete:
		removed, err := s.app.DeleteBookingForm(r.Context(), id)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !removed {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

// admin: users

type adminUserCreateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request, _ string) {
	switch r.Method {
	case http.MethodGet:
		users, src := s.app.ListAdminUsers(r.Context())
		writeList(w, src, users, len(users))
	case http.MethodPost:
		var req adminUserCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}
		role := domain.RoleAdmin
		if req.Role != "" {
			parsed, ok := domain.ParseAdminRole(req.Role)
			if !ok {
				writeError(w, http.StatusBadRequest, "invalid role")
				return
			}
			role = parsed
		}
		user, err := s.app.CreateAdminUser(r.Context(), req.Username, req.Email, req.Password, role)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, user)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAdminUserByID(w http.ResponseWriter, r *http.Request, _ string) {
	id, ok := pathID(r, "/api/admin/users/")
	if !ok {
		notFound(w)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var patch domain.AdminUserPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if patch.Role != nil {
			if _, ok := domain.ParseAdminRole(string(*patch.Role)); !ok {
				writeError(w, http.StatusBadRequest, "invalid role")
				return
			}
		}
		user, found, err := s.app.UpdateAdminUser(r.Context(), id, patch)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !found {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, user)
	case http.MethodDelete:
		removed, err := s.app.DeleteAdminUser(r.Context(), id)
		if err != nil {
			writeWriteError(w, err)
			return
		}
		if !removed {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

package app

import (
	"context"

	"leanacademy/pkg/domain"
)

// courses

func (a *App) ListCourses(ctx context.Context) ([]domain.Course, Source) {
	if a.remote == nil {
		courses, _ := a.local.ListCourses(ctx)
		return courses, SourceLocal
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	courses, err := a.remote.ListCourses(rctx)
	if err != nil {
		a.readFallback("fetch courses", err)
		courses, _ := a.local.ListCourses(ctx)
		return courses, SourceLocal
	}
	return courses, SourceRemote
}

func (a *App) GetCourse(ctx context.Context, id string) (domain.Course, bool, Source) {
	if a.remote == nil {
		course, found, _ := a.local.GetCourse(ctx, id)
		return course, found, SourceLocal
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	course, found, err := a.remote.GetCourse(rctx, id)
	if err != nil {
		a.readFallback("fetch course", err)
		course, found, _ := a.local.GetCourse(ctx, id)
		return course, found, SourceLocal
	}
	return course, found, SourceRemote
}

func (a *App) CreateCourse(ctx context.Context, draft domain.CourseDraft) (domain.Course, error) {
	if a.remote == nil {
		course, _ := a.local.CreateCourse(ctx, draft)
		return course, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	course, err := a.remote.CreateCourse(rctx, draft)
	if err != nil {
		return domain.Course{}, a.writeErr("create course", err)
	}
	return course, nil
}

func (a *App) UpdateCourse(ctx context.Context, id string, patch domain.CoursePatch) (domain.Course, bool, error) {
	if a.remote == nil {
		course, found, _ := a.local.UpdateCourse(ctx, id, patch)
		return course, found, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	course, found, err := a.remote.UpdateCourse(rctx, id, patch)
	if err != nil {
		return domain.Course{}, false, a.writeErr("update course", err)
	}
	return course, found, nil
}

func (a *App) DeleteCourse(ctx context.Context, id string) (bool, error) {
	if a.remote == nil {
		removed, _ := a.local.DeleteCourse(ctx, id)
		return removed, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	removed, err := a.remote.DeleteCourse(rctx, id)
	if err != nil {
		return false, a.writeErr("delete course", err)
	}
	return removed, nil
}

// course videos

func (a *App) ListCourseVideos(ctx context.Context, courseID string) ([]domain.CourseVideo, Source) {
	if a.remote == nil {
		videos, _ := a.local.ListCourseVideos(ctx, courseID)
		return videos, SourceLocal
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	videos, err := a.remote.ListCourseVideos(rctx, courseID)
	if err != nil {
		a.readFallback("fetch course videos", err)
		videos, _ := a.local.ListCourseVideos(ctx, courseID)
		return videos, SourceLocal
	}
	return videos, SourceRemote
}

// CreateCourseVideo reports false when the owning course does not exist.
func (a *App) CreateCourseVideo(ctx context.Context, draft domain.CourseVideoDraft) (domain.CourseVideo, bool, error) {
	if a.remote == nil {
		video, ok, _ := a.local.CreateCourseVideo(ctx, draft)
		return video, ok, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	video, ok, err := a.remote.CreateCourseVideo(rctx, draft)
	if err != nil {
		return domain.CourseVideo{}, false, a.writeErr("create course video", err)
	}
	return video, ok, nil
}

func (a *App) UpdateCourseVideo(ctx context.Context, id string, patch domain.CourseVideoPatch) (domain.CourseVideo, bool, error) {
	if a.remote == nil {
		video, found, _ := a.local.UpdateCourseVideo(ctx, id, patch)
		return video, found, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	video, found, err := a.remote.UpdateCourseVideo(rctx, id, patch)
	if err != nil {
		return domain.CourseVideo{}, false, a.writeErr("update course video", err)
	}
	return video, found, nil
}

func (a *App) DeleteCourseVideo(ctx context.Context, id string) (bool, error) {
	if a.remote == nil {
		removed, _ := a.local.DeleteCourseVideo(ctx, id)
		return removed, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	removed, err := a.remote.DeleteCourseVideo(rctx, id)
	if err != nil {
		return false, a.writeErr("delete course video", err)
	}
	return removed, nil
}

// standalone videos

func (a *App) ListVideos(ctx context.Context) ([]domain.Video, Source) {
	if a.remote == nil {
		videos, _ := a.local.ListVideos(ctx)
		return videos, SourceLocal
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	videos, err := a.remote.ListVideos(rctx)
	if err != nil {
		a.readFallback("fetch videos", err)
		videos, _ := a.local.ListVideos(ctx)
		return videos, SourceLocal
	}
	return videos, SourceRemote
}

func (a *App) CreateVideo(ctx context.Context, draft domain.VideoDraft) (domain.Video, error) {
	if a.remote == nil {
		video, _ := a.local.CreateVideo(ctx, draft)
		return video, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	video, err := a.remote.CreateVideo(rctx, draft)
	if err != nil {
		return domain.Video{}, a.writeErr("create video", err)
	}
	return video, nil
}

func (a *App) UpdateVideo(ctx context.Context, id string, patch domain.VideoPatch) (domain.Video, bool, error) {
	if a.remote == nil {
		video, found, _ := a.local.UpdateVideo(ctx, id, patch)
		return video, found, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	video, found, err := a.remote.UpdateVideo(rctx, id, patch)
	if err != nil {
		return domain.Video{}, false, a.writeErr("update video", err)
	}
	return video, found, nil
}

func (a *App) DeleteVideo(ctx context.Context, id string) (bool, error) {
	if a.remote == nil {
		removed, _ := a.local.DeleteVideo(ctx, id)
		return removed, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	removed, err := a.remote.DeleteVideo(rctx, id)
	if err != nil {
		return false, a.writeErr("delete video", err)
	}
	return removed, nil
}

// blog posts

func (a *App) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, Source) {
	if a.remote == nil {
		posts, _ := a.local.ListBlogPosts(ctx)
		return posts, SourceLocal
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	posts, err := a.remote.ListBlogPosts(rctx)
	if err != nil {
		a.readFallback("fetch blog posts", err)
		posts, _ := a.local.ListBlogPosts(ctx)
		return posts, SourceLocal
	}
	return posts, SourceRemote
}

func (a *App) ListPublishedBlogPosts(ctx context.Context) ([]domain.BlogPost, Source) {
	if a.remote == nil {
		posts, _ := a.local.ListPublishedBlogPosts(ctx)
		return posts, SourceLocal
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	posts, err := a.remote.ListPublishedBlogPosts(rctx)
	if err != nil {
		a.readFallback("fetch published blog posts", err)
		posts, _ := a.local.ListPublishedBlogPosts(ctx)
		return posts, SourceLocal
	}
	return posts, SourceRemote
}

func (a *App) GetBlogPost(ctx context.Context, id string) (domain.BlogPost, bool, Source) {
	if a.remote == nil {
		post, found, _ := a.local.GetBlogPost(ctx, id)
		return post, found, SourceLocal
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	post, found, err := a.remote.GetBlogPost(rctx, id)
	if err != nil {
		a.readFallback("fetch blog post", err)
		post, found, _ := a.local.GetBlogPost(ctx, id)
		return post, found, SourceLocal
	}
	return post, found, SourceRemote
}

// CreateBlogPost fills in a derived excerpt when the author omitted one.
func (a *App) CreateBlogPost(ctx context.Context, draft domain.BlogPostDraft) (domain.BlogPost, error) {
	if draft.Excerpt == "" {
		draft.Excerpt = deriveExcerpt(draft.Content)
	}
	if a.remote == nil {
		post, _ := a.local.CreateBlogPost(ctx, draft)
		return post, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	post, err := a.remote.CreateBlogPost(rctx, draft)
	if err != nil {
		return domain.BlogPost{}, a.writeErr("create blog post", err)
	}
	return post, nil
}

func (a *App) UpdateBlogPost(ctx context.Context, id string, patch domain.BlogPostPatch) (domain.BlogPost, bool, error) {
	if a.remote == nil {
		post, found, _ := a.local.UpdateBlogPost(ctx, id, patch)
		return post, found, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	post, found, err := a.remote.UpdateBlogPost(rctx, id, patch)
	if err != nil {
		return domain.BlogPost{}, false, a.writeErr("update blog post", err)
	}
	return post, found, nil
}

func (a *App) DeleteBlogPost(ctx context.Context, id string) (bool, error) {
	if a.remote == nil {
		removed, _ := a.local.DeleteBlogPost(ctx, id)
		return removed, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	removed, err := a.remote.DeleteBlogPost(rctx, id)
	if err != nil {
		return false, a.writeErr("delete blog post", err)
	}
	return removed, nil
}

// booking forms

func (a *App) ListBookingForms(ctx context.Context) ([]domain.BookingForm, Source) {
	if a.remote == nil {
		forms, _ := a.local.ListBookingForms(ctx)
		return forms, SourceLocal
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	forms, err := a.remote.ListBookingForms(rctx)
	if err != nil {
		a.readFallback("fetch booking forms", err)
		forms, _ := a.local.ListBookingForms(ctx)
		return forms, SourceLocal
	}
	return forms, SourceRemote
}

func (a *App) ListActiveBookingForms(ctx context.Context) ([]domain.BookingForm, Source) {
	if a.remote == nil {
		forms, _ := a.local.ListActiveBookingForms(ctx)
		return forms, SourceLocal
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	forms, err := a.remote.ListActiveBookingForms(rctx)
	if err != nil {
		a.readFallback("fetch active booking forms", err)
		forms, _ := a.local.ListActiveBookingForms(ctx)
		return forms, SourceLocal
	}
	return forms, SourceRemote
}

func (a *App) CreateBookingForm(ctx context.Context, draft domain.BookingFormDraft) (domain.BookingForm, error) {
	if a.remote == nil {
		form, _ := a.local.CreateBookingForm(ctx, draft)
		return form, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	form, err := a.remote.CreateBookingForm(rctx, draft)
	if err != nil {
		return domain.BookingForm{}, a.writeErr("create booking form", err)
	}
	return form, nil
}

func (a *App) UpdateBookingForm(ctx context.Context, id string, patch domain.BookingFormPatch) (domain.BookingForm, bool, error) {
	if a.remote == nil {
		form, found, _ := a.local.UpdateBookingForm(ctx, id, patch)
		return form, found, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	form, found, err := a.remote.UpdateBookingForm(rctx, id, patch)
	if err != nil {
		return domain.BookingForm{}, false, a.writeErr("update booking form", err)
	}
	return form, found, nil
}

func (a *App) DeleteBookingForm(ctx context.Context, id string) (bool, error) {
	if a.remote == nil {
		removed, _ := a.local.DeleteBookingForm(ctx, id)
		return removed, nil
	}
	rctx, cancel := a.remoteCtx(ctx)
	defer cancel()
	removed, err := a.remote.DeleteBookingForm(rctx, id)
	if err != nil {
		return false, a.writeErr("delete booking form", err)
	}
	return removed, nil
}

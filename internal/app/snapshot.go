package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"leanacademy/pkg/domain"
)

// ContentSnapshot bundles the public collections the mobile app needs on
// first load.
type ContentSnapshot struct {
	Courses      []domain.Course      `json:"courses"`
	Videos       []domain.Video       `json:"videos"`
	BlogPosts    []domain.BlogPost    `json:"blog_posts"`
	BookingForms []domain.BookingForm `json:"booking_forms"`
}

// Snapshot loads the public collections concurrently. The reported source
// is local when any collection had to fall back.
func (a *App) Snapshot(ctx context.Context) (ContentSnapshot, Source) {
	var (
		snap ContentSnapshot
		srcs [4]Source
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	g.Go(func() error {
		snap.Courses, srcs[0] = a.ListCourses(gctx)
		return nil
	})
	g.Go(func() error {
		snap.Videos, srcs[1] = a.ListVideos(gctx)
		return nil
	})
	g.Go(func() error {
		snap.BlogPosts, srcs[2] = a.ListPublishedBlogPosts(gctx)
		return nil
	})
	g.Go(func() error {
		snap.BookingForms, srcs[3] = a.ListActiveBookingForms(gctx)
		return nil
	})
	_ = g.Wait()
	src := SourceRemote
	if a.remote == nil {
		src = SourceLocal
	}
	for _, each := range srcs {
		if each == SourceLocal {
			src = SourceLocal
		}
	}
	return snap, src
}

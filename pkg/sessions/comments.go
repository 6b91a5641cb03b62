package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// DefaultCommentPollInterval is the refresh cadence for open comment feeds.
const DefaultCommentPollInterval = 5 * time.Second

// CommentAPI is the slice of the persistence boundary the comment feed uses.
// *api.Client satisfies it.
type CommentAPI interface {
	Comments(ctx context.Context, templateID string) ([]model.Comment, error)
	PostComment(ctx context.Context, templateID, text string) ([]model.Comment, error)
}

// CommentFeed polls a template's comment thread while it is on screen. The
// service offers no push channel, so the feed refreshes on an interval and
// stops when its context is cancelled.
type CommentFeed struct {
	api      CommentAPI
	interval time.Duration
	log      zerolog.Logger
}

// CommentFeedOption configures a CommentFeed.
type CommentFeedOption func(*CommentFeed)

// WithPollInterval overrides the refresh cadence.
func WithPollInterval(interval time.Duration) CommentFeedOption {
	return func(f *CommentFeed) {
		if interval > 0 {
			f.interval = interval
		}
	}
}

// WithCommentLogger attaches a structured logger.
func WithCommentLogger(log zerolog.Logger) CommentFeedOption {
	return func(f *CommentFeed) {
		f.log = log
	}
}

// NewCommentFeed wires a comment feed against the persistence boundary.
func NewCommentFeed(client CommentAPI, options ...CommentFeedOption) *CommentFeed {
	f := &CommentFeed{
		api:      client,
		interval: DefaultCommentPollInterval,
		log:      zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Run fetches the thread immediately, then refreshes on the poll interval,
// invoking onUpdate with each fetched thread. Fetch failures are logged and
// the loop keeps polling. Run returns when ctx is cancelled.
func (f *CommentFeed) Run(ctx context.Context, templateID string, onUpdate func([]model.Comment)) error {
	if ctx == nil {
		return errors.New("sessions: context is required")
	}
	if onUpdate == nil {
		return errors.New("sessions: update callback is required")
	}

	f.refresh(ctx, templateID, onUpdate)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			f.refresh(ctx, templateID, onUpdate)
		}
	}
}

// Post appends a comment and returns the refreshed thread.
func (f *CommentFeed) Post(ctx context.Context, templateID, text string) ([]model.Comment, error) {
	return f.api.PostComment(ctx, templateID, text)
}

func (f *CommentFeed) refresh(ctx context.Context, templateID string, onUpdate func([]model.Comment)) {
	comments, err := f.api.Comments(ctx, templateID)
	if err != nil {
		if ctx.Err() == nil {
			f.log.Warn().Err(err).Str("template", templateID).Msg("comment refresh failed")
		}
		return
	}
	onUpdate(comments)
}

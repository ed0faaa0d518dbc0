package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/campuslink-dev/campuslink/internal/domain"
	"github.com/campuslink-dev/campuslink/internal/logger"
)

var (
	sweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifecycle_sweeps_total",
		Help: "Total number of post lifecycle sweeps executed",
	})
	postTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_post_transitions_total",
		Help: "Post status transitions performed by the lifecycle sweep",
	}, []string{"to"})
	chatroomCleanupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_chatroom_cleanups_total",
		Help: "Chatroom transitions performed by the expiry sweep",
	}, []string{"action"})
)

// ChatroomCleaner is the slice of the chatroom engine the lifecycle
// sweep composes in.
type ChatroomCleaner interface {
	CleanupExpired(now time.Time) ChatroomCleanupStats
}

// PostLifecycle advances post and chatroom state over time. All
// transitions are derived from durable fields (Deadline, ExpiresAt,
// ReadOnlyAt) so the sweep is idempotent and survives restarts; there
// are no one-shot timers to lose.
type PostLifecycle struct {
	posts            PostStorage
	chatrooms        ChatroomCleaner
	notifier         Notifier
	archiveAfterDays int
	lastSweepStats   SweepStats
}

// SweepStats tracks metrics from the last lifecycle sweep.
type SweepStats struct {
	RunAt            time.Time
	PostsScanned     int
	PostsClosed      int
	PostsFilled      int
	PostsArchived    int
	ChatroomsFrozen  int
	ChatroomsDeleted int
	DurationMs       int64
	Errors           []string
}

func NewPostLifecycle(posts PostStorage, chatrooms ChatroomCleaner, notifier Notifier, archiveAfterDays int) *PostLifecycle {
	if archiveAfterDays <= 0 {
		archiveAfterDays = 30
	}
	return &PostLifecycle{
		posts:            posts,
		chatrooms:        chatrooms,
		notifier:         notifier,
		archiveAfterDays: archiveAfterDays,
	}
}

// CheckPost re-derives one post's status from the current time. It
// no-ops for closed and archived posts. The capacity check runs after
// the deadline check, so a post that is both past deadline and full
// ends up filled, not closed (last write wins within one call).
func (lc *PostLifecycle) CheckPost(postId string, now time.Time) (*domain.Post, error) {
	post, err := lc.posts.GetPost(postId)
	if err != nil {
		return nil, err
	}
	if post.Status == domain.PostClosed || post.Status == domain.PostArchived {
		return post, nil
	}

	previous := post.Status
	if post.DeadlinePassed(now) {
		post.Status = domain.PostClosed
	}
	if post.AtCapacity() {
		post.Status = domain.PostFilled
	}
	if post.Status == previous {
		return post, nil
	}

	if post.ExpiresAt == nil {
		graceDays := post.ChatGraceDays
		if graceDays <= 0 {
			graceDays = domain.DefaultChatGraceDays
		}
		base := now
		if post.Deadline != nil {
			base = *post.Deadline
		}
		t := base.Add(time.Duration(graceDays) * 24 * time.Hour)
		post.ExpiresAt = &t
	}
	post.UpdatedAt = now
	if err := lc.posts.UpdatePost(post); err != nil {
		return nil, err
	}

	postTransitionsTotal.WithLabelValues(string(post.Status)).Inc()
	emit(lc.notifier, domain.NotificationCreationData{
		UserId:        post.Author.Id,
		Type:          domain.NotifPostStatusChanged,
		Title:         "Post " + string(post.Status),
		Message:       fmt.Sprintf("Your post %q is now %s", post.Title, post.Status),
		Link:          "/posts/" + post.Id,
		RelatedPostId: post.Id,
	})
	return post, nil
}

// CheckAllPosts sweeps every active post through CheckPost.
func (lc *PostLifecycle) CheckAllPosts(now time.Time) (closed, filled int, errs []string) {
	posts, err := lc.posts.GetPostsByStatus(domain.PostActive)
	if err != nil {
		return 0, 0, []string{fmt.Sprintf("listing active posts: %v", err)}
	}
	for _, p := range posts {
		updated, err := lc.CheckPost(p.Id, now)
		if err != nil {
			errs = append(errs, fmt.Sprintf("post %s: %v", p.Id, err))
			continue
		}
		switch updated.Status {
		case domain.PostClosed:
			closed++
		case domain.PostFilled:
			filled++
		}
	}
	return closed, filled, errs
}

// ArchiveExpired archives closed and filled posts whose ExpiresAt is
// more than archiveAfterDays in the past. Pure time-threshold sweep.
func (lc *PostLifecycle) ArchiveExpired(now time.Time) (archived int, errs []string) {
	threshold := time.Duration(lc.archiveAfterDays) * 24 * time.Hour
	for _, status := range []domain.PostStatus{domain.PostClosed, domain.PostFilled} {
		posts, err := lc.posts.GetPostsByStatus(status)
		if err != nil {
			errs = append(errs, fmt.Sprintf("listing %s posts: %v", status, err))
			continue
		}
		for _, p := range posts {
			if p.ExpiresAt == nil || now.Sub(*p.ExpiresAt) <= threshold {
				continue
			}
			post := p
			post.Status = domain.PostArchived
			post.UpdatedAt = now
			if err := lc.posts.UpdatePost(&post); err != nil {
				errs = append(errs, fmt.Sprintf("post %s: archive: %v", p.Id, err))
				continue
			}
			postTransitionsTotal.WithLabelValues(string(domain.PostArchived)).Inc()
			archived++
		}
	}
	return archived, errs
}

// RunChecks executes one full sweep: post status checks, archival,
// then chatroom expiry, in that fixed order.
func (lc *PostLifecycle) RunChecks() SweepStats {
	start := time.Now().UTC()
	stats := SweepStats{RunAt: start, Errors: []string{}}

	active, err := lc.posts.GetPostsByStatus(domain.PostActive)
	if err == nil {
		stats.PostsScanned = len(active)
	}

	closed, filled, errs := lc.CheckAllPosts(start)
	stats.PostsClosed = closed
	stats.PostsFilled = filled
	stats.Errors = append(stats.Errors, errs...)

	archived, errs := lc.ArchiveExpired(start)
	stats.PostsArchived = archived
	stats.Errors = append(stats.Errors, errs...)

	chatStats := lc.chatrooms.CleanupExpired(start)
	stats.ChatroomsFrozen = chatStats.MadeReadOnly
	stats.ChatroomsDeleted = chatStats.Deleted
	stats.Errors = append(stats.Errors, chatStats.Errors...)
	chatroomCleanupsTotal.WithLabelValues("read_only").Add(float64(chatStats.MadeReadOnly))
	chatroomCleanupsTotal.WithLabelValues("deleted").Add(float64(chatStats.Deleted))

	stats.DurationMs = time.Since(start).Milliseconds()
	lc.lastSweepStats = stats
	sweepsTotal.Inc()
	return stats
}

// StartBackground runs one sweep immediately, then repeats on the
// given interval until ctx is cancelled.
func (lc *PostLifecycle) StartBackground(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	logger.Log.Info("started post lifecycle sweeps",
		"component", "lifecycle",
		"interval", interval,
		"archive_after_days", lc.archiveAfterDays)

	run := func() {
		stats := lc.RunChecks()
		logger.Log.Info("lifecycle sweep completed",
			"component", "lifecycle",
			"posts_scanned", stats.PostsScanned,
			"posts_closed", stats.PostsClosed,
			"posts_filled", stats.PostsFilled,
			"posts_archived", stats.PostsArchived,
			"chatrooms_frozen", stats.ChatroomsFrozen,
			"chatrooms_deleted", stats.ChatroomsDeleted,
			"duration_ms", stats.DurationMs,
			"errors", len(stats.Errors))
	}

	go func() {
		defer ticker.Stop()
		run()
		for {
			select {
			case <-ticker.C:
				run()
			case <-ctx.Done():
				logger.Log.Info("lifecycle sweeps shutting down gracefully",
					"component", "lifecycle")
				return
			}
		}
	}()
}

// LastSweepStats returns statistics from the last sweep run.
// Useful for monitoring and observability.
func (lc *PostLifecycle) LastSweepStats() SweepStats {
	return lc.lastSweepStats
}

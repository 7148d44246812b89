package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/analytics"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/mindcircle-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// LinkDirectory answers who may see whose analytics.
type LinkDirectory interface {
	IsLinked(ctx context.Context, subjectID, supporterID uuid.UUID) (bool, error)
	ListSubjects(ctx context.Context, supporterID uuid.UUID) ([]models.SupporterLink, error)
}

// VisibilitySource loads a subject's consent configuration. A nil result
// means defaults.
type VisibilitySource interface {
	Visibility(ctx context.Context, subjectID uuid.UUID) (*analytics.VisibilityConfig, error)
}

type AnalyticsService struct {
	engine     *analytics.Engine
	links      LinkDirectory
	visibility VisibilitySource
	cfg        *config.Config
}

func NewAnalyticsService(engine *analytics.Engine, links LinkDirectory, visibility VisibilitySource, cfg *config.Config) *AnalyticsService {
	return &AnalyticsService{engine: engine, links: links, visibility: visibility, cfg: cfg}
}

// SelfSnapshot computes the caller's own snapshot with full access.
func (s *AnalyticsService) SelfSnapshot(ctx context.Context, userID uuid.UUID, window string) (*analytics.Snapshot, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	perms := analytics.FullAccess()
	return s.compute(ctx, "self_snapshot", uuid.Nil, analytics.Request{
		SubjectID:         userID,
		Permissions:       &perms,
		Window:            window,
		DefaultWindowDays: s.cfg.SelfDefaultWindowDays,
	})
}

// SupporterSnapshot computes subjectID's snapshot as seen by supporterID.
// Returns ErrNotLinked when no active link exists.
func (s *AnalyticsService) SupporterSnapshot(ctx context.Context, supporterID, subjectID uuid.UUID, window string) (*analytics.Snapshot, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	linked, err := s.links.IsLinked(ctx, subjectID, supporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to check supporter link: %w", err)
	}
	if !linked {
		return nil, ErrNotLinked
	}
	return s.supporterView(ctx, supporterID, subjectID, window)
}

// Overview computes a snapshot for every subject linked to supporterID, in
// link creation order. Any failure fails the whole overview.
func (s *AnalyticsService) Overview(ctx context.Context, supporterID uuid.UUID, window string) ([]dto.SubjectSnapshot, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	links, err := s.links.ListSubjects(ctx, supporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked subjects: %w", err)
	}

	results := make([]dto.SubjectSnapshot, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.overviewConcurrency())
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			snap, err := s.supporterView(gctx, supporterID, link.SubjectID, window)
			if err != nil {
				return err
			}
			results[i] = dto.SubjectSnapshot{
				SubjectID:    link.SubjectID,
				Relationship: link.Relationship,
				Snapshot:     snap,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DefaultWindow is the window token reported when a supporter-facing request
// names none.
func (s *AnalyticsService) DefaultWindow() string {
	return analytics.DefaultWindowToken(s.cfg.SupporterDefaultWindowDays)
}

func (s *AnalyticsService) supporterView(ctx context.Context, supporterID, subjectID uuid.UUID, window string) (*analytics.Snapshot, error) {
	visibility, err := s.visibility.Visibility(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load visibility settings: %w", err)
	}
	return s.compute(ctx, "supporter_snapshot", supporterID, analytics.Request{
		SubjectID:         subjectID,
		Visibility:        visibility,
		Window:            window,
		DefaultWindowDays: s.cfg.SupporterDefaultWindowDays,
	})
}

func (s *AnalyticsService) compute(ctx context.Context, action string, supporterID uuid.UUID, req analytics.Request) (*analytics.Snapshot, error) {
	start := time.Now()
	snap, err := s.engine.ComputeSnapshot(ctx, req)

	attrs := []any{
		"action", action,
		"subject_id", req.SubjectID.String(),
		"window", req.Window,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if supporterID != uuid.Nil {
		attrs = append(attrs, "supporter_id", supporterID.String())
	}
	if err != nil {
		slog.ErrorContext(ctx, "snapshot computation failed", append(attrs, "error", err)...)
		return nil, err
	}
	slog.DebugContext(ctx, "snapshot computed", append(attrs, "entries", snap.Stats.TotalEntries)...)
	return snap, nil
}

func (s *AnalyticsService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.RequestTimeout)
}

func (s *AnalyticsService) overviewConcurrency() int {
	if s.cfg.OverviewConcurrency <= 0 {
		return 1
	}
	return s.cfg.OverviewConcurrency
}

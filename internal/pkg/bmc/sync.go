package bmc

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/progen-app/progen/app/models"
	"github.com/progen-app/progen/internal/pkg/quota"
)

// Feed is the supporter source; satisfied by *Client.
type Feed interface {
	FetchSupporters(ctx context.Context, page int) (*Page, error)
}

// Store persists the append-only supporter log and the sync cursor.
type Store interface {
	// LatestSyncState returns the newest cursor row, or nil when no sync has
	// run yet.
	LatestSyncState() (*models.SyncState, error)
	AppendSyncState(state *models.SyncState) error
	AppendSupporterEvent(event *models.SupporterEvent) error
}

// Extender grants hosting time for a supporter; satisfied by *quota.Service.
type Extender interface {
	ExtendSupporter(ctx context.Context, fingerprint, email string) (bool, error)
}

// Result summarizes one sync run.
type Result struct {
	Seen     int
	Appended int
	Extended int
}

// Syncer reconciles the supporter feed against local usage records.
type Syncer struct {
	feed  Feed
	store Store
	quota Extender
	log   zerolog.Logger
}

func NewSyncer(feed Feed, store Store, quotaSvc Extender, log zerolog.Logger) *Syncer {
	return &Syncer{feed: feed, store: store, quota: quotaSvc, log: log}
}

// Run pages through the feed and processes every event newer than the stored
// cursor: the event is appended to the audit log, then the matching usage
// record is extended via fingerprint or email. Failures on a single event are
// logged and skipped. The cursor only moves forward, and only after the whole
// batch, so an interrupted run reprocesses rather than loses events.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	state, err := s.store.LatestSyncState()
	if err != nil {
		return nil, fmt.Errorf("read sync state: %w", err)
	}
	var cursor time.Time
	if state != nil && state.LastSupporterISO != nil {
		cursor = *state.LastSupporterISO
	}

	res := &Result{}
	newest := cursor
	page := 1
	for {
		feedPage, err := s.feed.FetchSupporters(ctx, page)
		if err != nil {
			return res, fmt.Errorf("fetch supporters page %d: %w", page, err)
		}
		if len(feedPage.Supporters) == 0 {
			break
		}

		for _, sup := range feedPage.Supporters {
			if sup.OccurredAt != nil && !cursor.IsZero() && !sup.OccurredAt.After(cursor) {
				continue
			}
			res.Seen++

			event := &models.SupporterEvent{
				SupporterID: sup.ID,
				OccurredAt:  sup.OccurredAt,
				Email:       sup.Email,
				Name:        sup.Name,
				Amount:      sup.Amount,
				Currency:    sup.Currency,
				Note:        sup.Note,
				Raw:         sup.Raw,
			}
			if err := s.store.AppendSupporterEvent(event); err != nil {
				s.log.Error().Err(err).Str("supporter_id", sup.ID).Msg("append supporter event failed")
				continue
			}
			res.Appended++
			if sup.OccurredAt != nil && sup.OccurredAt.After(newest) {
				newest = *sup.OccurredAt
			}

			fingerprint := quota.ExtractFingerprint(sup.Note)
			updated, err := s.quota.ExtendSupporter(ctx, fingerprint, sup.Email)
			if err != nil {
				s.log.Error().Err(err).
					Str("supporter_id", sup.ID).
					Str("fingerprint", fingerprint).
					Msg("extend supporter failed")
				continue
			}
			if updated {
				res.Extended++
			} else {
				s.log.Debug().Str("supporter_id", sup.ID).Msg("no matching usage record")
			}
		}

		if feedPage.NextPage == 0 {
			break
		}
		page = feedPage.NextPage
	}

	if newest.After(cursor) {
		if err := s.store.AppendSyncState(&models.SyncState{LastSupporterISO: &newest}); err != nil {
			return res, fmt.Errorf("persist sync state: %w", err)
		}
	}
	return res, nil
}

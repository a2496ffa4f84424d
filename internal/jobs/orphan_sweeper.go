package jobs

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/reconcile"
)

// EventReader drains the reconcile stream
type EventReader interface {
	Read(ctx context.Context, after string, count int64) ([]reconcile.Entry, error)
	Ack(ctx context.Context, ids ...string) error
}

// AccountDeleter removes identity accounts
type AccountDeleter interface {
	DeleteAccount(ctx context.Context, id string) error
}

// ProfileLookup finds the local profile of an identity
type ProfileLookup interface {
	GetByID(ctx context.Context, id string) (*model.Profile, error)
}

// OrphanSweeper retries the deletion of identities a failed sign-up left
// without a profile. An identity that gained a profile since, through sign-in
// provisioning, is kept.
//
// Each run resumes after the last entry the previous run saw, so entries left
// in the stream never hide newer ones. Reaching the tail rewinds the cursor
// and the next run retries what is still queued.
type OrphanSweeper struct {
	events   EventReader
	accounts AccountDeleter
	profiles ProfileLookup
	batch    int64
	logger   *zap.Logger

	mu     sync.Mutex
	cursor string
}

// NewOrphanSweeper creates a sweeper that handles up to batch entries per run
func NewOrphanSweeper(events EventReader, accounts AccountDeleter, profiles ProfileLookup, batch int64, logger *zap.Logger) *OrphanSweeper {
	if batch <= 0 {
		batch = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrphanSweeper{
		events:   events,
		accounts: accounts,
		profiles: profiles,
		batch:    batch,
		logger:   logger.Named("orphan_sweeper"),
	}
}

// Sweep handles one batch. Entries whose repair fails stay in the stream for
// a later pass; other kinds are acknowledged and skipped.
func (s *OrphanSweeper) Sweep(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.events.Read(ctx, s.cursor, s.batch)
	if err != nil {
		return err
	}
	if int64(len(entries)) < s.batch {
		s.cursor = ""
	} else {
		s.cursor = entries[len(entries)-1].StreamID
	}

	var done []string
	var failed int
	for _, entry := range entries {
		if entry.Err != nil {
			s.logger.Warn("dropping undecodable entry", zap.String("entry_id", entry.StreamID), zap.Error(entry.Err))
			done = append(done, entry.StreamID)
			continue
		}
		if entry.Event.Kind != reconcile.KindOrphanedIdentity {
			s.logger.Debug("skipping entry", zap.String("entry_id", entry.StreamID), zap.String("kind", entry.Event.Kind))
			done = append(done, entry.StreamID)
			continue
		}
		if err := s.repair(ctx, entry.Event.ResourceID); err != nil {
			failed++
			s.logger.Warn("orphan repair failed",
				zap.String("entry_id", entry.StreamID),
				zap.String("identity_id", entry.Event.ResourceID),
				zap.Error(err),
			)
			continue
		}
		done = append(done, entry.StreamID)
	}

	if err := s.events.Ack(ctx, done...); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d orphaned identities not repaired", failed, len(entries))
	}
	return nil
}

func (s *OrphanSweeper) repair(ctx context.Context, identityID string) error {
	if identityID == "" {
		return nil
	}
	profile, err := s.profiles.GetByID(ctx, identityID)
	if err != nil {
		return err
	}
	if profile != nil {
		s.logger.Info("identity has a profile, keeping it", zap.String("identity_id", identityID))
		return nil
	}
	if err := s.accounts.DeleteAccount(ctx, identityID); err != nil {
		return err
	}
	s.logger.Info("orphaned identity deleted", zap.String("identity_id", identityID))
	return nil
}

package quota

import (
	"context"
	"testing"
	"time"

	"github.com/progen-app/progen/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	records map[string]*models.UsageRecord
	events  []*models.WebhookEvent
	failCAS int // UpdateExpiry calls to reject before accepting
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]*models.UsageRecord{}}
}

func (f *fakeRepo) GetUsageByFingerprint(fp string) (*models.UsageRecord, error) {
	rec, ok := f.records[fp]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeRepo) GetUsageByEmail(email string) (*models.UsageRecord, error) {
	for _, rec := range f.records {
		if rec.Email == email {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateUsage(rec *models.UsageRecord) error {
	if _, ok := f.records[rec.Fingerprint]; ok {
		return gorm.ErrDuplicatedKey
	}
	cp := *rec
	f.records[rec.Fingerprint] = &cp
	return nil
}

func (f *fakeRepo) UpdateExpiry(fp string, expected *time.Time, next time.Time, markSupporter bool) (bool, error) {
	rec, ok := f.records[fp]
	if !ok {
		return false, nil
	}
	if f.failCAS > 0 {
		f.failCAS--
		return false, nil
	}
	if (rec.ExpiryDate == nil) != (expected == nil) {
		return false, nil
	}
	if rec.ExpiryDate != nil && !rec.ExpiryDate.Equal(*expected) {
		return false, nil
	}
	n := next
	rec.ExpiryDate = &n
	if markSupporter {
		rec.IsSupporter = true
	}
	return true, nil
}

func (f *fakeRepo) TouchLastCreated(fp string, at time.Time) error {
	if rec, ok := f.records[fp]; ok {
		t := at
		rec.LastCreated = &t
	}
	return nil
}

func (f *fakeRepo) CreateWebhookEventIfNotExists(ev *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	for _, existing := range f.events {
		if existing.Provider == ev.Provider && existing.ProviderEventID == ev.ProviderEventID {
			return false, existing, nil
		}
	}
	ev.ID = uint(len(f.events) + 1)
	f.events = append(f.events, ev)
	return true, ev, nil
}

func (f *fakeRepo) MarkWebhookProcessed(id uint, processingError string) error {
	return nil
}

func newTestService(repo Repository, now time.Time) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return now }
	return s
}

func TestApplyCheckoutCompletionLapsedExtendsFromNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stale := now.Add(-10 * 24 * time.Hour)

	repo := newFakeRepo()
	repo.records["fp-user1"] = &models.UsageRecord{Fingerprint: "fp-user1", ExpiryDate: &stale}
	svc := newTestService(repo, now)

	rec, err := svc.ApplyCheckoutCompletion(context.Background(), "fp-user1", "pro-3mo")
	require.NoError(t, err)

	assert.Equal(t, now.Add(90*24*time.Hour), *rec.ExpiryDate, "lapsed record must extend from now, not the stale expiry")
	assert.True(t, rec.IsSupporter)
}

func TestApplyCheckoutCompletionActiveExtendsFromExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	active := now.Add(5 * 24 * time.Hour)

	repo := newFakeRepo()
	repo.records["fp-user2"] = &models.UsageRecord{Fingerprint: "fp-user2", ExpiryDate: &active}
	svc := newTestService(repo, now)

	rec, err := svc.ApplyCheckoutCompletion(context.Background(), "fp-user2", "supporter")
	require.NoError(t, err)

	assert.Equal(t, active.Add(30*24*time.Hour), *rec.ExpiryDate, "active record must extend from its current expiry")
}

func TestApplyCheckoutCompletionCreatesMissingRecord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	svc := newTestService(repo, now)

	rec, err := svc.ApplyCheckoutCompletion(context.Background(), "fp-fresh1", "pro-6mo")
	require.NoError(t, err)

	assert.Equal(t, now.Add(180*24*time.Hour), *rec.ExpiryDate)
	assert.True(t, rec.IsSupporter)
	require.NotNil(t, rec.LastCreated)
	assert.Equal(t, now, *rec.LastCreated)
}

func TestApplyCheckoutCompletionRequiresFingerprint(t *testing.T) {
	svc := newTestService(newFakeRepo(), time.Now())
	_, err := svc.ApplyCheckoutCompletion(context.Background(), "  ", "supporter")
	assert.Error(t, err)
}

func TestExtendRetriesWhenCASLoses(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	active := now.Add(24 * time.Hour)

	repo := newFakeRepo()
	repo.records["fp-racer1"] = &models.UsageRecord{Fingerprint: "fp-racer1", ExpiryDate: &active}
	repo.failCAS = 2
	svc := newTestService(repo, now)

	rec, err := svc.ApplyCheckoutCompletion(context.Background(), "fp-racer1", "supporter")
	require.NoError(t, err)
	assert.Equal(t, active.Add(30*24*time.Hour), *rec.ExpiryDate)
}

func TestExtendSupporterByFingerprint(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	active := now.Add(2 * 24 * time.Hour)

	repo := newFakeRepo()
	repo.records["fp-abc123xyz"] = &models.UsageRecord{Fingerprint: "fp-abc123xyz", ExpiryDate: &active}
	svc := newTestService(repo, now)

	updated, err := svc.ExtendSupporter(context.Background(), "fp-abc123xyz", "")
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, active.Add(30*24*time.Hour), *repo.records["fp-abc123xyz"].ExpiryDate)
	assert.True(t, repo.records["fp-abc123xyz"].IsSupporter)
}

func TestExtendSupporterFallsBackToEmail(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	repo.records["fp-mail001"] = &models.UsageRecord{Fingerprint: "fp-mail001", Email: "jo@example.com"}
	svc := newTestService(repo, now)

	updated, err := svc.ExtendSupporter(context.Background(), "", "jo@example.com")
	require.NoError(t, err)
	assert.True(t, updated)
	// No prior expiry: the one-month window starts at now.
	assert.Equal(t, now.Add(30*24*time.Hour), *repo.records["fp-mail001"].ExpiryDate)
}

func TestExtendSupporterNoMatchUpdatesNothing(t *testing.T) {
	svc := newTestService(newFakeRepo(), time.Now())

	updated, err := svc.ExtendSupporter(context.Background(), "fp-ghost99", "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestExtendSupporterDoesNotCreateRecords(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, time.Now())

	_, err := svc.ExtendSupporter(context.Background(), "fp-ghost99", "")
	require.NoError(t, err)
	assert.Empty(t, repo.records)
}

func TestRegisterDeployGrantsFreeWindowOnce(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	svc := newTestService(repo, now)

	rec, err := svc.RegisterDeploy(context.Background(), "fp-deploy1", 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), *rec.ExpiryDate)
	assert.False(t, rec.IsSupporter)

	later := now.Add(time.Hour)
	svc.now = func() time.Time { return later }
	rec2, err := svc.RegisterDeploy(context.Background(), "fp-deploy1", 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), *repo.records["fp-deploy1"].ExpiryDate, "redeploy must not reset the window")
	assert.Equal(t, later, *rec2.LastCreated)
}

func TestRecordWebhookEventDeduplicates(t *testing.T) {
	svc := newTestService(newFakeRepo(), time.Now())
	in := WebhookEventInput{
		Provider:        ProviderStripe,
		ProviderEventID: "evt_123",
		EventType:       "checkout.session.completed",
		PayloadJSON:     `{}`,
		SignatureValid:  true,
	}

	created, stored, err := svc.RecordWebhookEvent(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, stored)

	created, _, err = svc.RecordWebhookEvent(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRecordWebhookEventHashesMissingID(t *testing.T) {
	svc := newTestService(newFakeRepo(), time.Now())

	_, stored, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{
		Provider:    ProviderStripe,
		PayloadJSON: `{"a":1}`,
	})
	require.NoError(t, err)
	assert.Contains(t, stored.ProviderEventID, "hash:")
}

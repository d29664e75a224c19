package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/merchant-leads/internal/entity"
)

// fakeKV is an in-memory stand-in for the Redis client, tracking values
// and the TTL last applied to each key.
type fakeKV struct {
	data map[string]string
	ttls map[string]time.Duration

	getErr error
	setErr error
	delErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (f *fakeKV) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) SetEx(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if _, ok := f.data[key]; !ok {
		return redis.NewBoolResult(false, nil)
	}
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.delErr != nil {
		return redis.NewIntResult(0, f.delErr)
	}
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			delete(f.ttls, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

const testTTL = 24 * time.Hour

func TestCreateInitializesSession(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := NewStore(kv, testTTL)

	sess, err := store.Create(ctx)

	require.NoError(t, err)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, 1, sess.FormData.CurrentStep)
	assert.Equal(t, map[string]bool{"step1": false, "step2": false, "step3": false}, sess.FormData.CompletedSteps)
	assert.WithinDuration(t, sess.CreatedAt.Add(testTTL), sess.ExpiresAt, time.Second)

	key := "session:" + sess.SessionID
	assert.Contains(t, kv.data, key)
	assert.Equal(t, testTTL, kv.ttls[key])
}

func TestCreateStorageUnavailable(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("connection refused")
	store := NewStore(kv, testTTL)

	_, err := store.Create(context.Background())

	assert.ErrorIs(t, err, entity.ErrStorageUnavailable)
}

func TestGetMissingSession(t *testing.T) {
	store := NewStore(newFakeKV(), testTTL)

	_, err := store.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestGetRenewsTTL(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := NewStore(kv, testTTL)

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	key := "session:" + sess.SessionID
	// Pretend most of the TTL has elapsed.
	kv.ttls[key] = time.Minute

	got, err := store.Get(ctx, sess.SessionID)

	require.NoError(t, err)
	assert.Equal(t, sess.SessionID, got.SessionID)
	assert.Equal(t, testTTL, kv.ttls[key], "every successful read renews the full TTL")
}

func TestUpdateMergesShallow(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := NewStore(kv, testTTL)

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	first := "Jane"
	patch1 := &entity.FormDataPatch{
		FirstName:      &first,
		CompletedSteps: map[string]bool{"step1": true, "step2": false, "step3": false},
	}
	_, err = store.Update(ctx, sess.SessionID, patch1)
	require.NoError(t, err)

	email := "jane@example.com"
	biz := "Doe Plumbing LLC"
	patch2 := &entity.FormDataPatch{
		Email:        &email,
		BusinessName: &biz,
	}
	merged, err := store.Update(ctx, sess.SessionID, patch2)
	require.NoError(t, err)

	// Union of both patches: earlier fields retained, new fields added.
	require.NotNil(t, merged.FormData.FirstName)
	assert.Equal(t, "Jane", *merged.FormData.FirstName)
	require.NotNil(t, merged.FormData.Email)
	assert.Equal(t, "jane@example.com", *merged.FormData.Email)
	assert.True(t, merged.FormData.CompletedSteps["step1"])
	assert.False(t, merged.FormData.CompletedSteps["step2"])
}

func TestUpdateReplacesCompletedStepsWholesale(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV(), testTTL)

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	_, err = store.Update(ctx, sess.SessionID, &entity.FormDataPatch{
		CompletedSteps: map[string]bool{"step1": true, "step2": true, "step3": false},
	})
	require.NoError(t, err)

	// A later patch carrying only step1 replaces the map, dropping step2.
	merged, err := store.Update(ctx, sess.SessionID, &entity.FormDataPatch{
		CompletedSteps: map[string]bool{"step1": true},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"step1": true}, merged.FormData.CompletedSteps)
}

func TestUpdateMissingSession(t *testing.T) {
	store := NewStore(newFakeKV(), testTTL)

	name := "Jane"
	_, err := store.Update(context.Background(), "nope", &entity.FormDataPatch{FirstName: &name})

	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestUpdateResetsTTL(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := NewStore(kv, testTTL)

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	key := "session:" + sess.SessionID
	kv.ttls[key] = time.Minute

	step := 2
	_, err = store.Update(ctx, sess.SessionID, &entity.FormDataPatch{CurrentStep: &step})

	require.NoError(t, err)
	assert.Equal(t, testTTL, kv.ttls[key], "every write resets the full TTL")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV(), testTTL)

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting a missing session is not an error.
	deleted, err = store.Delete(ctx, sess.SessionID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.Get(ctx, sess.SessionID)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestFormDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeKV(), testTTL)

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	revenue := 42000.0
	years := 3.5
	patch := &entity.FormDataPatch{
		MonthlyRevenue:  &revenue,
		YearsInBusiness: &years,
		CompletedSteps:  map[string]bool{"step1": true, "step2": true, "step3": true},
		EnrichmentData: map[string]any{
			"verified":   true,
			"sos_status": "Active",
			"business_address": map[string]any{
				"city": "Sample City",
				"zip":  "94105",
			},
		},
	}
	_, err = store.Update(ctx, sess.SessionID, patch)
	require.NoError(t, err)

	got, err := store.Get(ctx, sess.SessionID)
	require.NoError(t, err)

	require.NotNil(t, got.FormData.MonthlyRevenue)
	assert.Equal(t, 42000.0, *got.FormData.MonthlyRevenue)
	assert.Equal(t, 3.5, *got.FormData.YearsInBusiness)
	assert.Equal(t, map[string]bool{"step1": true, "step2": true, "step3": true}, got.FormData.CompletedSteps)
	assert.Equal(t, true, got.FormData.EnrichmentData["verified"])
	assert.Equal(t, "Active", got.FormData.EnrichmentData["sos_status"])

	addr, ok := got.FormData.EnrichmentData["business_address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Sample City", addr["city"])
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MOYARU/mas/internal/report"
	"github.com/MOYARU/mas/internal/store"
)

const hash = "0f5c1e3b9a2d4c6e8f0a1b2c3d4e5f60"

func TestStoreSaveAndFind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(store.PlatformAndroid)

	rec := &store.ScanRecord{
		FileName: "app.apk",
		AppName:  "Demo",
		CodeAnalysis: map[string]report.Finding{
			"insecure_random": {Metadata: &report.FindingDetails{Severity: report.SeverityHigh, CVSS: 7.5}},
		},
	}
	require.NoError(t, s.Save(ctx, hash, rec))

	got, err := s.FindByHash(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, store.PlatformAndroid, got.Platform)
	assert.Equal(t, "app.apk", got.FileName)
	assert.Len(t, got.CodeAnalysis, 1)
}

func TestStoreMiss(t *testing.T) {
	t.Parallel()

	s := NewStore(store.PlatformIOS)
	_, err := s.FindByHash(context.Background(), hash)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecentScansTouchAndTimestamp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewRecentScans()

	_, err := r.Timestamp(ctx, hash)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, r.Touch(ctx, hash))
	ts, err := r.Timestamp(ctx, hash)
	require.NoError(t, err)
	assert.False(t, ts.IsZero())
}

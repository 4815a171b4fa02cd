package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memeverse/domain"
	"memeverse/infra/storage"
)

// fakeCatalog serves a fixed list and counts calls.
type fakeCatalog struct {
	memes []domain.Meme
	err   error
	calls int
}

func (f *fakeCatalog) Memes(_ context.Context) ([]domain.Meme, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.memes, nil
}

// gatedCatalog blocks each call until released, so tests can interleave
// an in-flight fetch with other operations deterministically.
type gatedCatalog struct {
	entered chan struct{}
	release chan struct{}
	memes   []domain.Meme
}

func (g *gatedCatalog) Memes(_ context.Context) ([]domain.Meme, error) {
	g.entered <- struct{}{}
	<-g.release
	return g.memes, nil
}

// failKV wraps a KV and fails every write.
type failKV struct {
	storage.KV
}

func (f failKV) Set(string, []byte) error {
	return errors.New("quota exceeded")
}

func catalogOf(n int) []domain.Meme {
	memes := make([]domain.Meme, 0, n)
	for i := range n {
		memes = append(memes, domain.Meme{
			ID:   fmt.Sprintf("id-%02d", i),
			Name: fmt.Sprintf("Meme %02d", i),
			URL:  fmt.Sprintf("https://i.example/%02d.jpg", i),
		})
	}
	return memes
}

func newTestMemes(catalog *fakeCatalog, kv storage.KV) *Memes {
	s := NewMemes(catalog, kv, zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	s.Load()
	return s
}

func testProfile() domain.Profile {
	return domain.Profile{Name: "User", ProfilePic: "https://pic"}
}

func TestLikeUnlike_FloorAtZero(t *testing.T) {
	s := newTestMemes(&fakeCatalog{}, storage.NewMemory())

	for range 3 {
		s.Like("123")
	}
	for range 4 {
		s.Unlike("123")
	}
	assert.Equal(t, 0, s.Snapshot().Likes["123"])
}

func TestLikeUnlike_Scenario(t *testing.T) {
	s := newTestMemes(&fakeCatalog{}, storage.NewMemory())

	s.Like("123")
	assert.Equal(t, 1, s.Snapshot().Likes["123"])
	s.Unlike("123")
	assert.Equal(t, 0, s.Snapshot().Likes["123"])
	s.Unlike("123")
	assert.Equal(t, 0, s.Snapshot().Likes["123"])
}

func TestFetchTrendingAndNew_TakeDisjointWindows(t *testing.T) {
	cat := &fakeCatalog{memes: catalogOf(30)}
	s := newTestMemes(cat, storage.NewMemory())
	ctx := context.Background()

	require.NoError(t, s.FetchTrending(ctx))
	require.NoError(t, s.FetchNew(ctx))

	snap := s.Snapshot()
	require.Len(t, snap.Trending, 10)
	require.Len(t, snap.Newest, 10)
	assert.Equal(t, "id-00", snap.Trending[0].ID)
	assert.Equal(t, "id-10", snap.Newest[0].ID)
	assert.Equal(t, StatusSucceeded, snap.TrendingOp.Status)
	assert.Equal(t, StatusSucceeded, snap.NewOp.Status)
}

func TestFetchByCategory_DeterministicWindows(t *testing.T) {
	tests := []struct {
		category domain.Category
		size     int
		firstID  string
	}{
		{domain.CategoryTrending, 10, "id-00"},
		{domain.CategoryNew, 10, "id-10"},
		{domain.CategoryClassic, 10, "id-20"},
		{domain.Category("dank"), 10, "id-00"}, // unrecognized falls back
	}

	for _, tc := range tests {
		t.Run(string(tc.category), func(t *testing.T) {
			s := newTestMemes(&fakeCatalog{memes: catalogOf(30)}, storage.NewMemory())
			require.NoError(t, s.FetchByCategory(context.Background(), tc.category))

			explore := s.Snapshot().Explore
			require.Len(t, explore, tc.size)
			assert.Equal(t, tc.firstID, explore[0].ID)
		})
	}
}

func TestFetchByCategory_ClassicKeepsOriginalOrder(t *testing.T) {
	s := newTestMemes(&fakeCatalog{memes: catalogOf(30)}, storage.NewMemory())
	require.NoError(t, s.FetchByCategory(context.Background(), domain.CategoryClassic))

	explore := s.Snapshot().Explore
	require.Len(t, explore, 10)
	for i, m := range explore {
		assert.Equal(t, fmt.Sprintf("id-%02d", 20+i), m.ID)
	}
}

func TestFetchByCategory_WindowsClampToCatalog(t *testing.T) {
	s := newTestMemes(&fakeCatalog{memes: catalogOf(15)}, storage.NewMemory())
	ctx := context.Background()

	require.NoError(t, s.FetchByCategory(ctx, domain.CategoryNew))
	assert.Len(t, s.Snapshot().Explore, 5)

	require.NoError(t, s.FetchByCategory(ctx, domain.CategoryClassic))
	assert.Empty(t, s.Snapshot().Explore)
}

func TestFetchByCategory_RandomSamplesFromCatalog(t *testing.T) {
	s := newTestMemes(&fakeCatalog{memes: catalogOf(25)}, storage.NewMemory())
	require.NoError(t, s.FetchByCategory(context.Background(), domain.CategoryRandom))

	explore := s.Snapshot().Explore
	require.Len(t, explore, 10)

	valid := make(map[string]bool, 25)
	for _, m := range catalogOf(25) {
		valid[m.ID] = true
	}
	seen := make(map[string]bool, 10)
	for _, m := range explore {
		assert.True(t, valid[m.ID], "sampled meme %s not in catalog", m.ID)
		assert.False(t, seen[m.ID], "duplicate meme %s in sample", m.ID)
		seen[m.ID] = true
	}
}

func TestFetchByCategory_RandomSmallCatalog(t *testing.T) {
	s := newTestMemes(&fakeCatalog{memes: catalogOf(4)}, storage.NewMemory())
	require.NoError(t, s.FetchByCategory(context.Background(), domain.CategoryRandom))
	assert.Len(t, s.Snapshot().Explore, 4)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	cat := &fakeCatalog{memes: []domain.Meme{
		{ID: "1", Name: "Distracted Boyfriend"},
		{ID: "2", Name: "Drake Hotline Bling"},
		{ID: "3", Name: "Two Buttons"},
	}}
	s := newTestMemes(cat, storage.NewMemory())

	require.NoError(t, s.Search(context.Background(), "DRAKE"))
	results := s.Snapshot().SearchResults
	require.Len(t, results, 1)
	assert.Equal(t, "2", results[0].ID)
}

func TestSearch_NoMatchesIsNotAnError(t *testing.T) {
	s := newTestMemes(&fakeCatalog{memes: catalogOf(5)}, storage.NewMemory())

	require.NoError(t, s.Search(context.Background(), "zzz-no-such-meme"))
	snap := s.Snapshot()
	assert.Empty(t, snap.SearchResults)
	assert.Equal(t, StatusSucceeded, snap.SearchOp.Status)
}

func TestSearch_BlankQueryClearsWithoutNetworkCall(t *testing.T) {
	cat := &fakeCatalog{memes: catalogOf(5)}
	s := newTestMemes(cat, storage.NewMemory())

	require.NoError(t, s.Search(context.Background(), "meme"))
	require.NotEmpty(t, s.Snapshot().SearchResults)
	callsBefore := cat.calls

	require.NoError(t, s.Search(context.Background(), "   "))
	snap := s.Snapshot()
	assert.Empty(t, snap.SearchResults)
	assert.Equal(t, StatusIdle, snap.SearchOp.Status)
	assert.Equal(t, callsBefore, cat.calls, "blank query must not hit the network")
}

func TestSearch_StaleResponseIsDropped(t *testing.T) {
	gated := &gatedCatalog{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		memes:   catalogOf(5),
	}
	s := NewMemes(gated, storage.NewMemory(), zap.NewNop())
	s.Load()

	done := make(chan error, 1)
	go func() {
		done <- s.Search(context.Background(), "meme")
	}()

	<-gated.entered
	// The user cleared the search while the fetch was in flight.
	s.ResetSearch()
	close(gated.release)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	assert.Empty(t, snap.SearchResults, "late response must not overwrite the reset")
	assert.Equal(t, StatusIdle, snap.SearchOp.Status)
}

func TestFetchFailure_KeepsPriorSubset(t *testing.T) {
	cat := &fakeCatalog{memes: catalogOf(30)}
	s := newTestMemes(cat, storage.NewMemory())
	ctx := context.Background()

	require.NoError(t, s.FetchTrending(ctx))
	before := s.Snapshot().Trending

	cat.err = errors.New("host unreachable")
	require.Error(t, s.FetchTrending(ctx))

	snap := s.Snapshot()
	assert.Equal(t, before, snap.Trending, "failed fetch must retain stale data")
	assert.Equal(t, StatusFailed, snap.TrendingOp.Status)
	assert.Contains(t, snap.TrendingOp.Err, "host unreachable")
	// Other operations keep their own status.
	assert.Equal(t, StatusIdle, snap.NewOp.Status)
}

func TestResetStatus_ClearsAllOperations(t *testing.T) {
	cat := &fakeCatalog{err: errors.New("down")}
	s := newTestMemes(cat, storage.NewMemory())

	_ = s.FetchTrending(context.Background())
	_ = s.FetchNew(context.Background())
	require.Equal(t, StatusFailed, s.Snapshot().TrendingOp.Status)

	s.ResetStatus()
	snap := s.Snapshot()
	assert.Equal(t, StatusIdle, snap.TrendingOp.Status)
	assert.Equal(t, StatusIdle, snap.NewOp.Status)
	assert.Empty(t, snap.TrendingOp.Err)
}

func TestAddComment_RejectsBlankText(t *testing.T) {
	s := newTestMemes(&fakeCatalog{}, storage.NewMemory())

	_, err := s.AddComment("42", "   \n", testProfile())
	assert.ErrorIs(t, err, domain.ErrEmptyComment)
	assert.Empty(t, s.Snapshot().Comments["42"])
}

func TestAddComment_RejectsWithoutProfile(t *testing.T) {
	s := newTestMemes(&fakeCatalog{}, storage.NewMemory())

	_, err := s.AddComment("42", "lol", domain.Profile{})
	assert.ErrorIs(t, err, domain.ErrNoProfile)
	assert.Empty(t, s.Snapshot().Comments["42"])
}

func TestAddComment_AppendsInInsertionOrder(t *testing.T) {
	s := newTestMemes(&fakeCatalog{}, storage.NewMemory())

	first, err := s.AddComment("42", "first!", testProfile())
	require.NoError(t, err)
	_, err = s.AddComment("42", "second", testProfile())
	require.NoError(t, err)

	comments := s.Snapshot().Comments["42"]
	require.Len(t, comments, 2)
	assert.Equal(t, "first!", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "User", first.Author)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Date.IsZero())
}

func TestAddUpload_RejectsInvalidDrafts(t *testing.T) {
	s := newTestMemes(&fakeCatalog{}, storage.NewMemory())

	tests := []struct {
		name  string
		draft domain.UploadDraft
	}{
		{"missing title", domain.UploadDraft{URL: "https://i.example/a.jpg"}},
		{"missing url", domain.UploadDraft{Title: "A meme"}},
		{"bad url", domain.UploadDraft{Title: "A meme", URL: "not a url"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AddUpload(tc.draft, "You")
			assert.ErrorIs(t, err, domain.ErrInvalidUpload)
			assert.Empty(t, s.Snapshot().Uploads)
		})
	}
}

func TestAddUpload_MaterializesMeme(t *testing.T) {
	s := newTestMemes(&fakeCatalog{}, storage.NewMemory())

	meme, err := s.AddUpload(domain.UploadDraft{
		Title:    "My Cat",
		URL:      "https://i.example/cat.jpg",
		Category: "funny",
		Tags:     []string{"cat", "monday"},
		Caption:  "When you realize it's Monday tomorrow...",
	}, "")
	require.NoError(t, err)

	assert.NotEmpty(t, meme.ID)
	assert.Equal(t, "My Cat", meme.Name)
	assert.Equal(t, "You", meme.UploadedBy)
	assert.False(t, meme.UploadDate.IsZero())
	assert.True(t, meme.IsUpload())

	uploads := s.Snapshot().Uploads
	require.Len(t, uploads, 1)
	assert.Equal(t, meme.ID, uploads[0].ID)
}

func TestAddUpload_AcceptsDataURI(t *testing.T) {
	s := newTestMemes(&fakeCatalog{}, storage.NewMemory())

	_, err := s.AddUpload(domain.UploadDraft{
		Title: "Inline",
		URL:   "data:image/png;base64,iVBORw0KGgo=",
	}, "You")
	assert.NoError(t, err)
}

func TestAddUpload_SurvivesStorageWriteFailure(t *testing.T) {
	s := newTestMemes(&fakeCatalog{}, failKV{storage.NewMemory()})

	meme, err := s.AddUpload(domain.UploadDraft{
		Title: "Durable Enough",
		URL:   "https://i.example/x.jpg",
	}, "You")
	require.NoError(t, err)

	uploads := s.Snapshot().Uploads
	require.Len(t, uploads, 1)
	assert.Equal(t, meme.ID, uploads[0].ID, "in-memory state stays authoritative on write failure")
}

func TestLoad_RestoresPersistedEngagement(t *testing.T) {
	kv := storage.NewMemory()
	a := newTestMemes(&fakeCatalog{}, kv)

	a.Like("99")
	a.Like("99")
	_, err := a.AddComment("99", "nice", testProfile())
	require.NoError(t, err)
	_, err = a.AddUpload(domain.UploadDraft{Title: "Kept", URL: "https://i.example/k.jpg"}, "You")
	require.NoError(t, err)
	a.SetCategory(domain.CategoryClassic)

	b := newTestMemes(&fakeCatalog{}, kv)
	snap := b.Snapshot()
	assert.Equal(t, 2, snap.Likes["99"])
	require.Len(t, snap.Comments["99"], 1)
	assert.Equal(t, "nice", snap.Comments["99"][0].Text)
	require.Len(t, snap.Uploads, 1)
	assert.Equal(t, "Kept", snap.Uploads[0].Name)
	assert.Equal(t, domain.CategoryClassic, snap.Category)
}

func TestLoad_CorruptRecordsFallBackToDefaults(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set("meme_likes", []byte(`{"schema":1,"data":tru`)))
	require.NoError(t, kv.Set("meme_comments", []byte(`not json at all`)))

	s := newTestMemes(&fakeCatalog{}, kv)
	snap := s.Snapshot()
	assert.Empty(t, snap.Likes)
	assert.Empty(t, snap.Comments)
}

func TestLoad_MigratesLegacyLikesRecord(t *testing.T) {
	kv := storage.NewMemory()
	// Pre-envelope format: the bare likes map.
	require.NoError(t, kv.Set("meme_likes", []byte(`{"181913649":4}`)))

	s := newTestMemes(&fakeCatalog{}, kv)
	assert.Equal(t, 4, s.Snapshot().Likes["181913649"])
}

func TestLeaderboard_RanksByEngagement(t *testing.T) {
	cat := &fakeCatalog{memes: catalogOf(12)}
	s := newTestMemes(cat, storage.NewMemory())
	require.NoError(t, s.FetchTrending(context.Background()))

	s.Like("id-03")
	s.Like("id-03")
	s.Like("id-07")
	_, err := s.AddComment("id-07", "underrated", testProfile())
	require.NoError(t, err)
	_, err = s.AddComment("id-07", "agreed", testProfile())
	require.NoError(t, err)

	top := s.Leaderboard(3)
	require.Len(t, top, 3)
	assert.Equal(t, "id-07", top[0].Meme.ID)
	assert.Equal(t, 3, top[0].Engagement())
	assert.Equal(t, "id-03", top[1].Meme.ID)
	// Remaining entries have zero engagement and keep subset order.
	assert.Equal(t, "id-00", top[2].Meme.ID)
}

func TestLeaderboard_CapsAtRequestedSize(t *testing.T) {
	s := newTestMemes(&fakeCatalog{memes: catalogOf(30)}, storage.NewMemory())
	require.NoError(t, s.FetchTrending(context.Background()))
	assert.Len(t, s.Leaderboard(5), 5)
	assert.Len(t, s.Leaderboard(50), 10)
}

package store

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"memeverse/app"
	"memeverse/domain"
	"memeverse/infra/storage"
)

// Persisted record keys.
const (
	keyLikes    = "meme_likes"
	keyComments = "meme_comments"
	keyUploads  = "uploaded_memes"
	keyProfile  = "user_profile"
	keyTheme    = "theme"
	keyUIState  = "ui_state"
)

// subsetSize is the window length of every derived catalog subset.
const subsetSize = 10

// Memes is the single source of truth for catalog subsets, uploads, and
// engagement data. Construct it with NewMemes and call Load before use;
// there is no package-level instance.
//
// Synchronous mutations (likes, comments, uploads) persist immediately,
// fire-and-forget: a storage failure is logged and the in-memory state
// stays authoritative for the session. Fetches fail closed — on error the
// prior subset is retained and only a user-triggered retry recovers.
type Memes struct {
	catalog  app.CatalogService
	kv       storage.KV
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
	shuffle  func(n int, swap func(i, j int))

	mu            sync.Mutex
	trending      []domain.Meme
	newest        []domain.Meme
	explore       []domain.Meme
	searchResults []domain.Meme
	uploads       []domain.Meme
	likes         map[string]int
	comments      map[string][]domain.Comment
	ops           [fetchKinds]OpState
	gen           [fetchKinds]int
	category      domain.Category
}

// uiState is the persisted slice of presentation state worth restoring.
type uiState struct {
	Category domain.Category `json:"category"`
}

// NewMemes creates a meme store with injected collaborators. Call Load
// to populate it from the persistence adapter.
func NewMemes(catalog app.CatalogService, kv storage.KV, log *zap.Logger) *Memes {
	return &Memes{
		catalog:  catalog,
		kv:       kv,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		shuffle:  rand.Shuffle,
		likes:    make(map[string]int),
		comments: make(map[string][]domain.Comment),
		category: domain.CategoryTrending,
	}
}

// Load restores uploads, likes, comments, and UI state from storage.
// Absent or malformed records fall back to empty defaults and are never
// surfaced to the user.
func (s *Memes) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loadRecord(keyLikes, &s.likes) || s.likes == nil {
		s.likes = make(map[string]int)
	}
	if !s.loadRecord(keyComments, &s.comments) || s.comments == nil {
		s.comments = make(map[string][]domain.Comment)
	}
	if !s.loadRecord(keyUploads, &s.uploads) {
		s.uploads = nil
	}

	var ui uiState
	if s.loadRecord(keyUIState, &ui) && ui.Category != "" {
		s.category = ui.Category
	}
}

// loadRecord reads and decodes one record. Returns false when the caller
// should keep its default. Must be called with the lock held.
func (s *Memes) loadRecord(key string, v any) bool {
	raw, err := s.kv.Get(key)
	if err != nil {
		if err != storage.ErrKeyNotFound {
			s.log.Warn("reading persisted record", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := storage.DecodeRecord(raw, v); err != nil {
		s.log.Warn("corrupt persisted record, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// persist writes one record, fire-and-forget. A failure is logged and
// otherwise swallowed; the in-memory mutation it follows is never rolled
// back. Must be called with the lock held.
func (s *Memes) persist(key string, v any) {
	raw, err := storage.EncodeRecord(v)
	if err != nil {
		s.log.Warn("encoding record", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Set(key, raw); err != nil {
		s.log.Warn("persisting record", zap.String("key", key), zap.Error(err))
	}
}

// --- Fetch operations ---

// beginFetch marks a fetch kind loading and returns its new generation.
// A later finishFetch with a stale generation is dropped, so a slow
// response can never overwrite the result of a newer request.
func (s *Memes) beginFetch(kind Fetch) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen[kind]++
	s.ops[kind] = OpState{Status: StatusLoading}
	return s.gen[kind]
}

func (s *Memes) finishFetch(kind Fetch, gen int, err error, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen[kind] {
		// Superseded by a newer request; drop the result either way.
		return nil
	}
	if err != nil {
		s.ops[kind] = OpState{Status: StatusFailed, Err: err.Error()}
		return err
	}
	apply()
	s.ops[kind] = OpState{Status: StatusSucceeded}
	return nil
}

// FetchTrending replaces the trending subset with the first catalog window.
func (s *Memes) FetchTrending(ctx context.Context) error {
	gen := s.beginFetch(FetchTrending)
	memes, err := s.catalog.Memes(ctx)
	return s.finishFetch(FetchTrending, gen, err, func() {
		s.trending = window(memes, 0, subsetSize)
	})
}

// FetchNew replaces the new subset with the second catalog window.
func (s *Memes) FetchNew(ctx context.Context) error {
	gen := s.beginFetch(FetchNew)
	memes, err := s.catalog.Memes(ctx)
	return s.finishFetch(FetchNew, gen, err, func() {
		s.newest = window(memes, subsetSize, 2*subsetSize)
	})
}

// FetchByCategory replaces the explore subset with the window derived
// from the category. Unrecognized categories fall back to the trending
// window; that is a deliberate non-error.
func (s *Memes) FetchByCategory(ctx context.Context, category domain.Category) error {
	gen := s.beginFetch(FetchExplore)
	memes, err := s.catalog.Memes(ctx)
	return s.finishFetch(FetchExplore, gen, err, func() {
		s.explore = s.categoryWindow(memes, category)
	})
}

func (s *Memes) categoryWindow(memes []domain.Meme, category domain.Category) []domain.Meme {
	switch category {
	case domain.CategoryTrending:
		return window(memes, 0, subsetSize)
	case domain.CategoryNew:
		return window(memes, subsetSize, 2*subsetSize)
	case domain.CategoryClassic:
		return window(memes, 2*subsetSize, 3*subsetSize)
	case domain.CategoryRandom:
		sample := make([]domain.Meme, len(memes))
		copy(sample, memes)
		s.shuffle(len(sample), func(i, j int) {
			sample[i], sample[j] = sample[j], sample[i]
		})
		return window(sample, 0, subsetSize)
	default:
		return window(memes, 0, subsetSize)
	}
}

// Search replaces the search results with the catalog entries whose name
// contains the query, case-insensitively. An empty or whitespace-only
// query clears the results without a network call and never errors.
func (s *Memes) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		s.ResetSearch()
		return nil
	}

	gen := s.beginFetch(FetchSearch)
	memes, err := s.catalog.Memes(ctx)
	return s.finishFetch(FetchSearch, gen, err, func() {
		needle := strings.ToLower(query)
		results := make([]domain.Meme, 0)
		for _, m := range memes {
			if strings.Contains(strings.ToLower(m.Name), needle) {
				results = append(results, m)
			}
		}
		s.searchResults = results
	})
}

// window returns memes[lo:hi] clamped to the available records.
func window(memes []domain.Meme, lo, hi int) []domain.Meme {
	if lo > len(memes) {
		lo = len(memes)
	}
	if hi > len(memes) {
		hi = len(memes)
	}
	out := make([]domain.Meme, hi-lo)
	copy(out, memes[lo:hi])
	return out
}

// --- Synchronous mutations ---

// Like increments the like counter for the meme and persists the map.
func (s *Memes) Like(memeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likes[memeID]++
	s.persist(keyLikes, s.likes)
}

// Unlike decrements the like counter, floored at zero. Decrementing a
// zero counter is a no-op and does not touch storage.
func (s *Memes) Unlike(memeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likes[memeID] == 0 {
		return
	}
	s.likes[memeID]--
	s.persist(keyLikes, s.likes)
}

// AddComment appends a comment to the meme's ordered comment list.
// Rejected without any state change when the trimmed text is empty or no
// profile is set. ID and date are generated at commit time.
func (s *Memes) AddComment(memeID, text string, author domain.Profile) (domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}
	if author.Name == "" {
		return domain.Comment{}, domain.ErrNoProfile
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.Comment{
		ID:        fmt.Sprintf("%d", s.now().UnixNano()),
		Text:      text,
		Author:    author.Name,
		AuthorPic: author.ProfilePic,
		Date:      s.now().UTC(),
	}
	s.comments[memeID] = append(s.comments[memeID], c)
	s.persist(keyComments, s.comments)
	return c, nil
}

// AddUpload validates the draft, materializes it as a meme with a fresh
// ID and upload timestamp, and appends it to the upload set. The
// in-memory append happens even when the storage write fails.
func (s *Memes) AddUpload(draft domain.UploadDraft, uploadedBy string) (domain.Meme, error) {
	if err := s.validate.Struct(draft); err != nil {
		return domain.Meme{}, fmt.Errorf("%w: %w", domain.ErrInvalidUpload, err)
	}
	if uploadedBy == "" {
		uploadedBy = "You"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meme := domain.Meme{
		ID:         uuid.NewString(),
		Name:       draft.Title,
		URL:        draft.URL,
		UploadDate: s.now().UTC(),
		UploadedBy: uploadedBy,
		Category:   draft.Category,
		Tags:       draft.Tags,
		Caption:    draft.Caption,
	}
	s.uploads = append(s.uploads, meme)
	s.persist(keyUploads, s.uploads)
	return meme, nil
}

// SetCategory records the active explore category and persists it as
// part of the UI state. Pure state transition, no fetch.
func (s *Memes) SetCategory(category domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
	s.persist(keyUIState, uiState{Category: category})
}

// Category returns the active explore category.
func (s *Memes) Category() domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// ResetSearch clears the search results and supersedes any in-flight
// search so its late response is dropped.
func (s *Memes) ResetSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen[FetchSearch]++
	s.searchResults = nil
	s.ops[FetchSearch] = OpState{Status: StatusIdle}
}

// ResetStatus returns every fetch status to idle and clears errors.
func (s *Memes) ResetStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.ops {
		s.ops[i] = OpState{Status: StatusIdle}
	}
}

// --- Reads ---

// Snapshot is a read-only copy of the meme store's observable state.
type Snapshot struct {
	Trending      []domain.Meme
	Newest        []domain.Meme
	Explore       []domain.Meme
	SearchResults []domain.Meme
	Uploads       []domain.Meme
	Likes         map[string]int
	Comments      map[string][]domain.Comment
	TrendingOp    OpState
	NewOp         OpState
	ExploreOp     OpState
	SearchOp      OpState
	Category      domain.Category
}

// Snapshot returns a consistent copy of the current state.
func (s *Memes) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	likes := make(map[string]int, len(s.likes))
	for k, v := range s.likes {
		likes[k] = v
	}
	comments := make(map[string][]domain.Comment, len(s.comments))
	for k, v := range s.comments {
		comments[k] = append([]domain.Comment(nil), v...)
	}

	return Snapshot{
		Trending:      append([]domain.Meme(nil), s.trending...),
		Newest:        append([]domain.Meme(nil), s.newest...),
		Explore:       append([]domain.Meme(nil), s.explore...),
		SearchResults: append([]domain.Meme(nil), s.searchResults...),
		Uploads:       append([]domain.Meme(nil), s.uploads...),
		Likes:         likes,
		Comments:      comments,
		TrendingOp:    s.ops[FetchTrending],
		NewOp:         s.ops[FetchNew],
		ExploreOp:     s.ops[FetchExplore],
		SearchOp:      s.ops[FetchSearch],
		Category:      s.category,
	}
}

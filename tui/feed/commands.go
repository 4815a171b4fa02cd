package feed

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"memeverse/domain"
	"memeverse/store"
)

// fetchSubset runs the store fetch for the given kind in the background
// and reports completion. The store guards against stale responses, so
// firing the same kind twice is harmless.
func (m Model) fetchSubset(kind store.Fetch) tea.Cmd {
	memes := m.memes
	return func() tea.Msg {
		var err error
		switch kind {
		case store.FetchTrending:
			err = memes.FetchTrending(context.Background())
		case store.FetchNew:
			err = memes.FetchNew(context.Background())
		case store.FetchExplore:
			err = memes.FetchByCategory(context.Background(), memes.Category())
		}
		return SubsetRefreshedMsg{Kind: kind, Err: err}
	}
}

// fetchCategory switches the explore category and refreshes its subset.
func (m Model) fetchCategory(cat domain.Category) tea.Cmd {
	memes := m.memes
	return func() tea.Msg {
		memes.SetCategory(cat)
		err := memes.FetchByCategory(context.Background(), cat)
		return SubsetRefreshedMsg{Kind: store.FetchExplore, Err: err}
	}
}

// debounceSearch waits out the typing pause before a query hits the
// network. Each keystroke bumps searchSeq, so earlier ticks arrive with
// a stale Seq and get dropped.
func (m Model) debounceSearch(seq int, query string) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return SearchDebouncedMsg{Seq: seq, Query: query}
	})
}

// runSearch performs the actual search against the catalog.
func (m Model) runSearch(query string) tea.Cmd {
	memes := m.memes
	return func() tea.Msg {
		err := memes.Search(context.Background(), query)
		return SubsetRefreshedMsg{Kind: store.FetchSearch, Err: err}
	}
}

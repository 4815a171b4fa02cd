package store

import (
	"sort"

	"memeverse/domain"
)

// Ranked pairs a meme with its engagement counts for the leaderboard.
type Ranked struct {
	Meme     domain.Meme
	Likes    int
	Comments int
}

// Engagement is the ranking key: likes plus comment count.
func (r Ranked) Engagement() int {
	return r.Likes + r.Comments
}

// Leaderboard ranks the trending subset by engagement, descending, and
// returns at most n entries. Ties keep the subset's original order.
func (s *Memes) Leaderboard(n int) []Ranked {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := make([]Ranked, 0, len(s.trending))
	for _, m := range s.trending {
		ranked = append(ranked, Ranked{
			Meme:     m,
			Likes:    s.likes[m.ID],
			Comments: len(s.comments[m.ID]),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Engagement() > ranked[j].Engagement()
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

package feed

import (
	"fmt"
	"strings"

	"memeverse/domain"
	"memeverse/store"
	"memeverse/tui/common"
)

// View renders the feed view as a string.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.AppTitle.Render("🔥 MemeVerse") + "\n")
	b.WriteString(m.styles.Tagline.Render("The internet's finest memes, straight to your terminal") + "\n\n")
	b.WriteString(m.renderTabs() + "\n\n")

	switch {
	case m.pickingCategory:
		b.WriteString(m.renderPicker())
	case m.showDetail:
		b.WriteString(m.renderDetail())
	case m.tab == TabProfile:
		b.WriteString(m.renderProfile())
	case m.tab == TabBoard:
		b.WriteString(m.renderBoard())
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString("\n" + m.renderStatusBar())
	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, int(tabCount))
	for t := Tab(0); t < tabCount; t++ {
		style := m.styles.TabInactive
		if t == m.tab {
			style = m.styles.TabActive
		}
		parts = append(parts, style.Render(t.String()))
	}
	return " " + strings.Join(parts, "·")
}

func (m Model) renderList() string {
	if m.tab == TabSearch {
		return m.renderSearch()
	}

	op := m.activeOp()
	list := m.currentList()

	if header := m.renderOpHeader(op, len(list)); header != "" {
		return header
	}

	var b strings.Builder
	if m.tab == TabExplore {
		b.WriteString(m.styles.Label.MarginLeft(1).Render("Category: "+string(m.snap.Category)) + "\n\n")
	}
	b.WriteString(m.renderMemes(list))
	return b.String()
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString("  " + m.searchInput.View() + "\n\n")

	op := m.snap.SearchOp
	switch op.Status {
	case store.StatusLoading:
		b.WriteString("  " + m.spinner.View() + " Searching...\n")
	case store.StatusFailed:
		b.WriteString(m.styles.Error.MarginLeft(1).Render("Search failed: "+op.Err) + "\n")
		b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render("Press r to retry") + "\n")
	case store.StatusSucceeded:
		if len(m.snap.SearchResults) == 0 {
			b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render("No memes matched. Try another keyword.") + "\n")
		} else {
			b.WriteString(m.renderMemes(m.snap.SearchResults))
		}
	default:
		b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render("Type to search the catalog.") + "\n")
	}
	return b.String()
}

// renderOpHeader renders the loading/error state for an empty list;
// returns "" when the list itself should be shown.
func (m Model) renderOpHeader(op store.OpState, listLen int) string {
	if op.Status == store.StatusLoading && listLen == 0 {
		return "  " + m.spinner.View() + " Loading memes...\n"
	}
	if op.Status == store.StatusFailed && listLen == 0 {
		return m.styles.Error.MarginLeft(1).Render("Could not load memes: "+op.Err) + "\n" +
			m.styles.MemeMeta.MarginLeft(1).Render("Press r to retry") + "\n"
	}
	if listLen == 0 {
		return m.styles.MemeMeta.MarginLeft(1).Render("Nothing here yet.") + "\n"
	}
	return ""
}

func (m Model) renderMemes(list []domain.Meme) string {
	var b strings.Builder

	end := m.startIndex + m.pageSize()
	if end > len(list) {
		end = len(list)
	}
	for i := m.startIndex; i < end; i++ {
		b.WriteString(m.renderMemeCard(list[i], i == m.cursor) + "\n")
	}
	if end < len(list) {
		b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render(fmt.Sprintf("... %d more", len(list)-end)) + "\n")
	}
	return b.String()
}

func (m Model) renderMemeCard(meme domain.Meme, selected bool) string {
	width := m.width - 6
	if width < 40 {
		width = 40
	}

	name := m.styles.MemeName.Render(common.Ellipsize(meme.Name, width-4))

	meta := make([]string, 0, 4)
	meta = append(meta, fmt.Sprintf("♥ %s", common.FormatCount(m.snap.Likes[meme.ID])))
	meta = append(meta, fmt.Sprintf("💬 %s", common.FormatCount(len(m.snap.Comments[meme.ID]))))
	if meme.IsUpload() {
		meta = append(meta, "by "+meme.UploadedBy)
	} else {
		meta = append(meta, fmt.Sprintf("%dx%d", meme.Width, meme.Height))
	}

	line2 := m.styles.MemeMeta.Render(strings.Join(meta, "  "))
	if m.userSnap.Profile.HasLiked(meme.ID) {
		line2 += "  " + m.styles.LikedBadge.Render("liked")
	}

	card := name + "\n" + line2
	if selected {
		return m.styles.Selected.Width(width).Render(card)
	}
	return m.styles.Unselected.Width(width).Render(card)
}

func (m Model) renderDetail() string {
	var b strings.Builder
	meme := m.detail

	b.WriteString(m.styles.MemeName.MarginLeft(1).Render(meme.Name) + "\n")
	b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render(meme.URL) + "\n")

	meta := fmt.Sprintf("♥ %s   💬 %d", common.FormatCount(m.snap.Likes[meme.ID]), len(m.snap.Comments[meme.ID]))
	if m.userSnap.Profile.HasLiked(meme.ID) {
		meta += "   " + m.styles.LikedBadge.Render("liked")
	}
	b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render(meta) + "\n")

	if meme.IsUpload() {
		b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render(
			fmt.Sprintf("Uploaded by %s on %s", meme.UploadedBy, common.FormatDate(meme.UploadDate))) + "\n")
		if meme.Caption != "" {
			b.WriteString(m.styles.Content.MarginLeft(1).Render("“"+meme.Caption+"”") + "\n")
		}
	}

	comments := m.snap.Comments[meme.ID]
	b.WriteString("\n" + m.styles.Label.MarginLeft(1).Render(fmt.Sprintf("Comments (%d)", len(comments))) + "\n")
	if len(comments) == 0 {
		b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render("No comments yet. Be the first!") + "\n")
	}
	for _, c := range comments {
		header := m.styles.Author.Render(c.Author) + " " + m.styles.Timestamp.Render(common.FormatDate(c.Date))
		b.WriteString("  " + header + "\n")
		b.WriteString("  " + m.styles.Content.Render(common.Ellipsize(c.Text, m.width-6)) + "\n")
	}
	return b.String()
}

func (m Model) renderBoard() string {
	if header := m.renderOpHeader(m.snap.TrendingOp, len(m.board)); header != "" {
		return header
	}

	var b strings.Builder
	b.WriteString(m.styles.Label.MarginLeft(1).Render("Top memes by engagement") + "\n\n")
	medals := []string{"🥇", "🥈", "🥉"}
	for i, r := range m.board {
		rank := fmt.Sprintf("%2d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		line := m.styles.Rank.Render(rank) + " " +
			m.styles.MemeName.Render(common.Ellipsize(r.Meme.Name, 48)) + "  " +
			m.styles.MemeMeta.Render(fmt.Sprintf("♥ %s  💬 %d", common.FormatCount(r.Likes), r.Comments))
		if i == m.cursor {
			line = m.styles.TabActive.Padding(0).Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(" " + line + "\n")
	}
	return b.String()
}

func (m Model) renderProfile() string {
	var b strings.Builder
	p := m.userSnap.Profile

	b.WriteString(m.styles.Author.MarginLeft(1).Render(p.Name) + " " +
		m.styles.MemeMeta.Render("@"+p.Username) + "\n")
	b.WriteString(m.styles.Content.MarginLeft(1).Render(p.Bio) + "\n")

	stats := fmt.Sprintf("%s followers  %s following  %d liked  %d uploaded",
		common.FormatCount(p.Followers), common.FormatCount(p.Following),
		len(p.LikedMemes), len(m.snap.Uploads))
	b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render(stats) + "\n")

	if m.userSnap.Authenticated {
		b.WriteString(m.styles.LikedBadge.MarginLeft(1).Render("logged in") + "\n")
	} else {
		b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render("browsing as guest (a to log in)") + "\n")
	}

	b.WriteString("\n" + m.styles.Label.MarginLeft(1).Render("Your memes") + "\n")
	list := m.profileList()
	if len(list) == 0 {
		b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render("No uploads or likes yet.") + "\n")
		return b.String()
	}
	b.WriteString(m.renderMemes(list))
	return b.String()
}

func (m Model) renderPicker() string {
	var b strings.Builder
	b.WriteString(m.styles.Label.MarginLeft(1).Render("Pick a category") + "\n\n")
	for i, c := range pickerCategories {
		cursor := "  "
		style := m.styles.Content
		if i == m.categoryCursor {
			cursor = m.styles.TabActive.Padding(0).Render("> ")
			style = m.styles.MemeName
		}
		b.WriteString("  " + cursor + style.Render(string(c)) + "\n")
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	hints := "tab switch · ↑/↓ move · enter open · l like · c comment · u upload · / search · r refresh · q quit"
	switch m.tab {
	case TabExplore:
		hints = "x category · " + hints
	case TabProfile:
		hints = "e edit · a log in/out · t theme · " + hints
	}
	if m.showDetail {
		hints = "esc back · l like · c comment · C inline comment"
	}
	return m.styles.StatusBar.Render(" " + hints)
}

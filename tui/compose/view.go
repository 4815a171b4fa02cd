package compose

import (
	"fmt"
	"strings"

	"memeverse/tui/common"
)

// View renders the compose view as a string.
func (m Model) View() string {
	var b strings.Builder

	switch m.mode {
	case editorMode:
		b.WriteString(m.styles.Content.Render("  Opening editor...") + "\n")

	case inlineMode:
		b.WriteString(m.styles.AppTitle.Render("💬 Comment") + "\n")
		b.WriteString(m.styles.MemeMeta.MarginLeft(1).Render("on "+common.Ellipsize(m.memeName, 60)) + "\n\n")
		b.WriteString(m.textarea.View() + "\n")
		b.WriteString(m.styles.StatusBar.Render("  ctrl+d post · esc cancel"))

	case uploadMode:
		b.WriteString(m.styles.AppTitle.Render("📤 Upload a meme") + "\n\n")
		b.WriteString(m.renderForm())
		b.WriteString(m.styles.StatusBar.Render("  enter submit · tab next field · ctrl+g caption · esc cancel"))

	case profileMode:
		b.WriteString(m.styles.AppTitle.Render("👤 Edit profile") + "\n\n")
		b.WriteString(m.renderForm())
		b.WriteString(m.styles.StatusBar.Render("  enter save · tab next field · esc cancel"))
	}

	if m.err != nil {
		b.WriteString("\n" + m.styles.Error.Render(fmt.Sprintf("  %v", m.err)))
	}
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, in := range m.inputs {
		cursor := "  "
		if i == m.focused {
			cursor = m.styles.TabActive.Padding(0).Render("> ")
		}
		b.WriteString("  " + cursor + in.View() + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

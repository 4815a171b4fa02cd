package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"memeverse/domain"
	"memeverse/infra/editor"
	"memeverse/tui/common"
)

// Kind says what the composer was producing when it finished.
type Kind int

const (
	KindComment Kind = iota
	KindUpload
	KindProfile
)

// --- Modes ---

type mode int

const (
	editorMode mode = iota // comment via $EDITOR
	inlineMode             // comment via inline textarea
	uploadMode             // multi-field upload form
	profileMode            // name/bio/picture form
)

// --- Messages ---

// DoneMsg is sent when composing is complete (success or cancel).
type DoneMsg struct {
	Kind      Kind
	MemeID    string             // Comment target
	Content   string             // Comment text; empty if cancelled
	Draft     domain.UploadDraft // Upload payload
	Profile   domain.ProfileUpdate
	Cancelled bool
	Err       error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// Upload form field order.
const (
	fieldTitle = iota
	fieldURL
	fieldCategory
	fieldTags
	fieldCaption
	uploadFieldCount
)

// Profile form field order.
const (
	fieldName = iota
	fieldBio
	fieldPic
	profileFieldCount
)

// --- Model ---

// Model holds the state for the compose view.
type Model struct {
	mode   mode
	styles common.Styles
	err    error

	// Comment state.
	editor   *editor.EnvEditor
	memeID   string
	memeName string
	textarea textarea.Model
	tmpPath  string

	// Form state (upload and profile share the mechanics).
	inputs  []textinput.Model
	focused int
}

// NewEditorComment creates a compose model that opens $EDITOR via tea.Exec.
func NewEditorComment(ed *editor.EnvEditor, memeID, memeName string, styles common.Styles) Model {
	return Model{
		mode:     editorMode,
		styles:   styles,
		editor:   ed,
		memeID:   memeID,
		memeName: memeName,
	}
}

// NewInlineComment creates a compose model with an inline textarea.
func NewInlineComment(memeID, memeName string, styles common.Styles) Model {
	ta := textarea.New()
	ta.Placeholder = "Add a comment..."
	ta.CharLimit = 500
	ta.SetWidth(72)
	ta.SetHeight(4)
	ta.Focus()

	return Model{
		mode:     inlineMode,
		styles:   styles,
		memeID:   memeID,
		memeName: memeName,
		textarea: ta,
	}
}

// NewUpload creates the upload form.
func NewUpload(styles common.Styles) Model {
	labels := [uploadFieldCount]string{"Title (required)", "Image URL (required)", "Category", "Tags (comma-separated)", "Caption"}
	inputs := make([]textinput.Model, uploadFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 280
		ti.Width = 60
		inputs[i] = ti
	}
	inputs[fieldCategory].SetValue("funny")
	inputs[fieldTitle].Focus()

	return Model{
		mode:   uploadMode,
		styles: styles,
		inputs: inputs,
	}
}

// NewProfile creates the profile edit form, pre-filled from the profile.
func NewProfile(p domain.Profile, styles common.Styles) Model {
	inputs := make([]textinput.Model, profileFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 280
		ti.Width = 60
		inputs[i] = ti
	}
	inputs[fieldName].SetValue(p.Name)
	inputs[fieldBio].SetValue(p.Bio)
	inputs[fieldPic].SetValue(p.ProfilePic)
	inputs[fieldName].Focus()

	return Model{
		mode:   profileMode,
		styles: styles,
		inputs: inputs,
	}
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	case uploadMode, profileMode:
		return textinput.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd("", m.memeName)
	if err != nil {
		return func() tea.Msg {
			return DoneMsg{Kind: KindComment, Err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	m.tmpPath = tmpPath

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{Kind: KindComment, MemeID: m.memeID, Err: fmt.Errorf("editor: %w", msg.err)})
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{Kind: KindComment, MemeID: m.memeID, Err: err})
		}
		if content == "" {
			return m, done(DoneMsg{Kind: KindComment, MemeID: m.memeID, Cancelled: true})
		}
		return m, done(DoneMsg{Kind: KindComment, MemeID: m.memeID, Content: content})

	case tea.KeyMsg:
		switch m.mode {
		case inlineMode:
			return m.updateInline(msg)
		case uploadMode, profileMode:
			return m.updateForm(msg)
		}
	}

	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateInline(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, done(DoneMsg{Kind: KindComment, MemeID: m.memeID, Cancelled: true})
	case "ctrl+d":
		content := strings.TrimSpace(m.textarea.Value())
		if content == "" {
			return m, done(DoneMsg{Kind: KindComment, MemeID: m.memeID, Cancelled: true})
		}
		return m, done(DoneMsg{Kind: KindComment, MemeID: m.memeID, Content: content})
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, done(DoneMsg{Kind: m.doneKind(), Cancelled: true})

	case "tab", "down":
		m.setFocus((m.focused + 1) % len(m.inputs))
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focused - 1 + len(m.inputs)) % len(m.inputs))
		return m, nil

	case "ctrl+g":
		if m.mode == uploadMode {
			m.inputs[fieldCaption].SetValue(randomCaption())
		}
		return m, nil

	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[m.focused].Focus()
}

func (m Model) doneKind() Kind {
	if m.mode == profileMode {
		return KindProfile
	}
	return KindUpload
}

func (m Model) submit() (Model, tea.Cmd) {
	switch m.mode {
	case uploadMode:
		title := strings.TrimSpace(m.inputs[fieldTitle].Value())
		url := strings.TrimSpace(m.inputs[fieldURL].Value())
		if title == "" || url == "" {
			m.err = fmt.Errorf("title and image URL are required")
			return m, nil
		}
		return m, done(DoneMsg{
			Kind: KindUpload,
			Draft: domain.UploadDraft{
				Title:    title,
				URL:      url,
				Category: strings.TrimSpace(m.inputs[fieldCategory].Value()),
				Tags:     splitTags(m.inputs[fieldTags].Value()),
				Caption:  strings.TrimSpace(m.inputs[fieldCaption].Value()),
			},
		})

	case profileMode:
		name := m.inputs[fieldName].Value()
		bio := m.inputs[fieldBio].Value()
		pic := m.inputs[fieldPic].Value()
		return m, done(DoneMsg{
			Kind: KindProfile,
			Profile: domain.ProfileUpdate{
				Name:       &name,
				Bio:        &bio,
				ProfilePic: &pic,
			},
		})
	}
	return m, nil
}

// splitTags turns "cat, monday,  " into ["cat","monday"].
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

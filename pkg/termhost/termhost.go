// Package termhost renders a memhost element tree in the terminal. It is a
// Bubble Tea front end over the host boundary: widgets are drawn with
// lipgloss, interactive regions are marked with bubblezone, and mouse clicks
// resolve back to the source element and fire host events, which the attached
// dispatcher routes to registered handlers.
//
// The front end is presentation only. It drives the exact same host API the
// library consumes, so everything that works here works against any other
// host implementation.
package termhost

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/loom/internal/keys"
	"github.com/zjrosen/loom/internal/log"
	"github.com/zjrosen/loom/internal/pubsub"
	"github.com/zjrosen/loom/pkg/host"
	"github.com/zjrosen/loom/pkg/memhost"
)

// Model is the Bubble Tea model for one element tree.
type Model struct {
	h    *memhost.Host
	root host.Element

	keys   keys.KeyMap
	styles Styles

	// active maps a tabbed-pane element ID to its selected pair index.
	active map[string]int

	status        string
	onSave        func() error
	showStatusBar bool

	ctx    context.Context
	cancel context.CancelFunc

	// storeListener streams the host's persistence events into the update
	// loop; logListener streams log lines when debug mode is on.
	storeListener *pubsub.ContinuousListener[memhost.StoreEvent]
	logListener   *log.LogListener
	debugLine     string
}

// Option configures a Model.
type Option func(*Model)

// WithStyles overrides the default widget styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithKeyMap overrides the default keybindings.
func WithKeyMap(k keys.KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithSaveFunc installs the function invoked by the save keybinding,
// typically the host's tag persistence.
func WithSaveFunc(fn func() error) Option {
	return func(m *Model) { m.onSave = fn }
}

// WithStatusBar toggles the status bar at the bottom of the view.
func WithStatusBar(show bool) Option {
	return func(m *Model) { m.showStatusBar = show }
}

// WithDebugLog streams log entries into the status bar. Requires the global
// logger to be initialized first.
func WithDebugLog() Option {
	return func(m *Model) { m.logListener = log.NewListener(m.ctx) }
}

// New creates a model rendering root and its subtree against h.
func New(h *memhost.Host, root host.Element, opts ...Option) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		h:             h,
		root:          root,
		keys:          keys.Default(),
		styles:        DefaultStyles(),
		active:        make(map[string]int),
		showStatusBar: true,
		ctx:           ctx,
		cancel:        cancel,
	}
	m.storeListener = pubsub.NewContinuousListener(ctx, h.Events())
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.storeListener.Listen()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.cycleTabs(1)
		case key.Matches(msg, m.keys.PrevTab):
			m.cycleTabs(-1)
		case key.Matches(msg, m.keys.Save):
			m.save()
		}
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			m.handleClick(msg)
		}
	case pubsub.Event[memhost.StoreEvent]:
		switch msg.Type {
		case pubsub.TagsSavedEvent:
			m.status = fmt.Sprintf("tags saved (%d)", msg.Payload.Elements)
		case pubsub.TagsRestoredEvent:
			m.status = fmt.Sprintf("tags restored (%d)", msg.Payload.Elements)
		}
		return m, m.storeListener.Listen()
	case log.LogEvent:
		m.debugLine = strings.TrimSpace(msg.Payload)
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
	}
	return m, nil
}

func (m *Model) save() {
	if m.onSave == nil {
		return
	}
	if err := m.onSave(); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		log.ErrorErr(log.CatUI, "save failed", err)
	}
	// On success the host publishes TagsSavedEvent, which updates the
	// status line through the store listener.
}

// cycleTabs advances the selection of every tabbed-pane in the tree.
func (m *Model) cycleTabs(delta int) {
	m.walk(m.root, func(el *memhost.Elem) {
		if el.Kind() != "tabbed-pane" {
			return
		}
		pairs := el.TabPairs()
		if len(pairs) == 0 {
			return
		}
		next := (m.active[el.ID()] + delta + len(pairs)) % len(pairs)
		m.active[el.ID()] = next
		m.h.Fire(host.KindSelectionChanged, el, next)
	})
}

// handleClick resolves a mouse release to the element whose zone contains it
// and fires the matching host event.
func (m *Model) handleClick(msg tea.MouseMsg) {
	m.walk(m.root, func(el *memhost.Elem) {
		z := zone.Get(el.ID())
		if z == nil || !z.InBounds(msg) {
			return
		}
		switch el.Kind() {
		case "button":
			log.Debug(log.CatUI, "button clicked", "name", el.Name())
			m.h.Fire(host.KindClick, el, nil)
		case "checkbox":
			checked, _ := el.Prop("checked")
			next := checked != true
			_ = el.Set("checked", next)
			m.h.Fire(host.KindCheckedChanged, el, next)
		case "tab":
			m.selectTab(el)
		}
	})
}

// selectTab activates the pair whose tab is el on its parent pane.
func (m *Model) selectTab(el *memhost.Elem) {
	pane, ok := el.Parent().(*memhost.Elem)
	if !ok || pane.Kind() != "tabbed-pane" {
		return
	}
	for i, pair := range pane.TabPairs() {
		if pair[0] == host.Element(el) {
			m.active[pane.ID()] = i
			m.h.Fire(host.KindSelectionChanged, pane, i)
			return
		}
	}
}

func (m *Model) walk(el host.Element, fn func(*memhost.Elem)) {
	e, ok := el.(*memhost.Elem)
	if !ok {
		return
	}
	fn(e)
	for _, c := range el.Children() {
		m.walk(c, fn)
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.render(m.root))
	if m.showStatusBar {
		b.WriteString("\n")
		b.WriteString(m.statusBar())
	}
	return zone.Scan(b.String())
}

func (m *Model) statusBar() string {
	parts := []string{"q quit", "tab next tab", "s save"}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.debugLine != "" {
		parts = append(parts, m.debugLine)
	}
	return m.styles.StatusBar.Render(strings.Join(parts, " · "))
}

func (m *Model) render(el host.Element) string {
	e, ok := el.(*memhost.Elem)
	if !ok {
		return ""
	}
	switch e.Kind() {
	case "frame":
		body := m.renderChildren(e, lipgloss.Top)
		if caption := caption(e); caption != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, m.styles.Label.Bold(true).Render(caption), body)
		}
		return m.styles.Frame.Render(body)
	case "flow":
		pos := lipgloss.Top
		if dir, _ := e.Prop("direction"); dir == "horizontal" {
			return m.renderRow(e, pos)
		}
		return m.renderChildren(e, pos)
	case "label":
		return m.styles.Label.Render(caption(e))
	case "button":
		return zone.Mark(e.ID(), m.styles.Button.Render(caption(e)))
	case "checkbox":
		mark := "[ ]"
		if checked, _ := e.Prop("checked"); checked == true {
			mark = "[x]"
		}
		text := strings.TrimSpace(mark + " " + caption(e))
		return zone.Mark(e.ID(), m.styles.Checkbox.Render(text))
	case "textfield":
		text, _ := e.Prop("text")
		return m.styles.Textfield.Render(fmt.Sprintf("%v", text))
	case "tabbed-pane":
		return m.renderPane(e)
	case "tab":
		// Tabs render through their pane's tab bar.
		return ""
	default:
		return m.renderChildren(e, lipgloss.Top)
	}
}

func (m *Model) renderChildren(e *memhost.Elem, pos lipgloss.Position) string {
	var parts []string
	for _, c := range e.Children() {
		if s := m.render(c); s != "" {
			parts = append(parts, s)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderRow(e *memhost.Elem, pos lipgloss.Position) string {
	var parts []string
	for _, c := range e.Children() {
		if s := m.render(c); s != "" {
			parts = append(parts, s)
		}
	}
	return lipgloss.JoinHorizontal(pos, parts...)
}

// renderPane draws a tab bar from the pane's pairs and the content of the
// active pair below it. Children that are not part of a pair are not drawn.
func (m *Model) renderPane(e *memhost.Elem) string {
	pairs := e.TabPairs()
	if len(pairs) == 0 {
		return ""
	}
	activeIdx := m.active[e.ID()]
	if activeIdx >= len(pairs) {
		activeIdx = 0
	}

	var bar []string
	for i, pair := range pairs {
		tab := pair[0].(*memhost.Elem)
		style := m.styles.Tab
		if i == activeIdx {
			style = m.styles.ActiveTab
		}
		bar = append(bar, zone.Mark(tab.ID(), style.Render(caption(tab))))
	}

	content := m.render(pairs[activeIdx][1])
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, bar...),
		content,
	)
}

func caption(e *memhost.Elem) string {
	if v, ok := e.Prop("caption"); ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

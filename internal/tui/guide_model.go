package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/sanaguide/internal/app"
	"github.com/felixgeelhaar/sanaguide/internal/domain/navigation"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
	"github.com/felixgeelhaar/sanaguide/internal/ports"
	"github.com/felixgeelhaar/sanaguide/internal/tui/ui"
)

var forceQuit = key.NewBinding(key.WithKeys("ctrl+c"))

// guideModel is the root model. It routes messages to the screen the
// navigator is on and owns the open flow's session state.
type guideModel struct {
	ctx    context.Context
	svc    *app.Guide
	nav    *navigation.Navigator
	logger ports.Logger
	opts   GuideOptions
	md     *markdownRenderer
	keys   ui.KeyMap
	styles ui.Styles

	os      platform.OS
	catalog catalogModel
	flow    *flowModel
	fields  fieldsModel

	width  int
	height int
	err    error

	lastFlow  string
	completed int
	total     int
}

func newGuideModel(ctx context.Context, svc *app.Guide, opts GuideOptions) (guideModel, error) {
	nav, err := navigation.New()
	if err != nil {
		return guideModel{}, err
	}

	o := opts.OS
	if !o.Valid() {
		o = platform.Mac
	}

	m := guideModel{
		ctx:    ctx,
		svc:    svc,
		nav:    nav,
		logger: svc.Logger(),
		opts:   opts,
		md:     newMarkdownRenderer(opts.MarkdownStyle, opts.WordWrap),
		keys:   ui.DefaultKeyMap(),
		styles: ui.DefaultStyles(),
		os:     o,
		width:  ui.DefaultWidth,
		height: ui.DefaultHeight,
	}
	m.catalog = newCatalogModel(svc.Catalog(), o, m.width, m.height)

	if opts.InitialFlow != "" {
		if err := m.openFlow(opts.InitialFlow); err != nil {
			nav.Stop()
			return guideModel{}, err
		}
	}
	return m, nil
}

func (m guideModel) Init() tea.Cmd {
	return nil
}

func (m guideModel) Screen() navigation.Screen {
	return m.nav.Screen()
}

func (m *guideModel) openFlow(id string) error {
	st, err := m.svc.Open(m.ctx, id, m.os)
	if err != nil {
		return err
	}
	m.nav.OpenFlow(id)
	m.catalog.list = m.catalog.list.Select(id)

	flow := newFlowModel(st, flowDeps{
		clip:   m.svc.Clipboard(),
		logger: m.logger,
		md:     m.md,
		window: m.opts.CopyWindow,
		tick:   m.opts.tick,
	}, m.width, m.height)
	m.flow = &flow
	m.lastFlow = id
	m.record()
	return nil
}

// closeFlow drops the session, credentials included, and returns to the
// catalog. The chosen OS carries over.
func (m *guideModel) closeFlow() {
	if m.flow == nil {
		return
	}
	m.record()
	m.os = m.flow.state.OS
	m.catalog.os = m.os
	m.flow.close()
	m.logger.Debug(m.ctx, "flow closed",
		ports.F("session", m.flow.state.SessionID),
		ports.F("flow", m.flow.state.FlowID),
	)
	m.flow = nil
}

func (m *guideModel) record() {
	if m.flow == nil {
		return
	}
	m.completed = m.flow.state.Progress.CompletedCount()
	m.total = m.flow.state.Progress.Total()
}

func (m guideModel) quit() (tea.Model, tea.Cmd) {
	m.record()
	if m.flow != nil {
		m.flow.close()
	}
	m.nav.Quit()
	return m, tea.Quit
}

func (m guideModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.catalog = m.catalog.resize(msg.Width, msg.Height)
		m.fields = m.fields.resize(msg.Width)
		if m.flow != nil {
			flow := m.flow.resize(msg.Width, msg.Height)
			m.flow = &flow
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, forceQuit) {
			return m.quit()
		}
		m.err = nil

	case ui.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case openFlowMsg:
		if err := m.openFlow(msg.FlowID); err != nil {
			return m, func() tea.Msg { return ui.NewErrorMsg(err) }
		}
		return m, nil

	case fieldsDoneMsg:
		if m.flow != nil {
			msgs := make([]app.Msg, 0, len(msg.Values))
			for _, f := range m.flow.state.Flow().Fields {
				msgs = append(msgs, app.SetField{Name: f.Name, Value: msg.Values[f.Name]})
			}
			flow := *m.flow
			flow.state = m.svc.Apply(m.ctx, flow.state, msgs...)
			flow = flow.refresh()
			m.flow = &flow
		}
		m.nav.DoneEditing()
		return m, func() tea.Msg { return ui.NewStatusMsg("Details saved") }

	case ui.StatusMsg:
		return m.updateFlow(msg)

	case copyResultMsg, clearCopiedMsg:
		return m.updateFlow(msg)
	}

	switch m.nav.Screen() {
	case navigation.ScreenCatalog:
		return m.updateCatalog(msg)
	case navigation.ScreenFlow:
		return m.updateFlowScreen(msg)
	case navigation.ScreenFields:
		var cmd tea.Cmd
		m.fields, cmd = m.fields.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m guideModel) updateCatalog(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Quit) {
		return m.quit()
	}
	var cmd tea.Cmd
	m.catalog, cmd = m.catalog.Update(msg)
	m.os = m.catalog.os
	return m, cmd
}

func (m guideModel) updateFlowScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m.quit()
		case key.Matches(k, m.keys.Back):
			m.closeFlow()
			m.nav.Back()
			return m, nil
		case key.Matches(k, m.keys.Fields):
			if m.flow != nil && m.nav.EditFields() {
				st := m.flow.state
				m.fields = newFieldsModel(st.Flow().Fields, st.Values, m.width)
				return m, nil
			}
		}
	}
	return m.updateFlow(msg)
}

func (m guideModel) updateFlow(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.flow == nil {
		return m, nil
	}
	flow, cmd := m.flow.Update(msg)
	m.flow = &flow
	m.record()
	return m, cmd
}

func (m guideModel) View() string {
	var view string
	switch m.nav.Screen() {
	case navigation.ScreenCatalog:
		view = m.catalog.View()
	case navigation.ScreenFlow:
		if m.flow != nil {
			view = m.flow.View()
		}
	case navigation.ScreenFields:
		view = m.fields.View()
	default:
		return ""
	}

	if m.err != nil {
		view += "\n" + m.styles.Error.Render(m.err.Error())
	}
	return m.styles.App.Render(view)
}

package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kitout-dev/kitout/internal/store"
)

// Model is the profile dashboard model.
type Model struct {
	profiles    []store.Registered
	store       *store.Store
	statusCache *store.StatusCache
	service     ProfileService

	viewMode   ViewMode
	cursor     int
	selectedID string

	spinner spinner.Model

	loading       map[string]bool
	operations    map[string]Operation
	operationCtxs map[string]context.CancelFunc
	errors        map[string]string
	showError     bool
	errorMsg      string

	refreshing      bool
	refreshProgress int
	refreshTotal    int

	confirmAction  string
	confirmProfile string
	confirmMessage string

	width  int
	height int

	useUnicode bool
}

// Operation tracks an in-progress async operation.
type Operation struct {
	Type      string // "verify", "apply"
	ProfileID string
	StartedAt time.Time
}

// NewModel creates a dashboard model over the registered profiles.
func NewModel(profiles []store.Registered, st *store.Store, cache *store.StatusCache, svc ProfileService) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := Model{
		profiles:      profiles,
		store:         st,
		statusCache:   cache,
		service:       svc,
		viewMode:      ViewList,
		loading:       make(map[string]bool),
		operations:    make(map[string]Operation),
		operationCtxs: make(map[string]context.CancelFunc),
		errors:        make(map[string]string),
		spinner:       s,
		useUnicode:    true,
		width:         80,
		height:        24,
	}

	for i := range m.profiles {
		if cached, ok := cache.Get(m.profiles[i].ID); ok {
			m.profiles[i].Status = cached.Status
			m.profiles[i].LastRun = cached.LastRun
		} else {
			m.profiles[i].Status = store.StatusUnknown
		}
	}

	m.sortProfiles()

	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if len(m.profiles) > 0 {
		cmds = append(cmds, loadInitialStatusCmd(m.profiles, m.statusCache))
	}
	return tea.Batch(cmds...)
}

// sortProfiles orders profiles by status priority: failed > drifted >
// satisfied > in-progress > unknown.
func (m *Model) sortProfiles() {
	sort.SliceStable(m.profiles, func(i, j int) bool {
		return statusPriority(m.profiles[i].Status) < statusPriority(m.profiles[j].Status)
	})
}

func statusPriority(status store.Status) int {
	switch status {
	case store.StatusFailed:
		return 0
	case store.StatusDrifted:
		return 1
	case store.StatusSatisfied:
		return 2
	case store.StatusVerifying, store.StatusApplying:
		return 3
	default:
		return 4
	}
}

// CountByStatus returns counts of profiles in each status.
func (m *Model) CountByStatus() map[store.Status]int {
	counts := make(map[store.Status]int)
	for _, p := range m.profiles {
		counts[p.Status]++
	}
	return counts
}

// GetSelectedProfile returns the profile under the cursor.
func (m *Model) GetSelectedProfile() (store.Registered, bool) {
	if m.cursor < 0 || m.cursor >= len(m.profiles) {
		return store.Registered{}, false
	}
	return m.profiles[m.cursor], true
}

// GetProfileByID returns a profile and its index by ID.
func (m *Model) GetProfileByID(id string) (store.Registered, int, bool) {
	for i, p := range m.profiles {
		if p.ID == id {
			return p, i, true
		}
	}
	return store.Registered{}, -1, false
}

// UpdateProfileStatus updates the status of a profile in the model.
func (m *Model) UpdateProfileStatus(id string, status store.Status, lastRun time.Time) {
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			m.profiles[i].Status = status
			m.profiles[i].LastRun = lastRun
			break
		}
	}
}

// MoveCursorUp moves the cursor up with wrapping.
func (m *Model) MoveCursorUp() {
	if len(m.profiles) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.profiles) - 1
	}
}

// MoveCursorDown moves the cursor down with wrapping.
func (m *Model) MoveCursorDown() {
	if len(m.profiles) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.profiles) {
		m.cursor = 0
	}
}

// SetCursor sets the cursor to a specific index.
func (m *Model) SetCursor(index int) {
	if index >= 0 && index < len(m.profiles) {
		m.cursor = index
	}
}

// IsLoading reports whether a profile has an operation in progress.
func (m *Model) IsLoading(id string) bool {
	return m.loading[id]
}

// GetViewMode returns the current view mode.
func (m *Model) GetViewMode() ViewMode {
	return m.viewMode
}

// IsRefreshing reports whether a refresh-all is in progress.
func (m *Model) IsRefreshing() bool {
	return m.refreshing
}

package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"

	"github.com/SandeshR98/scaleview/pkg/catalog"
	"github.com/SandeshR98/scaleview/pkg/compute"
	"github.com/SandeshR98/scaleview/pkg/config"
	"github.com/SandeshR98/scaleview/pkg/debug"
	"github.com/SandeshR98/scaleview/pkg/engine"
	"github.com/SandeshR98/scaleview/pkg/metrics"
	"github.com/SandeshR98/scaleview/pkg/model"
	"github.com/SandeshR98/scaleview/pkg/watcher"
)

// focus represents which UI element has keyboard focus
type focus int

const (
	focusList focus = iota
	focusSearch
	focusHelp
	focusInsights
)

// Options bundles the collaborators the model is built from.
type Options struct {
	Config config.Config

	// Products pre-seeds the catalog. Nil means the catalog is generated
	// (or loaded from DBPath) after the program starts.
	Products []model.Product
	DBPath   string

	// Worker may be nil; one is created when the config enables it.
	Worker  *compute.Worker
	Watcher *watcher.Watcher
}

// Model is the main Bubble Tea model for sv. It owns the canonical
// collection and all derived view state; the compute worker only ever
// holds its own private copy.
type Model struct {
	cfg   config.Config
	theme Theme
	rows  RowRenderer

	// Data. base is the full collection in its current sort order;
	// visible is the committed result set derived from base.
	store         *catalog.Store
	base          []model.Product
	visible       []model.Product
	resultVersion uint64

	// Query state
	input         textinput.Model
	lastQueryText string
	debounceToken int
	categoryIdx   int // -1 = all categories
	sortSpec      model.SortSpec
	sorted        bool // base differs from canonical ID order

	// Scheduling
	seq       Sequencer
	worker    *compute.Worker
	workerOn  bool
	windowsOn bool
	windows   windowScheduler
	mount     *mounter

	// Display
	width, height int
	focus         focus
	cursor        int // selected visual row
	offset        int // first rendered visual row
	spin          spinner.Model
	mountProgress progress.Model
	helpView      viewport.Model
	insightsView  viewport.Model

	statusMsg     string
	statusIsError bool
	statusToken   int

	watcher     *watcher.Watcher
	dbPath      string
	loading     bool
	lastElapsed time.Duration
}

// NewModel builds the model. The catalog arrives later via messages unless
// Options.Products is pre-seeded.
func NewModel(opts Options) Model {
	cfg := opts.Config

	ti := textinput.New()
	ti.Placeholder = "type to search products"
	ti.Prompt = "/ "
	ti.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	pb := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	w := opts.Worker
	if w == nil && cfg.WorkerEnabled() {
		w = compute.NewWorker(compute.Config{})
	}

	m := Model{
		cfg:           cfg,
		theme:         DefaultTheme(lipgloss.DefaultRenderer()),
		store:         catalog.NewStore(),
		input:         ti,
		categoryIdx:   -1,
		spin:          sp,
		mountProgress: pb,
		worker:        w,
		workerOn:      cfg.WorkerEnabled() && w != nil,
		windowsOn:     cfg.WindowingEnabled(),
		watcher:       opts.Watcher,
		dbPath:        opts.DBPath,
		width:         80,
		height:        24,
		loading:       len(opts.Products) == 0,
	}
	m.rows = RowRenderer{Theme: m.theme}

	if len(opts.Products) > 0 {
		// The commit's mount command, if any, is re-armed in Init.
		_ = m.installCatalog(opts.Products)
	}
	return m
}

// Init starts the worker, arms the file watcher, and kicks off the initial
// catalog acquisition.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.worker != nil {
		cmds = append(cmds, StartWorkerCmd(m.worker))
		cmds = append(cmds, WaitForWorkerMsgCmd(m.worker))
	}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	if m.loading {
		cmds = append(cmds, m.acquireCatalogCmd())
		cmds = append(cmds, m.spin.Tick)
	}
	if len(m.base) > 0 && m.workerOn {
		// Pre-seeded catalog: enqueue the prime now, ahead of any
		// request a later message may dispatch. The queue buffers it
		// until the worker starts.
		m.primeWorker()
	}
	if m.mount != nil && !m.mount.Complete() {
		cmds = append(cmds, mountChunkCmd(m.resultVersion))
	}
	return tea.Batch(cmds...)
}

// acquireCatalogCmd picks the initial catalog source: SQLite file when
// configured, worker generation when available, inline generation last.
// Worker generation needs a sequence number, so it is dispatched from the
// first WindowSizeMsg instead of here; Init cannot mutate the model.
func (m Model) acquireCatalogCmd() tea.Cmd {
	if m.dbPath != "" {
		return LoadCatalogCmd(m.dbPath)
	}
	if m.workerOn {
		return nil
	}
	return GenerateCatalogCmd(m.cfg.Catalog.Count, m.cfg.Catalog.Seed)
}

// primeWorker hands the worker a copy of the base collection. It must be
// enqueued from the update goroutine, never from a command: the request
// queue is FIFO, so a prime enqueued here is guaranteed to run before any
// filter or sort dispatched by a later message. A prime deferred to a
// command goroutine could land after such a filter, which would then run
// against a stale cache and commit under the newest sequence number.
func (m *Model) primeWorker() {
	if err := m.worker.Dispatch(compute.PrimeRequest{Products: m.base}); err != nil {
		debug.Log("worker prime failed: %v", err)
	}
}

// installCatalog replaces the canonical collection and recommits the full
// set as the visible result. Returns the commit's follow-up command.
func (m *Model) installCatalog(products []model.Product) tea.Cmd {
	m.store.Publish(products)
	m.base = products
	m.sorted = false
	m.sortSpec = model.SortSpec{}
	m.seq.Invalidate()
	m.loading = false
	return m.commitResults(m.base)
}

func (m *Model) currentCategory() string {
	if m.categoryIdx < 0 || m.categoryIdx >= len(catalog.Categories) {
		return ""
	}
	return catalog.Categories[m.categoryIdx]
}

func (m *Model) resolvedQuery() model.Query {
	return model.ParseQuery(m.input.Value(), m.currentCategory())
}

// commitResults makes products the visible result set. Result identity
// changes here and only here: scroll resets, the window recomputes, and
// progressive mounting restarts pinned to the new version.
func (m *Model) commitResults(products []model.Product) tea.Cmd {
	m.visible = products
	m.resultVersion++
	m.cursor = 0
	m.offset = 0
	metrics.RecordResultCounts(len(products), 0)
	m.windows.Reset()

	if m.windowsOn {
		m.mount = nil
		m.recomputeWindow()
		return nil
	}
	m.mount = newMounter(products, m.cfg.UI.MountCap, m.cfg.UI.ChunkSize, m.resultVersion)
	m.recomputeWindow()
	if m.mount.Complete() {
		return nil
	}
	return mountChunkCmd(m.resultVersion)
}

// listRecords returns the records the list renders from: the full result
// set under windowing, the mounted prefix otherwise.
func (m *Model) listRecords() []model.Product {
	if m.windowsOn || m.mount == nil {
		return m.visible
	}
	return m.mount.Mounted()
}

func (m *Model) groupSize() int {
	if m.cfg.UI.GroupSize < 1 {
		return 1
	}
	return m.cfg.UI.GroupSize
}

func (m *Model) rowCount() int {
	return Rows(len(m.listRecords()), m.groupSize())
}

func (m *Model) recomputeWindow() {
	m.windows.Update(WindowParams{
		Total:     len(m.listRecords()),
		Offset:    m.offset,
		Extent:    m.listHeight(),
		GroupSize: m.groupSize(),
		Overscan:  m.cfg.UI.Overscan,
	})
}

// listHeight is the number of visual rows the list body can show.
func (m *Model) listHeight() int {
	h := m.height - 6 // header, search, divider, mount line, footer
	if h < 1 {
		h = 1
	}
	return h
}

// dispatchQuery resolves the current query and routes it to the worker or
// the inline engine. The empty query commits the full collection
// synchronously and supersedes anything in flight.
func (m *Model) dispatchQuery() tea.Cmd {
	q := m.resolvedQuery()

	if q.IsEmpty() {
		m.seq.Invalidate()
		return m.commitResults(m.base)
	}

	if m.workerOn {
		seqNum := m.seq.Begin()
		err := m.worker.Dispatch(compute.FilterRequest{Query: q, Seq: seqNum})
		if err == nil {
			return m.spin.Tick
		}
		debug.Log("worker dispatch failed, filtering inline: %v", err)
	}

	// Inline path: synchronous compute on the UI goroutine.
	start := time.Now()
	indices := engine.Filter(m.base, q)
	metrics.FilterLatency.Record(time.Since(start))
	m.lastElapsed = time.Since(start)
	m.seq.Invalidate()
	return m.commitResults(engine.Select(m.base, indices))
}

// dispatchSort reorders the base collection. The worker path returns the
// whole collection in the new order; committing it re-primes the worker
// cache and then re-runs the active query against the new order.
func (m *Model) dispatchSort() tea.Cmd {
	if m.workerOn {
		seqNum := m.seq.Begin()
		err := m.worker.Dispatch(compute.SortRequest{Spec: m.sortSpec, Seq: seqNum})
		if err == nil {
			return m.spin.Tick
		}
		debug.Log("worker dispatch failed, sorting inline: %v", err)
	}

	start := time.Now()
	m.base = engine.Sort(m.base, m.sortSpec)
	metrics.SortLatency.Record(time.Since(start))
	m.sorted = true
	m.seq.Invalidate()
	return m.dispatchQuery()
}

// adoptSortedBase installs a new base ordering. The worker cache must
// follow before any later filter request, which the FIFO request queue
// guarantees as long as the prime is dispatched first.
func (m *Model) adoptSortedBase(products []model.Product) tea.Cmd {
	m.base = products
	m.sorted = true
	if m.workerOn {
		m.primeWorker()
	}
	return m.dispatchQuery()
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusIsError = isErr
	m.statusToken++
	return statusClearCmd(m.statusToken)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width - 8
		m.helpView.Height = msg.Height - 6
		m.insightsView.Width = msg.Width - 8
		m.insightsView.Height = msg.Height - 6
		m.mountProgress.Width = msg.Width - 30
		m.recomputeWindow()
		if m.loading && m.dbPath == "" && m.workerOn && len(m.base) == 0 && !m.seq.InFlight() {
			seqNum := m.seq.Begin()
			if err := m.worker.Dispatch(compute.GenerateRequest{
				Count: m.cfg.Catalog.Count, Seed: m.cfg.Catalog.Seed, Seq: seqNum,
			}); err != nil {
				m.seq.Invalidate()
				cmds = append(cmds, GenerateCatalogCmd(m.cfg.Catalog.Count, m.cfg.Catalog.Seed))
			} else {
				cmds = append(cmds, m.spin.Tick)
			}
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.seq.InFlight() || m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case progress.FrameMsg:
		pm, cmd := m.mountProgress.Update(msg)
		m.mountProgress = pm.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceTickMsg:
		if msg.token != m.debounceToken {
			return m, nil
		}
		return m, m.dispatchQuery()

	case statusClearMsg:
		if msg.token == m.statusToken {
			m.statusMsg = ""
			m.statusIsError = false
		}
		return m, nil

	case mountChunkMsg:
		if m.mount == nil || msg.version != m.resultVersion {
			// Chunk message from a dead result set; drop it.
			return m, nil
		}
		start := time.Now()
		if m.mount.Advance() {
			metrics.MountLatency.Record(time.Since(start))
			m.recomputeWindow()
			if !m.mount.Complete() {
				return m, mountChunkCmd(m.resultVersion)
			}
		}
		return m, nil

	case catalogLoadedMsg:
		if cmd := m.installCatalog(msg.products); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.lastElapsed = msg.elapsed
		cmds = append(cmds, m.setStatus(fmt.Sprintf("loaded %s products (%s)",
			FormatCount(len(msg.products)), msg.elapsed.Round(time.Millisecond)), false))
		if m.workerOn {
			m.primeWorker()
		}
		return m, tea.Batch(cmds...)

	case catalogErrorMsg:
		m.loading = false
		return m, m.setStatus(msg.err.Error(), true)

	case FileChangedMsg:
		cmds = append(cmds, LoadCatalogCmd(m.dbPath))
		cmds = append(cmds, WatchFileCmd(m.watcher))
		cmds = append(cmds, m.setStatus("catalog changed on disk, reloading", false))
		return m, tea.Batch(cmds...)

	case compute.GeneratedMsg:
		cmds = append(cmds, WaitForWorkerMsgCmd(m.worker))
		if m.seq.Observe(msg.Seq) == OutcomeCommitted {
			if cmd := m.installCatalog(msg.Products); cmd != nil {
				cmds = append(cmds, cmd)
			}
			// The footer shows the dispatch-to-commit round trip, not
			// the worker's compute time.
			m.lastElapsed = m.seq.LastLatency()
			cmds = append(cmds, m.setStatus(fmt.Sprintf("generated %s products (%s)",
				FormatCount(len(msg.Products)), m.lastElapsed.Round(time.Millisecond)), false))
		}
		return m, tea.Batch(cmds...)

	case compute.FilteredMsg:
		cmds = append(cmds, WaitForWorkerMsgCmd(m.worker))
		if m.seq.Observe(msg.Seq) == OutcomeCommitted {
			m.lastElapsed = m.seq.LastLatency()
			if cmd := m.commitResults(engine.Select(m.base, msg.Indices)); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case compute.SortedMsg:
		cmds = append(cmds, WaitForWorkerMsgCmd(m.worker))
		if m.seq.Observe(msg.Seq) == OutcomeCommitted {
			m.lastElapsed = m.seq.LastLatency()
			if cmd := m.adoptSortedBase(msg.Products); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case compute.PrimedMsg:
		cmds = append(cmds, WaitForWorkerMsgCmd(m.worker))
		return m, tea.Batch(cmds...)

	case compute.FailedMsg:
		cmds = append(cmds, WaitForWorkerMsgCmd(m.worker))
		if m.seq.ObserveFailure(msg.Seq) == OutcomeFailed {
			// Busy state clears; the previous result set stays visible.
			cmds = append(cmds, m.setStatus(fmt.Sprintf("%s failed: %s", msg.Phase, msg.Reason), true))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// handleKey routes keys by focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit works from anywhere.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.focus {
	case focusHelp:
		return m.handleHelpKeys(msg)
	case focusInsights:
		return m.handleInsightsKeys(msg)
	case focusSearch:
		return m.handleSearchKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusList
		m.input.Blur()
		return m, nil
	case "enter":
		// Immediate dispatch, skipping the debounce window.
		m.focus = focusList
		m.input.Blur()
		m.debounceToken++
		return m, m.dispatchQuery()
	case "up", "down", "pgup", "pgdown":
		// Navigation falls through to the list even while searching.
		return m.handleListKeys(msg)
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.debounceToken++
		delay := time.Duration(m.cfg.UI.DebounceMs) * time.Millisecond
		return m, tea.Batch(cmd, debounceCmd(m.debounceToken, delay))
	}
	return m, cmd
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "/":
		m.focus = focusSearch
		m.input.Focus()
		return m, textinput.Blink

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.listHeight())
	case "pgdown":
		m.moveCursor(m.listHeight())
	case "home", "g":
		m.cursor = 0
		m.offset = 0
		m.recomputeWindow()
	case "end", "G":
		m.cursor = m.rowCount() - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampOffset()
		m.recomputeWindow()

	case "tab", "f":
		// Cycle category: all -> each category -> all.
		m.categoryIdx++
		if m.categoryIdx >= len(catalog.Categories) {
			m.categoryIdx = -1
		}
		return m, m.dispatchQuery()

	case "s":
		// Cycle sort field; direction resets to the field's natural default.
		m.sortSpec.Field = (m.sortSpec.Field + 1) % model.NumSortFields
		m.sortSpec.Direction = m.sortSpec.Field.DefaultDirection()
		return m, m.dispatchSort()

	case "d":
		m.sortSpec.Direction = m.sortSpec.Direction.Toggle()
		return m, m.dispatchSort()

	case "w":
		return m.toggleWindowing()

	case "c":
		return m.toggleWorker()

	case "i":
		m.focus = focusInsights
		m.insightsView.SetContent(m.renderInsightsContent())
		m.insightsView.GotoTop()
		return m, nil

	case "?":
		m.focus = focusHelp
		m.helpView.SetContent(m.renderHelpContent())
		m.helpView.GotoTop()
		return m, nil

	case "y":
		return m.copySelected()

	case "r":
		if m.dbPath != "" {
			return m, LoadCatalogCmd(m.dbPath)
		}
	}
	return m, nil
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.focus = focusList
		return m, nil
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return m, cmd
}

func (m Model) handleInsightsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "i":
		m.focus = focusList
		return m, nil
	}
	var cmd tea.Cmd
	m.insightsView, cmd = m.insightsView.Update(msg)
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if max := m.rowCount() - 1; m.cursor > max {
		m.cursor = max
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
	m.clampOffset()
	m.recomputeWindow()
}

// clampOffset keeps the cursor inside the rendered extent.
func (m *Model) clampOffset() {
	extent := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+extent {
		m.offset = m.cursor - extent + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// toggleWindowing flips between windowed rendering and capped progressive
// mounting. The result set keeps its identity but the materialization
// strategy restarts from scratch.
func (m Model) toggleWindowing() (tea.Model, tea.Cmd) {
	m.windowsOn = !m.windowsOn
	cmd := m.commitResults(m.visible)
	label := "windowing off: progressive mounting"
	if m.windowsOn {
		label = "windowing on"
	}
	return m, tea.Batch(cmd, m.setStatus(label, false))
}

// toggleWorker flips between the compute worker and inline execution.
// Turning the worker off mid-flight supersedes the outstanding response
// and recomputes inline immediately, so the late response cannot revert
// the inline result.
func (m Model) toggleWorker() (tea.Model, tea.Cmd) {
	if m.workerOn {
		m.workerOn = false
		m.seq.Invalidate()
		cmd := m.dispatchQuery()
		return m, tea.Batch(cmd, m.setStatus("compute worker off: inline mode", false))
	}
	if m.worker == nil {
		m.worker = compute.NewWorker(compute.Config{})
	}
	m.workerOn = true
	m.primeWorker()
	cmds := []tea.Cmd{
		StartWorkerCmd(m.worker),
		WaitForWorkerMsgCmd(m.worker),
		m.setStatus("compute worker on", false),
	}
	return m, tea.Batch(cmds...)
}

// copySelected puts the selected product on the system clipboard as JSON.
func (m Model) copySelected() (tea.Model, tea.Cmd) {
	p, ok := m.selectedProduct()
	if !ok {
		return m, nil
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return m, m.setStatus(fmt.Sprintf("marshal failed: %v", err), true)
	}
	if err := clipboard.WriteAll(string(b)); err != nil {
		return m, m.setStatus(fmt.Sprintf("clipboard unavailable: %v", err), true)
	}
	return m, m.setStatus(fmt.Sprintf("copied %s", p.SKU), false)
}

// selectedProduct resolves the cursor row to its first backing record.
func (m *Model) selectedProduct() (model.Product, bool) {
	records := m.listRecords()
	lo, hi := GroupBounds(m.cursor, len(records), m.groupSize())
	if lo >= hi {
		return model.Product{}, false
	}
	return records[lo], true
}

// Busy reports whether a compute round trip or initial load is pending.
func (m Model) Busy() bool {
	return m.loading || m.seq.InFlight()
}

// Results returns the committed result set. Exposed for tests.
func (m Model) Results() []model.Product {
	return m.visible
}

// Worker returns the compute worker, which the caller must Stop on exit.
func (m Model) Worker() *compute.Worker {
	return m.worker
}

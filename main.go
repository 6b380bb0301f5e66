package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"spiceman/internal/backup"
	"spiceman/internal/config"
	"spiceman/internal/customapps"
	"spiceman/internal/extensions"
	"spiceman/internal/marketplace"
	"spiceman/internal/ratelimit"
	"spiceman/internal/settings"
	"spiceman/internal/spicetify"
	"spiceman/internal/themes"
	"spiceman/internal/token"
	"spiceman/internal/ui"
	"spiceman/internal/ui/components"
	"spiceman/internal/updates"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
	debugMode = false // Enable with --debug flag
)

// githubAPILimit is the unauthenticated GitHub quota the marketplace
// and update checks share: 60 calls per rolling hour.
const (
	githubAPILimit  = 60
	githubAPIWindow = time.Hour
)

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if debugMode {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// Screen represents different screens in the app
type Screen int

const (
	ScreenMain Screen = iota
	ScreenDiff // Review pending config edits
	ScreenHelp
)

// Tab names, matched against settings.VisibleTabs.
const (
	tabExtensions  = "Extensions"
	tabThemes      = "Themes"
	tabCustomApps  = "Custom Apps"
	tabMarketplace = "Marketplace"
	tabEditor      = "Editor"
	tabSettings    = "Settings"
)

// Model is the main application model
type Model struct {
	prefs   *settings.Settings
	cfg     *config.Config
	runner  *spicetify.Runner
	limiter *ratelimit.Limiter
	market  *marketplace.Client
	sources *marketplace.Sources
	checker *updates.Checker

	// UI Components
	extList      *components.ItemList
	themeList    *components.ItemList
	appList      *components.ItemList
	marketList   *components.ItemList
	settingsList *components.ItemList
	editor       *components.Editor
	diffView     *components.DiffView
	logPane      *components.LogPane
	prompt       *components.Prompt
	confirm      *components.Confirm
	spinner      spinner.Model
	help         help.Model
	helpVP       viewport.Model
	keys         ui.KeyMap

	// State
	screen    Screen
	tabs      []string
	activeTab int
	status    string
	width     int
	height    int
	busy      bool

	exts     []extensions.Extension
	themes   []themes.Theme
	apps     []customapps.App
	listings []marketplace.Listing
	sortMode extensions.SortMode

	// Pending operations awaiting a dialog answer
	pendingRestore string
	pendingToken   string

	err error
}

// Messages
type scanCompleteMsg struct {
	exts   []extensions.Extension
	themes []themes.Theme
	apps   []customapps.App
	err    error
}

type applyCompleteMsg struct {
	what   string
	output string
	err    error
}

type installCompleteMsg struct {
	what string
	name string
	err  error
}

type searchCompleteMsg struct {
	query    string
	listings []marketplace.Listing
	err      error
}

type downloadCompleteMsg struct {
	name string
	path string
	err  error
}

type backupCompleteMsg struct {
	path   string
	result *backup.Result
	err    error
}

type restoreCompleteMsg struct {
	result *backup.Result
	err    error
}

type updateCheckMsg struct {
	checks []updates.Check
	// startup checks stay quiet unless something is outdated
	startup bool
	err     error
}

type configSavedMsg struct {
	err error
}

func New() *Model {
	prefs, err := settings.Load()
	if err != nil {
		prefs = settings.Default()
	}
	ui.ApplyTheme(prefs.UITheme)

	runner := spicetify.NewRunner()

	limiter, _ := ratelimit.New(githubAPILimit, githubAPIWindow)
	market := marketplace.NewClient(limiter)
	checker := updates.NewChecker(limiter)

	sources, err := marketplace.LoadSources(settings.SourcesPath())
	if err != nil {
		debugLog("load sources: %v", err)
		sources = &marketplace.Sources{}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.CursorStyle

	m := &Model{
		prefs:        prefs,
		runner:       runner,
		limiter:      limiter,
		market:       market,
		sources:      sources,
		checker:      checker,
		extList:      components.NewItemList("Extensions"),
		themeList:    components.NewItemList("Themes"),
		appList:      components.NewItemList("Custom Apps"),
		marketList:   components.NewItemList("Marketplace"),
		settingsList: components.NewItemList("Settings"),
		editor:       components.NewEditor(),
		diffView:     components.NewDiffView(),
		logPane:      components.NewLogPane(),
		prompt:       components.NewPrompt(),
		confirm:      components.NewConfirm(),
		spinner:      s,
		help:         help.New(),
		keys:         ui.DefaultKeyMap(),
		screen:       ScreenMain,
		status:       "Ready",
		width:        80,
		height:       24,
	}

	m.tabs = append(m.tabs, prefs.VisibleTabs...)
	if len(m.tabs) == 0 {
		m.tabs = append(m.tabs, settings.DefaultTabs...)
	}
	m.rebuildSettingsList()
	m.focusActiveList()

	if prefs.FirstRun {
		m.logPane.Infof("welcome! settings live in %s", settings.Dir())
		if err := prefs.Save(); err != nil {
			debugLog("save settings: %v", err)
		}
	}

	// Locate the spicetify config up front. Every tab needs it.
	path, err := config.Locate(runner)
	if err != nil {
		m.err = err
		m.status = "spicetify config not found"
		return m
	}

	cfg, err := config.Load(path)
	if err != nil {
		m.err = err
		m.status = fmt.Sprintf("Error: %v", err)
		return m
	}
	m.cfg = cfg

	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.checkUpdates(true)}
	if m.cfg != nil {
		cmds = append(cmds, m.scan)
	}
	return tea.Batch(cmds...)
}

// ── Commands ──────────────────────────────────────────────────────────

func (m *Model) scan() tea.Msg {
	start := time.Now()
	debugLog("scanning %s", m.cfg.BaseDir())

	if err := m.cfg.EnsureDirs(); err != nil {
		return scanCompleteMsg{err: err}
	}

	exts, err := extensions.Scan(m.cfg.ExtensionsDir(), m.cfg.Extensions())
	if err != nil {
		return scanCompleteMsg{err: err}
	}

	installedThemes, err := themes.List(m.cfg.ThemesDir(), m.cfg.CurrentTheme())
	if err != nil {
		return scanCompleteMsg{err: err}
	}

	apps, err := customapps.List(m.cfg.CustomAppsDir(), m.cfg.CustomApps())
	if err != nil {
		return scanCompleteMsg{err: err}
	}

	debugLog("scan done in %v", time.Since(start))
	return scanCompleteMsg{exts: exts, themes: installedThemes, apps: apps}
}

func (m *Model) applyExtensions(enabled []string) tea.Cmd {
	return func() tea.Msg {
		out, err := extensions.Apply(m.cfg, m.runner, enabled)
		return applyCompleteMsg{what: "extensions", output: out, err: err}
	}
}

func (m *Model) applyTheme(name string) tea.Cmd {
	return func() tea.Msg {
		out, err := themes.Apply(m.cfg, m.runner, name)
		return applyCompleteMsg{what: "theme " + name, output: out, err: err}
	}
}

func (m *Model) applyCustomApps(enabled []string) tea.Cmd {
	return func() tea.Msg {
		out, err := customapps.Apply(m.cfg, m.runner, enabled)
		return applyCompleteMsg{what: "custom apps", output: out, err: err}
	}
}

func (m *Model) installTheme(url string) tea.Cmd {
	return func() tea.Msg {
		name, err := themes.Install(url, m.cfg.ThemesDir())
		return installCompleteMsg{what: "theme", name: name, err: err}
	}
}

func (m *Model) installCustomApp(url string) tea.Cmd {
	return func() tea.Msg {
		name, err := customapps.Install(url, m.cfg.CustomAppsDir())
		return installCompleteMsg{what: "custom app", name: name, err: err}
	}
}

func (m *Model) searchMarketplace(query string) tea.Cmd {
	return func() tea.Msg {
		listings, err := m.market.Search(m.sources.All(), query)
		return searchCompleteMsg{query: query, listings: listings, err: err}
	}
}

func (m *Model) downloadListing(listing marketplace.Listing) tea.Cmd {
	return func() tea.Msg {
		path, err := m.market.Download(listing, m.cfg.ExtensionsDir())
		return downloadCompleteMsg{name: listing.Name, path: path, err: err}
	}
}

func (m *Model) createBackup(path string) tea.Cmd {
	return func() tea.Msg {
		result, err := backup.Create(path, m.cfg)
		return backupCompleteMsg{path: path, result: result, err: err}
	}
}

func (m *Model) restoreBackup(path string) tea.Cmd {
	return func() tea.Msg {
		result, err := backup.Restore(path, m.cfg.BaseDir())
		return restoreCompleteMsg{result: result, err: err}
	}
}

func (m *Model) checkUpdates(startup bool) tea.Cmd {
	return func() tea.Msg {
		installed, err := m.runner.Version()
		if err != nil {
			debugLog("spicetify version: %v", err)
		}

		var checks []updates.Check
		check, err := m.checker.Spicetify(installed)
		if err != nil {
			return updateCheckMsg{startup: startup, err: err}
		}
		checks = append(checks, check)

		check, err = m.checker.App(version)
		if err != nil {
			// The app check is best effort; keep the CLI result.
			debugLog("app update check: %v", err)
		} else {
			checks = append(checks, check)
		}

		return updateCheckMsg{checks: checks, startup: startup}
	}
}

func (m *Model) saveConfigText(text string) tea.Cmd {
	return func() tea.Msg {
		return configSavedMsg{err: m.cfg.SaveRaw(text)}
	}
}

// ── Update ────────────────────────────────────────────────────────────

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case scanCompleteMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.logPane.Errorf("scan failed: %v", msg.err)
		} else {
			m.exts = msg.exts
			m.themes = msg.themes
			m.apps = msg.apps
			m.refreshLists()
			m.status = fmt.Sprintf("%d extensions (%d on), %d themes, %d custom apps (%d on)",
				len(m.exts), len(extensions.Enabled(m.exts)),
				len(m.themes),
				len(m.apps), len(customapps.Enabled(m.apps)))
		}

	case applyCompleteMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Apply failed: %v", msg.err)
			m.logPane.Errorf("apply %s: %v", msg.what, msg.err)
			if out := strings.TrimSpace(msg.output); out != "" {
				m.logPane.Add(components.LogInfo, out)
			}
		} else {
			m.status = "Applied " + msg.what
			m.logPane.Successf("applied %s", msg.what)
		}
		return m, m.rescan()

	case installCompleteMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Install failed: %v", msg.err)
			m.logPane.Errorf("install: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Installed %s %s", msg.what, msg.name)
			m.logPane.Successf("installed %s %s", msg.what, msg.name)
		}
		return m, m.rescan()

	case searchCompleteMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Search failed: %v", msg.err)
			m.logPane.Errorf("marketplace search: %v", msg.err)
		} else {
			m.listings = msg.listings
			items := make([]components.Item, len(m.listings))
			for i, listing := range m.listings {
				items[i] = components.Item{Title: listing.Name, Desc: listing.Source}
			}
			m.marketList.SetItems(items)
			if msg.query == "" {
				m.status = fmt.Sprintf("%d extensions available", len(m.listings))
			} else {
				m.status = fmt.Sprintf("%d results for %q", len(m.listings), msg.query)
			}
		}

	case downloadCompleteMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Download failed: %v", msg.err)
			m.logPane.Errorf("download %s: %v", msg.name, msg.err)
		} else {
			m.status = fmt.Sprintf("Installed %s", msg.name)
			m.logPane.Successf("downloaded %s to %s", msg.name, msg.path)
		}
		return m, m.rescan()

	case backupCompleteMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Backup failed: %v", msg.err)
			m.logPane.Errorf("backup: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Backup written to %s", msg.path)
			m.logPane.Successf("backed up %d files to %s", msg.result.Files, msg.path)
		}

	case restoreCompleteMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Restore failed: %v", msg.err)
			m.logPane.Errorf("restore: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Restored %d files", msg.result.Files)
		m.logPane.Successf("restored %d files", msg.result.Files)

		// Reload the config: restore may have replaced it.
		if cfg, err := config.Load(m.cfg.Path); err == nil {
			m.cfg = cfg
		}
		return m, m.rescan()

	case updateCheckMsg:
		m.busy = false
		if msg.err != nil {
			if msg.startup {
				debugLog("startup update check: %v", msg.err)
			} else {
				m.status = fmt.Sprintf("Update check failed: %v", msg.err)
				m.logPane.Errorf("update check: %v", msg.err)
			}
			return m, nil
		}
		for _, check := range msg.checks {
			switch {
			case check.Outdated():
				m.logPane.Add(components.LogWarning, check.Notice())
			case !msg.startup:
				m.logPane.Infof("%s", check.Notice())
			}
		}
		if !msg.startup {
			m.status = "Update check finished"
		}

	case configSavedMsg:
		m.busy = false
		m.screen = ScreenMain
		if msg.err != nil {
			m.status = fmt.Sprintf("Save failed: %v", msg.err)
			m.logPane.Errorf("save config: %v", msg.err)
		} else {
			m.editor.MarkSaved()
			m.status = "Config saved"
			m.logPane.Successf("config saved")
		}
		return m, m.rescan()
	}

	// Route remaining messages to the focused text components.
	if m.prompt.Visible {
		cmds = append(cmds, m.prompt.Update(msg))
	} else if m.screen == ScreenMain && m.activeTabName() == tabEditor && m.editor.Focused() {
		cmds = append(cmds, m.editor.Update(msg))
	}

	return m, tea.Batch(cmds...)
}

// rescan re-reads the spicetify directories after a mutation.
func (m *Model) rescan() tea.Cmd {
	if m.cfg == nil {
		return nil
	}
	m.busy = true
	return m.scan
}

// ── Key handling ──────────────────────────────────────────────────────

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Dialogs swallow all keys while open.
	if m.prompt.Visible {
		return m.handlePromptKeys(msg)
	}
	if m.confirm.Visible {
		return m.handleConfirmKeys(msg)
	}

	switch m.screen {
	case ScreenHelp:
		return m.handleHelpKeys(msg)
	case ScreenDiff:
		return m.handleDiffKeys(msg)
	}

	if m.activeTabName() == tabEditor && m.editor.Focused() {
		return m.handleEditorKeys(msg)
	}
	return m.handleMainKeys(msg)
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt.Hide()
		return m, nil
	case tea.KeyEnter:
		kind, value := m.prompt.Kind, m.prompt.Value()
		m.prompt.Hide()
		return m, m.answerPrompt(kind, value)
	}
	return m, m.prompt.Update(msg)
}

// answerPrompt routes a completed prompt to its operation.
func (m *Model) answerPrompt(kind, value string) tea.Cmd {
	switch kind {
	case "filter":
		if list := m.activeList(); list != nil {
			list.SetFilter(value)
			if m.activeTabName() == tabExtensions && value != "" {
				m.status = fmt.Sprintf("%d of %d extensions match %q",
					len(extensions.Filter(m.exts, value)), len(m.exts), value)
			}
		}
		return nil

	case "install":
		if value == "" {
			return nil
		}
		m.busy = true
		m.status = "Cloning " + value
		if m.activeTabName() == tabCustomApps {
			return m.installCustomApp(value)
		}
		return m.installTheme(value)

	case "search":
		m.busy = true
		m.status = "Searching marketplace"
		return m.searchMarketplace(value)

	case "source":
		if value != "" {
			m.sources.Add(value)
			if err := m.sources.Save(settings.SourcesPath()); err != nil {
				m.logPane.Errorf("save sources: %v", err)
			} else {
				m.logPane.Infof("added source %s", value)
			}
			m.rebuildSettingsList()
		}
		return nil

	case "backup":
		if value == "" {
			value = defaultBackupPath()
		}
		m.busy = true
		m.status = "Creating backup"
		return m.createBackup(value)

	case "restore":
		if value == "" {
			return nil
		}
		m.pendingRestore = value
		m.confirm.Show("restore", "Restore backup",
			fmt.Sprintf("Extract %s over %s?", filepath.Base(value), m.cfg.BaseDir()))
		return nil

	case "token":
		if value == "" {
			if m.prefs.HasToken() {
				m.prompt.Show("unlock-password", "Unlock stored token", "password", true)
			}
			return nil
		}
		m.pendingToken = value
		m.prompt.Show("token-password", "Password to encrypt the token", "password", true)
		return nil

	case "token-password":
		if value == "" || m.pendingToken == "" {
			m.pendingToken = ""
			return nil
		}
		encrypted, err := token.Encrypt(token.DeriveKey(value), m.pendingToken)
		if err != nil {
			m.logPane.Errorf("encrypt token: %v", err)
			return nil
		}
		m.prefs.EncryptedToken = encrypted
		if err := m.prefs.Save(); err != nil {
			m.logPane.Errorf("save settings: %v", err)
		}
		m.market.SetToken(m.pendingToken)
		m.checker.SetToken(m.pendingToken)
		m.pendingToken = ""
		m.logPane.Successf("token stored and active")
		return nil

	case "unlock-password":
		tok, err := token.Decrypt(token.DeriveKey(value), m.prefs.EncryptedToken)
		if err != nil {
			m.logPane.Errorf("unlock token: %v", err)
			m.status = "Wrong password"
			return nil
		}
		m.market.SetToken(tok)
		m.checker.SetToken(tok)
		m.logPane.Successf("token unlocked")
		return nil
	}

	return nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.confirm.Hide()
		return m, nil
	case msg.Type == tea.KeyLeft, msg.Type == tea.KeyRight, msg.String() == "h", msg.String() == "l", msg.Type == tea.KeyTab:
		m.confirm.ToggleChoice()
		return m, nil
	case msg.Type == tea.KeyEnter:
		kind, accepted := m.confirm.Kind, m.confirm.Accepted()
		m.confirm.Hide()
		if !accepted {
			return m, nil
		}
		if kind == "restore" && m.pendingRestore != "" {
			path := m.pendingRestore
			m.pendingRestore = ""
			m.busy = true
			m.status = "Restoring backup"
			return m, m.restoreBackup(path)
		}
	}
	return m, nil
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, msg.String() == "q", msg.String() == "?":
		m.screen = ScreenMain
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.helpVP.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.helpVP.LineDown(1)
	}
	return m, nil
}

func (m *Model) handleDiffKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.screen = ScreenMain
		m.editor.Focus()
		return m, nil
	case msg.Type == tea.KeyEnter:
		if !m.diffView.HasChanges() {
			m.screen = ScreenMain
			m.editor.Focus()
			return m, nil
		}
		m.busy = true
		m.status = "Saving config"
		return m, m.saveConfigText(m.editor.Text())
	case msg.String() == "j":
		m.diffView.ScrollDown()
	case msg.String() == "k":
		m.diffView.ScrollUp()
	case msg.String() == "h":
		m.diffView.ToggleHighlight()
	}
	return m, nil
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editor.Blur()
		return m, nil
	case tea.KeyCtrlS:
		current, err := m.cfg.Raw()
		if err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.diffView.SetDiff(config.Diff(current, m.editor.Text()), filepath.Base(m.cfg.Path))
		m.screen = ScreenDiff
		m.editor.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, m.editor.Update(msg)
}

func (m *Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	list := m.activeList()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.openHelp()
		return m, nil

	case key.Matches(msg, keys.Tab):
		m.switchTab(1)
		return m, nil

	case key.Matches(msg, keys.ShiftTab):
		m.switchTab(-1)
		return m, nil

	case key.Matches(msg, keys.Up):
		if list != nil {
			list.MoveUp()
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if list != nil {
			list.MoveDown()
		}
		return m, nil

	case key.Matches(msg, keys.PageUp):
		if list != nil {
			list.PageUp()
		}
		return m, nil

	case key.Matches(msg, keys.PageDown):
		if list != nil {
			list.PageDown()
		}
		return m, nil

	case key.Matches(msg, keys.Home):
		if list != nil {
			list.GoToFirst()
		}
		return m, nil

	case key.Matches(msg, keys.End):
		if list != nil {
			list.GoToLast()
		}
		return m, nil

	case key.Matches(msg, keys.Space):
		return m.toggleCurrent()

	case key.Matches(msg, keys.Enter):
		return m.confirmCurrent()

	case key.Matches(msg, keys.Filter):
		if list != nil {
			m.prompt.Show("filter", "Filter "+m.activeTabName(), "name contains...", false)
		}
		return m, nil

	case key.Matches(msg, keys.SortKey):
		if m.activeTabName() == tabExtensions {
			if m.sortMode == extensions.SortByName {
				m.sortMode = extensions.SortByModified
				m.status = "Sorted by modified"
			} else {
				m.sortMode = extensions.SortByName
				m.status = "Sorted by name"
			}
			extensions.Sort(m.exts, m.sortMode)
			m.refreshLists()
		}
		return m, nil

	case key.Matches(msg, keys.Apply):
		return m.applyActive()

	case key.Matches(msg, keys.Refresh):
		if m.cfg == nil {
			return m, nil
		}
		m.status = "Rescanning"
		return m, m.rescan()

	case key.Matches(msg, keys.Install):
		switch m.activeTabName() {
		case tabThemes:
			m.prompt.Show("install", "Install theme from git", "https://github.com/user/theme", false)
		case tabCustomApps:
			m.prompt.Show("install", "Install custom app from git", "https://github.com/user/app", false)
		case tabMarketplace:
			m.prompt.Show("source", "Add marketplace source", "https://api.github.com/repos/.../contents/...", false)
		}
		return m, nil

	case key.Matches(msg, keys.Search):
		if m.activeTabName() == tabMarketplace {
			m.prompt.Show("search", "Search marketplace", "query (empty for all)", false)
		}
		return m, nil

	case key.Matches(msg, keys.Backup):
		if m.cfg != nil {
			m.prompt.Show("backup", "Backup to", defaultBackupPath(), false)
		}
		return m, nil

	case key.Matches(msg, keys.Restore):
		if m.cfg != nil {
			m.prompt.Show("restore", "Restore from", "path to backup zip", false)
		}
		return m, nil

	case key.Matches(msg, keys.Updates):
		m.busy = true
		m.status = "Checking for updates"
		return m, m.checkUpdates(false)

	case key.Matches(msg, keys.Token):
		m.prompt.Show("token", "GitHub token (empty to unlock stored)", "ghp_...", true)
		return m, nil
	}

	return m, nil
}

// toggleCurrent handles space on the active tab.
func (m *Model) toggleCurrent() (tea.Model, tea.Cmd) {
	switch m.activeTabName() {
	case tabExtensions, tabCustomApps:
		if list := m.activeList(); list != nil {
			list.Toggle()
		}

	case tabSettings:
		if item := m.settingsList.Current(); item != nil {
			m.toggleSetting(item.Title)
		}
	}
	return m, nil
}

// confirmCurrent handles enter on the active tab.
func (m *Model) confirmCurrent() (tea.Model, tea.Cmd) {
	switch m.activeTabName() {
	case tabThemes:
		item := m.themeList.Current()
		if item == nil || m.cfg == nil {
			return m, nil
		}
		m.busy = true
		m.status = "Applying theme " + item.Title
		return m, m.applyTheme(item.Title)

	case tabMarketplace:
		item := m.marketList.Current()
		if item == nil || m.cfg == nil {
			return m, nil
		}
		for _, listing := range m.listings {
			if listing.Name == item.Title {
				m.busy = true
				m.status = "Downloading " + listing.Name
				return m, m.downloadListing(listing)
			}
		}

	case tabEditor:
		m.editor.Focus()
	}
	return m, nil
}

// applyActive pushes the checked set of the active tab through the CLI.
func (m *Model) applyActive() (tea.Model, tea.Cmd) {
	if m.cfg == nil {
		return m, nil
	}

	switch m.activeTabName() {
	case tabExtensions:
		m.busy = true
		m.status = "Applying extensions"
		return m, m.applyExtensions(m.extList.CheckedTitles())

	case tabCustomApps:
		m.busy = true
		m.status = "Applying custom apps"
		return m, m.applyCustomApps(m.appList.CheckedTitles())
	}
	return m, nil
}

// toggleSetting flips one row of the settings tab.
func (m *Model) toggleSetting(title string) {
	switch {
	case strings.HasPrefix(title, "Source: "):
		url := strings.TrimPrefix(title, "Source: ")
		m.sources.Remove(url)
		if err := m.sources.Save(settings.SourcesPath()); err != nil {
			m.logPane.Errorf("save sources: %v", err)
		} else {
			m.logPane.Infof("removed source %s", url)
		}
		m.rebuildSettingsList()
		return

	case title == "Light UI theme":
		if m.prefs.UITheme == "light" {
			m.prefs.UITheme = "dark"
		} else {
			m.prefs.UITheme = "light"
		}
		m.status = "UI theme takes effect on restart"

	case strings.HasPrefix(title, "Tab: "):
		name := strings.TrimPrefix(title, "Tab: ")
		if name == tabSettings {
			return // never hide the settings tab
		}
		m.prefs.ToggleTab(name)
		m.rebuildTabs()
	}

	if err := m.prefs.Save(); err != nil {
		m.logPane.Errorf("save settings: %v", err)
	}
	m.rebuildSettingsList()
}

// ── Tab plumbing ──────────────────────────────────────────────────────

func (m *Model) activeTabName() string {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return ""
	}
	return m.tabs[m.activeTab]
}

func (m *Model) activeList() *components.ItemList {
	switch m.activeTabName() {
	case tabExtensions:
		return m.extList
	case tabThemes:
		return m.themeList
	case tabCustomApps:
		return m.appList
	case tabMarketplace:
		return m.marketList
	case tabSettings:
		return m.settingsList
	}
	return nil
}

func (m *Model) switchTab(delta int) {
	if len(m.tabs) == 0 {
		return
	}
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	m.focusActiveList()

	if m.activeTabName() == tabEditor && m.cfg != nil {
		if text, err := m.cfg.Raw(); err == nil {
			if !m.editor.Dirty() {
				m.editor.Load(filepath.Base(m.cfg.Path), text)
			}
		} else {
			m.status = fmt.Sprintf("Error: %v", err)
		}
	}
}

func (m *Model) focusActiveList() {
	for _, list := range []*components.ItemList{m.extList, m.themeList, m.appList, m.marketList, m.settingsList} {
		list.Focused = false
	}
	if list := m.activeList(); list != nil {
		list.Focused = true
	}
}

func (m *Model) rebuildTabs() {
	m.tabs = m.tabs[:0]
	m.tabs = append(m.tabs, m.prefs.VisibleTabs...)
	if m.activeTab >= len(m.tabs) {
		m.activeTab = 0
	}
	m.focusActiveList()
}

// refreshLists rebuilds the list components from the scanned state.
func (m *Model) refreshLists() {
	items := make([]components.Item, len(m.exts))
	for i, ext := range m.exts {
		items[i] = components.Item{Title: ext.Name, Checked: ext.Enabled}
	}
	m.extList.SetItems(items)

	items = make([]components.Item, len(m.themes))
	for i, theme := range m.themes {
		marker := ""
		if theme.Current {
			marker = "current"
		}
		items[i] = components.Item{Title: theme.Name, Marker: marker}
	}
	m.themeList.SetItems(items)

	items = make([]components.Item, len(m.apps))
	for i, app := range m.apps {
		items[i] = components.Item{Title: app.Name, Checked: app.Enabled}
	}
	m.appList.SetItems(items)
}

func (m *Model) rebuildSettingsList() {
	var items []components.Item

	items = append(items, components.Item{
		Title:   "Light UI theme",
		Checked: m.prefs.UITheme == "light",
	})
	for _, tab := range settings.DefaultTabs {
		items = append(items, components.Item{
			Title:   "Tab: " + tab,
			Checked: m.prefs.TabVisible(tab),
		})
	}
	tokenDesc := "not set"
	if m.prefs.HasToken() {
		tokenDesc = "stored (press t to unlock)"
	}
	items = append(items, components.Item{Title: "GitHub token", Desc: tokenDesc})

	items = append(items, components.Item{
		Title: "GitHub API quota",
		Desc: fmt.Sprintf("%d/%d calls in the last %v",
			m.limiter.Pending(), m.limiter.Capacity(), m.limiter.Window()),
	})
	for _, url := range m.sources.Custom {
		items = append(items, components.Item{
			Title: "Source: " + url,
			Desc:  "space removes this marketplace source",
		})
	}

	m.settingsList.SetItems(items)
}

// ── Layout ────────────────────────────────────────────────────────────

func (m *Model) updateSizes() {
	listHeight := m.height - 12
	if listHeight < 8 {
		listHeight = 8
	}
	for _, list := range []*components.ItemList{m.extList, m.themeList, m.appList, m.marketList, m.settingsList} {
		list.Width = m.width - 4
		list.Height = listHeight
	}

	m.editor.SetSize(m.width-4, listHeight+2)
	m.diffView.Width = m.width - 4
	m.diffView.Height = m.height - 6
	m.logPane.SetSize(m.width-4, 7)
	m.helpVP.Width = m.width - 4
	m.helpVP.Height = m.height - 4
}

func (m *Model) openHelp() {
	var b strings.Builder
	b.WriteString(ui.HeaderStyle.Render("Keybindings"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			b.WriteString(fmt.Sprintf("  %-12s %s\n",
				ui.HelpKeyStyle.Render(binding.Help().Key),
				binding.Help().Desc))
		}
		b.WriteString("\n")
	}
	m.helpVP.SetContent(b.String())
	m.screen = ScreenHelp
}

// ── View ──────────────────────────────────────────────────────────────

func (m *Model) View() string {
	switch m.screen {
	case ScreenHelp:
		return ui.AppStyle.Render(m.helpVP.View())
	case ScreenDiff:
		return ui.AppStyle.Render(m.diffView.View())
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.prompt.Visible {
		b.WriteString(m.prompt.View())
		b.WriteString("\n")
	} else if m.confirm.Visible {
		b.WriteString(m.confirm.View())
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderContent())
		b.WriteString("\n")
	}

	b.WriteString(m.logPane.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderHeader() string {
	title := ui.HeaderStyle.Render("spiceman")
	ver := ui.VersionStyle.Render(version)

	tabs := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		tabs[i] = ui.RenderTab(tab, i == m.activeTab)
	}

	return title + " " + ver + "\n" + strings.Join(tabs, "")
}

func (m *Model) renderContent() string {
	if m.err != nil && m.cfg == nil {
		return ui.PanelStyle.Width(m.width - 4).Render(
			ui.ErrorNotifyStyle.Render("✗ "+m.err.Error()) + "\n\n" +
				ui.MutedStyle.Render("Install spicetify and run it once, then press r."))
	}

	if m.activeTabName() == tabEditor {
		return m.editor.View()
	}
	if list := m.activeList(); list != nil {
		return list.View()
	}
	return ""
}

func (m *Model) renderStatusBar() string {
	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}

	helpLine := m.help.ShortHelpView(m.keys.ShortHelp())
	return ui.StatusBarStyle.Render(ui.StatusTextStyle.Render(status)) + "\n" +
		ui.HelpBarStyle.Render(helpLine)
}

// defaultBackupPath is a timestamped zip in the home directory.
func defaultBackupPath() string {
	home, _ := os.UserHomeDir()
	name := fmt.Sprintf("spicetify-backup-%s.zip", time.Now().Format("20060102-150405"))
	return filepath.Join(home, name)
}

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--debug":
			debugMode = true
		case "--version", "-v":
			fmt.Printf("spiceman %s (built %s)\n", version, buildTime)
			return
		}
	}

	p := tea.NewProgram(New(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

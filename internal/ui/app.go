package ui

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/secmux/sqlmux/internal/app"
	"github.com/secmux/sqlmux/internal/compiler"
	"github.com/secmux/sqlmux/internal/model"
	"github.com/secmux/sqlmux/internal/notify"
	"github.com/secmux/sqlmux/internal/runtime"
	"github.com/secmux/sqlmux/internal/store"
	"github.com/secmux/sqlmux/internal/ui/components/dialog"
	"github.com/secmux/sqlmux/internal/ui/components/optionform"
	"github.com/secmux/sqlmux/internal/ui/components/outputview"
	"github.com/secmux/sqlmux/internal/ui/components/presetlist"
	"github.com/secmux/sqlmux/internal/ui/components/statusbar"
	"github.com/secmux/sqlmux/internal/ui/keys"
)

// Tab identifies the active pane.
type Tab int

const (
	// TabOptions is the scan option form.
	TabOptions Tab = iota
	// TabPresets is the preset list.
	TabPresets
	// TabOutput is the scan output pane.
	TabOutput
)

var tabTitles = []string{"Options", "Presets", "Output"}

// DialogMode represents the current dialog being shown.
type DialogMode int

const (
	DialogNone DialogMode = iota
	DialogSavePreset
	DialogDeletePreset
	DialogExport
	DialogHelp
)

const (
	minAppWidth  = 60
	minAppHeight = 16
)

// App is the main application model.
type App struct {
	// Components
	form       optionform.Model
	presetList presetlist.Model
	output     outputview.Model
	statusBar  statusbar.Model

	inputDialog   dialog.InputDialog
	confirmDialog dialog.ConfirmDialog

	// State
	tab        Tab
	dialogMode DialogMode
	width      int
	height     int
	ready      bool
	quitting   bool
	statusID   int

	// Data
	options *model.Options
	command compiler.Command
	presets []model.Preset
	events  <-chan runtime.Event

	// Dependencies
	config    *app.Config
	configDir string
	store     store.PresetStore
	engine    *runtime.Engine
	notifier  *notify.Dispatcher
	logger    *log.Logger
	keys      keys.KeyMap
	ctx       context.Context
}

// New creates a new application instance.
func New(s store.PresetStore, e *runtime.Engine, cfg *app.Config, configDir string, logger *log.Logger) App {
	if logger == nil {
		logger = log.Default()
	}
	options := model.NewOptions()
	keyMap := keys.DefaultKeyMap()

	a := App{
		form:       optionform.New(options),
		presetList: presetlist.New(),
		output:     outputview.New(),
		statusBar:  statusbar.New(keyMap.ShortHelp()),
		tab:        TabOptions,
		dialogMode: DialogNone,
		options:    options,
		config:     cfg,
		configDir:  configDir,
		store:      s,
		engine:     e,
		notifier:   notify.NewDispatcher(),
		logger:     logger,
		keys:       keyMap,
		ctx:        context.Background(),
	}
	a.form.SetFocused(true)
	a.recompile()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return LoadPresets(func() ([]model.Preset, error) {
		return a.store.List(a.ctx)
	})
}

// recompile refreshes the command preview from the current options.
func (a *App) recompile() {
	a.command = compiler.Compile(a.options)
}

// scanStatus returns the engine's current scan status as a string.
func (a *App) scanStatus() string {
	session, ok := a.engine.Active()
	if !ok {
		return string(model.ScanStatusIdle)
	}
	return string(session.Status())
}

// setStatus shows a transient status bar message.
func (a *App) setStatus(msg string, isError bool) tea.Cmd {
	a.statusID++
	a.statusBar.SetMessage(msg, isError)
	return ExpireStatus(a.statusID, statusTTL(isError))
}

// exportDir is where transcripts are written by default.
func (a *App) exportDir() string {
	return filepath.Join(a.configDir, "reports")
}

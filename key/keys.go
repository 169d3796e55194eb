// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Seek Controls - these keys tune the transport controls and the seek gesture state machine.
const (
	ControlsHideDelay        = "controls.hide_delay"
	ControlsProgressInterval = "controls.progress_interval"
	ControlsSeekStep         = "controls.seek_step"
	ControlsSeekStartedOnce  = "controls.seek_started_once"
)

// Chapter Snapping - these keys configure the built-in chapter snapping seek consumer.
const (
	SnapEnable    = "snap.enable"
	SnapTolerance = "snap.tolerance"
)

// Hooks - these keys locate user supplied Lua seek hooks.
const (
	HooksScript = "hooks.script"
)

// History Tracking - these keys configure the persistence of resume positions.
const (
	HistorySaveOnExit  = "history.save_on_exit"
	HistoryMinPosition = "history.min_position"
)

// Media Playback - these keys maintain the configuration for the mpv engine.
const (
	PlayerArgs = "player.args"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI)
const (
	TUIItemSpacing = "tui.item_spacing"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

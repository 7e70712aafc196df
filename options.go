package xlsheet

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Options holds configuration for a Sheet.
type Options struct {
	sheetName    string
	formatConfig *FormatConfig
	logger       logrus.FieldLogger
}

func defaultOptions() *Options {
	return &Options{
		logger: logrus.StandardLogger(),
	}
}

// Option configures a Sheet.
type Option func(*Options)

// WithSheetName selects the worksheet to attach to (default: the first sheet).
func WithSheetName(name string) Option {
	return func(o *Options) { o.sheetName = name }
}

// WithFormatConfig sets the formatting rules (default: DefaultFormatConfig()).
func WithFormatConfig(cfg *FormatConfig) Option {
	return func(o *Options) { o.formatConfig = cfg }
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

type workbookOptions struct {
	path          string
	restoreBackup bool
	logger        logrus.FieldLogger
	sleep         func(time.Duration)
}

func defaultWorkbookOptions() *workbookOptions {
	return &workbookOptions{
		logger: logrus.StandardLogger(),
		sleep:  time.Sleep,
	}
}

// WorkbookOption configures a Workbook.
type WorkbookOption func(*workbookOptions)

// WithPath sets the file a workbook created by NewWorkbook saves to.
func WithPath(path string) WorkbookOption {
	return func(o *workbookOptions) { o.path = path }
}

// WithRestoreBackup replaces an unreadable file with its ".bak" copy on open.
func WithRestoreBackup(restore bool) WorkbookOption {
	return func(o *workbookOptions) { o.restoreBackup = restore }
}

// WithWorkbookLogger sets the logger used for save and restore events.
func WithWorkbookLogger(l logrus.FieldLogger) WorkbookOption {
	return func(o *workbookOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func withSleep(fn func(time.Duration)) WorkbookOption {
	return func(o *workbookOptions) { o.sleep = fn }
}

type saveOptions struct {
	force   bool
	backup  bool
	retries int
}

// SaveOption configures Workbook.Save.
type SaveOption func(*saveOptions)

// WithForceSave writes the file even when nothing changed.
func WithForceSave(force bool) SaveOption {
	return func(o *saveOptions) { o.force = force }
}

// WithBackup copies the existing file to ".bak" before the first save.
func WithBackup(backup bool) SaveOption {
	return func(o *saveOptions) { o.backup = backup }
}

// WithSaveRetries sets how many times a locked file is retried (default: 5).
func WithSaveRetries(n int) SaveOption {
	return func(o *saveOptions) {
		if n >= 0 {
			o.retries = n
		}
	}
}

type updateOptions struct {
	keepExisting bool
}

// UpdateOption configures Sheet.UpdateCell.
type UpdateOption func(*updateOptions)

// KeepExisting leaves a cell untouched when it already holds a value.
func KeepExisting() UpdateOption {
	return func(o *updateOptions) { o.keepExisting = true }
}

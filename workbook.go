package xlsheet

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSaveRetries = 5
	initialSaveBackoff = 250 * time.Millisecond
	maxSaveBackoff     = 5 * time.Second
)

// Workbook owns an xlsx document, its path and its unsaved-changes flag.
// Sheets attached to the same workbook share the flag.
type Workbook struct {
	path string
	file *excelize.File
	log  logrus.FieldLogger

	sleep func(time.Duration)

	mu       sync.Mutex // protects dirty, backedUp and grids
	dirty    bool
	backedUp bool
	grids    map[string]*ExcelizeGrid
}

// OpenWorkbook opens the xlsx file at path. With WithRestoreBackup, a file
// that is not a readable workbook is moved aside to path+".old" and replaced
// by path+".bak" before retrying.
func OpenWorkbook(path string, opts ...WorkbookOption) (*Workbook, error) {
	o := defaultWorkbookOptions()
	for _, opt := range opts {
		opt(o)
	}

	f, err := excelize.OpenFile(path)
	if err != nil && o.restoreBackup && isCorruptWorkbook(err) {
		o.logger.WithError(err).WithField("path", path).Warn("workbook unreadable, restoring backup")
		if rerr := restoreBackup(path); rerr != nil {
			return nil, fmt.Errorf("open workbook %q: %w (restore backup: %v)", path, err, rerr)
		}
		f, err = excelize.OpenFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}

	wb := newWorkbook(f, o)
	wb.path = path
	return wb, nil
}

// NewWorkbook wraps an already open excelize file. The workbook path is
// taken from the file, so in-memory files cannot be saved until WithPath is set.
func NewWorkbook(f *excelize.File, opts ...WorkbookOption) *Workbook {
	o := defaultWorkbookOptions()
	for _, opt := range opts {
		opt(o)
	}
	wb := newWorkbook(f, o)
	if o.path != "" {
		wb.path = o.path
	} else {
		wb.path = f.Path
	}
	return wb
}

func newWorkbook(f *excelize.File, o *workbookOptions) *Workbook {
	return &Workbook{
		file:  f,
		log:   o.logger,
		sleep: o.sleep,
		grids: make(map[string]*ExcelizeGrid),
	}
}

func isCorruptWorkbook(err error) bool {
	return errors.Is(err, zip.ErrFormat) || errors.Is(err, excelize.ErrWorkbookFileFormat)
}

func restoreBackup(path string) error {
	bak := path + ".bak"
	if _, err := os.Stat(bak); err != nil {
		return err
	}
	if err := os.Rename(path, path+".old"); err != nil {
		return err
	}
	return copyFile(bak, path)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Path returns the file the workbook saves to.
func (wb *Workbook) Path() string { return wb.path }

// File returns the underlying excelize file.
func (wb *Workbook) File() *excelize.File { return wb.file }

// SheetNames lists the worksheets in workbook order.
func (wb *Workbook) SheetNames() []string {
	return wb.file.GetSheetList()
}

// Grid returns the Grid for a worksheet. An empty name selects the first
// sheet in workbook order, whichever tab was active when the file was saved.
func (wb *Workbook) Grid(name string) (*ExcelizeGrid, error) {
	if name == "" {
		sheets := wb.file.GetSheetList()
		if len(sheets) == 0 {
			return nil, &ConfigurationError{Reason: "workbook has no sheets"}
		}
		name = sheets[0]
	}
	idx, err := wb.file.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	if idx < 0 {
		return nil, &ConfigurationError{Sheet: name, Reason: "sheet not found in workbook"}
	}

	wb.mu.Lock()
	defer wb.mu.Unlock()
	if g, ok := wb.grids[name]; ok {
		return g, nil
	}
	g := &ExcelizeGrid{wb: wb, sheet: name}
	wb.grids[name] = g
	return g, nil
}

// MarkDirty records that the workbook has unsaved changes.
func (wb *Workbook) MarkDirty() {
	wb.mu.Lock()
	wb.dirty = true
	wb.mu.Unlock()
}

// Dirty reports whether there are unsaved changes.
func (wb *Workbook) Dirty() bool {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return wb.dirty
}

// Save writes the workbook to its path. It returns false without touching
// the file when nothing changed, unless WithForceSave is given. A file that
// cannot be written (locked by another program, permission denied) is
// retried with exponential backoff.
func (wb *Workbook) Save(opts ...SaveOption) (bool, error) {
	o := &saveOptions{retries: defaultSaveRetries}
	for _, opt := range opts {
		opt(o)
	}

	if !o.force && !wb.Dirty() {
		wb.log.WithField("path", wb.path).Debug("no changes to save")
		return false, nil
	}
	if wb.path == "" {
		return false, errors.New("save workbook: no file path")
	}

	if o.backup {
		if err := wb.backupOnce(); err != nil {
			return false, fmt.Errorf("backup %q: %w", wb.path, err)
		}
	}

	backoff := initialSaveBackoff
	for attempt := 0; ; attempt++ {
		err := wb.file.SaveAs(wb.path)
		if err == nil {
			break
		}
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) || attempt >= o.retries {
			return false, fmt.Errorf("save workbook %q: %w", wb.path, err)
		}
		wb.log.WithFields(logrus.Fields{
			"path":    wb.path,
			"attempt": attempt + 1,
			"backoff": backoff,
		}).WithError(err).Warn("workbook not writable, retrying")
		wb.sleep(backoff)
		backoff *= 2
		if backoff > maxSaveBackoff {
			backoff = maxSaveBackoff
		}
	}

	wb.mu.Lock()
	wb.dirty = false
	wb.mu.Unlock()
	wb.log.WithField("path", wb.path).Info("workbook saved")
	return true, nil
}

// backupOnce copies the file on disk to path+".bak" the first time the
// workbook is saved in this session.
func (wb *Workbook) backupOnce() error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if wb.backedUp {
		return nil
	}
	if _, err := os.Stat(wb.path); errors.Is(err, fs.ErrNotExist) {
		wb.backedUp = true
		return nil
	}
	if err := copyFile(wb.path, wb.path+".bak"); err != nil {
		return err
	}
	wb.backedUp = true
	wb.log.WithField("backup", wb.path+".bak").Debug("backup written")
	return nil
}

// Close releases the underlying file.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

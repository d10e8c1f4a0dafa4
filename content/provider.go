package content

import (
	"fmt"
	"os"
	"sync"

	"github.com/jbearak/rlsp/location"
)

// DefaultDiskCacheCapacity is the default number of disk-read entries
// kept in the bounded LRU cache when no explicit capacity is requested.
const DefaultDiskCacheCapacity = 256

type openDocument struct {
	text    string
	version int32
	table   *lineTable
}

// Provider answers content(canonical_path) per spec.md §4.H: open
// documents first, then a disk read cached by (path, mtime, size) with
// LRU eviction. It also implements location.PositionRegistry, answering
// byte-offset-to-Position conversions from a line table cached per
// document.
//
// Grounded on the open/change/close lifecycle of the teacher's
// lsp/workspace.go Workspace type, narrowed to just the buffer-or-disk
// content lookup that component H owns; scheduling, diagnostics
// publication, and URI/path remapping belong to the revalidation
// engine and LSP surface, not here.
type Provider struct {
	mu   sync.RWMutex
	open map[location.FileID]*openDocument
	disk *diskLRU
}

// NewProvider creates a Provider with the given disk cache capacity. A
// non-positive capacity falls back to DefaultDiskCacheCapacity.
func NewProvider(diskCacheCapacity int) *Provider {
	if diskCacheCapacity <= 0 {
		diskCacheCapacity = DefaultDiskCacheCapacity
	}
	return &Provider{
		open: make(map[location.FileID]*openDocument),
		disk: newDiskLRU(diskCacheCapacity),
	}
}

// OpenDocument registers file as open with the given text and version,
// replacing any prior open state. Call on textDocument/didOpen.
func (p *Provider) OpenDocument(file location.FileID, text string, version int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open[file] = &openDocument{text: text, version: version}
}

// ChangeDocument replaces an open document's text. rlsp negotiates full
// document sync (see SPEC_FULL.md's LSP capabilities), so text is always
// the complete new content rather than an incremental delta. Call on
// textDocument/didChange.
func (p *Provider) ChangeDocument(file location.FileID, text string, version int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open[file] = &openDocument{text: text, version: version}
}

// CloseDocument unregisters file as open. Subsequent Get calls fall back
// to disk. Call on textDocument/didClose.
func (p *Provider) CloseDocument(file location.FileID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.open, file)
}

// IsOpen reports whether file currently has a live buffer.
func (p *Provider) IsOpen(file location.FileID) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.open[file]
	return ok
}

// OpenFiles returns every currently open file, for callers (the
// revalidation engine) that need to intersect an affected-file set with
// "currently open documents" per spec.md §4.J.
func (p *Provider) OpenFiles() []location.FileID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	files := make([]location.FileID, 0, len(p.open))
	for f := range p.open {
		files = append(files, f)
	}
	return files
}

// OpenVersion returns the open document's version and true, or (0,
// false) if file is not open.
func (p *Provider) OpenVersion(file location.FileID) (int32, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	doc, ok := p.open[file]
	if !ok {
		return 0, false
	}
	return doc.version, true
}

// Get returns file's current content and true: the live buffer if file
// is open, otherwise a disk read served through the bounded (path,
// mtime, size) cache. Returns ("", false) if file is not open and the
// disk read fails (e.g. the file does not exist).
func (p *Provider) Get(file location.FileID) (string, bool) {
	p.mu.RLock()
	if doc, ok := p.open[file]; ok {
		text := doc.text
		p.mu.RUnlock()
		return text, true
	}
	p.mu.RUnlock()

	cp, ok := file.CanonicalPath()
	if !ok {
		return "", false
	}
	text, _, err := p.readDiskCached(cp.String())
	if err != nil {
		return "", false
	}
	return text, true
}

// PositionAt implements location.PositionRegistry. It returns
// location.UnknownPosition() if file has no known content (not open and
// unreadable from disk).
func (p *Provider) PositionAt(file location.FileID, byteOffset int) location.Position {
	table, ok := p.lineTableFor(file)
	if !ok {
		return location.UnknownPosition()
	}
	return table.positionAt(byteOffset)
}

// ByteOffsetAt converts an LSP-shaped (0-based line, UTF-16 column)
// position to a byte offset for file, for inbound requests. ok is false
// if file's content is unavailable or line is out of range.
func (p *Provider) ByteOffsetAt(file location.FileID, line, utf16Column int) (int, bool) {
	table, ok := p.lineTableFor(file)
	if !ok {
		return 0, false
	}
	return table.byteOffsetAt(line, utf16Column)
}

// lineTableFor returns the line table for file's current content,
// building and caching it against the open document if needed, or
// deriving it from the disk-cached read.
func (p *Provider) lineTableFor(file location.FileID) (*lineTable, bool) {
	p.mu.Lock()
	if doc, ok := p.open[file]; ok {
		if doc.table == nil {
			doc.table = newLineTable(doc.text)
		}
		table := doc.table
		p.mu.Unlock()
		return table, true
	}
	p.mu.Unlock()

	cp, ok := file.CanonicalPath()
	if !ok {
		return nil, false
	}
	_, table, err := p.readDiskCached(cp.String())
	if err != nil {
		return nil, false
	}
	return table, true
}

// readDiskCached reads path from disk, serving from the LRU cache when
// the file's (path, mtime, size) key is already resident.
func (p *Provider) readDiskCached(path string) (string, *lineTable, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("content: stat %q: %w", path, err)
	}
	key := diskCacheKey{path: path, mtime: info.ModTime().UnixNano(), size: info.Size()}

	p.mu.Lock()
	if v, ok := p.disk.get(key); ok {
		p.mu.Unlock()
		return v.text, v.table, nil
	}
	p.mu.Unlock()

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("content: read %q: %w", path, err)
	}
	text := string(raw)
	table := newLineTable(text)

	p.mu.Lock()
	p.disk.put(key, diskCacheValue{text: text, table: table})
	p.mu.Unlock()

	return text, table, nil
}

// InvalidateDisk drops every cached disk read for path, so the next Get
// or PositionAt call re-reads it regardless of the stat result it was
// keyed with. Used when a file is deleted or recreated with the same
// mtime/size (rare, but observable on coarse-grained filesystem clocks).
func (p *Provider) InvalidateDisk(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disk.invalidatePath(path)
}

// DiskCacheLen reports the number of entries currently resident in the
// disk read cache, for diagnostics and tests.
func (p *Provider) DiskCacheLen() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.disk.len()
}

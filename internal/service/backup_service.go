package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"sitebuilder/internal/builder"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Backup Service — scheduled backups + linked-file watching
// ─────────────────────────────────────────────────────────────

// DefaultBackupSchedule runs a backup every 10 minutes while the app is open.
const DefaultBackupSchedule = "@every 10m"

// backupRetention bounds how many backups are kept; pruned from the oldest end.
const backupRetention = 20

// DesignSource provides the current document envelope. Implemented by
// builder.Store; the service never touches store internals.
type DesignSource interface {
	DesignSnapshot() domain.Design
}

// DesignImporter replaces the live document from raw envelope bytes.
// Implemented by builder.Store.
type DesignImporter interface {
	ImportConfig(ctx context.Context, data []byte) error
}

// BackupService periodically snapshots the design into the backup store and
// optionally watches a linked design file, re-importing it when it changes
// on disk (e.g. edited in an external editor).
type BackupService struct {
	source   DesignSource
	importer DesignImporter
	backups  *storage.BackupStore
	emitter  builder.EventEmitter
	guard    RunningGuard

	cronSched   *cron.Cron
	watcher     *fsnotify.Watcher
	watchCancel context.CancelFunc
}

// NewBackupService creates a BackupService ready for use.
func NewBackupService(source DesignSource, importer DesignImporter, backups *storage.BackupStore, emitter builder.EventEmitter) *BackupService {
	return &BackupService{
		source:   source,
		importer: importer,
		backups:  backups,
		emitter:  emitter,
	}
}

// Start arms the backup schedule. An empty spec uses the default.
func (s *BackupService) Start(ctx context.Context, spec string) error {
	if spec == "" {
		spec = DefaultBackupSchedule
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if _, err := s.RunBackup(ctx); err != nil {
			log.Printf("backup: scheduled run failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	c.Start()
	s.cronSched = c
	return nil
}

// RunBackup stores one backup of the current design. Overlapping runs are
// rejected; the second caller gets (nil, nil).
func (s *BackupService) RunBackup(ctx context.Context) (*storage.Backup, error) {
	release, ok := s.guard.Acquire("backup")
	if !ok {
		return nil, nil
	}
	defer release()

	design := s.source.DesignSnapshot()
	data, err := json.Marshal(design)
	if err != nil {
		return nil, fmt.Errorf("encode design: %w", err)
	}
	b, err := s.backups.Add(data, backupRetention)
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, "backup:created", b.ID)
	return b, nil
}

// ListBackups returns retained backups, newest first.
func (s *BackupService) ListBackups() ([]storage.Backup, error) {
	return s.backups.List()
}

// RestoreBackup re-imports a stored backup into the live document.
func (s *BackupService) RestoreBackup(ctx context.Context, id string) error {
	b, err := s.backups.Get(id)
	if err != nil {
		return err
	}
	return s.importer.ImportConfig(ctx, []byte(b.Payload))
}

// ── Linked design file ─────────────────────────────────────

// WatchDesignFile watches path and re-imports it whenever it is written.
// Events are debounced so editors that write in bursts trigger one import.
// Any previous watch is torn down first.
func (s *BackupService) WatchDesignFile(ctx context.Context, path string) error {
	s.stopWatch()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("bad path %q: %w", path, err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("design file not found: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory — editors replace files on save, which drops the
	// watch when the file itself is watched.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}
	s.watcher = watcher

	watchCtx, cancel := context.WithCancel(context.Background())
	s.watchCancel = cancel

	go func() {
		var pending *time.Timer
		for {
			select {
			case <-watchCtx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if evPath, _ := filepath.Abs(event.Name); evPath != absPath {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(500*time.Millisecond, func() {
					s.reimport(ctx, absPath)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("design watcher: error: %v", err)
			}
		}
	}()

	log.Printf("design watcher: watching %s", absPath)
	return nil
}

// StopWatch tears down the linked-file watch, if any.
func (s *BackupService) StopWatch() {
	s.stopWatch()
}

// Stop tears down the schedule and any watcher, waiting for a running
// backup to finish.
func (s *BackupService) Stop(ctx context.Context) {
	if s.cronSched != nil {
		s.cronSched.Stop()
		s.cronSched = nil
	}
	s.stopWatch()
	s.guard.WaitAll(ctx)
}

func (s *BackupService) reimport(ctx context.Context, path string) {
	release, ok := s.guard.Acquire("reimport")
	if !ok {
		return
	}
	defer release()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("design watcher: read %s: %v", path, err)
		return
	}
	if err := s.importer.ImportConfig(ctx, data); err != nil {
		log.Printf("design watcher: import %s: %v", path, err)
		return
	}
	s.emitter.Emit(ctx, "design:file-imported", path)
}

func (s *BackupService) stopWatch() {
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
}

package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"contact-book/internal/storage"
)

// Manager periodically snapshots the sqlite database and uploads the snapshot
// to object storage.
type Manager interface {
	Start(ctx context.Context) error
	Shutdown()
}

type Config struct {
	Bucket    string
	KeyPrefix string
	Interval  time.Duration
	Logger    *logrus.Logger
}

type manager struct {
	cfg     Config
	db      *sql.DB
	storage storage.Service

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewManager(cfg Config, db *sql.DB, storage storage.Service) Manager {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &manager{
		cfg:     cfg,
		db:      db,
		storage: storage,
	}
}

func (m *manager) Start(ctx context.Context) error {
	if m.cfg.Bucket == "" {
		return fmt.Errorf("backup bucket is required")
	}

	m.ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go m.loop()

	m.cfg.Logger.Infof("backup manager started (bucket %s, every %s)", m.cfg.Bucket, m.cfg.Interval)
	return nil
}

// Shutdown stops the periodic loop and takes one final snapshot so the last
// writes survive an ephemeral disk.
func (m *manager) Shutdown() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := m.runOnce(ctx); err != nil {
		m.cfg.Logger.Warnf("final backup: %v", err)
	}
}

func (m *manager) loop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if err := m.runOnce(m.ctx); err != nil {
				m.cfg.Logger.Warnf("backup: %v", err)
			}
		}
	}
}

func (m *manager) runOnce(ctx context.Context) error {
	snapshot := filepath.Join(os.TempDir(), fmt.Sprintf("contacts-%s.db", uuid.NewString()))
	defer os.Remove(snapshot)

	// VACUUM INTO writes a consistent copy without blocking readers
	if _, err := m.db.ExecContext(ctx, fmt.Sprintf(`VACUUM INTO '%s'`, strings.ReplaceAll(snapshot, `'`, `''`))); err != nil {
		return fmt.Errorf("snapshot database: %w", err)
	}

	f, err := os.Open(snapshot)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	key := fmt.Sprintf("%s/%s-%s.db",
		strings.Trim(m.cfg.KeyPrefix, "/"),
		time.Now().UTC().Format("20060102T150405Z"),
		uuid.NewString(),
	)

	location, err := m.storage.UploadFile(ctx, m.cfg.Bucket, key, f)
	if err != nil {
		return err
	}

	m.cfg.Logger.Infof("database backed up to %s", location)
	return nil
}

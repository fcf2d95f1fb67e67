// Package datastore persists a single opaque payload as an encrypted file.
// Writes are atomic (temp file + rename) and deduplicated by checksum, with
// optional rotated backups of the previous file.
package datastore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds configuration options for the DataStore.
type Config struct {
	FilePath    string
	Key         []byte // key material of any length, hashed to the cipher key
	BackupCount int    // number of backup files to keep, 0 disables backups
	Logger      *log.Logger
}

// DefaultConfig returns a default configuration.
func DefaultConfig(filePath string, key []byte) *Config {
	return &Config{
		FilePath:    filePath,
		Key:         key,
		BackupCount: 3,
		Logger:      log.New(os.Stderr, "[datastore] ", log.LstdFlags),
	}
}

type DataStore struct {
	file         string
	sealer       *sealer
	mu           sync.Mutex
	config       *Config
	lastChecksum string // checksum of last saved plaintext
}

// New creates a DataStore with default configuration.
func New(filePath string, key []byte) (*DataStore, error) {
	return NewWithConfig(DefaultConfig(filePath, key))
}

// NewWithConfig creates a DataStore with custom configuration.
func NewWithConfig(config *Config) (*DataStore, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.FilePath == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}
	if len(config.Key) == 0 {
		return nil, fmt.Errorf("key cannot be empty")
	}
	if config.Logger == nil {
		config.Logger = log.New(os.Stderr, "[datastore] ", log.LstdFlags)
	}

	dir := filepath.Dir(config.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %v", err)
	}

	s, err := newSealer(config.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %v", err)
	}

	return &DataStore{
		file:   config.FilePath,
		sealer: s,
		config: config,
	}, nil
}

// Load reads and decrypts the backing file. A missing file returns
// (nil, nil); decryption or read failures return an error so the caller can
// decide how to degrade.
func (ds *DataStore) Load() ([]byte, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	blob, err := os.ReadFile(ds.file)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}

	plain, err := ds.sealer.open(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %s: %v", ds.file, err)
	}

	ds.lastChecksum = checksum(plain)
	return plain, nil
}

// Save encrypts and writes the payload, skipping the write when the payload
// is unchanged since the last save.
func (ds *DataStore) Save(payload []byte) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	sum := checksum(payload)
	if sum == ds.lastChecksum {
		return nil
	}

	blob, err := ds.sealer.seal(payload)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %v", err)
	}

	if ds.config.BackupCount > 0 {
		if err := ds.createBackup(); err != nil {
			ds.config.Logger.Printf("Failed to create backup: %v", err)
		}
	}

	if err := ds.writeFileAtomic(blob); err != nil {
		return err
	}

	ds.lastChecksum = sum
	return nil
}

// writeFileAtomic performs atomic file write using temporary file and rename.
func (ds *DataStore) writeFileAtomic(data []byte) error {
	tmpFile := ds.file + ".tmp"

	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write to temp file: %v", err)
	}

	file, err := os.OpenFile(tmpFile, os.O_RDWR, 0600)
	if err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to open temp file for sync: %v", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("failed to sync temp file: %v", err)
	}
	file.Close()

	if err := os.Rename(tmpFile, ds.file); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename temp file: %v", err)
	}

	return nil
}

// createBackup creates a timestamped backup of the current file.
func (ds *DataStore) createBackup() error {
	if _, err := os.Stat(ds.file); os.IsNotExist(err) {
		return nil // No file to backup
	}

	timestamp := time.Now().Format("20060102_150405")
	backupFile := fmt.Sprintf("%s.backup.%s", ds.file, timestamp)

	src, err := os.Open(ds.file)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(backupFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	ds.cleanupOldBackups()
	return nil
}

// cleanupOldBackups removes old backup files beyond the configured limit.
func (ds *DataStore) cleanupOldBackups() {
	pattern := ds.file + ".backup.*"
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return
	}

	if len(matches) <= ds.config.BackupCount {
		return
	}

	type fileInfo struct {
		path    string
		modTime time.Time
	}

	var files []fileInfo
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil {
			files = append(files, fileInfo{match, info.ModTime()})
		}
	}

	// Oldest first
	for i := 0; i < len(files)-1; i++ {
		for j := i + 1; j < len(files); j++ {
			if files[i].modTime.After(files[j].modTime) {
				files[i], files[j] = files[j], files[i]
			}
		}
	}

	toRemove := len(files) - ds.config.BackupCount
	for i := 0; i < toRemove; i++ {
		os.Remove(files[i].path)
	}
}

// checksum computes SHA-256 checksum of data.
func checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

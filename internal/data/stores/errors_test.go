package stores

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/internal/data/db"
)

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.False(t, IsNotFoundError(errors.New("other")))
	assert.False(t, IsNotFoundError(nil))
}

func TestIsCorruptionError_MessageFallback(t *testing.T) {
	assert.True(t, IsCorruptionError(errors.New("database disk image is malformed")))
	assert.True(t, IsCorruptionError(errors.New("file is not a database")))
	assert.False(t, IsCorruptionError(errors.New("no such table: snapshots")))
}

func TestRecoverFromCorruption_Success(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, db.FileName)

	require.NoError(t, os.WriteFile(dbPath, []byte("corrupted data"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal data"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-shm", []byte("shm data"), 0o644))

	require.NoError(t, RecoverFromCorruption(tempDir))

	allFiles, err := filepath.Glob(filepath.Join(tempDir, db.FileName+".corrupt.*"))
	require.NoError(t, err)

	var dbBackups, walBackups, shmBackups []string
	for _, f := range allFiles {
		switch {
		case strings.HasSuffix(f, "-wal"):
			walBackups = append(walBackups, f)
		case strings.HasSuffix(f, "-shm"):
			shmBackups = append(shmBackups, f)
		default:
			dbBackups = append(dbBackups, f)
		}
	}

	assert.Len(t, dbBackups, 1)
	assert.Len(t, walBackups, 1)
	assert.Len(t, shmBackups, 1)

	// Originals are gone; a fresh database can be created in their place.
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		_, err = os.Stat(p)
		assert.Error(t, err, "%s should not exist after recovery", p)
	}
}

func TestRecoverFromCorruption_MissingFile(t *testing.T) {
	tempDir := t.TempDir()

	assert.NoError(t, RecoverFromCorruption(tempDir))

	files, _ := filepath.Glob(filepath.Join(tempDir, "*.corrupt.*"))
	assert.Empty(t, files)
}

func TestRecoverFromCorruption_OnlyDatabase(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, db.FileName)

	require.NoError(t, os.WriteFile(dbPath, []byte("corrupted data"), 0o644))
	require.NoError(t, RecoverFromCorruption(tempDir))

	files, _ := filepath.Glob(filepath.Join(tempDir, db.FileName+".corrupt.*"))
	assert.Len(t, files, 1)

	walBackups, _ := filepath.Glob(filepath.Join(tempDir, "*-wal"))
	assert.Empty(t, walBackups)
}

func TestRecoverFromCorruption_WALWithoutDatabase(t *testing.T) {
	tempDir := t.TempDir()
	walPath := filepath.Join(tempDir, db.FileName+"-wal")

	require.NoError(t, os.WriteFile(walPath, []byte("wal data"), 0o644))
	require.NoError(t, RecoverFromCorruption(tempDir))

	walBackups, _ := filepath.Glob(filepath.Join(tempDir, "*.corrupt.*-wal"))
	assert.Len(t, walBackups, 1)

	_, err := os.Stat(walPath)
	assert.Error(t, err)
}

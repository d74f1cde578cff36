package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BiiZti/5GRecommendationTool/internal/catalog"
	"github.com/BiiZti/5GRecommendationTool/internal/store"
	"github.com/BiiZti/5GRecommendationTool/internal/testutil"
	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// newCatalogDB creates a file-backed catalog store in dir, imports two
// plans, closes it, and returns the database path.
func newCatalogDB(t *testing.T, dir string) string {
	t.Helper()
	dbPath := filepath.Join(dir, "grec.db")

	st, err := store.New(dbPath)
	require.NoError(t, err)

	provider, err := catalog.NewSQLiteProvider(context.Background(), st)
	require.NoError(t, err)

	_, err = provider.Import(context.Background(), []models.Plan{
		testutil.NewPlan(),
		testutil.NewPlan(testutil.WithName("second-plan"), testutil.WithPrice(59)),
	}, false)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	return dbPath
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	dbPath := newCatalogDB(t, tmp)

	configPath := filepath.Join(tmp, "grec.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: debug\n"), 0o644))

	archive := filepath.Join(tmp, "backup.tar.gz")
	require.NoError(t, Backup(context.Background(), dbPath, configPath, archive))

	restoreDir := filepath.Join(tmp, "restored")
	require.NoError(t, Restore(context.Background(), archive, restoreDir, false))

	// The restored database must open and still hold both plans.
	st, err := store.New(filepath.Join(restoreDir, "grec.db"))
	require.NoError(t, err)
	defer st.Close()

	provider, err := catalog.NewSQLiteProvider(context.Background(), st)
	require.NoError(t, err)

	count, err := provider.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// The config file travels along.
	data, err := os.ReadFile(filepath.Join(restoreDir, "grec.yaml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "level: debug")
}

func TestBackupSkipsMissingConfig(t *testing.T) {
	tmp := t.TempDir()
	dbPath := newCatalogDB(t, tmp)

	archive := filepath.Join(tmp, "backup.tar.gz")
	require.NoError(t, Backup(context.Background(), dbPath, filepath.Join(tmp, "absent.yaml"), archive))

	restoreDir := filepath.Join(tmp, "restored")
	require.NoError(t, Restore(context.Background(), archive, restoreDir, false))

	_, err := os.Stat(filepath.Join(restoreDir, "grec.db"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(restoreDir, "absent.yaml"))
	require.True(t, os.IsNotExist(err))
}

func TestBackupMissingDatabase(t *testing.T) {
	tmp := t.TempDir()
	err := Backup(context.Background(), filepath.Join(tmp, "nope.db"), "", filepath.Join(tmp, "out.tar.gz"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "catalog database not found")
}

func TestRestoreRefusesOverwrite(t *testing.T) {
	tmp := t.TempDir()
	dbPath := newCatalogDB(t, tmp)

	archive := filepath.Join(tmp, "backup.tar.gz")
	require.NoError(t, Backup(context.Background(), dbPath, "", archive))

	restoreDir := filepath.Join(tmp, "restored")
	require.NoError(t, Restore(context.Background(), archive, restoreDir, false))

	err := Restore(context.Background(), archive, restoreDir, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	require.NoError(t, Restore(context.Background(), archive, restoreDir, true))
}

func TestRestoreRejectsPathTraversal(t *testing.T) {
	tmp := t.TempDir()

	// Hand-build an archive whose entry tries to escape the target dir.
	archive := filepath.Join(tmp, "evil.tar.gz")
	f, err := os.Create(archive)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	body := []byte("owned")
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "../escape.txt",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len(body)),
	}))
	_, err = tw.Write(body)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	err = Restore(context.Background(), archive, filepath.Join(tmp, "restored"), false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsafe archive entry")

	_, statErr := os.Stat(filepath.Join(tmp, "escape.txt"))
	require.True(t, os.IsNotExist(statErr))
}

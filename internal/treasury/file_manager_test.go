package treasury

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vestd/internal/models"
	"vestd/internal/services"
	"vestd/internal/structures"
	"vestd/internal/testutil"
)

func treasuryConfig() *structures.Config {
	return &structures.Config{
		Treasury: structures.TreasuryConfig{
			PooledAccount:  "pooled",
			ReserveAccount: "reserve",
			MintAuthority:  "authority",
		},
	}
}

func newTestService() services.ContractServiceInterface {
	ledger := testutil.NewMockLedger(map[string]uint64{"pooled": 0, "reserve": 0})
	clock := clockwork.NewFakeClockAt(time.Unix(1735689600, 0).UTC())
	return services.NewContractService(treasuryConfig(), &testutil.MockLogger{}, ledger, clock, &testutil.MockJournal{})
}

func TestFileManager_SaveToFile_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.dat")

	svc := newTestService()
	require.NoError(t, svc.Initialize("owner"))

	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)

	// Temp file should not exist
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	fm := NewFileManager(&testutil.MockCompressor{}, newTestService(), &testutil.MockLogger{})
	err := fm.LoadFromFile("/nonexistent/path/state.dat")
	assert.NoError(t, err) // not an error, just no data
}

func TestFileManager_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roundtrip.dat")

	svc := newTestService()
	require.NoError(t, svc.Initialize("owner"))

	comp := &testutil.MockCompressor{}
	fm := NewFileManager(comp, svc, &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(path))

	svc2 := newTestService()
	fm2 := NewFileManager(comp, svc2, &testutil.MockLogger{})
	require.NoError(t, fm2.LoadFromFile(path))

	snapshot := svc2.GetSnapshot()
	require.NotNil(t, snapshot.Contract)
	assert.Equal(t, "owner", snapshot.Contract.Owner)
	assert.Equal(t, services.StageInitialized, svc2.LifecycleStage())
}

func TestFileManager_LoadFromFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invalid.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0644))

	fm := NewFileManager(&testutil.MockCompressor{}, newTestService(), &testutil.MockLogger{})
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_LoadFromFile_VersionMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "version.dat")

	jsonData, err := json.Marshal(models.Storage{Version: 99})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, jsonData, 0644))

	fm := NewFileManager(&testutil.MockCompressor{}, newTestService(), &testutil.MockLogger{})
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_CompressError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "err.dat")

	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress failed")
		},
	}
	fm := NewFileManager(comp, newTestService(), &testutil.MockLogger{})

	err := fm.SaveToFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "compress failed")
}

func TestFileManager_DecompressError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dec.dat")
	require.NoError(t, os.WriteFile(path, []byte("some data"), 0644))

	comp := &testutil.MockCompressor{
		DecompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("decompress failed")
		},
	}
	fm := NewFileManager(comp, newTestService(), &testutil.MockLogger{})

	err := fm.LoadFromFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decompress failed")
}

func TestFileManager_RealCompressorRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zstd.dat")

	comp, err := NewZstdCompressor()
	require.NoError(t, err)

	svc := newTestService()
	require.NoError(t, svc.Initialize("owner"))
	fm := NewFileManager(comp, svc, &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(path))

	svc2 := newTestService()
	fm2 := NewFileManager(comp, svc2, &testutil.MockLogger{})
	require.NoError(t, fm2.LoadFromFile(path))
	assert.Equal(t, services.StageInitialized, svc2.LifecycleStage())
}

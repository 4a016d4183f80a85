package db_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/hookupmap/internal/data/db"
	"github.com/yungbote/hookupmap/internal/data/repos/testutil"
	apperr "github.com/yungbote/hookupmap/internal/pkg/errors"
	"github.com/yungbote/hookupmap/internal/schema"
)

func TestDialectOf(t *testing.T) {
	assert.Equal(t, db.DialectPostgres, db.DialectOf("postgres://u:p@localhost/maps"))
	assert.Equal(t, db.DialectPostgres, db.DialectOf("postgresql://localhost/maps"))
	assert.Equal(t, db.DialectSQLite, db.DialectOf("/tmp/map.db"))
	assert.Equal(t, db.DialectSQLite, db.DialectOf("map.sqlite"))
}

func TestNewStoreService_EmptyLocation(t *testing.T) {
	_, err := db.NewStoreService(testutil.Logger(t), "  ", db.DefaultOptions())
	require.Error(t, err)
}

func TestNewStoreService_ForeignKeysOn(t *testing.T) {
	svc := testutil.Store(t)
	assert.Equal(t, db.DialectSQLite, svc.Dialect())

	var fk int
	require.NoError(t, svc.DB().Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestInitialize_CreatesEveryTable(t *testing.T) {
	svc := testutil.Store(t)
	ctx := context.Background()
	reg := schema.Default()

	require.NoError(t, db.Initialize(ctx, svc.DB(), reg))
	assert.True(t, db.TablesExist(ctx, svc.DB(), reg))

	m := svc.DB().Migrator()
	for _, table := range []string{"busses", "nets", "nodes", "connections", "pinouts"} {
		assert.True(t, m.HasTable(table), table)
	}
	assert.True(t, m.HasColumn("connections", "intconn"))
	assert.True(t, m.HasColumn("connections", "intcable"))
	assert.True(t, m.HasColumn("pinouts", "net"))
	assert.True(t, m.HasColumn("nets", "bus"))
	assert.True(t, m.HasIndex("nets", "idx_nets_bus_name"))
}

func TestInitialize_RejectsExistingSchema(t *testing.T) {
	svc := testutil.Store(t)
	ctx := context.Background()
	reg := schema.Default()

	require.NoError(t, db.Initialize(ctx, svc.DB(), reg))

	err := db.Initialize(ctx, svc.DB(), reg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrSchema))

	var se *db.SchemaError
	require.True(t, errors.As(err, &se))
	assert.True(t, se.Exists)
	assert.Equal(t, "busses", se.Table)
}

func TestInitialize_PartialSchemaLeavesStoreUntouched(t *testing.T) {
	svc := testutil.Store(t)
	ctx := context.Background()

	require.NoError(t, svc.DB().Exec("CREATE TABLE pinouts (id INTEGER PRIMARY KEY)").Error)

	err := db.Initialize(ctx, svc.DB(), schema.Default())
	require.ErrorIs(t, err, apperr.ErrSchema)
	assert.False(t, svc.DB().Migrator().HasTable("busses"))
}

func TestStoreService_CloseAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.db")
	svc, err := db.NewStoreService(testutil.Logger(t), path, db.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, db.Initialize(context.Background(), svc.DB(), schema.Default()))
	require.NoError(t, svc.Close())

	again, err := db.NewStoreService(testutil.Logger(t), path, db.DefaultOptions())
	require.NoError(t, err)
	defer again.Close()
	assert.True(t, db.TablesExist(context.Background(), again.DB(), schema.Default()))
}

func TestNewStoreService_StatementLogGoesToStderr(t *testing.T) {
	dir := t.TempDir()
	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	stderr, err := os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)
	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = stdout, stderr
	t.Cleanup(func() {
		os.Stdout, os.Stderr = origOut, origErr
		stdout.Close()
		stderr.Close()
	})

	svc, err := db.NewStoreService(testutil.Logger(t), filepath.Join(dir, "map.db"), db.Options{LogLevel: gormLogger.Info})
	require.NoError(t, err)
	var n int
	require.NoError(t, svc.DB().Raw("SELECT 1").Scan(&n).Error)
	require.NoError(t, svc.Close())

	out, err := os.ReadFile(stdout.Name())
	require.NoError(t, err)
	assert.Empty(t, out)
	logged, err := os.ReadFile(stderr.Name())
	require.NoError(t, err)
	assert.Contains(t, string(logged), "SELECT 1")
}

func TestNewStoreService_LogOutput(t *testing.T) {
	var buf bytes.Buffer
	svc, err := db.NewStoreService(testutil.Logger(t), filepath.Join(t.TempDir(), "map.db"),
		db.Options{LogLevel: gormLogger.Info, LogOutput: &buf})
	require.NoError(t, err)
	defer svc.Close()

	var n int
	require.NoError(t, svc.DB().Raw("SELECT 2").Scan(&n).Error)
	assert.Contains(t, buf.String(), "SELECT 2")
}

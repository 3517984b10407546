package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOpen makes openDB hand out sqlmock pools. The first failFirst calls fail.
func stubOpen(t *testing.T, failFirst int32) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	prev := openDB
	openDB = func(driverName, dsn string) (*sql.DB, error) {
		if calls.Add(1) <= failFirst {
			return nil, driver.ErrBadConn
		}
		mockDB, _, err := sqlmock.New()
		if err != nil {
			return nil, err
		}
		return mockDB, nil
	}
	t.Cleanup(func() { openDB = prev })
	return &calls
}

func resetSingleton(t *testing.T) {
	t.Helper()
	reset := func() {
		singletonMu.Lock()
		singletonDB = nil
		singletonInFly = false
		singletonMu.Unlock()
	}
	reset()
	t.Cleanup(reset)
}

func TestOptionsForRole(t *testing.T) {
	cases := []struct {
		name   string
		lambda bool
		role   Role
		want   Options
	}{
		{name: "api", role: RoleAPI, want: DefaultServerOptions()},
		{name: "worker", role: RoleWorker, want: DefaultWorkerOptions()},
		{name: "migrate", role: RoleMigrate, want: DefaultMigrateOptions()},
		{name: "api in lambda", lambda: true, role: RoleAPI, want: DefaultLambdaOptions()},
		{name: "worker in lambda", lambda: true, role: RoleWorker, want: DefaultLambdaOptions()},
		{name: "migrate in lambda", lambda: true, role: RoleMigrate, want: DefaultMigrateOptions()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fn := ""
			if tc.lambda {
				fn = "placement-worker"
			}
			t.Setenv("AWS_LAMBDA_FUNCTION_NAME", fn)
			assert.Equal(t, tc.want, OptionsFor(tc.role))
		})
	}
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	stubOpen(t, 0)
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "not-a-duration")

	opts := OptionsFromEnv(DefaultWorkerOptions())
	assert.Equal(t, Options{
		MaxOpenConns:    7,
		MaxIdleConns:    3,
		ConnMaxLifetime: 20 * time.Minute,
		ConnMaxIdleTime: 45 * time.Second,
		PingTimeout:     DefaultWorkerOptions().PingTimeout,
	}, opts)

	pool, err := Connect(context.Background(), "postgres://ignored", opts)
	require.NoError(t, err)
	defer pool.Close()
	assert.Equal(t, 7, pool.Stats().MaxOpenConnections)
}

func TestConnectRequiresURL(t *testing.T) {
	_, err := Connect(context.Background(), "  ", DefaultServerOptions())
	assert.ErrorIs(t, err, ErrNoDatabaseURL)
}

func TestConnectReportsPingFailure(t *testing.T) {
	prev := openDB
	t.Cleanup(func() { openDB = prev })
	openDB = func(driverName, dsn string) (*sql.DB, error) {
		mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			return nil, err
		}
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		return mockDB, nil
	}

	_, err := Connect(context.Background(), "postgres://ignored", DefaultServerOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping database")
}

func TestOpenWorkerUsesWorkerPool(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	stubOpen(t, 0)

	pool, err := Open(context.Background(), "postgres://ignored", RoleWorker)
	require.NoError(t, err)
	defer pool.Close()
	assert.Equal(t, DefaultWorkerOptions().MaxOpenConns, pool.Stats().MaxOpenConnections)
}

func TestOpenInLambdaSharesSingleton(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "placement-api")
	resetSingleton(t)
	calls := stubOpen(t, 0)

	first, err := Open(context.Background(), "postgres://ignored", RoleAPI)
	require.NoError(t, err)
	second, err := Open(context.Background(), "postgres://ignored", RoleWorker)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, DefaultLambdaOptions().MaxOpenConns, first.Stats().MaxOpenConnections)
}

func TestGetSingletonRetriesAfterFailure(t *testing.T) {
	resetSingleton(t)
	calls := stubOpen(t, 1)

	_, err := GetSingleton(context.Background(), "postgres://ignored", DefaultLambdaOptions())
	require.Error(t, err)

	pool, err := GetSingleton(context.Background(), "postgres://ignored", DefaultLambdaOptions())
	require.NoError(t, err)
	assert.NotNil(t, pool)
	assert.EqualValues(t, 2, calls.Load())
}

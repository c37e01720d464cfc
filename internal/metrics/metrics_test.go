package metrics_test

import (
	"testing"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/metrics"
	"taskboard/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*metrics.Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return metrics.NewWithRegistry(reg, nil), reg
}

func TestRecordHTTPRequest(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordHTTPRequest("GET", "/boards/:board_id", 200, 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "/boards/:board_id", 201, 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "/boards/:board_id", 404, 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/boards/:board_id", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/boards/:board_id", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "4xx")))
}

func TestRecordLogin(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordLogin(metrics.LoginSucceeded)
	m.RecordLogin(metrics.LoginRejected)
	m.RecordLogin(metrics.LoginRejected)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues(metrics.LoginSucceeded)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues(metrics.LoginRejected)))
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, metrics.ShouldSkipEndpoint("/metrics"))
	assert.True(t, metrics.ShouldSkipEndpoint("/health"))
	assert.False(t, metrics.ShouldSkipEndpoint("/boards/"))
}

func TestCollector_Collect(t *testing.T) {
	db, err := database.New(database.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, db.Create(&model.Board{Title: "a", OwnerUserID: 1}).Error)
	require.NoError(t, db.Create(&model.Board{Title: "b", OwnerUserID: 1}).Error)
	require.NoError(t, db.Create(&model.Card{Title: "c", ListID: 1}).Error)

	m, _ := newTestMetrics(t)
	metrics.NewCollector(db, m, nopLogger(), time.Minute).Collect()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BoardsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CardsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBConnectionsOpen))
}

func TestCollector_StartStop(t *testing.T) {
	db, err := database.New(database.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	m, _ := newTestMetrics(t)
	c := metrics.NewCollector(db, m, nopLogger(), 10*time.Millisecond)
	c.Start()
	c.Stop()
}

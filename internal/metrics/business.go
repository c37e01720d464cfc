package metrics

import (
	"database/sql"
)

const (
	LoginSucceeded = "success"
	LoginUnknown   = "unknown_email"
	LoginRejected  = "bad_password"
	LoginFailed    = "error"
)

// RecordLogin counts one login attempt under the given result label.
func (m *Metrics) RecordLogin(result string) {
	m.safeExecute("RecordLogin", func() {
		m.LoginAttemptsTotal.WithLabelValues(result).Inc()
	})
}

// IncrementCreated counts a newly created entity of the given kind.
func (m *Metrics) IncrementCreated(kind string) {
	m.safeExecute("IncrementCreated", func() {
		m.EntityCreatedTotal.WithLabelValues(kind).Inc()
	})
}

func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

func (m *Metrics) SetCardsTotal(count int64) {
	m.safeExecute("SetCardsTotal", func() {
		m.CardsTotal.Set(float64(count))
	})
}

// UpdateDBStats updates database connection pool metrics
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	m.safeExecute("UpdateDBStats", func() {
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
	})
}

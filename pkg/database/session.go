package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RequestScope is the short-lived database session tied to a single
// request. One scope is acquired when the request starts and released
// before the response is produced; it is never held across requests.
// Repositories run single auto-committed statements on Conn, so a failed
// operation leaves no partial state.
type RequestScope struct {
	Conn *pgxpool.Conn
}

// Close releases the connection back to the pool. It MUST be called on
// every exit path, including error paths.
func (s *RequestScope) Close() {
	if s.Conn == nil {
		return
	}
	s.Conn.Release()
}

// AcquireScope checks a connection out of the pool for the duration of a
// request. The returned RequestScope MUST be closed with defer
// scope.Close().
func (db *DB) AcquireScope(ctx context.Context) (*RequestScope, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &RequestScope{Conn: conn}, nil
}

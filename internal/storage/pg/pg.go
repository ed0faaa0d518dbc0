// Package pg is the Postgres backend. Nested collections (members,
// messages, answers, snapshots) live in JSONB columns; the engines
// treat them as opaque documents, so relational decomposition would
// buy nothing here.
package pg

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/campuslink-dev/campuslink/internal/config"
	"github.com/campuslink-dev/campuslink/internal/logger"
	"github.com/campuslink-dev/campuslink/internal/service"
)

// Ensure Storage implements every engine interface at compile time.
var (
	_ service.PostStorage         = (*Storage)(nil)
	_ service.UserStorage         = (*Storage)(nil)
	_ service.ApplicationStorage  = (*Storage)(nil)
	_ service.InvitationStorage   = (*Storage)(nil)
	_ service.ChatroomStorage     = (*Storage)(nil)
	_ service.NotificationStorage = (*Storage)(nil)
)

type Storage struct {
	db *sql.DB
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to postgres", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("connected to postgres")
	return &Storage{db}, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Private.Pg.Host, cfg.Private.Pg.Port, cfg.Private.Pg.User, cfg.Private.Pg.Password, cfg.Private.Pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// jsonb marshals v for a JSONB parameter.
func jsonb(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// scanJSON unmarshals a JSONB column into out, tolerating NULL.
func scanJSON(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

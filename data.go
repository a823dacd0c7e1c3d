package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/gchaincl/sqlhooks"
	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

var DB *sqlx.DB

var logSql = log.New(os.Stdout, "sql: ", log.LstdFlags)

type Hooks struct{}

func (h *Hooks) Before(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	return ctx, nil
}

func (h *Hooks) After(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	logSql.Println(strings.Join(strings.Fields(query), " "))
	logSql.Println(args...)
	return ctx, nil
}

func init() {
	sql.Register("sqlite3_hooked", sqlhooks.Wrap(&sqlite3.SQLiteDriver{}, &Hooks{}))
	decimal.MarshalJSONWithoutQuotes = true
}

// openDB connects with foreign keys enforced on every pooled connection.
// The busy timeout keeps concurrent writers waiting instead of failing.
func openDB(path string) *sqlx.DB {
	return sqlx.MustConnect("sqlite3_hooked", path+"?_foreign_keys=on&_busy_timeout=5000")
}

type NullString struct {
	sql.NullString
}

func (s NullString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.String)
}

func (s *NullString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		s.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &s.String); err != nil {
		return err
	}
	s.Valid = true
	return nil
}

package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Table definitions match the legacy on-disk layout so existing database
// files keep working.
const (
	createUserTable = `CREATE TABLE User (
		UserID INTEGER UNIQUE PRIMARY KEY AUTOINCREMENT,
		Username VARCHAR(100) UNIQUE,
		HashedPassword VARCHAR(100),
		Salt VARCHAR(100),
		FirstName VARCHAR(100),
		LastName VARCHAR(100),
		IsVIP BOOLEAN,
		CreatedDate DATETIME DEFAULT CURRENT_TIMESTAMP,
		UpdatedOn DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

	createPostTable = `CREATE TABLE Post (
		PostID INTEGER UNIQUE PRIMARY KEY AUTOINCREMENT,
		Content VARCHAR(100),
		Author VARCHAR(100),
		Likes INTEGER,
		Shares INTEGER,
		DateTime VARCHAR(100),
		UserID INTEGER,
		CreatedDate DATETIME DEFAULT CURRENT_TIMESTAMP,
		UpdatedOn DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(UserID) REFERENCES User(UserID)
	)`
)

// ensureSchema creates the User and Post tables if they are absent. Each
// table is probed individually so a partially initialized database is
// completed rather than failed.
func ensureSchema(db *sqlx.DB) error {
	for _, t := range []struct {
		name string
		ddl  string
	}{
		{"User", createUserTable},
		{"Post", createPostTable},
	} {
		exists, err := tableExists(db, t.name)
		if err != nil {
			return fmt.Errorf("probe table %s: %w", t.name, err)
		}
		if exists {
			continue
		}
		if _, err := db.Exec(t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	return nil
}

func tableExists(db *sqlx.DB, name string) (bool, error) {
	var n int
	err := db.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?`, name)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

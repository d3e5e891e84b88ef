package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect_SQLite(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}

	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	assert.NoError(t, db.Exec("CREATE TABLE ping (id INTEGER PRIMARY KEY)").Error)
	assert.NoError(t, Close(db))
}

package repository

import "testing"

func TestNewDB_InvalidDSN(t *testing.T) {
	db, err := NewDB("not a valid dsn")
	if err == nil {
		db.Close()
		t.Fatal("NewDB() expected error for invalid DSN")
	}
}

package shared

import (
	"path/filepath"
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) < 2 {
			t.Fatalf("expected at least two migrations, got %d", len(migrations))
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		if migrations[0].Name != "create_local_storage" {
			t.Errorf("expected first migration create_local_storage, got %q", migrations[0].Name)
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if _, err := db.Exec("SELECT key, value FROM local_storage LIMIT 1"); err != nil {
			t.Errorf("local_storage table should exist after migrations: %v", err)
		}
		if _, err := db.Exec("SELECT kind FROM resource_cache LIMIT 1"); err != nil {
			t.Errorf("resource_cache table should exist after migrations: %v", err)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("running migrations twice should be a no-op: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		if _, err := db.Exec("SELECT kind FROM resource_cache LIMIT 1"); err == nil {
			t.Error("resource_cache should be gone after rollback")
		}
		if _, err := db.Exec("SELECT key FROM local_storage LIMIT 1"); err != nil {
			t.Errorf("local_storage should survive a single rollback: %v", err)
		}

		applied, err := AppliedMigrations(db)
		if err != nil {
			t.Fatalf("failed to list applied migrations: %v", err)
		}
		if !applied[0] || applied[1] {
			t.Errorf("expected only version 0 applied, got %v", applied)
		}
	})

	t.Run("Rollback With Nothing Applied", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		if err := createMigrationsTable(db); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}
		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing to roll back")
		}
	})

	t.Run("OpenDatabase Creates Parent Directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "evloca.db")
		db, err := OpenDatabase(DatabaseConfig{Path: path, MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer db.Close()

		if _, err := db.Exec("INSERT INTO local_storage (key, value) VALUES ('token', 'abc')"); err != nil {
			t.Errorf("expected migrated schema, got %v", err)
		}
	})
}

func TestRemoveComments(t *testing.T) {
	got := removeComments("-- header\nCREATE TABLE t (id INT); -- trailing\n\n")
	if got != "CREATE TABLE t (id INT);" {
		t.Errorf("unexpected result %q", got)
	}
}

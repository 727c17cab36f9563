package database

import (
	"strings"
	"testing"
)

func TestPgx5URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"postgres scheme",
			"postgres://u:p@localhost:5432/db?sslmode=disable",
			"pgx5://u:p@localhost:5432/db?sslmode=disable",
		},
		{
			"postgresql scheme",
			"postgresql://u:p@localhost/db",
			"pgx5://u:p@localhost/db",
		},
		{
			"already pgx5",
			"pgx5://u:p@localhost/db",
			"pgx5://u:p@localhost/db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pgx5URL(tt.in); got != tt.want {
				t.Errorf("pgx5URL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no migrations embedded")
	}
	// Every up migration needs its down pair.
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}
	for name := range names {
		if cut, ok := strings.CutSuffix(name, ".up.sql"); ok && !names[cut+".down.sql"] {
			t.Errorf("migration %s has no down pair", name)
		}
	}
}

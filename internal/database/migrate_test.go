package database

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
)

// migrationsDir returns the absolute path to db/migrations/ from the project root.
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	// thisFile is internal/database/migrate_test.go, project root is two dirs up.
	dir := filepath.Join(filepath.Dir(thisFile), "..", "..", "db", "migrations")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("migrations directory not found at %s: %v", dir, err)
	}
	return dir
}

// TestMigrations_PerformerRoleEnum keeps the campaign_logs.performer_role
// ENUM in sync with activitylog.Roles(). A role missing from the ENUM makes
// MariaDB reject the insert with "Data truncated for column".
func TestMigrations_PerformerRoleEnum(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(migrationsDir(t), "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no migration files found")
	}

	enumPattern := regexp.MustCompile(`performer_role\s+ENUM\(([^)]*)\)`)
	valuePattern := regexp.MustCompile(`'([^']+)'`)

	var found []string
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}
		if m := enumPattern.FindStringSubmatch(string(data)); m != nil {
			found = nil
			for _, v := range valuePattern.FindAllStringSubmatch(m[1], -1) {
				found = append(found, v[1])
			}
		}
	}
	if found == nil {
		t.Fatal("no performer_role ENUM found in migrations")
	}

	var want []string
	for _, r := range activitylog.Roles() {
		want = append(want, string(r))
	}
	sort.Strings(found)
	sort.Strings(want)
	if strings.Join(found, ",") != strings.Join(want, ",") {
		t.Errorf("performer_role ENUM = %v, want %v", found, want)
	}
}

// TestMigrations_Paired checks every up migration has a matching down file.
func TestMigrations_Paired(t *testing.T) {
	dir := migrationsDir(t)
	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := os.Stat(down); err != nil {
			t.Errorf("%s has no down migration", filepath.Base(up))
		}
	}
}

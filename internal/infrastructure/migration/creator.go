package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const versionWidth = 6

var migrationTemplate = template.Must(template.New("migration").Parse(
	`-- {{.Name}}{{if .Down}} (rollback){{end}}
-- Created: {{.Created}}

`))

var (
	migrationFileRe = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)
	nameSeparatorRe = regexp.MustCompile(`[\s\-_]+`)
	nameInvalidRe   = regexp.MustCompile(`[^a-z0-9_]`)
)

// MigrationFile is a created up/down pair
type MigrationFile struct {
	Version  uint
	Name     string
	UpPath   string
	DownPath string
}

// Migration is one entry of a migration source
type Migration struct {
	Version uint
	Name    string
	HasDown bool
}

// BaseName returns the file name without direction and extension
func (m Migration) BaseName() string {
	return fmt.Sprintf("%0*d_%s", versionWidth, m.Version, m.Name)
}

// CreateMigration writes an empty up/down pair into dir, numbered after the
// highest version already present.
func CreateMigration(dir, name string) (*MigrationFile, error) {
	clean := sanitizeName(name)
	if clean == "" {
		return nil, fmt.Errorf("invalid migration name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := ListMigrations(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	var version uint = 1
	if n := len(existing); n > 0 {
		version = existing[n-1].Version + 1
	}

	m := Migration{Version: version, Name: clean}
	mf := &MigrationFile{
		Version:  version,
		Name:     clean,
		UpPath:   filepath.Join(dir, m.BaseName()+".up.sql"),
		DownPath: filepath.Join(dir, m.BaseName()+".down.sql"),
	}
	created := time.Now().UTC().Format(time.RFC3339)

	if err := writeMigrationFile(mf.UpPath, clean, created, false); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}
	if err := writeMigrationFile(mf.DownPath, clean, created, true); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}
	return mf, nil
}

func writeMigrationFile(path, name, created string, down bool) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return migrationTemplate.Execute(f, struct {
		Name    string
		Created string
		Down    bool
	}{name, created, down})
}

// sanitizeName lowercases name and joins its words with underscores
func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nameSeparatorRe.ReplaceAllString(s, "_")
	s = nameInvalidRe.ReplaceAllString(s, "")
	return strings.Trim(s, "_")
}

// ListMigrations returns the migrations found at the root of fsys sorted by
// version. A missing directory yields an empty list.
func ListMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return []Migration{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	byVersion := make(map[uint]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := migrationFileRe.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		v, err := strconv.ParseUint(match[1], 10, 32)
		if err != nil {
			continue
		}
		version := uint(v)
		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: match[2]}
			byVersion[version] = m
		}
		if match[3] == "down" {
			m.HasDown = true
		}
	}

	result := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Version < result[j].Version })
	return result, nil
}

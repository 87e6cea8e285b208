package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"
)

// WriteAll writes the backup as <base>.json and every table as
// <base>-<name>.csv under dir, concurrently. It returns the written paths
// sorted. The first failure cancels the remaining writes.
func WriteAll(ctx context.Context, dir, base string, b Backup, tables map[string]Table) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}

	paths := make([]string, 0, len(tables)+1)
	g, ctx := errgroup.WithContext(ctx)

	backupPath := filepath.Join(dir, base+".json")
	paths = append(paths, backupPath)
	g.Go(func() error {
		return writeFile(ctx, backupPath, func(f *os.File) error { return WriteBackup(f, b) })
	})

	for _, name := range sortedKeys(tables) {
		t := tables[name]
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.csv", base, name))
		paths = append(paths, path)
		g.Go(func() error {
			return writeFile(ctx, path, func(f *os.File) error { return WriteCSV(f, t) })
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return paths, nil
}

func writeFile(ctx context.Context, path string, write func(*os.File) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

type boundary struct {
	layer string
	// banned import prefixes; "$" stands for the module path
	banned []string
}

// Lower layers never reach up. Decoding stays free of the store.
var boundaries = []boundary{
	{"internal/pkg/", []string{"$/internal/schema", "$/internal/mapping", "$/internal/graph", "$/internal/persist", "$/internal/data", "$/internal/domain", "$/internal/systemmap", "$/internal/app"}},
	{"internal/domain/", []string{"$/internal/schema", "$/internal/mapping", "$/internal/graph", "$/internal/persist", "$/internal/data", "$/internal/systemmap", "$/internal/app", "gorm.io/gorm"}},
	{"internal/schema/", []string{"$/internal/mapping", "$/internal/graph", "$/internal/persist", "$/internal/data", "$/internal/systemmap", "$/internal/app", "gorm.io/"}},
	{"internal/mapping/", []string{"$/internal/graph", "$/internal/persist", "$/internal/data", "$/internal/systemmap", "$/internal/app", "gorm.io/"}},
	{"internal/graph/", []string{"$/internal/persist", "$/internal/data", "$/internal/systemmap", "$/internal/app", "gorm.io/"}},
	{"internal/data/", []string{"$/internal/mapping", "$/internal/graph", "$/internal/persist", "$/internal/systemmap", "$/internal/app"}},
	{"internal/persist/", []string{"$/internal/systemmap", "$/internal/app"}},
	{"internal/systemmap/", []string{"$/internal/app"}},
}

func TestImportBoundaries(t *testing.T) {
	root := moduleRoot(t)
	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}

	fset := token.NewFileSet()
	var violations []string

	walkErr := filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		banned := bannedFor(rel, modulePath)
		if len(banned) == 0 {
			return nil
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			for _, bad := range banned {
				if imp == bad || strings.HasPrefix(imp, strings.TrimSuffix(bad, "/")+"/") {
					violations = append(violations, fmt.Sprintf("- %s imports %q (banned: %q)", rel, imp, bad))
					break
				}
			}
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("walk internal/: %v", walkErr)
	}
	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n%s", strings.Join(violations, "\n"))
	}
}

func TestEveryPackageHasABoundaryOrIsTopLevel(t *testing.T) {
	root := moduleRoot(t)
	entries, err := os.ReadDir(filepath.Join(root, "internal"))
	if err != nil {
		t.Fatalf("read internal/: %v", err)
	}
	unchecked := map[string]bool{"app": true, "architecture": true, "utils": true}
	for _, e := range entries {
		if !e.IsDir() || unchecked[e.Name()] {
			continue
		}
		if bannedFor("internal/"+e.Name()+"/x.go", "m") == nil {
			t.Errorf("internal/%s has no import boundary", e.Name())
		}
	}
}

func bannedFor(rel, modulePath string) []string {
	for _, b := range boundaries {
		if strings.HasPrefix(rel, b.layer) {
			out := make([]string, len(b.banned))
			for i, s := range b.banned {
				out[i] = strings.Replace(s, "$", modulePath, 1)
			}
			return out
		}
	}
	return nil
}

func moduleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	start := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("go.mod not found from %s", start)
		}
		dir = parent
	}
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if mp, ok := strings.CutPrefix(line, "module "); ok {
			if mp = strings.TrimSpace(mp); mp == "" {
				return "", fmt.Errorf("empty module path in %s", goModPath)
			}
			return mp, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}

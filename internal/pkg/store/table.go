package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	gbytes "github.com/labstack/gommon/bytes"
	"github.com/ougirez/demostats/internal/domain"
	"github.com/ougirez/demostats/internal/pkg/constants"
	"github.com/ougirez/demostats/internal/pkg/logger"
	"github.com/ougirez/demostats/internal/pkg/tablecodec"
	"github.com/spf13/afero"
)

func (s *store) TablePath(name string) string {
	return filepath.Join(s.dir, name+constants.TableExt)
}

// SaveTable replaces the table of name. The encoded table is written to a
// temporary file first and renamed over the previous one.
func (s *store) SaveTable(ctx context.Context, name string, table *domain.Table) (string, error) {
	var buf bytes.Buffer
	if err := tablecodec.Encode(&buf, table); err != nil {
		return "", fmt.Errorf("tablecodec.Encode: %w", err)
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("fs.MkdirAll: %w", err)
	}

	path := s.TablePath(name)
	tmp := filepath.Join(s.dir, "."+name+"-"+uuid.NewString()+".tmp")
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("afero.WriteFile: %w", err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return "", fmt.Errorf("fs.Rename: %w", err)
	}

	logger.Infof(ctx, "saved %s: %d rows, %s", path, table.Len(), gbytes.Format(int64(buf.Len())))
	return path, nil
}

// LoadTable returns constants.ErrTableNotFound when name has no table yet.
func (s *store) LoadTable(ctx context.Context, name string) (*domain.Table, error) {
	f, err := s.fs.Open(s.TablePath(name))
	if err != nil {
		return nil, wrapErr(err)
	}
	defer f.Close()

	table, err := tablecodec.Decode(f)
	if err != nil {
		logger.Errorf(ctx, "decode %s: %s", name, err.Error())
		return nil, fmt.Errorf("tablecodec.Decode, name-%s: %w", name, err)
	}

	return table, nil
}

// Discover lists the names of the tables present in the output directory.
func (s *store) Discover(ctx context.Context) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("afero.ReadDir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		fileName := e.Name()
		if e.IsDir() || strings.HasPrefix(fileName, ".") || filepath.Ext(fileName) != constants.TableExt {
			continue
		}
		names = append(names, strings.TrimSuffix(fileName, constants.TableExt))
	}
	sort.Strings(names)

	logger.Debugf(ctx, "discovered %d tables in %s", len(names), s.dir)
	return names, nil
}

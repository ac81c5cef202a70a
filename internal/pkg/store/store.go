package store

import (
	"context"

	"github.com/ougirez/demostats/internal/domain"
	"github.com/spf13/afero"
)

type Store interface {
	SaveTable(ctx context.Context, name string, table *domain.Table) (string, error)
	LoadTable(ctx context.Context, name string) (*domain.Table, error)
	Discover(ctx context.Context) ([]string, error)
	TablePath(name string) string
}

type store struct {
	fs  afero.Fs
	dir string
}

// NewStore keeps one table per indicator under dir on fs.
func NewStore(fs afero.Fs, dir string) Store {
	return &store{fs: fs, dir: dir}
}

// NewOsStore is NewStore on the host filesystem.
func NewOsStore(dir string) Store {
	return NewStore(afero.NewOsFs(), dir)
}

package store

import (
	"errors"
	"io/fs"

	"github.com/ougirez/demostats/internal/pkg/constants"
)

var mapping = map[error]error{fs.ErrNotExist: constants.ErrTableNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

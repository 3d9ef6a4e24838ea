package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/qaforum/internal/common"
)

// notFound names the missing resource in ErrorNotFound and passes any other
// error through.
func notFound(resource string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("%s %w", resource, common.ErrorNotFound)
	}
	return err
}

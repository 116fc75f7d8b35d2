package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vbonduro/shorescore/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("tag 4: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", fmt.Errorf("inner: %w", domain.ErrNotFound)), http.StatusNotFound},
		{fmt.Errorf("score 9: %w", domain.ErrInvalidScore), http.StatusBadRequest},
		{fmt.Errorf("%w: name required", domain.ErrInvalidLocation), http.StatusBadRequest},
		{errors.New("disk I/O error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, errorStatus(tt.err), tt.err.Error())
	}
}

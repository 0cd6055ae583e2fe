package catalog

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify_TransientErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"serialization failure", &pq.Error{Code: "40001"}},
		{"deadlock detected", &pq.Error{Code: "40P01"}},
		{"query canceled", &pq.Error{Code: "57014"}},
		{"too many connections", &pq.Error{Code: "53300"}},
		{"connection exception", &pq.Error{Code: "08006"}},
		{"context deadline", context.DeadlineExceeded},
		{"bad connection", driver.ErrBadConn},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsTransient(classify(tt.err)))
		})
	}
}

func TestClassify_NonTransientErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		// Справочник только читается: нарушение уникальности здесь не повторяется
		{"unique violation", &pq.Error{Code: "23505"}},
		{"syntax error", &pq.Error{Code: "42601"}},
		{"plain error", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsTransient(classify(tt.err)))
		})
	}
}

func TestClassify_NilError(t *testing.T) {
	assert.NoError(t, classify(nil))
}

// Репозиторий помечает транзиентную ошибку драйвера, сохраняя цепочку для IsTransient
func TestIsTransient_WrappedDriverError(t *testing.T) {
	err := fmt.Errorf("%w: GetSalon - scan salon: %v", ErrTransient, &pq.Error{Code: "08006"})
	assert.True(t, IsTransient(err))
	assert.False(t, errors.Is(err, ErrExecQuery))
}

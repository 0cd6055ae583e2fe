package booking

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
		{"booking code collision", &pq.Error{Code: "23505", Constraint: "bookings_code_key"}},
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
		{"unique violation on another index", &pq.Error{Code: "23505", Constraint: "bookings_pkey"}},
		{"not null violation", &pq.Error{Code: "23502"}},
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

func TestIsTransient_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("%w: Create - execute insert: broken pipe", ErrTransient)
	assert.True(t, IsTransient(err))
}

// Конфликт сериализации на этапе коммита приходит сырым, минуя classify
func TestIsTransient_RawCommitError(t *testing.T) {
	err := fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"})
	assert.True(t, IsTransient(err))
}

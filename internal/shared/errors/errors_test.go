package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateErrorOn(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		table  string
		column string
		want   bool
	}{
		{
			name:   "mysql 8 names the qualified index",
			err:    stderrors.New("Error 1062 (23000): Duplicate entry 'TCK-7' for key 'tickets.idx_tickets_key'"),
			table:  "tickets",
			column: "key",
			want:   true,
		},
		{
			name:   "mysql 5.7 names the bare index",
			err:    stderrors.New("Error 1062: Duplicate entry 'TCK-7' for key 'idx_tickets_key'"),
			table:  "tickets",
			column: "key",
			want:   true,
		},
		{
			name:   "sqlite names the qualified column",
			err:    stderrors.New("UNIQUE constraint failed: tickets.key"),
			table:  "tickets",
			column: "key",
			want:   true,
		},
		{
			name:   "mysql violation on a different index is not a key collision",
			err:    stderrors.New("Error 1062 (23000): Duplicate entry 'a@b.c' for key 'users.idx_users_email'"),
			table:  "tickets",
			column: "key",
			want:   false,
		},
		{
			name:   "sqlite violation on a different column is not a key collision",
			err:    stderrors.New("UNIQUE constraint failed: tokens.jti"),
			table:  "tickets",
			column: "key",
			want:   false,
		},
		{
			name:   "non-duplicate error",
			err:    stderrors.New("Error 1146: Table 'helpdesk.tickets' doesn't exist"),
			table:  "tickets",
			column: "key",
			want:   false,
		},
		{
			name:   "nil error",
			err:    nil,
			table:  "tickets",
			column: "key",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateErrorOn(tt.err, tt.table, tt.column))
		})
	}
}

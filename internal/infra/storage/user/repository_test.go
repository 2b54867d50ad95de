package user

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMapConstraintError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"username", &pq.Error{Code: "23505", Constraint: "users_username_key"}, ErrUsernameTaken},
		{"email", &pq.Error{Code: "23505", Constraint: "users_email_key"}, ErrEmailTaken},
		{"bookings reference", &pq.Error{Code: "23503", Constraint: "bookings_barber_id_fkey"}, ErrUserInUse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapConstraintError(tt.err), tt.wantErr)
		})
	}

	assert.Nil(t, mapConstraintError(&pq.Error{Code: "23505", Constraint: "something_else"}))
	assert.Nil(t, mapConstraintError(errors.New("plain")))
}

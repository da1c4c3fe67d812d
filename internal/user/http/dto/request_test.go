package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/passvault/internal/errors"
)

func TestCredentialsRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request CredentialsRequest
		wantErr bool
	}{
		{name: "valid", request: CredentialsRequest{Username: "alice", Password: "Secr3t!"}},
		{name: "missing username", request: CredentialsRequest{Password: "Secr3t!"}, wantErr: true},
		{name: "blank username", request: CredentialsRequest{Username: "  ", Password: "Secr3t!"}, wantErr: true},
		{name: "missing password", request: CredentialsRequest{Username: "alice"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCredentialsRequest_Conversions(t *testing.T) {
	req := CredentialsRequest{Username: "alice", Password: "Secr3t!"}

	assert.Equal(t, "alice", req.ToRegisterUserInput().Username)
	assert.Equal(t, "Secr3t!", req.ToLoginInput().Password)
}

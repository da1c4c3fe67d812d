// Package dto provides data transfer objects for the registration and login endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	userDomain "github.com/allisson/passvault/internal/user/domain"
	appValidation "github.com/allisson/passvault/internal/validation"
)

// CredentialsRequest is the body of both POST /v1/register and POST /v1/login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (r *CredentialsRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// ToRegisterUserInput converts the request into use case input.
func (r CredentialsRequest) ToRegisterUserInput() userDomain.RegisterUserInput {
	return userDomain.RegisterUserInput{Username: r.Username, Password: r.Password}
}

// ToLoginInput converts the request into use case input.
func (r CredentialsRequest) ToLoginInput() userDomain.LoginInput {
	return userDomain.LoginInput{Username: r.Username, Password: r.Password}
}

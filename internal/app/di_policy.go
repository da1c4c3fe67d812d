package app

import (
	"fmt"

	policyHTTP "github.com/allisson/passvault/internal/policy/http"
	policyService "github.com/allisson/passvault/internal/policy/service"
	policyUseCase "github.com/allisson/passvault/internal/policy/usecase"
)

// PasswordPolicy returns the stateless generator and strength scorer. It needs
// no database, so the offline CLI commands use it directly.
func (c *Container) PasswordPolicy() *policyService.PasswordPolicy {
	c.passwordPolicyInit.Do(func() {
		c.passwordPolicy = policyService.NewPasswordPolicy()
	})
	return c.passwordPolicy
}

// PolicyUseCase returns the password policy use case, decorated with metrics.
func (c *Container) PolicyUseCase() (policyUseCase.PolicyUseCase, error) {
	c.policyUseCaseInit.Do(func() {
		bm, err := c.BusinessMetrics()
		if err != nil {
			c.setErr("policyUseCase", fmt.Errorf("failed to get business metrics for policy use case: %w", err))
			return
		}
		c.policyUseCase = policyUseCase.NewPolicyUseCaseWithMetrics(
			policyUseCase.NewPolicyUseCase(c.PasswordPolicy()),
			bm,
		)
	})
	if err := c.getErr("policyUseCase"); err != nil {
		return nil, err
	}
	return c.policyUseCase, nil
}

// PolicyHandler returns the generate-password and check-strength handlers.
func (c *Container) PolicyHandler() (*policyHTTP.PolicyHandler, error) {
	uc, err := c.PolicyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy use case for policy handler: %w", err)
	}
	return policyHTTP.NewPolicyHandler(uc, c.Logger()), nil
}

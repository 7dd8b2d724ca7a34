package app

import (
	"fmt"
	"log/slog"

	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	fieldHTTP "github.com/allisson/fieldcrypt/internal/field/http"
	fieldUseCase "github.com/allisson/fieldcrypt/internal/field/usecase"
)

// Policy returns the entity policy: the file named by POLICY_FILE, or the default table.
func (c *Container) Policy() (*fieldDomain.Policy, error) {
	var err error
	c.policyInit.Do(func() {
		c.policy, err = c.initPolicy()
		if err != nil {
			c.initErrors["policy"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["policy"]; exists {
		return nil, storedErr
	}
	return c.policy, nil
}

// FieldUseCase returns the field use case wrapped with metrics.
func (c *Container) FieldUseCase() (fieldUseCase.FieldUseCase, error) {
	var err error
	c.fieldUseCaseInit.Do(func() {
		c.fieldUseCase, err = c.initFieldUseCase()
		if err != nil {
			c.initErrors["fieldUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldUseCase"]; exists {
		return nil, storedErr
	}
	return c.fieldUseCase, nil
}

// FieldHandler returns the HTTP handler for field and document endpoints.
func (c *Container) FieldHandler() (*fieldHTTP.FieldHandler, error) {
	var err error
	c.fieldHandlerInit.Do(func() {
		c.fieldHandler, err = c.initFieldHandler()
		if err != nil {
			c.initErrors["fieldHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldHandler"]; exists {
		return nil, storedErr
	}
	return c.fieldHandler, nil
}

func (c *Container) initPolicy() (*fieldDomain.Policy, error) {
	policy := fieldDomain.DefaultPolicy()

	if c.config.PolicyFile != "" {
		loaded, err := fieldDomain.LoadPolicyFile(c.config.PolicyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load policy file: %w", err)
		}
		policy = loaded
		c.Logger().Info("entity policy loaded",
			slog.String("path", c.config.PolicyFile),
			slog.Int("entity_count", len(policy.Entities)))
	}

	policy.Strict = c.config.PolicyStrict
	return policy, nil
}

func (c *Container) initFieldUseCase() (fieldUseCase.FieldUseCase, error) {
	cipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for field use case: %w", err)
	}

	hasher, err := c.DocumentHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get document hasher for field use case: %w", err)
	}

	policy, err := c.Policy()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy for field use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for field use case: %w", err)
	}

	useCase := fieldUseCase.NewFieldUseCase(cipher, hasher, policy, businessMetrics, c.Logger())
	return fieldUseCase.NewFieldUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initFieldHandler() (*fieldHTTP.FieldHandler, error) {
	useCase, err := c.FieldUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get field use case for field handler: %w", err)
	}
	return fieldHTTP.NewFieldHandler(useCase, c.Logger()), nil
}

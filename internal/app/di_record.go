package app

import (
	"fmt"

	"github.com/allisson/fieldcrypt/internal/database"
	recordHTTP "github.com/allisson/fieldcrypt/internal/record/http"
	recordRepository "github.com/allisson/fieldcrypt/internal/record/repository"
	recordMySQL "github.com/allisson/fieldcrypt/internal/record/repository/mysql"
	recordUseCase "github.com/allisson/fieldcrypt/internal/record/usecase"
)

// RecordRepository returns the record repository for the configured driver.
func (c *Container) RecordRepository() (recordUseCase.RecordRepository, error) {
	var err error
	c.recordRepoInit.Do(func() {
		c.recordRepo, err = c.initRecordRepository()
		if err != nil {
			c.initErrors["recordRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordRepo"]; exists {
		return nil, storedErr
	}
	return c.recordRepo, nil
}

// RecordUseCase returns the record use case wrapped with metrics.
func (c *Container) RecordUseCase() (recordUseCase.RecordUseCase, error) {
	var err error
	c.recordUseCaseInit.Do(func() {
		c.recordUseCase, err = c.initRecordUseCase()
		if err != nil {
			c.initErrors["recordUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordUseCase"]; exists {
		return nil, storedErr
	}
	return c.recordUseCase, nil
}

// RecordHandler returns the HTTP handler for record endpoints.
func (c *Container) RecordHandler() (*recordHTTP.RecordHandler, error) {
	var err error
	c.recordHandlerInit.Do(func() {
		c.recordHandler, err = c.initRecordHandler()
		if err != nil {
			c.initErrors["recordHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordHandler"]; exists {
		return nil, storedErr
	}
	return c.recordHandler, nil
}

func (c *Container) initRecordRepository() (recordUseCase.RecordRepository, error) {
	if err := database.ValidateDriver(c.config.DBDriver); err != nil {
		return nil, err
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for record repository: %w", err)
	}

	if c.config.DBDriver == database.DriverMySQL {
		return recordMySQL.NewMySQLRecordRepository(db), nil
	}
	return recordRepository.NewPostgreSQLRecordRepository(db), nil
}

func (c *Container) initRecordUseCase() (recordUseCase.RecordUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for record use case: %w", err)
	}

	recordRepo, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for record use case: %w", err)
	}

	fieldUseCase, err := c.FieldUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get field use case for record use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for record use case: %w", err)
	}

	useCase := recordUseCase.NewRecordUseCase(txManager, recordRepo, fieldUseCase)
	return recordUseCase.NewRecordUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initRecordHandler() (*recordHTTP.RecordHandler, error) {
	useCase, err := c.RecordUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get record use case for record handler: %w", err)
	}
	return recordHTTP.NewRecordHandler(useCase, c.Logger()), nil
}

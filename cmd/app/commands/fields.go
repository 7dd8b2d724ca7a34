package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	cryptoService "github.com/allisson/fieldcrypt/internal/crypto/service"
	fieldDomain "github.com/allisson/fieldcrypt/internal/field/domain"
	fieldUseCase "github.com/allisson/fieldcrypt/internal/field/usecase"
)

// RunHashDocument prints the lookup hash of document. Formatting characters are ignored;
// a document without digits is rejected.
func RunHashDocument(
	ctx context.Context,
	useCase fieldUseCase.FieldUseCase,
	writer io.Writer,
	document string,
	format string,
) error {
	if cryptoService.NormalizeDocument(document) == "" {
		return errors.New("document must contain at least one digit")
	}

	hash := useCase.HashDocument(ctx, document)

	if format == "json" {
		return writeJSON(writer, map[string]string{"hash": hash})
	}
	_, _ = fmt.Fprintln(writer, hash)
	return nil
}

// RunEncryptFields encrypts the policy fields of a JSON record and prints the protected
// form. Binary companions are printed as base64 strings.
func RunEncryptFields(
	ctx context.Context,
	useCase fieldUseCase.FieldUseCase,
	streams IOTuple,
	entityType string,
	recordJSON string,
) error {
	record, err := readRecord(streams.Reader, recordJSON)
	if err != nil {
		return err
	}

	out, err := useCase.EncryptFields(ctx, record, entityType)
	if err != nil {
		return fmt.Errorf("failed to encrypt fields: %w", err)
	}

	return writeJSON(streams.Writer, out)
}

// RunDecryptFields restores the policy fields of a protected JSON record. Fields that
// fail to decrypt are left out of the output.
func RunDecryptFields(
	ctx context.Context,
	useCase fieldUseCase.FieldUseCase,
	streams IOTuple,
	entityType string,
	recordJSON string,
) error {
	record, err := readRecord(streams.Reader, recordJSON)
	if err != nil {
		return err
	}

	out, err := useCase.DecryptFields(ctx, record, entityType)
	if err != nil {
		return fmt.Errorf("failed to decrypt fields: %w", err)
	}

	return writeJSON(streams.Writer, out)
}

// RunShowPolicy prints the active entity policy as YAML (the POLICY_FILE format) or JSON.
func RunShowPolicy(policy *fieldDomain.Policy, writer io.Writer, format string) error {
	switch format {
	case "json":
		return writeJSON(writer, policy)
	case "yaml", "":
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(policy); err != nil {
			return fmt.Errorf("failed to encode policy: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("invalid format: %s (valid options: yaml, json)", format)
	}
}

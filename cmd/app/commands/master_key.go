package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/fieldcrypt/internal/crypto/domain"
	cryptoService "github.com/allisson/fieldcrypt/internal/crypto/service"
)

// RunCreateMasterKey generates a 32-byte field encryption master key and prints it as
// environment variables. With kmsKeyURI set the key is wrapped by the KMS first and the
// printed value is the KMS ciphertext. Key material is zeroed after encoding.
//
// For local development a base64key:// URI works; production should use a cloud KMS
// (gcpkms, awskms, azurekeyvault) or hashivault.
func RunCreateMasterKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
) error {
	masterKey, err := cryptoDomain.GenerateMasterKeyMaterial()
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(masterKey)

	if kmsKeyURI == "" {
		_, _ = fmt.Fprintln(writer, "# Master Key Configuration (plain mode)")
		_, _ = fmt.Fprintln(writer, "# Store this value in your secrets manager; never commit it")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(
			writer,
			"FIELD_ENCRYPTION_MASTER_KEY=\"%s\"\n",
			base64.StdEncoding.EncodeToString(masterKey),
		)
		logger.Info("master key generated", slog.String("mode", "plain"))
		return nil
	}

	ciphertext, err := kmsService.WrapKey(ctx, kmsKeyURI, masterKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# Master Key Configuration (KMS mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(
		writer,
		"FIELD_ENCRYPTION_MASTER_KEY=\"%s\"\n",
		base64.StdEncoding.EncodeToString(ciphertext),
	)
	_, _ = fmt.Fprintln(writer, "REQUIRE_MASTER_KEY=\"true\"")

	logger.Info("master key generated", slog.String("mode", "kms"))
	return nil
}

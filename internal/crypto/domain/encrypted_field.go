package domain

// EncryptedField is the stored form of one sensitive value.
//
// Salt must be persisted next to Ciphertext: the field key is rebuilt from the master
// key and the salt, so a lost salt means a lost value. The zero value is the empty
// sentinel returned when encrypting an empty plaintext.
type EncryptedField struct {
	Ciphertext []byte // algorithm byte || nonce || sealed (ciphertext and AEAD tag)
	Salt       []byte // SaltSize random bytes, unique per encryption
}

// IsEmpty reports whether the field is the empty sentinel (or lost either half).
func (e EncryptedField) IsEmpty() bool {
	return len(e.Ciphertext) == 0 || len(e.Salt) == 0
}

// FailureReason classifies why a decryption produced no plaintext.
type FailureReason string

const (
	// FailureEmptyInput means the ciphertext or the salt was missing.
	FailureEmptyInput FailureReason = "empty_input"

	// FailureAuthentication means tag verification failed: tampered data or wrong master key.
	FailureAuthentication FailureReason = "authentication_failed"

	// FailureMalformed means the input had the wrong shape (salt size, truncated
	// ciphertext, plaintext that is not UTF-8).
	FailureMalformed FailureReason = "malformed"
)

// DecryptResult is the outcome of decrypting an EncryptedField.
//
// Decryption never returns an error to callers. A failed result carries a reason for
// metrics and tests only; it never includes cipher error detail.
type DecryptResult struct {
	plaintext string
	reason    FailureReason
	ok        bool
}

// DecryptOk builds a successful result.
func DecryptOk(plaintext string) DecryptResult {
	return DecryptResult{plaintext: plaintext, ok: true}
}

// DecryptFailed builds a failed result.
func DecryptFailed(reason FailureReason) DecryptResult {
	return DecryptResult{reason: reason}
}

// Ok reports whether decryption produced plaintext.
func (r DecryptResult) Ok() bool {
	return r.ok
}

// Plaintext returns the plaintext and true on success, or "" and false otherwise.
func (r DecryptResult) Plaintext() (string, bool) {
	return r.plaintext, r.ok
}

// Reason returns the failure reason, or "" for a successful result.
func (r DecryptResult) Reason() FailureReason {
	return r.reason
}

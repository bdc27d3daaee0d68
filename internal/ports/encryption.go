package ports

// EncryptionService encrypts store credentials before they reach the
// persistent store.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer protects small secrets that users hand to the server, such as a
// personal translation service key, while they are stored in the profile
// settings document.
type Sealer interface {
	// Seal encrypts plaintext and returns a printable token that starts
	// with SealedPrefix. Sealing an already sealed value returns it
	// unchanged.
	Seal(plaintext string) (string, error)

	// Open reverses Seal. Values without SealedPrefix are returned as is so
	// that keys written before sealing was enabled keep working.
	Open(sealed string) (string, error)
}

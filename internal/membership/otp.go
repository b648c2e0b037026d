// internal/membership/otp.go
package membership

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrVerificationNotFound = errors.New("verification not found")
	ErrVerificationExpired  = errors.New("verification code expired")
	ErrCodeMismatch         = errors.New("verification code mismatch")
)

type challenge struct {
	token     string
	code      string
	input     RegistrationInput
	expiresAt time.Time
}

// otpRegistry holds pending registration challenges in memory. Challenges
// are single-use: redeeming one removes it whether or not the code
// matched, so a code cannot be brute-forced against the same token.
type otpRegistry struct {
	mu   sync.Mutex
	ttl  time.Duration
	open map[string]challenge
}

func newOTPRegistry(ttl time.Duration) *otpRegistry {
	return &otpRegistry{
		ttl:  ttl,
		open: make(map[string]challenge),
	}
}

func (r *otpRegistry) issue(input RegistrationInput) (challenge, error) {
	code, err := generateCode()
	if err != nil {
		return challenge{}, err
	}
	c := challenge{
		token:     uuid.NewString(),
		code:      code,
		input:     input,
		expiresAt: time.Now().Add(r.ttl),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for token, open := range r.open {
		if time.Now().After(open.expiresAt) {
			delete(r.open, token)
		}
	}
	r.open[c.token] = c
	return c, nil
}

func (r *otpRegistry) redeem(token, code string) (RegistrationInput, error) {
	r.mu.Lock()
	c, ok := r.open[token]
	delete(r.open, token)
	r.mu.Unlock()

	if !ok {
		return RegistrationInput{}, ErrVerificationNotFound
	}
	if time.Now().After(c.expiresAt) {
		return RegistrationInput{}, ErrVerificationExpired
	}
	if subtle.ConstantTimeCompare([]byte(c.code), []byte(code)) != 1 {
		return RegistrationInput{}, ErrCodeMismatch
	}
	return c.input, nil
}

// generateCode produces a 6-digit one-time code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

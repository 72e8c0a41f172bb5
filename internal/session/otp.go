package session

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
)

// codeTTL is how long an issued OTP code stays valid.
const codeTTL = 10 * time.Minute

// Sender delivers an OTP code to an email address. Delivery (SMTP) is an
// external collaborator; tests substitute a recorder.
type Sender interface {
	Send(email, code string) error
}

type issuedCode struct {
	requestID string
	code      string
	expires   time.Time
}

// OTPService issues and verifies one-time codes gating adjustment
// workflows. Codes are 6-digit, valid for 10 minutes, and single-use:
// a successful verification consumes the code.
type OTPService struct {
	sender Sender
	now    func() time.Time

	mu    sync.Mutex
	codes map[string]issuedCode // keyed by email; newest code wins
}

// NewOTPService creates a service delivering through sender.
func NewOTPService(sender Sender) *OTPService {
	return &OTPService{
		sender: sender,
		now:    time.Now,
		codes:  map[string]issuedCode{},
	}
}

// Request issues a fresh code for email and sends it. A prior unexpired
// code for the same email is superseded. Returns the request identifier
// for audit logging.
func (s *OTPService) Request(email string) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	issued := issuedCode{
		requestID: uuid.Must(uuid.NewV7()).String(),
		code:      code,
		expires:   s.now().Add(codeTTL),
	}

	if err := s.sender.Send(email, code); err != nil {
		return "", fmt.Errorf("send otp: %w", err)
	}

	s.mu.Lock()
	s.codes[email] = issued
	s.mu.Unlock()

	return issued.requestID, nil
}

// Verify checks input against the outstanding code for email. A match
// consumes the code; expired or unknown codes fail. The boolean is the
// go/no-go gate result, the string a human-readable reason on failure.
func (s *OTPService) Verify(email, input string) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issued, ok := s.codes[email]
	if !ok {
		return false, "no code requested"
	}
	if s.now().After(issued.expires) {
		delete(s.codes, email)
		return false, "code expired"
	}
	if issued.code != input {
		return false, "incorrect code"
	}
	delete(s.codes, email)
	return true, ""
}

// CleanupExpired drops expired codes. Callers may run this periodically;
// Verify also drops expired codes lazily.
func (s *OTPService) CleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for email, issued := range s.codes {
		if now.After(issued.expires) {
			delete(s.codes, email)
		}
	}
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

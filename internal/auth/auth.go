package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const (
	serviceName      = "xactions"
	authTokenAccount = "auth-token"
	ct0Account       = "ct0"
	AuthTokenEnvVar  = "XACTIONS_AUTH_TOKEN"
	CT0EnvVar        = "XACTIONS_CT0"
)

// Credentials are the two cookies that identify a logged-in web session.
type Credentials struct {
	AuthToken string
	CT0       string
}

// Complete reports whether both cookies are present.
func (c Credentials) Complete() bool {
	return c.AuthToken != "" && c.CT0 != ""
}

var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// Load returns stored credentials and where they came from. Environment
// variables are consulted only when allowEnv is set and the keychain is empty.
func Load(allowEnv bool) (Credentials, string) {
	creds := Credentials{
		AuthToken: readKeyring(authTokenAccount),
		CT0:       readKeyring(ct0Account),
	}
	if creds.Complete() {
		return creds, "Keychain"
	}
	if allowEnv {
		if env, ok := LoadEnv(); ok {
			return env, "Environment Variable"
		}
	}
	return Credentials{}, ""
}

// LoadEnv reads credentials from the environment only.
func LoadEnv() (Credentials, bool) {
	creds := Credentials{
		AuthToken: strings.TrimSpace(os.Getenv(AuthTokenEnvVar)),
		CT0:       strings.TrimSpace(os.Getenv(CT0EnvVar)),
	}
	return creds, creds.Complete()
}

func readKeyring(account string) string {
	v, err := keyringGet(serviceName, account)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// Save stores both cookies in the OS keychain.
func Save(creds Credentials) error {
	if !creds.Complete() {
		return fmt.Errorf("both auth_token and ct0 are required")
	}
	if err := keyringSet(serviceName, authTokenAccount, strings.TrimSpace(creds.AuthToken)); err != nil {
		return err
	}
	return keyringSet(serviceName, ct0Account, strings.TrimSpace(creds.CT0))
}

// Delete removes stored cookies. Missing entries are not an error.
func Delete() error {
	var errs []error
	for _, account := range []string{authTokenAccount, ct0Account} {
		if err := keyringDelete(serviceName, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetStatus returns whether a complete session exists in the keychain.
func GetStatus() bool {
	return readKeyring(authTokenAccount) != "" && readKeyring(ct0Account) != ""
}

// PromptForSecret reads a value from the terminal without echo.
func PromptForSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(raw)), nil
}

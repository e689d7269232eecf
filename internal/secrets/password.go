package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// "Service" groups this app's secrets in the OS keychain.
	KeyringService = "internwatch"
)

// GetSMTPPassword resolves the notifier's SMTP password: OS keyring first,
// EMAIL_PASSWORD env as the headless fallback (CI runners have no
// keychain).
func GetSMTPPassword(account string) (string, error) {
	if strings.TrimSpace(account) != "" {
		pw, err := keyring.Get(KeyringService, account)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}

	if pw := strings.TrimSpace(os.Getenv("EMAIL_PASSWORD")); pw != "" {
		return pw, nil
	}

	return "", errors.New("SMTP password not found (set it in keychain or EMAIL_PASSWORD)")
}

func SetSMTPPassword(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

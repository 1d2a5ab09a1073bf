package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "jobportal"

	apiKeyEnv = "GOOGLE_SEARCH_API_KEY"
)

// GetSearchAPIKey resolves the image-search API key: OS keychain first,
// environment second.
func GetSearchAPIKey(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		key, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(key) != "" {
			return key, nil
		}
	}

	if key := strings.TrimSpace(os.Getenv(apiKeyEnv)); key != "" {
		return key, nil
	}

	return "", errors.New("image search API key not found (set it in keychain or via " + apiKeyEnv + ")")
}

func SetSearchAPIKey(keyringAccount, key string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

func DeleteSearchAPIKey(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

// SearchKeyringAccount names the keychain slot for a given search engine
// id, so switching engines never reads a stale key.
func SearchKeyringAccount(cx string) string {
	return fmt.Sprintf("jobportal:search:%s", cx)
}

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	content := `FIREBASE_CREDENTIALS_FILE=./service-account.json
FIREBASE_DATABASE_URL=https://basic-birthdays-app-default-rtdb.firebaseio.com
REDIS_SERVER_ADDRESS=localhost:6379
`
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "./service-account.json", config.FirebaseCredentialsFile)
	assert.Equal(t, "https://basic-birthdays-app-default-rtdb.firebaseio.com", config.FirebaseDatabaseURL)
	assert.Equal(t, "localhost:6379", config.RedisServerAddress)
	assert.Equal(t, "0.0.0.0:8080", config.HTTPServerAddress, "default applies")
	assert.Equal(t, "30 9 * * 1", config.DigestCronSpec, "default matches the production schedule")
}

func TestValidateConfig(t *testing.T) {
	valid := Config{
		FirebaseCredentialsFile: "./service-account.json",
		FirebaseDatabaseURL:     "https://example.firebaseio.com",
		RedisServerAddress:      "localhost:6379",
	}

	assert.NoError(t, validateConfig(valid))

	missingCreds := valid
	missingCreds.FirebaseCredentialsFile = ""
	assert.Error(t, validateConfig(missingCreds))

	missingDatabase := valid
	missingDatabase.FirebaseDatabaseURL = ""
	assert.Error(t, validateConfig(missingDatabase))

	missingRedis := valid
	missingRedis.RedisServerAddress = ""
	assert.Error(t, validateConfig(missingRedis))

	tokenWithoutChannel := valid
	tokenWithoutChannel.DiscordBotToken = "bot-token"
	assert.Error(t, validateConfig(tokenWithoutChannel))
}

package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeys(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return priv
}

func writeTestKeyPair(t *testing.T) (privPath, pubPath string) {
	t.Helper()
	priv := testKeys(t)
	dir := t.TempDir()

	privPath = filepath.Join(dir, "private.pem")
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))

	pubPath = filepath.Join(dir, "public.pem")
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0o600))

	return privPath, pubPath
}

func TestLoadAndBuild(t *testing.T) {
	privPath, pubPath := writeTestKeyPair(t)

	mgr, err := LoadAndBuild(Config{
		PrivPath: privPath,
		PubPath:  pubPath,
		Issuer:   "carrental-service",
		Audience: "carrental-staff",
		TTL:      time.Hour,
		KID:      "test-key",
	})
	require.NoError(t, err)

	tokenString, jti, err := mgr.Generator.Generate(7, "agent.smith", "agent")
	require.NoError(t, err)

	claims, err := mgr.Verifier.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestLoadAndBuildMissingKey(t *testing.T) {
	_, pubPath := writeTestKeyPair(t)

	_, err := LoadAndBuild(Config{
		PrivPath: filepath.Join(t.TempDir(), "missing.pem"),
		PubPath:  pubPath,
		Issuer:   "carrental-service",
		Audience: "carrental-staff",
		TTL:      time.Hour,
	})
	assert.Error(t, err)
}

func TestGenerateAndVerify(t *testing.T) {
	priv := testKeys(t)
	gen := NewGenerator(priv, "carrental-service", "carrental-staff", "test-key", time.Hour)
	ver := NewVerifier(&priv.PublicKey, "carrental-service", "carrental-staff")

	tokenString, jti, err := gen.Generate(42, "agent.smith", "agent")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := ver.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "agent.smith", claims.Username)
	assert.Equal(t, "agent", claims.Role)
	assert.Equal(t, jti, claims.ID)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	gen := NewGenerator(testKeys(t), "carrental-service", "carrental-staff", "test-key", time.Hour)
	other := testKeys(t)
	ver := NewVerifier(&other.PublicKey, "carrental-service", "carrental-staff")

	tokenString, _, err := gen.Generate(1, "admin", "admin")
	require.NoError(t, err)

	_, err = ver.Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	priv := testKeys(t)
	gen := NewGenerator(priv, "carrental-service", "other-audience", "test-key", time.Hour)
	ver := NewVerifier(&priv.PublicKey, "carrental-service", "carrental-staff")

	tokenString, _, err := gen.Generate(1, "admin", "admin")
	require.NoError(t, err)

	_, err = ver.Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	priv := testKeys(t)
	gen := NewGenerator(priv, "carrental-service", "carrental-staff", "test-key", -time.Minute)
	ver := NewVerifier(&priv.PublicKey, "carrental-service", "carrental-staff")

	tokenString, _, err := gen.Generate(1, "admin", "admin")
	require.NoError(t, err)

	_, err = ver.Verify(tokenString)
	assert.Error(t, err)
}

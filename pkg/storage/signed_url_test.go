package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignerRoundTrip(t *testing.T) {
	signer := NewSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("exp-1", "pending-payments-2026-09-01.csv")
	require.NoError(t, err)
	require.True(t, expiresAt.After(time.Now()))

	id, path, _, err := signer.Parse(token, false)
	require.NoError(t, err)
	require.Equal(t, "exp-1", id)
	require.Equal(t, "pending-payments-2026-09-01.csv", path)
}

func TestSignerRejectsTampering(t *testing.T) {
	signer := NewSigner("secret", time.Hour)
	token, _, err := signer.Generate("exp-1", "file.csv")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token+"x", false)
	require.Error(t, err)

	other := NewSigner("different", time.Hour)
	_, _, _, err = other.Parse(token, false)
	require.Error(t, err)
}

func TestSignerExpiry(t *testing.T) {
	signer := &Signer{secret: []byte("secret"), ttl: -time.Minute}
	token, _, err := signer.Generate("exp-1", "file.csv")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token, false)
	require.Error(t, err)

	_, path, _, err := signer.Parse(token, true)
	require.NoError(t, err)
	require.Equal(t, "file.csv", path)
}

package service

import (
	"context"
	"net/url"
	"slices"

	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// KMSSchemes lists the keeper URL schemes accepted in KMS_KEY_URI.
var KMSSchemes = []string{"gcpkms", "awskms", "azurekeyvault", "hashivault", "base64key"}

// OpenKMSKeeper opens the keeper that wraps the vault key file. Any failure,
// including an unknown scheme, is reported as a key provider failure since
// the server cannot start without it.
func OpenKMSKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	u, err := url.Parse(keyURI)
	if err != nil || u.Scheme == "" {
		return nil, keyProviderError("invalid KMS key URI", err)
	}
	if !slices.Contains(KMSSchemes, u.Scheme) {
		return nil, keyProviderError("unsupported KMS scheme "+u.Scheme, nil)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, keyProviderError("failed to open KMS keeper", err)
	}
	return keeper, nil
}

package redis

import (
	"context"
	"fmt"

	"github.com/viant/scy"
	"github.com/viant/scy/cred"
)

// ResolvePassword loads a password from a scy secret resource. Basic
// credentials yield their Password field; any other secret is used verbatim.
func ResolvePassword(ctx context.Context, URL, key string) (string, error) {
	resource := scy.NewResource(&cred.Basic{}, URL, key)
	secret, err := scy.New().Load(ctx, resource)
	if err != nil {
		return "", fmt.Errorf("failed to load redis secret from %s: %w", URL, err)
	}
	if basic, ok := secret.Target.(*cred.Basic); ok && basic.Password != "" {
		return basic.Password, nil
	}
	return secret.String(), nil
}

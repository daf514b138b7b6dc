package static

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

// Verifier resolves bearer tokens to owner ids from a static table loaded at
// startup. Pairs are configured as "token:owner,token:owner".
type Verifier struct {
	owners map[string]string
}

func NewVerifier(pairs string) (*Verifier, error) {
	owners := make(map[string]string)
	for _, pair := range strings.Split(pairs, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, owner, found := strings.Cut(pair, ":")
		if !found || token == "" || owner == "" {
			return nil, fmt.Errorf("malformed auth token pair %q", pair)
		}
		if _, dup := owners[token]; dup {
			return nil, fmt.Errorf("duplicate auth token")
		}
		owners[token] = owner
	}
	if len(owners) == 0 {
		return nil, fmt.Errorf("no auth token pairs configured")
	}
	return &Verifier{owners: owners}, nil
}

func (v *Verifier) VerifyToken(_ context.Context, token string) (string, error) {
	owner, ok := v.owners[token]
	if !ok {
		return "", domain.WrapError(domain.ErrUnauthorized, "verify token", fmt.Errorf("unknown token"))
	}
	return owner, nil
}

package auth

import (
	"errors"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

var ErrInvalidGoogleToken = errors.New("invalid google id token")

type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

type GoogleVerifier interface {
	Verify(idToken string) (*GoogleIdentity, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) Verify(idToken string) (*GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		return nil, ErrInvalidGoogleToken
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}
	if claimSet.Sub == "" || claimSet.Email == "" {
		return nil, ErrInvalidGoogleToken
	}

	return &GoogleIdentity{
		Subject: claimSet.Sub,
		Email:   claimSet.Email,
		Name:    claimSet.Name,
	}, nil
}

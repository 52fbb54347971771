package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// firebaseClient is the part of *auth.Client the provider relies on.
type firebaseClient interface {
	CreateUser(ctx context.Context, user *fbauth.UserToCreate) (*fbauth.UserRecord, error)
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// FirebaseProvider delegates identities to Firebase Authentication. Password
// sign-in goes through the Identity Toolkit REST API because the Admin SDK
// cannot check passwords.
type FirebaseProvider struct {
	Notifier
	client     firebaseClient
	apiKey     string
	adminEmail string
	signInURL  string
	httpClient *http.Client
}

// NewFirebaseProvider initialises the Admin SDK from a service account JSON.
func NewFirebaseProvider(ctx context.Context, projectID, credentialsJSON, apiKey, adminEmail string) (*FirebaseProvider, error) {
	if credentialsJSON == "" || apiKey == "" {
		return nil, errors.New("firebase credentials and api key are required")
	}
	opt := option.WithCredentialsJSON([]byte(credentialsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, errors.Wrap(err, "init firebase app")
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init firebase auth")
	}
	return newFirebaseProvider(client, apiKey, adminEmail), nil
}

func newFirebaseProvider(client firebaseClient, apiKey, adminEmail string) *FirebaseProvider {
	return &FirebaseProvider{
		client:     client,
		apiKey:     apiKey,
		adminEmail: adminEmail,
		signInURL:  signInEndpoint,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (p *FirebaseProvider) SignUp(ctx context.Context, email, password, displayName string) (Identity, error) {
	if err := ValidateSignUp(email, password); err != nil {
		return Identity{}, err
	}
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	rec, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return Identity{}, ErrEmailExists
		}
		return Identity{}, errors.Wrap(err, "firebase create user")
	}
	id := Identity{UID: rec.UID, Email: rec.Email, DisplayName: rec.DisplayName}
	id.Role = RoleFor(id.Email, p.adminEmail)
	p.Notify(id.UID, &id)
	return id, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type toolkitError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// toolkitCode extracts the error code from messages such as
// "TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been disabled".
func toolkitCode(message string) string {
	code, _, _ := strings.Cut(message, ":")
	return strings.TrimSpace(code)
}

type signInResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	if email == "" || password == "" {
		return Identity{}, ErrMissingFields
	}
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return Identity{}, errors.Wrap(err, "encode sign-in request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s?key=%s", p.signInURL, p.apiKey), bytes.NewBuffer(body))
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Identity{}, errors.Wrap(err, "identity toolkit unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return Identity{}, signInError(resp)
	}
	if resp.StatusCode != http.StatusOK {
		return Identity{}, errors.Errorf("sign-in failed (status %d)", resp.StatusCode)
	}
	var result signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Identity{}, errors.Wrap(err, "decode sign-in response")
	}

	tok, err := p.client.VerifyIDToken(ctx, result.IDToken)
	if err != nil || tok.UID != result.LocalID {
		return Identity{}, ErrInvalidCredentials
	}
	id := Identity{UID: result.LocalID, Email: result.Email, DisplayName: result.DisplayName}
	id.Role = RoleFor(id.Email, p.adminEmail)
	p.Notify(id.UID, &id)
	return id, nil
}

func signInError(resp *http.Response) error {
	var body toolkitError
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return errors.Wrap(err, "decode sign-in error")
	}
	switch code := toolkitCode(body.Error.Message); code {
	case "INVALID_PASSWORD", "EMAIL_NOT_FOUND", "INVALID_LOGIN_CREDENTIALS":
		return ErrInvalidCredentials
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return ErrTooManyAttempts
	default:
		return errors.Errorf("sign-in rejected: %s", code)
	}
}

// SignOut revokes the user's refresh tokens so other devices drop too.
func (p *FirebaseProvider) SignOut(ctx context.Context, uid string) error {
	if err := p.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return errors.Wrap(err, "firebase revoke tokens")
	}
	p.Notify(uid, nil)
	return nil
}

package speech

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"murmur/audio"
	"murmur/types"
)

// ErrValidation marks transcription requests rejected by the audio
// validator before reaching the backend.
var ErrValidation = errors.New("audio validation failed")

// requiredCredentialFields are the keys a service account key file must
// carry to be usable.
var requiredCredentialFields = []string{"type", "project_id", "private_key_id", "private_key", "client_email"}

// AuthStatus describes the client's authentication state for diagnostics.
type AuthStatus struct {
	Authenticated        bool   `json:"is_authenticated"`
	CredentialsValidated bool   `json:"credentials_validated"`
	CredentialsPath      string `json:"credentials_path,omitempty"`
	ProjectID            string `json:"project_id,omitempty"`
}

// Client fronts the speech backend. It owns credential validation and acts
// as a precondition gate: every transcription request passes through the
// audio validator before reaching the Transcriber.
type Client struct {
	credentialsPath string
	projectID       string

	validator   *audio.Validator
	transcriber Transcriber

	authenticated        bool
	credentialsValidated bool
}

// NewClient creates a speech client. credentialsPath may be empty, in which
// case GOOGLE_APPLICATION_CREDENTIALS is consulted on first use.
func NewClient(credentialsPath string, validator *audio.Validator, transcriber Transcriber) *Client {
	return &Client{
		credentialsPath: credentialsPath,
		validator:       validator,
		transcriber:     transcriber,
	}
}

// credentials is the subset of the service account key the client inspects.
type credentials struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
}

// validateCredentialsFile parses the key file and checks the fields the
// backend requires.
func validateCredentialsFile(path string) (*credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("credentials file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("credentials file is not valid JSON: %w", err)
	}

	var missing []string
	for _, field := range requiredCredentialFields {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("invalid credentials file, missing fields: %v", missing)
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("credentials file is not valid JSON: %w", err)
	}
	if creds.Type != "service_account" {
		return nil, fmt.Errorf("credentials file must be a service account key, got type %q", creds.Type)
	}
	return &creds, nil
}

// Authenticate validates the configured credentials and records the project
// ID. It is idempotent and called lazily by Transcribe and Available.
func (c *Client) Authenticate() error {
	if c.authenticated {
		return nil
	}

	path := c.credentialsPath
	if path == "" {
		path = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if path == "" {
		return fmt.Errorf("no credentials found: set GOOGLE_APPLICATION_CREDENTIALS or configure a credentials path")
	}

	creds, err := validateCredentialsFile(path)
	if err != nil {
		return err
	}

	c.credentialsPath = path
	c.credentialsValidated = true
	c.authenticated = true
	if c.projectID == "" {
		c.projectID = creds.ProjectID
	}
	log.Printf("Speech client authenticated for project %s", c.projectID)
	return nil
}

// Available reports whether the backend can be reached with the current
// credentials.
func (c *Client) Available() bool {
	if err := c.Authenticate(); err != nil {
		log.Printf("Speech service not available: %v", err)
		return false
	}
	return true
}

// AuthStatus returns the current authentication state.
func (c *Client) AuthStatus() AuthStatus {
	path := c.credentialsPath
	if path == "" {
		path = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	return AuthStatus{
		Authenticated:        c.authenticated,
		CredentialsValidated: c.credentialsValidated,
		CredentialsPath:      path,
		ProjectID:            c.projectID,
	}
}

// Transcriber returns the backing implementation, for status reporting.
func (c *Client) Transcriber() Transcriber { return c.transcriber }

// Transcribe validates the file and delegates to the configured Transcriber.
// Validation failures are terminal; they surface as an error carrying the
// validator's message.
func (c *Client) Transcribe(ctx context.Context, path string, languageCode string) (*types.TranscriptionResult, error) {
	result := c.validator.Validate(path)
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrValidation, result.Message)
	}

	info, err := c.validator.GetInfo(path)
	if err != nil {
		return nil, err
	}

	tr, err := c.transcriber.Transcribe(ctx, path, languageCode)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	return &types.TranscriptionResult{
		RequestID:    uuid.New().String(),
		Transcript:   tr.Transcript,
		Confidence:   tr.Confidence,
		LanguageCode: tr.LanguageCode,
		Method:       c.transcriber.Name(),
		AudioInfo:    info,
	}, nil
}

package types

import "time"

// Store identifiers for the AWS backends a secret can live in.
const (
	StoreSecretsManager = "secretsmanager"
	StoreSSM            = "ssm"
)

// Secret represents secret metadata returned by a listing call
type Secret struct {
	Name      string    `json:"name"`       // Secret name or parameter path
	ARN       string    `json:"arn"`        // Provider-specific identifier
	CreatedAt time.Time `json:"created_at"` // Creation time
	UpdatedAt time.Time `json:"updated_at"` // Last update time
	Store     string    `json:"store"`      // secretsmanager or ssm
}

// StoreLabel returns a human-readable label for the backing store
func (s Secret) StoreLabel() string {
	switch s.Store {
	case StoreSSM:
		return "SSM Parameter"
	case StoreSecretsManager:
		return "Secrets Manager"
	default:
		return s.Store
	}
}

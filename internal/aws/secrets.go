package aws

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smTypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmTypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"

	"github.com/vietdv277/sm2env/pkg/provider"
	"github.com/vietdv277/sm2env/pkg/types"
)

// SecretsManagerAPI is the slice of the Secrets Manager client used by
// the store. Kept small so tests can inject fakes.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
}

// SSMAPI is the slice of the SSM client used by the store
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
}

// SecretsStore implements provider.SecretsProvider over AWS Secrets
// Manager and SSM Parameter Store. Names starting with / are Parameter
// Store paths; everything else goes to Secrets Manager.
type SecretsStore struct {
	sm  SecretsManagerAPI
	ssm SSMAPI
}

// NewSecretsStore creates a store backed by a Client's SDK clients
func NewSecretsStore(client *Client) *SecretsStore {
	return &SecretsStore{sm: client.SM, ssm: client.SSM}
}

// NewSecretsStoreWithClients creates a store with explicit API clients,
// used by tests to inject fakes
func NewSecretsStoreWithClients(sm SecretsManagerAPI, ssmClient SSMAPI) *SecretsStore {
	return &SecretsStore{sm: sm, ssm: ssmClient}
}

// Fetch returns the raw payload of a named secret
func (s *SecretsStore) Fetch(ctx context.Context, name string) (*provider.RawSecret, error) {
	if strings.HasPrefix(name, "/") {
		return s.fetchParameter(ctx, name)
	}
	return s.fetchSecret(ctx, name)
}

func (s *SecretsStore) fetchSecret(ctx context.Context, name string) (*provider.RawSecret, error) {
	output, err := s.sm.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &name,
	})
	if err != nil {
		return nil, classifyError(name, err)
	}

	raw := &provider.RawSecret{
		Name:    deref(output.Name),
		ARN:     deref(output.ARN),
		Version: deref(output.VersionId),
	}

	switch {
	case output.SecretString != nil:
		raw.Text = *output.SecretString
	case output.SecretBinary != nil:
		raw.Binary = output.SecretBinary
		raw.IsBinary = true
	default:
		return nil, &provider.FetchError{
			Kind: provider.ErrOther,
			Name: name,
			Err:  errors.New("secret has no string or binary payload"),
		}
	}

	return raw, nil
}

func (s *SecretsStore) fetchParameter(ctx context.Context, name string) (*provider.RawSecret, error) {
	output, err := s.ssm.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: boolPtr(true),
	})
	if err != nil {
		return nil, classifyError(name, err)
	}

	param := output.Parameter
	return &provider.RawSecret{
		Name:    deref(param.Name),
		ARN:     deref(param.ARN),
		Version: versionString(param.Version),
		Text:    deref(param.Value),
	}, nil
}

// List returns secrets from both stores whose names contain filter,
// sorted by name
func (s *SecretsStore) List(ctx context.Context, filter string) ([]types.Secret, error) {
	var secrets []types.Secret

	smSecrets, err := s.listSecretsManager(ctx)
	if err != nil {
		return nil, classifyError(filter, err)
	}
	secrets = append(secrets, smSecrets...)

	ssmSecrets, err := s.listParameters(ctx)
	if err != nil {
		return nil, classifyError(filter, err)
	}
	secrets = append(secrets, ssmSecrets...)

	if filter != "" {
		filtered := secrets[:0]
		for _, secret := range secrets {
			if strings.Contains(secret.Name, filter) {
				filtered = append(filtered, secret)
			}
		}
		secrets = filtered
	}

	sort.Slice(secrets, func(i, j int) bool {
		return secrets[i].Name < secrets[j].Name
	})

	return secrets, nil
}

func (s *SecretsStore) listSecretsManager(ctx context.Context) ([]types.Secret, error) {
	paginator := secretsmanager.NewListSecretsPaginator(s.sm, &secretsmanager.ListSecretsInput{})

	var secrets []types.Secret
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, entry := range page.SecretList {
			secret := types.Secret{
				Name:  deref(entry.Name),
				ARN:   deref(entry.ARN),
				Store: types.StoreSecretsManager,
			}
			if entry.CreatedDate != nil {
				secret.CreatedAt = *entry.CreatedDate
			}
			if entry.LastChangedDate != nil {
				secret.UpdatedAt = *entry.LastChangedDate
			}
			secrets = append(secrets, secret)
		}
	}

	return secrets, nil
}

func (s *SecretsStore) listParameters(ctx context.Context) ([]types.Secret, error) {
	paginator := ssm.NewDescribeParametersPaginator(s.ssm, &ssm.DescribeParametersInput{})

	var secrets []types.Secret
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, param := range page.Parameters {
			secret := types.Secret{
				Name:  deref(param.Name),
				ARN:   deref(param.Name), // DescribeParameters does not return ARNs
				Store: types.StoreSSM,
			}
			if param.LastModifiedDate != nil {
				secret.UpdatedAt = *param.LastModifiedDate
			}
			secrets = append(secrets, secret)
		}
	}

	return secrets, nil
}

// classifyError maps SDK failures onto the FetchError taxonomy
func classifyError(name string, err error) error {
	var alreadyClassified *provider.FetchError
	if errors.As(err, &alreadyClassified) {
		return err
	}

	var smNotFound *smTypes.ResourceNotFoundException
	var ssmNotFound *ssmTypes.ParameterNotFound
	if errors.As(err, &smNotFound) || errors.As(err, &ssmNotFound) {
		return &provider.FetchError{Kind: provider.ErrNotFound, Name: name, Err: err}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if isAccessDeniedCode(apiErr.ErrorCode()) {
			return &provider.FetchError{Kind: provider.ErrAccessDenied, Name: name, Err: err}
		}
		return &provider.FetchError{Kind: provider.ErrOther, Name: name, Err: err}
	}

	// No modeled API error means the request never got a response
	return &provider.FetchError{Kind: provider.ErrNetwork, Name: name, Err: err}
}

func isAccessDeniedCode(code string) bool {
	switch code {
	case "AccessDeniedException", "AccessDenied", "UnauthorizedOperation", "UnrecognizedClientException", "ExpiredTokenException":
		return true
	}
	return strings.Contains(code, "AccessDenied")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolPtr(b bool) *bool { return &b }

func versionString(v int64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

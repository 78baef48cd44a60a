package awsx

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/dmitrijs2005/regionfailover/internal/failover"
)

// CognitoAPI is the part of the Cognito client the directory uses.
type CognitoAPI interface {
	ListUsers(ctx context.Context, params *cognitoidentityprovider.ListUsersInput,
		optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ListUsersOutput, error)
}

// CognitoDirectory lists user pool users as identities.
type CognitoDirectory struct {
	api CognitoAPI
}

func NewCognitoDirectory(api CognitoAPI) *CognitoDirectory {
	return &CognitoDirectory{api: api}
}

// ListIdentities fetches one page of the pool. The page size is left to
// the service default.
func (d *CognitoDirectory) ListIdentities(ctx context.Context, poolRef, cursor string) (*failover.Page, error) {
	in := &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(poolRef),
	}
	if cursor != "" {
		in.PaginationToken = aws.String(cursor)
	}

	out, err := d.api.ListUsers(ctx, in)
	if err != nil {
		return nil, err
	}

	page := &failover.Page{
		Identities: make([]failover.IdentityRecord, 0, len(out.Users)),
		NextCursor: aws.ToString(out.PaginationToken),
	}
	for _, u := range out.Users {
		page.Identities = append(page.Identities, toIdentity(u))
	}
	return page, nil
}

func toIdentity(u types.UserType) failover.IdentityRecord {
	attrs := make(map[string]string, len(u.Attributes))
	for _, a := range u.Attributes {
		if a.Name == nil {
			continue
		}
		attrs[*a.Name] = aws.ToString(a.Value)
	}
	return failover.IdentityRecord{
		Username:   aws.ToString(u.Username),
		Attributes: attrs,
	}
}

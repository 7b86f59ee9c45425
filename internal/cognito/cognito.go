// Package cognito wraps the user-pool admin operations the API exposes.
package cognito

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// API is the subset of the identity-provider client the service calls.
type API interface {
	ListUsers(ctx context.Context, in *cip.ListUsersInput, optFns ...func(*cip.Options)) (*cip.ListUsersOutput, error)
	AdminCreateUser(ctx context.Context, in *cip.AdminCreateUserInput, optFns ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, in *cip.AdminSetUserPasswordInput, optFns ...func(*cip.Options)) (*cip.AdminSetUserPasswordOutput, error)
	AdminConfirmSignUp(ctx context.Context, in *cip.AdminConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.AdminConfirmSignUpOutput, error)
	AdminAddUserToGroup(ctx context.Context, in *cip.AdminAddUserToGroupInput, optFns ...func(*cip.Options)) (*cip.AdminAddUserToGroupOutput, error)
	AdminDeleteUser(ctx context.Context, in *cip.AdminDeleteUserInput, optFns ...func(*cip.Options)) (*cip.AdminDeleteUserOutput, error)
}

// User is the trimmed directory entry returned by ListUsers.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Status   string `json:"status,omitempty"`
	Enabled  bool   `json:"enabled"`
}

type Service struct {
	api        API
	userPoolID string
	// devEndpoint marks a local emulator pool, where created users must be
	// confirmed explicitly.
	devEndpoint bool
}

func New(api API, userPoolID string, devEndpoint bool) *Service {
	return &Service{api: api, userPoolID: userPoolID, devEndpoint: devEndpoint}
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	res, err := s.api.ListUsers(ctx, &cip.ListUsersInput{
		UserPoolId: aws.String(s.userPoolID),
	})
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(res.Users))
	for _, u := range res.Users {
		out = append(out, User{
			Username: aws.ToString(u.Username),
			Email:    attribute(u.Attributes, "email"),
			Status:   string(u.UserStatus),
			Enabled:  u.Enabled,
		})
	}
	return out, nil
}

// CreateUser provisions a user with a suppressed invite message, immediately
// promotes the temporary password to permanent, and on an emulator pool also
// confirms the sign-up.
func (s *Service) CreateUser(ctx context.Context, username, email, temporaryPassword string) error {
	_, err := s.api.AdminCreateUser(ctx, &cip.AdminCreateUserInput{
		UserPoolId: aws.String(s.userPoolID),
		Username:   aws.String(username),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
		TemporaryPassword: aws.String(temporaryPassword),
		MessageAction:     types.MessageActionTypeSuppress,
	})
	if err != nil {
		return err
	}
	if err := s.SetUserPassword(ctx, username, temporaryPassword); err != nil {
		return err
	}
	if s.devEndpoint {
		_, err = s.api.AdminConfirmSignUp(ctx, &cip.AdminConfirmSignUpInput{
			UserPoolId: aws.String(s.userPoolID),
			Username:   aws.String(username),
		})
		return err
	}
	return nil
}

func (s *Service) SetUserPassword(ctx context.Context, username, password string) error {
	_, err := s.api.AdminSetUserPassword(ctx, &cip.AdminSetUserPasswordInput{
		UserPoolId: aws.String(s.userPoolID),
		Username:   aws.String(username),
		Password:   aws.String(password),
		Permanent:  true,
	})
	return err
}

func (s *Service) AddUserToGroup(ctx context.Context, username, groupName string) error {
	_, err := s.api.AdminAddUserToGroup(ctx, &cip.AdminAddUserToGroupInput{
		UserPoolId: aws.String(s.userPoolID),
		Username:   aws.String(username),
		GroupName:  aws.String(groupName),
	})
	return err
}

func (s *Service) DeleteUser(ctx context.Context, username string) error {
	_, err := s.api.AdminDeleteUser(ctx, &cip.AdminDeleteUserInput{
		UserPoolId: aws.String(s.userPoolID),
		Username:   aws.String(username),
	})
	return err
}

func attribute(attrs []types.AttributeType, name string) string {
	for _, a := range attrs {
		if aws.ToString(a.Name) == name {
			return aws.ToString(a.Value)
		}
	}
	return ""
}

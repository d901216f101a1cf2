package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chat-core/internal/validators"
	"github.com/MKhiriev/go-chat-core/models"
)

// AuthValidationService checks credentials before they reach the identity
// provider.
type AuthValidationService struct {
	AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{validator: validators.NewRequestValidator()}
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.AuthService = inner
	return v
}

func (v *AuthValidationService) SignUp(ctx context.Context, credentials models.Credentials) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, credentials); err != nil {
		return models.AuthResult{}, fmt.Errorf("error validating sign-up request: %w", err)
	}
	return v.AuthService.SignUp(ctx, credentials)
}

func (v *AuthValidationService) SignIn(ctx context.Context, credentials models.Credentials) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, credentials); err != nil {
		return models.AuthResult{}, fmt.Errorf("error validating sign-in request: %w", err)
	}
	return v.AuthService.SignIn(ctx, credentials)
}

func (v *AuthValidationService) SignInWithProvider(ctx context.Context, credential models.ProviderCredential) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, credential); err != nil {
		return models.AuthResult{}, fmt.Errorf("error validating provider credential: %w", err)
	}
	return v.AuthService.SignInWithProvider(ctx, credential)
}

// ProfileValidationService checks profile patches. Settings patches are
// validated leaf by leaf inside the transaction instead.
type ProfileValidationService struct {
	ProfileService
	validator validators.Validator
}

func NewProfileValidationService() ProfileServiceWrapper {
	return &ProfileValidationService{validator: validators.NewRequestValidator()}
}

func (v *ProfileValidationService) Wrap(inner ProfileService) ProfileService {
	v.ProfileService = inner
	return v
}

func (v *ProfileValidationService) UpdateProfile(ctx context.Context, uid string, patch models.ProfilePatch) (models.UserProfile, error) {
	if err := v.validator.Validate(ctx, patch); err != nil {
		return models.UserProfile{}, fmt.Errorf("error validating profile patch: %w", err)
	}
	return v.ProfileService.UpdateProfile(ctx, uid, patch)
}

// ChatValidationService checks chat write requests and forbids talking to
// oneself.
type ChatValidationService struct {
	ChatService
	validator validators.Validator
}

func NewChatValidationService() ChatServiceWrapper {
	return &ChatValidationService{validator: validators.NewRequestValidator()}
}

func (v *ChatValidationService) Wrap(inner ChatService) ChatService {
	v.ChatService = inner
	return v
}

func (v *ChatValidationService) CreateMessage(ctx context.Context, senderID string, req models.CreateMessageRequest) (models.Message, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Message{}, fmt.Errorf("error validating message: %w", err)
	}
	if req.ReceiverID == senderID {
		return models.Message{}, fmt.Errorf("%w: cannot message yourself", ErrPermissionDenied)
	}
	return v.ChatService.CreateMessage(ctx, senderID, req)
}

func (v *ChatValidationService) CreateCall(ctx context.Context, callerID string, req models.CreateCallRequest) (models.Call, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Call{}, fmt.Errorf("error validating call: %w", err)
	}
	if req.ReceiverID == callerID {
		return models.Call{}, fmt.Errorf("%w: cannot call yourself", ErrPermissionDenied)
	}
	return v.ChatService.CreateCall(ctx, callerID, req)
}

func (v *ChatValidationService) CreateStory(ctx context.Context, uid string, req models.CreateStoryRequest) (models.Story, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Story{}, fmt.Errorf("error validating story: %w", err)
	}
	return v.ChatService.CreateStory(ctx, uid, req)
}

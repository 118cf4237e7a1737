package usecases

import (
	"context"
	"strings"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UpdateUserRoleCommand struct {
	UserID  uint
	Role    string
	ActorID uint
}

// UpdateUserRoleUseCase changes a user's role. Admins cannot demote
// themselves, so the system always keeps at least the acting admin.
type UpdateUserRoleUseCase struct {
	users  user.UserRepository
	logger logger.Interface
}

func NewUpdateUserRoleUseCase(users user.UserRepository, logger logger.Interface) *UpdateUserRoleUseCase {
	return &UpdateUserRoleUseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UpdateUserRoleUseCase) Execute(ctx context.Context, cmd UpdateUserRoleCommand) (*dto.UserDTO, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	role := authorization.UserRole(strings.ToUpper(cmd.Role))
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role", cmd.Role)
	}

	if cmd.UserID == cmd.ActorID && !role.IsAdmin() {
		return nil, errors.NewValidationError("cannot change your own role")
	}

	u, err := uc.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.ChangeRole(role); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Infow("user role changed",
		"user_id", u.ID(),
		"role", role.String(),
		"actor_id", cmd.ActorID,
	)

	return dto.ToUserDTO(u), nil
}

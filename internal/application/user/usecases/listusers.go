package usecases

import (
	"context"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type ListUsersQuery struct {
	Page     int
	PageSize int
}

type ListUsersResult struct {
	Users    []*dto.UserDTO
	Total    int64
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	users  user.UserRepository
	logger logger.Interface
}

func NewListUsersUseCase(users user.UserRepository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	users, total, err := uc.users.List(ctx, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, err
	}

	return &ListUsersResult{
		Users:    dto.ToUserDTOs(users),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}

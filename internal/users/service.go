package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	mysql "github.com/go-sql-driver/mysql"

	"shareit-backend/internal/platform/httpx"
)

type store interface {
	Insert(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	store    store
	validate *validator.Validate
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn), validate: validator.New()}
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	u := &User{Name: strings.TrimSpace(req.Name), Email: strings.TrimSpace(req.Email)}
	if u.Name == "" {
		return nil, httpx.ErrInvalid("name is required")
	}

	if err := s.store.Insert(ctx, u); err != nil {
		return nil, translateDuplicate(err)
	}
	resp := toResponse(u)
	return &resp, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(u)
	return &resp, nil
}

func (s *Service) GetAll(ctx context.Context) ([]UserResponse, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out, nil
}

// Update applies the non-nil fields of req onto the stored user.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, httpx.ErrInvalid("name must not be blank")
		}
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if s.validate.Var(email, "required,email") != nil {
			return nil, httpx.ErrInvalid("email must be a valid address")
		}
		u.Email = email
	}

	if err := s.store.Update(ctx, u); err != nil {
		return nil, translateDuplicate(err)
	}
	resp := toResponse(u)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

func translateDuplicate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return httpx.ErrConflict("email already exists")
	}
	return err
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/identity"
	"github.com/jhoicas/AgriConnect-api/internal/application/validation"
	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
	"github.com/jhoicas/AgriConnect-api/pkg/jwt"
)

// MsgRegistered flash que se muestra tras un registro correcto.
const MsgRegistered = "¡Registro completado! Ya puede iniciar sesión."

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RegisterUseCase registro de cuentas con perfil de agricultor o empleado.
type RegisterUseCase struct {
	tx        identity.TxRunner
	validator *validation.Validator
	jwtCfg    JWTConfig
	hashCost  int
	log       zerolog.Logger
	now       func() time.Time
}

// NewRegisterUseCase construye el caso de uso de registro.
func NewRegisterUseCase(tx identity.TxRunner, v *validation.Validator, jwtCfg JWTConfig, log zerolog.Logger) *RegisterUseCase {
	return &RegisterUseCase{tx: tx, validator: v, jwtCfg: jwtCfg, log: log, now: time.Now}
}

// WithHashCost coste de bcrypt para las cuentas creadas (0 = por defecto).
func (uc *RegisterUseCase) WithHashCost(cost int) *RegisterUseCase {
	uc.hashCost = cost
	return uc
}

// Form roles seleccionables en el formulario.
func (uc *RegisterUseCase) Form() dto.RegisterForm {
	roles := make([]string, 0, len(entity.SignupRoles))
	for _, r := range entity.SignupRoles {
		roles = append(roles, r.String())
	}
	return dto.RegisterForm{Roles: roles}
}

// Validate valida el formulario en dos pasadas: reglas declarativas y, si el rol es Farmer,
// los datos obligatorios del perfil. Devuelve nil si es válido.
func (uc *RegisterUseCase) Validate(in dto.RegisterRequest) domain.FieldErrors {
	fe := uc.validator.Struct(in)
	if fe == nil {
		fe = domain.FieldErrors{}
	}
	if _, ok := fe["role"]; ok {
		fe["role"] = "Seleccione un rol."
	}
	if in.Role == entity.RoleFarmer.String() {
		if blank(in.FarmerFirstName) {
			fe.Add("farmer_first_name", "Ingrese su nombre.")
		}
		if blank(in.FarmerLastName) {
			fe.Add("farmer_last_name", "Ingrese su apellido.")
		}
		if blank(in.FarmerContactNumber) {
			fe.Add("farmer_contact_number", "Ingrese su número de contacto.")
		}
		if blank(in.FarmerAddress) {
			fe.Add("farmer_address", "Ingrese su dirección.")
		}
	}
	if fe.Empty() {
		return nil
	}
	return fe
}

// Register crea cuenta, rol y perfil en una sola transacción y devuelve la sesión de la nueva cuenta.
// Errores: domain.FieldErrors (validación) o *domain.IdentityError (política de contraseña, email duplicado).
func (uc *RegisterUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResult, error) {
	if fe := uc.Validate(in); fe != nil {
		return nil, fe
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil || !role.SignupSelectable() {
		return nil, domain.FieldErrors{"role": "Seleccione un rol."}
	}

	var account *entity.Account
	err = uc.tx.RunIdentity(ctx, func(
		accountRepo repository.AccountRepository,
		roleRepo repository.RoleRepository,
		farmerRepo repository.FarmerRepository,
		employeeRepo repository.EmployeeRepository,
	) error {
		manager := identity.NewAccountManager(accountRepo, roleRepo)
		if uc.hashCost > 0 {
			manager.WithHashCost(uc.hashCost)
		}
		acc, err := manager.Create(ctx, strings.TrimSpace(in.Email), in.Password)
		if err != nil {
			return err
		}
		uc.log.Info().Str("account_id", acc.ID).Msg("cuenta creada con contraseña")
		if err := manager.AddToRoles(ctx, acc.ID, role); err != nil {
			return err
		}
		if err := uc.createProfile(ctx, acc, role, in, farmerRepo, employeeRepo); err != nil {
			return err
		}
		account = acc
		return nil
	})
	if err != nil {
		var idErr *domain.IdentityError
		if !errors.As(err, &idErr) {
			uc.log.Error().Err(err).Str("email", in.Email).Msg("registro fallido")
		}
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, account.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResult{
		Token:      token,
		Account:    toAccountResponse(account, []entity.Role{role}),
		RedirectTo: SafeReturnURL(in.ReturnURL),
		Message:    MsgRegistered,
	}, nil
}

func (uc *RegisterUseCase) createProfile(
	ctx context.Context,
	acc *entity.Account,
	role entity.Role,
	in dto.RegisterRequest,
	farmerRepo repository.FarmerRepository,
	employeeRepo repository.EmployeeRepository,
) error {
	switch role {
	case entity.RoleFarmer:
		accountID := acc.ID
		farmer := &entity.Farmer{
			AccountID:        &accountID,
			FirstName:        strings.TrimSpace(in.FarmerFirstName),
			LastName:         strings.TrimSpace(in.FarmerLastName),
			ContactNumber:    strings.TrimSpace(in.FarmerContactNumber),
			Email:            acc.Email,
			Address:          strings.TrimSpace(in.FarmerAddress),
			RegistrationDate: uc.now(),
		}
		if err := farmerRepo.Create(ctx, farmer); err != nil {
			return fmt.Errorf("crear perfil de agricultor: %w", err)
		}
		uc.log.Info().Int64("farmer_id", farmer.ID).Str("name", farmer.FullName()).Msg("agricultor creado y asociado")
	case entity.RoleEmployee:
		email := acc.Email
		employee := &entity.Employee{
			AccountID:     acc.ID,
			FirstName:     optional(in.EmployeeFirstName),
			LastName:      optional(in.EmployeeLastName),
			ContactNumber: optional(in.EmployeeContactNumber),
			Email:         &email,
		}
		if err := employeeRepo.Create(ctx, employee); err != nil {
			return fmt.Errorf("crear perfil de empleado: %w", err)
		}
		uc.log.Info().Str("email", acc.Email).Msg("empleado creado y asociado")
	case entity.RoleAdmin:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, role)
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func toAccountResponse(a *entity.Account, roles []entity.Role) dto.AccountResponse {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return dto.AccountResponse{
		ID:        a.ID,
		UserName:  a.UserName,
		Email:     a.Email,
		Roles:     names,
		CreatedAt: a.CreatedAt,
	}
}

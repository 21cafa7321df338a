package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/repository"
	"github.com/seguraep/acm-reportes/internal/pkg/usercontext"
)

// HandleGetProfile returns the authenticated user's profile.
func HandleGetProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repo := repository.GetGlobalFactory().GetUserRepository()

	user, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Usuario no encontrado")
		}
		fiberlog.Errorf("profile: lookup failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo cargar el perfil")
	}

	return ok(c, "", user)
}

type updateProfileRequest struct {
	Nombres      string `json:"nombres" validate:"omitempty,min=3,max=150"`
	Apellidos    string `json:"apellidos" validate:"omitempty,min=3,max=150"`
	Telefono     string `json:"telefono" validate:"max=20"`
	Cargo        string `json:"cargo" validate:"max=100"`
	FechaIngreso string `json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
}

// HandleUpdateProfile edits the mutable profile fields. Email and cedula are
// identity fields and cannot be changed here.
func HandleUpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return failWithData(c, fiber.StatusBadRequest, "Datos inválidos", fiber.Map{"campos": fieldErrors(err)})
	}

	userCtx := usercontext.GetUserContext(c)
	repo := repository.GetGlobalFactory().GetUserRepository()

	user, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "Usuario no encontrado")
	}

	if req.Nombres != "" {
		user.Nombres = req.Nombres
	}
	if req.Apellidos != "" {
		user.Apellidos = req.Apellidos
	}
	user.Telefono = req.Telefono
	user.Cargo = req.Cargo
	if req.FechaIngreso != "" {
		if fecha, err := time.Parse("2006-01-02", req.FechaIngreso); err == nil {
			user.FechaIngreso = &fecha
		}
	}

	if err := repo.Update(user); err != nil {
		fiberlog.Errorf("profile: update failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo actualizar el perfil")
	}

	return ok(c, "Perfil actualizado", user)
}

// HandleListUsers returns a paginated user list for administrators.
func HandleListUsers(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	repo := repository.GetGlobalFactory().GetUserRepository()

	users, err := repo.List(offset, limit)
	if err != nil {
		fiberlog.Errorf("users: list failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo listar usuarios")
	}
	total, err := repo.Count()
	if err != nil {
		fiberlog.Errorf("users: count failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo listar usuarios")
	}

	return ok(c, "", fiber.Map{"usuarios": users, "total": total})
}

// HandleSearchUsers searches users by name, email or cedula.
func HandleSearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return fail(c, fiber.StatusBadRequest, "El parámetro q es obligatorio")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	users, err := repo.Search(query)
	if err != nil {
		fiberlog.Errorf("users: search failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo buscar usuarios")
	}

	return ok(c, "", fiber.Map{"usuarios": users})
}

// HandleCheckEmail is the advisory availability check the registration form
// calls on field blur. Side effect free; the unique index remains the
// authoritative check at submission time.
func HandleCheckEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return fail(c, fiber.StatusBadRequest, "El parámetro email es obligatorio")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	available, err := repo.EmailAvailable(email)
	if err != nil {
		fiberlog.Errorf("users: email availability check failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo verificar el email")
	}

	return ok(c, "", fiber.Map{"disponible": available})
}

// HandleCheckCedula mirrors HandleCheckEmail for the national ID field.
func HandleCheckCedula(c *fiber.Ctx) error {
	cedula := c.Query("cedula")
	if cedula == "" {
		return fail(c, fiber.StatusBadRequest, "El parámetro cedula es obligatorio")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	available, err := repo.CedulaAvailable(cedula)
	if err != nil {
		fiberlog.Errorf("users: cedula availability check failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo verificar la cédula")
	}

	return ok(c, "", fiber.Map{"disponible": available})
}

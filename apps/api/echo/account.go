package echoapi

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acadbase/academia/core"
	"github.com/acadbase/academia/core/account"
)

type accountApi struct {
	svc        *account.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerAccountAPI(app *echo.Echo, token echo.MiddlewareFunc, opts *Options) {
	api := accountApi{
		svc:        opts.AccountSvc,
		validate:   opts.Validate,
		translator: opts.Translator,
	}

	// un-authed endpoints
	app.PUT("/user", api.login)

	// authed endpoints
	app.GET("/user", api.getUser, token)

	admin := roleMiddleware(api.svc, account.RoleAdmin)
	app.POST("/register/student", api.registerStudent, token, admin)
	app.POST("/register/staff", api.registerStaff, token, admin)
	app.POST("/register/instructor", api.registerInstructor, token, admin)

	// any authenticated caller; role is not checked here
	app.DELETE("/delete_details/:student_id", api.deleteStudent, token)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	if lr.Username == "" || lr.Password == "" {
		return core.NewValidationError(errors.New("Username and password are required"))
	}
	return validate.Struct(lr)
}

// Handlers

func (api *accountApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	token, err := api.svc.Authenticate(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		return err
	}
	return respond(ctx, token)
}

// getUser returns the profile of the caller identified by the token.
func (api *accountApi) getUser(ctx echo.Context) error {
	personID, err := contextPersonID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context person")
	}

	person, err := api.svc.GetPerson(ctx.Request().Context(), personID)
	if err != nil {
		return err
	}
	return respond(ctx, person)
}

func (api *accountApi) registerStudent(ctx echo.Context) error {
	var data account.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	id, err := api.svc.RegisterStudent(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return respond(ctx, fmt.Sprintf(
		"Student registered successfully with ID: %d and student number: %s", id, data.Number))
}

func (api *accountApi) registerStaff(ctx echo.Context) error {
	var data account.NewStaff
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStaff")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	id, err := api.svc.RegisterStaff(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return respond(ctx, fmt.Sprintf("Inserted staff with ID: %d and staff number: %s", id, data.Number))
}

func (api *accountApi) registerInstructor(ctx echo.Context) error {
	var data account.NewInstructor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewInstructor")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	id, err := api.svc.RegisterInstructor(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	capability := "an assistent"
	if *data.Coordinator {
		capability = "a cordenator"
	}
	return respond(ctx, fmt.Sprintf("Inserted instructor with ID: %d that is %s", id, capability))
}

func (api *accountApi) deleteStudent(ctx echo.Context) error {
	number := core.CleanString(ctx.Param("student_id"))
	if err := api.svc.DeleteStudent(ctx.Request().Context(), number); err != nil {
		return err
	}
	return respond(ctx, "Student deleted successfully")
}

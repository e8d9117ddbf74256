package account

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/acadbase/academia/core"
)

var (
	// errors
	ErrNotFound       = errors.New("account not found")
	ErrUsernameExists = errors.New("A user with this username already exists")
	ErrNumberExists   = errors.New("A user with this number already exists")

	errInvalidCredentials = "Invalid username or password"
	errOnlyAdmins         = "Only admins can use this query"
	errOnlyStudents       = "Only student can use this query"
	errOnlyCoordinators   = "Only coordinators can use this query"
)

type (
	Repository interface {
		GetPersonByUsername(ctx context.Context, username string) (Person, error)
		GetPersonByID(ctx context.Context, id int) (Person, error)
		SetLastLogin(ctx context.Context, personID int, t time.Time) error

		// CreateStudent inserts the Person and its Student row in one
		// transaction and returns the new person id.
		CreateStudent(ctx context.Context, p Person, number string) (int, error)
		// CreateStaffAdmin inserts the Person, its Staff row and an admin
		// grant in one transaction.
		CreateStaffAdmin(ctx context.Context, p Person, number string) (int, error)
		// CreateInstructor inserts the Person, its Staff row and the
		// Professor capability flags in one transaction.
		CreateInstructor(ctx context.Context, p Person, number string, coordinator, assistant bool) (int, error)

		// Role relations; existence-only checks.
		IsAdmin(ctx context.Context, personID int) (bool, error)
		IsStudent(ctx context.Context, personID int) (bool, error)
		GetProfessor(ctx context.Context, personID int) (Professor, error)

		// DeleteStudentByNumber removes the student's grades, enrollments,
		// student row and person row in one transaction.
		DeleteStudentByNumber(ctx context.Context, number string) error
	}

	Service struct {
		repo   Repository
		tokens *TokenIssuer
	}
)

func NewService(repo Repository, tokens *TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Authenticate verifies the credentials and returns a session token.
// A wrong password and an unknown username yield the same error.
func (svc *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	person, err := svc.repo.GetPersonByUsername(ctx, core.CleanString(username, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return "", core.NewAuthError(errInvalidCredentials)
		}
		return "", errors.Wrap(err, "finding person by username")
	}
	if err = person.CheckPassword(password); err != nil {
		return "", core.NewAuthError(errInvalidCredentials)
	}
	if err = svc.repo.SetLastLogin(ctx, person.ID, time.Now().UTC()); err != nil {
		return "", errors.Wrap(err, "setting lastLogin")
	}
	return svc.tokens.Issue(person.ID)
}

// GetPerson returns the profile of the token subject. A subject that no
// longer exists (deleted since the token was issued) yields an auth error.
func (svc *Service) GetPerson(ctx context.Context, personID int) (Person, error) {
	person, err := svc.repo.GetPersonByID(ctx, personID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Person{}, core.NewAuthError("Invalid token")
		}
		return Person{}, errors.Wrap(err, "finding person by id")
	}
	return person, nil
}

// ResolveRole checks that the subject holds the requested role. The check is
// existence-only against the role relation; absence is a 401-class error.
func (svc *Service) ResolveRole(ctx context.Context, personID int, role Role) error {
	switch role {
	case RoleAdmin:
		ok, err := svc.repo.IsAdmin(ctx, personID)
		if err != nil {
			return errors.Wrap(err, "checking admin role")
		}
		if !ok {
			return core.NewAuthError(errOnlyAdmins)
		}
	case RoleStudent:
		ok, err := svc.repo.IsStudent(ctx, personID)
		if err != nil {
			return errors.Wrap(err, "checking student role")
		}
		if !ok {
			return core.NewAuthError(errOnlyStudents)
		}
	case RoleCoordinator:
		// single fetch; the flag is read off the one returned row
		prof, err := svc.repo.GetProfessor(ctx, personID)
		if err != nil {
			if errors.Cause(err) == ErrNotFound {
				return core.NewAuthError(errOnlyCoordinators)
			}
			return errors.Wrap(err, "checking coordinator role")
		}
		if !prof.Coordinator {
			return core.NewAuthError(errOnlyCoordinators)
		}
	default:
		return errors.Errorf("unknown role %q", role)
	}
	return nil
}

func (svc *Service) RegisterStudent(ctx context.Context, ns NewStudent) (int, error) {
	person, err := ns.person()
	if err != nil {
		return 0, errors.Wrap(err, "hashing password")
	}
	id, err := svc.repo.CreateStudent(ctx, person, ns.Number.String())
	if err != nil {
		return 0, wrapCreateErr(err, "creating student")
	}
	return id, nil
}

func (svc *Service) RegisterStaff(ctx context.Context, ns NewStaff) (int, error) {
	person, err := ns.person()
	if err != nil {
		return 0, errors.Wrap(err, "hashing password")
	}
	id, err := svc.repo.CreateStaffAdmin(ctx, person, ns.Number.String())
	if err != nil {
		return 0, wrapCreateErr(err, "creating staff")
	}
	return id, nil
}

func (svc *Service) RegisterInstructor(ctx context.Context, ni NewInstructor) (int, error) {
	person, err := ni.person()
	if err != nil {
		return 0, errors.Wrap(err, "hashing password")
	}
	id, err := svc.repo.CreateInstructor(ctx, person, ni.Number.String(), *ni.Coordinator, *ni.Assistant)
	if err != nil {
		return 0, wrapCreateErr(err, "creating instructor")
	}
	return id, nil
}

func (svc *Service) DeleteStudent(ctx context.Context, number string) error {
	if err := svc.repo.DeleteStudentByNumber(ctx, number); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewValidationError(errors.New("Student not found"))
		}
		return errors.Wrap(err, "deleting student")
	}
	return nil
}

// wrapCreateErr converts uniqueness conflicts into validation errors.
func wrapCreateErr(err error, msg string) error {
	switch errors.Cause(err) {
	case ErrUsernameExists, ErrNumberExists:
		return core.NewValidationError(errors.Cause(err))
	}
	return errors.Wrap(err, msg)
}

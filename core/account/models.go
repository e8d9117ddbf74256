package account

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadbase/academia/core"
)

// Role names a capability checked against the role-specific relations.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleStudent     Role = "student"
	RoleCoordinator Role = "coordinator"
)

// Person is the base identity record shared by students and staff.
// It is never mutated by this service once created, except for LastLogin.
type Person struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	District     string    `json:"district" db:"district"`
	Address      string    `json:"address" db:"address"`
	BirthDate    string    `json:"birth_date" db:"birth_date"` // DD-MM-YYYY
	PasswordHash []byte    `json:"-" db:"password"`
	LastLogin    null.Time `json:"last_login" db:"last_login"`
}

func (p *Person) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return nil
}

func (p *Person) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(pwd))
}

// Student extends a Person with the public 10-digit student number and
// financial fields, both initialized to zero at creation.
type Student struct {
	PersonID    int     `json:"person_id" db:"person_id"`
	Number      string  `json:"n_student" db:"n_student"`
	Amount      float64 `json:"amount" db:"amount"`
	MonthlyDebt float64 `json:"monthly_debt" db:"monthly_debt"`
}

// Staff extends a Person with the public 10-digit staff number.
type Staff struct {
	PersonID int    `json:"person_id" db:"person_id"`
	Number   string `json:"n_staff" db:"n_staff"`
}

// Professor carries two independent capability flags; both may be true or
// false, so this is deliberately not an enum.
type Professor struct {
	StaffPersonID int  `json:"staff_person_id" db:"staff_person_id"`
	Coordinator   bool `json:"cordenator" db:"coordinator"`
	Assistant     bool `json:"assistent" db:"assistant"`
}

// Identity contains the Person fields common to every registration payload.
type Identity struct {
	Username  string `json:"username" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	District  string `json:"district" validate:"required"`
	Address   string `json:"address" validate:"required"`
	BirthDate string `json:"birth_date" validate:"required"`
}

func (id *Identity) clean() {
	id.Username = core.CleanString(id.Username, true /* lower */)
	id.Name = core.CleanString(id.Name)
	id.Email = core.CleanString(id.Email, true /* lower */)
	id.District = core.CleanString(id.District)
	id.Address = core.CleanString(id.Address)
	id.BirthDate = core.CleanString(id.BirthDate)
}

// person builds the Person row for this identity with the password hashed.
func (id Identity) person() (Person, error) {
	p := Person{
		Username:  id.Username,
		Name:      id.Name,
		Email:     id.Email,
		District:  id.District,
		Address:   id.Address,
		BirthDate: id.BirthDate,
	}
	if err := p.SetPassword(id.Password); err != nil {
		return Person{}, err
	}
	return p, nil
}

// NewStudent is the payload for POST /register/student.
type NewStudent struct {
	Identity
	Number core.NumberString `json:"n_student" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.clean()
	ns.Number = core.NumberString(core.CleanString(ns.Number.String()))
	if err := validate.Struct(ns); err != nil {
		return err
	}
	if err := ValidateNumericID(ns.Number.String(), NumberLength, "student number"); err != nil {
		return err
	}
	return ValidateIdentityFields(ns.Username, ns.Email, ns.Password, ns.District, ns.Address, ns.BirthDate)
}

// NewStaff is the payload for POST /register/staff. A staff registration also
// grants the admin role.
type NewStaff struct {
	Identity
	Number core.NumberString `json:"n_staff" validate:"required"`
}

func (ns *NewStaff) Validate(validate *validator.Validate) error {
	ns.clean()
	ns.Number = core.NumberString(core.CleanString(ns.Number.String()))
	if err := validate.Struct(ns); err != nil {
		return err
	}
	if err := ValidateNumericID(ns.Number.String(), NumberLength, "staff number"); err != nil {
		return err
	}
	return ValidateIdentityFields(ns.Username, ns.Email, ns.Password, ns.District, ns.Address, ns.BirthDate)
}

// NewInstructor is the payload for POST /register/instructor. The capability
// flags are pointers so that a missing value can be told apart from false.
type NewInstructor struct {
	Identity
	Number      core.NumberString `json:"n_staff" validate:"required"`
	Coordinator *bool             `json:"cordenator" validate:"required"`
	Assistant   *bool             `json:"assistent" validate:"required"`
}

func (ni *NewInstructor) Validate(validate *validator.Validate) error {
	ni.clean()
	ni.Number = core.NumberString(core.CleanString(ni.Number.String()))
	if err := validate.Struct(ni); err != nil {
		return err
	}
	if err := ValidateNumericID(ni.Number.String(), NumberLength, "staff number"); err != nil {
		return err
	}
	return ValidateIdentityFields(ni.Username, ni.Email, ni.Password, ni.District, ni.Address, ni.BirthDate)
}

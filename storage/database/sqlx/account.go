package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/acadbase/academia/core/account"
)

// pq error codes
const pqUniqueViolation = "23505"

type accountRepository struct {
	db *sqlx.DB
}

var _ account.Repository = (*accountRepository)(nil) // interface compliance check

func NewAccountRepository(db *sqlx.DB) *accountRepository {
	return &accountRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to account.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return account.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

// trapUniqueErr maps a pq unique violation on the given constraint to sentinel.
func trapUniqueErr(err error, constraint string, sentinel error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraint {
		return sentinel
	}
	return err
}

func (repo accountRepository) GetPersonByUsername(ctx context.Context, username string) (account.Person, error) {
	var p account.Person
	err := repo.db.GetContext(ctx, &p,
		`SELECT id, username, name, email, district, address, birth_date, password, last_login
		   FROM person WHERE username = $1`, username)
	if err != nil {
		return account.Person{}, trapNoRowsErr(err, "getting person by username")
	}
	return p, nil
}

func (repo accountRepository) GetPersonByID(ctx context.Context, id int) (account.Person, error) {
	var p account.Person
	err := repo.db.GetContext(ctx, &p,
		`SELECT id, username, name, email, district, address, birth_date, password, last_login
		   FROM person WHERE id = $1`, id)
	if err != nil {
		return account.Person{}, trapNoRowsErr(err, "getting person by id")
	}
	return p, nil
}

func (repo accountRepository) SetLastLogin(ctx context.Context, personID int, t time.Time) error {
	if _, err := repo.db.ExecContext(ctx,
		`UPDATE person SET last_login = $1 WHERE id = $2`, t, personID); err != nil {
		return errors.Wrap(err, "setting last login")
	}
	return nil
}

func (repo accountRepository) insertPerson(ctx context.Context, tx *sqlx.Tx, p account.Person) (int, error) {
	var id int
	err := tx.QueryRowContext(ctx,
		`INSERT INTO person (username, name, email, password, district, address, birth_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		p.Username, p.Name, p.Email, p.PasswordHash, p.District, p.Address, p.BirthDate,
	).Scan(&id)
	if err != nil {
		return 0, trapUniqueErr(err, "person_username_key", account.ErrUsernameExists)
	}
	return id, nil
}

func (repo accountRepository) CreateStudent(ctx context.Context, p account.Person, number string) (int, error) {
	var id int
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if id, err = repo.insertPerson(ctx, tx, p); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO student (person_id, n_student, amount, monthly_debt) VALUES ($1, $2, 0, 0)`,
			id, number); err != nil {
			return trapUniqueErr(err, "student_n_student_key", account.ErrNumberExists)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (repo accountRepository) CreateStaffAdmin(ctx context.Context, p account.Person, number string) (int, error) {
	var id int
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if id, err = repo.insertPerson(ctx, tx, p); err != nil {
			return err
		}
		if err = repo.insertStaff(ctx, tx, id, number); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO admin (staff_person_id) VALUES ($1)`, id); err != nil {
			return errors.Wrap(err, "inserting admin")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (repo accountRepository) CreateInstructor(ctx context.Context, p account.Person, number string, coordinator, assistant bool) (int, error) {
	var id int
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if id, err = repo.insertPerson(ctx, tx, p); err != nil {
			return err
		}
		if err = repo.insertStaff(ctx, tx, id, number); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO professor (staff_person_id, coordinator, assistant) VALUES ($1, $2, $3)`,
			id, coordinator, assistant); err != nil {
			return errors.Wrap(err, "inserting professor")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (repo accountRepository) insertStaff(ctx context.Context, tx *sqlx.Tx, personID int, number string) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO staff (person_id, n_staff) VALUES ($1, $2)`, personID, number); err != nil {
		return trapUniqueErr(err, "staff_n_staff_key", account.ErrNumberExists)
	}
	return nil
}

func (repo accountRepository) IsAdmin(ctx context.Context, personID int) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM admin WHERE staff_person_id = $1)`, personID)
	if err != nil {
		return false, errors.Wrap(err, "checking admin")
	}
	return exists, nil
}

func (repo accountRepository) IsStudent(ctx context.Context, personID int) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM student WHERE person_id = $1)`, personID)
	if err != nil {
		return false, errors.Wrap(err, "checking student")
	}
	return exists, nil
}

func (repo accountRepository) GetProfessor(ctx context.Context, personID int) (account.Professor, error) {
	var prof account.Professor
	err := repo.db.GetContext(ctx, &prof,
		`SELECT staff_person_id, coordinator, assistant FROM professor WHERE staff_person_id = $1`,
		personID)
	if err != nil {
		return account.Professor{}, trapNoRowsErr(err, "getting professor")
	}
	return prof, nil
}

func (repo accountRepository) DeleteStudentByNumber(ctx context.Context, number string) error {
	return repo.inTx(ctx, func(tx *sqlx.Tx) error {
		var studentID int
		err := tx.QueryRowContext(ctx,
			`SELECT person_id FROM student WHERE n_student = $1`, number).Scan(&studentID)
		if err != nil {
			return trapNoRowsErr(err, "resolving student number")
		}

		// child rows first, person last; student row cascades off person
		stmts := []string{
			`DELETE FROM grade WHERE student_person_id = $1`,
			`DELETE FROM enrollment_class WHERE student_person_id = $1`,
			`DELETE FROM enrollment WHERE student_person_id = $1`,
			`DELETE FROM student_activity WHERE student_person_id = $1`,
			`DELETE FROM student WHERE person_id = $1`,
			`DELETE FROM person WHERE id = $1`,
		}
		for _, stmt := range stmts {
			if _, err = tx.ExecContext(ctx, stmt, studentID); err != nil {
				return errors.Wrap(err, "deleting student records")
			}
		}
		return nil
	})
}

func (repo accountRepository) inTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}
	return nil
}

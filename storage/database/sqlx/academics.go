package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/acadbase/academia/core/academics"
)

type academicsRepository struct {
	db *sqlx.DB
}

var _ academics.Repository = (*academicsRepository)(nil) // interface compliance check

func NewAcademicsRepository(db *sqlx.DB) *academicsRepository {
	return &academicsRepository{db: db}
}

func trapAcademicsNoRows(err error, msg string) error {
	if err == sql.ErrNoRows {
		return academics.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func trapDuplicateErr(err error, constraint string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraint {
		return academics.ErrAlreadyEnrolled
	}
	return err
}

func (repo academicsRepository) StudentIDByNumber(ctx context.Context, number string) (int, error) {
	var id int
	err := repo.db.GetContext(ctx, &id,
		`SELECT person_id FROM student WHERE n_student = $1`, number)
	if err != nil {
		return 0, trapAcademicsNoRows(err, "getting student by number")
	}
	return id, nil
}

func (repo academicsRepository) DegreeExists(ctx context.Context, degreeID int64) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM degree WHERE id = $1)`, degreeID)
	if err != nil {
		return false, errors.Wrap(err, "checking degree")
	}
	return exists, nil
}

func (repo academicsRepository) EnrollDegree(ctx context.Context, studentID int, degreeID int64, date string) error {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO enrollment (student_person_id, degree_id, enroll_date) VALUES ($1, $2, $3)`,
		studentID, degreeID, date)
	if err != nil {
		return trapDuplicateErr(err, "enrollment_pkey")
	}
	return nil
}

func (repo academicsRepository) ActivityExists(ctx context.Context, activityID int64) (bool, error) {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM activity WHERE id = $1)`, activityID)
	if err != nil {
		return false, errors.Wrap(err, "checking activity")
	}
	return exists, nil
}

func (repo academicsRepository) EnrollActivity(ctx context.Context, studentID int, activityID int64) error {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO student_activity (student_person_id, activity_id) VALUES ($1, $2)`,
		studentID, activityID)
	if err != nil {
		return trapDuplicateErr(err, "student_activity_pkey")
	}
	return nil
}

// classTx implements academics.ClassTx over one open transaction.
type classTx struct {
	ctx context.Context
	tx  *sqlx.Tx
}

func (t classTx) ClassForUpdate(classID int64) (academics.Class, error) {
	var cls academics.Class
	err := t.tx.GetContext(t.ctx, &cls,
		`SELECT id, edition_id, capacity, schedule FROM class_time_table WHERE id = $1 FOR UPDATE`,
		classID)
	if err != nil {
		return academics.Class{}, trapAcademicsNoRows(err, "locking class")
	}
	return cls, nil
}

func (t classTx) ClassEnrollmentCount(classID int64) (int, error) {
	var count int
	err := t.tx.GetContext(t.ctx, &count,
		`SELECT COUNT(*) FROM enrollment_class WHERE class_id = $1`, classID)
	if err != nil {
		return 0, errors.Wrap(err, "counting class enrollments")
	}
	return count, nil
}

func (t classTx) EnrollClass(studentID int, classID int64) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO enrollment_class (student_person_id, class_id) VALUES ($1, $2)`,
		studentID, classID)
	if err != nil {
		return trapDuplicateErr(err, "enrollment_class_pkey")
	}
	return nil
}

func (repo academicsRepository) InClassTx(ctx context.Context, fn func(academics.ClassTx) error) error {
	return repo.inTx(ctx, func(tx *sqlx.Tx) error {
		return fn(classTx{ctx: ctx, tx: tx})
	})
}

// gradeTx implements academics.GradeTx over one open transaction.
type gradeTx struct {
	ctx context.Context
	tx  *sqlx.Tx
}

func (t gradeTx) PeriodID(name string, editionID int64) (int, error) {
	var id int
	err := t.tx.GetContext(t.ctx, &id,
		`SELECT id FROM period WHERE name = $1 AND edition_id = $2`, name, editionID)
	if err != nil {
		return 0, trapAcademicsNoRows(err, "getting evaluation period")
	}
	return id, nil
}

func (t gradeTx) InsertGrade(studentID, periodID int, date string, value float64, editionID int64) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO grade (student_person_id, period_id, grade_date, grade, edition_id)
		 VALUES ($1, $2, to_date($3, 'DD-MM-YYYY'), $4, $5)`,
		studentID, periodID, date, value, editionID)
	if err != nil {
		return errors.Wrap(err, "inserting grade")
	}
	return nil
}

func (repo academicsRepository) InGradeTx(ctx context.Context, fn func(academics.GradeTx) error) error {
	return repo.inTx(ctx, func(tx *sqlx.Tx) error {
		return fn(gradeTx{ctx: ctx, tx: tx})
	})
}

func (repo academicsRepository) DegreeDetails(ctx context.Context, degreeID int64) ([]academics.DegreeCourseDetail, error) {
	var details []academics.DegreeCourseDetail
	err := repo.db.SelectContext(ctx, &details,
		`SELECT c.id AS course_id,
		        c.name AS course_name,
		        e.id AS edition_id,
		        e.edition_year,
		        e.capacity,
		        (SELECT COUNT(DISTINCT ec.student_person_id)
		           FROM enrollment_class ec
		           JOIN class_time_table ct ON ct.id = ec.class_id
		          WHERE ct.edition_id = e.id) AS enrolled_count,
		        ARRAY_REMOVE(ARRAY[e.coordinator_professor_id], NULL) AS coordinators,
		        COALESCE((SELECT ARRAY_AGG(ei.professor_staff_id)
		                    FROM edition_instructor ei
		                   WHERE ei.edition_id = e.id), '{}') AS instructors
		   FROM course c
		   JOIN edition e ON e.course_id = c.id
		  WHERE c.degree_id = $1
		  ORDER BY c.id, e.id`, degreeID)
	if err != nil {
		return nil, errors.Wrap(err, "querying degree details")
	}
	return details, nil
}

func (repo academicsRepository) StudentDetails(ctx context.Context, studentID int) ([]academics.StudentCourseGrade, error) {
	var grades []academics.StudentCourseGrade
	err := repo.db.SelectContext(ctx, &grades,
		`SELECT e.id AS edition_id,
		        c.name AS course_name,
		        e.edition_year,
		        g.grade
		   FROM enrollment_class ec
		   JOIN class_time_table ct ON ct.id = ec.class_id
		   JOIN edition e ON e.id = ct.edition_id
		   JOIN course c ON c.id = e.course_id
		   LEFT JOIN grade g ON g.edition_id = e.id AND g.student_person_id = ec.student_person_id
		  WHERE ec.student_person_id = $1
		  GROUP BY e.id, c.name, e.edition_year, g.grade
		  ORDER BY e.id`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying student details")
	}
	return grades, nil
}

func (repo academicsRepository) TopStudents(ctx context.Context, limit int) ([]academics.TopStudent, error) {
	type topRow struct {
		PersonID    int     `db:"person_id"`
		StudentName string  `db:"student_name"`
		Average     float64 `db:"average_grade"`
	}
	var rows []topRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT p.id AS person_id,
		        p.name AS student_name,
		        AVG(g.grade) AS average_grade
		   FROM person p
		   JOIN student s ON s.person_id = p.id
		   JOIN grade g ON g.student_person_id = s.person_id
		  GROUP BY p.id, p.name
		  ORDER BY average_grade DESC
		  LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying top students")
	}

	top := make([]academics.TopStudent, 0, len(rows))
	for _, row := range rows {
		var grades []academics.TopStudentGrade
		err = repo.db.SelectContext(ctx, &grades,
			`SELECT e.id AS edition_id,
			        c.name AS course_name,
			        g.grade,
			        to_char(g.grade_date, 'DD-MM-YYYY') AS grade_date
			   FROM grade g
			   JOIN edition e ON e.id = g.edition_id
			   JOIN course c ON c.id = e.course_id
			  WHERE g.student_person_id = $1
			  ORDER BY g.grade_date`, row.PersonID)
		if err != nil {
			return nil, errors.Wrap(err, "querying top student grades")
		}

		var activities []string
		err = repo.db.SelectContext(ctx, &activities,
			`SELECT a.name
			   FROM student_activity sa
			   JOIN activity a ON a.id = sa.activity_id
			  WHERE sa.student_person_id = $1
			  ORDER BY a.name`, row.PersonID)
		if err != nil {
			return nil, errors.Wrap(err, "querying top student activities")
		}

		top = append(top, academics.TopStudent{
			StudentName: row.StudentName,
			Average:     row.Average,
			Grades:      grades,
			Activities:  activities,
		})
	}
	return top, nil
}

func (repo academicsRepository) TopByDistrict(ctx context.Context) ([]academics.DistrictLeader, error) {
	var leaders []academics.DistrictLeader
	err := repo.db.SelectContext(ctx, &leaders,
		`SELECT DISTINCT ON (p.district)
		        s.n_student,
		        p.district,
		        AVG(g.grade) AS average_grade
		   FROM person p
		   JOIN student s ON s.person_id = p.id
		   JOIN grade g ON g.student_person_id = s.person_id
		  GROUP BY p.district, s.n_student
		  ORDER BY p.district, average_grade DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying district leaders")
	}
	return leaders, nil
}

func (repo academicsRepository) MonthlyReport(ctx context.Context, months int) ([]academics.MonthlyCourseReport, error) {
	var report []academics.MonthlyCourseReport
	err := repo.db.SelectContext(ctx, &report,
		`SELECT to_char(date_trunc('month', g.grade_date), 'MM-YYYY') AS month,
		        e.id AS edition_id,
		        c.name AS course_name,
		        COUNT(*) FILTER (WHERE g.grade >= 10) AS approved,
		        COUNT(*) AS evaluated
		   FROM grade g
		   JOIN edition e ON e.id = g.edition_id
		   JOIN course c ON c.id = e.course_id
		  WHERE g.grade_date >= date_trunc('month', CURRENT_DATE) - ($1 || ' months')::interval
		  GROUP BY date_trunc('month', g.grade_date), e.id, c.name
		  ORDER BY date_trunc('month', g.grade_date) DESC, e.id`, months)
	if err != nil {
		return nil, errors.Wrap(err, "querying monthly report")
	}
	return report, nil
}

func (repo academicsRepository) inTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
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

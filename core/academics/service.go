package academics

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyEnrolled = errors.New("already enrolled")
)

type (
	Repository interface {
		StudentIDByNumber(ctx context.Context, number string) (int, error)
		DegreeExists(ctx context.Context, degreeID int64) (bool, error)
		// EnrollDegree inserts the (student, degree, date) record;
		// a duplicate pair yields ErrAlreadyEnrolled.
		EnrollDegree(ctx context.Context, studentID int, degreeID int64, date string) error

		ActivityExists(ctx context.Context, activityID int64) (bool, error)
		EnrollActivity(ctx context.Context, studentID int, activityID int64) error

		// InClassTx runs fn inside one transaction; nothing fn inserted is
		// retained if fn returns an error.
		InClassTx(ctx context.Context, fn func(ClassTx) error) error
		// InGradeTx runs fn inside one transaction.
		InGradeTx(ctx context.Context, fn func(GradeTx) error) error

		DegreeDetails(ctx context.Context, degreeID int64) ([]DegreeCourseDetail, error)
		StudentDetails(ctx context.Context, studentID int) ([]StudentCourseGrade, error)
		TopStudents(ctx context.Context, limit int) ([]TopStudent, error)
		TopByDistrict(ctx context.Context) ([]DistrictLeader, error)
		MonthlyReport(ctx context.Context, months int) ([]MonthlyCourseReport, error)
	}

	// ClassTx is the transactional view used by the class enrollment engine.
	ClassTx interface {
		// ClassForUpdate fetches the class row and locks it for the rest of
		// the transaction, closing the capacity race between concurrent
		// enrollments.
		ClassForUpdate(classID int64) (Class, error)
		ClassEnrollmentCount(classID int64) (int, error)
		EnrollClass(studentID int, classID int64) error
	}

	// GradeTx is the transactional view used by the grade submission engine.
	GradeTx interface {
		PeriodID(name string, editionID int64) (int, error)
		InsertGrade(studentID, periodID int, date string, value float64, editionID int64) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

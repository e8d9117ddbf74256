package academics

import (
	"context"

	"github.com/pkg/errors"

	"github.com/acadbase/academia/core"
)

// Reporting queries are pass-throughs of store reads; the SQL lives in the
// repository.

const (
	topStudentsLimit   = 3
	reportMonthsWindow = 12
)

func (svc *Service) DegreeDetails(ctx context.Context, degreeID int64) ([]DegreeCourseDetail, error) {
	details, err := svc.repo.DegreeDetails(ctx, degreeID)
	if err != nil {
		return nil, errors.Wrap(err, "querying degree details")
	}
	if details == nil {
		details = []DegreeCourseDetail{}
	}
	return details, nil
}

func (svc *Service) StudentDetails(ctx context.Context, studentNumber string) ([]StudentCourseGrade, error) {
	studentID, err := svc.repo.StudentIDByNumber(ctx, studentNumber)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return nil, core.NewValidationError(errors.New("Student not found"))
		}
		return nil, errors.Wrap(err, "resolving student number")
	}

	grades, err := svc.repo.StudentDetails(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying student details")
	}
	if grades == nil {
		grades = []StudentCourseGrade{}
	}
	return grades, nil
}

func (svc *Service) TopStudents(ctx context.Context) ([]TopStudent, error) {
	top, err := svc.repo.TopStudents(ctx, topStudentsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "querying top students")
	}
	if top == nil {
		top = []TopStudent{}
	}
	return top, nil
}

func (svc *Service) TopByDistrict(ctx context.Context) ([]DistrictLeader, error) {
	leaders, err := svc.repo.TopByDistrict(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying district leaders")
	}
	if leaders == nil {
		leaders = []DistrictLeader{}
	}
	return leaders, nil
}

func (svc *Service) MonthlyReport(ctx context.Context) ([]MonthlyCourseReport, error) {
	report, err := svc.repo.MonthlyReport(ctx, reportMonthsWindow)
	if err != nil {
		return nil, errors.Wrap(err, "querying monthly report")
	}
	if report == nil {
		report = []MonthlyCourseReport{}
	}
	return report, nil
}

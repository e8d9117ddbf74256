package academics

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/acadbase/academia/core"
)

var errNoClasses = errors.New("At least one class ID is required")

// EnrollDegree links a student (by public number) to a degree with an
// enrollment date. Caller must hold the admin role.
func (svc *Service) EnrollDegree(ctx context.Context, studentNumber string, degreeID int64, date string) (string, error) {
	studentID, err := svc.repo.StudentIDByNumber(ctx, studentNumber)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return "", core.NewValidationError(errors.New("Student not found"))
		}
		return "", errors.Wrap(err, "resolving student number")
	}

	ok, err := svc.repo.DegreeExists(ctx, degreeID)
	if err != nil {
		return "", errors.Wrap(err, "checking degree")
	}
	if !ok {
		return "", core.NewValidationError(errors.New("Degree not found"))
	}

	if err = core.ValidateDate(date); err != nil {
		return "", err
	}

	if err = svc.repo.EnrollDegree(ctx, studentID, degreeID, date); err != nil {
		if errors.Cause(err) == ErrAlreadyEnrolled {
			return "", core.NewValidationError(
				fmt.Errorf("Student %s is already enrolled in degree %d", studentNumber, degreeID))
		}
		return "", errors.Wrap(err, "enrolling in degree")
	}
	return fmt.Sprintf("Student %s enrolled in degree %d", studentNumber, degreeID), nil
}

// EnrollClasses enrolls the calling student in the given classes of a course
// edition. The whole batch runs in one transaction: a failure on any class
// retains none of the inserts. Class rows are locked before the capacity
// check so concurrent enrollments cannot overbook.
func (svc *Service) EnrollClasses(ctx context.Context, studentID int, editionID int64, classIDs []int64) (string, error) {
	if len(classIDs) == 0 {
		return "", core.NewValidationError(errNoClasses)
	}

	err := svc.repo.InClassTx(ctx, func(tx ClassTx) error {
		for _, classID := range classIDs {
			cls, err := tx.ClassForUpdate(classID)
			if err != nil {
				if errors.Cause(err) == ErrNotFound {
					return core.NewValidationError(fmt.Errorf("Class ID %d does not exist", classID))
				}
				return errors.Wrap(err, "fetching class")
			}
			if cls.EditionID != editionID {
				return core.NewValidationError(
					fmt.Errorf("Class ID %d does not belong to course edition %d", classID, editionID))
			}

			enrolled, err := tx.ClassEnrollmentCount(classID)
			if err != nil {
				return errors.Wrap(err, "counting class enrollments")
			}
			if enrolled >= cls.Capacity {
				return core.NewValidationError(fmt.Errorf("Class ID %d is full", classID))
			}

			if err = tx.EnrollClass(studentID, classID); err != nil {
				if errors.Cause(err) == ErrAlreadyEnrolled {
					return core.NewValidationError(fmt.Errorf("Already enrolled in class ID %d", classID))
				}
				return errors.Wrap(err, "enrolling in class")
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully enrolled in classes: %v", classIDs), nil
}

// EnrollActivity enrolls the calling student in an extracurricular activity.
func (svc *Service) EnrollActivity(ctx context.Context, studentID int, activityID int64) (string, error) {
	ok, err := svc.repo.ActivityExists(ctx, activityID)
	if err != nil {
		return "", errors.Wrap(err, "checking activity")
	}
	if !ok {
		return "", core.NewValidationError(errors.New("Activity not found"))
	}

	if err = svc.repo.EnrollActivity(ctx, studentID, activityID); err != nil {
		if errors.Cause(err) == ErrAlreadyEnrolled {
			return "", core.NewValidationError(
				fmt.Errorf("Already enrolled in activity %d", activityID))
		}
		return "", errors.Wrap(err, "enrolling in activity")
	}
	return fmt.Sprintf("Successfully enrolled in activity %d", activityID), nil
}

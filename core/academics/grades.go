package academics

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/acadbase/academia/core"
)

var (
	errGradesRequired    = errors.New("Evaluation period and grades are required")
	errDuplicateStudents = errors.New("Duplicate student IDs are not allowed.")
	errGradeStudent      = errors.New("Student not found.")
	errGradeOutOfRange   = errors.New("Invalid grade. Must be between 0 and 20.")
)

// SubmitGrades records a batch of grades for one evaluation period of a
// course edition. Caller must hold the coordinator role. The whole batch is
// validated before any write; the writes run in one transaction.
func (svc *Service) SubmitGrades(ctx context.Context, editionID int64, period string, entries []GradeEntry) error {
	period = core.CleanString(period)
	if period == "" || len(entries) == 0 {
		return core.NewValidationError(errGradesRequired)
	}

	// duplicates are reported before any per-entry check
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.StudentNumber] {
			return core.NewValidationError(errDuplicateStudents)
		}
		seen[entry.StudentNumber] = true
	}

	// validation pass: nothing is written until every entry checks out
	studentIDs := make([]int, len(entries))
	for i, entry := range entries {
		studentID, err := svc.repo.StudentIDByNumber(ctx, entry.StudentNumber)
		if err != nil {
			if errors.Cause(err) == ErrNotFound {
				return core.NewValidationError(errGradeStudent)
			}
			return errors.Wrap(err, "resolving student number")
		}
		studentIDs[i] = studentID

		if entry.Value < 0 || entry.Value > 20 {
			return core.NewValidationError(errGradeOutOfRange)
		}
		if err = core.ValidateDate(entry.Date); err != nil {
			return err
		}
	}

	// write pass
	return svc.repo.InGradeTx(ctx, func(tx GradeTx) error {
		periodID, err := tx.PeriodID(period, editionID)
		if err != nil {
			if errors.Cause(err) == ErrNotFound {
				return core.NewValidationError(
					fmt.Errorf("Evaluation period %s not found for course edition %d", period, editionID))
			}
			return errors.Wrap(err, "resolving evaluation period")
		}
		for i, entry := range entries {
			if err = tx.InsertGrade(studentIDs[i], periodID, entry.Date, entry.Value, editionID); err != nil {
				return errors.Wrap(err, "inserting grade")
			}
		}
		return nil
	})
}

package academics_test

import (
	"context"
	"testing"
	"time"

	"github.com/acadbase/academia/core/academics"
	inmemdb "github.com/acadbase/academia/storage/database/inmem"
	testutil "github.com/acadbase/academia/tests"
)

// Grades older than the 12-month window must not show up in the report.
func TestService_MonthlyReport_window(t *testing.T) {
	db := inmemdb.NewDB()
	svc := academics.NewService(inmemdb.NewAcademicsRepository(db))
	testutil.CreateStudent(t, inmemdb.NewAccountRepository(db), "john", "", "1234567890")
	db.AddEdition(11, "Databases", 2024)
	db.AddPeriod("Normal", 11)
	ctx := context.Background()

	recent := time.Now().AddDate(0, -1, 0).Format("02-01-2006")
	stale := time.Now().AddDate(-2, 0, 0).Format("02-01-2006")
	err := svc.SubmitGrades(ctx, 11, "Normal", []academics.GradeEntry{
		{StudentNumber: "1234567890", Value: 15, Date: recent},
	})
	if err != nil {
		t.Fatalf("SubmitGrades() failed: %v", err)
	}
	err = svc.SubmitGrades(ctx, 11, "Normal", []academics.GradeEntry{
		{StudentNumber: "1234567890", Value: 8, Date: stale},
	})
	if err != nil {
		t.Fatalf("SubmitGrades() failed: %v", err)
	}

	report, err := svc.MonthlyReport(ctx)
	if err != nil {
		t.Fatalf("MonthlyReport() failed: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("MonthlyReport() rows = %d, want 1 (stale grade excluded)", len(report))
	}
	row := report[0]
	if row.Month != recent[3:] || row.EditionID != 11 || row.CourseName != "Databases" {
		t.Errorf("MonthlyReport() row = %+v", row)
	}
	if row.Evaluated != 1 || row.Approved != 1 {
		t.Errorf("MonthlyReport() evaluated/approved = %d/%d, want 1/1", row.Evaluated, row.Approved)
	}
}

package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/acadbase/academia/core/academics"
)

type academicsRepository struct {
	db *DB
}

var _ academics.Repository = (*academicsRepository)(nil)

func NewAcademicsRepository(db *DB) *academicsRepository {
	return &academicsRepository{db: db}
}

func (repo *academicsRepository) studentIDByNumber(number string) (int, error) {
	for id, n := range repo.db.students {
		if n == number {
			return id, nil
		}
	}
	return 0, academics.ErrNotFound
}

func (repo *academicsRepository) StudentIDByNumber(_ context.Context, number string) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.studentIDByNumber(number)
}

func (repo *academicsRepository) DegreeExists(_ context.Context, degreeID int64) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	_, ok := repo.db.degrees[degreeID]
	return ok, nil
}

func (repo *academicsRepository) EnrollDegree(_ context.Context, studentID int, degreeID int64, date string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := degreeKey{studentID: studentID, degreeID: degreeID}
	if _, ok := repo.db.degreeEnrollments[key]; ok {
		return academics.ErrAlreadyEnrolled
	}
	repo.db.degreeEnrollments[key] = date
	return nil
}

func (repo *academicsRepository) ActivityExists(_ context.Context, activityID int64) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	_, ok := repo.db.activities[activityID]
	return ok, nil
}

func (repo *academicsRepository) EnrollActivity(_ context.Context, studentID int, activityID int64) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := activityKey{studentID: studentID, activityID: activityID}
	if repo.db.activityEnrollments[key] {
		return academics.ErrAlreadyEnrolled
	}
	repo.db.activityEnrollments[key] = true
	return nil
}

// classTx buffers inserts and applies them only when the whole batch
// succeeds, mirroring the transactional store.
type classTx struct {
	db      *DB
	pending []classKey
}

func (t *classTx) ClassForUpdate(classID int64) (academics.Class, error) {
	if cls, ok := t.db.classes[classID]; ok {
		return cls, nil
	}
	return academics.Class{}, academics.ErrNotFound
}

func (t *classTx) ClassEnrollmentCount(classID int64) (int, error) {
	count := 0
	for key := range t.db.classEnrollments {
		if key.classID == classID {
			count++
		}
	}
	for _, key := range t.pending {
		if key.classID == classID {
			count++
		}
	}
	return count, nil
}

func (t *classTx) EnrollClass(studentID int, classID int64) error {
	key := classKey{studentID: studentID, classID: classID}
	if t.db.classEnrollments[key] {
		return academics.ErrAlreadyEnrolled
	}
	for _, p := range t.pending {
		if p == key {
			return academics.ErrAlreadyEnrolled
		}
	}
	t.pending = append(t.pending, key)
	return nil
}

func (repo *academicsRepository) InClassTx(_ context.Context, fn func(academics.ClassTx) error) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tx := &classTx{db: repo.db}
	if err := fn(tx); err != nil {
		return err
	}
	for _, key := range tx.pending {
		repo.db.classEnrollments[key] = true
	}
	return nil
}

type gradeTx struct {
	db      *DB
	pending []gradeRecord
}

func (t *gradeTx) PeriodID(name string, editionID int64) (int, error) {
	for _, p := range t.db.periods {
		if p.name == name && p.editionID == editionID {
			return p.id, nil
		}
	}
	return 0, academics.ErrNotFound
}

func (t *gradeTx) InsertGrade(studentID, periodID int, date string, value float64, editionID int64) error {
	t.pending = append(t.pending, gradeRecord{
		studentID: studentID,
		periodID:  periodID,
		date:      date,
		value:     value,
		editionID: editionID,
	})
	return nil
}

func (repo *academicsRepository) InGradeTx(_ context.Context, fn func(academics.GradeTx) error) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tx := &gradeTx{db: repo.db}
	if err := fn(tx); err != nil {
		return err
	}
	repo.db.grades = append(repo.db.grades, tx.pending...)
	return nil
}

func (repo *academicsRepository) DegreeDetails(_ context.Context, degreeID int64) ([]academics.DegreeCourseDetail, error) {
	// degree course structure is not modeled here; the sqlx repository owns
	// the real query
	return []academics.DegreeCourseDetail{}, nil
}

func (repo *academicsRepository) StudentDetails(_ context.Context, studentID int) ([]academics.StudentCourseGrade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	editionIDs := make(map[int64]bool)
	for key := range repo.db.classEnrollments {
		if key.studentID == studentID {
			if cls, ok := repo.db.classes[key.classID]; ok {
				editionIDs[cls.EditionID] = true
			}
		}
	}

	var details []academics.StudentCourseGrade
	for editionID := range editionIDs {
		row := academics.StudentCourseGrade{EditionID: editionID}
		if ed, ok := repo.db.editions[editionID]; ok {
			row.CourseName = ed.courseName
			row.EditionYear = ed.year
		}
		for _, g := range repo.db.grades {
			if g.studentID == studentID && g.editionID == editionID {
				row.Grade = null.Float64From(g.value)
				break
			}
		}
		details = append(details, row)
	}
	sort.Slice(details, func(i, j int) bool { return details[i].EditionID < details[j].EditionID })
	return details, nil
}

func (repo *academicsRepository) TopStudents(_ context.Context, limit int) ([]academics.TopStudent, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	type agg struct {
		studentID int
		sum       float64
		count     int
	}
	byStudent := make(map[int]*agg)
	for _, g := range repo.db.grades {
		a, ok := byStudent[g.studentID]
		if !ok {
			a = &agg{studentID: g.studentID}
			byStudent[g.studentID] = a
		}
		a.sum += g.value
		a.count++
	}

	aggs := make([]*agg, 0, len(byStudent))
	for _, a := range byStudent {
		aggs = append(aggs, a)
	}
	sort.Slice(aggs, func(i, j int) bool {
		return aggs[i].sum/float64(aggs[i].count) > aggs[j].sum/float64(aggs[j].count)
	})
	if len(aggs) > limit {
		aggs = aggs[:limit]
	}

	top := make([]academics.TopStudent, 0, len(aggs))
	for _, a := range aggs {
		ts := academics.TopStudent{
			Average:    a.sum / float64(a.count),
			Grades:     []academics.TopStudentGrade{},
			Activities: []string{},
		}
		if p, ok := repo.db.persons[a.studentID]; ok {
			ts.StudentName = p.Name
		}
		for _, g := range repo.db.grades {
			if g.studentID != a.studentID {
				continue
			}
			tg := academics.TopStudentGrade{EditionID: g.editionID, Value: g.value, Date: g.date}
			if ed, ok := repo.db.editions[g.editionID]; ok {
				tg.CourseName = ed.courseName
			}
			ts.Grades = append(ts.Grades, tg)
		}
		for key := range repo.db.activityEnrollments {
			if key.studentID == a.studentID {
				ts.Activities = append(ts.Activities, repo.db.activities[key.activityID])
			}
		}
		sort.Strings(ts.Activities)
		top = append(top, ts)
	}
	return top, nil
}

func (repo *academicsRepository) TopByDistrict(_ context.Context) ([]academics.DistrictLeader, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	type agg struct {
		sum   float64
		count int
	}
	byStudent := make(map[int]*agg)
	for _, g := range repo.db.grades {
		a, ok := byStudent[g.studentID]
		if !ok {
			a = &agg{}
			byStudent[g.studentID] = a
		}
		a.sum += g.value
		a.count++
	}

	best := make(map[string]academics.DistrictLeader)
	for studentID, a := range byStudent {
		p, ok := repo.db.persons[studentID]
		if !ok {
			continue
		}
		avg := a.sum / float64(a.count)
		leader, seen := best[p.District]
		if !seen || avg > leader.Average {
			best[p.District] = academics.DistrictLeader{
				StudentNumber: repo.db.students[studentID],
				District:      p.District,
				Average:       avg,
			}
		}
	}

	leaders := make([]academics.DistrictLeader, 0, len(best))
	for _, leader := range best {
		leaders = append(leaders, leader)
	}
	sort.Slice(leaders, func(i, j int) bool { return leaders[i].District < leaders[j].District })
	return leaders, nil
}

func (repo *academicsRepository) MonthlyReport(_ context.Context, months int) ([]academics.MonthlyCourseReport, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	now := time.Now()
	cutoff := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -months, 0)

	type key struct {
		month     string
		editionID int64
	}
	byMonth := make(map[key]*academics.MonthlyCourseReport)
	for _, g := range repo.db.grades {
		// grade dates are DD-MM-YYYY; the month bucket is MM-YYYY
		gradeDate, err := time.Parse("02-01-2006", g.date)
		if err != nil || gradeDate.Before(cutoff) {
			continue
		}
		k := key{month: g.date[3:], editionID: g.editionID}
		row, ok := byMonth[k]
		if !ok {
			row = &academics.MonthlyCourseReport{Month: k.month, EditionID: g.editionID}
			if ed, found := repo.db.editions[g.editionID]; found {
				row.CourseName = ed.courseName
			}
			byMonth[k] = row
		}
		row.Evaluated++
		if g.value >= 10 {
			row.Approved++
		}
	}

	report := make([]academics.MonthlyCourseReport, 0, len(byMonth))
	for _, row := range byMonth {
		report = append(report, *row)
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].Month != report[j].Month {
			return report[i].Month > report[j].Month
		}
		return report[i].EditionID < report[j].EditionID
	})
	return report, nil
}

package academics

import (
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"
)

// Degree aggregates courses; students enroll into it by date.
type Degree struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Class is a scheduled time-table slot within a course edition, with its own
// enrollment capacity.
type Class struct {
	ID        int64  `json:"id" db:"id"`
	EditionID int64  `json:"edition_id" db:"edition_id"`
	Capacity  int    `json:"capacity" db:"capacity"`
	Schedule  string `json:"schedule" db:"schedule"`
}

// GradeEntry is one row of a grade submission batch.
type GradeEntry struct {
	StudentNumber string
	Value         float64
	Date          string // DD-MM-YYYY
}

// DegreeCourseDetail is one row of the degree details report: a course
// edition with its occupancy and teaching staff.
type DegreeCourseDetail struct {
	CourseID      int64         `json:"course_id" db:"course_id"`
	CourseName    string        `json:"course_name" db:"course_name"`
	EditionID     int64         `json:"course_edition_id" db:"edition_id"`
	EditionYear   int           `json:"course_edition_year" db:"edition_year"`
	EnrolledCount int           `json:"enrolled_count" db:"enrolled_count"`
	Capacity      int           `json:"capacity" db:"capacity"`
	Coordinators  pq.Int64Array `json:"coordinator_id" db:"coordinators"`
	Instructors   pq.Int64Array `json:"instructors" db:"instructors"`
}

// StudentCourseGrade is one row of the student details report. Grade is null
// while the edition has not been graded yet.
type StudentCourseGrade struct {
	EditionID   int64        `json:"course_edition_id" db:"edition_id"`
	CourseName  string       `json:"course_name" db:"course_name"`
	EditionYear int          `json:"course_edition_year" db:"edition_year"`
	Grade       null.Float64 `json:"grade" db:"grade"`
}

// TopStudent is one row of the top-students report.
type TopStudent struct {
	StudentName string            `json:"student_name" db:"student_name"`
	Average     float64           `json:"average_grade" db:"average_grade"`
	Grades      []TopStudentGrade `json:"grades"`
	Activities  []string          `json:"activities"`
}

// TopStudentGrade details one grade backing a TopStudent's average.
type TopStudentGrade struct {
	EditionID  int64   `json:"course_edition_id" db:"edition_id"`
	CourseName string  `json:"course_edition_name" db:"course_name"`
	Value      float64 `json:"grade" db:"grade"`
	Date       string  `json:"date" db:"grade_date"`
}

// DistrictLeader is the best-average student of one district.
type DistrictLeader struct {
	StudentNumber string  `json:"student_id" db:"n_student"`
	District      string  `json:"district" db:"district"`
	Average       float64 `json:"average_grade" db:"average_grade"`
}

// MonthlyCourseReport counts approved vs evaluated grades for one course
// edition in one month.
type MonthlyCourseReport struct {
	Month      string `json:"month" db:"month"`
	EditionID  int64  `json:"course_edition_id" db:"edition_id"`
	CourseName string `json:"course_edition_name" db:"course_name"`
	Approved   int    `json:"approved" db:"approved"`
	Evaluated  int    `json:"evaluated" db:"evaluated"`
}

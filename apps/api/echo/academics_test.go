package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/acadbase/academia/core/academics"
	testutil "github.com/acadbase/academia/tests"
)

func Test_academicsApi_enrollDegree(t *testing.T) {
	app := setupServer(t)
	adminID := testutil.CreateAdmin(t, app.accountRepo, "admin", "s3cret", "9999999999")
	studentID := testutil.CreateStudent(t, app.accountRepo, "john", "s3cret", "1234567890")
	app.db.AddDegree(7, "Informatics Engineering")
	adminToken := app.token(t, adminID)

	tests := []httpTest{
		{name: "no token", path: "/enroll_degree/7", wantCode: http.StatusUnauthorized,
			wantData: envelope(401, "Token is missing!", nil)},
		{name: "student token", path: "/enroll_degree/7", token: app.token(t, studentID), wantCode: http.StatusUnauthorized,
			body:     []byte(`{"student_id": "1234567890", "date": "01-09-2023"}`),
			wantData: envelope(401, "Only admins can use this query", nil)},
		{name: "bad degree id", path: "/enroll_degree/abc", token: adminToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"student_id": "1234567890", "date": "01-09-2023"}`),
			wantData: envelope(400, "Invalid degree ID", nil)},
		{name: "missing fields", path: "/enroll_degree/7", token: adminToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{}`),
			wantData: envelope(400, "Student ID and date are required", nil)},
		{name: "unknown degree", path: "/enroll_degree/99", token: adminToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"student_id": "1234567890", "date": "01-09-2023"}`),
			wantData: envelope(400, "Degree not found", nil)},
		{name: "unknown student", path: "/enroll_degree/7", token: adminToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"student_id": "0000000000", "date": "01-09-2023"}`),
			wantData: envelope(400, "Student not found", nil)},
		{name: "bad date", path: "/enroll_degree/7", token: adminToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"student_id": "1234567890", "date": "31-04-2023"}`),
			wantData: envelope(400, "Invalid day for month 4. Must be between 1 and 30.", nil)},
		{name: "ok with bare number student id", path: "/enroll_degree/7", token: adminToken, wantCode: http.StatusOK,
			body:     []byte(`{"student_id": 1234567890, "date": "01-09-2023"}`),
			wantData: envelope(200, "", "Student 1234567890 enrolled in degree 7")},
		{name: "duplicate", path: "/enroll_degree/7", token: adminToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"student_id": "1234567890", "date": "01-09-2023"}`),
			wantData: envelope(400, "Student 1234567890 is already enrolled in degree 7", nil)},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost

		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(t, tt))
		})
	}
}

func Test_academicsApi_enrollCourseEdition(t *testing.T) {
	app := setupServer(t)
	adminID := testutil.CreateAdmin(t, app.accountRepo, "admin", "s3cret", "9999999999")
	studentID := testutil.CreateStudent(t, app.accountRepo, "john", "s3cret", "1234567890")
	app.db.AddClass(academics.Class{ID: 101, EditionID: 11, Capacity: 30})
	app.db.AddClass(academics.Class{ID: 201, EditionID: 22, Capacity: 30})
	studentToken := app.token(t, studentID)

	tests := []httpTest{
		{name: "admin token", path: "/enroll_course_edition/11", token: app.token(t, adminID), wantCode: http.StatusUnauthorized,
			body:     []byte(`{"classes": [101]}`),
			wantData: envelope(401, "Only student can use this query", nil)},
		{name: "no classes", path: "/enroll_course_edition/11", token: studentToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"classes": []}`),
			wantData: envelope(400, "At least one class ID is required", nil)},
		{name: "unknown class", path: "/enroll_course_edition/11", token: studentToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"classes": [999]}`),
			wantData: envelope(400, "Class ID 999 does not exist", nil)},
		{name: "edition mismatch", path: "/enroll_course_edition/11", token: studentToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"classes": [201]}`),
			wantData: envelope(400, "Class ID 201 does not belong to course edition 11", nil)},
		{name: "ok", path: "/enroll_course_edition/11", token: studentToken, wantCode: http.StatusOK,
			body:     []byte(`{"classes": [101]}`),
			wantData: envelope(200, "", "Successfully enrolled in classes: [101]")},
		{name: "duplicate", path: "/enroll_course_edition/11", token: studentToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"classes": [101]}`),
			wantData: envelope(400, "Already enrolled in class ID 101", nil)},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost

		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(t, tt))
		})
	}
}

func Test_academicsApi_submitGrades(t *testing.T) {
	app := setupServer(t)
	testutil.CreateStudent(t, app.accountRepo, "john", "s3cret", "1234567890")
	coordID := testutil.CreateCoordinator(t, app.accountRepo, "coord", "s3cret", "8888888888")
	assistantID := testutil.CreateAssistant(t, app.accountRepo, "assist", "s3cret", "7777777777")
	app.db.AddPeriod("Normal", 11)
	coordToken := app.token(t, coordID)

	tests := []httpTest{
		{name: "assistant token", path: "/submit_grades/11", token: app.token(t, assistantID), wantCode: http.StatusUnauthorized,
			body:     []byte(`{"period": "Normal", "grades": [["1234567890", 15, "01-07-2024"]]}`),
			wantData: envelope(401, "Only coordinators can use this query", nil)},
		{name: "missing period", path: "/submit_grades/11", token: coordToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"grades": [["1234567890", 15, "01-07-2024"]]}`),
			wantData: envelope(400, "Evaluation period and grades are required", nil)},
		{name: "duplicate students", path: "/submit_grades/11", token: coordToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"period": "Normal", "grades": [["1234567890", 15, "01-07-2024"], [1234567890, 12, "01-07-2024"]]}`),
			wantData: envelope(400, "Duplicate student IDs are not allowed.", nil)},
		{name: "grade out of range", path: "/submit_grades/11", token: coordToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"period": "Normal", "grades": [["1234567890", 21, "01-07-2024"]]}`),
			wantData: envelope(400, "Invalid grade. Must be between 0 and 20.", nil)},
		{name: "unknown period", path: "/submit_grades/11", token: coordToken, wantCode: http.StatusBadRequest,
			body:     []byte(`{"period": "Recurso", "grades": [["1234567890", 15, "01-07-2024"]]}`),
			wantData: envelope(400, "Evaluation period Recurso not found for course edition 11", nil)},
		{name: "ok", path: "/submit_grades/11", token: coordToken, wantCode: http.StatusOK,
			body:     []byte(`{"period": "Normal", "grades": [["1234567890", 15.5, "01-07-2024"]]}`),
			wantData: envelope(200, "", "Grades submitted successfully")},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost

		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(t, tt))
		})
	}

	if got := app.db.GradeCount(); got != 1 {
		t.Errorf("stored grades = %d, want 1", got)
	}
}

func Test_academicsApi_reports(t *testing.T) {
	app := setupServer(t)
	adminID := testutil.CreateAdmin(t, app.accountRepo, "admin", "s3cret", "9999999999")
	studentID := testutil.CreateStudent(t, app.accountRepo, "john", "s3cret", "1234567890")
	adminToken := app.token(t, adminID)
	studentToken := app.token(t, studentID)

	app.db.AddEdition(11, "Databases", 2024)
	app.db.AddClass(academics.Class{ID: 101, EditionID: 11, Capacity: 30})

	tests := []httpTest{
		{name: "student details requires known student", method: http.MethodGet, path: "/student_details/0000000000",
			token: studentToken, wantCode: http.StatusBadRequest,
			wantData: envelope(400, "Student not found", nil)},
		{name: "student details", method: http.MethodGet, path: "/student_details/1234567890",
			token: studentToken, wantCode: http.StatusOK,
			wantData: envelope(200, "", []interface{}{})},
		{name: "degree details non-admin", method: http.MethodGet, path: "/degree_details/7",
			token: studentToken, wantCode: http.StatusUnauthorized,
			wantData: envelope(401, "Only admins can use this query", nil)},
		{name: "degree details", method: http.MethodGet, path: "/degree_details/7",
			token: adminToken, wantCode: http.StatusOK,
			wantData: envelope(200, "", []interface{}{})},
		{name: "top3 empty", method: http.MethodGet, path: "/top3",
			token: adminToken, wantCode: http.StatusOK,
			wantData: envelope(200, "", []interface{}{})},
		{name: "top by district empty", method: http.MethodGet, path: "/top_by_district",
			token: adminToken, wantCode: http.StatusOK,
			wantData: envelope(200, "", []interface{}{})},
		{name: "report empty", method: http.MethodGet, path: "/report",
			token: adminToken, wantCode: http.StatusOK,
			wantData: envelope(200, "", []interface{}{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(t, tt))
		})
	}
}

// login then use the returned token straight away, as a client would
func Test_api_loginEnrollFlow(t *testing.T) {
	app := setupServer(t)
	testutil.CreateStudent(t, app.accountRepo, "john", "s3cret", "1234567890")
	app.db.AddClass(academics.Class{ID: 101, EditionID: 11, Capacity: 30})

	loginRec := app.do(t, httpTest{
		method: http.MethodPut, path: "/user",
		body: []byte(`{"username": "john", "password": "s3cret"}`),
	})
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login failed: %s", loginRec.Body.Bytes())
	}
	var env struct {
		Results string `json:"results"`
	}
	if err := json.Unmarshal(loginRec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding login envelope failed: %v", err)
	}

	tt := httpTest{
		method: http.MethodPost, path: "/enroll_course_edition/11",
		token: env.Results, body: []byte(`{"classes": [101]}`),
		wantCode: http.StatusOK,
		wantData: envelope(200, "", "Successfully enrolled in classes: [101]"),
	}
	checkCodeAndData(t, tt, app.do(t, tt))
}

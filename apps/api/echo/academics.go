package echoapi

import (
	"encoding/json"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acadbase/academia/core"
	"github.com/acadbase/academia/core/academics"
	"github.com/acadbase/academia/core/account"
)

type academicsApi struct {
	svc *academics.Service
}

func registerAcademicsAPI(app *echo.Echo, token echo.MiddlewareFunc, opts *Options) {
	api := academicsApi{svc: opts.AcademicsSvc}

	admin := roleMiddleware(opts.AccountSvc, account.RoleAdmin)
	student := roleMiddleware(opts.AccountSvc, account.RoleStudent)
	coordinator := roleMiddleware(opts.AccountSvc, account.RoleCoordinator)

	app.POST("/enroll_degree/:degree_id", api.enrollDegree, token, admin)
	app.POST("/enroll_activity/:activity_id", api.enrollActivity, token, student)
	app.POST("/enroll_course_edition/:edition_id", api.enrollCourseEdition, token, student)
	app.POST("/submit_grades/:edition_id", api.submitGrades, token, coordinator)

	app.GET("/student_details/:student_id", api.studentDetails, token)
	app.GET("/degree_details/:degree_id", api.degreeDetails, token, admin)
	app.GET("/top3", api.topStudents, token, admin)
	app.GET("/top_by_district", api.topByDistrict, token, admin)
	app.GET("/report", api.monthlyReport, token, admin)
}

// parseID parses a numeric path parameter; failures surface as 400s with the
// given message.
func parseID(ctx echo.Context, param, errMsg string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil {
		return 0, core.NewValidationError(errors.New(errMsg))
	}
	return id, nil
}

type EnrollDegreeRequest struct {
	StudentID core.NumberString `json:"student_id"`
	Date      string            `json:"date"`
}

type EnrollClassesRequest struct {
	Classes []int64 `json:"classes"`
}

type SubmitGradesRequest struct {
	Period string       `json:"period"`
	Grades []gradeTuple `json:"grades"`
}

// gradeTuple decodes the wire form of one grade: a [student, value, date]
// array. The student element may be a bare number or a string.
type gradeTuple struct {
	Student core.NumberString
	Value   float64
	Date    string
}

func (gt *gradeTuple) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return errors.Errorf("grade entry must have 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &gt.Student); err != nil {
		return errors.Wrap(err, "decoding grade student")
	}
	if err := json.Unmarshal(raw[1], &gt.Value); err != nil {
		return errors.Wrap(err, "decoding grade value")
	}
	if err := json.Unmarshal(raw[2], &gt.Date); err != nil {
		return errors.Wrap(err, "decoding grade date")
	}
	return nil
}

// Handlers

func (api *academicsApi) enrollDegree(ctx echo.Context) error {
	degreeID, err := parseID(ctx, "degree_id", "Invalid degree ID")
	if err != nil {
		return err
	}

	var data EnrollDegreeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EnrollDegreeRequest")
	}
	data.Date = core.CleanString(data.Date)
	if data.StudentID.String() == "" || data.Date == "" {
		return core.NewValidationError(errors.New("Student ID and date are required"))
	}

	msg, err := api.svc.EnrollDegree(ctx.Request().Context(), data.StudentID.String(), degreeID, data.Date)
	if err != nil {
		return err
	}
	return respond(ctx, msg)
}

func (api *academicsApi) enrollActivity(ctx echo.Context) error {
	activityID, err := parseID(ctx, "activity_id", "Invalid activity ID")
	if err != nil {
		return err
	}
	personID, err := contextPersonID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context person")
	}

	msg, err := api.svc.EnrollActivity(ctx.Request().Context(), personID, activityID)
	if err != nil {
		return err
	}
	return respond(ctx, msg)
}

func (api *academicsApi) enrollCourseEdition(ctx echo.Context) error {
	editionID, err := parseID(ctx, "edition_id", "Invalid course edition ID")
	if err != nil {
		return err
	}
	personID, err := contextPersonID(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context person")
	}

	var data EnrollClassesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EnrollClassesRequest")
	}

	msg, err := api.svc.EnrollClasses(ctx.Request().Context(), personID, editionID, data.Classes)
	if err != nil {
		return err
	}
	return respond(ctx, msg)
}

func (api *academicsApi) submitGrades(ctx echo.Context) error {
	editionID, err := parseID(ctx, "edition_id", "Invalid course edition ID")
	if err != nil {
		return err
	}

	var data SubmitGradesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitGradesRequest")
	}

	entries := make([]academics.GradeEntry, 0, len(data.Grades))
	for _, gt := range data.Grades {
		entries = append(entries, academics.GradeEntry{
			StudentNumber: gt.Student.String(),
			Value:         gt.Value,
			Date:          gt.Date,
		})
	}

	if err := api.svc.SubmitGrades(ctx.Request().Context(), editionID, data.Period, entries); err != nil {
		return err
	}
	return respond(ctx, "Grades submitted successfully")
}

func (api *academicsApi) studentDetails(ctx echo.Context) error {
	number := core.CleanString(ctx.Param("student_id"))

	details, err := api.svc.StudentDetails(ctx.Request().Context(), number)
	if err != nil {
		return err
	}
	return respond(ctx, details)
}

func (api *academicsApi) degreeDetails(ctx echo.Context) error {
	degreeID, err := parseID(ctx, "degree_id", "Invalid degree ID")
	if err != nil {
		return err
	}

	details, err := api.svc.DegreeDetails(ctx.Request().Context(), degreeID)
	if err != nil {
		return err
	}
	return respond(ctx, details)
}

func (api *academicsApi) topStudents(ctx echo.Context) error {
	top, err := api.svc.TopStudents(ctx.Request().Context())
	if err != nil {
		return err
	}
	return respond(ctx, top)
}

func (api *academicsApi) topByDistrict(ctx echo.Context) error {
	leaders, err := api.svc.TopByDistrict(ctx.Request().Context())
	if err != nil {
		return err
	}
	return respond(ctx, leaders)
}

func (api *academicsApi) monthlyReport(ctx echo.Context) error {
	report, err := api.svc.MonthlyReport(ctx.Request().Context())
	if err != nil {
		return err
	}
	return respond(ctx, report)
}

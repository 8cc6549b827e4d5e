package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/attendance"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/holiday"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/leave"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/overtime"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/recovery"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/schedule"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/clock"
)

type fakeResolver struct {
	day schedule.ResolvedDay
}

func (f *fakeResolver) ResolveDay(context.Context, string, time.Time) (schedule.ResolvedDay, error) {
	return f.day, nil
}

// fakeDailyRecords mirrors the repository's upsert contract: one row per
// (employee, date), COALESCE semantics for the clock timestamps, the
// stored id surviving a merge, and notes appended.
type fakeDailyRecords struct {
	rows map[string]*attendance.DailyRecord

	upserted []attendance.DailyRecord
}

func newFakeDailyRecords() *fakeDailyRecords {
	return &fakeDailyRecords{rows: map[string]*attendance.DailyRecord{}}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeDailyRecords) Upsert(_ context.Context, rec attendance.DailyRecord) (attendance.DailyRecord, error) {
	f.upserted = append(f.upserted, rec)

	key := recordKey(rec.EmployeeID, rec.Date)
	existing, ok := f.rows[key]
	if !ok {
		cp := rec
		f.rows[key] = &cp
		return cp, nil
	}

	if rec.ClockInAt != nil {
		existing.ClockInAt = rec.ClockInAt
	}
	if rec.ClockOutAt != nil {
		existing.ClockOutAt = rec.ClockOutAt
	}
	existing.DayStatus = rec.DayStatus
	existing.LateMinutes = rec.LateMinutes
	existing.EarlyLeaveMinutes = rec.EarlyLeaveMinutes
	existing.GrossMinutes = rec.GrossMinutes
	existing.NetWorkedMinutes = rec.NetWorkedMinutes
	existing.OvertimeMinutes = rec.OvertimeMinutes
	existing.Source = rec.Source
	if rec.Notes != nil {
		if existing.Notes == nil {
			existing.Notes = rec.Notes
		} else {
			joined := *existing.Notes + "\n" + *rec.Notes
			existing.Notes = &joined
		}
	}
	return *existing, nil
}

func (f *fakeDailyRecords) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.DailyRecord, error) {
	rec, ok := f.rows[recordKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeDailyRecords) List(context.Context, attendance.ListFilter) ([]attendance.DailyRecord, int64, error) {
	var out []attendance.DailyRecord
	for _, rec := range f.rows {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

// The fact repositories below report "nothing declared" for every date.

type noHolidays struct{}

func (noHolidays) GetByDate(context.Context, time.Time) (*holiday.PublicHoliday, error) {
	return nil, nil
}

func (noHolidays) ListByRange(context.Context, time.Time, time.Time) ([]holiday.PublicHoliday, error) {
	return nil, nil
}

type noRecovery struct{}

func (noRecovery) FindForEmployee(context.Context, string, time.Time) (*recovery.Declaration, error) {
	return nil, nil
}

type noLeaves struct{}

func (noLeaves) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	return req, nil
}

func (noLeaves) GetByID(context.Context, string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (noLeaves) GetApprovedForDate(context.Context, string, time.Time) (*leave.ApprovedLeave, error) {
	return nil, nil
}

func (noLeaves) UpdateStatusGuarded(context.Context, string, string, string) (bool, error) {
	return false, nil
}

func (noLeaves) SetBalanceDeducted(context.Context, string, bool) error {
	return nil
}

type noOvertimeRequests struct{}

func (noOvertimeRequests) Create(_ context.Context, req overtime.Request) (overtime.Request, error) {
	return req, nil
}

func (noOvertimeRequests) GetByID(context.Context, string) (overtime.Request, error) {
	return overtime.Request{}, overtime.ErrRequestNotFound
}

func (noOvertimeRequests) GetApprovedForDate(context.Context, string, time.Time) (*overtime.Request, error) {
	return nil, nil
}

func (noOvertimeRequests) UpdateStatusGuarded(context.Context, string, string, string) (bool, error) {
	return false, nil
}

type noOvertimePeriods struct{}

func (noOvertimePeriods) ListActiveForEmployee(context.Context, string, time.Time) ([]overtime.Period, error) {
	return nil, nil
}

type noCorrections struct{}

func (noCorrections) Create(_ context.Context, req attendance.CorrectionRequest) (attendance.CorrectionRequest, error) {
	return req, nil
}

func (noCorrections) GetByID(context.Context, string) (attendance.CorrectionRequest, error) {
	return attendance.CorrectionRequest{}, attendance.ErrCorrectionNotFound
}

func (noCorrections) UpdateStatusGuarded(context.Context, string, string, string) (bool, error) {
	return false, nil
}

func newClockFixture(now time.Time) (*AttendanceServiceImpl, *fakeDailyRecords) {
	records := newFakeDailyRecords()
	svc := NewAttendanceService(
		clock.Fixed(now),
		&fakeResolver{day: officeDay()},
		records,
		noCorrections{},
		noHolidays{},
		noRecovery{},
		noLeaves{},
		noOvertimeRequests{},
		noOvertimePeriods{},
	)
	return svc, records
}

func TestClockInCreatesRecordWithID(t *testing.T) {
	t.Parallel()

	svc, records := newClockFixture(wall(9, 0))

	saved, err := svc.ClockIn(context.Background(), attendance.ClockRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	require.NotNil(t, saved.ClockInAt)
	assert.True(t, saved.ClockInAt.Equal(wall(9, 0)))
	assert.Nil(t, saved.ClockOutAt)
	assert.Equal(t, attendance.StatusPending, saved.DayStatus)
	assert.Equal(t, attendance.SourceClock, saved.Source)

	require.Len(t, records.upserted, 1)
	assert.NotEmpty(t, records.upserted[0].ID)
}

func TestClockInTwiceSameDay(t *testing.T) {
	t.Parallel()

	svc, _ := newClockFixture(wall(9, 0))

	_, err := svc.ClockIn(context.Background(), attendance.ClockRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), attendance.ClockRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	t.Parallel()

	svc, _ := newClockFixture(wall(17, 0))

	_, err := svc.ClockOut(context.Background(), attendance.ClockRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestClockOutCompletesDayAndKeepsRowID(t *testing.T) {
	t.Parallel()

	svc, records := newClockFixture(wall(17, 0))
	stored := attendance.DailyRecord{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		Date:       testDate,
		ClockInAt:  wallPtr(9, 0),
		DayStatus:  attendance.StatusPending,
		Source:     attendance.SourceClock,
	}
	records.rows[recordKey("emp-1", testDate)] = &stored

	saved, err := svc.ClockOut(context.Background(), attendance.ClockRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	// The upsert merged into the existing row; its id is untouched.
	assert.Equal(t, "rec-1", saved.ID)
	require.NotNil(t, saved.ClockOutAt)
	assert.True(t, saved.ClockOutAt.Equal(wall(17, 0)))
	assert.Equal(t, attendance.StatusPresent, saved.DayStatus)
	assert.Equal(t, 420, saved.NetWorkedMinutes)
}

func strPtr(s string) *string {
	return &s
}

func TestApplyCorrectionInsertsWhenAbsent(t *testing.T) {
	t.Parallel()

	svc, records := newClockFixture(wall(12, 0))
	req := attendance.CorrectionRequest{
		ID:           "cr-1",
		EmployeeID:   "emp-1",
		Date:         testDate,
		RequestedIn:  strPtr("09:00"),
		RequestedOut: strPtr("17:00"),
		Status:       "approved",
	}

	err := svc.ApplyCorrection(context.Background(), req)
	require.NoError(t, err)

	rec := records.rows[recordKey("emp-1", testDate)]
	require.NotNil(t, rec)
	assert.NotEmpty(t, rec.ID)
	require.NotNil(t, rec.ClockInAt)
	assert.True(t, rec.ClockInAt.Equal(wall(9, 0)))
	require.NotNil(t, rec.ClockOutAt)
	assert.True(t, rec.ClockOutAt.Equal(wall(17, 0)))
	assert.Equal(t, attendance.StatusPresent, rec.DayStatus)
	assert.Equal(t, attendance.SourceCorrection, rec.Source)
	require.NotNil(t, rec.Notes)
	assert.Equal(t, "corrected via request cr-1", *rec.Notes)
}

func TestApplyCorrectionMergesOverExistingRecord(t *testing.T) {
	t.Parallel()

	svc, records := newClockFixture(wall(12, 0))
	records.rows[recordKey("emp-1", testDate)] = &attendance.DailyRecord{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		Date:       testDate,
		ClockInAt:  wallPtr(9, 0),
		DayStatus:  attendance.StatusPending,
		Source:     attendance.SourceClock,
		Notes:      strPtr("badge reader offline"),
	}

	req := attendance.CorrectionRequest{
		ID:           "cr-1",
		EmployeeID:   "emp-1",
		Date:         testDate,
		RequestedOut: strPtr("17:00"),
		Status:       "approved",
	}
	err := svc.ApplyCorrection(context.Background(), req)
	require.NoError(t, err)

	rec := records.rows[recordKey("emp-1", testDate)]
	assert.Equal(t, "rec-1", rec.ID)
	require.NotNil(t, rec.ClockInAt)
	assert.True(t, rec.ClockInAt.Equal(wall(9, 0)))
	require.NotNil(t, rec.ClockOutAt)
	assert.True(t, rec.ClockOutAt.Equal(wall(17, 0)))
	assert.Equal(t, attendance.StatusPresent, rec.DayStatus)
	assert.Equal(t, attendance.SourceCorrection, rec.Source)
	require.NotNil(t, rec.Notes)
	assert.Equal(t, "badge reader offline\ncorrected via request cr-1", *rec.Notes)
}

func TestApplyCorrectionForcesPresentWithoutClockOut(t *testing.T) {
	t.Parallel()

	svc, records := newClockFixture(wall(12, 0))
	req := attendance.CorrectionRequest{
		ID:          "cr-1",
		EmployeeID:  "emp-1",
		Date:        testDate,
		RequestedIn: strPtr("10:30"),
		Status:      "approved",
	}

	err := svc.ApplyCorrection(context.Background(), req)
	require.NoError(t, err)

	rec := records.rows[recordKey("emp-1", testDate)]
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusPresent, rec.DayStatus)
	assert.Equal(t, attendance.SourceCorrection, rec.Source)
}

func TestApplyCorrectionRejectsMalformedTime(t *testing.T) {
	t.Parallel()

	svc, records := newClockFixture(wall(12, 0))
	req := attendance.CorrectionRequest{
		ID:          "cr-1",
		EmployeeID:  "emp-1",
		Date:        testDate,
		RequestedIn: strPtr("9 o'clock"),
		Status:      "approved",
	}

	err := svc.ApplyCorrection(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, records.upserted)
}

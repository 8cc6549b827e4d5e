package approval

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/approval"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/attendance"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/employee"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/leave"
	"github.com/yahya12213/SiteManagement-sub010/internal/domain/overtime"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/clock"
)

// passthroughTx runs the callback without a real transaction so the fakes
// stay plain maps.
type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeEmployees struct {
	byID      map[string]employee.Employee
	byProfile map[string]employee.Employee
}

func (f *fakeEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployees) GetByProfileID(_ context.Context, profileID string) (employee.Employee, error) {
	emp, ok := f.byProfile[profileID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeChains struct {
	chain approval.Chain
}

func (f *fakeChains) GetChain(context.Context, string) (approval.Chain, error) {
	return f.chain, nil
}

type fakeRecords struct {
	records []approval.Record
}

func (f *fakeRecords) Append(_ context.Context, rec approval.Record) (approval.Record, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeRecords) ListByRequest(_ context.Context, kind approval.RequestKind, requestID string) ([]approval.Record, error) {
	var out []approval.Record
	for _, rec := range f.records {
		if rec.RequestKind == kind && rec.RequestID == requestID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeLeaveRequests struct {
	byID map[string]*leave.LeaveRequest
}

func (f *fakeLeaveRequests) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	cp := req
	f.byID[req.ID] = &cp
	return req, nil
}

func (f *fakeLeaveRequests) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.byID[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return *req, nil
}

func (f *fakeLeaveRequests) GetApprovedForDate(context.Context, string, time.Time) (*leave.ApprovedLeave, error) {
	return nil, nil
}

func (f *fakeLeaveRequests) UpdateStatusGuarded(_ context.Context, id, expected, next string) (bool, error) {
	req, ok := f.byID[id]
	if !ok || req.Status != expected {
		return false, nil
	}
	req.Status = next
	return true, nil
}

func (f *fakeLeaveRequests) SetBalanceDeducted(_ context.Context, id string, deducted bool) error {
	req, ok := f.byID[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	req.BalanceDeducted = deducted
	return nil
}

type fakeLeaveTypes struct {
	byID map[string]leave.LeaveType
}

func (f *fakeLeaveTypes) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.byID[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypes) List(context.Context) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.byID {
		out = append(out, lt)
	}
	return out, nil
}

type fakeBalances struct {
	deducted []float64
	restored []float64
}

func (f *fakeBalances) Deduct(_ context.Context, _, _ string, days float64) error {
	f.deducted = append(f.deducted, days)
	return nil
}

func (f *fakeBalances) Restore(_ context.Context, _, _ string, days float64) error {
	f.restored = append(f.restored, days)
	return nil
}

func (f *fakeBalances) GetByEmployeeAndType(context.Context, string, string) (leave.Balance, error) {
	return leave.Balance{RemainingDays: 30}, nil
}

type fakeOvertimeRequests struct {
	byID map[string]*overtime.Request
}

func (f *fakeOvertimeRequests) Create(_ context.Context, req overtime.Request) (overtime.Request, error) {
	cp := req
	f.byID[req.ID] = &cp
	return req, nil
}

func (f *fakeOvertimeRequests) GetByID(_ context.Context, id string) (overtime.Request, error) {
	req, ok := f.byID[id]
	if !ok {
		return overtime.Request{}, overtime.ErrRequestNotFound
	}
	return *req, nil
}

func (f *fakeOvertimeRequests) GetApprovedForDate(context.Context, string, time.Time) (*overtime.Request, error) {
	return nil, nil
}

func (f *fakeOvertimeRequests) UpdateStatusGuarded(_ context.Context, id, expected, next string) (bool, error) {
	req, ok := f.byID[id]
	if !ok || req.Status != expected {
		return false, nil
	}
	req.Status = next
	return true, nil
}

type fakeCorrections struct {
	byID map[string]*attendance.CorrectionRequest
}

func (f *fakeCorrections) Create(_ context.Context, req attendance.CorrectionRequest) (attendance.CorrectionRequest, error) {
	cp := req
	f.byID[req.ID] = &cp
	return req, nil
}

func (f *fakeCorrections) GetByID(_ context.Context, id string) (attendance.CorrectionRequest, error) {
	req, ok := f.byID[id]
	if !ok {
		return attendance.CorrectionRequest{}, attendance.ErrCorrectionNotFound
	}
	return *req, nil
}

func (f *fakeCorrections) UpdateStatusGuarded(_ context.Context, id, expected, next string) (bool, error) {
	req, ok := f.byID[id]
	if !ok || req.Status != expected {
		return false, nil
	}
	req.Status = next
	return true, nil
}

type fakeApplier struct {
	applied []attendance.CorrectionRequest
}

func (f *fakeApplier) ApplyCorrection(_ context.Context, req attendance.CorrectionRequest) error {
	f.applied = append(f.applied, req)
	return nil
}

type fixture struct {
	svc         *Service
	records     *fakeRecords
	leaveReqs   *fakeLeaveRequests
	balances    *fakeBalances
	overtimeReq *fakeOvertimeRequests
	corrections *fakeCorrections
	applier     *fakeApplier
}

// newFixture wires a service over in-memory fakes: requester emp-1
// (profile p-emp), direct manager emp-mgr0 (profile p-mgr0) at rank 0 and
// emp-mgr1 (profile p-mgr1) at rank 1.
func newFixture() *fixture {
	employees := &fakeEmployees{
		byID: map[string]employee.Employee{
			"emp-1":    {ID: "emp-1", ProfileID: "p-emp", FullName: "Worker One"},
			"emp-mgr0": {ID: "emp-mgr0", ProfileID: "p-mgr0", FullName: "Direct Manager"},
			"emp-mgr1": {ID: "emp-mgr1", ProfileID: "p-mgr1", FullName: "Senior Manager"},
			"emp-2":    {ID: "emp-2", ProfileID: "p-other", FullName: "Worker Two"},
		},
	}
	employees.byProfile = map[string]employee.Employee{}
	for _, emp := range employees.byID {
		employees.byProfile[emp.ProfileID] = emp
	}

	chains := &fakeChains{chain: approval.Chain{
		{Rank: 0, ManagerID: "emp-mgr0", ManagerName: "Direct Manager"},
		{Rank: 1, ManagerID: "emp-mgr1", ManagerName: "Senior Manager"},
	}}

	f := &fixture{
		records:     &fakeRecords{},
		leaveReqs:   &fakeLeaveRequests{byID: map[string]*leave.LeaveRequest{}},
		balances:    &fakeBalances{},
		overtimeReq: &fakeOvertimeRequests{byID: map[string]*overtime.Request{}},
		corrections: &fakeCorrections{byID: map[string]*attendance.CorrectionRequest{}},
		applier:     &fakeApplier{},
	}

	leaveTypes := &fakeLeaveTypes{byID: map[string]leave.LeaveType{
		"lt-annual": {ID: "lt-annual", Code: "annual", Category: leave.CategoryStandard},
		"lt-other":  {ID: "lt-other", Code: "special", Category: leave.CategoryOther},
	}}

	f.svc = NewService(
		passthroughTx{},
		clock.Fixed(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)),
		employees,
		chains,
		f.records,
		f.leaveReqs,
		leaveTypes,
		f.balances,
		f.overtimeReq,
		f.corrections,
		f.applier,
		nil,
	)
	return f
}

func (f *fixture) seedLeave(id, status, leaveTypeID string, days float64, deducted bool) {
	f.leaveReqs.byID[id] = &leave.LeaveRequest{
		ID:              id,
		EmployeeID:      "emp-1",
		LeaveTypeID:     leaveTypeID,
		DaysRequested:   days,
		Status:          status,
		BalanceDeducted: deducted,
	}
}

func TestApproveAdvancesToNextLevel(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "pending", "lt-annual", 2, false)

	decision, err := f.svc.Approve(context.Background(), approval.KindLeave, "lr-1", "p-mgr0", nil)
	require.NoError(t, err)

	assert.Equal(t, "approved_n1", decision.NewStatus)
	assert.False(t, decision.IsFinal)
	require.NotNil(t, decision.NextLevel)
	assert.Equal(t, 1, *decision.NextLevel)

	assert.Equal(t, "approved_n1", f.leaveReqs.byID["lr-1"].Status)
	assert.Empty(t, f.balances.deducted)

	require.Len(t, f.records.records, 1)
	rec := f.records.records[0]
	assert.Equal(t, "approved", rec.Action)
	assert.Equal(t, 0, rec.Rank)
	assert.Equal(t, "emp-mgr0", rec.ApproverID)
}

func TestApproveFinalDeductsBalanceOnce(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "approved_n1", "lt-annual", 3, false)

	decision, err := f.svc.Approve(context.Background(), approval.KindLeave, "lr-1", "p-mgr1", nil)
	require.NoError(t, err)

	assert.Equal(t, "approved", decision.NewStatus)
	assert.True(t, decision.IsFinal)
	assert.Nil(t, decision.NextLevel)

	req := f.leaveReqs.byID["lr-1"]
	assert.Equal(t, "approved", req.Status)
	assert.True(t, req.BalanceDeducted)
	require.Len(t, f.balances.deducted, 1)
	assert.InDelta(t, 3, f.balances.deducted[0], 0.001)
}

func TestApproveFinalOtherCategorySkipsBalance(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "approved_n1", "lt-other", 2, false)

	decision, err := f.svc.Approve(context.Background(), approval.KindLeave, "lr-1", "p-mgr1", nil)
	require.NoError(t, err)

	assert.True(t, decision.IsFinal)
	assert.Empty(t, f.balances.deducted)
	assert.False(t, f.leaveReqs.byID["lr-1"].BalanceDeducted)
}

func TestApproveWrongLevelApprover(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "approved_n1", "lt-annual", 2, false)

	// The direct manager already approved at rank 0; acting again at
	// level 1 is not their call.
	_, err := f.svc.Approve(context.Background(), approval.KindLeave, "lr-1", "p-mgr0", nil)
	assert.ErrorIs(t, err, approval.ErrNotCurrentApprover)
	assert.Equal(t, "approved_n1", f.leaveReqs.byID["lr-1"].Status)
	assert.Empty(t, f.records.records)
}

func TestApproveTerminalRequest(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "approved", "lt-annual", 2, true)

	_, err := f.svc.Approve(context.Background(), approval.KindLeave, "lr-1", "p-mgr0", nil)
	assert.ErrorIs(t, err, approval.ErrAlreadyProcessed)
}

func TestApproveUnknownApprover(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "pending", "lt-annual", 2, false)

	_, err := f.svc.Approve(context.Background(), approval.KindLeave, "lr-1", "p-stranger", nil)
	assert.ErrorIs(t, err, approval.ErrNotAnEmployee)
}

func TestApproveMissingRequest(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, err := f.svc.Approve(context.Background(), approval.KindLeave, "lr-none", "p-mgr0", nil)
	assert.ErrorIs(t, err, approval.ErrRequestNotFound)
}

func TestApproveOvertimeIsSingleLevel(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.overtimeReq.byID["ot-1"] = &overtime.Request{ID: "ot-1", EmployeeID: "emp-1", Status: "pending", EstimatedHours: 2}

	// Even with a two-rank chain, overtime terminates at the direct
	// manager.
	decision, err := f.svc.Approve(context.Background(), approval.KindOvertime, "ot-1", "p-mgr0", nil)
	require.NoError(t, err)

	assert.Equal(t, "approved", decision.NewStatus)
	assert.True(t, decision.IsFinal)
	assert.Equal(t, "approved", f.overtimeReq.byID["ot-1"].Status)
}

func TestApproveCorrectionTriggersApplier(t *testing.T) {
	t.Parallel()

	f := newFixture()
	in := "09:00"
	f.corrections.byID["cr-1"] = &attendance.CorrectionRequest{
		ID:          "cr-1",
		EmployeeID:  "emp-1",
		Date:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		RequestedIn: &in,
		Status:      "approved_n1",
	}

	decision, err := f.svc.Approve(context.Background(), approval.KindCorrection, "cr-1", "p-mgr1", nil)
	require.NoError(t, err)

	assert.True(t, decision.IsFinal)
	require.Len(t, f.applier.applied, 1)
	assert.Equal(t, "cr-1", f.applier.applied[0].ID)
}

func TestApproveIntermediateCorrectionDoesNotApply(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.corrections.byID["cr-1"] = &attendance.CorrectionRequest{ID: "cr-1", EmployeeID: "emp-1", Status: "pending"}

	decision, err := f.svc.Approve(context.Background(), approval.KindCorrection, "cr-1", "p-mgr0", nil)
	require.NoError(t, err)

	assert.False(t, decision.IsFinal)
	assert.Empty(t, f.applier.applied)
}

func TestRejectRequiresComment(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "pending", "lt-annual", 2, false)

	_, err := f.svc.Reject(context.Background(), approval.KindLeave, "lr-1", "p-mgr0", "")
	assert.ErrorIs(t, err, approval.ErrCommentRequired)
	assert.Equal(t, "pending", f.leaveReqs.byID["lr-1"].Status)
}

func TestRejectIsTerminalFromAnyLevel(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "approved_n1", "lt-annual", 2, false)

	decision, err := f.svc.Reject(context.Background(), approval.KindLeave, "lr-1", "p-mgr1", "numbers do not add up")
	require.NoError(t, err)

	assert.Equal(t, "rejected", decision.NewStatus)
	assert.True(t, decision.IsFinal)
	assert.Equal(t, "rejected", f.leaveReqs.byID["lr-1"].Status)

	require.Len(t, f.records.records, 1)
	assert.Equal(t, "rejected", f.records.records[0].Action)
	require.NotNil(t, f.records.records[0].Comment)
}

func TestCancelRequiresApprovedState(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "pending", "lt-annual", 2, false)

	_, err := f.svc.Cancel(context.Background(), approval.KindLeave, "lr-1", "p-emp", "plans changed")
	assert.ErrorIs(t, err, approval.ErrNotApproved)
}

func TestCancelRequiresReason(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "approved", "lt-annual", 2, true)

	_, err := f.svc.Cancel(context.Background(), approval.KindLeave, "lr-1", "p-emp", "")
	assert.ErrorIs(t, err, approval.ErrReasonRequired)
}

func TestCancelRestoresBalance(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "approved", "lt-annual", 2, true)

	decision, err := f.svc.Cancel(context.Background(), approval.KindLeave, "lr-1", "p-emp", "plans changed")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", decision.NewStatus)
	req := f.leaveReqs.byID["lr-1"]
	assert.Equal(t, "cancelled", req.Status)
	assert.False(t, req.BalanceDeducted)
	require.Len(t, f.balances.restored, 1)
	assert.InDelta(t, 2, f.balances.restored[0], 0.001)
}

func TestCancelWithoutDeductionSkipsRestore(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "approved", "lt-other", 2, false)

	_, err := f.svc.Cancel(context.Background(), approval.KindLeave, "lr-1", "p-emp", "plans changed")
	require.NoError(t, err)
	assert.Empty(t, f.balances.restored)
}

func TestCancelDeniedForOutsiders(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "approved", "lt-annual", 2, true)

	// An employee who is neither the requester nor in the chain.
	_, err := f.svc.Cancel(context.Background(), approval.KindLeave, "lr-1", "p-other", "not my business")
	assert.ErrorIs(t, err, approval.ErrNotPermitted)
	assert.Equal(t, "approved", f.leaveReqs.byID["lr-1"].Status)
}

func TestCancelPermittedForChainMember(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.seedLeave("lr-1", "approved", "lt-annual", 2, true)

	decision, err := f.svc.Cancel(context.Background(), approval.KindLeave, "lr-1", "p-mgr1", "overridden")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", decision.NewStatus)
}

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/yahya12213/SiteManagement-sub010/internal/config"
	appHTTP "github.com/yahya12213/SiteManagement-sub010/internal/handler/http"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/clock"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/database"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/jwt"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/sse"
	"github.com/yahya12213/SiteManagement-sub010/internal/repository/postgresql"
	approvalService "github.com/yahya12213/SiteManagement-sub010/internal/service/approval"
	attendanceService "github.com/yahya12213/SiteManagement-sub010/internal/service/attendance"
	leaveService "github.com/yahya12213/SiteManagement-sub010/internal/service/leave"
	notificationService "github.com/yahya12213/SiteManagement-sub010/internal/service/notification"
	overtimeService "github.com/yahya12213/SiteManagement-sub010/internal/service/overtime"
	scheduleService "github.com/yahya12213/SiteManagement-sub010/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	var clk clock.Clock = clock.Real()
	if cfg.VirtualClock.Enabled {
		clk = clock.NewVirtual(cfg.VirtualClock.Anchor, time.Now())
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	assignmentRepo := postgresql.NewEmployeeScheduleAssignmentRepository(db)
	holidayRepo := postgresql.NewPublicHolidayRepository(db)
	recoveryRepo := postgresql.NewDeclarationRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	overtimeRequestRepo := postgresql.NewOvertimeRequestRepository(db)
	overtimePeriodRepo := postgresql.NewOvertimePeriodRepository(db)
	dailyRecordRepo := postgresql.NewDailyRecordRepository(db)
	correctionRepo := postgresql.NewCorrectionRequestRepository(db)
	chainRepo := postgresql.NewChainRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	resolver := scheduleService.NewResolver(workScheduleRepo, assignmentRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		clk,
		resolver,
		dailyRecordRepo,
		correctionRepo,
		holidayRepo,
		recoveryRepo,
		leaveRequestRepo,
		overtimeRequestRepo,
		overtimePeriodRepo,
	)
	notificationSvc := notificationService.NewService(clk, hub, notificationRepo)
	leaveSvc := leaveService.NewService(clk, leaveRequestRepo, leaveTypeRepo, balanceRepo)
	overtimeSvc := overtimeService.NewService(clk, overtimeRequestRepo, overtimePeriodRepo)
	approvalSvc := approvalService.NewService(
		db,
		clk,
		employeeRepo,
		chainRepo,
		recordRepo,
		leaveRequestRepo,
		leaveTypeRepo,
		balanceRepo,
		overtimeRequestRepo,
		correctionRepo,
		attendanceSvc,
		notificationSvc,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	requestHandler := appHTTP.NewRequestHandler(approvalSvc, leaveSvc, overtimeSvc, attendanceSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(resolver)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, hub)

	r := appHTTP.NewRouter(jwtService, attendanceHandler, requestHandler, scheduleHandler, notificationHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server starting on", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		fmt.Println("Server error:", err)
	}
}

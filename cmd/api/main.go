package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/config"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	appHTTP "github.com/cmlabs-hris/attendance-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-engine-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/attendance-engine-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/attendance-engine-go/internal/service/employee"
	holidayService "github.com/cmlabs-hris/attendance-engine-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/attendance-engine-go/internal/service/leave"
	resolutionService "github.com/cmlabs-hris/attendance-engine-go/internal/service/resolution"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceLogRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	resolver := resolutionService.NewResolver(func(d resolution.Diagnostic) {
		slog.Warn("attendance resolution diagnostic",
			"date", d.Date, "code", d.Code, "message", d.Message)
	})

	authSvc := authService.NewAuthService(userRepo, jwtSvc, googleSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, holidayRepo, leaveRequestRepo, employeeRepo, resolver,
		func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		})
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		authHandler,
		attendanceHandler,
		holidayHandler,
		leaveHandler,
		employeeHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

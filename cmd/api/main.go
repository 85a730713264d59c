package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/config"
	appHTTP "github.com/haken-hr/kyuyo-backend-go/internal/handler/http"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/cron"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/database"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/jwt"
	"github.com/haken-hr/kyuyo-backend-go/internal/repository/postgresql"
	attendanceService "github.com/haken-hr/kyuyo-backend-go/internal/service/attendance"
	payrollService "github.com/haken-hr/kyuyo-backend-go/internal/service/payroll"
	timesheetService "github.com/haken-hr/kyuyo-backend-go/internal/service/timesheet"
	workplaceService "github.com/haken-hr/kyuyo-backend-go/internal/service/workplace"
	yukyuService "github.com/haken-hr/kyuyo-backend-go/internal/service/yukyu"
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

	configRepo := postgresql.NewWorkplaceConfigRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	wageRepo := postgresql.NewWageRepository(db)
	runRepo := postgresql.NewPayrollRunRepository(db)
	yukyuRepo := postgresql.NewYukyuRepository(db)
	deductionSource := postgresql.NewDeductionSource(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	configService := workplaceService.NewConfigService(configRepo)
	attendanceSvc := attendanceService.NewService(attendanceRepo)
	yukyuSvc := yukyuService.NewService(yukyuRepo)

	aggregator := timesheetService.NewAggregator()
	calculator := payrollService.NewCalculator(payrollService.NewRateEngine())
	runService := payrollService.NewRunService(
		runRepo,
		configRepo,
		wageRepo,
		attendanceRepo,
		deductionSource,
		yukyuSvc,
		aggregator,
		calculator,
		cfg.Payroll.Workers,
	)

	yukyuJobs := cron.NewYukyuJobs(yukyuRepo)
	scheduler := cron.NewScheduler()
	scheduler.Register("yukyu-expiry-scan", 24*time.Hour, yukyuJobs.ScanExpiringGrants)
	scheduler.Start()
	defer scheduler.Stop()

	workplaceHandler := appHTTP.NewWorkplaceHandler(configService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(runService)
	yukyuHandler := appHTTP.NewYukyuHandler(yukyuSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		workplaceHandler,
		attendanceHandler,
		payrollHandler,
		yukyuHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

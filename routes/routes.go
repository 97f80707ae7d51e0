package routes

import (
	"os"

	"github.com/labstack/echo/v4"

	"github.com/Shuja06/School-ERP/handlers"
	"github.com/Shuja06/School-ERP/middlewares"
)

// Register wires all HTTP routes under /api/v1.
func Register(e *echo.Echo) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}

	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(secret)
	std := handlers.NewStudentHandler()
	stf := handlers.NewStaffHandler()
	fee := handlers.NewFeeHandler()
	exp := handlers.NewExpenseHandler()
	pay := handlers.NewPayrollHandler()
	usr := handlers.NewUserHandler()
	set := handlers.NewSettingsHandler()
	rep := handlers.NewReportHandler()

	api := e.Group("/api/v1")

	// ===== Public Auth =====
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)

	// ===== Protected =====
	authMW := middlewares.RequireAuth(secret)
	r := api.Group("", authMW)

	r.GET("/users/me", usr.Me)

	r.GET("/students", std.List)
	r.GET("/students/:id", std.Get)
	r.POST("/students", std.Create)
	r.PUT("/students/:id", std.Update)
	r.DELETE("/students/:id", std.Delete)

	r.GET("/staff", stf.List)
	r.GET("/staff/:id", stf.Get)
	r.POST("/staff", stf.Create)
	r.PUT("/staff/:id", stf.Update)
	r.DELETE("/staff/:id", stf.Delete)

	r.GET("/fees/structures", fee.ListStructures)
	r.POST("/fees/structures", fee.CreateStructure)
	r.PUT("/fees/structures/:id", fee.UpdateStructure)
	r.DELETE("/fees/structures/:id", fee.DeleteStructure)

	r.GET("/fees/payments", fee.ListPayments)
	r.POST("/fees/payments", fee.CreatePayment)
	r.PUT("/fees/payments/:id", fee.UpdatePayment)
	r.DELETE("/fees/payments/:id", fee.DeletePayment)

	r.GET("/expenses", exp.List)
	r.POST("/expenses", exp.Create)
	r.PUT("/expenses/:id", exp.Update)
	r.DELETE("/expenses/:id", exp.Delete)

	r.GET("/payroll", pay.List)
	r.POST("/payroll", pay.Create)
	r.POST("/payroll/bulk", pay.Bulk)
	r.PUT("/payroll/:id", pay.Update)
	r.DELETE("/payroll/:id", pay.Delete)

	r.GET("/reports/dashboard", rep.Dashboard)
	r.GET("/reports/fee-collection", rep.FeeCollection)
	r.GET("/reports/fee-collection/export", rep.ExportFeeCollection)
	r.GET("/reports/outstanding-dues", rep.OutstandingDues)
	r.GET("/reports/expenses", rep.Expenses)
	r.GET("/reports/payroll", rep.Payroll)
	r.GET("/reports/income-expense", rep.IncomeExpense)

	r.GET("/settings", set.Get)

	// ===== Admin only =====
	admin := api.Group("", authMW, middlewares.RequireRole("admin"))

	admin.GET("/users", usr.List)
	admin.PUT("/users/:id/role", usr.UpdateRole)

	admin.PUT("/settings/school", set.UpdateSchool)
	admin.PUT("/settings/notifications", set.UpdateNotifications)
	admin.PUT("/settings/security", set.UpdateSecurity)
	admin.PUT("/settings/data-management", set.UpdateDataManagement)
	admin.POST("/settings/backup", set.TriggerBackup)
}

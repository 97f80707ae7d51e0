// Package reports computes the derived financial and enrollment views of
// the back office. Every report is a pure function over already-loaded
// record slices: no caching, no incremental state, identical inputs give
// identical output. Sums accumulate in decimal and convert to float64 once
// per emitted figure.
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/Shuja06/School-ERP/models"
)

var hundred = decimal.NewFromInt(100)

func sumPayments(payments []models.FeePayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(decimal.NewFromFloat(p.Amount))
	}
	return total
}

func sumExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return total
}

func addTo(m map[string]decimal.Decimal, key string, amount float64) {
	if key == "" {
		key = UnknownKey
	}
	m[key] = m[key].Add(decimal.NewFromFloat(amount))
}

func toFloatMap(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k], _ = v.Float64()
	}
	return out
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

type DashboardReport struct {
	TotalStudents   int64   `json:"totalStudents"`
	TotalStaff      int64   `json:"totalStaff"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalExpenses   float64 `json:"totalExpenses"`
	TotalPayroll    float64 `json:"totalPayroll"`
	OutstandingDues float64 `json:"outstandingDues"`
	CollectionRate  float64 `json:"collectionRate"`
	NetIncome       float64 `json:"netIncome"`
}

// Dashboard summarises the whole book: enrollment counts, collected fees,
// expenses, paid-out payroll and the resulting net income.
//
// The outstanding-dues figure here is a deliberate estimate: each fee
// structure is assumed to apply to a tenth of the student body
// (amount × students/10) rather than to its actual class roster. The
// precise per-student calculation lives in OutstandingDues.
func Dashboard(studentCount, staffCount int64, payments []models.FeePayment, expenses []models.Expense, payrolls []models.Payroll, structures []models.FeeStructure) DashboardReport {
	revenue := sumPayments(payments)
	spent := sumExpenses(expenses)

	paidPayroll := decimal.Zero
	for _, p := range payrolls {
		if p.PaymentStatus == models.PayrollStatusPaid {
			paidPayroll = paidPayroll.Add(decimal.NewFromFloat(p.NetSalary))
		}
	}

	perStructure := decimal.NewFromInt(studentCount).Div(decimal.NewFromInt(10))
	expected := decimal.Zero
	for _, fs := range structures {
		expected = expected.Add(decimal.NewFromFloat(fs.Amount).Mul(perStructure))
	}

	outstanding := expected.Sub(revenue)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	rate := decimal.Zero
	if expected.IsPositive() {
		rate = revenue.Div(expected).Mul(hundred).Round(1)
	}

	return DashboardReport{
		TotalStudents:   studentCount,
		TotalStaff:      staffCount,
		TotalRevenue:    toFloat(revenue),
		TotalExpenses:   toFloat(spent),
		TotalPayroll:    toFloat(paidPayroll),
		OutstandingDues: toFloat(outstanding),
		CollectionRate:  toFloat(rate),
		NetIncome:       toFloat(revenue.Sub(spent).Sub(paidPayroll)),
	}
}

type FeeCollectionReport struct {
	TotalCollection        float64            `json:"totalCollection"`
	TotalTransactions      int                `json:"totalTransactions"`
	MonthlyBreakdown       map[string]float64 `json:"monthlyBreakdown"`
	PaymentMethodBreakdown map[string]float64 `json:"paymentMethodBreakdown"`
	FeeTypeBreakdown       map[string]float64 `json:"feeTypeBreakdown"`
	Payments               []models.FeePayment `json:"payments"`
}

// FeeCollection aggregates an (already filtered) payment list by month,
// payment method and fee type.
func FeeCollection(payments []models.FeePayment) FeeCollectionReport {
	monthly := map[string]decimal.Decimal{}
	byMethod := map[string]decimal.Decimal{}
	byFeeType := map[string]decimal.Decimal{}

	for _, p := range payments {
		addTo(monthly, monthLabel(paymentDate(p)), p.Amount)
		addTo(byMethod, p.PaymentMethod, p.Amount)
		addTo(byFeeType, p.FeeType, p.Amount)
	}

	if payments == nil {
		payments = []models.FeePayment{}
	}
	return FeeCollectionReport{
		TotalCollection:        toFloat(sumPayments(payments)),
		TotalTransactions:      len(payments),
		MonthlyBreakdown:       toFloatMap(monthly),
		PaymentMethodBreakdown: toFloatMap(byMethod),
		FeeTypeBreakdown:       toFloatMap(byFeeType),
		Payments:               payments,
	}
}

type StudentDue struct {
	StudentID   string  `json:"student_id"`
	FullName    string  `json:"full_name"`
	Class       string  `json:"class"`
	ExpectedFee float64 `json:"expectedFee"`
	PaidAmount  float64 `json:"paidAmount"`
	DueAmount   float64 `json:"dueAmount"`
	Status      string  `json:"status"`
}

type OutstandingDuesReport struct {
	TotalOutstanding      float64            `json:"totalOutstanding"`
	TotalStudentsWithDues int                `json:"totalStudentsWithDues"`
	StudentsWithDues      []StudentDue       `json:"studentsWithDues"`
	ClasswiseBreakdown    map[string]float64 `json:"classwiseBreakdown"`
}

// OutstandingDues computes, per student, expected fees (every structure
// matching the student's class, across all academic years), the amount
// paid, and the remaining due clamped at zero. Only students who still owe
// something appear in the result.
func OutstandingDues(students []models.Student, structures []models.FeeStructure, payments []models.FeePayment) OutstandingDuesReport {
	expectedByClass := map[string]decimal.Decimal{}
	for _, fs := range structures {
		addTo(expectedByClass, fs.Class, fs.Amount)
	}
	paidByStudent := map[string]decimal.Decimal{}
	for _, p := range payments {
		addTo(paidByStudent, p.StudentUID, p.Amount)
	}

	dues := []StudentDue{}
	classwise := map[string]decimal.Decimal{}
	total := decimal.Zero

	for _, s := range students {
		expected := expectedByClass[s.Class]
		paid := paidByStudent[s.UID]
		due := expected.Sub(paid)
		if due.IsNegative() {
			due = decimal.Zero
		}
		if !due.IsPositive() {
			continue
		}

		status := "Unpaid"
		if due.LessThan(expected) {
			status = "Partial"
		}
		dues = append(dues, StudentDue{
			StudentID:   s.StudentID,
			FullName:    s.FullName,
			Class:       s.Class,
			ExpectedFee: toFloat(expected),
			PaidAmount:  toFloat(paid),
			DueAmount:   toFloat(due),
			Status:      status,
		})
		addTo(classwise, s.Class, toFloat(due))
		total = total.Add(due)
	}

	return OutstandingDuesReport{
		TotalOutstanding:      toFloat(total),
		TotalStudentsWithDues: len(dues),
		StudentsWithDues:      dues,
		ClasswiseBreakdown:    toFloatMap(classwise),
	}
}

type ExpenseReport struct {
	TotalExpenses     float64            `json:"totalExpenses"`
	TotalTransactions int                `json:"totalTransactions"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	MonthlyBreakdown  map[string]float64 `json:"monthlyBreakdown"`
	Expenses          []models.Expense   `json:"expenses"`
}

// Expenses aggregates an (already filtered) expense list by category and month.
func Expenses(expenses []models.Expense) ExpenseReport {
	byCategory := map[string]decimal.Decimal{}
	monthly := map[string]decimal.Decimal{}

	for _, e := range expenses {
		addTo(byCategory, e.Category, e.Amount)
		addTo(monthly, monthLabel(expenseDate(e)), e.Amount)
	}

	if expenses == nil {
		expenses = []models.Expense{}
	}
	return ExpenseReport{
		TotalExpenses:     toFloat(sumExpenses(expenses)),
		TotalTransactions: len(expenses),
		CategoryBreakdown: toFloatMap(byCategory),
		MonthlyBreakdown:  toFloatMap(monthly),
		Expenses:          expenses,
	}
}

type PayrollReport struct {
	TotalPayroll        float64            `json:"totalPayroll"`
	PaidPayroll         float64            `json:"paidPayroll"`
	PendingPayroll      float64            `json:"pendingPayroll"`
	TotalStaff          int                `json:"totalStaff"`
	DepartmentBreakdown map[string]float64 `json:"departmentBreakdown"`
	StatusBreakdown     map[string]int     `json:"statusBreakdown"`
	Payrolls            []PayrollEntry     `json:"payrolls"`
}

// Payroll aggregates payroll records, resolving each staff reference for
// the department breakdown. Records whose staff member no longer exists
// fall into the "Unknown" department. Only a storage failure from the
// resolver aborts the report.
func Payroll(payrolls []models.Payroll, res Resolver) (PayrollReport, error) {
	entries, err := EnrichPayrolls(payrolls, res)
	if err != nil {
		return PayrollReport{}, err
	}

	byDepartment := map[string]decimal.Decimal{}
	byStatus := map[string]int{}
	total := decimal.Zero
	paid := decimal.Zero

	for _, e := range entries {
		dept := ""
		if e.Staff != nil {
			dept = e.Staff.Department
		}
		addTo(byDepartment, dept, e.NetSalary)
		byStatus[e.PaymentStatus]++

		total = total.Add(decimal.NewFromFloat(e.NetSalary))
		if e.PaymentStatus == models.PayrollStatusPaid {
			paid = paid.Add(decimal.NewFromFloat(e.NetSalary))
		}
	}

	return PayrollReport{
		TotalPayroll:        toFloat(total),
		PaidPayroll:         toFloat(paid),
		PendingPayroll:      toFloat(total.Sub(paid)),
		TotalStaff:          len(entries),
		DepartmentBreakdown: toFloatMap(byDepartment),
		StatusBreakdown:     byStatus,
		Payrolls:            entries,
	}, nil
}

type MonthlyFlow struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type IncomeExpenseReport struct {
	TotalIncome       float64                `json:"totalIncome"`
	TotalExpenses     float64                `json:"totalExpenses"`
	NetAmount         float64                `json:"netAmount"`
	ProfitMargin      float64                `json:"profitMargin"`
	MonthlyComparison map[string]MonthlyFlow `json:"monthlyComparison"`
}

// IncomeExpense sets collected fees against expenses, overall and per
// month. Profit margin is net over income as a percentage, rounded to two
// decimals, 0 when there was no income.
func IncomeExpense(payments []models.FeePayment, expenses []models.Expense) IncomeExpenseReport {
	type flow struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}
	monthly := map[string]flow{}

	income := decimal.Zero
	for _, p := range payments {
		amt := decimal.NewFromFloat(p.Amount)
		income = income.Add(amt)
		key := monthLabel(paymentDate(p))
		f := monthly[key]
		f.income = f.income.Add(amt)
		monthly[key] = f
	}

	spent := decimal.Zero
	for _, e := range expenses {
		amt := decimal.NewFromFloat(e.Amount)
		spent = spent.Add(amt)
		key := monthLabel(expenseDate(e))
		f := monthly[key]
		f.expense = f.expense.Add(amt)
		monthly[key] = f
	}

	net := income.Sub(spent)
	margin := decimal.Zero
	if income.IsPositive() {
		margin = net.Div(income).Mul(hundred).Round(2)
	}

	comparison := make(map[string]MonthlyFlow, len(monthly))
	for k, f := range monthly {
		comparison[k] = MonthlyFlow{Income: toFloat(f.income), Expense: toFloat(f.expense)}
	}

	return IncomeExpenseReport{
		TotalIncome:       toFloat(income),
		TotalExpenses:     toFloat(spent),
		NetAmount:         toFloat(net),
		ProfitMargin:      toFloat(margin),
		MonthlyComparison: comparison,
	}
}

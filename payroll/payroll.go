// Package payroll instantiates the list-view engine for salaries, payslips,
// bonuses, and deductions. All amounts are presentation-only: payroll math
// and statutory rates live server-side.
package payroll

import "github.com/carelink/hrview/listview"

// peso formats amounts in the hospital's payroll currency.
var peso = listview.Currency("PHP")

// =============================================================================
// VIEW CONFIGURATIONS
// =============================================================================

// SalariesConfig is the salary structure view.
func SalariesConfig() listview.Config {
	return listview.Config{
		Name:     "salaries",
		Resource: "salaries",
		Columns: []listview.Column{
			{Key: "employee_name", Label: "Employee"},
			{Key: "department", Label: "Department"},
			{Key: "grade", Label: "Grade"},
			{Key: "basic_pay", Label: "Basic Pay", Format: peso},
			{Key: "allowance", Label: "Allowance", Format: peso},
			{Key: "annual_cost", Label: "Annual Cost", Format: listview.CurrencyMillions("PHP")},
			{Key: "effective_at", Label: "Effective", Format: listview.Date()},
		},
		Filters: []listview.FilterSpec{
			{Key: "q", Kind: listview.FilterSubstring, Label: "Search",
				Fields: []string{"employee_name"}},
			{Key: "department", Kind: listview.FilterEquals, Label: "Department",
				Fields: []string{"department"}},
			{Key: "grade", Kind: listview.FilterEquals, Label: "Grade",
				Fields: []string{"grade"}},
		},
		Actions: []string{"view", "edit"},
	}
}

// PayslipsConfig is the released payslips view.
func PayslipsConfig() listview.Config {
	return listview.Config{
		Name:     "payslips",
		Resource: "payslips",
		Columns: []listview.Column{
			{Key: "employee_name", Label: "Employee"},
			{Key: "period_start", Label: "Period Start", Format: listview.Date()},
			{Key: "period_end", Label: "Period End", Format: listview.Date()},
			{Key: "gross_pay", Label: "Gross", Format: peso},
			{Key: "total_deductions", Label: "Deductions", Format: peso},
			{Key: "net_pay", Label: "Net Pay", Format: peso},
		},
		Filters: []listview.FilterSpec{
			{Key: "q", Kind: listview.FilterSubstring, Label: "Search",
				Fields: []string{"employee_name"}},
			{Key: "period", Kind: listview.FilterDateRange, Label: "Period",
				Fields: []string{"period_end"}},
		},
		Actions: []string{"view"},
	}
}

// BonusesConfig is the bonuses view.
func BonusesConfig() listview.Config {
	return listview.Config{
		Name:     "bonuses",
		Resource: "bonuses",
		Columns: []listview.Column{
			{Key: "employee_name", Label: "Employee"},
			{Key: "bonus_type", Label: "Type"},
			{Key: "amount", Label: "Amount", Format: peso},
			{Key: "granted_at", Label: "Granted", Format: listview.Date()},
		},
		Filters: []listview.FilterSpec{
			{Key: "q", Kind: listview.FilterSubstring, Label: "Search",
				Fields: []string{"employee_name"}},
			{Key: "type", Kind: listview.FilterEquals, Label: "Type",
				Fields:  []string{"bonus_type"},
				Options: []string{"13th Month", "Performance", "Retention", "Hazard"}},
			{Key: "granted", Kind: listview.FilterDateRange, Label: "Granted",
				Fields: []string{"granted_at"}},
		},
		Actions: []string{"view", "edit", "delete"},
	}
}

// DeductionsConfig is the deductions view. Rates come from the backend;
// this layer only displays them.
func DeductionsConfig() listview.Config {
	return listview.Config{
		Name:     "deductions",
		Resource: "deductions",
		Columns: []listview.Column{
			{Key: "employee_name", Label: "Employee"},
			{Key: "deduction_type", Label: "Type"},
			{Key: "amount", Label: "Amount", Format: peso},
			{Key: "applied_at", Label: "Applied", Format: listview.Date()},
		},
		Filters: []listview.FilterSpec{
			{Key: "q", Kind: listview.FilterSubstring, Label: "Search",
				Fields: []string{"employee_name"}},
			{Key: "type", Kind: listview.FilterEquals, Label: "Type",
				Fields:  []string{"deduction_type"},
				Options: []string{"SSS", "PhilHealth", "Pag-IBIG", "Tax", "Loan"}},
		},
		Actions: []string{"view", "edit", "delete"},
	}
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

func NewSalaries(source listview.DataSource, host listview.Host) *listview.Controller {
	return listview.New(SalariesConfig(), source, host)
}

func NewPayslips(source listview.DataSource, host listview.Host) *listview.Controller {
	return listview.New(PayslipsConfig(), source, host)
}

func NewBonuses(source listview.DataSource, host listview.Host) *listview.Controller {
	return listview.New(BonusesConfig(), source, host)
}

func NewDeductions(source listview.DataSource, host listview.Host) *listview.Controller {
	return listview.New(DeductionsConfig(), source, host)
}

func init() {
	listview.RegisterView("salaries", NewSalaries)
	listview.RegisterView("payslips", NewPayslips)
	listview.RegisterView("bonuses", NewBonuses)
	listview.RegisterView("deductions", NewDeductions)
}

package fixtures

import (
	"time"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	"github.com/shopspring/decimal"
)

// ==========================================
// DEFAULT KPIS
// ==========================================

// GetDefaultKPIs returns the KPI set a fresh installation starts with. Weights sum to 100.
func GetDefaultKPIs() []performance.KPI {
	return []performance.KPI{
		{NameKey: performance.KPIKeyPunctuality, Type: performance.KPITypeAutomatic, Weight: 30},
		{NameKey: performance.KPIKeyTaskEfficiency, Type: performance.KPITypeAutomatic, Weight: 30},
		{NameKey: performance.KPIKeyProductivity, Type: performance.KPITypeAutomatic, Weight: 20},
		{NameKey: "teamwork", Type: performance.KPITypeManual, Weight: 20},
	}
}

// ==========================================
// DEFAULT SHIFT
// ==========================================

// GetDefaultShift returns the standard office shift, flagged as the default.
func GetDefaultShift() attendance.Shift {
	return attendance.Shift{
		Name:          "Office Hours",
		StartTime:     "09:00",
		LateMarkAfter: 15,
		OfficeDays:    []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		IsDefault:     true,
	}
}

// ==========================================
// DEFAULT FINANCE SETTINGS
// ==========================================

func GetDefaultFinanceSettings(currency string, bonusPool decimal.Decimal) payroll.FinanceSettings {
	if currency == "" {
		currency = "IDR"
	}
	return payroll.FinanceSettings{IncentiveBonusPool: bonusPool, DefaultCurrency: currency}
}

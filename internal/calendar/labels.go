package calendar

import "atletica/internal/core"

var monthLabels = [12]string{
	"JANEIRO", "FEVEREIRO", "MARÇO", "ABRIL", "MAIO", "JUNHO",
	"JULHO", "AGOSTO", "SETEMBRO", "OUTUBRO", "NOVEMBRO", "DEZEMBRO",
}

// WeekdayHeader is the column header, Sunday first. Views carry a copy.
var WeekdayHeader = []string{"D", "S", "T", "Q", "Q", "S", "S"}

// MonthLabel returns the display name for a zero based month index.
func MonthLabel(month int) string {
	return monthLabels[core.NewYearMonth(0, month).Month]
}

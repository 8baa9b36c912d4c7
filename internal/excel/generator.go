package excel

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/tourbook/internal/model"
)

const (
	summarySheet = "Summary"
	maxSheetName = 31
)

var detailHeaders = []string{
	"Created",
	"Reservation",
	"Type",
	"Status",
	"Customer",
	"Email",
	"Phone",
	"Tour date",
	"Headcount",
	"People",
	"Total",
	"Deposit",
	"Deposit status",
	"Balance",
	"Balance status",
	"Guide",
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

type productGroup struct {
	name         string
	reservations []model.Reservation
}

// Generate writes a summary sheet and one sheet per product.
func (g *Generator) Generate(report model.ReservationReport) ([]byte, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	groups := groupByProduct(report.Reservations)
	if err := g.writeSummary(file, report, groups); err != nil {
		return nil, err
	}

	used := map[string]struct{}{summarySheet: {}}
	for _, group := range groups {
		sheet := buildSheetName(group.name, used)
		used[sheet] = struct{}{}

		if _, err := file.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := g.writeDetail(file, sheet, group); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, report model.ReservationReport, groups []productGroup) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	total, deposit, balance := sumAmounts(report.Reservations)

	set("A1", "Generated at")
	set("B1", formatDateTime(report.GeneratedAt))
	set("A2", "Reservations")
	set("B2", len(report.Reservations))
	set("A3", "Total amount")
	set("B3", total)
	set("A4", "Deposits")
	set("B4", deposit)
	set("A5", "Balances")
	set("B5", balance)

	tableRow := 7
	set(fmt.Sprintf("A%d", tableRow), "Product")
	set(fmt.Sprintf("B%d", tableRow), "Reservations")
	set(fmt.Sprintf("C%d", tableRow), "Pending payment")
	set(fmt.Sprintf("D%d", tableRow), "Confirmed")
	set(fmt.Sprintf("E%d", tableRow), "Completed")
	set(fmt.Sprintf("F%d", tableRow), "Cancelled")
	set(fmt.Sprintf("G%d", tableRow), "Total amount")

	for i, group := range groups {
		row := tableRow + 1 + i
		counts := countStatuses(group.reservations)
		groupTotal, _, _ := sumAmounts(group.reservations)

		set(fmt.Sprintf("A%d", row), group.name)
		set(fmt.Sprintf("B%d", row), len(group.reservations))
		set(fmt.Sprintf("C%d", row), counts[model.ReservationStatusPendingPayment])
		set(fmt.Sprintf("D%d", row), counts[model.ReservationStatusConfirmed])
		set(fmt.Sprintf("E%d", row), counts[model.ReservationStatusCompleted])
		set(fmt.Sprintf("F%d", row), counts[model.ReservationStatusCancelled])
		set(fmt.Sprintf("G%d", row), groupTotal)
	}

	_ = file.SetColWidth(summarySheet, "A", "A", 40)
	_ = file.SetColWidth(summarySheet, "B", "G", 16)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, group productGroup) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Product")
	set("B1", group.name)
	set("A2", "Reservations")
	set("B2", len(group.reservations))

	tableRow := 4
	for i, header := range detailHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, tableRow)
		if err != nil {
			return err
		}
		set(cell, header)
	}

	for i, res := range group.reservations {
		values := []interface{}{
			formatDateTime(res.CreatedAt),
			res.ID.String(),
			string(res.Type),
			string(res.Status),
			res.CustomerName,
			res.Email,
			res.Phone,
			res.Date,
			res.Headcount,
			res.TotalPeople,
			res.TotalAmount,
			res.Deposit,
			string(res.DepositStatus),
			res.Balance,
			string(res.BalanceStatus),
			guideName(res.AssignedGuide),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, tableRow+1+i)
			if err != nil {
				return err
			}
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 20)
	_ = file.SetColWidth(sheet, "B", "B", 38)
	_ = file.SetColWidth(sheet, "C", "P", 16)
	return nil
}

// groupByProduct keeps the incoming order of reservations within a product
// and orders products by name.
func groupByProduct(reservations []model.Reservation) []productGroup {
	index := map[string]int{}
	var groups []productGroup
	for _, res := range reservations {
		name := strings.TrimSpace(res.ProductName)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, productGroup{name: name})
		}
		groups[i].reservations = append(groups[i].reservations, res)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].name < groups[j].name })
	return groups
}

func buildSheetName(name string, used map[string]struct{}) string {
	base := truncate(sanitizeSheetName(name), maxSheetName)

	candidate := base
	for counter := 2; ; counter++ {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		candidate = truncate(base, maxSheetName-len([]rune(suffix))) + suffix
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.Trim(strings.TrimSpace(replacer.Replace(value)), "'")
	if value == "" || strings.EqualFold(value, summarySheet) {
		return "Product"
	}
	return value
}

// truncate cuts by runes; sheet name limits count characters, not bytes.
func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func countStatuses(reservations []model.Reservation) map[model.ReservationStatus]int {
	counts := map[model.ReservationStatus]int{}
	for _, res := range reservations {
		counts[res.Status]++
	}
	return counts
}

func sumAmounts(reservations []model.Reservation) (total, deposit, balance int64) {
	for _, res := range reservations {
		if res.Status == model.ReservationStatusCancelled {
			continue
		}
		total += res.TotalAmount
		deposit += res.Deposit
		balance += res.Balance
	}
	return total, deposit, balance
}

func guideName(guide *model.Guide) string {
	if guide == nil {
		return ""
	}
	return guide.Name
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/eventhub-id/eventhub-api/models"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
)

var referralReportHeaders = []string{"ID", "Referrer", "Referrer Email", "Referred", "Referred Email", "Points", "Discount %", "Date", "Expires"}

// ReferralReportSummary totals a referral report
type ReferralReportSummary struct {
	TotalReferrals  int
	TotalPoints     int
	UniqueReferrers int
	AverageDiscount float64
}

func summarizeReferrals(referrals []models.ReferralTransaction) ReferralReportSummary {
	var summary ReferralReportSummary
	referrers := make(map[uint]bool)
	discounts := 0
	for _, r := range referrals {
		summary.TotalReferrals++
		summary.TotalPoints += r.PointsEarned
		discounts += r.DiscountPercentage
		referrers[r.ReferrerID] = true
	}
	summary.UniqueReferrers = len(referrers)
	if summary.TotalReferrals > 0 {
		summary.AverageDiscount = float64(discounts) / float64(summary.TotalReferrals)
	}
	return summary
}

func (s ReferralReportSummary) rows() [][]string {
	return [][]string{
		{"Total Referrals", fmt.Sprintf("%d", s.TotalReferrals)},
		{"Total Points Awarded", fmt.Sprintf("%d", s.TotalPoints)},
		{"Unique Referrers", fmt.Sprintf("%d", s.UniqueReferrers)},
		{"Avg. Discount %", fmt.Sprintf("%.2f", s.AverageDiscount)},
	}
}

// loadReferralReport reads referrals created in the last ?days= days (default 30)
func loadReferralReport(c *gin.Context) ([]models.ReferralTransaction, time.Time, time.Time, error) {
	days := 30
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 366 {
			return nil, time.Time{}, time.Time{}, utils.BadRequestError("Invalid days", err).WithDetails("days must be between 1 and 366")
		}
		days = n
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	var referrals []models.ReferralTransaction
	err := deps.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("Referrer").
		Preload("Referred").
		Order("created_at DESC").
		Find(&referrals).Error
	if err != nil {
		return nil, startDate, endDate, utils.InternalError("Failed to fetch referrals", err)
	}
	return referrals, startDate, endDate, nil
}

func referralRowValues(r *models.ReferralTransaction) []string {
	return []string{
		fmt.Sprintf("%d", r.ID),
		r.Referrer.Fullname,
		r.Referrer.Email,
		r.Referred.Fullname,
		r.Referred.Email,
		fmt.Sprintf("%d", r.PointsEarned),
		fmt.Sprintf("%d", r.DiscountPercentage),
		r.CreatedAt.Format("2006-01-02 15:04"),
		r.ExpiresAt.Format("2006-01-02"),
	}
}

// Admin: Download referral report as Excel
func DownloadReferralReportExcel(c *gin.Context) {
	referrals, startDate, endDate, err := loadReferralReport(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.LogDebug("Retrieved %d referrals for Excel report", len(referrals))
	summary := summarizeReferrals(referrals)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Referral Report")
	if err != nil {
		_ = c.Error(utils.InternalError("Failed to create Excel sheet", err))
		return
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font

	titleRow := sheet.AddRow()
	titleCell := titleRow.AddCell()
	titleCell.SetString(utils.AppName + " - Referral Report")
	titleCell.SetStyle(bold)
	sheet.AddRow().AddCell().SetString("Period: " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow()

	headerRow := sheet.AddRow()
	for _, h := range referralReportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}

	for i := range referrals {
		r := &referrals[i]
		row := sheet.AddRow()
		row.AddCell().SetInt(int(r.ID))
		row.AddCell().SetString(r.Referrer.Fullname)
		row.AddCell().SetString(r.Referrer.Email)
		row.AddCell().SetString(r.Referred.Fullname)
		row.AddCell().SetString(r.Referred.Email)
		row.AddCell().SetInt(r.PointsEarned)
		row.AddCell().SetInt(r.DiscountPercentage)
		row.AddCell().SetString(r.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(r.ExpiresAt.Format("2006-01-02"))
	}

	sheet.AddRow()
	summaryCell := sheet.AddRow().AddCell()
	summaryCell.SetString("Summary")
	summaryCell.SetStyle(bold)
	for _, data := range summary.rows() {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=referral_report_%s.xlsx", endDate.Format("20060102")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		return
	}
	utils.LogInfo("Generated referral Excel report with %d rows", len(referrals))
}

// Admin: Download referral report as PDF
func DownloadReferralReportPDF(c *gin.Context) {
	referrals, startDate, endDate, err := loadReferralReport(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	utils.LogDebug("Retrieved %d referrals for PDF report", len(referrals))
	summary := summarizeReferrals(referrals)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, utils.AppName+" - Referral Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Period: "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(12)

	colWidths := []float64{14, 38, 48, 38, 48, 20, 22, 30, 22}
	aligns := []string{"C", "L", "L", "L", "L", "R", "R", "C", "C"}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range referralReportHeaders {
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	fill := false
	for i := range referrals {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		for j, v := range referralRowValues(&referrals[i]) {
			pdf.CellFormat(colWidths[j], 8, v, "1", 0, aligns[j], fill, 0, "")
		}
		fill = !fill
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(90, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, data := range summary.rows() {
		pdf.CellFormat(50, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=referral_report_%s.pdf", endDate.Format("20060102")))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		return
	}
	utils.LogInfo("Generated referral PDF report with %d rows", len(referrals))
}

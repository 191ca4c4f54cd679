package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resto-backend/config"
	"resto-backend/models"
)

// GetDashboard aggregates the numbers the admin landing page shows: today's
// and pending reservation counts, this month's revenue over
// Confirmed/Arrived bookings, newsletter signups this month, the five
// latest reservations and the five oldest unapproved reviews.
func GetDashboard(c *gin.Context) {
	now := time.Now()
	today := now.Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	var todayCount, pendingCount, newSubscribers int64
	if err := config.DB.Model(&models.Reservation{}).Where("date = ?", today).Count(&todayCount).Error; err != nil {
		respondInternal(c, err)
		return
	}
	config.DB.Model(&models.Reservation{}).Where("status = ?", models.StatusPending).Count(&pendingCount)
	config.DB.Model(&models.NewsletterSubscriber{}).
		Where("created_at BETWEEN ? AND ?", monthStart, monthEnd).
		Count(&newSubscribers)

	var monthlyRevenue int64
	config.DB.Model(&models.Reservation{}).
		Select("COALESCE(SUM(total_bill), 0)").
		Where("status IN ?", []string{models.StatusConfirmed, models.StatusArrived}).
		Where("date BETWEEN ? AND ?", monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02")).
		Scan(&monthlyRevenue)

	var latest []models.Reservation
	config.DB.Order("created_at DESC").Limit(5).Find(&latest)

	var pendingReviews []models.Review
	config.DB.Where("is_approved = ?", false).Order("created_at DESC").Limit(5).Find(&pendingReviews)

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"today_reservations":   todayCount,
			"pending_reservations": pendingCount,
			"monthly_revenue":      monthlyRevenue,
			"new_subscribers":      newSubscribers,
		},
		"latest_reservations": latest,
		"pending_reviews":     pendingReviews,
	})
}

type chartPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// GetDashboardChart returns per-day reservation counts for the past 30
// days, zero-filled so the chart has no gaps.
func GetDashboardChart(c *gin.Context) {
	start := time.Now().AddDate(0, 0, -29)
	startDate := start.Format("2006-01-02")

	var rows []chartPoint
	err := config.DB.Model(&models.Reservation{}).
		Select("date, COUNT(*) AS count").
		Where("date >= ?", startDate).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		respondInternal(c, err)
		return
	}

	byDate := make(map[string]int64, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row.Count
	}

	points := make([]chartPoint, 0, 30)
	for i := 0; i < 30; i++ {
		d := start.AddDate(0, 0, i).Format("2006-01-02")
		points = append(points, chartPoint{Date: d, Count: byDate[d]})
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

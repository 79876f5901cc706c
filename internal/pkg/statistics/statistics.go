package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/internal/pkg/cache"
	"github.com/EberechiLabs/FestHive/internal/pkg/database"
)

const (
	CacheKeyRegistrationsTotal = "statistics:registrations:total"
	CacheKeyRegistrationsDaily = "statistics:registrations:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyRevenueTotal       = "statistics:revenue:total"
	CacheKeyPaymentsPending    = "statistics:payments:pending"
	CacheKeyVendorsTotal       = "statistics:vendors:total"
	CacheExpiration            = 30 * time.Minute
)

// DashboardData holds the headline numbers for the admin dashboard
type DashboardData struct {
	TodayRegistrations int
	TotalRegistrations int
	TotalRevenue       decimal.Decimal
	PendingPayments    int
	TotalVendors       int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached statistics are stale
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the statistics cache when stale
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		log.Println("Updating statistics cache...")
		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recomputes all dashboard statistics and caches them
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalRegistrations int64
	if err := db.Model(&models.EventRegistration{}).Count(&totalRegistrations).Error; err != nil {
		log.Printf("Error counting total registrations: %v", err)
		return err
	}

	var todayRegistrations int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.EventRegistration{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayRegistrations).Error; err != nil {
		log.Printf("Error counting today's registrations: %v", err)
		return err
	}

	var totalRevenue decimal.NullDecimal
	if err := db.Model(&models.PaymentRecord{}).
		Where("status = ?", models.PaymentStatusPaid).
		Select("SUM(amount_paid)").Scan(&totalRevenue).Error; err != nil {
		log.Printf("Error summing revenue: %v", err)
		return err
	}

	var pendingPayments int64
	if err := db.Model(&models.PaymentRecord{}).Where("status = ?", models.PaymentStatusPending).Count(&pendingPayments).Error; err != nil {
		log.Printf("Error counting pending payments: %v", err)
		return err
	}

	var totalVendors int64
	if err := db.Model(&models.VendorApplication{}).Count(&totalVendors).Error; err != nil {
		log.Printf("Error counting vendor applications: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyRegistrationsTotal, strconv.FormatInt(totalRegistrations, 10), CacheExpiration); err != nil {
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyRegistrationsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayRegistrations, 10), CacheExpiration); err != nil {
		return err
	}

	revenue := decimal.Zero
	if totalRevenue.Valid {
		revenue = totalRevenue.Decimal
	}
	if err := cache.Set(CacheKeyRevenueTotal, revenue.StringFixed(2), CacheExpiration); err != nil {
		return err
	}

	if err := cache.Set(CacheKeyPaymentsPending, strconv.FormatInt(pendingPayments, 10), CacheExpiration); err != nil {
		return err
	}

	if err := cache.Set(CacheKeyVendorsTotal, strconv.FormatInt(totalVendors, 10), CacheExpiration); err != nil {
		return err
	}

	log.Printf("Statistics updated in cache: Registrations: %d, Today: %d, Revenue: %s, Pending: %d",
		totalRegistrations, todayRegistrations, revenue.StringFixed(2), pendingPayments)

	return nil
}

// GetTotalRegistrations returns the total registration count from cache or database
func GetTotalRegistrations() int {
	val, err := cache.Get(CacheKeyRegistrationsTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.EventRegistration{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total registrations: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyRegistrationsTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total registrations: %v", err)
		}

		return int(count)
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Error parsing cached registration count: %v", err)
		return 0
	}

	return count
}

// GetTodayRegistrations returns today's registration count from cache or database
func GetTodayRegistrations() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyRegistrationsDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		var count int64
		db := database.GetDB()
		if err := db.Model(&models.EventRegistration{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
			log.Printf("Error counting today's registrations: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's registrations: %v", err)
		}

		return int(count)
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}

	return count
}

// GetTotalRevenue returns the verified revenue total from cache or database
func GetTotalRevenue() decimal.Decimal {
	val, err := cache.Get(CacheKeyRevenueTotal)
	if err == nil {
		if d, derr := decimal.NewFromString(val); derr == nil {
			return d
		}
	}

	var total decimal.NullDecimal
	db := database.GetDB()
	if err := db.Model(&models.PaymentRecord{}).
		Where("status = ?", models.PaymentStatusPaid).
		Select("SUM(amount_paid)").Scan(&total).Error; err != nil {
		log.Printf("Error summing revenue: %v", err)
		return decimal.Zero
	}

	revenue := decimal.Zero
	if total.Valid {
		revenue = total.Decimal
	}
	if err := cache.Set(CacheKeyRevenueTotal, revenue.StringFixed(2), CacheExpiration); err != nil {
		log.Printf("Error caching revenue total: %v", err)
	}

	return revenue
}

// GetPendingPayments returns the number of payments still awaiting verification
func GetPendingPayments() int {
	val, err := cache.Get(CacheKeyPaymentsPending)
	if err == nil {
		if count, cerr := strconv.Atoi(val); cerr == nil {
			return count
		}
	}

	var count int64
	db := database.GetDB()
	if err := db.Model(&models.PaymentRecord{}).Where("status = ?", models.PaymentStatusPending).Count(&count).Error; err != nil {
		log.Printf("Error counting pending payments: %v", err)
		return 0
	}

	return int(count)
}

// GetDashboardData assembles all headline numbers for the admin dashboard
func GetDashboardData() DashboardData {
	UpdateCacheIfNeeded()

	var totalVendors int
	if val, err := cache.Get(CacheKeyVendorsTotal); err == nil {
		totalVendors, _ = strconv.Atoi(val)
	}

	return DashboardData{
		TodayRegistrations: GetTodayRegistrations(),
		TotalRegistrations: GetTotalRegistrations(),
		TotalRevenue:       GetTotalRevenue(),
		PendingPayments:    GetPendingPayments(),
		TotalVendors:       totalVendors,
	}
}

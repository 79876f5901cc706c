package counter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/internal/pkg/cache"
	"github.com/EberechiLabs/FestHive/internal/pkg/database"
)

const (
	pageViewsKey       = "page:counters:views"
	eventViewsKey      = "event:counters:views"
	ticketCheckoutsKey = "event:counters:checkouts"
)

// AddPageView increments the pending view counter for a marketing page in Redis
func AddPageView(page string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, pageViewsKey, page, 1).Err()
}

// AddEventView increments the pending view counter for an event detail page in Redis
func AddEventView(eventID uint) error {
	ctx := context.Background()
	field := "event:" + strconv.FormatUint(uint64(eventID), 10)
	return cache.GetClient().HIncrBy(ctx, eventViewsKey, field, 1).Err()
}

// AddTicketCheckout counts an opened checkout for an event
func AddTicketCheckout(eventID uint) error {
	ctx := context.Background()
	field := "event:" + strconv.FormatUint(uint64(eventID), 10)
	return cache.GetClient().HIncrBy(ctx, ticketCheckoutsKey, field, 1).Err()
}

// FlushAll drains all pending counters into the page_views table
func FlushAll() error {
	day := time.Now().Format("2006-01-02")
	if err := flushHashToPageViews(pageViewsKey, day); err != nil {
		return err
	}
	if err := flushHashToPageViews(eventViewsKey, day); err != nil {
		return err
	}
	return flushHashToPageViews(ticketCheckoutsKey, day)
}

// flushHashToPageViews drains a Redis hash atomically and applies batched
// per-day upserts to the page_views table. Uses RENAME to a temporary key for
// atomic drain without losing in-flight increments.
func flushHashToPageViews(redisKey, day string) error {
	ctx := context.Background()
	rdb := cache.GetClient()

	// Atomically move the hash to a temp key for draining
	tmpKey := fmt.Sprintf("%s:tmp:%d", redisKey, time.Now().UnixNano())
	if err := rdb.Do(ctx, "RENAME", redisKey, tmpKey).Err(); err != nil {
		// If key does not exist, nothing to flush
		if strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return nil
		}
		if err.Error() == "redis: nil" {
			return nil
		}
		return err
	}

	// Ensure cleanup of tmpKey even if later steps fail
	defer rdb.Del(ctx, tmpKey)

	data, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	rows := make([]models.PageView, 0, len(data))
	for page, v := range data {
		inc, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil || inc == 0 {
			continue
		}
		rows = append(rows, models.PageView{Page: page, Day: day, Views: inc})
	}
	if len(rows) == 0 {
		return nil
	}

	db := database.GetDB()
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "page"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"views":      gorm.Expr("views + VALUES(views)"),
			"updated_at": time.Now(),
		}),
	}).Create(&rows).Error
}

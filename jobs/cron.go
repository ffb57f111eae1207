package jobs

import (
	"log"
	"time"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// CalendarCacheFlusher clears cached calendar and booking lists so the
// nightly rollover starts from fresh data.
type CalendarCacheFlusher interface {
	FlushCalendarCaches() error
}

var calendarCacheFlusher CalendarCacheFlusher

// SetCalendarCacheFlusher sets the implementation used by the nightly job.
func SetCalendarCacheFlusher(flusher CalendarCacheFlusher) {
	calendarCacheFlusher = flusher
}

// InitCronJobs registers the scheduled jobs and starts the scheduler.
func InitCronJobs(c *cron.Cron, m *melody.Melody) error {
	// Midnight rollover: the current night becomes past, cached
	// availability views must be rebuilt.
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("Running nightly calendar cache flush at: %v", now)
		if calendarCacheFlusher == nil {
			log.Printf("Error: CalendarCacheFlusher is not set")
			return
		}
		if err := calendarCacheFlusher.FlushCalendarCaches(); err != nil {
			log.Printf("Error flushing calendar caches: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}

package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"personel_backend/internals/configs"
	authRepo "personel_backend/internals/features/users/auth/repository"
)

// Soft-deleted rows older than the retention window are purged together
// with the blacklist.
type purgeTarget struct{ Table, Col string }

var purgeTargets = []purgeTarget{
	{Table: "regions", Col: "region_deleted_at"},
	{Table: "personnel", Col: "personnel_deleted_at"},
	{Table: "leave_requests", Col: "leave_request_deleted_at"},
	{Table: "document_templates", Col: "document_template_deleted_at"},
}

// StartBlacklistCleanupScheduler registers the nightly cleanup job and
// starts the cron runner. The returned cron is stopped on shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB) *cron.Cron {
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)
	retentionDays := configs.GetEnvInt("RETENTION_DAYS", 30)
	schedule := configs.GetEnv("BLACKLIST_CRON", "0 3 * * *")
	repo := authRepo.NewAuthRepository(db)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		before := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)
		n, err := repo.CleanupExpiredBlacklist(ctx, before)
		if err != nil {
			log.Printf("[CLEANUP ERROR] token_blacklist: %v", err)
		} else {
			log.Printf("[CLEANUP] %d expired tokens removed", n)
		}

		purgeSoftDeleted(ctx, db, time.Now().Add(-time.Duration(retentionDays)*24*time.Hour))
	})
	if err != nil {
		log.Printf("[CLEANUP ERROR] invalid schedule %q: %v (cleanup disabled)", schedule, err)
		return c
	}
	log.Printf("[CLEANUP] started schedule=%q blacklist_ttl=%dd retention=%dd", schedule, ttlDays, retentionDays)
	c.Start()
	return c
}

func purgeSoftDeleted(ctx context.Context, db *gorm.DB, cutoff time.Time) {
	for _, t := range purgeTargets {
		res := db.WithContext(ctx).Exec(
			`DELETE FROM `+t.Table+` WHERE `+t.Col+` IS NOT NULL AND `+t.Col+` < ?`,
			cutoff,
		)
		if res.Error != nil {
			log.Printf("[CLEANUP ERROR] %s: %v", t.Table, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			log.Printf("[CLEANUP] %s: hard-deleted %d rows older than %s", t.Table, res.RowsAffected, cutoff.Format(time.RFC3339))
		}
	}
}

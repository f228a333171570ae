package boot

import (
	"log"
	"tourbook/src/common"
	"tourbook/src/config"
	"tourbook/src/db"
	"tourbook/src/lib"
	"tourbook/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	go common.UpdateMissingSlugs(db)

	return db
}

// InitScheduler starts the background scheduler. paymentSync runs every
// PAYMENT_SYNC_INTERVAL; no job is registered when the interval is unset.
func InitScheduler(paymentSync func()) {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	if interval := config.PaymentSyncInterval(); interval > 0 && paymentSync != nil {
		if _, err := lib.CreateCronJob("payment-sync", interval, paymentSync); err != nil {
			log.Printf("Error scheduling payment sync: %s\n", err.Error())
		}
	}
	log.Println("Jobs in queue:", len(sched.Jobs()))
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/LindiweBraids/booking-api/internal/audit"
	"github.com/LindiweBraids/booking-api/internal/config"
	dbpkg "github.com/LindiweBraids/booking-api/internal/db"
	infraRepo "github.com/LindiweBraids/booking-api/internal/infra/repository"
	"github.com/LindiweBraids/booking-api/internal/middleware"
	"github.com/LindiweBraids/booking-api/internal/notify"
	"github.com/LindiweBraids/booking-api/internal/routes"
	"github.com/LindiweBraids/booking-api/internal/sweeper"
	ucBooking "github.com/LindiweBraids/booking-api/internal/usecase/booking"
	"github.com/gin-gonic/gin"
)

const (
	sweepInterval = 5 * time.Minute
	staleAfter    = 24 * time.Hour
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	sender := notify.NewTwilioSender(
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.SMSFrom,
		cfg.WhatsAppFrom,
	)
	notifier := notify.New(sender)

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, notifier, auditDispatcher)

	remindUC := ucBooking.NewSendReminders(
		infraRepo.NewBookingGormRepository(db),
		notifier,
		auditDispatcher,
	)
	go sweeper.New(remindUC, sweepInterval, staleAfter).Run(context.Background())

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

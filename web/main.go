package main

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/config"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/infrastructure/communication"
	"timeclock.app/timeclock/infrastructure/devops"
	"timeclock.app/timeclock/note"
	"timeclock.app/timeclock/report"
	"timeclock.app/timeclock/shift"
	"timeclock.app/timeclock/user"
	"timeclock.app/timeclock/web/handlers"
	"timeclock.app/timeclock/web/middlewares"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Get()

	clk, err := clock.New()
	if err != nil {
		logrus.Fatal(err)
	}

	db, err := core.Open(cfg.DSN, cfg.MaxConnections, core.LogLevelWarn)
	if err != nil {
		logrus.Fatal(err)
	}
	defer core.Close(db)

	if err := core.Migrate(db); err != nil {
		logrus.Fatal(err)
	}

	shifts := shift.NewService(db, clk)
	users := user.NewService(db, clk)
	notes := note.NewService(db, clk)

	mailFrom, recipients, sendAt := mailSettings(ctx, cfg)

	var mailer report.Mailer
	if sesMailer, err := communication.NewSESMailer(ctx); err != nil {
		logrus.WithError(err).Warn("mail dispatch disabled")
	} else {
		mailer = sesMailer
	}

	var notifier report.Notifier
	if slack := communication.ConnectSlack(); slack != nil {
		notifier = slack
	}

	reports := report.NewService(shifts, notes, report.NewBuilder(clk),
		mailer, notifier, clk, mailFrom, recipients)

	if mailer != nil {
		scheduler, err := report.NewScheduler(reports, clk, sendAt)
		if err != nil {
			logrus.Fatal(err)
		}
		go scheduler.Run(ctx)
	}

	endpoint := &handlers.Endpoint{
		Clk:               clk,
		Shifts:            shifts,
		Users:             users,
		Notes:             notes,
		Reports:           reports,
		AdminPasswordHash: cfg.AdminPasswordHash,
		SigningSecret:     cfg.SigningSecret,
	}

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	endpoint.RegisterPublic(api)

	jwtSecret, err := decodeSecret(cfg.SigningSecret)
	if err != nil {
		logrus.Fatal("failed to decode signing secret: ", err)
	}
	protected := api.Group("")
	protected.Use(middlewares.Authentication(jwtSecret))
	endpoint.RegisterAdmin(protected)

	logrus.Infof("timeclock listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logrus.Fatal(err)
	}
}

func decodeSecret(base64Secret string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(base64Secret)
}

// mailSettings prefers the SSM parameter and falls back to env config.
func mailSettings(ctx context.Context, cfg *config.Config) (string, []string, string) {
	if mc, err := devops.LoadMailConfig(ctx); err == nil && mc != nil {
		sendAt := mc.SendAt
		if sendAt == "" {
			sendAt = cfg.ReportSendAt
		}
		return mc.From, mc.Recipients, sendAt
	} else if err != nil {
		logrus.WithError(err).Debug("SSM mail config unavailable, using env")
	}
	return cfg.MailFrom, cfg.MailRecipients, cfg.ReportSendAt
}

// Command sendreport emails the daily timesheet once and exits. Useful
// from cron or for resending a past date:
//
//	sendreport [yyyy-MM-dd]
package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"timeclock.app/timeclock/clock"
	"timeclock.app/timeclock/config"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/infrastructure/communication"
	"timeclock.app/timeclock/infrastructure/devops"
	"timeclock.app/timeclock/note"
	"timeclock.app/timeclock/report"
	"timeclock.app/timeclock/shift"
)

func main() {
	ctx := context.Background()
	cfg := config.Get()

	clk, err := clock.New()
	if err != nil {
		logrus.Fatal(err)
	}

	var date time.Time
	if len(os.Args) > 1 {
		if date, err = clk.ParseDate(os.Args[1]); err != nil {
			logrus.Fatal(err)
		}
	} else {
		date = clk.Today()
	}

	db, err := core.Open(cfg.DSN, 2, core.LogLevelWarn)
	if err != nil {
		logrus.Fatal(err)
	}
	defer core.Close(db)

	mailer, err := communication.NewSESMailer(ctx)
	if err != nil {
		logrus.Fatal(err)
	}

	from, recipients := cfg.MailFrom, cfg.MailRecipients
	if mc, err := devops.LoadMailConfig(ctx); err == nil && mc != nil {
		from, recipients = mc.From, mc.Recipients
	}

	var notifier report.Notifier
	if slack := communication.ConnectSlack(); slack != nil {
		notifier = slack
	}

	shifts := shift.NewService(db, clk)
	notes := note.NewService(db, clk)
	reports := report.NewService(shifts, notes, report.NewBuilder(clk),
		mailer, notifier, clk, from, recipients)

	if err := reports.SendDaily(ctx, date); err != nil {
		logrus.Fatal(err)
	}
}

package providers

import (
	"github.com/samber/do/v2"

	"github.com/gameshubapp/gameshub-server/internal/config"
	"github.com/gameshubapp/gameshub-server/internal/logger"
	"github.com/gameshubapp/gameshub-server/internal/mail"
)

// ProvideMailSender provides the outbound email sender. Without a SendGrid
// key, outgoing mail is logged instead of sent.
func ProvideMailSender(i do.Injector) (mail.Sender, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Mail.SendGridKey == "" {
		log.Warn("No SendGrid key configured; emails will be logged, not sent")
		return mail.NewLogSender(log.Logger), nil
	}

	return mail.NewSendGridSender(cfg.Mail.SendGridKey, cfg.Mail.FromName, cfg.Mail.FromAddress, log.Logger), nil
}

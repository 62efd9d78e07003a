package lead

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/institut/core"
)

var (
	// errors
	ErrNotFound    = errors.New("lead not found")
	errUnknownType = errors.New("unknown lead type")
)

type (
	// Repository appends documents to the `leads` collection.
	Repository interface {
		// AppendLead stores the lead and returns it with the server timestamp set.
		AppendLead(ctx context.Context, l Lead) (Lead, error)
		// QueryLeads returns leads newest first.
		QueryLeads(ctx context.Context, filter QueryFilter) ([]Lead, error)
	}

	Service interface {
		Create(ctx context.Context, l Lead) (Lead, error)
		Query(ctx context.Context, filter QueryFilter) ([]Lead, error)
	}

	service struct {
		repo       Repository
		mailSvc    core.EmailService
		recipients []mail.Address
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config, logger core.Logger) Service {
	if len(conf.LeadRecipients) == 0 {
		logger.Warn("no lead recipients configured: lead notifications will not be sent")
	}
	return &service{
		repo:       repo,
		mailSvc:    mailSvc,
		recipients: conf.LeadRecipients,
	}
}

// Create persists the lead then sends the notifications.
// Sending is fire-and-forget: the email service reports its own failures.
func (svc *service) Create(ctx context.Context, l Lead) (Lead, error) {
	if !isKnownType(l.Type) {
		return Lead{}, errors.Wrap(errUnknownType, l.Type)
	}
	l.ID = uuid.New().String()

	l, err := svc.repo.AppendLead(ctx, l)
	if err != nil {
		return Lead{}, errors.Wrap(err, "appending lead")
	}

	svc.mailSvc.SendMessages(svc.notifications(l)...)
	return l, nil
}

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]Lead, error) {
	leads, err := svc.repo.QueryLeads(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying leads")
	}
	return leads, nil
}

// notifications builds the internal notification and, when possible, the submitter's confirmation.
func (svc *service) notifications(l Lead) []*core.EmailMessage {
	msgs := make([]*core.EmailMessage, 0, 2)

	subject := "Nouvelle demande : " + l.Type
	if l.FormationName != "" {
		subject += " - " + l.FormationName
	}
	internal := &core.EmailMessage{
		To:      svc.recipients,
		Subject: subject,
		BodyStr: summary(l),
	}
	if addr, err := mail.ParseAddress(l.Email); err == nil {
		addr.Name = l.FullName
		internal.ReplyTo = addr

		msgs = append(msgs, &core.EmailMessage{
			To:      []mail.Address{*addr},
			Subject: "Nous avons bien reçu votre demande",
			BodyStr: confirmation(l),
		})
	}
	return append([]*core.EmailMessage{internal}, msgs...)
}

func summary(l Lead) string {
	var b strings.Builder
	line := func(label, val string) {
		if val != "" {
			_, _ = fmt.Fprintf(&b, "%s : %s\n", label, val)
		}
	}
	line("Type", l.Type)
	line("Date", l.CreatedAt.Format("02/01/2006 15:04"))
	line("Nom complet", l.FullName)
	line("E-mail", l.Email)
	line("Téléphone", l.Phone)
	line("Objet", l.Subject)
	if l.FormationName != "" {
		line("Formation", strings.TrimSpace(l.FormationName+" ("+l.FormationCode+")"))
	}
	if l.StartDate != nil {
		line("Date de début", l.StartDate.Format("02/01/2006"))
	}
	if l.NumberOfPeople > 0 {
		line("Participants", strconv.Itoa(l.NumberOfPeople))
	}
	line("Pays", l.Country)
	if l.TotalPrice != nil {
		line("Prix total", strconv.FormatFloat(*l.TotalPrice, 'f', 2, 64))
	}
	line("Message", l.Message)
	return b.String()
}

func confirmation(l Lead) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "Bonjour %s,\n\n", l.FullName)
	if l.IsReservation() {
		b.WriteString("Votre réservation a bien été enregistrée. Notre équipe vous contactera pour finaliser votre inscription.\n\n")
	} else {
		b.WriteString("Votre demande a bien été envoyée. Notre équipe vous répondra dans les plus brefs délais.\n\n")
	}
	b.WriteString(summary(l))
	return b.String()
}

func isKnownType(t string) bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

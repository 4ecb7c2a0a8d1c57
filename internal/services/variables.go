package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/eventdesk/eventdesk-backend/internal/platform/apierr"
	"github.com/eventdesk/eventdesk-backend/internal/platform/ctxutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/dbctx"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/repos"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

const (
	dateLayout     = "02.01.2006"
	dateTimeLayout = "02.01.2006 15:04"
	timeLayout     = "15:04"
)

// depositShare is the fixed advance fraction of the contract budget.
const depositShare = 0.5

// VariableService aggregates an event and its related records into the
// flat substitution map templates consume. Resolution recomputes
// everything on each call; nothing is cached. Any upstream fetch
// failure aborts the whole resolution, a partial map is never returned.
type VariableService interface {
	Resolve(ctx context.Context, eventID uuid.UUID) (types.VariableMap, error)
}

type variableService struct {
	log          *logger.Logger
	eventRepo    repos.EventRepo
	offerRepo    repos.OfferRepo
	employeeRepo repos.EmployeeRepo
	tables       OfferTableBuilder
	printer      *message.Printer
}

func NewVariableService(log *logger.Logger, eventRepo repos.EventRepo, offerRepo repos.OfferRepo, employeeRepo repos.EmployeeRepo, tables OfferTableBuilder) VariableService {
	return &variableService{
		log:          log.With("service", "VariableService"),
		eventRepo:    eventRepo,
		offerRepo:    offerRepo,
		employeeRepo: employeeRepo,
		tables:       tables,
		printer:      message.NewPrinter(language.Polish),
	}
}

func (vs *variableService) Resolve(ctx context.Context, eventID uuid.UUID) (types.VariableMap, error) {
	var (
		event    *types.Event
		offer    *types.Offer
		executor *types.Employee
	)

	rd := ctxutil.GetRequestData(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := vs.eventRepo.GetByID(dbctx.Context{Ctx: gctx}, eventID)
		if err != nil {
			return apierr.Upstream(fmt.Errorf("fetch event %s: %w", eventID, err))
		}
		if e == nil {
			return apierr.NotFound(fmt.Errorf("event %s not found", eventID))
		}
		event = e
		return nil
	})
	g.Go(func() error {
		o, err := vs.offerRepo.GetLatestByEventID(dbctx.Context{Ctx: gctx}, eventID)
		if err != nil {
			return apierr.Upstream(fmt.Errorf("fetch latest offer for event %s: %w", eventID, err))
		}
		offer = o
		return nil
	})
	if rd != nil && rd.ActorID != uuid.Nil {
		g.Go(func() error {
			emp, err := vs.employeeRepo.GetByID(dbctx.Context{Ctx: gctx}, rd.ActorID)
			if err != nil {
				return apierr.Upstream(fmt.Errorf("fetch executor profile: %w", err))
			}
			executor = emp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	vars := types.VariableMap{}

	vs.putContact(vars, event.Contact)
	vs.putOrganization(vars, event.Organization)
	vs.putEvent(vars, event)
	vs.putLocation(vars, event)
	vs.putAmounts(vars, event, offer)
	vs.putExecutor(vars, executor)
	vs.putOfferItems(vars, offer)

	now := time.Now()
	vars["contract_number"] = fmt.Sprintf("UMW/%d/%03d", now.Year(), rand.Intn(1000))
	vars["contract_date"] = now.Format(dateLayout)

	return vars, nil
}

func (vs *variableService) putContact(vars types.VariableMap, contact *types.Contact) {
	if contact == nil {
		contact = &types.Contact{}
	}
	vars["contact_full_name"] = contact.FullName()
	vars["contact_first_name"] = contact.FirstName
	vars["contact_last_name"] = contact.LastName
	vars["contact_email"] = contact.Email
	vars["contact_phone"] = contact.Phone
	vars["contact_address"] = contact.Address
}

func (vs *variableService) putOrganization(vars types.VariableMap, org *types.Organization) {
	if org == nil {
		org = &types.Organization{}
	}
	vars["organization_name"] = org.Name
	vars["organization_tax_id"] = org.TaxID
	vars["organization_address"] = org.Address
}

func (vs *variableService) putEvent(vars types.VariableMap, event *types.Event) {
	vars["event_name"] = event.Name
	vars["event_kind"] = event.Kind
	vars["event_date"] = event.StartsAt.Format(dateLayout)
	vars["event_start"] = event.StartsAt.Format(dateTimeLayout)
	if sameDay(event.StartsAt, event.EndsAt) {
		vars["event_end"] = event.EndsAt.Format(timeLayout)
	} else {
		vars["event_end"] = event.EndsAt.Format(dateTimeLayout)
	}
	vars["event_guest_count"] = strconv.Itoa(event.GuestCount)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// putLocation prefers the structured record. Events that only carry a
// free-text venue get a comma-split parse: first segment is the street
// address, the next segment's leading token is the postal code and the
// remainder is the city. Fewer than two segments degrades to
// address-only.
func (vs *variableService) putLocation(vars types.VariableMap, event *types.Event) {
	if loc := event.Location; loc != nil {
		vars["location_name"] = loc.Name
		vars["location_address"] = loc.Address
		vars["location_postal_code"] = loc.PostalCode
		vars["location_city"] = loc.City
		return
	}
	address, postal, city := parseLocationText(event.LocationText)
	vars["location_name"] = strings.TrimSpace(event.LocationText)
	vars["location_address"] = address
	vars["location_postal_code"] = postal
	vars["location_city"] = city
}

func parseLocationText(raw string) (address, postal, city string) {
	raw = strings.TrimSpace(raw)
	segments := strings.Split(raw, ",")
	if len(segments) < 2 {
		return raw, "", ""
	}
	address = strings.TrimSpace(segments[0])
	rest := strings.TrimSpace(strings.Join(segments[1:], ","))
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return address, "", ""
	}
	postal = fields[0]
	city = strings.TrimSpace(strings.Join(fields[1:], " "))
	return address, postal, city
}

// putAmounts computes the money fields: latest offer total wins, then
// the event budget, then zero. The deposit is the rounded advance and
// both amounts carry a spelled-out words form of their rounded value.
func (vs *variableService) putAmounts(vars types.VariableMap, event *types.Event, offer *types.Offer) {
	budget := 0.0
	switch {
	case offer != nil && offer.Total > 0:
		budget = offer.Total
	case event.Budget > 0:
		budget = event.Budget
	}
	deposit := math.Round(budget * depositShare)

	vars["budget"] = vs.printer.Sprintf("%.2f zł", budget)
	vars["budget_words"] = polishWords(int64(math.Round(budget)))
	vars["deposit_amount"] = vs.printer.Sprintf("%.2f zł", deposit)
	vars["deposit_words"] = polishWords(int64(deposit))
}

func (vs *variableService) putExecutor(vars types.VariableMap, executor *types.Employee) {
	if executor == nil {
		executor = &types.Employee{}
	}
	vars["executor_name"] = executor.FullName()
	vars["executor_title"] = executor.Title
	vars["executor_email"] = executor.Email
	vars["executor_phone"] = executor.Phone
}

func (vs *variableService) putOfferItems(vars types.VariableMap, offer *types.Offer) {
	var items []*types.OfferItem
	if offer != nil {
		items = offer.Items
	}
	vars["offer_items"] = vs.tables.BuildList(items)
	vars["OFFER_ITEMS_TABLE"] = vs.tables.BuildTable(items)
}

package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

func newTestVariableService(t *testing.T, events *fakeEventRepo, offers *fakeOfferRepo, employees *fakeEmployeeRepo) VariableService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewVariableService(log, events, offers, employees, NewOfferTableBuilder(log))
}

func testEvent() *types.Event {
	return &types.Event{
		ID:         uuid.New(),
		Name:       "Gala firmowa",
		Kind:       "gala",
		StartsAt:   time.Date(2026, 9, 12, 18, 0, 0, 0, time.Local),
		EndsAt:     time.Date(2026, 9, 12, 23, 30, 0, 0, time.Local),
		GuestCount: 120,
		Budget:     1000,
		Contact: &types.Contact{
			FirstName: "Jan",
			LastName:  "Kowalski",
			Email:     "jan@example.com",
		},
	}
}

func TestResolveDepositFromBudget(t *testing.T) {
	vs := newTestVariableService(t, &fakeEventRepo{event: testEvent()}, &fakeOfferRepo{}, &fakeEmployeeRepo{})

	vars, err := vs.Resolve(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := vars["deposit_amount"]; got != "500,00 zł" {
		t.Fatalf("deposit_amount: want=%q got=%q", "500,00 zł", got)
	}
	if got := vars["deposit_words"]; got != "pięćset" {
		t.Fatalf("deposit_words: want=%q got=%q", "pięćset", got)
	}
	if got := vars["budget_words"]; got != "tysiąc" {
		t.Fatalf("budget_words: want=%q got=%q", "tysiąc", got)
	}
}

func TestResolveOfferTotalOverridesEventBudget(t *testing.T) {
	offer := &types.Offer{ID: uuid.New(), Total: 2500}
	vs := newTestVariableService(t, &fakeEventRepo{event: testEvent()}, &fakeOfferRepo{offer: offer}, &fakeEmployeeRepo{})

	vars, err := vs.Resolve(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := vars["budget_words"]; got != "dwa tysiące pięćset" {
		t.Fatalf("budget_words: want=%q got=%q", "dwa tysiące pięćset", got)
	}
	if got := vars["deposit_words"]; got != "tysiąc dwieście pięćdziesiąt" {
		t.Fatalf("deposit_words: want=%q got=%q", "tysiąc dwieście pięćdziesiąt", got)
	}
}

func TestResolveContractNumberShape(t *testing.T) {
	vs := newTestVariableService(t, &fakeEventRepo{event: testEvent()}, &fakeOfferRepo{}, &fakeEmployeeRepo{})

	vars, err := vs.Resolve(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	pattern := regexp.MustCompile(`^UMW/\d{4}/\d{3}$`)
	if !pattern.MatchString(vars["contract_number"]) {
		t.Fatalf("contract_number shape: got=%q", vars["contract_number"])
	}
	if vars["contract_date"] != time.Now().Format("02.01.2006") {
		t.Fatalf("contract_date: got=%q", vars["contract_date"])
	}
}

func TestResolveLocationStructuredRecordPreferred(t *testing.T) {
	event := testEvent()
	event.Location = &types.Location{
		Name:       "Hotel Kasztelan",
		Address:    "ul. Zamkowa 1",
		PostalCode: "10-100",
		City:       "Olsztyn",
	}
	event.LocationText = "ignored, 00-000 Nigdzie"
	vs := newTestVariableService(t, &fakeEventRepo{event: event}, &fakeOfferRepo{}, &fakeEmployeeRepo{})

	vars, err := vs.Resolve(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if vars["location_name"] != "Hotel Kasztelan" || vars["location_city"] != "Olsztyn" {
		t.Fatalf("structured location not preferred: name=%q city=%q", vars["location_name"], vars["location_city"])
	}
}

func TestParseLocationText(t *testing.T) {
	cases := []struct {
		raw                   string
		address, postal, city string
	}{
		{"ul. Kwiatowa 5, 10-200 Olsztyn", "ul. Kwiatowa 5", "10-200", "Olsztyn"},
		{"ul. Kwiatowa 5", "ul. Kwiatowa 5", "", ""},
		{"Rynek 3, 31-042 Kraków Stare Miasto", "Rynek 3", "31-042", "Kraków Stare Miasto"},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		address, postal, city := parseLocationText(tc.raw)
		if address != tc.address || postal != tc.postal || city != tc.city {
			t.Fatalf("parseLocationText(%q): want=(%q,%q,%q) got=(%q,%q,%q)",
				tc.raw, tc.address, tc.postal, tc.city, address, postal, city)
		}
	}
}

func TestResolveOfferItemsBothShapes(t *testing.T) {
	offer := &types.Offer{
		ID:    uuid.New(),
		Total: 1200,
		Items: []*types.OfferItem{{Name: "Nagłośnienie", Quantity: 2}},
	}
	vs := newTestVariableService(t, &fakeEventRepo{event: testEvent()}, &fakeOfferRepo{offer: offer}, &fakeEmployeeRepo{})

	vars, err := vs.Resolve(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.Contains(vars["offer_items"], "1. Nagłośnienie") || !strings.Contains(vars["offer_items"], "Ilość: 2") {
		t.Fatalf("offer_items: got=%q", vars["offer_items"])
	}
	if !strings.Contains(vars["OFFER_ITEMS_TABLE"], "<td>Nagłośnienie</td>") {
		t.Fatalf("OFFER_ITEMS_TABLE: got=%q", vars["OFFER_ITEMS_TABLE"])
	}
}

func TestResolveAbortsOnFetchFailure(t *testing.T) {
	vs := newTestVariableService(t,
		&fakeEventRepo{event: testEvent()},
		&fakeOfferRepo{err: errors.New("connection refused")},
		&fakeEmployeeRepo{})

	vars, err := vs.Resolve(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("Resolve: expected error on offer fetch failure")
	}
	if vars != nil {
		t.Fatalf("Resolve: partial map returned on failure: %v", vars)
	}
}

func TestResolveUnknownEventNotFound(t *testing.T) {
	vs := newTestVariableService(t, &fakeEventRepo{}, &fakeOfferRepo{}, &fakeEmployeeRepo{})

	_, err := vs.Resolve(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("Resolve: expected not-found error")
	}
}

package services

import (
	"strings"
	"time"
	"trip-planner-service/internal/domain"
)

// ItineraryInput carries everything the builder needs for one plan.
type ItineraryInput struct {
	StartDate   time.Time
	Days        int
	Travelers   int
	POIs        []domain.POI
	Restaurants []domain.Restaurant
	// Hotel and transport cost the running total starts from.
	BaseCost  float64
	BudgetCap *float64
}

// Itinerary is the builder output.
type Itinerary struct {
	Slots []domain.ItinerarySlot
	// Restaurants and tickets actually assigned, for the whole group.
	Spend float64
	// Base cost plus Spend.
	RunningTotal float64
	// The running total crossed the cap at some assignment.
	ExceededCap bool
}

// BuildItinerary fills Days x 2 session slots with non-repeating POIs and
// restaurants.
//
// The builder is greedy and order-stable: POIs and restaurants are taken in
// catalog order, names already used are skipped, and an exhausted queue
// leaves the remaining slots empty instead of failing. The morning slot gets
// the lunch restaurant and the afternoon slot the dinner one. The running
// total is checked against the cap after every assignment; crossing it is
// reported, never fatal.
func BuildItinerary(in ItineraryInput) Itinerary {
	if in.Days < 1 {
		return Itinerary{Slots: []domain.ItinerarySlot{}, RunningTotal: in.BaseCost}
	}

	pois := newQueue(in.POIs, func(p domain.POI) string { return p.Name })
	restaurants := newQueue(in.Restaurants, func(r domain.Restaurant) string { return r.Name })

	travelers := float64(in.Travelers)
	running := in.BaseCost
	spend := 0.0
	exceeded := false

	charge := func(amount float64) {
		running += amount
		spend += amount
		if overCap(running, in.BudgetCap) {
			exceeded = true
		}
	}

	// Hotel and transport alone may already break the cap.
	if overCap(running, in.BudgetCap) {
		exceeded = true
	}

	slots := make([]domain.ItinerarySlot, 0, in.Days*len(domain.Sessions))
	for day := 0; day < in.Days; day++ {
		date := in.StartDate.AddDate(0, 0, day)

		for _, session := range domain.Sessions {
			slot := domain.ItinerarySlot{
				Day:         day,
				Date:        date,
				Session:     session,
				Meal:        domain.MealFor(session),
				Suitability: domain.SuitabilityUnknown,
			}

			if p, ok := pois.pop(); ok {
				slot.POI = &p
				charge(p.TicketPrice * travelers)
			}

			if r, ok := restaurants.pop(); ok {
				slot.Restaurant = &r
				charge(r.AvgCost * travelers)
			}

			slot.RunningTotal = domain.RoundMoney(running)
			slots = append(slots, slot)
		}
	}

	return Itinerary{
		Slots:        slots,
		Spend:        spend,
		RunningTotal: running,
		ExceededCap:  exceeded,
	}
}

// overCap compares at cent precision, like the plan's grand total.
func overCap(total float64, cap *float64) bool {
	return cap != nil && domain.RoundMoney(total) > *cap
}

// queue hands out catalog records in order, never the same name twice.
type queue[T any] struct {
	items []T
	name  func(T) string
	next  int
	used  map[string]struct{}
}

func newQueue[T any](items []T, name func(T) string) *queue[T] {
	return &queue[T]{
		items: items,
		name:  name,
		used:  make(map[string]struct{}, len(items)),
	}
}

func (q *queue[T]) pop() (T, bool) {
	for q.next < len(q.items) {
		item := q.items[q.next]
		q.next++

		key := strings.TrimSpace(q.name(item))
		if key == "" {
			continue
		}
		if _, ok := q.used[key]; ok {
			continue
		}
		q.used[key] = struct{}{}
		return item, true
	}

	var zero T
	return zero, false
}

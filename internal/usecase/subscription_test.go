package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	testhelpers "github.com/conzooming/mealsub/internal/test"
	. "github.com/conzooming/mealsub/internal/usecase"
)

func weekPlan() *model.MealPlan {
	return &model.MealPlan{
		ID:     "plan-1",
		UserID: "user-1",
		PlanDetails: []model.DayPlan{
			{DayOfWeek: model.Monday, Meals: []model.Meal{
				{MealClass: model.MealClassBreakfast, TotalAmount: 1200},
				{MealClass: model.MealClassLunch, TotalAmount: 2500},
			}},
			{DayOfWeek: model.Wednesday, Meals: []model.Meal{
				{MealClass: model.MealClassLunch, TotalAmount: 3000},
			}},
			{DayOfWeek: model.Friday, Meals: []model.Meal{
				{MealClass: model.MealClassDinner, TotalAmount: 1800},
			}},
		},
	}
}

func draftWith(plan *model.MealPlan, days ...model.Weekday) *model.SubscriptionDraft {
	return &model.SubscriptionDraft{
		MealPlan:          *plan,
		DeliveryFrequency: model.DeliveryFrequency{Frequency: "weekly", Days: days},
		StartDate:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFilterByDeliveryDaysKeepsCanonicalOrder(t *testing.T) {
	// Selection order is deliberately scrambled.
	filtered, err := FilterByDeliveryDays(weekPlan(), []model.Weekday{model.Friday, model.Monday})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered.PlanDetails) != 2 {
		t.Fatalf("expected 2 days, got %d", len(filtered.PlanDetails))
	}
	if filtered.PlanDetails[0].DayOfWeek != model.Monday || filtered.PlanDetails[1].DayOfWeek != model.Friday {
		t.Fatalf("days out of canonical order: %v %v", filtered.PlanDetails[0].DayOfWeek, filtered.PlanDetails[1].DayOfWeek)
	}
}

func TestFilterByDeliveryDaysNoMatches(t *testing.T) {
	if _, err := FilterByDeliveryDays(weekPlan(), []model.Weekday{model.Sunday}); !errors.Is(err, domainErrors.ErrNoMatchingDays) {
		t.Fatalf("expected no matching days error, got %v", err)
	}
}

func TestFilterByDeliveryDaysUnknownDay(t *testing.T) {
	if _, err := FilterByDeliveryDays(weekPlan(), []model.Weekday{"Funday"}); !errors.Is(err, domainErrors.ErrUnknownDay) {
		t.Fatalf("expected unknown day error, got %v", err)
	}
}

func TestFilterByDeliveryDaysLeavesSourceIntact(t *testing.T) {
	plan := weekPlan()
	if _, err := FilterByDeliveryDays(plan, []model.Weekday{model.Monday}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.PlanDetails) != 3 {
		t.Fatalf("source plan mutated, %d days left", len(plan.PlanDetails))
	}
}

func TestSubtotalFoldsSelectedDaysOnly(t *testing.T) {
	got := Subtotal(weekPlan(), []model.Weekday{model.Monday, model.Friday})
	if want := 1200.0 + 2500 + 1800; got != want {
		t.Fatalf("expected subtotal %.2f, got %.2f", want, got)
	}
	if got := Subtotal(weekPlan(), nil); got != 0 {
		t.Fatalf("expected zero subtotal for empty selection, got %.2f", got)
	}
}

func TestSubscriptionStartDraftSelectsAllDays(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	uc := NewSubscriptionUseCase(&testhelpers.GatewayClientStub{
		GetMealPlanFn: func(ctx context.Context, token, id string) (*model.MealPlan, error) {
			if id != "plan-1" {
				t.Fatalf("unexpected plan id %q", id)
			}
			return weekPlan(), nil
		},
	}, drafts)

	draft, err := uc.StartDraft(context.Background(), "tok", "user-1", "plan-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(draft.DeliveryFrequency.Days) != 3 {
		t.Fatalf("expected all plan days selected, got %v", draft.DeliveryFrequency.Days)
	}
	if _, ok := drafts.Drafts["user-1"]; !ok {
		t.Fatal("draft was not persisted")
	}
}

func TestSubscriptionSetFrequencyNormalizes(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday, model.Wednesday, model.Friday)
	uc := NewSubscriptionUseCase(&testhelpers.GatewayClientStub{}, drafts)

	draft, err := uc.SetFrequency(context.Background(), "user-1", model.DeliveryFrequency{
		Frequency: "weekly",
		Days:      []model.Weekday{"friday", "MONDAY", "friday"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.Weekday{model.Monday, model.Friday}
	if len(draft.DeliveryFrequency.Days) != len(want) {
		t.Fatalf("expected %v, got %v", want, draft.DeliveryFrequency.Days)
	}
	for i, d := range want {
		if draft.DeliveryFrequency.Days[i] != d {
			t.Fatalf("expected %v, got %v", want, draft.DeliveryFrequency.Days)
		}
	}
}

func TestSubscriptionSetFrequencyRejectsNonPlanDays(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday)
	uc := NewSubscriptionUseCase(&testhelpers.GatewayClientStub{}, drafts)

	_, err := uc.SetFrequency(context.Background(), "user-1", model.DeliveryFrequency{
		Frequency: "weekly",
		Days:      []model.Weekday{model.Sunday},
	})
	if !errors.Is(err, domainErrors.ErrNoMatchingDays) {
		t.Fatalf("expected no matching days error, got %v", err)
	}
}

func TestSubscriptionRemoveMeal(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday, model.Wednesday)
	uc := NewSubscriptionUseCase(&testhelpers.GatewayClientStub{}, drafts)

	draft, err := uc.RemoveMeal(context.Background(), "user-1", model.Monday, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day, _ := draft.MealPlan.Day(model.Monday)
	if len(day.Meals) != 1 || day.Meals[0].MealClass != model.MealClassLunch {
		t.Fatalf("expected breakfast removed, got %v", day.Meals)
	}

	// Persisted, not just returned.
	stored := drafts.Drafts["user-1"]
	storedDay, _ := stored.MealPlan.Day(model.Monday)
	if len(storedDay.Meals) != 1 {
		t.Fatalf("removal not persisted, %d meals left", len(storedDay.Meals))
	}
}

func TestSubscriptionRemoveMealOutOfRange(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday)
	uc := NewSubscriptionUseCase(&testhelpers.GatewayClientStub{}, drafts)

	draft, err := uc.RemoveMeal(context.Background(), "user-1", model.Monday, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day, _ := draft.MealPlan.Day(model.Monday)
	if len(day.Meals) != 2 {
		t.Fatalf("out-of-range removal should be a no-op, got %d meals", len(day.Meals))
	}
}

func TestSubscriptionRemoveMealUnknownDay(t *testing.T) {
	drafts := testhelpers.NewDraftRepositoryStub()
	drafts.Drafts["user-1"] = draftWith(weekPlan(), model.Monday)
	uc := NewSubscriptionUseCase(&testhelpers.GatewayClientStub{}, drafts)

	if _, err := uc.RemoveMeal(context.Background(), "user-1", model.Sunday, 0); !errors.Is(err, domainErrors.ErrUnknownDay) {
		t.Fatalf("expected unknown day error, got %v", err)
	}
}

package cart

import (
	"testing"

	"github.com/shopfront/internal/models"
)

func testProduct(id, price string) models.Product {
	return models.Product{
		ID:              id,
		Title:           "product-" + id,
		Price:           models.MustMoney(price),
		DiscountedPrice: models.MustMoney(price),
	}
}

func TestReduceAddAppendsThenIncrements(t *testing.T) {
	p := testProduct("p1", "10.00")

	state := Reduce(State{}, AddItem{Product: p})
	if len(state.Items) != 1 || state.Items[0].Quantity != 1 {
		t.Fatalf("first add should append quantity 1, got %+v", state.Items)
	}

	state = Reduce(state, AddItem{Product: p})
	if len(state.Items) != 1 {
		t.Fatalf("second add must not duplicate line, got %d lines", len(state.Items))
	}
	if state.Items[0].Quantity != 2 {
		t.Fatalf("second add should increment to 2, got %d", state.Items[0].Quantity)
	}
}

func TestReduceKeepsInsertionOrder(t *testing.T) {
	state := State{}
	for _, id := range []string{"c", "a", "b", "a"} {
		state = Reduce(state, AddItem{Product: testProduct(id, "1")})
	}
	got := []string{state.Items[0].ID, state.Items[1].ID, state.Items[2].ID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order want %v got %v", want, got)
		}
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Reduce(State{}, AddItem{Product: testProduct("p1", "1")})
	_ = Reduce(before, AddItem{Product: testProduct("p1", "1")})
	_ = Reduce(before, SetQuantity{ProductID: "p1", Quantity: 9})
	_ = Reduce(before, RemoveItem{ProductID: "p1"})

	if len(before.Items) != 1 || before.Items[0].Quantity != 1 {
		t.Fatalf("input state mutated: %+v", before.Items)
	}
}

func TestReduceSetQuantityNonPositiveRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		state := Reduce(State{}, AddItem{Product: testProduct("p1", "1")})
		state = Reduce(state, AddItem{Product: testProduct("p2", "1")})
		state = Reduce(state, SetQuantity{ProductID: "p1", Quantity: qty})
		if len(state.Items) != 1 || state.Items[0].ID != "p2" {
			t.Fatalf("quantity %d should remove p1, got %+v", qty, state.Items)
		}
	}
}

func TestReduceSetQuantityIsAbsolute(t *testing.T) {
	state := Reduce(State{}, AddItem{Product: testProduct("p1", "1")})
	state = Reduce(state, SetQuantity{ProductID: "p1", Quantity: 5})
	if state.Items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", state.Items[0].Quantity)
	}
	state = Reduce(state, SetQuantity{ProductID: "missing", Quantity: 3})
	if len(state.Items) != 1 {
		t.Fatalf("setting quantity of missing id must not append")
	}
}

func TestReduceRemoveMissingIsNoop(t *testing.T) {
	state := Reduce(State{}, AddItem{Product: testProduct("p1", "1")})
	state = Reduce(state, RemoveItem{ProductID: "nope"})
	if len(state.Items) != 1 {
		t.Fatalf("remove of missing id should be no-op")
	}
}

func TestReduceClear(t *testing.T) {
	state := Reduce(State{}, AddItem{Product: testProduct("p1", "1")})
	state = Reduce(state, Clear{})
	if len(state.Items) != 0 {
		t.Fatalf("clear should empty the cart")
	}
}

func TestSummarizeTotals(t *testing.T) {
	state := Reduce(State{}, AddItem{Product: testProduct("a", "10.00")})
	state = Reduce(state, SetQuantity{ProductID: "a", Quantity: 2})
	state = Reduce(state, AddItem{Product: testProduct("b", "5.00")})
	state = Reduce(state, SetQuantity{ProductID: "b", Quantity: 3})

	summary := Summarize(state.Items)
	if summary.ItemCount != 5 {
		t.Fatalf("item count want 5 got %d", summary.ItemCount)
	}
	if summary.Total.String() != "35.00" {
		t.Fatalf("total want 35.00 got %s", summary.Total.String())
	}
}

func TestSummarizeMatchesItemsAfterAnySequence(t *testing.T) {
	actions := []Action{
		AddItem{Product: testProduct("a", "1.10")},
		AddItem{Product: testProduct("b", "2.20")},
		AddItem{Product: testProduct("a", "1.10")},
		SetQuantity{ProductID: "b", Quantity: 4},
		AddItem{Product: testProduct("c", "0.30")},
		RemoveItem{ProductID: "a"},
		SetQuantity{ProductID: "c", Quantity: -2},
		AddItem{Product: testProduct("a", "1.10")},
	}
	state := State{}
	for i, action := range actions {
		state = Reduce(state, action)
		summary := Summarize(state.Items)

		count := 0
		total := models.MustMoney("0")
		for _, item := range state.Items {
			if item.Quantity < 1 {
				t.Fatalf("step %d: quantity below 1 for %s", i, item.ID)
			}
			count += item.Quantity
			total = total.Add(item.DiscountedPrice.Mul(item.Quantity))
		}
		if summary.ItemCount != count || !summary.Total.Equal(total) {
			t.Fatalf("step %d: summary %+v does not match items", i, summary)
		}
	}
}

package seed

import (
	"testing"

	"wanderlust/internal/domain"
)

func TestDefault_IDsAreNeverStoreIDs(t *testing.T) {
	t.Parallel()

	c := Default()
	if len(c.IDs()) == 0 {
		t.Fatal("expected demo trips")
	}
	for _, id := range c.IDs() {
		if domain.ParseTripRef(id).Stored() {
			t.Errorf("demo id %q would route to the store", id)
		}
	}
}

func TestDefault_StopsAreNumberedAndAuthorsResolve(t *testing.T) {
	t.Parallel()

	c := Default()
	for _, id := range c.IDs() {
		trip, author, ok := c.Get(id)
		if !ok {
			t.Fatalf("trip %s missing", id)
		}
		if author == nil {
			t.Errorf("trip %s has no author", id)
		}
		for i, s := range trip.Stops {
			if s.Position != i+1 {
				t.Errorf("trip %s stop %d has position %d", id, i, s.Position)
			}
			if s.TripID != id {
				t.Errorf("trip %s stop bound to %q", id, s.TripID)
			}
		}
	}
}

func TestCatalog_GetReturnsCopies(t *testing.T) {
	t.Parallel()

	c := Default()
	trip, _, _ := c.Get("eu1")
	trip.Stops[0].Name = "changed"

	again, _, _ := c.Get("eu1")
	if again.Stops[0].Name == "changed" {
		t.Error("catalog was mutated through a returned trip")
	}
	if _, _, ok := c.Get("nope"); ok {
		t.Error("unknown id resolved")
	}
}

func TestCatalog_NewestFirst(t *testing.T) {
	t.Parallel()

	c := Default()
	ids := c.IDs()
	for i := 1; i < len(ids); i++ {
		prev, _, _ := c.Get(ids[i-1])
		cur, _, _ := c.Get(ids[i])
		if cur.CreatedAt.After(prev.CreatedAt) {
			t.Errorf("%s listed after older %s", ids[i], ids[i-1])
		}
	}
}

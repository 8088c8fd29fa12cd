package motivation

import (
	"context"
	"errors"
	"testing"
)

func newTestManager() (*Manager, *MockStore, *MockCache) {
	store := NewMockStore()
	cache := NewMockCache()
	mgr := New(WithStore(store), WithCache(cache))
	return mgr, store, cache
}

func seedQuotes(t *testing.T, mgr *Manager) []Quote {
	t.Helper()
	quotes := []Quote{
		{ID: "q1", Text: "Keep going", Author: "Anon", Category: "Perseverance"},
		{ID: "q2", Text: "Start now", Author: "Seneca", Category: "action"},
		{ID: "q3", Text: "Dream big", Category: "vision"},
	}
	for i := range quotes {
		if err := mgr.AddQuote(context.Background(), &quotes[i]); err != nil {
			t.Fatalf("AddQuote failed: %v", err)
		}
	}
	return quotes
}

func TestManager_AddQuote(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()

	quote := &Quote{Text: "No excuses", Category: "Discipline"}
	if err := mgr.AddQuote(ctx, quote); err != nil {
		t.Fatalf("AddQuote failed: %v", err)
	}
	if quote.ID == "" {
		t.Error("Expected generated ID")
	}
	if quote.Category != "discipline" {
		t.Errorf("Expected normalized category, got %q", quote.Category)
	}
	if quote.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be stamped")
	}

	// Empty text is rejected.
	err := mgr.AddQuote(ctx, &Quote{Text: "   "})
	if !errors.Is(err, ErrInvalidQuote) {
		t.Errorf("Expected ErrInvalidQuote, got: %v", err)
	}

	if err := mgr.AddQuote(ctx, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil quote, got: %v", err)
	}
}

func TestManager_QuoteRoundTrip(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()
	seedQuotes(t, mgr)

	quote, err := mgr.Quote(ctx, "q1")
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if quote.Text != "Keep going" {
		t.Errorf("Expected 'Keep going', got %q", quote.Text)
	}
	if quote.Category != "perseverance" {
		t.Errorf("Expected lowercase category, got %q", quote.Category)
	}

	if _, err := mgr.Quote(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestManager_Quotes(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()
	seedQuotes(t, mgr)

	quotes, err := mgr.Quotes(ctx)
	if err != nil {
		t.Fatalf("Quotes failed: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("Expected 3 quotes, got %d", len(quotes))
	}
}

func TestManager_QuotesByCategory(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()
	seedQuotes(t, mgr)

	quotes, err := mgr.QuotesByCategory(ctx, "PERSEVERANCE")
	if err != nil {
		t.Fatalf("QuotesByCategory failed: %v", err)
	}
	if len(quotes) != 1 || quotes[0].ID != "q1" {
		t.Errorf("Expected [q1], got %v", quotes)
	}

	if _, err := mgr.QuotesByCategory(ctx, "  "); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("Expected ErrInvalidCategory, got: %v", err)
	}
}

func TestManager_DeleteQuote(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()
	seedQuotes(t, mgr)

	if err := mgr.DeleteQuote(ctx, "q2"); err != nil {
		t.Fatalf("DeleteQuote failed: %v", err)
	}
	if _, err := mgr.Quote(ctx, "q2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got: %v", err)
	}
	if err := mgr.DeleteQuote(ctx, "q2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for double delete, got: %v", err)
	}
}

func TestManager_ReplaceAll(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()
	seedQuotes(t, mgr)

	err := mgr.ReplaceAll(ctx, []Quote{{ID: "n1", Text: "New era"}})
	if err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	quotes, err := mgr.Quotes(ctx)
	if err != nil {
		t.Fatalf("Quotes failed: %v", err)
	}
	if len(quotes) != 1 || quotes[0].ID != "n1" {
		t.Errorf("Expected only the new quote, got %v", quotes)
	}
}

func TestManager_Pool(t *testing.T) {
	mgr, _, cache := newTestManager()
	ctx := context.Background()
	seedQuotes(t, mgr)

	// No preferences: whole library.
	pool, err := mgr.Pool(ctx, "u1")
	if err != nil {
		t.Fatalf("Pool failed: %v", err)
	}
	if len(pool) != 3 {
		t.Errorf("Expected pool of 3, got %d", len(pool))
	}
	if !cache.contains("pool:u1") {
		t.Error("Expected pool to be cached")
	}

	// Preferences filter the pool case-insensitively.
	if err := mgr.SetCategories(ctx, "u1", []string{"Action", "VISION"}); err != nil {
		t.Fatalf("SetCategories failed: %v", err)
	}
	pool, err = mgr.Pool(ctx, "u1")
	if err != nil {
		t.Fatalf("Pool failed: %v", err)
	}
	if len(pool) != 2 {
		t.Errorf("Expected filtered pool of 2, got %d", len(pool))
	}
	for _, q := range pool {
		if q.Category != "action" && q.Category != "vision" {
			t.Errorf("Unexpected category in pool: %q", q.Category)
		}
	}
}

func TestManager_RandomQuote(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()
	seedQuotes(t, mgr)

	if err := mgr.SetCategories(ctx, "u1", []string{"action"}); err != nil {
		t.Fatalf("SetCategories failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		quote, err := mgr.RandomQuote(ctx, "u1")
		if err != nil {
			t.Fatalf("RandomQuote failed: %v", err)
		}
		if quote.ID != "q2" {
			t.Errorf("Expected q2 from the action pool, got %q", quote.ID)
		}
	}

	// Preferences matching nothing yield ErrNoQuotes.
	if err := mgr.SetCategories(ctx, "u2", []string{"nonexistent"}); err != nil {
		t.Fatalf("SetCategories failed: %v", err)
	}
	if _, err := mgr.RandomQuote(ctx, "u2"); !errors.Is(err, ErrNoQuotes) {
		t.Errorf("Expected ErrNoQuotes, got: %v", err)
	}
}

func TestManager_Profile(t *testing.T) {
	mgr, _, cache := newTestManager()
	ctx := context.Background()

	// Fresh user gets a zero profile, not an error.
	profile, err := mgr.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.UserID != "u1" || profile.Name != "" {
		t.Errorf("Expected zero profile, got %+v", profile)
	}

	profile.Name = "Alice"
	profile.Categories = []string{"Success", "success", " FOCUS "}
	if err := mgr.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	saved, err := mgr.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if saved.Name != "Alice" {
		t.Errorf("Expected 'Alice', got %q", saved.Name)
	}
	if len(saved.Categories) != 2 || saved.Categories[0] != "success" || saved.Categories[1] != "focus" {
		t.Errorf("Expected normalized deduped categories, got %v", saved.Categories)
	}
	if saved.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be stamped")
	}
	if !cache.contains("profile:u1") {
		t.Error("Expected profile to be cached")
	}

	if _, err := mgr.GetProfile(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty userID, got: %v", err)
	}
}

func TestManager_DeleteProfile(t *testing.T) {
	mgr, store, _ := newTestManager()
	ctx := context.Background()
	seedQuotes(t, mgr)

	if err := mgr.SaveProfile(ctx, &Profile{UserID: "u1", Name: "Alice"}); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if _, err := mgr.ToggleFavorite(ctx, "u1", "q1"); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}

	if err := mgr.DeleteProfile(ctx, "u1"); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}

	for _, key := range []string{"profile:u1", "favorites:u1", "reminders:u1"} {
		if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected %s to be gone, got: %v", key, err)
		}
	}
}

func TestManager_Favorites(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()
	seedQuotes(t, mgr)

	// Toggle on.
	favorited, err := mgr.ToggleFavorite(ctx, "u1", "q1")
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if !favorited {
		t.Error("Expected favorited=true")
	}

	is, err := mgr.IsFavorite(ctx, "u1", "q1")
	if err != nil {
		t.Fatalf("IsFavorite failed: %v", err)
	}
	if !is {
		t.Error("Expected IsFavorite=true")
	}

	// Second favorite keeps order.
	if _, err := mgr.ToggleFavorite(ctx, "u1", "q3"); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	favorites, err := mgr.Favorites(ctx, "u1")
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if len(favorites) != 2 || favorites[0].ID != "q1" || favorites[1].ID != "q3" {
		t.Errorf("Expected [q1 q3] in favorited order, got %v", favorites)
	}

	// Toggle off.
	favorited, err = mgr.ToggleFavorite(ctx, "u1", "q1")
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if favorited {
		t.Error("Expected favorited=false after toggle off")
	}

	// Unknown quote.
	if _, err := mgr.ToggleFavorite(ctx, "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestManager_FavoritesSkipDeletedQuotes(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()
	seedQuotes(t, mgr)

	if _, err := mgr.ToggleFavorite(ctx, "u1", "q1"); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if _, err := mgr.ToggleFavorite(ctx, "u1", "q2"); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if err := mgr.DeleteQuote(ctx, "q1"); err != nil {
		t.Fatalf("DeleteQuote failed: %v", err)
	}

	favorites, err := mgr.Favorites(ctx, "u1")
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if len(favorites) != 1 || favorites[0].ID != "q2" {
		t.Errorf("Expected dangling favorite skipped, got %v", favorites)
	}
}

func TestManager_Reminders(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()

	// Unknown user: empty, not an error.
	reminders, err := mgr.Reminders(ctx, "u1")
	if err != nil {
		t.Fatalf("Reminders failed: %v", err)
	}
	if len(reminders) != 0 {
		t.Errorf("Expected no reminders, got %v", reminders)
	}

	saved := []Reminder{
		{ID: "r1", UserID: "u1", At: TimeOfDay{Hour: 8}, QuoteID: "q1"},
		{ID: "r2", UserID: "u1", At: TimeOfDay{Hour: 20, Minute: 30}, QuoteID: "q2"},
	}
	if err := mgr.SaveReminders(ctx, "u1", saved); err != nil {
		t.Fatalf("SaveReminders failed: %v", err)
	}

	reminders, err = mgr.Reminders(ctx, "u1")
	if err != nil {
		t.Fatalf("Reminders failed: %v", err)
	}
	if len(reminders) != 2 {
		t.Fatalf("Expected 2 reminders, got %d", len(reminders))
	}

	// Saving an empty list clears the entry.
	if err := mgr.SaveReminders(ctx, "u1", nil); err != nil {
		t.Fatalf("SaveReminders(nil) failed: %v", err)
	}
	reminders, err = mgr.Reminders(ctx, "u1")
	if err != nil {
		t.Fatalf("Reminders failed: %v", err)
	}
	if len(reminders) != 0 {
		t.Errorf("Expected cleared reminders, got %v", reminders)
	}
}

func TestManager_AllReminders(t *testing.T) {
	mgr, _, _ := newTestManager()
	ctx := context.Background()

	if err := mgr.SaveReminders(ctx, "u1", []Reminder{{ID: "r1", UserID: "u1"}}); err != nil {
		t.Fatalf("SaveReminders failed: %v", err)
	}
	if err := mgr.SaveReminders(ctx, "u2", []Reminder{{ID: "r2", UserID: "u2"}}); err != nil {
		t.Fatalf("SaveReminders failed: %v", err)
	}

	all, err := mgr.AllReminders(ctx)
	if err != nil {
		t.Fatalf("AllReminders failed: %v", err)
	}
	if len(all) != 2 || len(all["u1"]) != 1 || len(all["u2"]) != 1 {
		t.Errorf("Expected reminders for u1 and u2, got %v", all)
	}
}

func TestManager_StorageErrorsPropagate(t *testing.T) {
	mgr, store, _ := newTestManager()
	ctx := context.Background()

	store.forceKeysErr = errors.New("disk on fire")
	if _, err := mgr.Quotes(ctx); err == nil {
		t.Error("Expected error from Quotes when Keys fails")
	}
	store.forceKeysErr = nil

	store.forceSetErr = errors.New("disk full")
	if err := mgr.SaveProfile(ctx, &Profile{UserID: "u1"}); err == nil {
		t.Error("Expected error from SaveProfile when Set fails")
	}
}

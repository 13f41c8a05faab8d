package ops

import (
	"testing"
)

func TestList_PaginationAndOrder(t *testing.T) {
	database := opsDB(t)
	for _, label := range []string{"one", "two", "three"} {
		loadFixture(t, database, label)
	}

	out, err := List(database, ListInput{Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Pagination.Total != 3 {
		t.Errorf("Total = %d, want 3", out.Pagination.Total)
	}
	if !out.Pagination.HasMore {
		t.Error("HasMore = false, want true")
	}
	if len(out.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(out.Items))
	}
	if out.Sort != "updated_at_desc" {
		t.Errorf("Sort = %q", out.Sort)
	}

	rest, err := List(database, ListInput{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rest.Items) != 1 || rest.Pagination.HasMore {
		t.Errorf("items = %d, has_more = %v", len(rest.Items), rest.Pagination.HasMore)
	}
}

func TestList_LimitBounds(t *testing.T) {
	database := opsDB(t)
	loadFixture(t, database, "")

	out, err := List(database, ListInput{Limit: 10000, Offset: -5})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Pagination.Limit != MaxListLimit {
		t.Errorf("Limit = %d, want clamped to %d", out.Pagination.Limit, MaxListLimit)
	}
	if out.Pagination.Offset != 0 {
		t.Errorf("Offset = %d, want 0", out.Pagination.Offset)
	}
}

func TestList_Empty(t *testing.T) {
	database := opsDB(t)

	out, err := List(database, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Items == nil {
		t.Error("Items = nil, want empty slice")
	}
	if out.Pagination.Total != 0 {
		t.Errorf("Total = %d, want 0", out.Pagination.Total)
	}
}

func TestLatest(t *testing.T) {
	database := opsDB(t)

	out, err := Latest(database)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if out.Item != nil {
		t.Errorf("Item = %+v, want nil for empty archive", out.Item)
	}

	loadFixture(t, database, "first")
	id := loadFixture(t, database, "second")
	// Force a strict timestamp order; both loads land in the same second
	if _, err := database.Exec("UPDATE solutions SET updated_at = updated_at + 60 WHERE id = ?", id); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	out, err = Latest(database)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if out.Item == nil || out.Item.ID != id {
		t.Errorf("Item = %+v, want id %q", out.Item, id)
	}
}

func TestDeleteAndPurge(t *testing.T) {
	database := opsDB(t)
	id := loadFixture(t, database, "doomed")

	del, err := Delete(database, DeleteInput{Label: "doomed"})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !del.Deleted || del.ID != id {
		t.Errorf("DeleteOutput = %+v", del)
	}

	// Age filter keeps the freshly deleted row
	kept, err := Purge(database, PurgeInput{OlderThanDays: intPtr(30)})
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if kept.Purged != 0 {
		t.Errorf("Purged = %d, want 0 with 30-day cutoff", kept.Purged)
	}

	// No age filter removes everything soft-deleted
	purged, err := Purge(database, PurgeInput{})
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if purged.Purged != 1 {
		t.Errorf("Purged = %d, want 1", purged.Purged)
	}
}

package domain

import (
	"encoding/json"
	"testing"
)

func TestServiceJSON_NewItemOmitsID(t *testing.T) {
	b, err := json.Marshal(Service{Ref: NewItem{}, Name: "C", Price: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"name":"C","price":5}` {
		t.Fatalf("unexpected payload: %s", b)
	}
}

func TestServiceJSON_NilRefIsNew(t *testing.T) {
	b, _ := json.Marshal(Service{Name: "C", Price: 5})
	if string(b) != `{"name":"C","price":5}` {
		t.Fatalf("unexpected payload: %s", b)
	}
}

func TestServiceJSON_ExistingItemKeepsID(t *testing.T) {
	b, err := json.Marshal(Service{Ref: ExistingItem{ID: 2}, Name: "B", Price: 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"id":2,"name":"B","price":25}` {
		t.Fatalf("unexpected payload: %s", b)
	}
}

func TestServiceJSON_DecodeRef(t *testing.T) {
	var items []Service
	if err := json.Unmarshal([]byte(`[{"id":1,"name":"A","price":10},{"name":"C","price":5}]`), &items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id, ok := RefID(items[0].Ref); !ok || id != 1 {
		t.Fatalf("expected existing item 1, got %#v", items[0].Ref)
	}
	if _, ok := items[1].Ref.(NewItem); !ok {
		t.Fatalf("expected new item, got %#v", items[1].Ref)
	}
}

func TestProjectJSON(t *testing.T) {
	b, _ := json.Marshal([]Project{
		{Ref: ExistingItem{ID: 7}, Name: "Site", Description: "landing"},
		{Ref: NewItem{}, Name: "App"},
	})
	want := `[{"id":7,"name":"Site","description":"landing"},{"name":"App","description":""}]`
	if string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}

	var p Project
	if err := json.Unmarshal([]byte(`{"id":7,"name":"Site","description":"landing"}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsPersisted(p.Ref) {
		t.Fatal("expected decoded project to be persisted")
	}
}

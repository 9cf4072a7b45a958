package domain

import "encoding/json"

// ItemRef tells the backend whether a collection item must be created or
// updated. Only NewItem and ExistingItem implement it.
type ItemRef interface {
	itemRef()
}

// NewItem is an item added in the portal and not yet persisted.
type NewItem struct{}

// ExistingItem is an item the backend already knows under ID.
type ExistingItem struct {
	ID int64
}

func (NewItem) itemRef()      {}
func (ExistingItem) itemRef() {}

// RefID returns the persisted id of ref, if any. A nil ref is a new item.
func RefID(ref ItemRef) (int64, bool) {
	if e, ok := ref.(ExistingItem); ok {
		return e.ID, true
	}
	return 0, false
}

// IsPersisted reports whether ref points at a backend record.
func IsPersisted(ref ItemRef) bool {
	_, ok := RefID(ref)
	return ok
}

func refFromWire(id *int64) ItemRef {
	if id == nil {
		return NewItem{}
	}
	return ExistingItem{ID: *id}
}

func refToWire(ref ItemRef) *int64 {
	if id, ok := RefID(ref); ok {
		return &id
	}
	return nil
}

// Service is one priced offering of a company.
type Service struct {
	Ref   ItemRef
	Name  string
	Price float64
}

type serviceWire struct {
	ID    *int64  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (s Service) MarshalJSON() ([]byte, error) {
	return json.Marshal(serviceWire{ID: refToWire(s.Ref), Name: s.Name, Price: s.Price})
}

func (s *Service) UnmarshalJSON(b []byte) error {
	var w serviceWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*s = Service{Ref: refFromWire(w.ID), Name: w.Name, Price: w.Price}
	return nil
}

// Project is one portfolio entry of a company.
type Project struct {
	Ref         ItemRef
	Name        string
	Description string
}

type projectWire struct {
	ID          *int64 `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (p Project) MarshalJSON() ([]byte, error) {
	return json.Marshal(projectWire{ID: refToWire(p.Ref), Name: p.Name, Description: p.Description})
}

func (p *Project) UnmarshalJSON(b []byte) error {
	var w projectWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*p = Project{Ref: refFromWire(w.ID), Name: w.Name, Description: w.Description}
	return nil
}

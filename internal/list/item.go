package list

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category is the broad grouping a shopping item belongs to.
type Category string

const (
	CategoryKitchen    Category = "Kitchen"
	CategoryToiletries Category = "Toiletries"
	CategoryPharmacy   Category = "Pharmacy"
	CategoryPantry     Category = "Pantry"
	CategoryHousehold  Category = "Household"
)

var validCategories = map[Category]bool{
	CategoryKitchen:    true,
	CategoryToiletries: true,
	CategoryPharmacy:   true,
	CategoryPantry:     true,
	CategoryHousehold:  true,
}

// Aisle is a physical aisle an item can be found in. An item may list
// several aisles, or none.
type Aisle string

const (
	AisleCondiments   Aisle = "Condiments"
	AisleCereal       Aisle = "Cereal"
	AislePharmacy     Aisle = "Pharmacy"
	AisleBaking       Aisle = "Baking"
	AisleSpices       Aisle = "Spices"
	AisleBeverages    Aisle = "Beverages"
	AisleProduce      Aisle = "Produce"
	AisleSnacks       Aisle = "Snacks"
	AisleRefrigerated Aisle = "Refrigerated"
	AisleDeli         Aisle = "Deli"
	AisleDairy        Aisle = "Dairy"
	AisleMeat         Aisle = "Meat"
	AisleHousehold    Aisle = "Household"
)

var validAisles = map[Aisle]bool{
	AisleCondiments:   true,
	AisleCereal:       true,
	AislePharmacy:     true,
	AisleBaking:       true,
	AisleSpices:       true,
	AisleBeverages:    true,
	AisleProduce:      true,
	AisleSnacks:       true,
	AisleRefrigerated: true,
	AisleDeli:         true,
	AisleDairy:        true,
	AisleMeat:         true,
	AisleHousehold:    true,
}

// Store is a kind of shop that stocks an item.
type Store string

const (
	StoreBigBox      Store = "BigBox"
	StoreGrocery     Store = "Grocery"
	StoreConvenience Store = "Convenience"
)

var validStores = map[Store]bool{
	StoreBigBox:      true,
	StoreGrocery:     true,
	StoreConvenience: true,
}

// Item is one entry on a tenant's shopping list. Label is the identity key
// within a list; Needed is the only field mutated at runtime.
type Item struct {
	Needed   bool     `yaml:"needed" json:"needed"`
	Label    string   `yaml:"label" json:"label"`
	Category Category `yaml:"category" json:"category"`
	Aisle    []Aisle  `yaml:"aisle" json:"aisle"`
	Stores   []Store  `yaml:"stores" json:"stores"`
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !validCategories[Category(s)] {
		return fmt.Errorf("unknown category %q", s)
	}
	*c = Category(s)
	return nil
}

func (c *Category) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if !validCategories[Category(s)] {
		return fmt.Errorf("line %d: unknown category %q", node.Line, s)
	}
	*c = Category(s)
	return nil
}

func (a *Aisle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !validAisles[Aisle(s)] {
		return fmt.Errorf("unknown aisle %q", s)
	}
	*a = Aisle(s)
	return nil
}

func (a *Aisle) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if !validAisles[Aisle(s)] {
		return fmt.Errorf("line %d: unknown aisle %q", node.Line, s)
	}
	*a = Aisle(s)
	return nil
}

func (s *Store) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if !validStores[Store(v)] {
		return fmt.Errorf("unknown store %q", v)
	}
	*s = Store(v)
	return nil
}

func (s *Store) UnmarshalYAML(node *yaml.Node) error {
	var v string
	if err := node.Decode(&v); err != nil {
		return err
	}
	if !validStores[Store(v)] {
		return fmt.Errorf("line %d: unknown store %q", node.Line, v)
	}
	*s = Store(v)
	return nil
}

// Clone returns a deep copy of items, duplicating the slice fields so the
// copy can be mutated independently of the original.
func Clone(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		cp := it
		if it.Aisle != nil {
			cp.Aisle = make([]Aisle, len(it.Aisle))
			copy(cp.Aisle, it.Aisle)
		}
		if it.Stores != nil {
			cp.Stores = make([]Store, len(it.Stores))
			copy(cp.Stores, it.Stores)
		}
		out[i] = cp
	}
	return out
}

// Toggle flips the Needed flag on the first item whose label matches.
// It reports whether a matching item was found.
func Toggle(items []Item, label string) bool {
	for i := range items {
		if items[i].Label == label {
			items[i].Needed = !items[i].Needed
			return true
		}
	}
	return false
}

// Package catalog defines the fixed, ordered set of rating categories.
//
// The catalog is the single source of truth for category identifiers and
// weights. Validation, scoring and display all iterate it in the same order,
// so a submission's wire representation (an ordered array of entries) can be
// mapped onto categories without ambiguity.
package catalog

// Category is one fixed evaluation dimension with an associated weight.
type Category struct {
	ID          string
	Description string
	Weight      int
}

// DefaultWeight applies to any category that does not declare its own weight.
const DefaultWeight = 1

// categories holds the catalog in display and completeness-check order.
// Weights default to 1; the three sensitive categories carry weight 2.
var categories = []Category{
	{ID: "HR", Description: "HUMAN RESOURCES: Evaluates HR responsiveness and care for employees. 1 star = poor, 5 stars = excellent.", Weight: 1},
	{ID: "FRONT DESK", Description: "FRONT DESK: Assesses professionalism and communication with colleagues. 1 star = poor, 5 stars = excellent.", Weight: 1},
	{ID: "FOOD&BEVERAGE", Description: "FOOD&BEVERAGE: Evaluates food quality and respect for colleagues. 1 star = poor, 5 stars = excellent.", Weight: 1},
	{ID: "HOUSEKEEPING", Description: "HOUSEKEEPING: Assesses cleanliness and professionalism. 1 star = poor, 5 stars = excellent.", Weight: 1},
	{ID: "LAUNDRY", Description: "LAUNDRY: Evaluates laundry service quality and respect for others. 1 star = poor, 5 stars = excellent.", Weight: 1},
	{ID: "LP", Description: "LOSS PREVENTION: Evaluates safety and collaboration. 1 star = poor, 5 stars = excellent.", Weight: 1},
	{ID: "MARKETING", Description: "MARKETING: Assesses communication and respect across departments. 1 star = poor, 5 stars = excellent.", Weight: 1},
	{ID: "EMPLOYEE DINING ROOM", Description: "EMPLOYEE DINING ROOM: Evaluates food quality and respect in the dining area. 1 star = poor, 5 stars = excellent.", Weight: 1},
	{ID: "QUALITY OF THE GUEST", Description: "QUALITY OF THE GUEST: Evaluates guest behavior and professionalism. 1 star = poor, 5 stars = excellent.", Weight: 1},
	{ID: "HONESTY", Description: "HONESTY: Assesses trustworthiness and integrity. 1 star = dishonest, 5 stars = very trustworthy.", Weight: 1},
	{ID: "DISCRIMINATION", Description: "DISCRIMINATION: Evaluates inclusivity. 1 star = discriminatory, 5 stars = inclusive.", Weight: 2},
	{ID: "ANIMAL ABUSE", Description: "ANIMAL ABUSE: Assesses humane treatment of animals. 1 star = abusive, 5 stars = humane treatment.", Weight: 2},
	{ID: "ACCOMMODATION", Description: "ACCOMMODATION: Evaluates living arrangements provided by the workplace. 1 star = poor, 5 stars = excellent.", Weight: 2},
}

// index maps category ID to its position in the catalog.
var index = func() map[string]int {
	m := make(map[string]int, len(categories))
	for i, c := range categories {
		m[c.ID] = i
	}
	return m
}()

// All returns the catalog in order. The returned slice is a copy; callers may
// not mutate the catalog.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IDs returns the ordered category identifiers.
func IDs() []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = c.ID
	}
	return out
}

// Size returns the number of categories in the catalog.
func Size() int {
	return len(categories)
}

// Contains reports whether id names a catalog category.
func Contains(id string) bool {
	_, ok := index[id]
	return ok
}

// Weight returns the weight for a category ID. Unknown categories fall back
// to DefaultWeight, matching the scoring rule for absent weight entries.
func Weight(id string) int {
	if i, ok := index[id]; ok {
		return categories[i].Weight
	}
	return DefaultWeight
}

package query

// Clause is one declarative query block consumed by the bulk endpoint.
// Expression is an opaque filter tree resolved against stored assessments;
// OrderBy controls only output ordering.
type Clause struct {
	ObjectName string    `json:"object_name"`
	Type       string    `json:"type"`
	Filters    *Filters  `json:"filters"`
	OrderBy    []OrderBy `json:"order_by"`
}

type Filters struct {
	Expression map[string]interface{} `json:"expression"`
}

type OrderBy struct {
	Name string `json:"name"`
	Desc bool   `json:"desc"`
}

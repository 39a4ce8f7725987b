package game

// Outcome is the rendered result of one round: a title and detail line for
// display, the signed payout delta to apply to the player's balance, and
// zero or more annotations explaining the result.
type Outcome struct {
	Title    string  `json:"title"`
	Detail   string  `json:"detail"`
	Delta    int64   `json:"delta"`
	Rejected bool    `json:"rejected,omitempty"`
	Fields   []Field `json:"fields,omitempty"`
}

// Field is one "why you won" annotation on an outcome.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Rejection builds an outcome for a cancelled round. No balance mutation
// may follow a rejected outcome.
func Rejection(title, detail string) Outcome {
	return Outcome{Title: title, Detail: detail, Rejected: true}
}

// AddField appends an annotation to the outcome.
func (o *Outcome) AddField(name, value string) {
	o.Fields = append(o.Fields, Field{Name: name, Value: value})
}

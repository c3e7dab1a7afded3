package entity

// Button is one cell of a reply keyboard. Data carries an encoded command
// token for inline buttons; text-keyboard buttons leave it empty.
type Button struct {
	Text           string `json:"text" bson:"text"`
	Data           string `json:"data,omitempty" bson:"data,omitempty"`
	URL            string `json:"url,omitempty" bson:"url,omitempty"`
	RequestContact bool   `json:"request_contact,omitempty" bson:"request_contact,omitempty"`
}

// Coordinates is a latitude/longitude pair kept as decimal strings.
type Coordinates struct {
	Latitude  string `json:"latitude" bson:"latitude"`
	Longitude string `json:"longitude" bson:"longitude"`
}

// Reply is the output of a state handler. A reply with no text, coordinates
// and no buttons is a legitimate no-op and must not be delivered. NextState
// carries the optional state transition; the empty string means "stay".
type Reply struct {
	Text          string       `json:"text,omitempty" bson:"text,omitempty"`
	Buttons       [][]Button   `json:"buttons,omitempty" bson:"buttons,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	IsTextButtons bool         `json:"is_text_buttons,omitempty" bson:"is_text_buttons,omitempty"`

	NextState    string `json:"-" bson:"-"`
	HasNextState bool   `json:"-" bson:"-"`
}

// WithNext marks the reply as carrying a state transition.
func (r Reply) WithNext(state string) Reply {
	r.NextState = state
	r.HasNextState = true
	return r
}

// Transition builds a reply whose only effect is a state change.
func Transition(state string) Reply {
	return Reply{NextState: state, HasNextState: true}
}

// IsZero reports whether there is nothing to deliver.
func (r Reply) IsZero() bool {
	return r.Text == "" && len(r.Buttons) == 0 && r.Coordinates == nil
}

// Row is a convenience constructor for one keyboard row.
func Row(buttons ...Button) []Button {
	return buttons
}

package domain

// One coded sorter message. Events are stored in the order they were received,
// which is also their chronological order.
type Event struct {
	MsgID string `bson:"msgId" json:"msgId"`
	TS    string `bson:"ts" json:"ts"`
	Raw   string `bson:"raw" json:"raw"`
}

// Clock parses the event timestamp. Unparseable timestamps report ok=false.
func (e Event) Clock() (Clock, bool) {
	return ParseClock(e.TS)
}

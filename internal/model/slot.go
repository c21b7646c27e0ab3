package model

import "fmt"

// Slot is one displayable metric category. The numeric value is its rank:
// lower slots are drawn higher on the panel.
type Slot int

const (
	Hostname Slot = iota
	IPAddress
	CPU
	Memory
	Disk
)

// AllSlots lists every slot in rank order.
var AllSlots = []Slot{Hostname, IPAddress, CPU, Memory, Disk}

var slotNames = [...]string{
	Hostname:  "hostname",
	IPAddress: "ip",
	CPU:       "cpu",
	Memory:    "memory",
	Disk:      "disk",
}

func (s Slot) String() string {
	if s < 0 || int(s) >= len(slotNames) {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

// SlotSet holds the static enabled flag of every slot.
type SlotSet struct {
	enabled [len(slotNames)]bool
}

// NewSlotSet enables the given slots.
func NewSlotSet(slots ...Slot) SlotSet {
	var set SlotSet
	for _, s := range slots {
		set.Set(s, true)
	}
	return set
}

func (set *SlotSet) Set(s Slot, on bool) {
	if s < 0 || int(s) >= len(set.enabled) {
		return
	}
	set.enabled[s] = on
}

func (set SlotSet) Has(s Slot) bool {
	if s < 0 || int(s) >= len(set.enabled) {
		return false
	}
	return set.enabled[s]
}

// Enabled returns the enabled slots in rank order.
func (set SlotSet) Enabled() []Slot {
	out := make([]Slot, 0, len(set.enabled))
	for _, s := range AllSlots {
		if set.enabled[s] {
			out = append(out, s)
		}
	}
	return out
}

func (set SlotSet) Count() int {
	n := 0
	for _, on := range set.enabled {
		if on {
			n++
		}
	}
	return n
}

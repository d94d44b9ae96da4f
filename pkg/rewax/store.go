package rewax

import (
	"strconv"
	"strings"
)

// Category identifies one of the memo collections of an instance.
type Category uint8

const (
	CategoryState Category = iota
	CategoryMount
	CategoryUnmount
	CategoryScope

	numCategories
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "state"
	case CategoryMount:
		return "mount"
	case CategoryUnmount:
		return "unmount"
	case CategoryScope:
		return "scope"
	default:
		return "unknown"
	}
}

// Slot is the address of a hook record within a category.
//
// Implicit slots have an empty Key and Seq set to the category counter.
// Slots under an ambient key (see Each) carry that key and a counter local
// to it. Explicit keys use Seq -1 so they never alias a counted slot.
type Slot struct {
	Key string
	Seq int
}

// String renders the slot for logs.
func (s Slot) String() string {
	switch {
	case s.Key == "":
		return "#" + strconv.Itoa(s.Seq)
	case s.Seq < 0:
		return s.Key
	default:
		return s.Key + "#" + strconv.Itoa(s.Seq)
	}
}

// record is a single memoized hook value with its liveness flag.
type record struct {
	value any
	live  bool
}

// category holds the records of one category in insertion order.
type category struct {
	records map[Slot]*record
	order   []Slot
}

// Store is the memo store of one instance: one ordered collection of hook
// records per category, swept at the end of every render pass.
type Store struct {
	cats [numCategories]category
}

func newStore() *Store {
	st := &Store{}
	for i := range st.cats {
		st.cats[i].records = make(map[Slot]*record)
	}
	return st
}

// lookup returns the record at slot and marks it live.
func (st *Store) lookup(cat Category, slot Slot) (*record, bool) {
	rec, ok := st.cats[cat].records[slot]
	if ok {
		rec.live = true
	}
	return rec, ok
}

// insert creates a live record at slot.
func (st *Store) insert(cat Category, slot Slot) *record {
	c := &st.cats[cat]
	rec := &record{live: true}
	if _, exists := c.records[slot]; !exists {
		c.order = append(c.order, slot)
	}
	c.records[slot] = rec
	return rec
}

// markAll sets the liveness flag of every record.
func (st *Store) markAll(live bool) {
	for i := range st.cats {
		for _, rec := range st.cats[i].records {
			rec.live = live
		}
	}
}

// Len returns the number of records held in a category.
func (st *Store) Len(cat Category) int {
	return len(st.cats[cat].records)
}

// Slots returns the slots of a category in insertion order.
func (st *Store) Slots(cat Category) []Slot {
	return append([]Slot(nil), st.cats[cat].order...)
}

// sweep evicts every record not marked live, category by category in
// declaration order and within a category in insertion order. onEvict runs
// before each record is deleted. It returns the evicted count per category.
func (st *Store) sweep(onEvict func(Category, Slot, any)) [numCategories]int {
	var evicted [numCategories]int
	for i := range st.cats {
		c := &st.cats[i]
		kept := c.order[:0]
		var stale []Slot
		for _, slot := range c.order {
			if c.records[slot].live {
				kept = append(kept, slot)
				continue
			}
			stale = append(stale, slot)
		}
		c.order = kept

		for _, slot := range stale {
			if onEvict != nil {
				onEvict(Category(i), slot, c.records[slot].value)
			}
			delete(c.records, slot)
			evicted[i]++
		}
	}
	return evicted
}

// renderPass is the per-render addressing context. It exists only while the
// instance's render function is running.
type renderPass struct {
	counters [numCategories]int
	keyed    map[keyedCounter]int
	ambient  []string
}

type keyedCounter struct {
	cat Category
	key string
}

func newRenderPass() *renderPass {
	return &renderPass{keyed: make(map[keyedCounter]int)}
}

// slot computes the address of the next hook request in cat.
// Keyed requests do not advance the implicit counter.
func (p *renderPass) slot(cat Category, keys []string) Slot {
	var explicit string
	for _, k := range keys {
		if k != "" {
			explicit = k
			break
		}
	}
	ambient := strings.Join(p.ambient, "/")

	switch {
	case explicit != "":
		if ambient != "" {
			explicit = ambient + "." + explicit
		}
		return Slot{Key: explicit, Seq: -1}
	case ambient != "":
		kc := keyedCounter{cat: cat, key: ambient}
		seq := p.keyed[kc]
		p.keyed[kc] = seq + 1
		return Slot{Key: ambient, Seq: seq}
	default:
		seq := p.counters[cat]
		p.counters[cat]++
		return Slot{Seq: seq}
	}
}

func (p *renderPass) pushKey(key string) {
	p.ambient = append(p.ambient, key)
}

func (p *renderPass) popKey() {
	if len(p.ambient) > 0 {
		p.ambient = p.ambient[:len(p.ambient)-1]
	}
}

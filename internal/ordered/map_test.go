package ordered_test

import (
	"testing"

	"github.com/wavecore/corelang/internal/ordered"
)

type entry struct {
	k string
	v int
}

func TestMap(t *testing.T) {
	tests := []struct {
		name    string
		entries []entry
		delete  []string
		want    []entry
	}{
		{
			name: "distinct keys keep insertion order",
			entries: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "c", v: 3},
			},
			want: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "c", v: 3},
			},
		},
		{
			name: "re-storing a key keeps its original position",
			entries: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "a", v: 3},
			},
			want: []entry{
				{k: "a", v: 3},
				{k: "b", v: 2},
			},
		},
		{
			name: "repeated stores of the same key collapse to one entry",
			entries: []entry{
				{k: "a", v: 1},
				{k: "a", v: 2},
				{k: "a", v: 3},
				{k: "a", v: 4},
			},
			want: []entry{
				{k: "a", v: 4},
			},
		},
		{
			name: "delete removes the key from the order",
			entries: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "c", v: 3},
			},
			delete: []string{"b"},
			want: []entry{
				{k: "a", v: 1},
				{k: "c", v: 3},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := ordered.NewMap[string, int]()
			for _, e := range test.entries {
				m.Store(e.k, e.v)
			}
			for _, k := range test.delete {
				m.Delete(k)
			}
			if m.Len() != len(test.want) {
				t.Fatalf("map has %d entries but want %d", m.Len(), len(test.want))
			}

			// Clone the map before the checks, to also exercise Clone.
			m = m.Clone()

			i := 0
			for gotK := range m.Keys() {
				gotV, _ := m.Load(gotK)
				wantK, wantV := test.want[i].k, test.want[i].v
				if gotK != wantK || gotV != wantV {
					t.Errorf("entry %d: got %s->%d but want %s->%d", i, gotK, gotV, wantK, wantV)
				}
				i++
			}

			i = 0
			for gotK, gotV := range m.Iter() {
				wantK, wantV := test.want[i].k, test.want[i].v
				if gotK != wantK || gotV != wantV {
					t.Errorf("entry %d: got %s->%d but want %s->%d", i, gotK, gotV, wantK, wantV)
				}
				i++
			}

			i = 0
			for gotV := range m.Values() {
				wantV := test.want[i].v
				if gotV != wantV {
					t.Errorf("entry %d: got %d but want %d", i, gotV, wantV)
				}
				i++
			}
		})
	}
}

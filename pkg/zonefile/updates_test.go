package zonefile

import (
	"reflect"
	"testing"
)

func TestUpdates(t *testing.T) {
	u := NewUpdates()
	u.Set("frodo", "192.168.11.25")
	u.Set("sam", "192.168.11.26")
	u.Set("frodo", "192.168.11.27")

	if u.Len() != 2 {
		t.Errorf("Len() = %d, want 2", u.Len())
	}
	if got := u.Names(); !reflect.DeepEqual(got, []string{"frodo", "sam"}) {
		t.Errorf("Names() = %v, want [frodo sam]", got)
	}
	if v, ok := u.Get("frodo"); !ok || v != "192.168.11.27" {
		t.Errorf("Get(frodo) = %q, %v, want 192.168.11.27, true", v, ok)
	}
	if _, ok := u.Get("pippin"); ok {
		t.Error("Get(pippin) ok = true, want false")
	}

	values := u.ValueSet()
	if len(values) != 2 {
		t.Errorf("ValueSet() has %d entries, want 2", len(values))
	}
	if _, ok := values["192.168.11.25"]; ok {
		t.Error("ValueSet() still holds the replaced value")
	}

	if got := u.String(); got != "{frodo=192.168.11.27 sam=192.168.11.26}" {
		t.Errorf("String() = %q", got)
	}
}

func TestUpdates_Nil(t *testing.T) {
	var u *Updates
	if u.Len() != 0 || u.Names() != nil || len(u.ValueSet()) != 0 {
		t.Error("nil Updates should behave as empty")
	}
	if _, ok := u.Get("x"); ok {
		t.Error("nil Get ok = true")
	}
	if u.String() != "{}" {
		t.Errorf("nil String() = %q", u.String())
	}
}

func TestUpdates_NamesIsCopy(t *testing.T) {
	u := NewUpdates()
	u.Set("a", "1")
	names := u.Names()
	names[0] = "mutated"
	if u.Names()[0] != "a" {
		t.Error("Names() exposed internal slice")
	}
}

func TestRecordType_Valid(t *testing.T) {
	for _, rt := range []RecordType{TypeA, TypePTR} {
		if !rt.Valid() {
			t.Errorf("%s.Valid() = false", rt)
		}
	}
	for _, rt := range []RecordType{"AAAA", "a", ""} {
		if rt.Valid() {
			t.Errorf("%q.Valid() = true", rt)
		}
	}
}

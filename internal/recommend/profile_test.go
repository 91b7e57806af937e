package recommend

import (
	"reflect"
	"testing"

	"github.com/campushub/campushub/internal/model"
)

func TestBuildProfile(t *testing.T) {
	registered := []*model.Event{
		{EventID: "e1", Type: "workshop", Subtype: "coding"},
		{EventID: "e2", Type: "workshop", Subtype: ""},
		{EventID: "e3", Type: "talk", Subtype: "ai"},
		{EventID: "", Type: "", Subtype: ""},
	}

	p := BuildProfile(registered)

	if want := []string{"talk", "workshop"}; !reflect.DeepEqual(p.Types(), want) {
		t.Errorf("Types() = %v, want %v", p.Types(), want)
	}
	if want := []string{"ai", "coding"}; !reflect.DeepEqual(p.Subtypes(), want) {
		t.Errorf("Subtypes() = %v, want %v", p.Subtypes(), want)
	}
	if want := []string{"e1", "e2", "e3"}; !reflect.DeepEqual(p.Excluded(), want) {
		t.Errorf("Excluded() = %v, want %v", p.Excluded(), want)
	}

	if !p.HasType("workshop") || p.HasType("concert") {
		t.Error("HasType membership wrong")
	}
	if !p.HasSubtype("ai") || p.HasSubtype("") {
		t.Error("HasSubtype membership wrong")
	}
	if !p.IsExcluded("e2") || p.IsExcluded("e9") {
		t.Error("IsExcluded membership wrong")
	}
}

func TestBuildProfile_CaseSensitive(t *testing.T) {
	p := BuildProfile([]*model.Event{
		{EventID: "e1", Type: "Workshop"},
	})

	if p.HasType("workshop") {
		t.Error("type matching must be case-sensitive")
	}
	if !p.HasType("Workshop") {
		t.Error("exact type must match")
	}
}

func TestBuildProfile_Empty(t *testing.T) {
	p := BuildProfile(nil)

	if len(p.Types()) != 0 || len(p.Subtypes()) != 0 || len(p.Excluded()) != 0 {
		t.Error("empty history must yield empty sets")
	}
}

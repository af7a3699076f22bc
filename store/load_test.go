package store

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/gfmeta/core"
	"github.com/npillmayer/gfmeta/record"
)

func TestLoadMinimalRecordSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	s, err := Load(RecordSet{
		Families: []*record.Family{{
			Name:      "Roboto",
			Category:  record.SansSerif,
			Designers: []string{"Christian Robertson"},
		}},
		Designers: []*record.Designer{{Name: "Christian Robertson"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Family("Roboto"); err != nil {
		t.Errorf("expected loaded family to be found, got %v", err)
	}
	if _, err := s.Designer("Unknown"); core.Code(err) != core.EMISSING {
		t.Errorf("expected EMISSING for unknown designer, got %v", err)
	}
}

func TestLoadDuplicateFamily(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	_, err := Load(RecordSet{
		Families: []*record.Family{
			{Name: "Roboto"},
			{Name: "Roboto"},
		},
	})
	if core.Code(err) != core.EDUPLICATE {
		t.Errorf("expected EDUPLICATE for duplicate family name, got %v", err)
	}
}

func TestLoadDuplicateDesigner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	_, err := Load(RecordSet{
		Designers: []*record.Designer{
			{Name: "MOTOYA"},
			{Name: "MOTOYA"},
		},
	})
	if core.Code(err) != core.EDUPLICATE {
		t.Errorf("expected EDUPLICATE for duplicate designer, got %v", err)
	}
}

func TestLoadDuplicateLanguage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	_, err := Load(RecordSet{
		Languages: []*record.Language{
			{Tag: "en_Latn"},
			{Tag: "en_Latn"},
		},
	})
	if core.Code(err) != core.EDUPLICATE {
		t.Errorf("expected EDUPLICATE for duplicate language tag, got %v", err)
	}
}

func TestLoadDanglingDesignerReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	_, err := Load(RecordSet{
		Families: []*record.Family{{
			Name:      "Roboto",
			Designers: []string{"Nobody"},
		}},
	})
	if core.Code(err) != core.EINVALID {
		t.Errorf("expected EINVALID for dangling designer reference, got %v", err)
	}
}

func TestLoadDanglingLanguageReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	_, err := Load(RecordSet{
		Families: []*record.Family{{
			Name:      "Roboto",
			Languages: []string{"xx_None"},
		}},
	})
	if core.Code(err) != core.EINVALID {
		t.Errorf("expected EINVALID for dangling language reference, got %v", err)
	}
}

func TestLoadDuplicateTagMetadata(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	_, err := Load(RecordSet{
		TagMetadata: []record.TagMetadata{
			{Tag: "/Sans/Geometric", MinValue: 0, MaxValue: 100},
			{Tag: "/Sans/Geometric", MinValue: 0, MaxValue: 50},
		},
	})
	if core.Code(err) != core.EDUPLICATE {
		t.Errorf("expected EDUPLICATE for duplicate tag metadata, got %v", err)
	}
}

func TestLoadKeepsInputRecordsUntouched(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	rs := RecordSet{
		Families: []*record.Family{{
			Name:      "Roboto",
			Designers: []string{"Christian Robertson"},
		}},
		Designers: []*record.Designer{{Name: "Christian Robertson"}},
	}
	for i := 0; i < 2; i++ { // the same record set may feed several stores
		s, err := Load(rs)
		if err != nil {
			t.Fatal(err)
		}
		d, err := s.Designer("Christian Robertson")
		if err != nil {
			t.Fatal(err)
		}
		if len(d.Families) != 1 || d.Families[0] != "Roboto" {
			t.Errorf("load #%d: expected back-references [Roboto], got %v", i+1, d.Families)
		}
	}
	if len(rs.Designers[0].Families) != 0 {
		t.Errorf("expected input designer record to stay untouched, got %v",
			rs.Designers[0].Families)
	}
}

func TestFailedLoadLeavesNoBackReferences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	rs := RecordSet{
		Families: []*record.Family{
			{Name: "Roboto", Designers: []string{"Christian Robertson"}},
			{Name: "Broken", Languages: []string{"xx_None"}},
		},
		Designers: []*record.Designer{{Name: "Christian Robertson"}},
	}
	if _, err := Load(rs); core.Code(err) != core.EINVALID {
		t.Fatalf("expected EINVALID for dangling language reference, got %v", err)
	}
	if len(rs.Designers[0].Families) != 0 {
		t.Errorf("expected no back-references after a failed load, got %v",
			rs.Designers[0].Families)
	}
}

func TestPrefixSearchWithCaseDifferingNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	s, err := Load(RecordSet{
		Families: []*record.Family{
			{Name: "Coda"},
			{Name: "CODA"},
			{Name: "Codystar"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	fams := s.FamiliesWithPrefix("cod")
	names := make([]string, len(fams))
	for i, fam := range fams {
		names[i] = fam.Name
	}
	want := []string{"CODA", "Coda", "Codystar"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
}

func TestLoadEmptyRecordSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	s, err := Load(RecordSet{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d families", s.Len())
	}
	if _, err := s.Family("Roboto"); core.Code(err) != core.EMISSING {
		t.Errorf("expected EMISSING on empty store, got %v", err)
	}
}

func TestPublishOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gfmeta.store")
	defer teardown()
	//
	first, err := Load(RecordSet{Families: []*record.Family{{Name: "Roboto"}}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Load(RecordSet{Families: []*record.Family{{Name: "Lora"}}})
	if err != nil {
		t.Fatal(err)
	}
	if !Publish(first) {
		t.Fatal("expected first publication to take effect")
	}
	if Publish(second) {
		t.Error("expected second publication to be a no-op")
	}
	if Shared() != first {
		t.Error("expected shared store to be the first published one")
	}
}

package activitylog

import (
	"reflect"
	"testing"
	"time"
)

func TestProcess_PitchEndToEnd(t *testing.T) {
	entry := LogEntry{
		ID:            "log-1",
		Action:        `Creator "Alex Tan" submitted a pitch`,
		CreatedAt:     time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		PerformedBy:   "Alex Tan",
		PerformerRole: RoleCreator,
	}

	got := Process(entry)

	if got.Category != CategoryPitch {
		t.Errorf("Category = %q, want %q", got.Category, CategoryPitch)
	}
	if !reflect.DeepEqual(got.Groups, []Group{GroupCreator}) {
		t.Errorf("Groups = %v, want [creator]", got.Groups)
	}
	if want := `"Alex Tan" submitted a pitch`; got.FormattedAction != want {
		t.Errorf("FormattedAction = %q, want %q", got.FormattedAction, want)
	}
	if got.LogEntry != entry {
		t.Errorf("LogEntry changed: %+v", got.LogEntry)
	}

	ctx := ExtractContext(got, nil)
	if ctx.Creator == nil || ctx.Creator.Name != "Alex Tan" {
		t.Fatalf("context creator = %+v, want Alex Tan", ctx.Creator)
	}
}

func TestProcess_InvoiceEndToEnd(t *testing.T) {
	campaign := testCampaign()
	campaign.Shortlisted = append(campaign.Shortlisted, ShortlistedCreator{
		User:           CreatorUser{Name: "Mei Ling"},
		UGCVideos:      2,
		CreditPerVideo: 90,
	})

	got := Process(LogEntry{Action: `Invoice INV-102 for "Mei Ling" was generated`, PerformerRole: RoleUnspecified})
	if got.Category != CategoryInvoice {
		t.Errorf("Category = %q, want %q", got.Category, CategoryInvoice)
	}
	if !reflect.DeepEqual(got.Groups, []Group{GroupInvoice}) {
		t.Errorf("Groups = %v, want [invoice]", got.Groups)
	}

	ctx := ExtractContext(got, campaign)
	if ctx.Invoice == nil || *ctx.Invoice != (InvoiceRef{InvoiceNumber: "INV-102", CreatorName: "Mei Ling"}) {
		t.Errorf("Invoice = %+v", ctx.Invoice)
	}
	if ctx.Creator == nil || ctx.Creator.Source != SourceShortlisted || *ctx.Creator.UGCVideos != 2 {
		t.Errorf("Creator = %+v, want shortlisted Mei Ling", ctx.Creator)
	}
	if ctx.Creator.Status != nil || ctx.Creator.PhotoURL != nil {
		t.Errorf("empty shortlist fields should stay nil, got %+v", ctx.Creator)
	}
}

func TestProcess_Deterministic(t *testing.T) {
	entry := LogEntry{Action: `Changed the amount from 500 to 650 for "Jane Doe"`, PerformedBy: "Sam Lee", PerformerRole: RoleAdmin}
	first := Process(entry)
	for i := 0; i < 10; i++ {
		if again := Process(entry); !reflect.DeepEqual(first, again) {
			t.Fatalf("Process not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestProcessAll_PreservesOrder(t *testing.T) {
	entries := []LogEntry{{ID: "1", Action: "Campaign activated"}, {ID: "2", Action: "Sam Lee logged in"}}
	got := ProcessAll(entries)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("ProcessAll order = %+v", got)
	}
	if len(ProcessAll(nil)) != 0 {
		t.Error("ProcessAll(nil) should be empty")
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassifyCmd(t *testing.T) {
	in := "Campaign activated\n\n" + `{"action":"Invoice INV-9 for \"Jane Doe\" was approved","performerRole":"admin"}` + "\n"
	out, err := run(t, in, "classify", "--role", "client")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d output lines, want 2:\n%s", len(lines), out)
	}

	var first, second activitylog.ClassifiedLog
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}

	if first.Category != activitylog.CategoryCampaign {
		t.Errorf("first category = %q", first.Category)
	}
	if diff := cmp.Diff([]activitylog.Group{activitylog.GroupCampaign, activitylog.GroupClient}, first.Groups); diff != "" {
		t.Errorf("first groups (-want +got):\n%s", diff)
	}
	if second.Category != activitylog.CategoryInvoice || !second.HasGroup(activitylog.GroupAdmin) {
		t.Errorf("second = %+v, want admin-performed Invoice", second)
	}
}

func TestFormatCmd(t *testing.T) {
	out, err := run(t, `Creator "Alex Tan" submitted a pitch`+"\n", "format")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"Alex Tan" submitted a pitch`) || !strings.HasPrefix(out, "Pitch") {
		t.Errorf("format output = %q", out)
	}
}

func TestContextCmd_WithCampaignFile(t *testing.T) {
	campaign := activitylog.Campaign{
		ID:   "c1",
		Name: "Glow Summer",
		Shortlisted: []activitylog.ShortlistedCreator{
			{User: activitylog.CreatorUser{Name: "Jane Doe"}, UGCVideos: 3, CreditPerVideo: 150},
		},
	}
	data, err := json.Marshal(campaign)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "campaign.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, `Changed the amount from 500 to 650 for "Jane Doe"`+"\n", "context", "--campaign", path)
	if err != nil {
		t.Fatal(err)
	}

	var ctx activitylog.LogContext
	if err := json.Unmarshal([]byte(out), &ctx); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	want := &activitylog.AmountChange{OldAmount: "500", NewAmount: "650", CreatorName: "Jane Doe"}
	if diff := cmp.Diff(want, ctx.AmountChange); diff != "" {
		t.Errorf("AmountChange (-want +got):\n%s", diff)
	}
	if ctx.Creator == nil || ctx.Creator.Source != activitylog.SourceShortlisted {
		t.Errorf("Creator = %+v, want shortlisted", ctx.Creator)
	}
}

func TestContextCmd_BadInputs(t *testing.T) {
	if _, err := run(t, "x\n", "context", "--campaign", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing campaign file should fail")
	}
	if _, err := run(t, "{not json\n", "classify"); err == nil || !strings.Contains(err.Error(), "stdin:1") {
		t.Errorf("bad JSON line error = %v, want stdin:1 position", err)
	}
}

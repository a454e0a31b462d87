package activitylog

import (
	"regexp"
	"strings"
)

// Classification is the result of classifying a raw log line.
type Classification struct {
	Category Category `json:"category"`
	Groups   []Group  `json:"groups"`
}

// classifyRule maps a predicate over the lower-cased message to a result.
type classifyRule struct {
	match    func(msg string) bool
	category Category
	groups   []Group
}

// classifyRules is evaluated top to bottom and the first match wins. Narrow
// phrases must stay above the broader ones they overlap with: invoice and
// amount lines mention "approved", agreement lines mention "sent", and most
// creator lines end in "the campaign".
var classifyRules = []classifyRule{
	{containsAny("outreach status"), CategoryOutreach, []Group{GroupAdmin}},
	{containsAny("changed the amount from", "amount changed from"), CategoryAmountChanged, []Group{GroupAdmin, GroupInvoice}},
	{containsAny("invoice"), CategoryInvoice, []Group{GroupInvoice}},

	{containsAny("agreement has been sent", "agreement has been resent", "sent the agreement", "resent the agreement", "agreement sent"),
		CategoryAgreementSent, []Group{GroupAdmin}},
	{containsAny("agreement has been approved", "approved the agreement", "agreement approved", "agreement was approved"),
		CategoryAgreementApproved, []Group{GroupAdmin}},
	{containsAny("agreement has been rejected", "rejected the agreement", "agreement rejected", "agreement was rejected"),
		CategoryAgreementRejected, []Group{GroupAdmin}},
	{allOf(containsAny("agreement"), containsAny("submitted", "signed", "uploaded")),
		CategoryAgreement, []Group{GroupCreator}},

	{matchesRegexp(`approved (?:the )?(?:first |final )?draft|draft (?:has been |was )?approved`),
		CategoryDraftApproved, []Group{GroupAdmin}},
	{containsAny("requested changes", "changes requested", "request changes", "requested a change"),
		CategoryChangesRequested, []Group{GroupAdmin}},
	{allOf(containsAny("first draft"), containsAny("submitted", "uploaded", "resubmitted")),
		CategoryFirstDraft, []Group{GroupCreator}},
	{allOf(containsAny("final draft"), containsAny("submitted", "uploaded", "resubmitted")),
		CategoryFinalDraft, []Group{GroupCreator}},
	{containsAny("posting link", "posting submitted", "submitted a posting", "submitted the posting"),
		CategoryPosting, []Group{GroupCreator}},

	{matchesRegexp(`approved (?:the )?(?:pitch|profile)|(?:pitch|profile) (?:has been |was )?approved`),
		CategoryPitchApproved, []Group{GroupAdmin}},
	{matchesRegexp(`rejected (?:the )?(?:pitch|profile)|(?:pitch|profile) (?:has been |was )?rejected`),
		CategoryPitchRejected, []Group{GroupAdmin}},
	{containsAny("as maybe", "marked maybe", "to maybe"), CategoryPitchMaybe, []Group{GroupAdmin}},
	{containsAny("shortlisted"), CategoryShortlisted, []Group{GroupAdmin}},
	{containsAny("withdrew", "withdrawn", "withdrawal"), CategoryWithdrawal, []Group{GroupCreator}},
	{containsAny("removed"), CategoryRemoval, []Group{GroupAdmin}},
	{containsAny("submitted a pitch", "pitch submitted", "submitted their pitch", "pitched", "sent a pitch"),
		CategoryPitch, []Group{GroupCreator}},

	{containsAny("campaign details edited", "edited the campaign", "campaign edited", "updated campaign details"),
		CategoryCampaignEdit, []Group{GroupAdmin, GroupCampaign}},
	{containsAny("campaign"), CategoryCampaign, []Group{GroupCampaign}},
	{containsAny("logged in", "login", "signed in"), CategoryLogin, []Group{GroupOther}},
	{containsAny("analytics"), CategoryAnalytics, []Group{GroupOther}},
}

var fallbackClassification = Classification{Category: CategoryActivity, Groups: []Group{GroupOther}}

// Classify maps a raw log line to its category and message-level groups.
// Lines no rule recognizes classify as CategoryActivity in GroupOther.
func Classify(raw string) Classification {
	msg := strings.ToLower(raw)
	for _, r := range classifyRules {
		if r.match(msg) {
			return Classification{Category: r.category, Groups: cloneGroups(r.groups)}
		}
	}
	return Classification{Category: fallbackClassification.Category, Groups: cloneGroups(fallbackClassification.Groups)}
}

// ClassifyEntry classifies entry.Action and adds the group of the performer's
// role, so the result depends only on the action text and the role.
func ClassifyEntry(entry LogEntry) Classification {
	c := Classify(entry.Action)
	if g, ok := roleGroup(entry.PerformerRole); ok && !containsGroup(c.Groups, g) {
		c.Groups = append(c.Groups, g)
	}
	return c
}

// roleGroup returns the tab group a performer role contributes, if any.
func roleGroup(r Role) (Group, bool) {
	switch r {
	case RoleAdmin, RoleSuperadmin:
		return GroupAdmin, true
	case RoleClient:
		return GroupClient, true
	case RoleCreator:
		return GroupCreator, true
	default:
		return "", false
	}
}

// --- Predicate helpers ---

func containsAny(needles ...string) func(string) bool {
	return func(msg string) bool {
		for _, n := range needles {
			if strings.Contains(msg, n) {
				return true
			}
		}
		return false
	}
}

func allOf(preds ...func(string) bool) func(string) bool {
	return func(msg string) bool {
		for _, p := range preds {
			if !p(msg) {
				return false
			}
		}
		return true
	}
}

func matchesRegexp(pattern string) func(string) bool {
	re := regexp.MustCompile(pattern)
	return re.MatchString
}

func containsGroup(groups []Group, g Group) bool {
	for _, have := range groups {
		if have == g {
			return true
		}
	}
	return false
}

func cloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	return out
}

// Package activitylog turns free-text campaign audit lines into typed,
// filterable timeline rows. It classifies each line into a fixed Category,
// derives the tab groups it belongs to, rewrites it into a display string
// with inline chip tokens, and extracts a structured detail context
// (creator, campaign, invoice, amount change) against the owning campaign.
//
// Everything in this package is a pure function of its inputs. Nothing here
// does I/O, holds mutable state, or returns errors: unrecognized input
// degrades to less detail, never to a failure.
package activitylog

import "time"

// --- Performer Roles ---

// Role is the account role of the user who performed a logged action.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleClient      Role = "client"
	RoleCreator     Role = "creator"
	RoleSuperadmin  Role = "superadmin"
	RoleUnspecified Role = "unspecified"
)

// ParseRole converts a stored role string to a Role. Unknown or empty values
// map to RoleUnspecified.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleClient, RoleCreator, RoleSuperadmin:
		return Role(s)
	default:
		return RoleUnspecified
	}
}

// Roles lists every valid role value, in storage order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleClient, RoleCreator, RoleSuperadmin, RoleUnspecified}
}

// --- Categories ---

// Category is the fixed classification label for a log entry.
type Category string

const (
	CategoryCampaign          Category = "Campaign"
	CategoryCampaignEdit      Category = "Campaign Edit"
	CategoryOutreach          Category = "Outreach"
	CategoryPitch             Category = "Pitch"
	CategoryPitchApproved     Category = "Pitch Approved"
	CategoryPitchRejected     Category = "Pitch Rejected"
	CategoryPitchMaybe        Category = "Pitch Maybe"
	CategoryShortlisted       Category = "Shortlisted"
	CategoryWithdrawal        Category = "Withdrawal"
	CategoryRemoval           Category = "Removal"
	CategoryAgreementSent     Category = "Agreement Sent"
	CategoryAgreement         Category = "Agreement"
	CategoryAgreementApproved Category = "Agreement Approved"
	CategoryAgreementRejected Category = "Agreement Rejected"
	CategoryFirstDraft        Category = "First Draft"
	CategoryFinalDraft        Category = "Final Draft"
	CategoryPosting           Category = "Posting"
	CategoryDraftApproved     Category = "Draft Approved"
	CategoryChangesRequested  Category = "Changes Requested"
	CategoryAmountChanged     Category = "Amount Changed"
	CategoryInvoice           Category = "Invoice"
	CategoryLogin             Category = "Login"
	CategoryAnalytics         Category = "Analytics"

	// CategoryActivity is the fallback for lines no rule recognizes.
	CategoryActivity Category = "Activity"
)

// Categories returns the full category enumeration.
func Categories() []Category {
	return []Category{
		CategoryCampaign, CategoryCampaignEdit, CategoryOutreach,
		CategoryPitch, CategoryPitchApproved, CategoryPitchRejected, CategoryPitchMaybe,
		CategoryShortlisted, CategoryWithdrawal, CategoryRemoval,
		CategoryAgreementSent, CategoryAgreement, CategoryAgreementApproved, CategoryAgreementRejected,
		CategoryFirstDraft, CategoryFinalDraft, CategoryPosting,
		CategoryDraftApproved, CategoryChangesRequested,
		CategoryAmountChanged, CategoryInvoice,
		CategoryLogin, CategoryAnalytics, CategoryActivity,
	}
}

// IsValid reports whether c is one of the enumerated categories.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// categoryStyle holds the icon and chip color the timeline uses for a category.
type categoryStyle struct {
	icon  string
	color string
}

var categoryStyles = map[Category]categoryStyle{
	CategoryCampaign:          {"fa-bullhorn", "#1340FF"},
	CategoryCampaignEdit:      {"fa-pen-to-square", "#1340FF"},
	CategoryOutreach:          {"fa-paper-plane", "#8A5AFE"},
	CategoryPitch:             {"fa-lightbulb", "#8A5AFE"},
	CategoryPitchApproved:     {"fa-circle-check", "#1ABF66"},
	CategoryPitchRejected:     {"fa-circle-xmark", "#D4321C"},
	CategoryPitchMaybe:        {"fa-circle-question", "#FFC702"},
	CategoryShortlisted:       {"fa-star", "#1ABF66"},
	CategoryWithdrawal:        {"fa-arrow-right-from-bracket", "#D4321C"},
	CategoryRemoval:           {"fa-user-minus", "#D4321C"},
	CategoryAgreementSent:     {"fa-file-export", "#1340FF"},
	CategoryAgreement:         {"fa-file-signature", "#8A5AFE"},
	CategoryAgreementApproved: {"fa-file-circle-check", "#1ABF66"},
	CategoryAgreementRejected: {"fa-file-circle-xmark", "#D4321C"},
	CategoryFirstDraft:        {"fa-film", "#8A5AFE"},
	CategoryFinalDraft:        {"fa-clapperboard", "#8A5AFE"},
	CategoryPosting:           {"fa-link", "#8A5AFE"},
	CategoryDraftApproved:     {"fa-thumbs-up", "#1ABF66"},
	CategoryChangesRequested:  {"fa-rotate", "#D4321C"},
	CategoryAmountChanged:     {"fa-money-bill-transfer", "#FF9800"},
	CategoryInvoice:           {"fa-file-invoice-dollar", "#FF9800"},
	CategoryLogin:             {"fa-right-to-bracket", "#636366"},
	CategoryAnalytics:         {"fa-chart-line", "#636366"},
	CategoryActivity:          {"fa-clock-rotate-left", "#636366"},
}

// Icon returns the Font Awesome icon class used for the category.
func (c Category) Icon() string {
	if s, ok := categoryStyles[c]; ok {
		return s.icon
	}
	return categoryStyles[CategoryActivity].icon
}

// Color returns the hex color used for the category's timeline marker.
func (c Category) Color() string {
	if s, ok := categoryStyles[c]; ok {
		return s.color
	}
	return categoryStyles[CategoryActivity].color
}

// --- Groups ---

// Group is a coarse membership tag that drives tab filtering.
type Group string

const (
	GroupAdmin    Group = "admin"
	GroupClient   Group = "client"
	GroupCreator  Group = "creator"
	GroupCampaign Group = "campaign"
	GroupInvoice  Group = "invoice"
	GroupOther    Group = "other"
)

// --- Log Entries ---

// LogEntry is a raw audit line as produced by the backend.
type LogEntry struct {
	ID            string    `json:"id"`
	Action        string    `json:"action"`
	CreatedAt     time.Time `json:"createdAt"`
	PerformedBy   string    `json:"performedBy"`
	PerformerRole Role      `json:"performerRole"`
}

// ClassifiedLog is a LogEntry plus its derived category, tab groups and
// display string. Computed by Process; never mutated afterwards.
type ClassifiedLog struct {
	LogEntry

	Category        Category `json:"category"`
	Groups          []Group  `json:"groups"`
	FormattedAction string   `json:"formattedAction"`
}

// HasGroup reports whether the log belongs to group g.
func (l ClassifiedLog) HasGroup(g Group) bool {
	for _, have := range l.Groups {
		if have == g {
			return true
		}
	}
	return false
}

// --- Campaign Input ---

// Campaign is the read-only view of a campaign the context extractor needs.
// It is assembled by the campaigns plugin from the database.
type Campaign struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Type              string               `json:"type"`
	Status            string               `json:"status"`
	SubmissionVersion string               `json:"submissionVersion"`
	Brief             CampaignBrief        `json:"campaignBrief"`
	Brand             *Organization        `json:"brand,omitempty"`
	Company           *Organization        `json:"company,omitempty"`
	Shortlisted       []ShortlistedCreator `json:"shortlisted"`
	Pitches           []Pitch              `json:"pitch"`
}

// CampaignBrief holds the brief assets shown alongside a campaign.
type CampaignBrief struct {
	Images []string `json:"images"`
}

// Organization is a brand or company that owns a campaign.
type Organization struct {
	Name string `json:"name"`
}

// CreatorUser is the user record attached to a shortlist or pitch row.
type CreatorUser struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// ShortlistedCreator is a creator who has been shortlisted for the campaign.
type ShortlistedCreator struct {
	User           CreatorUser `json:"user"`
	UGCVideos      int         `json:"ugcVideos"`
	CreditPerVideo float64     `json:"creditPerVideo"`
	Status         string      `json:"status"`
}

// Pitch is a creator's pitch to the campaign.
type Pitch struct {
	User   CreatorUser `json:"user"`
	Status string      `json:"status"`
}

// --- Extracted Context ---

// CreatorSource records where a creator reference was resolved from.
type CreatorSource string

const (
	SourceShortlisted CreatorSource = "shortlisted"
	SourcePitch       CreatorSource = "pitch"
	SourceMessage     CreatorSource = "message"
)

// CreatorRef is the creator a log line refers to. Only Name and Source are
// guaranteed; the rest stay nil when the campaign record does not carry them.
type CreatorRef struct {
	Name           string        `json:"name"`
	PhotoURL       *string       `json:"photoURL"`
	UGCVideos      *int          `json:"ugcVideos"`
	CreditPerVideo *float64      `json:"creditPerVideo"`
	Status         *string       `json:"status"`
	Source         CreatorSource `json:"source"`
}

// CampaignInfo is a snapshot of campaign fields for the detail panel.
type CampaignInfo struct {
	Name              string `json:"name"`
	Image             string `json:"image,omitempty"`
	BrandName         string `json:"brandName,omitempty"`
	Status            string `json:"status"`
	Type              string `json:"type,omitempty"`
	SubmissionVersion string `json:"submissionVersion,omitempty"`
	ShortlistedCount  int    `json:"shortlistedCount"`
}

// InvoiceRef identifies the invoice an Invoice log line refers to.
type InvoiceRef struct {
	InvoiceNumber string `json:"invoiceNumber"`
	CreatorName   string `json:"creatorName"`
}

// AmountChange is the before/after pair of an Amount Changed log line.
// Amounts are kept exactly as written in the log, currency marks included.
type AmountChange struct {
	OldAmount   string `json:"oldAmount"`
	NewAmount   string `json:"newAmount"`
	CreatorName string `json:"creatorName"`
}

// LogContext is the structured detail extracted for one log entry. A nil
// field means "nothing to show for this section".
type LogContext struct {
	Creator      *CreatorRef   `json:"creator,omitempty"`
	CampaignInfo *CampaignInfo `json:"campaignInfo,omitempty"`
	Invoice      *InvoiceRef   `json:"invoice,omitempty"`
	AmountChange *AmountChange `json:"amountChange,omitempty"`
	EditSection  string        `json:"editSection,omitempty"`
}

// IsEmpty reports whether no context section was extracted.
func (c LogContext) IsEmpty() bool {
	return c.Creator == nil && c.CampaignInfo == nil && c.Invoice == nil &&
		c.AmountChange == nil && c.EditSection == ""
}

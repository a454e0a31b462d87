package activitylog

import (
	"regexp"
	"strings"
)

// titleName matches two or more capitalized words, e.g. "Jane Doe" or
// "Mei Ling O'Brien". Single capitalized words are too ambiguous to treat
// as names in unquoted text.
const titleName = `\p{Lu}[\p{L}'.-]*(?:\s+\p{Lu}[\p{L}'.-]*)+`

// creatorNamePatterns cover lines no format rule recognizes. They are tried
// in order; the first capture of the first matching pattern is the name.
var creatorNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)invoice\s+[\w#/-]+\s+for\s+"?([^"]+?)"?\s+(?:was|has been)\s+(?:generated|deleted|approved)`),
	regexp.MustCompile(`(?i)\bfor\s+creator\s+"([^"]+)"`),
	regexp.MustCompile(`\b[Ff]or\s+[Cc]reator\s+(` + titleName + `)`),
	regexp.MustCompile(`(?i)\bcreator\s+"([^"]+)"`),
	regexp.MustCompile(`(?i)"([^"]+)"\s+(?:has\s+)?(?:submitted|withdrew|withdrawn|pitched|signed|uploaded|resubmitted)`),
	regexp.MustCompile(`(?i)\b(?:for|by|to|from|of)\s+"([^"]+)"`),
	regexp.MustCompile(`\b(?:for|by|to|from|of)\s+(` + titleName + `)`),
	regexp.MustCompile(`\b[Cc]reator\s+(` + titleName + `)`),
	regexp.MustCompile(`^(` + titleName + `)\s+(?:has\s+)?(?:submitted|withdrew|pitched|signed|uploaded|resubmitted)`),
	regexp.MustCompile(`"([^"]+)"`),
}

var (
	editSectionPattern = regexp.MustCompile(`(?i)campaign details edited\s*\((.+?)\)`)

	// invoicePatterns are tried in order: generated, deleted, approved.
	invoicePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)invoice\s+([\w#/-]+)\s+for\s+"?([^"]+?)"?\s+(?:was|has been)\s+generated`),
		regexp.MustCompile(`(?i)invoice\s+([\w#/-]+)\s+for\s+"?([^"]+?)"?\s+(?:was|has been)\s+deleted`),
		regexp.MustCompile(`(?i)invoice\s+([\w#/-]+)\s+for\s+"?([^"]+?)"?\s+(?:was|has been)\s+approved`),
	}

	amountChangePattern = regexp.MustCompile(`(?i)changed the amount from\s+(\S+)\s+to\s+(\S+)\s+for\s+"?([^"]+?)"?\s*\.?\s*$`)
)

// ExtractCreatorName pulls the creator name out of a raw log line. A line a
// format rule recognizes yields the creator that rule quotes, or "" if the
// rule names none, so the detail panel and the timeline agree. Other lines
// fall back to creatorNamePatterns. Returns "" when nothing matches.
func ExtractCreatorName(action string) string {
	if r, m, ok := matchRule(action); ok {
		if r.creator == 0 {
			return ""
		}
		return cleanName(m[r.creator])
	}
	for _, re := range creatorNamePatterns {
		if m := re.FindStringSubmatch(action); m != nil {
			if name := cleanName(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

// FindCreatorData resolves a creator name against the campaign: shortlisted
// creators first, then pitches, both by case-insensitive exact name. If
// neither has the name, or campaign is nil, the result carries only the
// name. Returns nil for an empty name.
func FindCreatorData(name string, campaign *Campaign) *CreatorRef {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	if campaign != nil {
		for _, s := range campaign.Shortlisted {
			if strings.EqualFold(strings.TrimSpace(s.User.Name), name) {
				videos := s.UGCVideos
				credit := s.CreditPerVideo
				return &CreatorRef{
					Name:           s.User.Name,
					PhotoURL:       optionalString(s.User.PhotoURL),
					UGCVideos:      &videos,
					CreditPerVideo: &credit,
					Status:         optionalString(s.Status),
					Source:         SourceShortlisted,
				}
			}
		}
		for _, p := range campaign.Pitches {
			if strings.EqualFold(strings.TrimSpace(p.User.Name), name) {
				return &CreatorRef{
					Name:     p.User.Name,
					PhotoURL: optionalString(p.User.PhotoURL),
					Status:   optionalString(p.Status),
					Source:   SourcePitch,
				}
			}
		}
	}

	return &CreatorRef{Name: name, Source: SourceMessage}
}

// ExtractEditSection returns the parenthesized section label of a
// "Campaign details edited (...)" line, or "".
func ExtractEditSection(action string) string {
	m := editSectionPattern.FindStringSubmatch(action)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ExtractInvoiceInfo returns the invoice number and creator of an invoice
// generated/deleted/approved line, or nil.
func ExtractInvoiceInfo(action string) *InvoiceRef {
	for _, re := range invoicePatterns {
		if m := re.FindStringSubmatch(action); m != nil {
			return &InvoiceRef{
				InvoiceNumber: strings.TrimSpace(m[1]),
				CreatorName:   cleanName(m[2]),
			}
		}
	}
	return nil
}

// ExtractAmountChangeInfo returns the old/new amounts and creator of a
// "changed the amount from X to Y for Z" line, or nil.
func ExtractAmountChangeInfo(action string) *AmountChange {
	m := amountChangePattern.FindStringSubmatch(action)
	if m == nil {
		return nil
	}
	return &AmountChange{
		OldAmount:   strings.TrimSpace(m[1]),
		NewAmount:   strings.TrimSpace(m[2]),
		CreatorName: cleanName(m[3]),
	}
}

// creatorCategories are the categories whose lines name a creator.
var creatorCategories = map[Category]bool{
	CategoryOutreach:          true,
	CategoryPitch:             true,
	CategoryPitchApproved:     true,
	CategoryPitchRejected:     true,
	CategoryPitchMaybe:        true,
	CategoryShortlisted:       true,
	CategoryWithdrawal:        true,
	CategoryRemoval:           true,
	CategoryAgreementSent:     true,
	CategoryAgreement:         true,
	CategoryAgreementApproved: true,
	CategoryAgreementRejected: true,
	CategoryFirstDraft:        true,
	CategoryFinalDraft:        true,
	CategoryPosting:           true,
	CategoryDraftApproved:     true,
	CategoryChangesRequested:  true,
	CategoryInvoice:           true,
	CategoryAmountChanged:     true,
}

// IsCreatorCategory reports whether lines of category c name a creator.
func IsCreatorCategory(c Category) bool {
	return creatorCategories[c]
}

// ExtractContext builds the detail context for a classified log. campaign
// may be nil. Each section is filled only when the log's category calls for
// it and extraction succeeds; everything else stays nil.
func ExtractContext(log ClassifiedLog, campaign *Campaign) LogContext {
	var ctx LogContext

	if creatorCategories[log.Category] {
		if name := ExtractCreatorName(log.Action); name != "" {
			ctx.Creator = FindCreatorData(name, campaign)
		}
	}

	if (log.Category == CategoryCampaign || log.Category == CategoryCampaignEdit) && campaign != nil {
		ctx.CampaignInfo = SummarizeCampaign(campaign)
		if log.Category == CategoryCampaignEdit {
			ctx.EditSection = ExtractEditSection(log.Action)
		}
	}

	if log.Category == CategoryInvoice {
		ctx.Invoice = ExtractInvoiceInfo(log.Action)
	}

	if log.Category == CategoryAmountChanged {
		ctx.AmountChange = ExtractAmountChangeInfo(log.Action)
	}

	return ctx
}

// SummarizeCampaign snapshots the campaign fields shown in the detail panel.
// The brand name falls back to the owning company's name.
func SummarizeCampaign(c *Campaign) *CampaignInfo {
	info := &CampaignInfo{
		Name:              c.Name,
		Status:            c.Status,
		Type:              c.Type,
		SubmissionVersion: c.SubmissionVersion,
		ShortlistedCount:  len(c.Shortlisted),
	}
	if len(c.Brief.Images) > 0 {
		info.Image = c.Brief.Images[0]
	}
	switch {
	case c.Brand != nil && c.Brand.Name != "":
		info.BrandName = c.Brand.Name
	case c.Company != nil:
		info.BrandName = c.Company.Name
	}
	return info
}

func cleanName(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'.,;:`)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

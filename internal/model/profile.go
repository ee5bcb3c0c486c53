package model

// CompanyProfile holds optional descriptive fields for a ticker. Any field
// may be empty when the metadata provider has no value for it.
type CompanyProfile struct {
	Name     string
	Sector   string
	Industry string
	Website  string
}

const placeholder = "N/A"

// orNA substitutes the display placeholder for an absent field.
func orNA(v string) string {
	if v == "" {
		return placeholder
	}
	return v
}

// DisplayName returns the company name, or "N/A" when absent.
func (p *CompanyProfile) DisplayName() string { return orNA(p.Name) }

// DisplaySector returns the sector, or "N/A" when absent.
func (p *CompanyProfile) DisplaySector() string { return orNA(p.Sector) }

// DisplayIndustry returns the industry, or "N/A" when absent.
func (p *CompanyProfile) DisplayIndustry() string { return orNA(p.Industry) }

// DisplayWebsite returns the website, or "N/A" when absent.
func (p *CompanyProfile) DisplayWebsite() string { return orNA(p.Website) }
